package utils

import "context"

type contextKey string

const (
	UserIDKey       contextKey = "user_id"
	UserEmailKey    contextKey = "email"
	UserRoleKey     contextKey = "role"
	SessionTokenKey contextKey = "session_token"
	internalKey     contextKey = "internal_request"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// SetUserContext sets user info into context (called by middleware)
func SetUserContext(ctx context.Context, id uint, email string, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserEmailKey, email)
	ctx = context.WithValue(ctx, UserRoleKey, role)
	return ctx
}

// GetUserIDFromContext retrieves userID safely
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	return id, ok
}

func GetUserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}

func GetUserRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleKey).(string)
	return role
}

func IsAdmin(ctx context.Context) bool {
	return GetUserRoleFromContext(ctx) == RoleAdmin
}

// WithSessionToken stores the anonymous cart token read from the sessionCartId cookie.
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, SessionTokenKey, token)
}

func GetSessionTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(SessionTokenKey).(string)
	return token
}

func WithInternalRequest(ctx context.Context) context.Context {
	return context.WithValue(ctx, internalKey, true)
}

func IsInternalRequest(ctx context.Context) bool {
	v, _ := ctx.Value(internalKey).(bool)
	return v
}
