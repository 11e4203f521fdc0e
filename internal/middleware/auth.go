package middleware

import (
	"net/http"

	"emedica-be/internal/auth"
	"emedica-be/internal/logger"
	"emedica-be/internal/utils"

	"go.uber.org/zap"
)

// AccessTokenParser is satisfied by *auth.TokenManager.
type AccessTokenParser interface {
	ParseAccess(tokenStr string) (*auth.CustomClaims, error)
}

// Auth attaches the caller identity to the request context. Requests without a
// valid token continue as anonymous.
func Auth(parser AccessTokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := parser.ParseAccess(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("ignoring invalid access token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !utils.IsAdmin(r.Context()) {
			utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Internal marks requests carrying the shared service secret as trusted.
func Internal(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret != "" && r.Header.Get("X-Service-Auth") == secret {
				r = r.WithContext(utils.WithInternalRequest(r.Context()))
			}
			next.ServeHTTP(w, r)
		})
	}
}
