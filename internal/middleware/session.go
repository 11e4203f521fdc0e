package middleware

import (
	"net/http"
	"time"

	"emedica-be/internal/utils"

	"github.com/google/uuid"
)

const (
	SessionCookieName = "sessionCartId"
	sessionCookieTTL  = 30 * 24 * time.Hour
)

// CartSession makes sure every request carries an anonymous cart token. A new
// token is issued as a cookie when the client has none.
func CartSession(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if c, err := r.Cookie(SessionCookieName); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					token = c.Value
				}
			}

			if token == "" {
				token = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    token,
					Path:     "/",
					Expires:  time.Now().Add(sessionCookieTTL),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(utils.WithSessionToken(r.Context(), token)))
		})
	}
}
