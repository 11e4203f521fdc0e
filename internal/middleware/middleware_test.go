package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"emedica-be/internal/auth"
	"emedica-be/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCors(t *testing.T) {
	handler := CORS("http://localhost:3000")(okHandler())

	t.Run("OPTIONS request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Normal request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuth(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", "test-refresh", time.Hour, time.Hour)

	anonymous := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := utils.GetUserIDFromContext(r.Context())
		assert.False(t, ok, "Context should not contain user ID")
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Missing Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()

		Auth(tm)(anonymous).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		Auth(tm)(anonymous).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Valid Token", func(t *testing.T) {
		pair, err := tm.GeneratePair(1, "user@example.com", utils.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		w := httptest.NewRecorder()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, uint(1), userID)
			assert.Equal(t, utils.RoleUser, utils.GetUserRoleFromContext(r.Context()))
			w.WriteHeader(http.StatusOK)
		})

		Auth(tm)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Cookie Token", func(t *testing.T) {
		pair, err := tm.GeneratePair(9, "cookie@example.com", utils.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: pair.AccessToken})
		w := httptest.NewRecorder()

		var got uint
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = utils.GetUserIDFromContext(r.Context())
		})

		Auth(tm)(next).ServeHTTP(w, req)

		assert.Equal(t, uint(9), got)
	})

	t.Run("Refresh Token Is Not Accepted", func(t *testing.T) {
		pair, err := tm.GeneratePair(1, "user@example.com", utils.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
		w := httptest.NewRecorder()

		Auth(tm)(anonymous).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAuthAndAdmin(t *testing.T) {
	tests := []struct {
		name       string
		ctxUser    bool
		role       string
		handler    func(http.Handler) http.Handler
		wantStatus int
	}{
		{"RequireAuth anonymous", false, "", RequireAuth, http.StatusUnauthorized},
		{"RequireAuth user", true, utils.RoleUser, RequireAuth, http.StatusOK},
		{"RequireAdmin anonymous", false, "", RequireAdmin, http.StatusUnauthorized},
		{"RequireAdmin user", true, utils.RoleUser, RequireAdmin, http.StatusForbidden},
		{"RequireAdmin admin", true, utils.RoleAdmin, RequireAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.ctxUser {
				req = req.WithContext(utils.SetUserContext(req.Context(), 1, "u@example.com", tt.role))
			}
			w := httptest.NewRecorder()

			tt.handler(okHandler()).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCartSession(t *testing.T) {
	t.Run("Issues cookie when missing", func(t *testing.T) {
		var token string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token = utils.GetSessionTokenFromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		w := httptest.NewRecorder()
		CartSession(false)(next).ServeHTTP(w, req)

		require.NotEmpty(t, token)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, SessionCookieName, cookies[0].Name)
		assert.Equal(t, token, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("Reuses existing cookie", func(t *testing.T) {
		existing := uuid.NewString()
		var token string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token = utils.GetSessionTokenFromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: existing})
		w := httptest.NewRecorder()
		CartSession(false)(next).ServeHTTP(w, req)

		assert.Equal(t, existing, token)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("Replaces malformed cookie", func(t *testing.T) {
		var token string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token = utils.GetSessionTokenFromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "'; DROP TABLE carts"})
		w := httptest.NewRecorder()
		CartSession(false)(next).ServeHTTP(w, req)

		_, err := uuid.Parse(token)
		assert.NoError(t, err)
	})
}

func TestInternal(t *testing.T) {
	var internal bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		internal = utils.IsInternalRequest(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Service-Auth", "s3cret")
	Internal("s3cret")(next).ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, internal)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Service-Auth", "wrong")
	Internal("s3cret")(next).ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, internal)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	Internal("")(next).ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, internal)
}

func TestRateLimiter(t *testing.T) {
	t.Run("Strict tier for sign-in", func(t *testing.T) {
		rl := NewRateLimiter()
		handler := rl.Middleware(okHandler())

		codes := make([]int, 0, burstStrict+1)
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/users/signin", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		for i := 0; i < burstStrict; i++ {
			assert.Equal(t, http.StatusOK, codes[i])
		}
		assert.Equal(t, http.StatusTooManyRequests, codes[burstStrict])
	})

	t.Run("Separate buckets per identity", func(t *testing.T) {
		rl := NewRateLimiter()
		handler := rl.Middleware(okHandler())

		for i := 0; i < burstStrict; i++ {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/users/signin", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/signin", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Cleanup drops idle visitors", func(t *testing.T) {
		rl := NewRateLimiter()
		base := time.Now()
		rl.now = func() time.Time { return base }
		rl.getVisitor("ip:1:general", limitGeneral, burstGeneral)

		rl.now = func() time.Time { return base.Add(visitorIdleTTL + time.Second) }
		rl.cleanup()

		assert.Empty(t, rl.visitors)
	})
}

func TestResolveRateTier(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	_, _, tier := resolveRateTier(req)
	assert.Equal(t, "general", tier)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", nil)
	_, _, tier = resolveRateTier(req)
	assert.Equal(t, "strict", tier)

	req = req.WithContext(utils.WithInternalRequest(req.Context()))
	_, _, tier = resolveRateTier(req)
	assert.Equal(t, "internal", tier)
}
