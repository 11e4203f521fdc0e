package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_GeneratePair(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	pair, err := m.GeneratePair(7, "jane@example.com", "ADMIN")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	t.Run("ParseAccess", func(t *testing.T) {
		claims, err := m.ParseAccess(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "jane@example.com", claims.Email)
		assert.Equal(t, "ADMIN", claims.Role)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
	})

	t.Run("ParseRefresh", func(t *testing.T) {
		claims, err := m.ParseRefresh(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	})

	t.Run("RefreshTokenRejectedAsAccess", func(t *testing.T) {
		_, err := m.ParseAccess(pair.RefreshToken)
		assert.Error(t, err)
	})
}

func TestTokenManager_SharedSecret(t *testing.T) {
	m := NewTokenManager("secret", "", time.Hour, time.Hour)

	pair, err := m.GeneratePair(1, "a@b.c", "USER")
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestTokenManager_Invalid(t *testing.T) {
	m := NewTokenManager("secret", "refresh", time.Hour, time.Hour)

	t.Run("Garbage", func(t *testing.T) {
		_, err := m.ParseAccess("not-a-token")
		assert.Error(t, err)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewTokenManager("other", "other", time.Hour, time.Hour)
		pair, err := other.GeneratePair(1, "a@b.c", "USER")
		require.NoError(t, err)

		_, err = m.ParseAccess(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := NewTokenManager("secret", "refresh", time.Hour, time.Hour)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		pair, err := expired.GeneratePair(1, "a@b.c", "USER")
		require.NoError(t, err)

		_, err = m.ParseAccess(pair.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("UnexpectedSigningMethod", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, CustomClaims{UserID: 1, TokenType: TokenTypeAccess})
		s, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.ParseAccess(s)
		assert.Error(t, err)
	})
}
