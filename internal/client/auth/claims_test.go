package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns the exp claim", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub": "1",
			"exp": exp.Unix(),
		})

		got, err := TokenExpiry(token)
		require.NoError(t, err)
		assert.True(t, got.Equal(exp))
	})

	t.Run("missing exp claim", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"sub": "1"})

		_, err := TokenExpiry(token)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := TokenExpiry("not-a-jwt")
		assert.Error(t, err)
	})
}

func TestUserFromToken(t *testing.T) {
	t.Run("full profile", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub":   "42",
			"email": "buyer@example.com",
			"name":  "Buyer",
			"role":  "manager",
		})

		user, err := UserFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), user.UserID)
		assert.Equal(t, "buyer@example.com", user.Email)
		assert.Equal(t, "Buyer", user.UserName)
		assert.Equal(t, "manager", user.Role)
	})

	t.Run("subject only", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"sub": "7"})

		user, err := UserFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.UserID)
		assert.Empty(t, user.Email)
	})

	t.Run("non-numeric subject", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"sub": "alice"})

		_, err := UserFromToken(token)
		assert.Error(t, err)
	})
}
