package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	restoreAccess, restoreRefresh, restoreSecret := AccessTokenTTL, RefreshTokenTTL, signingSecret
	defer func() {
		AccessTokenTTL, RefreshTokenTTL, signingSecret = restoreAccess, restoreRefresh, restoreSecret
	}()

	Configure("configured-secret", 15*time.Minute, 48*time.Hour)

	sub := Subject{UserID: 7, Email: "shopper@example.com", Role: "CUSTOMER"}

	t.Run("Configured secret signs without env", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		token, err := GenerateToken(sub, TokenTypeAccess, AccessTokenTTL)
		require.NoError(t, err)

		claims, err := ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
	})

	t.Run("Token pair honors configured lifetimes", func(t *testing.T) {
		pair, err := GenerateTokenPair(sub)
		require.NoError(t, err)

		access, err := ParseToken(pair.Access)
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute,
			access.ExpiresAt.Sub(access.IssuedAt.Time))

		refresh, err := ParseToken(pair.Refresh)
		require.NoError(t, err)
		assert.Equal(t, 48*time.Hour,
			refresh.ExpiresAt.Sub(refresh.IssuedAt.Time))
	})

	t.Run("Zero lifetimes keep previous values", func(t *testing.T) {
		Configure("configured-secret", 0, 0)
		assert.Equal(t, 15*time.Minute, AccessTokenTTL)
		assert.Equal(t, 48*time.Hour, RefreshTokenTTL)
	})
}
