package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenbank/credit-approval/pkg/auth"
)

func TestJWTService(t *testing.T) {
	svc, err := auth.NewJWTService("test-secret", "credit-approval", time.Hour)
	require.NoError(t, err)

	t.Run("round-trips subject and roles", func(t *testing.T) {
		token, err := svc.GenerateToken("ops-user", []string{auth.RoleAdmin, "viewer"})
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "ops-user", claims.Subject)
		assert.True(t, claims.HasRole(auth.RoleAdmin))
		assert.True(t, claims.HasRole("viewer"))
		assert.False(t, claims.HasRole("auditor"))
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		other, err := auth.NewJWTService("other-secret", "credit-approval", time.Hour)
		require.NoError(t, err)
		token, err := other.GenerateToken("ops-user", []string{auth.RoleAdmin})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects a token from another issuer", func(t *testing.T) {
		other, err := auth.NewJWTService("test-secret", "someone-else", time.Hour)
		require.NoError(t, err)
		token, err := other.GenerateToken("ops-user", []string{auth.RoleAdmin})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		short, err := auth.NewJWTService("test-secret", "credit-approval", time.Nanosecond)
		require.NoError(t, err)
		token, err := short.GenerateToken("ops-user", []string{auth.RoleAdmin})
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("requires a secret", func(t *testing.T) {
		_, err := auth.NewJWTService("", "credit-approval", time.Hour)
		assert.Error(t, err)
	})
}
