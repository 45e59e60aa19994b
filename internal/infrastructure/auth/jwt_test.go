package auth

import (
	"testing"
	"time"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key",
		Expiration: expiration,
		Issuer:     "pulse-test",
	})
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("maria", "s3cretpass", identity.RoleReceptionist, identity.RoleBranchPOC)
	require.NoError(t, err)
	require.NoError(t, user.AssignBranch(uuid.New()))
	return user
}

func TestJWTRoundTrip(t *testing.T) {
	service := newTestService(time.Hour)
	user := newTestUser(t)

	token, expiresAt, err := service.Issue(user)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := service.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.GetID(), claims.UserID)
	assert.Equal(t, "maria", claims.Username)
	assert.ElementsMatch(t, user.Roles, claims.Roles)
	assert.Equal(t, user.BranchIDs(), claims.BranchIDs)

	actor := claims.Actor()
	assert.True(t, actor.HasRole(identity.RoleBranchPOC))
	assert.True(t, actor.CanAccessBranch(user.BranchIDs()[0]))
}

func TestJWTRejectsBadTokens(t *testing.T) {
	service := newTestService(time.Hour)
	user := newTestUser(t)

	t.Run("expired token", func(t *testing.T) {
		expired := newTestService(-time.Minute)
		token, _, err := expired.Issue(user)
		require.NoError(t, err)

		_, err = expired.Parse(token)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "different", Expiration: time.Hour, Issuer: "pulse-test"})
		token, _, err := other.Issue(user)
		require.NoError(t, err)

		_, err = service.Parse(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "test-secret-key", Expiration: time.Hour, Issuer: "someone-else"})
		token, _, err := other.Issue(user)
		require.NoError(t, err)

		_, err = service.Parse(token)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.Parse("not.a.token")
		assert.Error(t, err)
	})
}
