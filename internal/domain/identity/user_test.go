package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		user, err := NewUser("Maria.Santos", "s3cretpass", RoleReceptionist)
		require.NoError(t, err)
		assert.Equal(t, "maria.santos", user.Username)
		assert.True(t, user.IsActive)
		assert.True(t, user.CheckPassword("s3cretpass"))
		assert.False(t, user.CheckPassword("wrong"))
	})

	t.Run("requires at least one role", func(t *testing.T) {
		_, err := NewUser("maria", "s3cretpass")
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("maria", "short", RoleTechnician)
		assert.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser("maria", "s3cretpass", Role("CEO"))
		assert.Error(t, err)
	})
}

func TestUserRoles(t *testing.T) {
	user, err := NewUser("tech", "s3cretpass", RoleTechnician)
	require.NoError(t, err)

	require.NoError(t, user.GrantRole(RoleJobSupervisor))
	assert.Equal(t, RoleJobSupervisor.Level(), user.MaxRoleLevel())

	// granting twice is a no-op
	require.NoError(t, user.GrantRole(RoleJobSupervisor))
	assert.Len(t, user.Roles, 2)

	require.NoError(t, user.RevokeRole(RoleTechnician))

	err = user.RevokeRole(RoleJobSupervisor)
	assert.Error(t, err, "last role cannot be revoked")

	err = user.RevokeRole(RoleHeadManager)
	assert.Error(t, err, "cannot revoke a role not held")
}

func TestUserBranchAssignments(t *testing.T) {
	user, err := NewUser("tech", "s3cretpass", RoleTechnician)
	require.NoError(t, err)

	branchA := uuid.New()
	branchB := uuid.New()

	require.NoError(t, user.AssignBranch(branchA))
	require.NoError(t, user.AssignBranch(branchB))

	t.Run("first assigned branch becomes primary", func(t *testing.T) {
		assert.Equal(t, branchA, user.PrimaryBranchID())
	})

	t.Run("duplicate assignment rejected", func(t *testing.T) {
		assert.Error(t, user.AssignBranch(branchA))
	})

	t.Run("primary moves when primary branch revoked", func(t *testing.T) {
		require.NoError(t, user.RevokeBranch(branchA))
		assert.Equal(t, branchB, user.PrimaryBranchID())
	})

	t.Run("revoking unassigned branch fails", func(t *testing.T) {
		assert.Error(t, user.RevokeBranch(branchA))
	})
}
