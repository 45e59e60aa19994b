package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRoleLevels(t *testing.T) {
	assert.Equal(t, 1, RoleTechnician.Level())
	assert.Equal(t, 2, RoleReceptionist.Level())
	assert.Equal(t, 3, RoleJobSupervisor.Level())
	assert.Equal(t, 4, RoleBranchPOC.Level())
	assert.Equal(t, 5, RoleHeadManager.Level())

	// the order must be total and strictly increasing
	for i := 1; i < len(AllRoles); i++ {
		assert.Greater(t, AllRoles[i].Level(), AllRoles[i-1].Level())
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("POC")
	assert.NoError(t, err)
	assert.Equal(t, RoleBranchPOC, r)

	_, err = ParseRole("CEO")
	assert.Error(t, err)
	assert.Equal(t, 0, Role("CEO").Level())
}

func TestActorBranchScope(t *testing.T) {
	branchA := uuid.New()
	branchB := uuid.New()

	t.Run("head manager sees all branches", func(t *testing.T) {
		actor := Actor{UserID: uuid.New(), Roles: []Role{RoleHeadManager}}
		all, ids := actor.BranchScope()
		assert.True(t, all)
		assert.Nil(t, ids)
		assert.True(t, actor.CanAccessBranch(branchA))
		assert.True(t, actor.CanAccessBranch(branchB))
	})

	t.Run("regular user limited to assigned branches", func(t *testing.T) {
		actor := Actor{
			UserID:    uuid.New(),
			Roles:     []Role{RoleJobSupervisor},
			BranchIDs: []uuid.UUID{branchA},
		}
		all, ids := actor.BranchScope()
		assert.False(t, all)
		assert.Equal(t, []uuid.UUID{branchA}, ids)
		assert.True(t, actor.CanAccessBranch(branchA))
		assert.False(t, actor.CanAccessBranch(branchB))
	})

	t.Run("no assignments means no access", func(t *testing.T) {
		actor := Actor{UserID: uuid.New(), Roles: []Role{RoleTechnician}}
		assert.False(t, actor.CanAccessBranch(branchA))
	})
}

func TestActorRoleCeiling(t *testing.T) {
	poc := Actor{UserID: uuid.New(), Roles: []Role{RoleBranchPOC}}

	assert.True(t, poc.CanManageLevel(RoleTechnician.Level()))
	assert.True(t, poc.CanManageLevel(RoleBranchPOC.Level()))
	assert.False(t, poc.CanManageLevel(RoleHeadManager.Level()),
		"POC must not grant authority above their own level")

	supervisor := Actor{UserID: uuid.New(), Roles: []Role{RoleJobSupervisor}}
	assert.False(t, supervisor.CanManageLevel(RoleTechnician.Level()),
		"non-administrative roles cannot manage permissions at all")
}

func TestActorHasAnyRole(t *testing.T) {
	actor := Actor{Roles: []Role{RoleReceptionist}}
	assert.True(t, actor.HasAnyRole(OrderApprovalRoles...))
	assert.False(t, actor.HasAnyRole(OrderManagingRoles...))
}
