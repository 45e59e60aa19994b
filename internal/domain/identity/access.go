package identity

import (
	"slices"

	"github.com/google/uuid"
)

// Actor is the identity context of an authenticated request: who is acting,
// with which roles, and over which branches. It is built once per request by
// the authentication middleware and passed explicitly to every service call.
type Actor struct {
	UserID    uuid.UUID
	Roles     []Role
	BranchIDs []uuid.UUID
}

// HasRole returns true if the actor holds the given role
func (a Actor) HasRole(role Role) bool {
	return slices.Contains(a.Roles, role)
}

// HasAnyRole returns true if the actor holds at least one of the given roles
func (a Actor) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if slices.Contains(a.Roles, r) {
			return true
		}
	}
	return false
}

// MaxLevel returns the highest role level the actor holds
func (a Actor) MaxLevel() int {
	return MaxLevel(a.Roles)
}

// IsHeadManager returns true if the actor holds the head-manager role.
// Head managers are implicitly scoped to every branch.
func (a Actor) IsHeadManager() bool {
	return a.HasRole(RoleHeadManager)
}

// BranchScope returns the actor's data-level branch visibility.
// all==true means every branch (head manager); otherwise the returned ids are
// the only branches the actor may see or mutate.
func (a Actor) BranchScope() (all bool, ids []uuid.UUID) {
	if a.IsHeadManager() {
		return true, nil
	}
	return false, a.BranchIDs
}

// CanAccessBranch reports whether the actor may see entities of the branch.
// Callers must apply this to the target entity's branch even when the entity
// was looked up by ID, so guessed IDs do not leak cross-branch data.
func (a Actor) CanAccessBranch(branchID uuid.UUID) bool {
	if a.IsHeadManager() {
		return true
	}
	return slices.Contains(a.BranchIDs, branchID)
}

// CanManageLevel reports whether the actor may grant or revoke authority at
// the given level. A caller may only manage roles at or below their own
// maximum level, which stops a branch administrator from escalating anyone
// (including themselves) past their own rank.
func (a Actor) CanManageLevel(level int) bool {
	return level <= a.MaxLevel() && a.HasAnyRole(AdministrativeRoles...)
}

// IsSelf returns true if the target user is the actor
func (a Actor) IsSelf(userID uuid.UUID) bool {
	return a.UserID == userID
}
