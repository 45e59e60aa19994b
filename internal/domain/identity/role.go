package identity

import (
	"fmt"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
)

// Role represents a functional role in the workshop hierarchy.
// Roles form a total order; a higher level means broader authority.
type Role string

const (
	RoleTechnician    Role = "T"   // performs the work, read-mostly
	RoleReceptionist  Role = "R"   // front desk, records customer decisions
	RoleJobSupervisor Role = "JS"  // creates and manages job orders
	RoleBranchPOC     Role = "POC" // runs a branch, manages its staff
	RoleHeadManager   Role = "HM"  // head office, sees every branch
)

// roleLevels defines the total order over roles
var roleLevels = map[Role]int{
	RoleTechnician:    1,
	RoleReceptionist:  2,
	RoleJobSupervisor: 3,
	RoleBranchPOC:     4,
	RoleHeadManager:   5,
}

// AllRoles lists every role in ascending level order
var AllRoles = []Role{
	RoleTechnician,
	RoleReceptionist,
	RoleJobSupervisor,
	RoleBranchPOC,
	RoleHeadManager,
}

// Level returns the numeric authority level of the role (1..5).
// Unknown roles get level 0 so they never satisfy a ceiling check.
func (r Role) Level() int {
	return roleLevels[r]
}

// IsValid checks if the role is a known role
func (r Role) IsValid() bool {
	_, ok := roleLevels[r]
	return ok
}

// String returns the role code
func (r Role) String() string {
	return string(r)
}

// Name returns a human-readable role name
func (r Role) Name() string {
	switch r {
	case RoleTechnician:
		return "Technician"
	case RoleReceptionist:
		return "Receptionist"
	case RoleJobSupervisor:
		return "Job Supervisor"
	case RoleBranchPOC:
		return "Branch POC"
	case RoleHeadManager:
		return "Head Manager"
	}
	return string(r)
}

// ParseRole converts a role code to a Role
func ParseRole(code string) (Role, error) {
	r := Role(code)
	if !r.IsValid() {
		return "", shared.NewDomainError("INVALID_ROLE", fmt.Sprintf("Unknown role code %q", code))
	}
	return r, nil
}

// MaxLevel returns the highest level among the given roles
func MaxLevel(roles []Role) int {
	maxLevel := 0
	for _, r := range roles {
		if l := r.Level(); l > maxLevel {
			maxLevel = l
		}
	}
	return maxLevel
}

// Role sets gating the job-order operations. RecordApproval is deliberately
// open to the front desk: the receptionist records the customer's verbal
// decision even though receptionists cannot create orders themselves.
var (
	OrderManagingRoles  = []Role{RoleJobSupervisor, RoleBranchPOC, RoleHeadManager}
	OrderApprovalRoles  = []Role{RoleReceptionist, RoleBranchPOC, RoleHeadManager}
	OrderDeletionRoles  = []Role{RoleBranchPOC, RoleHeadManager}
	AdministrativeRoles = []Role{RoleBranchPOC, RoleHeadManager}
)
