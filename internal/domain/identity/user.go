package identity

import (
	"slices"
	"strings"
	"time"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents a staff member.
// It is the aggregate root for role and branch-assignment changes.
type User struct {
	shared.BaseAggregateRoot
	Username     string `json:"username" gorm:"size:100;not null;uniqueIndex"`
	DisplayName  string `json:"display_name" gorm:"size:200"`
	PasswordHash string `json:"-" gorm:"size:100;not null"`
	IsActive     bool   `json:"is_active" gorm:"not null;default:true"`

	// Loaded by the repository from their own tables
	Roles       []Role             `json:"roles" gorm:"-"`
	Assignments []BranchAssignment `json:"branch_assignments" gorm:"foreignKey:UserID"`
}

// BranchAssignment links a user to a branch. The first branch assigned to a
// user becomes the primary one; at most one assignment is primary per user.
type BranchAssignment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	BranchID  uuid.UUID `json:"branch_id" gorm:"type:uuid;not null;index"`
	IsPrimary bool      `json:"is_primary" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// UserRole is the persisted user-to-role link
type UserRole struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      Role      `gorm:"size:10;primaryKey"`
	CreatedAt time.Time
}

// NewUser creates a new active user holding at least one role
func NewUser(username, password string, roles ...Role) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, shared.NewValidationError("roles", "user must hold at least one role")
	}
	for _, r := range roles {
		if !r.IsValid() {
			return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role code "+string(r))
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		PasswordHash:      string(hash),
		IsActive:          true,
		Roles:             slices.Clone(roles),
		Assignments:       make([]BranchAssignment, 0),
	}
	return user, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored hash
func (u *User) ChangePassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.touch()
	return nil
}

// SetDisplayName sets the user's display name
func (u *User) SetDisplayName(displayName string) error {
	if len(displayName) > 200 {
		return shared.NewValidationError("display_name", "cannot exceed 200 characters")
	}
	u.DisplayName = strings.TrimSpace(displayName)
	u.touch()
	return nil
}

// GrantRole adds a role to the user's role set
func (u *User) GrantRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role code "+string(role))
	}
	if slices.Contains(u.Roles, role) {
		return nil
	}
	u.Roles = append(u.Roles, role)
	u.touch()
	return nil
}

// RevokeRole removes a role. A user must hold at least one role at all times.
func (u *User) RevokeRole(role Role) error {
	idx := slices.Index(u.Roles, role)
	if idx < 0 {
		return shared.NewDomainError("ROLE_NOT_HELD", "User does not hold role "+string(role))
	}
	if len(u.Roles) == 1 {
		return shared.NewDomainError("LAST_ROLE", "User must hold at least one role")
	}
	u.Roles = slices.Delete(u.Roles, idx, idx+1)
	u.touch()
	return nil
}

// AssignBranch adds a branch assignment. The first assignment becomes primary.
func (u *User) AssignBranch(branchID uuid.UUID) error {
	if branchID == uuid.Nil {
		return shared.NewValidationError("branch_id", "cannot be empty")
	}
	for _, a := range u.Assignments {
		if a.BranchID == branchID {
			return shared.NewDomainError("ALREADY_ASSIGNED", "User is already assigned to this branch")
		}
	}
	u.Assignments = append(u.Assignments, BranchAssignment{
		ID:        uuid.New(),
		UserID:    u.ID,
		BranchID:  branchID,
		IsPrimary: len(u.Assignments) == 0,
		CreatedAt: time.Now(),
	})
	u.touch()
	return nil
}

// RevokeBranch removes a branch assignment. If the primary assignment is
// removed, the oldest remaining assignment becomes primary.
func (u *User) RevokeBranch(branchID uuid.UUID) error {
	idx := -1
	for i, a := range u.Assignments {
		if a.BranchID == branchID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.NewDomainError("NOT_ASSIGNED", "User is not assigned to this branch")
	}
	wasPrimary := u.Assignments[idx].IsPrimary
	u.Assignments = slices.Delete(u.Assignments, idx, idx+1)
	if wasPrimary && len(u.Assignments) > 0 {
		u.Assignments[0].IsPrimary = true
	}
	u.touch()
	return nil
}

// BranchIDs returns the IDs of all assigned branches
func (u *User) BranchIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(u.Assignments))
	for i, a := range u.Assignments {
		ids[i] = a.BranchID
	}
	return ids
}

// PrimaryBranchID returns the primary branch, or uuid.Nil if none assigned
func (u *User) PrimaryBranchID() uuid.UUID {
	for _, a := range u.Assignments {
		if a.IsPrimary {
			return a.BranchID
		}
	}
	return uuid.Nil
}

// MaxRoleLevel returns the highest level among the user's roles
func (u *User) MaxRoleLevel() int {
	return MaxLevel(u.Roles)
}

// Activate marks the user active
func (u *User) Activate() {
	u.IsActive = true
	u.touch()
}

// Deactivate marks the user inactive
func (u *User) Deactivate() {
	u.IsActive = false
	u.touch()
}

// Actor converts the user into the per-request identity context
func (u *User) Actor() Actor {
	return Actor{
		UserID:    u.ID,
		Roles:     slices.Clone(u.Roles),
		BranchIDs: u.BranchIDs(),
	}
}

func (u *User) touch() {
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

func validateUsername(username string) error {
	if username == "" {
		return shared.NewValidationError("username", "cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewValidationError("username", "must be at least 3 characters")
	}
	if len(username) > 100 {
		return shared.NewValidationError("username", "cannot exceed 100 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewValidationError("password", "must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewValidationError("password", "cannot exceed 72 characters")
	}
	return nil
}
