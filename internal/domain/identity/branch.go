package identity

import (
	"strings"
	"time"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
)

// Branch represents a physical service branch.
// Nearly every other entity in the system is scoped to a branch.
type Branch struct {
	shared.BaseAggregateRoot
	Name     string `json:"name" gorm:"size:200;not null"`
	Code     string `json:"code" gorm:"size:20;not null;uniqueIndex"`
	Address  string `json:"address" gorm:"size:500"`
	IsActive bool   `json:"is_active" gorm:"not null;default:true"`
}

// NewBranch creates a new active branch
func NewBranch(name, code string) (*Branch, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("name", "cannot exceed 200 characters")
	}
	if code == "" {
		return nil, shared.NewValidationError("code", "cannot be empty")
	}
	if len(code) > 20 {
		return nil, shared.NewValidationError("code", "cannot exceed 20 characters")
	}

	branch := &Branch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
		IsActive:          true,
	}
	return branch, nil
}

// Rename changes the branch name
func (b *Branch) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name", "cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name", "cannot exceed 200 characters")
	}
	b.Name = name
	b.touch()
	return nil
}

// SetAddress changes the branch address
func (b *Branch) SetAddress(address string) error {
	if len(address) > 500 {
		return shared.NewValidationError("address", "cannot exceed 500 characters")
	}
	b.Address = strings.TrimSpace(address)
	b.touch()
	return nil
}

// Activate marks the branch active
func (b *Branch) Activate() {
	b.IsActive = true
	b.touch()
}

// Deactivate marks the branch inactive
func (b *Branch) Deactivate() {
	b.IsActive = false
	b.touch()
}

func (b *Branch) touch() {
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}
