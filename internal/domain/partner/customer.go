package partner

import (
	"strings"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Customer is a vehicle owner serviced by a branch. Customers are scoped to
// the branch that registered them.
type Customer struct {
	shared.BranchAggregateRoot
	FirstName string `json:"first_name" gorm:"size:100;not null"`
	LastName  string `json:"last_name" gorm:"size:100;not null"`
	Phone     string `json:"phone" gorm:"size:30"`
	Email     string `json:"email" gorm:"size:200"`
	Address   string `json:"address" gorm:"size:500"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`

	Vehicles []Vehicle `json:"vehicles,omitempty" gorm:"foreignKey:CustomerID"`
}

// NewCustomer registers a customer at a branch
func NewCustomer(branchID, createdBy uuid.UUID, firstName, lastName string) (*Customer, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return nil, shared.NewValidationError("first_name", "cannot be empty")
	}
	if lastName == "" {
		return nil, shared.NewValidationError("last_name", "cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewValidationError("branch_id", "cannot be empty")
	}

	return &Customer{
		BranchAggregateRoot: shared.NewBranchAggregateRootWithCreator(branchID, createdBy),
		FirstName:           firstName,
		LastName:            lastName,
		IsActive:            true,
	}, nil
}

// FullName returns "First Last"
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// UpdateContact replaces the customer's contact details
func (c *Customer) UpdateContact(phone, email, address string) {
	c.Phone = strings.TrimSpace(phone)
	c.Email = strings.TrimSpace(email)
	c.Address = strings.TrimSpace(address)
	c.IncrementVersion()
}

// Rename changes the customer's name
func (c *Customer) Rename(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return shared.NewValidationError("first_name", "cannot be empty")
	}
	if lastName == "" {
		return shared.NewValidationError("last_name", "cannot be empty")
	}
	c.FirstName = firstName
	c.LastName = lastName
	c.IncrementVersion()
	return nil
}

// Deactivate hides the customer from new orders
func (c *Customer) Deactivate() {
	c.IsActive = false
	c.IncrementVersion()
}

// Activate restores a deactivated customer
func (c *Customer) Activate() {
	c.IsActive = true
	c.IncrementVersion()
}
