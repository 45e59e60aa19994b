package partner

import (
	"strings"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Vehicle belongs to a customer and is the subject of job orders
type Vehicle struct {
	shared.BranchAggregateRoot
	CustomerID  uuid.UUID `json:"customer_id" gorm:"type:uuid;not null;index"`
	PlateNumber string    `json:"plate_number" gorm:"size:20;not null;index"`
	Make        string    `json:"make" gorm:"size:100"`
	Model       string    `json:"model" gorm:"size:100"`
	Year        int       `json:"year"`
	Color       string    `json:"color" gorm:"size:50"`
	Notes       string    `json:"notes" gorm:"size:1000"`
}

// NewVehicle registers a vehicle for a customer
func NewVehicle(branchID, createdBy, customerID uuid.UUID, plateNumber, make, model string) (*Vehicle, error) {
	plateNumber = strings.ToUpper(strings.TrimSpace(plateNumber))
	if plateNumber == "" {
		return nil, shared.NewValidationError("plate_number", "cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer_id", "cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewValidationError("branch_id", "cannot be empty")
	}

	return &Vehicle{
		BranchAggregateRoot: shared.NewBranchAggregateRootWithCreator(branchID, createdBy),
		CustomerID:          customerID,
		PlateNumber:         plateNumber,
		Make:                strings.TrimSpace(make),
		Model:               strings.TrimSpace(model),
	}, nil
}

// UpdateDetails replaces the vehicle's descriptive fields
func (v *Vehicle) UpdateDetails(make, model string, year int, color, notes string) {
	v.Make = strings.TrimSpace(make)
	v.Model = strings.TrimSpace(model)
	v.Year = year
	v.Color = strings.TrimSpace(color)
	v.Notes = strings.TrimSpace(notes)
	v.IncrementVersion()
}

// ChangePlate updates the plate number
func (v *Vehicle) ChangePlate(plateNumber string) error {
	plateNumber = strings.ToUpper(strings.TrimSpace(plateNumber))
	if plateNumber == "" {
		return shared.NewValidationError("plate_number", "cannot be empty")
	}
	v.PlateNumber = plateNumber
	v.IncrementVersion()
	return nil
}

// Description returns a short human readable label like "Toyota Vios (ABC-1234)"
func (v *Vehicle) Description() string {
	var b strings.Builder
	if v.Make != "" {
		b.WriteString(v.Make)
	}
	if v.Model != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(v.Model)
	}
	if b.Len() == 0 {
		return v.PlateNumber
	}
	b.WriteString(" (")
	b.WriteString(v.PlateNumber)
	b.WriteString(")")
	return b.String()
}
