package partner

import (
	"time"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateCustomerRequest carries a new customer
type CreateCustomerRequest struct {
	BranchID  uuid.UUID `json:"branch_id" binding:"required"`
	FirstName string    `json:"first_name" binding:"required,max=100"`
	LastName  string    `json:"last_name" binding:"required,max=100"`
	Phone     string    `json:"phone" binding:"max=30"`
	Email     string    `json:"email" binding:"omitempty,email,max=200"`
	Address   string    `json:"address" binding:"max=500"`
}

// UpdateCustomerRequest carries mutable customer fields
type UpdateCustomerRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	Address   *string `json:"address,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// CustomerResponse is the outward view of a customer
type CustomerResponse struct {
	ID        uuid.UUID         `json:"id"`
	BranchID  uuid.UUID         `json:"branch_id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Phone     string            `json:"phone"`
	Email     string            `json:"email"`
	Address   string            `json:"address"`
	IsActive  bool              `json:"is_active"`
	Vehicles  []VehicleResponse `json:"vehicles,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ToCustomerResponse converts a customer to its response form
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:        c.GetID(),
		BranchID:  c.BranchID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		IsActive:  c.IsActive,
		CreatedAt: c.GetCreatedAt(),
		UpdatedAt: c.GetUpdatedAt(),
	}
	for i := range c.Vehicles {
		resp.Vehicles = append(resp.Vehicles, ToVehicleResponse(&c.Vehicles[i]))
	}
	return resp
}

// CreateVehicleRequest carries a new vehicle
type CreateVehicleRequest struct {
	CustomerID  uuid.UUID `json:"customer_id" binding:"required"`
	PlateNumber string    `json:"plate_number" binding:"required,max=20"`
	Make        string    `json:"make" binding:"max=100"`
	Model       string    `json:"model" binding:"max=100"`
	Year        int       `json:"year"`
	Color       string    `json:"color" binding:"max=50"`
	Notes       string    `json:"notes" binding:"max=1000"`
}

// UpdateVehicleRequest carries mutable vehicle fields
type UpdateVehicleRequest struct {
	PlateNumber *string `json:"plate_number,omitempty"`
	Make        *string `json:"make,omitempty"`
	Model       *string `json:"model,omitempty"`
	Year        *int    `json:"year,omitempty"`
	Color       *string `json:"color,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// VehicleResponse is the outward view of a vehicle
type VehicleResponse struct {
	ID          uuid.UUID `json:"id"`
	BranchID    uuid.UUID `json:"branch_id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	PlateNumber string    `json:"plate_number"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	Color       string    `json:"color"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToVehicleResponse converts a vehicle to its response form
func ToVehicleResponse(v *partner.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:          v.GetID(),
		BranchID:    v.BranchID,
		CustomerID:  v.CustomerID,
		PlateNumber: v.PlateNumber,
		Make:        v.Make,
		Model:       v.Model,
		Year:        v.Year,
		Color:       v.Color,
		Notes:       v.Notes,
		CreatedAt:   v.GetCreatedAt(),
		UpdatedAt:   v.GetUpdatedAt(),
	}
}
