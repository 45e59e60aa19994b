package partner

import (
	"context"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository persists customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]Customer, error)
	CountByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VehicleRepository persists vehicles
type VehicleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Vehicle, error)
	FindByPlate(ctx context.Context, branchID uuid.UUID, plateNumber string) (*Vehicle, error)
	Save(ctx context.Context, vehicle *Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
}
