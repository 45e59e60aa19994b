package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/partner"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer with vehicles preloaded
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var customer partner.Customer
	if err := r.db.WithContext(ctx).
		Preload("Vehicles").
		First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByBranch lists customers of a branch
func (r *GormCustomerRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	query := r.customerQuery(ctx, branchID, filter)
	query = applyOrdering(query, filter)
	query = applyPagination(query, filter)

	var customers []partner.Customer
	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// CountByBranch counts customers of a branch
func (r *GormCustomerRepository) CountByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.customerQuery(ctx, branchID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return r.db.WithContext(ctx).Omit("Vehicles").Save(customer).Error
}

// Delete removes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCustomerRepository) customerQuery(ctx context.Context, branchID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&partner.Customer{}).Where("branch_id = ?", branchID)
	if active, ok := filter.Filters["is_active"].(bool); ok {
		query = query.Where("is_active = ?", active)
	}
	return applySearch(query, filter, "first_name", "last_name", "phone", "email")
}

// GormVehicleRepository implements VehicleRepository using GORM
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID finds a vehicle
func (r *GormVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vehicle, error) {
	var vehicle partner.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindByCustomer lists a customer's vehicles, oldest first
func (r *GormVehicleRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]partner.Vehicle, error) {
	var vehicles []partner.Vehicle
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FindByPlate finds a vehicle by plate number within a branch
func (r *GormVehicleRepository) FindByPlate(ctx context.Context, branchID uuid.UUID, plateNumber string) (*partner.Vehicle, error) {
	var vehicle partner.Vehicle
	if err := r.db.WithContext(ctx).
		First(&vehicle, "branch_id = ? AND plate_number = ?", branchID, strings.ToUpper(strings.TrimSpace(plateNumber))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// Save persists a vehicle
func (r *GormVehicleRepository) Save(ctx context.Context, vehicle *partner.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

// Delete removes a vehicle
func (r *GormVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Vehicle{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
