package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/workorder"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormJobOrderRepository implements JobOrderRepository using GORM
type GormJobOrderRepository struct {
	db *gorm.DB
}

// NewGormJobOrderRepository creates a new GormJobOrderRepository
func NewGormJobOrderRepository(db *gorm.DB) *GormJobOrderRepository {
	return &GormJobOrderRepository{db: db}
}

// FindByID loads an order with items and repairs preloaded
func (r *GormJobOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*workorder.JobOrder, error) {
	var order workorder.JobOrder
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("ThirdPartyRepairs", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber loads an order by its business key
func (r *GormJobOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*workorder.JobOrder, error) {
	var order workorder.JobOrder
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("ThirdPartyRepairs", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&order, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByBranches lists orders across the given branches. An empty slice means
// no branch restriction.
func (r *GormJobOrderRepository) FindByBranches(ctx context.Context, branchIDs []uuid.UUID, filter shared.Filter) ([]workorder.JobOrder, error) {
	query := r.orderQuery(ctx, branchIDs, filter).Preload("Items")
	query = applyOrdering(query, filter)
	query = applyPagination(query, filter)

	var orders []workorder.JobOrder
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountByBranches counts orders across the given branches
func (r *GormJobOrderRepository) CountByBranches(ctx context.Context, branchIDs []uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.orderQuery(ctx, branchIDs, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the order header and replaces its item and repair lines in
// one transaction. Line IDs are preserved, so replacing keeps snapshots
// stable.
func (r *GormJobOrderRepository) Save(ctx context.Context, order *workorder.JobOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
			return err
		}

		if err := tx.Where("job_order_id = ?", order.GetID()).Delete(&workorder.JobOrderItem{}).Error; err != nil {
			return err
		}
		for i := range order.Items {
			if err := tx.Create(&order.Items[i]).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("job_order_id = ?", order.GetID()).Delete(&workorder.ThirdPartyRepair{}).Error; err != nil {
			return err
		}
		for i := range order.ThirdPartyRepairs {
			if err := tx.Create(&order.ThirdPartyRepairs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveTransition persists a status change with a compare-and-swap on the
// previous status. A lost race surfaces as shared.ErrConcurrencyConflict.
func (r *GormJobOrderRepository) SaveTransition(ctx context.Context, order *workorder.JobOrder, from workorder.OrderStatus) error {
	result := r.db.WithContext(ctx).Model(&workorder.JobOrder{}).
		Where("id = ? AND status = ?", order.GetID(), from).
		Updates(map[string]interface{}{
			"status":         order.Status,
			"approved_at":    order.ApprovedAt,
			"approval_notes": order.ApprovalNotes,
			"version":        order.GetVersion(),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes an order with its lines
func (r *GormJobOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_order_id = ?", id).Delete(&workorder.JobOrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_order_id = ?", id).Delete(&workorder.ThirdPartyRepair{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&workorder.JobOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// NextOrderNumber allocates the next order number for a branch, formatted as
// JO-<branch code>-<sequence>. The sequence is per branch and derived from
// the branch's order count; the unique index on order_number catches the rare
// race.
func (r *GormJobOrderRepository) NextOrderNumber(ctx context.Context, branchID uuid.UUID) (string, error) {
	var branch identity.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrNotFound
		}
		return "", err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&workorder.JobOrder{}).
		Where("branch_id = ?", branchID).
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("JO-%s-%04d", branch.Code, count+1), nil
}

func (r *GormJobOrderRepository) orderQuery(ctx context.Context, branchIDs []uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&workorder.JobOrder{})
	if len(branchIDs) > 0 {
		query = query.Where("branch_id IN ?", branchIDs)
	}
	if status, ok := filter.Filters["status"].(workorder.OrderStatus); ok {
		query = query.Where("status = ?", status)
	}
	if customerID, ok := filter.Filters["customer_id"].(uuid.UUID); ok && customerID != uuid.Nil {
		query = query.Where("customer_id = ?", customerID)
	}
	if vehicleID, ok := filter.Filters["vehicle_id"].(uuid.UUID); ok && vehicleID != uuid.Nil {
		query = query.Where("vehicle_id = ?", vehicleID)
	}
	return applySearch(query, filter, "order_number", "notes")
}
