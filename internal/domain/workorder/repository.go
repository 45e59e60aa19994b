package workorder

import (
	"context"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// JobOrderRepository persists job orders with their items and repairs
type JobOrderRepository interface {
	// FindByID loads the order with items and repairs preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*JobOrder, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*JobOrder, error)
	// FindByBranches lists orders across the given branches; an empty slice
	// means no branch restriction (head-manager scope)
	FindByBranches(ctx context.Context, branchIDs []uuid.UUID, filter shared.Filter) ([]JobOrder, error)
	CountByBranches(ctx context.Context, branchIDs []uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, order *JobOrder) error
	// SaveTransition persists a status change with a compare-and-swap on the
	// previous status; returns shared.ErrConcurrencyConflict when the stored
	// status no longer matches
	SaveTransition(ctx context.Context, order *JobOrder, from OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	// NextOrderNumber allocates the next order number for a branch,
	// formatted as JO-<branch code>-<sequence>
	NextOrderNumber(ctx context.Context, branchID uuid.UUID) (string, error)
}
