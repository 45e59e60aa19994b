package audit

import (
	"context"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// JobOrderHistoryRepository persists job order timelines
type JobOrderHistoryRepository interface {
	// FindByJobOrder returns the timeline oldest first
	FindByJobOrder(ctx context.Context, jobOrderID uuid.UUID) ([]JobOrderHistory, error)
	Save(ctx context.Context, entry *JobOrderHistory) error
}

// AuditLogRepository persists administrative audit entries
type AuditLogRepository interface {
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]AuditLog, error)
	FindByBranches(ctx context.Context, branchIDs []uuid.UUID, filter shared.Filter) ([]AuditLog, error)
	CountByBranches(ctx context.Context, branchIDs []uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, entry *AuditLog) error
}
