package persistence

import (
	"context"
	"time"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/audit"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormJobOrderHistoryRepository implements JobOrderHistoryRepository using GORM
type GormJobOrderHistoryRepository struct {
	db *gorm.DB
}

// NewGormJobOrderHistoryRepository creates a new GormJobOrderHistoryRepository
func NewGormJobOrderHistoryRepository(db *gorm.DB) *GormJobOrderHistoryRepository {
	return &GormJobOrderHistoryRepository{db: db}
}

// FindByJobOrder returns the order timeline oldest first
func (r *GormJobOrderHistoryRepository) FindByJobOrder(ctx context.Context, jobOrderID uuid.UUID) ([]audit.JobOrderHistory, error) {
	var entries []audit.JobOrderHistory
	if err := r.db.WithContext(ctx).
		Where("job_order_id = ?", jobOrderID).
		Order("occurred_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save persists a timeline entry
func (r *GormJobOrderHistoryRepository) Save(ctx context.Context, entry *audit.JobOrderHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GormAuditLogRepository implements AuditLogRepository using GORM
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// FindByEntity returns the audit entries for one entity, newest first
func (r *GormAuditLogRepository) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]audit.AuditLog, error) {
	var entries []audit.AuditLog
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("occurred_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByBranches lists audit entries across the given branches. An empty
// slice means no branch restriction.
func (r *GormAuditLogRepository) FindByBranches(ctx context.Context, branchIDs []uuid.UUID, filter shared.Filter) ([]audit.AuditLog, error) {
	query := r.auditQuery(ctx, branchIDs, filter)
	query = applyOrdering(query, filter)
	query = applyPagination(query, filter)

	var entries []audit.AuditLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountByBranches counts audit entries across the given branches
func (r *GormAuditLogRepository) CountByBranches(ctx context.Context, branchIDs []uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.auditQuery(ctx, branchIDs, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists an audit entry
func (r *GormAuditLogRepository) Save(ctx context.Context, entry *audit.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormAuditLogRepository) auditQuery(ctx context.Context, branchIDs []uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&audit.AuditLog{})
	if len(branchIDs) > 0 {
		query = query.Where("branch_id IN ?", branchIDs)
	}
	if entityType, ok := filter.Filters["entity_type"].(string); ok && entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if action, ok := filter.Filters["action"].(string); ok && action != "" {
		query = query.Where("action = ?", action)
	}
	if actorID, ok := filter.Filters["actor_id"].(uuid.UUID); ok {
		query = query.Where("actor_id = ?", actorID)
	}
	if from, ok := filter.Filters["occurred_from"].(time.Time); ok {
		query = query.Where("occurred_at >= ?", from)
	}
	if to, ok := filter.Filters["occurred_to"].(time.Time); ok {
		query = query.Where("occurred_at <= ?", to)
	}
	return query
}
