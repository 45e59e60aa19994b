package audit

import (
	"context"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/audit"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditRecorder subscribes to administrative action events and persists
// audit log entries with before/after snapshots
type AuditRecorder struct {
	auditRepo audit.AuditLogRepository
	logger    *zap.Logger
}

// NewAuditRecorder creates a new AuditRecorder
func NewAuditRecorder(auditRepo audit.AuditLogRepository, logger *zap.Logger) *AuditRecorder {
	return &AuditRecorder{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// EventTypes returns the single admin action event type
func (r *AuditRecorder) EventTypes() []string {
	return []string{audit.EventAdminAction}
}

// Handle persists one audit log entry per admin action
func (r *AuditRecorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	action, ok := event.(*audit.AdminActionEvent)
	if !ok {
		return nil
	}

	entry, err := audit.NewAuditLog(
		action.EntityType,
		action.AggregateID(),
		action.BranchID(),
		action.ActorID(),
		action.Action,
		action.OldValues,
		action.NewValues,
	)
	if err != nil {
		r.logger.Error("Failed to build audit entry",
			zap.String("entity_type", action.EntityType),
			zap.Error(err))
		return err
	}

	if err := r.auditRepo.Save(ctx, entry); err != nil {
		r.logger.Error("Failed to record audit entry",
			zap.String("entity_type", action.EntityType),
			zap.String("entity_id", action.AggregateID().String()),
			zap.Error(err))
		return err
	}
	return nil
}
