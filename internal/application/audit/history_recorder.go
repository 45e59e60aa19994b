package audit

import (
	"context"
	"fmt"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/audit"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/workorder"
	"go.uber.org/zap"
)

// HistoryRecorder subscribes to job order events and appends timeline
// entries. It runs after the mutation committed; a failed history write is
// logged by the bus and never surfaces to the caller.
type HistoryRecorder struct {
	historyRepo audit.JobOrderHistoryRepository
	logger      *zap.Logger
}

// NewHistoryRecorder creates a new HistoryRecorder
func NewHistoryRecorder(historyRepo audit.JobOrderHistoryRepository, logger *zap.Logger) *HistoryRecorder {
	return &HistoryRecorder{
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// EventTypes returns the job order event types the recorder listens to
func (r *HistoryRecorder) EventTypes() []string {
	return []string{
		workorder.EventJobOrderCreated,
		workorder.EventJobOrderItemsChanged,
		workorder.EventJobOrderUpdated,
		workorder.EventApprovalRequested,
		workorder.EventJobOrderApproved,
		workorder.EventJobOrderRejected,
		workorder.EventJobOrderCancelled,
	}
}

// Handle writes one history entry per event
func (r *HistoryRecorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	action, description := r.describe(event)
	if action == "" {
		return nil
	}

	entry := audit.NewJobOrderHistory(
		event.AggregateID(),
		event.BranchID(),
		event.ActorID(),
		action,
		description,
		event.OccurredAt(),
	)
	if err := r.historyRepo.Save(ctx, entry); err != nil {
		r.logger.Error("Failed to record job order history",
			zap.String("event_type", event.EventType()),
			zap.String("job_order_id", event.AggregateID().String()),
			zap.Error(err))
		return err
	}
	return nil
}

func (r *HistoryRecorder) describe(event shared.DomainEvent) (audit.HistoryAction, string) {
	switch e := event.(type) {
	case *workorder.JobOrderCreatedEvent:
		return audit.ActionCreate, fmt.Sprintf("Order %s created with %d item(s), total %s",
			e.OrderNumber, e.ItemCount, e.TotalAmount.StringFixed(2))
	case *workorder.JobOrderItemsChangedEvent:
		return audit.ActionUpdate, fmt.Sprintf("Order %s items changed, %d item(s), total %s",
			e.OrderNumber, e.ItemCount, e.TotalAmount.StringFixed(2))
	case *workorder.JobOrderUpdatedEvent:
		return audit.ActionUpdate, fmt.Sprintf("Order %s notes updated", e.OrderNumber)
	case *workorder.ApprovalRequestedEvent:
		return audit.ActionRequestApproval, fmt.Sprintf("Order %s submitted for approval, total %s",
			e.OrderNumber, e.TotalAmount.StringFixed(2))
	case *workorder.JobOrderApprovedEvent:
		return audit.ActionApprove, fmt.Sprintf("Order %s approved", e.OrderNumber)
	case *workorder.JobOrderRejectedEvent:
		return audit.ActionReject, fmt.Sprintf("Order %s rejected", e.OrderNumber)
	case *workorder.JobOrderCancelledEvent:
		return audit.ActionCancel, fmt.Sprintf("Order %s cancelled", e.OrderNumber)
	}
	return "", ""
}
