package audit

import (
	"context"
	"time"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/audit"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/workorder"
	"github.com/google/uuid"
)

// HistoryEntryResponse is one entry of a job order timeline
type HistoryEntryResponse struct {
	ID          uuid.UUID `json:"id"`
	JobOrderID  uuid.UUID `json:"job_order_id"`
	Action      string    `json:"action"`
	ActorID     uuid.UUID `json:"actor_id"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// AuditEntryResponse is one administrative audit entry
type AuditEntryResponse struct {
	ID         uuid.UUID `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id"`
	BranchID   uuid.UUID `json:"branch_id"`
	Action     string    `json:"action"`
	ActorID    uuid.UUID `json:"actor_id"`
	OldValues  []byte    `json:"old_values,omitempty"`
	NewValues  []byte    `json:"new_values,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// QueryService answers read-only audit questions
type QueryService struct {
	historyRepo audit.JobOrderHistoryRepository
	auditRepo   audit.AuditLogRepository
	orderRepo   workorder.JobOrderRepository
}

// NewQueryService creates a new QueryService
func NewQueryService(historyRepo audit.JobOrderHistoryRepository, auditRepo audit.AuditLogRepository, orderRepo workorder.JobOrderRepository) *QueryService {
	return &QueryService{
		historyRepo: historyRepo,
		auditRepo:   auditRepo,
		orderRepo:   orderRepo,
	}
}

// OrderHistory returns a job order's timeline oldest first
func (s *QueryService) OrderHistory(ctx context.Context, actor identity.Actor, jobOrderID uuid.UUID) ([]HistoryEntryResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, jobOrderID)
	if err != nil {
		return nil, err
	}
	// out-of-scope orders read as missing so the timeline endpoint cannot
	// confirm an order's existence in another branch
	if !actor.CanAccessBranch(order.BranchID) {
		return nil, shared.ErrNotFound
	}

	entries, err := s.historyRepo.FindByJobOrder(ctx, jobOrderID)
	if err != nil {
		return nil, err
	}

	responses := make([]HistoryEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = HistoryEntryResponse{
			ID:          entry.ID,
			JobOrderID:  entry.JobOrderID,
			Action:      string(entry.Action),
			ActorID:     entry.ActorID,
			Description: entry.Description,
			OccurredAt:  entry.OccurredAt,
		}
	}
	return responses, nil
}

// AuditTrail lists administrative audit entries within the actor's branch
// scope; administrative roles only
func (s *QueryService) AuditTrail(ctx context.Context, actor identity.Actor, filter shared.Filter) (*shared.Paginated[AuditEntryResponse], error) {
	if !actor.HasAnyRole(identity.AdministrativeRoles...) {
		return nil, shared.ErrForbidden
	}

	all, scope := actor.BranchScope()
	if all {
		scope = nil
	} else if len(scope) == 0 {
		// an empty slice means "no restriction" at the repository; an actor
		// without branch assignments gets an empty page instead
		result := shared.NewPaginated([]AuditEntryResponse{}, 0, filter.Page, filter.Limit())
		return &result, nil
	}

	entries, err := s.auditRepo.FindByBranches(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.auditRepo.CountByBranches(ctx, scope, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]AuditEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = AuditEntryResponse{
			ID:         entry.ID,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			BranchID:   entry.BranchID,
			Action:     entry.Action,
			ActorID:    entry.ActorID,
			OldValues:  entry.OldValues,
			NewValues:  entry.NewValues,
			OccurredAt: entry.OccurredAt,
		}
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.Limit())
	return &result, nil
}

// EntityAudit returns the audit entries of one entity
func (s *QueryService) EntityAudit(ctx context.Context, actor identity.Actor, entityType string, entityID uuid.UUID) ([]AuditEntryResponse, error) {
	if !actor.HasAnyRole(identity.AdministrativeRoles...) {
		return nil, shared.ErrForbidden
	}

	entries, err := s.auditRepo.FindByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}

	responses := make([]AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		if entry.BranchID != uuid.Nil && !actor.CanAccessBranch(entry.BranchID) {
			continue
		}
		responses = append(responses, AuditEntryResponse{
			ID:         entry.ID,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			BranchID:   entry.BranchID,
			Action:     entry.Action,
			ActorID:    entry.ActorID,
			OldValues:  entry.OldValues,
			NewValues:  entry.NewValues,
			OccurredAt: entry.OccurredAt,
		})
	}
	return responses, nil
}
