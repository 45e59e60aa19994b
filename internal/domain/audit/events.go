package audit

import (
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// EventAdminAction is the single event type used for administrative CRUD
// mutations (users, branches, customers, vehicles, catalog, pricing). The
// audited entity type travels in the payload instead of the event type; the
// audit recorder is the only consumer.
const EventAdminAction = "admin.action"

// AdminActionEvent describes one administrative mutation with before/after
// snapshots
type AdminActionEvent struct {
	shared.BaseDomainEvent
	EntityType string `json:"entity_type"`
	Action     string `json:"action"`
	OldValues  any    `json:"old_values,omitempty"`
	NewValues  any    `json:"new_values,omitempty"`
}

// NewAdminActionEvent creates an admin action event
func NewAdminActionEvent(entityType, action string, entityID, actorID, branchID uuid.UUID, oldValues, newValues any) *AdminActionEvent {
	return &AdminActionEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventAdminAction, entityType, entityID, actorID, branchID),
		EntityType:      entityType,
		Action:          action,
		OldValues:       oldValues,
		NewValues:       newValues,
	}
}
