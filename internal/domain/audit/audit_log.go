package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditLog records an administrative mutation (users, branches, catalog,
// pricing) with before/after snapshots. Job order lifecycle changes go to
// JobOrderHistory instead.
type AuditLog struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	EntityType string    `json:"entity_type" gorm:"size:50;not null;index:idx_audit_entity"`
	EntityID   uuid.UUID `json:"entity_id" gorm:"type:uuid;not null;index:idx_audit_entity"`
	BranchID   uuid.UUID `json:"branch_id" gorm:"type:uuid;index"`
	Action     string    `json:"action" gorm:"size:30;not null"`
	ActorID    uuid.UUID `json:"actor_id" gorm:"type:uuid;not null;index"`
	OldValues  []byte    `json:"old_values,omitempty" gorm:"type:jsonb"`
	NewValues  []byte    `json:"new_values,omitempty" gorm:"type:jsonb"`
	OccurredAt time.Time `json:"occurred_at" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewAuditLog creates an audit entry; old and new snapshots are marshalled
// to JSON and may be nil
func NewAuditLog(entityType string, entityID, branchID, actorID uuid.UUID, action string, oldValues, newValues any) (*AuditLog, error) {
	entry := &AuditLog{
		ID:         uuid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		BranchID:   branchID,
		Action:     action,
		ActorID:    actorID,
		OccurredAt: time.Now(),
		CreatedAt:  time.Now(),
	}

	if oldValues != nil {
		data, err := json.Marshal(oldValues)
		if err != nil {
			return nil, err
		}
		entry.OldValues = data
	}
	if newValues != nil {
		data, err := json.Marshal(newValues)
		if err != nil {
			return nil, err
		}
		entry.NewValues = data
	}
	return entry, nil
}
