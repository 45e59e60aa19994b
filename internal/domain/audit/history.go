package audit

import (
	"time"

	"github.com/google/uuid"
)

// HistoryAction identifies what happened to a job order
type HistoryAction string

const (
	ActionCreate          HistoryAction = "CREATE"
	ActionUpdate          HistoryAction = "UPDATE"
	ActionRequestApproval HistoryAction = "REQUEST_APPROVAL"
	ActionApprove         HistoryAction = "APPROVE"
	ActionReject          HistoryAction = "REJECT"
	ActionCancel          HistoryAction = "CANCEL"
	ActionDelete          HistoryAction = "DELETE"
)

// JobOrderHistory is one entry in a job order's immutable timeline. Entries
// are written by event handlers after the mutation commits; a failed write is
// logged and swallowed, never propagated to the caller.
type JobOrderHistory struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	JobOrderID  uuid.UUID     `json:"job_order_id" gorm:"type:uuid;not null;index"`
	BranchID    uuid.UUID     `json:"branch_id" gorm:"type:uuid;not null;index"`
	Action      HistoryAction `json:"action" gorm:"size:30;not null"`
	ActorID     uuid.UUID     `json:"actor_id" gorm:"type:uuid;not null"`
	Description string        `json:"description" gorm:"size:500"`
	OccurredAt  time.Time     `json:"occurred_at" gorm:"not null;index"`
	CreatedAt   time.Time     `json:"created_at"`
}

// NewJobOrderHistory creates a history entry
func NewJobOrderHistory(jobOrderID, branchID, actorID uuid.UUID, action HistoryAction, description string, occurredAt time.Time) *JobOrderHistory {
	return &JobOrderHistory{
		ID:          uuid.New(),
		JobOrderID:  jobOrderID,
		BranchID:    branchID,
		Action:      action,
		ActorID:     actorID,
		Description: description,
		OccurredAt:  occurredAt,
		CreatedAt:   time.Now(),
	}
}
