package workorder

import (
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type constants for the job order aggregate
const (
	EventJobOrderCreated      = "job_order.created"
	EventJobOrderItemsChanged = "job_order.items_changed"
	EventJobOrderUpdated      = "job_order.updated"
	EventApprovalRequested    = "job_order.approval_requested"
	EventJobOrderApproved     = "job_order.approved"
	EventJobOrderRejected     = "job_order.rejected"
	EventJobOrderCancelled    = "job_order.cancelled"
)

const aggregateType = "JobOrder"

// JobOrderCreatedEvent is raised when a new order is created
type JobOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	VehicleID   uuid.UUID       `json:"vehicle_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// NewJobOrderCreatedEvent creates a job order created event
func NewJobOrderCreatedEvent(order *JobOrder, actorID uuid.UUID) *JobOrderCreatedEvent {
	return &JobOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventJobOrderCreated, aggregateType, order.GetID(), actorID, order.BranchID),
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		VehicleID:       order.VehicleID,
		TotalAmount:     order.TotalAmount,
		ItemCount:       len(order.Items),
	}
}

// JobOrderItemsChangedEvent is raised when items are added or removed on an
// editable order; it carries the recomputed total
type JobOrderItemsChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// NewJobOrderItemsChangedEvent creates an items changed event
func NewJobOrderItemsChangedEvent(order *JobOrder, actorID uuid.UUID) *JobOrderItemsChangedEvent {
	return &JobOrderItemsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventJobOrderItemsChanged, aggregateType, order.GetID(), actorID, order.BranchID),
		OrderNumber:     order.OrderNumber,
		TotalAmount:     order.TotalAmount,
		ItemCount:       len(order.Items),
	}
}

// JobOrderUpdatedEvent is raised on a notes-only edit
type JobOrderUpdatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
}

// NewJobOrderUpdatedEvent creates an updated event
func NewJobOrderUpdatedEvent(order *JobOrder, actorID uuid.UUID) *JobOrderUpdatedEvent {
	return &JobOrderUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventJobOrderUpdated, aggregateType, order.GetID(), actorID, order.BranchID),
		OrderNumber:     order.OrderNumber,
	}
}

// ApprovalRequestedEvent is raised when an order is submitted for the
// customer's decision
type ApprovalRequestedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewApprovalRequestedEvent creates an approval requested event
func NewApprovalRequestedEvent(order *JobOrder, actorID uuid.UUID) *ApprovalRequestedEvent {
	return &ApprovalRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventApprovalRequested, aggregateType, order.GetID(), actorID, order.BranchID),
		OrderNumber:     order.OrderNumber,
		TotalAmount:     order.TotalAmount,
	}
}

// JobOrderApprovedEvent is raised when the customer accepts the order
type JobOrderApprovedEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string `json:"order_number"`
	ApprovalNotes string `json:"approval_notes,omitempty"`
}

// NewJobOrderApprovedEvent creates an approved event
func NewJobOrderApprovedEvent(order *JobOrder, actorID uuid.UUID) *JobOrderApprovedEvent {
	return &JobOrderApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventJobOrderApproved, aggregateType, order.GetID(), actorID, order.BranchID),
		OrderNumber:     order.OrderNumber,
		ApprovalNotes:   order.ApprovalNotes,
	}
}

// JobOrderRejectedEvent is raised when the customer declines the order
type JobOrderRejectedEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string `json:"order_number"`
	ApprovalNotes string `json:"approval_notes,omitempty"`
}

// NewJobOrderRejectedEvent creates a rejected event
func NewJobOrderRejectedEvent(order *JobOrder, actorID uuid.UUID) *JobOrderRejectedEvent {
	return &JobOrderRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventJobOrderRejected, aggregateType, order.GetID(), actorID, order.BranchID),
		OrderNumber:     order.OrderNumber,
		ApprovalNotes:   order.ApprovalNotes,
	}
}

// JobOrderCancelledEvent is raised when an order is abandoned
type JobOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
}

// NewJobOrderCancelledEvent creates a cancelled event
func NewJobOrderCancelledEvent(order *JobOrder, actorID uuid.UUID) *JobOrderCancelledEvent {
	return &JobOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventJobOrderCancelled, aggregateType, order.GetID(), actorID, order.BranchID),
		OrderNumber:     order.OrderNumber,
	}
}
