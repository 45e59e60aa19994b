package workorder

import (
	"time"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/catalog"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared/valueobject"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one requested line when creating an order or adding
// an item
type OrderItemRequest struct {
	CatalogItemID uuid.UUID `json:"catalog_item_id" binding:"required"`
	Quantity      int64     `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest carries a new job order
type CreateOrderRequest struct {
	BranchID   uuid.UUID          `json:"branch_id" binding:"required"`
	CustomerID uuid.UUID          `json:"customer_id" binding:"required"`
	VehicleID  uuid.UUID          `json:"vehicle_id" binding:"required"`
	Notes      string             `json:"notes" binding:"max=2000"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest is a notes-only edit
type UpdateOrderRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

// RecordApprovalRequest carries the customer's decision
type RecordApprovalRequest struct {
	Approved bool   `json:"approved"`
	Notes    string `json:"notes" binding:"max=1000"`
}

// CreateRepairRequest carries a new third-party repair line
type CreateRepairRequest struct {
	ProviderName string          `json:"provider_name" binding:"required,max=200"`
	Description  string          `json:"description" binding:"max=1000"`
	Cost         decimal.Decimal `json:"cost" binding:"required"`
	RepairDate   *time.Time      `json:"repair_date,omitempty"`
	Notes        string          `json:"notes" binding:"max=1000"`
}

// OrderItemResponse is the outward view of an order line
type OrderItemResponse struct {
	ID             uuid.UUID        `json:"id"`
	CatalogItemID  uuid.UUID        `json:"catalog_item_id"`
	Name           string           `json:"name"`
	Type           catalog.ItemType `json:"type"`
	Quantity       int64            `json:"quantity"`
	BasePrice      decimal.Decimal  `json:"base_price"`
	LaborPrice     *decimal.Decimal `json:"labor_price"`
	PackagingPrice *decimal.Decimal `json:"packaging_price"`
	LineTotal      decimal.Decimal  `json:"line_total"`
}

// RepairResponse is the outward view of a third-party repair
type RepairResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProviderName string          `json:"provider_name"`
	Description  string          `json:"description"`
	Cost         decimal.Decimal `json:"cost"`
	RepairDate   *time.Time      `json:"repair_date,omitempty"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
}

// OrderResponse is the outward view of a job order
type OrderResponse struct {
	ID            uuid.UUID             `json:"id"`
	OrderNumber   string                `json:"order_number"`
	BranchID      uuid.UUID             `json:"branch_id"`
	CustomerID    uuid.UUID             `json:"customer_id"`
	VehicleID     uuid.UUID             `json:"vehicle_id"`
	Status        workorder.OrderStatus `json:"status"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	TotalDisplay  string                `json:"total_display"`
	RepairsTotal  decimal.Decimal       `json:"repairs_total"`
	Notes         string                `json:"notes"`
	ApprovedAt    *time.Time            `json:"approved_at,omitempty"`
	ApprovalNotes string                `json:"approval_notes,omitempty"`
	Items         []OrderItemResponse   `json:"items"`
	Repairs       []RepairResponse      `json:"third_party_repairs,omitempty"`
	Warnings      []string              `json:"warnings,omitempty"`
	CreatedBy     *uuid.UUID            `json:"created_by,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ToOrderResponse converts a job order to its response form. Warnings are
// transient resolution output and only present on creation responses.
func ToOrderResponse(order *workorder.JobOrder, warnings []string) OrderResponse {
	resp := OrderResponse{
		ID:            order.GetID(),
		OrderNumber:   order.OrderNumber,
		BranchID:      order.BranchID,
		CustomerID:    order.CustomerID,
		VehicleID:     order.VehicleID,
		Status:        order.Status,
		TotalAmount:   order.TotalAmount,
		TotalDisplay:  valueobject.NewMoneyPHP(order.TotalAmount).String(),
		RepairsTotal:  order.RepairsTotal(),
		Notes:         order.Notes,
		ApprovedAt:    order.ApprovedAt,
		ApprovalNotes: order.ApprovalNotes,
		Warnings:      warnings,
		CreatedBy:     order.CreatedBy,
		CreatedAt:     order.GetCreatedAt(),
		UpdatedAt:     order.GetUpdatedAt(),
	}
	resp.Items = make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		resp.Items[i] = OrderItemResponse{
			ID:             item.ID,
			CatalogItemID:  item.CatalogItemID,
			Name:           item.Name,
			Type:           item.Type,
			Quantity:       item.Quantity,
			BasePrice:      item.BasePrice,
			LaborPrice:     item.LaborPrice,
			PackagingPrice: item.PackagingPrice,
			LineTotal:      item.LineTotal,
		}
	}
	for _, repair := range order.ThirdPartyRepairs {
		resp.Repairs = append(resp.Repairs, ToRepairResponse(&repair))
	}
	return resp
}

// ToRepairResponse converts a repair line to its response form
func ToRepairResponse(repair *workorder.ThirdPartyRepair) RepairResponse {
	return RepairResponse{
		ID:           repair.ID,
		ProviderName: repair.ProviderName,
		Description:  repair.Description,
		Cost:         repair.Cost,
		RepairDate:   repair.RepairDate,
		Notes:        repair.Notes,
		CreatedAt:    repair.CreatedAt,
	}
}

// HistoryResponse is one entry of an order's timeline
type HistoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Action      string    `json:"action"`
	ActorID     uuid.UUID `json:"actor_id"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}
