package workorder

import (
	"fmt"
	"strings"
	"time"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/catalog"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JobOrder is the billable work order for a customer vehicle. It owns its
// items and third-party repair lines and carries the approval status.
//
// TotalAmount is a persisted snapshot of the sum of item line totals; it is
// recomputed on every item change and deliberately excludes third-party
// repairs, which are payable but tracked separately.
type JobOrder struct {
	shared.BranchAggregateRoot
	OrderNumber   string      `json:"order_number" gorm:"size:40;not null;uniqueIndex"`
	CustomerID    uuid.UUID   `json:"customer_id" gorm:"type:uuid;not null;index"`
	VehicleID     uuid.UUID   `json:"vehicle_id" gorm:"type:uuid;not null;index"`
	Status        OrderStatus `json:"status" gorm:"size:30;not null;default:created;index"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(14,2);not null"`
	Notes         string      `json:"notes" gorm:"size:2000"`
	ApprovedAt    *time.Time  `json:"approved_at,omitempty"`
	ApprovalNotes string      `json:"approval_notes" gorm:"size:1000"`

	Items             []JobOrderItem     `json:"items" gorm:"foreignKey:JobOrderID"`
	ThirdPartyRepairs []ThirdPartyRepair `json:"third_party_repairs,omitempty" gorm:"foreignKey:JobOrderID"`
}

// JobOrderItem is one priced line of a job order. Name, type and the price
// triple are snapshotted from the catalog at creation; later catalog or
// pricing-rule edits never change an existing line.
type JobOrderItem struct {
	ID             uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	JobOrderID     uuid.UUID        `json:"job_order_id" gorm:"type:uuid;not null;index"`
	CatalogItemID  uuid.UUID        `json:"catalog_item_id" gorm:"type:uuid;not null"`
	Name           string           `json:"name" gorm:"size:200;not null"`
	Type           catalog.ItemType `json:"type" gorm:"size:20;not null"`
	Quantity       int64            `json:"quantity" gorm:"not null"`
	BasePrice      decimal.Decimal  `json:"base_price" gorm:"type:decimal(12,2);not null"`
	LaborPrice     *decimal.Decimal `json:"labor_price,omitempty" gorm:"type:decimal(12,2)"`
	PackagingPrice *decimal.Decimal `json:"packaging_price,omitempty" gorm:"type:decimal(12,2)"`
	LineTotal      decimal.Decimal  `json:"line_total" gorm:"type:decimal(14,2);not null"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ThirdPartyRepair is work outsourced to an external provider. Its cost is
// payable by the customer but excluded from the order's TotalAmount.
type ThirdPartyRepair struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	JobOrderID   uuid.UUID       `json:"job_order_id" gorm:"type:uuid;not null;index"`
	ProviderName string          `json:"provider_name" gorm:"size:200;not null"`
	Description  string          `json:"description" gorm:"size:1000"`
	Cost         decimal.Decimal `json:"cost" gorm:"type:decimal(12,2);not null"`
	RepairDate   *time.Time      `json:"repair_date,omitempty"`
	Notes        string          `json:"notes" gorm:"size:1000"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewJobOrder creates a job order with at least one priced line. Prices come
// pre-resolved; the caller is responsible for resolving them against the
// order's branch.
func NewJobOrder(branchID, createdBy, customerID, vehicleID uuid.UUID, orderNumber string, lines []OrderLine) (*JobOrder, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewValidationError("branch_id", "cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer_id", "cannot be empty")
	}
	if vehicleID == uuid.Nil {
		return nil, shared.NewValidationError("vehicle_id", "cannot be empty")
	}
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, shared.NewValidationError("order_number", "cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("items", "order requires at least one item")
	}

	order := &JobOrder{
		BranchAggregateRoot: shared.NewBranchAggregateRootWithCreator(branchID, createdBy),
		OrderNumber:         orderNumber,
		CustomerID:          customerID,
		VehicleID:           vehicleID,
		Status:              StatusCreated,
		TotalAmount:         decimal.Zero,
	}

	for _, line := range lines {
		if err := order.addLine(line); err != nil {
			return nil, err
		}
	}
	order.recalculateTotal()

	order.AddDomainEvent(NewJobOrderCreatedEvent(order, createdBy))
	return order, nil
}

// OrderLine pairs a resolved price with a quantity when building order items
type OrderLine struct {
	Resolved catalog.ResolvedPrice
	Quantity int64
}

func (o *JobOrder) addLine(line OrderLine) error {
	if line.Quantity <= 0 {
		return shared.NewValidationError("quantity", "must be positive")
	}
	if line.Resolved.Item == nil {
		return shared.NewValidationError("catalog_item", "cannot be empty")
	}

	item := JobOrderItem{
		ID:             uuid.New(),
		JobOrderID:     o.GetID(),
		CatalogItemID:  line.Resolved.Item.GetID(),
		Name:           line.Resolved.Item.Name,
		Type:           line.Resolved.Item.Type,
		Quantity:       line.Quantity,
		BasePrice:      line.Resolved.Base,
		LaborPrice:     line.Resolved.Labor,
		PackagingPrice: line.Resolved.Packaging,
		LineTotal:      line.Resolved.LineTotal(line.Quantity),
		CreatedAt:      time.Now(),
	}
	o.Items = append(o.Items, item)
	return nil
}

// AddItem appends a priced line while the order is still editable
func (o *JobOrder) AddItem(actorID uuid.UUID, line OrderLine) error {
	if !o.Status.IsEditable() {
		return o.conflict("items cannot be modified")
	}
	if err := o.addLine(line); err != nil {
		return err
	}
	o.recalculateTotal()
	o.IncrementVersion()
	o.AddDomainEvent(NewJobOrderItemsChangedEvent(o, actorID))
	return nil
}

// RemoveItem deletes a line while the order is still editable. The last line
// cannot be removed; an order always has at least one item.
func (o *JobOrder) RemoveItem(actorID, itemID uuid.UUID) error {
	if !o.Status.IsEditable() {
		return o.conflict("items cannot be modified")
	}
	if len(o.Items) == 1 {
		return shared.NewValidationError("items", "order requires at least one item")
	}
	for i, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			o.recalculateTotal()
			o.IncrementVersion()
			o.AddDomainEvent(NewJobOrderItemsChangedEvent(o, actorID))
			return nil
		}
	}
	return shared.ErrNotFound
}

// AddThirdPartyRepair records an outsourced repair line. Repairs never touch
// TotalAmount, so no recompute happens here.
func (o *JobOrder) AddThirdPartyRepair(providerName, description string, cost decimal.Decimal, repairDate *time.Time, notes string) (*ThirdPartyRepair, error) {
	if o.Status.IsTerminal() {
		return nil, o.conflict("repairs cannot be modified")
	}
	providerName = strings.TrimSpace(providerName)
	if providerName == "" {
		return nil, shared.NewValidationError("provider_name", "cannot be empty")
	}
	if cost.IsNegative() {
		return nil, shared.NewValidationError("cost", "cannot be negative")
	}

	repair := ThirdPartyRepair{
		ID:           uuid.New(),
		JobOrderID:   o.GetID(),
		ProviderName: providerName,
		Description:  strings.TrimSpace(description),
		Cost:         cost,
		RepairDate:   repairDate,
		Notes:        strings.TrimSpace(notes),
		CreatedAt:    time.Now(),
	}
	o.ThirdPartyRepairs = append(o.ThirdPartyRepairs, repair)
	o.IncrementVersion()
	return &o.ThirdPartyRepairs[len(o.ThirdPartyRepairs)-1], nil
}

// UpdateThirdPartyRepair edits an outsourced repair line in place
func (o *JobOrder) UpdateThirdPartyRepair(repairID uuid.UUID, providerName, description string, cost decimal.Decimal, repairDate *time.Time, notes string) (*ThirdPartyRepair, error) {
	if o.Status.IsTerminal() {
		return nil, o.conflict("repairs cannot be modified")
	}
	repair := o.FindRepair(repairID)
	if repair == nil {
		return nil, shared.ErrNotFound
	}
	providerName = strings.TrimSpace(providerName)
	if providerName == "" {
		return nil, shared.NewValidationError("provider_name", "cannot be empty")
	}
	if cost.IsNegative() {
		return nil, shared.NewValidationError("cost", "cannot be negative")
	}

	repair.ProviderName = providerName
	repair.Description = strings.TrimSpace(description)
	repair.Cost = cost
	repair.RepairDate = repairDate
	repair.Notes = strings.TrimSpace(notes)
	o.IncrementVersion()
	return repair, nil
}

// RemoveThirdPartyRepair deletes an outsourced repair line
func (o *JobOrder) RemoveThirdPartyRepair(repairID uuid.UUID) error {
	if o.Status.IsTerminal() {
		return o.conflict("repairs cannot be modified")
	}
	for i, repair := range o.ThirdPartyRepairs {
		if repair.ID == repairID {
			o.ThirdPartyRepairs = append(o.ThirdPartyRepairs[:i], o.ThirdPartyRepairs[i+1:]...)
			o.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RepairsTotal returns the sum of third-party repair costs, payable on top
// of TotalAmount
func (o *JobOrder) RepairsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, repair := range o.ThirdPartyRepairs {
		total = total.Add(repair.Cost)
	}
	return total
}

// UpdateNotes edits the free-form notes. Allowed in any non-terminal status
// and never touches items or totals.
func (o *JobOrder) UpdateNotes(actorID uuid.UUID, notes string) error {
	if o.Status.IsTerminal() {
		return o.conflict("order can no longer be edited")
	}
	o.Notes = strings.TrimSpace(notes)
	o.IncrementVersion()
	o.AddDomainEvent(NewJobOrderUpdatedEvent(o, actorID))
	return nil
}

// RequestApproval submits the order for the customer's decision
func (o *JobOrder) RequestApproval(actorID uuid.UUID) error {
	if err := o.transitionTo(StatusPendingApproval); err != nil {
		return err
	}
	o.AddDomainEvent(NewApprovalRequestedEvent(o, actorID))
	return nil
}

// RecordApproval records the customer's decision on a pending order. It is a
// one-shot operation: calling it in any other status fails with a conflict
// instead of silently transitioning.
func (o *JobOrder) RecordApproval(actorID uuid.UUID, approved bool, notes string) error {
	target := StatusApproved
	if !approved {
		target = StatusRejected
	}
	if o.Status != StatusPendingApproval {
		return o.conflict("cannot record approval decision")
	}
	if err := o.transitionTo(target); err != nil {
		return err
	}
	now := time.Now()
	o.ApprovedAt = &now
	o.ApprovalNotes = strings.TrimSpace(notes)
	if approved {
		o.AddDomainEvent(NewJobOrderApprovedEvent(o, actorID))
	} else {
		o.AddDomainEvent(NewJobOrderRejectedEvent(o, actorID))
	}
	return nil
}

// Cancel irreversibly abandons the order
func (o *JobOrder) Cancel(actorID uuid.UUID) error {
	if err := o.transitionTo(StatusCancelled); err != nil {
		return err
	}
	o.AddDomainEvent(NewJobOrderCancelledEvent(o, actorID))
	return nil
}

func (o *JobOrder) transitionTo(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return o.conflict(fmt.Sprintf("cannot transition to %s", target))
	}
	o.Status = target
	o.IncrementVersion()
	return nil
}

// recalculateTotal recomputes TotalAmount from item line totals
func (o *JobOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal)
	}
	o.TotalAmount = total
}

// conflict reports an illegal operation for the order's current status. The
// code is distinct from CONCURRENCY_CONFLICT so a state-machine rejection is
// never mistaken for a lost compare-and-swap race.
func (o *JobOrder) conflict(msg string) error {
	return shared.NewDomainError("INVALID_TRANSITION",
		fmt.Sprintf("order %s is %s: %s", o.OrderNumber, o.Status, msg))
}

// FindItem returns the item with the given ID or nil
func (o *JobOrder) FindItem(itemID uuid.UUID) *JobOrderItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

// FindRepair returns the repair with the given ID or nil
func (o *JobOrder) FindRepair(repairID uuid.UUID) *ThirdPartyRepair {
	for i := range o.ThirdPartyRepairs {
		if o.ThirdPartyRepairs[i].ID == repairID {
			return &o.ThirdPartyRepairs[i]
		}
	}
	return nil
}
