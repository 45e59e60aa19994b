package workorder

import (
	"context"
	"strings"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/catalog"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/partner"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/workorder"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PriceResolver resolves a catalog item's price triple at a branch
type PriceResolver interface {
	Resolve(ctx context.Context, catalogItemID, branchID uuid.UUID) (catalog.ResolvedPrice, error)
}

// JobOrderService drives the job order lifecycle. Every mutation follows the
// same shape: authorize the actor's role, check branch scope, mutate the
// aggregate, persist, then publish the aggregate's events. History recording
// happens in event handlers and never blocks the mutation.
type JobOrderService struct {
	orderRepo    workorder.JobOrderRepository
	customerRepo partner.CustomerRepository
	vehicleRepo  partner.VehicleRepository
	pricing      PriceResolver
	events       shared.EventPublisher
	logger       *zap.Logger
}

// NewJobOrderService creates a new JobOrderService
func NewJobOrderService(
	orderRepo workorder.JobOrderRepository,
	customerRepo partner.CustomerRepository,
	vehicleRepo partner.VehicleRepository,
	pricing PriceResolver,
	events shared.EventPublisher,
	logger *zap.Logger,
) *JobOrderService {
	return &JobOrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		pricing:      pricing,
		events:       events,
		logger:       logger,
	}
}

// Create builds a job order with resolved, snapshotted prices
func (s *JobOrderService) Create(ctx context.Context, actor identity.Actor, req CreateOrderRequest) (*OrderResponse, error) {
	if !actor.HasAnyRole(identity.OrderManagingRoles...) {
		return nil, shared.ErrForbidden
	}
	if !actor.CanAccessBranch(req.BranchID) {
		return nil, shared.ErrForbidden
	}

	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.BranchID != req.BranchID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer belongs to a different branch")
	}
	vehicle, err := s.vehicleRepo.FindByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.CustomerID != customer.GetID() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Vehicle belongs to a different customer")
	}

	lines := make([]workorder.OrderLine, 0, len(req.Items))
	var warnings []string
	for _, item := range req.Items {
		resolved, err := s.pricing.Resolve(ctx, item.CatalogItemID, req.BranchID)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, resolved.Warnings...)
		lines = append(lines, workorder.OrderLine{Resolved: resolved, Quantity: item.Quantity})
	}

	orderNumber, err := s.orderRepo.NextOrderNumber(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}

	order, err := workorder.NewJobOrder(req.BranchID, actor.UserID, req.CustomerID, req.VehicleID, orderNumber, lines)
	if err != nil {
		return nil, err
	}
	// initial notes are part of creation, not a follow-up edit, so they must
	// not produce a separate update history entry
	order.Notes = strings.TrimSpace(req.Notes)

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	resp := ToOrderResponse(order, warnings)
	return &resp, nil
}

// Get returns an order with its items and repairs
func (s *JobOrderService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order, nil)
	return &resp, nil
}

// List returns the orders visible to the actor, optionally filtered by
// branch, status and search text
func (s *JobOrderService) List(ctx context.Context, actor identity.Actor, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	all, scope := actor.BranchScope()
	if all {
		scope = nil
	} else if len(scope) == 0 {
		// an actor with no branch assignments sees nothing; an empty slice
		// must not reach the repository, where it means "no restriction"
		result := shared.NewPaginated([]OrderResponse{}, 0, filter.Page, filter.Limit())
		return &result, nil
	}

	// a branch filter narrows the scope but never widens it
	if raw, ok := filter.Filters["branch_id"]; ok {
		branchID, ok := raw.(uuid.UUID)
		if !ok || !actor.CanAccessBranch(branchID) {
			return nil, shared.ErrForbidden
		}
		scope = []uuid.UUID{branchID}
	}

	orders, err := s.orderRepo.FindByBranches(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.CountByBranches(ctx, scope, filter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, len(orders))
	for i := range orders {
		items[i] = ToOrderResponse(&orders[i], nil)
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// UpdateNotes edits the order's notes without touching items or totals
func (s *JobOrderService) UpdateNotes(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	if !actor.HasAnyRole(identity.OrderManagingRoles...) {
		return nil, shared.ErrForbidden
	}
	order, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateNotes(actor.UserID, req.Notes); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	resp := ToOrderResponse(order, nil)
	return &resp, nil
}

// AddItem appends a line to an editable order, resolving the price at the
// order's branch
func (s *JobOrderService) AddItem(ctx context.Context, actor identity.Actor, id uuid.UUID, req OrderItemRequest) (*OrderResponse, error) {
	if !actor.HasAnyRole(identity.OrderManagingRoles...) {
		return nil, shared.ErrForbidden
	}
	order, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	resolved, err := s.pricing.Resolve(ctx, req.CatalogItemID, order.BranchID)
	if err != nil {
		return nil, err
	}
	if err := order.AddItem(actor.UserID, workorder.OrderLine{Resolved: resolved, Quantity: req.Quantity}); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	resp := ToOrderResponse(order, resolved.Warnings)
	return &resp, nil
}

// RemoveItem deletes a line from an editable order
func (s *JobOrderService) RemoveItem(ctx context.Context, actor identity.Actor, id, itemID uuid.UUID) (*OrderResponse, error) {
	if !actor.HasAnyRole(identity.OrderManagingRoles...) {
		return nil, shared.ErrForbidden
	}
	order, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := order.RemoveItem(actor.UserID, itemID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	resp := ToOrderResponse(order, nil)
	return &resp, nil
}

// RequestApproval submits the order for the customer's decision
func (s *JobOrderService) RequestApproval(ctx context.Context, actor identity.Actor, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, actor, id, identity.OrderManagingRoles, func(order *workorder.JobOrder) error {
		return order.RequestApproval(actor.UserID)
	})
}

// RecordApproval records the customer's accept/reject decision. The role set
// here is deliberately the front-desk one, distinct from the roles that
// create orders: a receptionist records the customer's verbal decision.
func (s *JobOrderService) RecordApproval(ctx context.Context, actor identity.Actor, id uuid.UUID, req RecordApprovalRequest) (*OrderResponse, error) {
	return s.transition(ctx, actor, id, identity.OrderApprovalRoles, func(order *workorder.JobOrder) error {
		return order.RecordApproval(actor.UserID, req.Approved, req.Notes)
	})
}

// Cancel abandons the order
func (s *JobOrderService) Cancel(ctx context.Context, actor identity.Actor, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, actor, id, identity.OrderManagingRoles, func(order *workorder.JobOrder) error {
		return order.Cancel(actor.UserID)
	})
}

func (s *JobOrderService) transition(ctx context.Context, actor identity.Actor, id uuid.UUID, roles []identity.Role, mutate func(*workorder.JobOrder) error) (*OrderResponse, error) {
	if !actor.HasAnyRole(roles...) {
		return nil, shared.ErrForbidden
	}
	order, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	from := order.Status
	if err := mutate(order); err != nil {
		return nil, err
	}
	// compare-and-swap on the previous status so two concurrent decisions
	// cannot both land
	if err := s.orderRepo.SaveTransition(ctx, order, from); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	resp := ToOrderResponse(order, nil)
	return &resp, nil
}

// Delete removes an order entirely; restricted beyond the managing roles
func (s *JobOrderService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if !actor.HasAnyRole(identity.OrderDeletionRoles...) {
		return shared.ErrForbidden
	}
	order, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Job order deleted",
		zap.String("order_number", order.OrderNumber),
		zap.String("actor_id", actor.UserID.String()))
	return nil
}

// AddRepair appends a third-party repair line to the order
func (s *JobOrderService) AddRepair(ctx context.Context, actor identity.Actor, orderID uuid.UUID, req CreateRepairRequest) (*RepairResponse, error) {
	if !actor.HasAnyRole(identity.OrderManagingRoles...) {
		return nil, shared.ErrForbidden
	}
	order, err := s.findAccessible(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	repair, err := order.AddThirdPartyRepair(req.ProviderName, req.Description, req.Cost, req.RepairDate, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	resp := ToRepairResponse(repair)
	return &resp, nil
}

// UpdateRepair edits a third-party repair line
func (s *JobOrderService) UpdateRepair(ctx context.Context, actor identity.Actor, orderID, repairID uuid.UUID, req CreateRepairRequest) (*RepairResponse, error) {
	if !actor.HasAnyRole(identity.OrderManagingRoles...) {
		return nil, shared.ErrForbidden
	}
	order, err := s.findAccessible(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	repair, err := order.UpdateThirdPartyRepair(repairID, req.ProviderName, req.Description, req.Cost, req.RepairDate, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	resp := ToRepairResponse(repair)
	return &resp, nil
}

// RemoveRepair deletes a third-party repair line from the order
func (s *JobOrderService) RemoveRepair(ctx context.Context, actor identity.Actor, orderID, repairID uuid.UUID) error {
	if !actor.HasAnyRole(identity.OrderManagingRoles...) {
		return shared.ErrForbidden
	}
	order, err := s.findAccessible(ctx, actor, orderID)
	if err != nil {
		return err
	}
	if err := order.RemoveThirdPartyRepair(repairID); err != nil {
		return err
	}
	return s.orderRepo.Save(ctx, order)
}

// ListRepairs returns the third-party repair lines of an order
func (s *JobOrderService) ListRepairs(ctx context.Context, actor identity.Actor, orderID uuid.UUID) ([]RepairResponse, error) {
	order, err := s.findAccessible(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	responses := make([]RepairResponse, len(order.ThirdPartyRepairs))
	for i := range order.ThirdPartyRepairs {
		responses[i] = ToRepairResponse(&order.ThirdPartyRepairs[i])
	}
	return responses, nil
}

func (s *JobOrderService) findAccessible(ctx context.Context, actor identity.Actor, id uuid.UUID) (*workorder.JobOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// report out-of-scope orders as missing so a caller cannot distinguish
	// another branch's order from one that does not exist
	if !actor.CanAccessBranch(order.BranchID) {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

// publishEvents hands the aggregate's events to the bus. Publish failures
// are logged and swallowed; history is best-effort by design and must never
// fail the business operation.
func (s *JobOrderService) publishEvents(ctx context.Context, order *workorder.JobOrder) {
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish job order events",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
	}
	order.ClearDomainEvents()
}
