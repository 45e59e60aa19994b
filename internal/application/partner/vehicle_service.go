package partner

import (
	"context"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/audit"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/partner"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// VehicleService handles vehicle records under their owning customer
type VehicleService struct {
	vehicleRepo  partner.VehicleRepository
	customerRepo partner.CustomerRepository
	events       shared.EventPublisher
}

// NewVehicleService creates a new VehicleService
func NewVehicleService(vehicleRepo partner.VehicleRepository, customerRepo partner.CustomerRepository, events shared.EventPublisher) *VehicleService {
	return &VehicleService{
		vehicleRepo:  vehicleRepo,
		customerRepo: customerRepo,
		events:       events,
	}
}

// Create registers a vehicle for a customer the actor can see
func (s *VehicleService) Create(ctx context.Context, actor identity.Actor, req CreateVehicleRequest) (*VehicleResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBranch(customer.BranchID) {
		return nil, shared.ErrForbidden
	}

	vehicle, err := partner.NewVehicle(customer.BranchID, actor.UserID, customer.GetID(), req.PlateNumber, req.Make, req.Model)
	if err != nil {
		return nil, err
	}
	vehicle.UpdateDetails(req.Make, req.Model, req.Year, req.Color, req.Notes)

	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, err
	}

	resp := ToVehicleResponse(vehicle)
	s.publishAudit(ctx, audit.NewAdminActionEvent("Vehicle", string(audit.ActionCreate),
		vehicle.GetID(), actor.UserID, vehicle.BranchID, nil, resp))
	return &resp, nil
}

// Get returns a vehicle the actor can see
func (s *VehicleService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*VehicleResponse, error) {
	vehicle, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := ToVehicleResponse(vehicle)
	return &resp, nil
}

// ListByCustomer returns a customer's vehicles
func (s *VehicleService) ListByCustomer(ctx context.Context, actor identity.Actor, customerID uuid.UUID) ([]VehicleResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBranch(customer.BranchID) {
		return nil, shared.ErrForbidden
	}

	vehicles, err := s.vehicleRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	responses := make([]VehicleResponse, len(vehicles))
	for i := range vehicles {
		responses[i] = ToVehicleResponse(&vehicles[i])
	}
	return responses, nil
}

// Update edits a vehicle's mutable fields
func (s *VehicleService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateVehicleRequest) (*VehicleResponse, error) {
	vehicle, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	before := ToVehicleResponse(vehicle)

	if req.PlateNumber != nil {
		if err := vehicle.ChangePlate(*req.PlateNumber); err != nil {
			return nil, err
		}
	}
	vehicleMake := vehicle.Make
	model := vehicle.Model
	year := vehicle.Year
	color := vehicle.Color
	notes := vehicle.Notes
	if req.Make != nil {
		vehicleMake = *req.Make
	}
	if req.Model != nil {
		model = *req.Model
	}
	if req.Year != nil {
		year = *req.Year
	}
	if req.Color != nil {
		color = *req.Color
	}
	if req.Notes != nil {
		notes = *req.Notes
	}
	vehicle.UpdateDetails(vehicleMake, model, year, color, notes)

	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, err
	}

	resp := ToVehicleResponse(vehicle)
	s.publishAudit(ctx, audit.NewAdminActionEvent("Vehicle", string(audit.ActionUpdate),
		vehicle.GetID(), actor.UserID, vehicle.BranchID, before, resp))
	return &resp, nil
}

// Delete removes a vehicle record
func (s *VehicleService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	vehicle, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return err
	}
	if !actor.HasAnyRole(identity.AdministrativeRoles...) {
		return shared.ErrForbidden
	}
	before := ToVehicleResponse(vehicle)

	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishAudit(ctx, audit.NewAdminActionEvent("Vehicle", string(audit.ActionDelete),
		id, actor.UserID, vehicle.BranchID, before, nil))
	return nil
}

func (s *VehicleService) findAccessible(ctx context.Context, actor identity.Actor, id uuid.UUID) (*partner.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// out-of-scope reads as missing, never as forbidden, so lookups cannot
	// confirm a record's existence in another branch
	if !actor.CanAccessBranch(vehicle.BranchID) {
		return nil, shared.ErrNotFound
	}
	return vehicle, nil
}

func (s *VehicleService) publishAudit(ctx context.Context, event shared.DomainEvent) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, event)
}
