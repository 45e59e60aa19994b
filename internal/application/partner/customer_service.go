package partner

import (
	"context"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/audit"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/partner"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerService handles customer records. Customers are branch-scoped;
// any staff role at the branch may read and write them.
type CustomerService struct {
	customerRepo partner.CustomerRepository
	events       shared.EventPublisher
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, events shared.EventPublisher) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		events:       events,
	}
}

// Create registers a customer at a branch the actor can access
func (s *CustomerService) Create(ctx context.Context, actor identity.Actor, req CreateCustomerRequest) (*CustomerResponse, error) {
	if !actor.CanAccessBranch(req.BranchID) {
		return nil, shared.ErrForbidden
	}

	customer, err := partner.NewCustomer(req.BranchID, actor.UserID, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	customer.UpdateContact(req.Phone, req.Email, req.Address)

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	s.publishAudit(ctx, audit.NewAdminActionEvent("Customer", string(audit.ActionCreate),
		customer.GetID(), actor.UserID, customer.BranchID, nil, resp))
	return &resp, nil
}

// Get returns a customer the actor can see
func (s *CustomerService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// List returns the customers of one branch
func (s *CustomerService) List(ctx context.Context, actor identity.Actor, branchID uuid.UUID, filter shared.Filter) (*shared.Paginated[CustomerResponse], error) {
	if !actor.CanAccessBranch(branchID) {
		return nil, shared.ErrForbidden
	}

	customers, err := s.customerRepo.FindByBranch(ctx, branchID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.CountByBranch(ctx, branchID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerResponse, len(customers))
	for i := range customers {
		items[i] = ToCustomerResponse(&customers[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// Update edits a customer's mutable fields
func (s *CustomerService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	before := ToCustomerResponse(customer)

	if req.FirstName != nil || req.LastName != nil {
		firstName := customer.FirstName
		lastName := customer.LastName
		if req.FirstName != nil {
			firstName = *req.FirstName
		}
		if req.LastName != nil {
			lastName = *req.LastName
		}
		if err := customer.Rename(firstName, lastName); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil || req.Email != nil || req.Address != nil {
		phone := customer.Phone
		email := customer.Email
		address := customer.Address
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Address != nil {
			address = *req.Address
		}
		customer.UpdateContact(phone, email, address)
	}
	if req.IsActive != nil {
		if *req.IsActive {
			customer.Activate()
		} else {
			customer.Deactivate()
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	s.publishAudit(ctx, audit.NewAdminActionEvent("Customer", string(audit.ActionUpdate),
		customer.GetID(), actor.UserID, customer.BranchID, before, resp))
	return &resp, nil
}

// Delete removes a customer record
func (s *CustomerService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	customer, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return err
	}
	if !actor.HasAnyRole(identity.AdministrativeRoles...) {
		return shared.ErrForbidden
	}
	before := ToCustomerResponse(customer)

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishAudit(ctx, audit.NewAdminActionEvent("Customer", string(audit.ActionDelete),
		id, actor.UserID, customer.BranchID, before, nil))
	return nil
}

func (s *CustomerService) findAccessible(ctx context.Context, actor identity.Actor, id uuid.UUID) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// out-of-scope reads as missing, never as forbidden, so lookups cannot
	// confirm a record's existence in another branch
	if !actor.CanAccessBranch(customer.BranchID) {
		return nil, shared.ErrNotFound
	}
	return customer, nil
}

func (s *CustomerService) publishAudit(ctx context.Context, event shared.DomainEvent) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, event)
}
