package identity

import (
	"context"
	"errors"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/audit"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// BranchService handles branch administration. Creating and deleting branches
// is a head-manager concern; branch POCs may edit their own branches.
type BranchService struct {
	branchRepo identity.BranchRepository
	events     shared.EventPublisher
}

// NewBranchService creates a new BranchService
func NewBranchService(branchRepo identity.BranchRepository, events shared.EventPublisher) *BranchService {
	return &BranchService{
		branchRepo: branchRepo,
		events:     events,
	}
}

// Create registers a new branch
func (s *BranchService) Create(ctx context.Context, actor identity.Actor, req CreateBranchRequest) (*BranchResponse, error) {
	if !actor.IsHeadManager() {
		return nil, shared.ErrForbidden
	}

	existing, err := s.branchRepo.FindByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Branch code is already in use")
	}

	branch, err := identity.NewBranch(req.Name, req.Code)
	if err != nil {
		return nil, err
	}
	if req.Address != "" {
		if err := branch.SetAddress(req.Address); err != nil {
			return nil, err
		}
	}
	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	resp := ToBranchResponse(branch)
	s.publishAudit(ctx, audit.NewAdminActionEvent("Branch", string(audit.ActionCreate),
		branch.GetID(), actor.UserID, branch.GetID(), nil, resp))
	return &resp, nil
}

// Get returns a branch visible to the actor
func (s *BranchService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*BranchResponse, error) {
	if !actor.CanAccessBranch(id) {
		return nil, shared.ErrForbidden
	}
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBranchResponse(branch)
	return &resp, nil
}

// List returns the branches visible to the actor
func (s *BranchService) List(ctx context.Context, actor identity.Actor, filter shared.Filter) (*shared.Paginated[BranchResponse], error) {
	all, ids := actor.BranchScope()
	if !all {
		if filter.Filters == nil {
			filter.Filters = make(map[string]interface{})
		}
		filter.Filters["branch_ids"] = ids
	}

	branches, err := s.branchRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.branchRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]BranchResponse, len(branches))
	for i := range branches {
		items[i] = ToBranchResponse(&branches[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// Update edits a branch's mutable fields
func (s *BranchService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateBranchRequest) (*BranchResponse, error) {
	if !actor.HasAnyRole(identity.AdministrativeRoles...) || !actor.CanAccessBranch(id) {
		return nil, shared.ErrForbidden
	}
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := ToBranchResponse(branch)

	if req.Name != nil {
		if err := branch.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		if err := branch.SetAddress(*req.Address); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		// only head managers may open or close a branch
		if !actor.IsHeadManager() {
			return nil, shared.ErrForbidden
		}
		if *req.IsActive {
			branch.Activate()
		} else {
			branch.Deactivate()
		}
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	resp := ToBranchResponse(branch)
	s.publishAudit(ctx, audit.NewAdminActionEvent("Branch", string(audit.ActionUpdate),
		branch.GetID(), actor.UserID, branch.GetID(), before, resp))
	return &resp, nil
}

// Delete removes a branch
func (s *BranchService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if !actor.IsHeadManager() {
		return shared.ErrForbidden
	}
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	before := ToBranchResponse(branch)

	if err := s.branchRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishAudit(ctx, audit.NewAdminActionEvent("Branch", string(audit.ActionDelete),
		id, actor.UserID, id, before, nil))
	return nil
}

func (s *BranchService) publishAudit(ctx context.Context, event shared.DomainEvent) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, event)
}
