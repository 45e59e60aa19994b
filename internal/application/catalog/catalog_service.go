package catalog

import (
	"context"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/audit"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/catalog"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// CatalogService handles catalog item and pricing rule administration.
// Mutations are restricted to administrative roles within their branch scope;
// global items belong to head managers.
type CatalogService struct {
	itemRepo catalog.CatalogItemRepository
	ruleRepo catalog.PricingRuleRepository
	events   shared.EventPublisher
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(itemRepo catalog.CatalogItemRepository, ruleRepo catalog.PricingRuleRepository, events shared.EventPublisher) *CatalogService {
	return &CatalogService{
		itemRepo: itemRepo,
		ruleRepo: ruleRepo,
		events:   events,
	}
}

// CreateItem adds a catalog item
func (s *CatalogService) CreateItem(ctx context.Context, actor identity.Actor, req CreateItemRequest) (*ItemResponse, error) {
	if !actor.HasAnyRole(identity.AdministrativeRoles...) {
		return nil, shared.ErrForbidden
	}

	var item *catalog.CatalogItem
	var err error
	if req.BranchID == nil {
		if !actor.IsHeadManager() {
			return nil, shared.ErrForbidden
		}
		item, err = catalog.NewGlobalCatalogItem(req.Name, req.Type, req.BasePrice)
	} else {
		if !actor.CanAccessBranch(*req.BranchID) {
			return nil, shared.ErrForbidden
		}
		item, err = catalog.NewBranchCatalogItem(req.Name, req.Type, req.BasePrice, *req.BranchID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToItemResponse(item)
	s.publishAudit(ctx, audit.NewAdminActionEvent("CatalogItem", string(audit.ActionCreate),
		item.GetID(), actor.UserID, s.itemBranch(item), nil, resp))
	return &resp, nil
}

// GetItem returns a catalog item visible to the actor
func (s *CatalogService) GetItem(ctx context.Context, actor identity.Actor, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.itemVisible(actor, item) {
		return nil, shared.ErrForbidden
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// ListItems returns items visible to a branch
func (s *CatalogService) ListItems(ctx context.Context, actor identity.Actor, branchID uuid.UUID, filter shared.Filter) (*shared.Paginated[ItemResponse], error) {
	if !actor.CanAccessBranch(branchID) {
		return nil, shared.ErrForbidden
	}

	items, err := s.itemRepo.FindVisible(ctx, branchID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.itemRepo.CountVisible(ctx, branchID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.Limit())
	return &result, nil
}

// UpdateItem edits a catalog item. Price edits never touch existing orders;
// their lines keep the snapshot taken at creation.
func (s *CatalogService) UpdateItem(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeItemMutation(actor, item); err != nil {
		return nil, err
	}
	before := ToItemResponse(item)

	if req.Name != nil {
		if err := item.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.BasePrice != nil {
		if err := item.SetBasePrice(*req.BasePrice); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		switch *req.Status {
		case catalog.ItemStatusActive:
			item.Activate()
		case catalog.ItemStatusInactive:
			item.Deactivate()
		default:
			return nil, shared.NewValidationError("status", "must be active or inactive")
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToItemResponse(item)
	s.publishAudit(ctx, audit.NewAdminActionEvent("CatalogItem", string(audit.ActionUpdate),
		item.GetID(), actor.UserID, s.itemBranch(item), before, resp))
	return &resp, nil
}

// DeleteItem removes a catalog item. Historical order lines are unaffected;
// they carry their own snapshots.
func (s *CatalogService) DeleteItem(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeItemMutation(actor, item); err != nil {
		return err
	}
	before := ToItemResponse(item)

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishAudit(ctx, audit.NewAdminActionEvent("CatalogItem", string(audit.ActionDelete),
		id, actor.UserID, s.itemBranch(item), before, nil))
	return nil
}

// CreateRule adds a pricing rule for an item at a branch
func (s *CatalogService) CreateRule(ctx context.Context, actor identity.Actor, req CreateRuleRequest) (*RuleResponse, error) {
	if !actor.HasAnyRole(identity.AdministrativeRoles...) || !actor.CanAccessBranch(req.BranchID) {
		return nil, shared.ErrForbidden
	}

	item, err := s.itemRepo.FindByID(ctx, req.CatalogItemID)
	if err != nil {
		return nil, err
	}
	if !item.VisibleTo(req.BranchID) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Catalog item is not visible to this branch")
	}

	rule, err := catalog.NewPricingRule(req.CatalogItemID, req.BranchID, req.Type, req.Price)
	if err != nil {
		return nil, err
	}
	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}

	resp := ToRuleResponse(rule)
	s.publishAudit(ctx, audit.NewAdminActionEvent("PricingRule", string(audit.ActionCreate),
		rule.GetID(), actor.UserID, rule.BranchID, nil, resp))
	return &resp, nil
}

// ListRules returns the pricing rules of a branch
func (s *CatalogService) ListRules(ctx context.Context, actor identity.Actor, branchID uuid.UUID, filter shared.Filter) ([]RuleResponse, error) {
	if !actor.CanAccessBranch(branchID) {
		return nil, shared.ErrForbidden
	}
	rules, err := s.ruleRepo.FindByBranch(ctx, branchID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]RuleResponse, len(rules))
	for i := range rules {
		responses[i] = ToRuleResponse(&rules[i])
	}
	return responses, nil
}

// UpdateRule edits a pricing rule
func (s *CatalogService) UpdateRule(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateRuleRequest) (*RuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.HasAnyRole(identity.AdministrativeRoles...) || !actor.CanAccessBranch(rule.BranchID) {
		return nil, shared.ErrForbidden
	}
	before := ToRuleResponse(rule)

	if req.Price != nil {
		if err := rule.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		switch *req.Status {
		case catalog.ItemStatusActive:
			rule.Activate()
		case catalog.ItemStatusInactive:
			rule.Deactivate()
		default:
			return nil, shared.NewValidationError("status", "must be active or inactive")
		}
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}

	resp := ToRuleResponse(rule)
	s.publishAudit(ctx, audit.NewAdminActionEvent("PricingRule", string(audit.ActionUpdate),
		rule.GetID(), actor.UserID, rule.BranchID, before, resp))
	return &resp, nil
}

// DeleteRule removes a pricing rule
func (s *CatalogService) DeleteRule(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.HasAnyRole(identity.AdministrativeRoles...) || !actor.CanAccessBranch(rule.BranchID) {
		return shared.ErrForbidden
	}
	before := ToRuleResponse(rule)

	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishAudit(ctx, audit.NewAdminActionEvent("PricingRule", string(audit.ActionDelete),
		id, actor.UserID, rule.BranchID, before, nil))
	return nil
}

func (s *CatalogService) itemVisible(actor identity.Actor, item *catalog.CatalogItem) bool {
	if item.IsGlobal {
		return true
	}
	return item.BranchID != nil && actor.CanAccessBranch(*item.BranchID)
}

func (s *CatalogService) authorizeItemMutation(actor identity.Actor, item *catalog.CatalogItem) error {
	if !actor.HasAnyRole(identity.AdministrativeRoles...) {
		return shared.ErrForbidden
	}
	if item.IsGlobal {
		if !actor.IsHeadManager() {
			return shared.ErrForbidden
		}
		return nil
	}
	if item.BranchID == nil || !actor.CanAccessBranch(*item.BranchID) {
		return shared.ErrForbidden
	}
	return nil
}

// itemBranch returns the branch to attribute audit entries to; uuid.Nil for
// global items
func (s *CatalogService) itemBranch(item *catalog.CatalogItem) uuid.UUID {
	if item.BranchID != nil {
		return *item.BranchID
	}
	return uuid.Nil
}

func (s *CatalogService) publishAudit(ctx context.Context, event shared.DomainEvent) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, event)
}
