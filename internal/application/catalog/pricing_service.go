package catalog

import (
	"context"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/catalog"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// PricingService resolves the price of a catalog item at a branch. Resolution
// is read-only and idempotent; missing labor or packaging rules contribute
// zero and surface as warnings rather than errors.
type PricingService struct {
	itemRepo catalog.CatalogItemRepository
	ruleRepo catalog.PricingRuleRepository
}

// NewPricingService creates a new PricingService
func NewPricingService(itemRepo catalog.CatalogItemRepository, ruleRepo catalog.PricingRuleRepository) *PricingService {
	return &PricingService{
		itemRepo: itemRepo,
		ruleRepo: ruleRepo,
	}
}

// Resolve computes the price triple for one item at one branch
func (s *PricingService) Resolve(ctx context.Context, catalogItemID, branchID uuid.UUID) (catalog.ResolvedPrice, error) {
	item, err := s.itemRepo.FindByID(ctx, catalogItemID)
	if err != nil {
		return catalog.ResolvedPrice{}, err
	}
	if !item.IsActive() {
		return catalog.ResolvedPrice{}, shared.NewDomainError("INVALID_STATE", "Catalog item is inactive")
	}
	if !item.VisibleTo(branchID) {
		return catalog.ResolvedPrice{}, shared.ErrForbidden
	}

	resolved := catalog.ResolvedPrice{
		Item: item,
		Base: item.BasePrice,
	}

	for _, pricingType := range catalog.PricingTypes {
		rules, err := s.ruleRepo.FindActive(ctx, catalogItemID, branchID, pricingType)
		if err != nil {
			return catalog.ResolvedPrice{}, err
		}
		if len(rules) == 0 {
			resolved.Warnings = append(resolved.Warnings, catalog.MissingRuleWarning(pricingType, item.Name))
			continue
		}
		price := rules[0].Price
		switch pricingType {
		case catalog.PricingTypeLabor:
			resolved.Labor = &price
		case catalog.PricingTypePackaging:
			resolved.Packaging = &price
		}
	}

	return resolved, nil
}

// ResolveForQuantity resolves and projects the result for a quantity
func (s *PricingService) ResolveForQuantity(ctx context.Context, req ResolvePriceRequest) (*ResolvedPriceResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.NewValidationError("quantity", "must be positive")
	}
	resolved, err := s.Resolve(ctx, req.CatalogItemID, req.BranchID)
	if err != nil {
		return nil, err
	}
	resp := ToResolvedPriceResponse(resolved, req.Quantity)
	return &resp, nil
}
