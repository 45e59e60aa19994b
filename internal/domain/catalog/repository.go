package catalog

import (
	"context"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// CatalogItemRepository persists catalog items
type CatalogItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CatalogItem, error)
	// FindVisible returns items visible to the branch (global ones included)
	FindVisible(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]CatalogItem, error)
	CountVisible(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, item *CatalogItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PricingRuleRepository persists branch pricing rules
type PricingRuleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PricingRule, error)
	// FindActive returns the active rules for (item, branch, type) in store
	// order; resolution uses the first. An empty result is not an error.
	FindActive(ctx context.Context, catalogItemID, branchID uuid.UUID, pricingType PricingType) ([]PricingRule, error)
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]PricingRule, error)
	Save(ctx context.Context, rule *PricingRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}
