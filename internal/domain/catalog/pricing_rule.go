package catalog

import (
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingType distinguishes the per-branch price components layered on top of
// an item's base price
type PricingType string

const (
	PricingTypeLabor     PricingType = "labor"
	PricingTypePackaging PricingType = "packaging"
)

// IsValid checks if the pricing type is known
func (t PricingType) IsValid() bool {
	return t == PricingTypeLabor || t == PricingTypePackaging
}

// PricingTypes lists every pricing type in resolution order
var PricingTypes = []PricingType{PricingTypeLabor, PricingTypePackaging}

// PricingRule prices one component of a catalog item at one branch.
// Multiple active rules per (item, branch, type) are tolerated; resolution
// takes the first one the store returns and callers must not depend on the
// tie order.
type PricingRule struct {
	shared.BaseAggregateRoot
	CatalogItemID uuid.UUID       `json:"catalog_item_id" gorm:"type:uuid;not null;index:idx_pricing_rule_lookup"`
	BranchID      uuid.UUID       `json:"branch_id" gorm:"type:uuid;not null;index:idx_pricing_rule_lookup"`
	Type          PricingType     `json:"pricing_type" gorm:"size:20;not null;index:idx_pricing_rule_lookup"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Status        ItemStatus      `json:"status" gorm:"size:20;not null;default:active"`
}

// NewPricingRule creates an active pricing rule
func NewPricingRule(catalogItemID, branchID uuid.UUID, pricingType PricingType, price decimal.Decimal) (*PricingRule, error) {
	if catalogItemID == uuid.Nil {
		return nil, shared.NewValidationError("catalog_item_id", "cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewValidationError("branch_id", "cannot be empty")
	}
	if !pricingType.IsValid() {
		return nil, shared.NewValidationError("pricing_type", "must be labor or packaging")
	}
	if price.IsNegative() {
		return nil, shared.NewValidationError("price", "cannot be negative")
	}

	return &PricingRule{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CatalogItemID:     catalogItemID,
		BranchID:          branchID,
		Type:              pricingType,
		Price:             price,
		Status:            ItemStatusActive,
	}, nil
}

// IsActive returns true if the rule participates in resolution
func (r *PricingRule) IsActive() bool {
	return r.Status == ItemStatusActive
}

// SetPrice changes the rule price
func (r *PricingRule) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewValidationError("price", "cannot be negative")
	}
	r.Price = price
	r.IncrementVersion()
	return nil
}

// Activate enables the rule
func (r *PricingRule) Activate() {
	r.Status = ItemStatusActive
	r.IncrementVersion()
}

// Deactivate disables the rule without deleting it
func (r *PricingRule) Deactivate() {
	r.Status = ItemStatusInactive
	r.IncrementVersion()
}
