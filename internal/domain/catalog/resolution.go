package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ResolvedPrice is the computed price triple for a catalog item at a branch,
// before quantity multiplication. Labor and Packaging are nil when the branch
// has no active rule for that component; a nil component contributes zero and
// is surfaced as a warning, not an error.
type ResolvedPrice struct {
	Item      *CatalogItem     `json:"catalog_item"`
	Base      decimal.Decimal  `json:"base"`
	Labor     *decimal.Decimal `json:"labor"`
	Packaging *decimal.Decimal `json:"packaging"`
	Warnings  []string         `json:"warnings,omitempty"`
}

// HasWarnings reports whether any price component could not be resolved
func (p ResolvedPrice) HasWarnings() bool {
	return len(p.Warnings) > 0
}

// UnitPrice returns base + labor + packaging with nil components as zero
func (p ResolvedPrice) UnitPrice() decimal.Decimal {
	unit := p.Base
	if p.Labor != nil {
		unit = unit.Add(*p.Labor)
	}
	if p.Packaging != nil {
		unit = unit.Add(*p.Packaging)
	}
	return unit
}

// LineTotal returns the unit price multiplied by the quantity
func (p ResolvedPrice) LineTotal(quantity int64) decimal.Decimal {
	return p.UnitPrice().Mul(decimal.NewFromInt(quantity))
}

// MissingRuleWarning builds the warning message for an unresolved component
func MissingRuleWarning(pricingType PricingType, itemName string) string {
	return fmt.Sprintf("no active %s pricing rule for item %q at this branch", pricingType, itemName)
}
