package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestResolvedPriceUnitPrice(t *testing.T) {
	item, err := NewGlobalCatalogItem("Oil Change", ItemTypeService, dec("500.00"))
	require.NoError(t, err)

	t.Run("all components present", func(t *testing.T) {
		labor := dec("150.00")
		packaging := dec("25.00")
		p := ResolvedPrice{Item: item, Base: item.BasePrice, Labor: &labor, Packaging: &packaging}

		assert.True(t, p.UnitPrice().Equal(dec("675.00")))
		assert.True(t, p.LineTotal(3).Equal(dec("2025.00")))
		assert.False(t, p.HasWarnings())
	})

	t.Run("missing components count as zero", func(t *testing.T) {
		p := ResolvedPrice{
			Item: item,
			Base: item.BasePrice,
			Warnings: []string{
				MissingRuleWarning(PricingTypeLabor, item.Name),
				MissingRuleWarning(PricingTypePackaging, item.Name),
			},
		}

		assert.True(t, p.UnitPrice().Equal(dec("500.00")))
		assert.True(t, p.LineTotal(2).Equal(dec("1000.00")))
		assert.True(t, p.HasWarnings())
		assert.Len(t, p.Warnings, 2)
	})

	t.Run("zero quantity yields zero total", func(t *testing.T) {
		p := ResolvedPrice{Item: item, Base: item.BasePrice}
		assert.True(t, p.LineTotal(0).IsZero())
	})
}

func TestCatalogItemVisibility(t *testing.T) {
	branchA := uuid.New()
	branchB := uuid.New()

	global, err := NewGlobalCatalogItem("Brake Fluid", ItemTypeProduct, dec("320.00"))
	require.NoError(t, err)
	local, err := NewBranchCatalogItem("Underwash Promo", ItemTypePackage, dec("999.00"), branchA)
	require.NoError(t, err)

	assert.True(t, global.VisibleTo(branchA))
	assert.True(t, global.VisibleTo(branchB))
	assert.True(t, local.VisibleTo(branchA))
	assert.False(t, local.VisibleTo(branchB))
}

func TestCatalogItemValidation(t *testing.T) {
	t.Run("negative base price rejected", func(t *testing.T) {
		_, err := NewGlobalCatalogItem("Bad", ItemTypeService, dec("-1"))
		assert.Error(t, err)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		_, err := NewGlobalCatalogItem("Bad", ItemType("subscription"), dec("1"))
		assert.Error(t, err)
	})

	t.Run("branch item requires branch", func(t *testing.T) {
		_, err := NewBranchCatalogItem("Bad", ItemTypeService, dec("1"), uuid.Nil)
		assert.Error(t, err)
	})
}

func TestPricingRule(t *testing.T) {
	itemID := uuid.New()
	branchID := uuid.New()

	rule, err := NewPricingRule(itemID, branchID, PricingTypeLabor, dec("150.00"))
	require.NoError(t, err)
	assert.True(t, rule.IsActive())

	rule.Deactivate()
	assert.False(t, rule.IsActive())

	assert.Error(t, rule.SetPrice(dec("-5")))
	require.NoError(t, rule.SetPrice(dec("175.00")))
	assert.True(t, rule.Price.Equal(dec("175.00")))

	_, err = NewPricingRule(itemID, branchID, PricingType("discount"), dec("1"))
	assert.Error(t, err)
}
