package persistence

import (
	"context"
	"testing"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/catalog"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.CatalogItem{}, &catalog.PricingRule{}))
	return db
}

func seedItem(t *testing.T, repo *GormCatalogItemRepository, name string, branchID *uuid.UUID) *catalog.CatalogItem {
	t.Helper()
	var item *catalog.CatalogItem
	var err error
	if branchID == nil {
		item, err = catalog.NewGlobalCatalogItem(name, catalog.ItemTypeService, decimal.NewFromInt(500))
	} else {
		item, err = catalog.NewBranchCatalogItem(name, catalog.ItemTypeService, decimal.NewFromInt(500), *branchID)
	}
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), item))
	return item
}

func TestGormCatalogItemRepository_FindVisible(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormCatalogItemRepository(db)
	ctx := context.Background()

	branchID := uuid.New()
	otherBranchID := uuid.New()
	seedItem(t, repo, "Engine Tune-Up", nil)
	own := seedItem(t, repo, "Underwash Special", &branchID)
	seedItem(t, repo, "Foreign Only", &otherBranchID)

	t.Run("returns global items plus the branch's own", func(t *testing.T) {
		items, err := repo.FindVisible(ctx, branchID, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, items, 2)
		for _, item := range items {
			assert.True(t, item.VisibleTo(branchID))
		}

		count, err := repo.CountVisible(ctx, branchID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("search narrows by name", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "underwash"

		items, err := repo.FindVisible(ctx, branchID, filter)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, own.GetID(), items[0].GetID())
	})
}

func TestGormPricingRuleRepository_FindActive(t *testing.T) {
	db := setupCatalogTestDB(t)
	itemRepo := NewGormCatalogItemRepository(db)
	repo := NewGormPricingRuleRepository(db)
	ctx := context.Background()

	branchID := uuid.New()
	item := seedItem(t, itemRepo, "Engine Tune-Up", nil)

	labor, err := catalog.NewPricingRule(item.GetID(), branchID, catalog.PricingTypeLabor, decimal.NewFromInt(150))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, labor))

	inactive, err := catalog.NewPricingRule(item.GetID(), branchID, catalog.PricingTypePackaging, decimal.NewFromInt(50))
	require.NoError(t, err)
	inactive.Deactivate()
	require.NoError(t, repo.Save(ctx, inactive))

	t.Run("returns only active rules for the component", func(t *testing.T) {
		rules, err := repo.FindActive(ctx, item.GetID(), branchID, catalog.PricingTypeLabor)
		require.NoError(t, err)
		require.Len(t, rules, 1)
		assert.True(t, decimal.NewFromInt(150).Equal(rules[0].Price))
	})

	t.Run("inactive rules do not resolve", func(t *testing.T) {
		rules, err := repo.FindActive(ctx, item.GetID(), branchID, catalog.PricingTypePackaging)
		require.NoError(t, err)
		assert.Empty(t, rules)
	})

	t.Run("foreign branch has no rules", func(t *testing.T) {
		rules, err := repo.FindActive(ctx, item.GetID(), uuid.New(), catalog.PricingTypeLabor)
		require.NoError(t, err)
		assert.Empty(t, rules)
	})
}

func TestGormCatalogItemRepository_DeleteCascadesRules(t *testing.T) {
	db := setupCatalogTestDB(t)
	itemRepo := NewGormCatalogItemRepository(db)
	ruleRepo := NewGormPricingRuleRepository(db)
	ctx := context.Background()

	branchID := uuid.New()
	item := seedItem(t, itemRepo, "Engine Tune-Up", nil)
	rule, err := catalog.NewPricingRule(item.GetID(), branchID, catalog.PricingTypeLabor, decimal.NewFromInt(150))
	require.NoError(t, err)
	require.NoError(t, ruleRepo.Save(ctx, rule))

	require.NoError(t, itemRepo.Delete(ctx, item.GetID()))

	_, err = itemRepo.FindByID(ctx, item.GetID())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = ruleRepo.FindByID(ctx, rule.GetID())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
