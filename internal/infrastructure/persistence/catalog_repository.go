package persistence

import (
	"context"
	"errors"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/catalog"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCatalogItemRepository implements CatalogItemRepository using GORM
type GormCatalogItemRepository struct {
	db *gorm.DB
}

// NewGormCatalogItemRepository creates a new GormCatalogItemRepository
func NewGormCatalogItemRepository(db *gorm.DB) *GormCatalogItemRepository {
	return &GormCatalogItemRepository{db: db}
}

// FindByID finds a catalog item
func (r *GormCatalogItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.CatalogItem, error) {
	var item catalog.CatalogItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindVisible lists items visible to the branch: global items plus the
// branch's own.
func (r *GormCatalogItemRepository) FindVisible(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]catalog.CatalogItem, error) {
	query := r.visibleQuery(ctx, branchID, filter)
	query = applyOrdering(query, filter)
	query = applyPagination(query, filter)

	var items []catalog.CatalogItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountVisible counts items visible to the branch
func (r *GormCatalogItemRepository) CountVisible(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.visibleQuery(ctx, branchID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a catalog item
func (r *GormCatalogItemRepository) Save(ctx context.Context, item *catalog.CatalogItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes a catalog item and its pricing rules
func (r *GormCatalogItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("catalog_item_id = ?", id).Delete(&catalog.PricingRule{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&catalog.CatalogItem{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormCatalogItemRepository) visibleQuery(ctx context.Context, branchID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&catalog.CatalogItem{}).
		Where("is_global = ? OR branch_id = ?", true, branchID)
	if itemType, ok := filter.Filters["type"].(catalog.ItemType); ok {
		query = query.Where("type = ?", itemType)
	}
	if status, ok := filter.Filters["status"].(catalog.ItemStatus); ok {
		query = query.Where("status = ?", status)
	}
	return applySearch(query, filter, "name")
}

// GormPricingRuleRepository implements PricingRuleRepository using GORM
type GormPricingRuleRepository struct {
	db *gorm.DB
}

// NewGormPricingRuleRepository creates a new GormPricingRuleRepository
func NewGormPricingRuleRepository(db *gorm.DB) *GormPricingRuleRepository {
	return &GormPricingRuleRepository{db: db}
}

// FindByID finds a pricing rule
func (r *GormPricingRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.PricingRule, error) {
	var rule catalog.PricingRule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// FindActive returns the active rules for (item, branch, type) in creation
// order. Resolution picks the first.
func (r *GormPricingRuleRepository) FindActive(ctx context.Context, catalogItemID, branchID uuid.UUID, pricingType catalog.PricingType) ([]catalog.PricingRule, error) {
	var rules []catalog.PricingRule
	if err := r.db.WithContext(ctx).
		Where("catalog_item_id = ? AND branch_id = ? AND type = ? AND status = ?",
			catalogItemID, branchID, pricingType, catalog.ItemStatusActive).
		Order("created_at ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// FindByBranch lists a branch's pricing rules
func (r *GormPricingRuleRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]catalog.PricingRule, error) {
	query := r.db.WithContext(ctx).Model(&catalog.PricingRule{}).Where("branch_id = ?", branchID)
	if itemID, ok := filter.Filters["catalog_item_id"].(uuid.UUID); ok && itemID != uuid.Nil {
		query = query.Where("catalog_item_id = ?", itemID)
	}
	query = applyOrdering(query, filter)
	query = applyPagination(query, filter)

	var rules []catalog.PricingRule
	if err := query.Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// Save persists a pricing rule
func (r *GormPricingRuleRepository) Save(ctx context.Context, rule *catalog.PricingRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

// Delete removes a pricing rule
func (r *GormPricingRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.PricingRule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
