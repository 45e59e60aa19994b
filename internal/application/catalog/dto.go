package catalog

import (
	"time"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemRequest carries a new catalog item
type CreateItemRequest struct {
	Name      string           `json:"name" binding:"required,max=200"`
	Type      catalog.ItemType `json:"type" binding:"required"`
	BasePrice decimal.Decimal  `json:"base_price" binding:"required"`
	// BranchID empty means a global item (head manager only)
	BranchID *uuid.UUID `json:"branch_id,omitempty"`
}

// UpdateItemRequest carries mutable item fields
type UpdateItemRequest struct {
	Name      *string          `json:"name,omitempty"`
	BasePrice *decimal.Decimal `json:"base_price,omitempty"`
	Status    *catalog.ItemStatus `json:"status,omitempty"`
}

// ItemResponse is the outward view of a catalog item
type ItemResponse struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Type      catalog.ItemType   `json:"type"`
	BasePrice decimal.Decimal    `json:"base_price"`
	IsGlobal  bool               `json:"is_global"`
	BranchID  *uuid.UUID         `json:"branch_id,omitempty"`
	Status    catalog.ItemStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ToItemResponse converts a catalog item to its response form
func ToItemResponse(item *catalog.CatalogItem) ItemResponse {
	return ItemResponse{
		ID:        item.GetID(),
		Name:      item.Name,
		Type:      item.Type,
		BasePrice: item.BasePrice,
		IsGlobal:  item.IsGlobal,
		BranchID:  item.BranchID,
		Status:    item.Status,
		CreatedAt: item.GetCreatedAt(),
		UpdatedAt: item.GetUpdatedAt(),
	}
}

// CreateRuleRequest carries a new pricing rule
type CreateRuleRequest struct {
	CatalogItemID uuid.UUID           `json:"catalog_item_id" binding:"required"`
	BranchID      uuid.UUID           `json:"branch_id" binding:"required"`
	Type          catalog.PricingType `json:"pricing_type" binding:"required"`
	Price         decimal.Decimal     `json:"price" binding:"required"`
}

// UpdateRuleRequest carries mutable rule fields
type UpdateRuleRequest struct {
	Price  *decimal.Decimal    `json:"price,omitempty"`
	Status *catalog.ItemStatus `json:"status,omitempty"`
}

// RuleResponse is the outward view of a pricing rule
type RuleResponse struct {
	ID            uuid.UUID           `json:"id"`
	CatalogItemID uuid.UUID           `json:"catalog_item_id"`
	BranchID      uuid.UUID           `json:"branch_id"`
	Type          catalog.PricingType `json:"pricing_type"`
	Price         decimal.Decimal     `json:"price"`
	Status        catalog.ItemStatus  `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ToRuleResponse converts a pricing rule to its response form
func ToRuleResponse(rule *catalog.PricingRule) RuleResponse {
	return RuleResponse{
		ID:            rule.GetID(),
		CatalogItemID: rule.CatalogItemID,
		BranchID:      rule.BranchID,
		Type:          rule.Type,
		Price:         rule.Price,
		Status:        rule.Status,
		CreatedAt:     rule.GetCreatedAt(),
		UpdatedAt:     rule.GetUpdatedAt(),
	}
}

// ResolvePriceRequest asks for the resolved price of an item at a branch
type ResolvePriceRequest struct {
	CatalogItemID uuid.UUID `json:"catalog_item_id" binding:"required"`
	BranchID      uuid.UUID `json:"branch_id" binding:"required"`
	Quantity      int64     `json:"quantity" binding:"required,min=1"`
}

// ResolvedPriceResponse is the outward view of a price resolution
type ResolvedPriceResponse struct {
	CatalogItemID uuid.UUID        `json:"catalog_item_id"`
	Name          string           `json:"name"`
	Type          catalog.ItemType `json:"type"`
	BasePrice     decimal.Decimal  `json:"base_price"`
	LaborPrice    *decimal.Decimal `json:"labor_price"`
	PackagingPrice *decimal.Decimal `json:"packaging_price"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	Quantity      int64            `json:"quantity"`
	LineTotal     decimal.Decimal  `json:"line_total"`
	Warnings      []string         `json:"warnings,omitempty"`
}

// ToResolvedPriceResponse converts a resolution to its response form
func ToResolvedPriceResponse(resolved catalog.ResolvedPrice, quantity int64) ResolvedPriceResponse {
	return ResolvedPriceResponse{
		CatalogItemID:  resolved.Item.GetID(),
		Name:           resolved.Item.Name,
		Type:           resolved.Item.Type,
		BasePrice:      resolved.Base,
		LaborPrice:     resolved.Labor,
		PackagingPrice: resolved.Packaging,
		UnitPrice:      resolved.UnitPrice(),
		Quantity:       quantity,
		LineTotal:      resolved.LineTotal(quantity),
		Warnings:       resolved.Warnings,
	}
}
