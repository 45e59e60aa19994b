package catalog

import (
	"strings"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemType classifies a catalog entry
type ItemType string

const (
	ItemTypeService ItemType = "service"
	ItemTypeProduct ItemType = "product"
	ItemTypePackage ItemType = "package"
)

// IsValid checks if the item type is known
func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeService, ItemTypeProduct, ItemTypePackage:
		return true
	}
	return false
}

// ItemStatus is the lifecycle status of a catalog entry
type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "active"
	ItemStatusInactive ItemStatus = "inactive"
)

// CatalogItem is a priced entry in the service catalog. An item is either
// global (visible to every branch) or owned by a single branch.
type CatalogItem struct {
	shared.BaseAggregateRoot
	Name      string          `json:"name" gorm:"size:200;not null"`
	Type      ItemType        `json:"type" gorm:"size:20;not null"`
	BasePrice decimal.Decimal `json:"base_price" gorm:"type:decimal(12,2);not null"`
	IsGlobal  bool            `json:"is_global" gorm:"not null;default:false"`
	BranchID  *uuid.UUID      `json:"branch_id,omitempty" gorm:"type:uuid;index"`
	Status    ItemStatus      `json:"status" gorm:"size:20;not null;default:active"`
}

// NewGlobalCatalogItem creates an item visible to all branches
func NewGlobalCatalogItem(name string, itemType ItemType, basePrice decimal.Decimal) (*CatalogItem, error) {
	return newCatalogItem(name, itemType, basePrice, nil)
}

// NewBranchCatalogItem creates an item visible only to one branch
func NewBranchCatalogItem(name string, itemType ItemType, basePrice decimal.Decimal, branchID uuid.UUID) (*CatalogItem, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewValidationError("branch_id", "cannot be empty")
	}
	return newCatalogItem(name, itemType, basePrice, &branchID)
}

func newCatalogItem(name string, itemType ItemType, basePrice decimal.Decimal, branchID *uuid.UUID) (*CatalogItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("name", "cannot exceed 200 characters")
	}
	if !itemType.IsValid() {
		return nil, shared.NewValidationError("type", "must be service, product or package")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewValidationError("base_price", "cannot be negative")
	}

	return &CatalogItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              itemType,
		BasePrice:         basePrice,
		IsGlobal:          branchID == nil,
		BranchID:          branchID,
		Status:            ItemStatusActive,
	}, nil
}

// IsActive returns true if the item is active
func (i *CatalogItem) IsActive() bool {
	return i.Status == ItemStatusActive
}

// VisibleTo reports whether the item may be used by the given branch
func (i *CatalogItem) VisibleTo(branchID uuid.UUID) bool {
	if i.IsGlobal {
		return true
	}
	return i.BranchID != nil && *i.BranchID == branchID
}

// Rename changes the item name
func (i *CatalogItem) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name", "cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name", "cannot exceed 200 characters")
	}
	i.Name = name
	i.IncrementVersion()
	return nil
}

// SetBasePrice changes the base price. Existing job-order items keep their
// snapshotted prices; only future resolutions see the new value.
func (i *CatalogItem) SetBasePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewValidationError("base_price", "cannot be negative")
	}
	i.BasePrice = price
	i.IncrementVersion()
	return nil
}

// Activate marks the item usable for new orders
func (i *CatalogItem) Activate() {
	i.Status = ItemStatusActive
	i.IncrementVersion()
}

// Deactivate withdraws the item from new orders
func (i *CatalogItem) Deactivate() {
	i.Status = ItemStatusInactive
	i.IncrementVersion()
}
