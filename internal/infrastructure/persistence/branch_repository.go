package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBranchRepository implements BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FindByID finds a branch by its ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Branch, error) {
	var branch identity.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &branch, nil
}

// FindByCode finds a branch by its unique code
func (r *GormBranchRepository) FindByCode(ctx context.Context, code string) (*identity.Branch, error) {
	var branch identity.Branch
	if err := r.db.WithContext(ctx).
		First(&branch, "code = ?", strings.ToUpper(strings.TrimSpace(code))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &branch, nil
}

// FindAll lists branches, optionally narrowed to the IDs in the filter
func (r *GormBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Branch, error) {
	query := r.branchQuery(ctx, filter)
	query = applyOrdering(query, filter)
	query = applyPagination(query, filter)

	var branches []identity.Branch
	if err := query.Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// Count counts branches matching the filter
func (r *GormBranchRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.branchQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a branch
func (r *GormBranchRepository) Save(ctx context.Context, branch *identity.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

// Delete removes a branch
func (r *GormBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Branch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormBranchRepository) branchQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&identity.Branch{})
	if ids, ok := filter.Filters["branch_ids"].([]uuid.UUID); ok && len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	return applySearch(query, filter, "name", "code")
}
