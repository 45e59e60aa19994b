package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user with roles and branch assignments loaded
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Preload("Assignments").
		First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadRoles(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username with roles and assignments loaded
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Preload("Assignments").
		First(&user, "username = ?", strings.ToLower(strings.TrimSpace(username))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadRoles(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll lists users matching the filter
func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	query := r.userQuery(ctx, filter).Preload("Assignments")
	query = applyOrdering(query, filter)
	query = applyPagination(query, filter)

	var users []identity.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		if err := r.loadRoles(ctx, &users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// Count counts users matching the filter
func (r *GormUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.userQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the user and replaces the role and assignment links in one
// transaction.
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(user).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", user.GetID()).Delete(&identity.UserRole{}).Error; err != nil {
			return err
		}
		for _, role := range user.Roles {
			if err := tx.Create(&identity.UserRole{UserID: user.GetID(), Role: role}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", user.GetID()).Delete(&identity.BranchAssignment{}).Error; err != nil {
			return err
		}
		for i := range user.Assignments {
			if err := tx.Create(&user.Assignments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a user along with role and assignment links
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&identity.UserRole{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&identity.BranchAssignment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&identity.User{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormUserRepository) loadRoles(ctx context.Context, user *identity.User) error {
	var links []identity.UserRole
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", user.GetID()).
		Order("created_at ASC").
		Find(&links).Error; err != nil {
		return err
	}
	user.Roles = make([]identity.Role, len(links))
	for i, link := range links {
		user.Roles[i] = link.Role
	}
	return nil
}

func (r *GormUserRepository) userQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&identity.User{})
	if active, ok := filter.Filters["is_active"].(bool); ok {
		query = query.Where("is_active = ?", active)
	}
	if branchID, ok := filter.Filters["branch_id"].(uuid.UUID); ok && branchID != uuid.Nil {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&identity.BranchAssignment{}).Select("user_id").Where("branch_id = ?", branchID),
		)
	}
	return applySearch(query, filter, "username", "display_name")
}
