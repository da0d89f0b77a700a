// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// UserCounts aggregates user totals for admin statistics.
type UserCounts struct {
	Total  int64
	Active int64
	Banned int64
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	ListPublic(ctx context.Context, limit, offset int) ([]models.User, error)
	SearchBySkill(ctx context.Context, skill string, limit, offset int) ([]models.User, error)
	SetBanned(ctx context.Context, id uint, banned bool) error
	Counts(ctx context.Context) (*UserCounts, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) ListPublic(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("is_public = ? AND is_banned = ?", true, false).
		Limit(limit).Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) SearchBySkill(ctx context.Context, skill string, limit, offset int) ([]models.User, error) {
	var users []models.User

	// Skills are stored as JSON arrays; a case-insensitive substring match
	// over the serialized column works on both PostgreSQL and SQLite.
	pattern := "%" + strings.ToLower(skill) + "%"
	if err := r.db.WithContext(ctx).
		Where("is_public = ? AND is_banned = ?", true, false).
		Where("LOWER(skills_offered) LIKE ? OR LOWER(skills_wanted) LIKE ?", pattern, pattern).
		Limit(limit).Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) SetBanned(ctx context.Context, id uint, banned bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("is_banned", banned)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) Counts(ctx context.Context) (*UserCounts, error) {
	var counts UserCounts
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&counts.Total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("is_banned = ?", true).Count(&counts.Banned).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	counts.Active = counts.Total - counts.Banned
	return &counts, nil
}
