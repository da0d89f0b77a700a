package repository

import (
	"context"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// ActivityRepository defines the interface for activity log data operations.
// Entries are append-only; there are no update or delete operations.
type ActivityRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, action string, limit, offset int) ([]models.ActivityLog, int64, error)
	ListRecent(ctx context.Context, limit int) ([]models.ActivityLog, error)
	CountForUser(ctx context.Context, userID uint) (int64, error)
}

// activityRepository implements ActivityRepository
type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity log repository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *activityRepository) List(ctx context.Context, action string, limit, offset int) ([]models.ActivityLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ActivityLog{})
	if action != "" {
		query = query.Where("action = ?", action)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var entries []models.ActivityLog
	if err := query.
		Preload("User").
		Preload("TargetUser").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return entries, total, nil
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("TargetUser").
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *activityRepository) CountForUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ActivityLog{}).
		Where("user_id = ? OR target_user_id = ?", userID, userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
