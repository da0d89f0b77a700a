package repository

import (
	"context"
	"errors"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// FeedbackRepository defines the interface for feedback data operations
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetByID(ctx context.Context, id uint) (*models.Feedback, error)
	GetBySwapAndAuthor(ctx context.Context, swapID, authorID uint) (*models.Feedback, error)
	ListReceivedBy(ctx context.Context, userID uint, limit, offset int) ([]models.Feedback, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Feedback, error)
	Update(ctx context.Context, feedback *models.Feedback) error
	Delete(ctx context.Context, id uint) error
	CountReceivedBy(ctx context.Context, userID uint) (int64, error)
	AverageRatingFor(ctx context.Context, userID uint) (float64, error)
	Stats(ctx context.Context) (total int64, avgRating float64, err error)
}

// feedbackRepository implements FeedbackRepository
type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	if err := r.db.WithContext(ctx).Create(feedback).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Feedback already submitted for this swap")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUserRating(ctx, feedback.ToUserID)
	return nil
}

func (r *feedbackRepository) GetByID(ctx context.Context, id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.WithContext(ctx).Preload("FromUser").Preload("ToUser").First(&feedback, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Feedback", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &feedback, nil
}

func (r *feedbackRepository) GetBySwapAndAuthor(ctx context.Context, swapID, authorID uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.WithContext(ctx).
		Where("swap_id = ? AND from_user_id = ?", swapID, authorID).
		First(&feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No feedback from this author yet
		}
		return nil, models.NewInternalError(err)
	}
	return &feedback, nil
}

func (r *feedbackRepository) ListReceivedBy(ctx context.Context, userID uint, limit, offset int) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	if err := r.db.WithContext(ctx).
		Where("to_user_id = ?", userID).
		Preload("FromUser").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&feedbacks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return feedbacks, nil
}

func (r *feedbackRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	if err := r.db.WithContext(ctx).
		Preload("FromUser").
		Preload("ToUser").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&feedbacks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return feedbacks, nil
}

func (r *feedbackRepository) Update(ctx context.Context, feedback *models.Feedback) error {
	if err := r.db.WithContext(ctx).Save(feedback).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUserRating(ctx, feedback.ToUserID)
	return nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id uint) error {
	// Look up the recipient before the row goes away so their cached rating
	// can be dropped.
	var feedback models.Feedback
	if err := r.db.WithContext(ctx).Select("to_user_id").First(&feedback, id).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewInternalError(err)
	}

	if err := r.db.WithContext(ctx).Delete(&models.Feedback{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	if feedback.ToUserID != 0 {
		cache.InvalidateUserRating(ctx, feedback.ToUserID)
	}
	return nil
}

func (r *feedbackRepository) CountReceivedBy(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Where("to_user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// AverageRatingFor returns the mean rating received by the user, 0 when none.
// The value is served from cache when fresh; every feedback mutation for the
// user drops the cached entry.
func (r *feedbackRepository) AverageRatingFor(ctx context.Context, userID uint) (float64, error) {
	var avg float64
	err := cache.Aside(ctx, cache.UserRatingKey(userID), &avg, cache.RatingTTL, func() error {
		if err := r.db.WithContext(ctx).
			Model(&models.Feedback{}).
			Where("to_user_id = ?", userID).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&avg).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return avg, nil
}

func (r *feedbackRepository) Stats(ctx context.Context) (int64, float64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Feedback{}).Count(&total).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}

	var avg float64
	if err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	return total, avg, nil
}
