// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SwapRepository defines the interface for swap request data operations
type SwapRepository interface {
	Create(ctx context.Context, swap *models.SwapRequest) error
	GetByID(ctx context.Context, id uint) (*models.SwapRequest, error)
	GetPendingBetween(ctx context.Context, fromUserID, toUserID uint) (*models.SwapRequest, error)
	UpdateStatusIfPending(ctx context.Context, id uint, status models.SwapStatus) (int64, error)
	ListSentBy(ctx context.Context, userID uint, limit, offset int) ([]models.SwapRequest, error)
	ListReceivedBy(ctx context.Context, userID uint, limit, offset int) ([]models.SwapRequest, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.SwapRequest, error)
	CountByStatus(ctx context.Context) (map[models.SwapStatus]int64, error)
	CountForUser(ctx context.Context, userID uint) (*UserSwapCounts, error)
}

// UserSwapCounts summarizes one user's swap involvement.
type UserSwapCounts struct {
	Sent     int64 `json:"sent"`
	Received int64 `json:"received"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}

// swapRepository implements SwapRepository
type swapRepository struct {
	db *gorm.DB
}

// NewSwapRepository creates a new swap repository
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

func (r *swapRepository) Create(ctx context.Context, swap *models.SwapRequest) error {
	if err := r.db.WithContext(ctx).Create(swap).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *swapRepository) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	err := cache.Aside(ctx, cache.SwapKey(id), &swap, cache.SwapTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("FromUser").Preload("ToUser").First(&swap, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Swap request", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &swap, nil
}

func (r *swapRepository) GetPendingBetween(ctx context.Context, fromUserID, toUserID uint) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	if err := r.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ? AND status = ?",
			fromUserID, toUserID, models.SwapStatusPending).
		First(&swap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No pending request exists
		}
		return nil, models.NewInternalError(err)
	}
	return &swap, nil
}

// UpdateStatusIfPending transitions the request only while it is still pending.
// The conditional WHERE makes concurrent decisions race-safe: exactly one
// caller observes a non-zero row count.
func (r *swapRepository) UpdateStatusIfPending(ctx context.Context, id uint, status models.SwapStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ? AND status = ?", id, models.SwapStatusPending).
		Update("status", status)
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateSwap(ctx, id)
	}
	return result.RowsAffected, nil
}

func (r *swapRepository) ListSentBy(ctx context.Context, userID uint, limit, offset int) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Where("from_user_id = ?", userID).
		Preload("FromUser").
		Preload("ToUser").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) ListReceivedBy(ctx context.Context, userID uint, limit, offset int) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Where("to_user_id = ?", userID).
		Preload("FromUser").
		Preload("ToUser").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) ListAll(ctx context.Context, limit, offset int) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Preload("FromUser").
		Preload("ToUser").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) CountByStatus(ctx context.Context) (map[models.SwapStatus]int64, error) {
	type statusCount struct {
		Status models.SwapStatus
		Count  int64
	}
	var rows []statusCount
	if err := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	counts := make(map[models.SwapStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *swapRepository) CountForUser(ctx context.Context, userID uint) (*UserSwapCounts, error) {
	var counts UserSwapCounts
	base := func() *gorm.DB { return r.db.WithContext(ctx).Model(&models.SwapRequest{}) }

	if err := base().Where("from_user_id = ?", userID).Count(&counts.Sent).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := base().Where("to_user_id = ?", userID).Count(&counts.Received).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := base().
		Where("(from_user_id = ? OR to_user_id = ?) AND status = ?", userID, userID, models.SwapStatusAccepted).
		Count(&counts.Accepted).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := base().
		Where("(from_user_id = ? OR to_user_id = ?) AND status = ?", userID, userID, models.SwapStatusRejected).
		Count(&counts.Rejected).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &counts, nil
}
