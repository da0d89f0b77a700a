package service

import (
	"context"
	"strings"

	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// PlatformStats aggregates platform-wide counters for the admin dashboard.
type PlatformStats struct {
	Users struct {
		Total  int64 `json:"total"`
		Active int64 `json:"active"`
		Banned int64 `json:"banned"`
	} `json:"users"`
	Swaps struct {
		Total    int64 `json:"total"`
		Pending  int64 `json:"pending"`
		Accepted int64 `json:"accepted"`
		Rejected int64 `json:"rejected"`
	} `json:"swaps"`
	Feedback struct {
		Total     int64   `json:"total"`
		AvgRating float64 `json:"avg_rating"`
	} `json:"feedback"`
}

// UserReport summarizes one user's standing for moderation review.
type UserReport struct {
	User          models.User               `json:"user"`
	Swaps         repository.UserSwapCounts `json:"swaps"`
	FeedbackCount int64                     `json:"feedback_count"`
	AvgRating     float64                   `json:"avg_rating"`
	ActivityCount int64                     `json:"activity_count"`
}

// AdminService provides moderation and platform statistics business logic.
type AdminService struct {
	userRepo     repository.UserRepository
	swapRepo     repository.SwapRepository
	feedbackRepo repository.FeedbackRepository
	activity     *ActivityService
}

// NewAdminService returns a new AdminService.
func NewAdminService(userRepo repository.UserRepository, swapRepo repository.SwapRepository, feedbackRepo repository.FeedbackRepository, activity *ActivityService) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		swapRepo:     swapRepo,
		feedbackRepo: feedbackRepo,
		activity:     activity,
	}
}

// BanUser bans the target user and records the action in the audit trail.
func (s *AdminService) BanUser(ctx context.Context, adminID, targetID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, models.NewValidationError("User is already banned")
	}

	if err := s.userRepo.SetBanned(ctx, targetID, true); err != nil {
		return nil, err
	}
	cache.InvalidateStats(ctx)

	s.activity.Record(ctx, adminID, models.ActionUserBanned, &targetID, "User banned by admin")

	user.IsBanned = true
	return user, nil
}

// UnbanUser lifts a ban and records the action in the audit trail.
func (s *AdminService) UnbanUser(ctx context.Context, adminID, targetID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !user.IsBanned {
		return nil, models.NewValidationError("User is not banned")
	}

	if err := s.userRepo.SetBanned(ctx, targetID, false); err != nil {
		return nil, err
	}
	cache.InvalidateStats(ctx)

	s.activity.Record(ctx, adminID, models.ActionUserUnbanned, &targetID, "User unbanned by admin")

	user.IsBanned = false
	return user, nil
}

// GetStats returns platform-wide totals, served from cache when fresh.
func (s *AdminService) GetStats(ctx context.Context) (*PlatformStats, error) {
	var stats PlatformStats

	err := cache.Aside(ctx, cache.AdminStatsKey, &stats, cache.AdminStatsTTL, func() error {
		userCounts, err := s.userRepo.Counts(ctx)
		if err != nil {
			return err
		}
		stats.Users.Total = userCounts.Total
		stats.Users.Active = userCounts.Active
		stats.Users.Banned = userCounts.Banned

		swapCounts, err := s.swapRepo.CountByStatus(ctx)
		if err != nil {
			return err
		}
		stats.Swaps.Pending = swapCounts[models.SwapStatusPending]
		stats.Swaps.Accepted = swapCounts[models.SwapStatusAccepted]
		stats.Swaps.Rejected = swapCounts[models.SwapStatusRejected]
		for _, count := range swapCounts {
			stats.Swaps.Total += count
		}

		total, avg, err := s.feedbackRepo.Stats(ctx)
		if err != nil {
			return err
		}
		stats.Feedback.Total = total
		stats.Feedback.AvgRating = avg
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetUserReport returns a moderation summary for the target user.
func (s *AdminService) GetUserReport(ctx context.Context, targetID uint) (*UserReport, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	swapCounts, err := s.swapRepo.CountForUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	feedbackCount, err := s.feedbackRepo.CountReceivedBy(ctx, targetID)
	if err != nil {
		return nil, err
	}

	avgRating, err := s.feedbackRepo.AverageRatingFor(ctx, targetID)
	if err != nil {
		return nil, err
	}

	activityCount, err := s.activity.CountForUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	return &UserReport{
		User:          *user,
		Swaps:         *swapCounts,
		FeedbackCount: feedbackCount,
		AvgRating:     avgRating,
		ActivityCount: activityCount,
	}, nil
}

// SendPlatformMessage records a broadcast announcement in the audit trail.
func (s *AdminService) SendPlatformMessage(ctx context.Context, adminID uint, title, message string) error {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" || message == "" {
		return models.NewValidationError("Title and message are required")
	}

	s.activity.Record(ctx, adminID, models.ActionPlatformMessage, nil, title+": "+message)
	return nil
}
