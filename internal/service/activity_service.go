package service

import (
	"context"
	"log/slog"

	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
)

// ActivityService provides the append-only audit trail of platform actions.
type ActivityService struct {
	activityRepo repository.ActivityRepository
}

// NewActivityService returns a new ActivityService.
func NewActivityService(activityRepo repository.ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// Record appends an audit entry. Recording is best-effort: a failed write is
// logged and counted but never fails the operation that triggered it.
func (s *ActivityService) Record(ctx context.Context, userID uint, action string, targetUserID *uint, details string) {
	entry := &models.ActivityLog{
		UserID:       userID,
		Action:       action,
		TargetUserID: targetUserID,
		Details:      details,
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		observability.RecordAuditFailure(action)
		middleware.Logger.ErrorContext(ctx, "activity log write dropped",
			slog.String("action", action),
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()),
		)
	}
}

// List returns audit entries, optionally filtered by action tag, with the
// total matching count for pagination.
func (s *ActivityService) List(ctx context.Context, action string, limit, offset int) ([]models.ActivityLog, int64, error) {
	return s.activityRepo.List(ctx, action, limit, offset)
}

// ListRecent returns the most recent audit entries.
func (s *ActivityService) ListRecent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	return s.activityRepo.ListRecent(ctx, limit)
}

// CountForUser returns how many audit entries involve the user.
func (s *ActivityService) CountForUser(ctx context.Context, userID uint) (int64, error) {
	return s.activityRepo.CountForUser(ctx, userID)
}
