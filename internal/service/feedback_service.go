package service

import (
	"context"
	"strconv"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// FeedbackService provides feedback business logic for completed swaps.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	swapRepo     repository.SwapRepository
}

// NewFeedbackService returns a new FeedbackService.
func NewFeedbackService(feedbackRepo repository.FeedbackRepository, swapRepo repository.SwapRepository) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		swapRepo:     swapRepo,
	}
}

// SubmitFeedback records a rating for the counterparty of an accepted swap.
// The recipient is derived from the swap, never supplied by the caller.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, authorID, swapID uint, rating int, comment string) (*models.Feedback, error) {
	span, ctx := observability.NewSpan(ctx, "FeedbackService.SubmitFeedback")
	defer span.End()

	if err := validation.ValidateRating(rating); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap.Status != models.SwapStatusAccepted {
		return nil, models.NewInvalidStateError("Feedback is only allowed for accepted swaps")
	}

	var recipientID uint
	switch authorID {
	case swap.FromUserID:
		recipientID = swap.ToUserID
	case swap.ToUserID:
		recipientID = swap.FromUserID
	default:
		return nil, models.NewForbiddenError("Only participants of the swap can leave feedback")
	}

	existing, err := s.feedbackRepo.GetBySwapAndAuthor(ctx, swapID, authorID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Feedback already submitted for this swap")
	}

	feedback := &models.Feedback{
		SwapID:     swapID,
		FromUserID: authorID,
		ToUserID:   recipientID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	observability.FeedbackSubmittedTotal.WithLabelValues(strconv.Itoa(rating)).Inc()
	return s.feedbackRepo.GetByID(ctx, feedback.ID)
}

// UpdateFeedback lets the author revise their own feedback entry.
func (s *FeedbackService) UpdateFeedback(ctx context.Context, authorID, feedbackID uint, rating int, comment string) (*models.Feedback, error) {
	feedback, err := s.feedbackRepo.GetByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if feedback.FromUserID != authorID {
		return nil, models.NewForbiddenError("You can only edit your own feedback")
	}

	if rating != 0 {
		if err := validation.ValidateRating(rating); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		feedback.Rating = rating
	}
	if comment != "" {
		feedback.Comment = strings.TrimSpace(comment)
	}

	if err := s.feedbackRepo.Update(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// DeleteFeedback lets the author remove their own feedback entry.
func (s *FeedbackService) DeleteFeedback(ctx context.Context, authorID, feedbackID uint) error {
	feedback, err := s.feedbackRepo.GetByID(ctx, feedbackID)
	if err != nil {
		return err
	}
	if feedback.FromUserID != authorID {
		return models.NewForbiddenError("You can only delete your own feedback")
	}
	return s.feedbackRepo.Delete(ctx, feedbackID)
}

// GetReceivedFeedback returns feedback entries received by the user.
func (s *FeedbackService) GetReceivedFeedback(ctx context.Context, userID uint, limit, offset int) ([]models.Feedback, error) {
	return s.feedbackRepo.ListReceivedBy(ctx, userID, limit, offset)
}

// GetAllFeedback returns every feedback entry, newest first.
func (s *FeedbackService) GetAllFeedback(ctx context.Context, limit, offset int) ([]models.Feedback, error) {
	return s.feedbackRepo.ListAll(ctx, limit, offset)
}

// GetAverageRating returns the mean rating the user has received, 0 when none.
func (s *FeedbackService) GetAverageRating(ctx context.Context, userID uint) (float64, error) {
	return s.feedbackRepo.AverageRatingFor(ctx, userID)
}
