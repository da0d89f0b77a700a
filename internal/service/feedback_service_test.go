package service

import (
	"context"
	"errors"
	"testing"

	"skillswap/internal/models"
)

func acceptedSwapRepo() *swapRepoStub {
	repo := noopSwapRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 5, FromUserID: 10, ToUserID: 11, Status: models.SwapStatusAccepted}, nil
	}
	return repo
}

func TestFeedbackServiceSubmitInvalidRating(t *testing.T) {
	svc := NewFeedbackService(noopFeedbackRepo(), acceptedSwapRepo())
	for _, rating := range []int{0, 6, -1} {
		_, err := svc.SubmitFeedback(context.Background(), 10, 5, rating, "")
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("rating %d: expected validation app error, got %#v", rating, err)
		}
	}
}

func TestFeedbackServiceSubmitNotAccepted(t *testing.T) {
	for _, status := range []models.SwapStatus{
		models.SwapStatusPending,
		models.SwapStatusRejected,
		models.SwapStatusCancelled,
	} {
		swapRepo := noopSwapRepo()
		swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
			return &models.SwapRequest{ID: 5, FromUserID: 10, ToUserID: 11, Status: status}, nil
		}

		svc := NewFeedbackService(noopFeedbackRepo(), swapRepo)
		_, err := svc.SubmitFeedback(context.Background(), 10, 5, 4, "")
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != "INVALID_STATE" {
			t.Fatalf("status %s: expected invalid-state app error, got %#v", status, err)
		}
	}
}

func TestFeedbackServiceSubmitNonParticipant(t *testing.T) {
	svc := NewFeedbackService(noopFeedbackRepo(), acceptedSwapRepo())
	_, err := svc.SubmitFeedback(context.Background(), 12, 5, 4, "")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "FORBIDDEN" {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
}

func TestFeedbackServiceSubmitDuplicate(t *testing.T) {
	feedbackRepo := noopFeedbackRepo()
	feedbackRepo.getBySwapAndAuthorFn = func(context.Context, uint, uint) (*models.Feedback, error) {
		return &models.Feedback{ID: 1}, nil
	}

	svc := NewFeedbackService(feedbackRepo, acceptedSwapRepo())
	_, err := svc.SubmitFeedback(context.Background(), 10, 5, 4, "")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "CONFLICT" {
		t.Fatalf("expected conflict app error, got %#v", err)
	}
}

func TestFeedbackServiceSubmitDerivesRecipient(t *testing.T) {
	var created *models.Feedback
	feedbackRepo := noopFeedbackRepo()
	feedbackRepo.createFn = func(_ context.Context, feedback *models.Feedback) error {
		feedback.ID = 9
		created = feedback
		return nil
	}
	feedbackRepo.getByIDFn = func(_ context.Context, id uint) (*models.Feedback, error) {
		return &models.Feedback{ID: id}, nil
	}

	svc := NewFeedbackService(feedbackRepo, acceptedSwapRepo())

	// the sender rates the recipient
	if _, err := svc.SubmitFeedback(context.Background(), 10, 5, 4, "  solid  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ToUserID != 11 {
		t.Fatalf("expected recipient 11, got %d", created.ToUserID)
	}
	if created.Comment != "solid" {
		t.Fatalf("expected trimmed comment, got %q", created.Comment)
	}

	// the recipient rates the sender
	if _, err := svc.SubmitFeedback(context.Background(), 11, 5, 5, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ToUserID != 10 {
		t.Fatalf("expected recipient 10, got %d", created.ToUserID)
	}
}

func TestFeedbackServiceUpdateNotAuthor(t *testing.T) {
	feedbackRepo := noopFeedbackRepo()
	feedbackRepo.getByIDFn = func(context.Context, uint) (*models.Feedback, error) {
		return &models.Feedback{ID: 9, FromUserID: 10}, nil
	}

	svc := NewFeedbackService(feedbackRepo, noopSwapRepo())
	_, err := svc.UpdateFeedback(context.Background(), 11, 9, 3, "")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "FORBIDDEN" {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
}

func TestFeedbackServiceUpdatePartial(t *testing.T) {
	feedbackRepo := noopFeedbackRepo()
	feedbackRepo.getByIDFn = func(context.Context, uint) (*models.Feedback, error) {
		return &models.Feedback{ID: 9, FromUserID: 10, Rating: 2, Comment: "meh"}, nil
	}

	svc := NewFeedbackService(feedbackRepo, noopSwapRepo())

	// zero rating means keep the old one
	updated, err := svc.UpdateFeedback(context.Background(), 10, 9, 0, "actually fine")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Rating != 2 {
		t.Fatalf("expected rating unchanged, got %d", updated.Rating)
	}
	if updated.Comment != "actually fine" {
		t.Fatalf("unexpected comment %q", updated.Comment)
	}
}

func TestFeedbackServiceDeleteNotAuthor(t *testing.T) {
	feedbackRepo := noopFeedbackRepo()
	feedbackRepo.getByIDFn = func(context.Context, uint) (*models.Feedback, error) {
		return &models.Feedback{ID: 9, FromUserID: 10}, nil
	}

	svc := NewFeedbackService(feedbackRepo, noopSwapRepo())
	err := svc.DeleteFeedback(context.Background(), 11, 9)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "FORBIDDEN" {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
}
