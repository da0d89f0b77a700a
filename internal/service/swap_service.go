package service

import (
	"context"
	"fmt"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// SwapService provides swap request lifecycle business logic.
type SwapService struct {
	swapRepo repository.SwapRepository
	userRepo repository.UserRepository
	activity *ActivityService
}

// NewSwapService returns a new SwapService.
func NewSwapService(swapRepo repository.SwapRepository, userRepo repository.UserRepository, activity *ActivityService) *SwapService {
	return &SwapService{
		swapRepo: swapRepo,
		userRepo: userRepo,
		activity: activity,
	}
}

// CreateSwap sends a swap request to the target user.
func (s *SwapService) CreateSwap(ctx context.Context, fromUserID, toUserID uint, skillOffered, skillWanted string) (*models.SwapRequest, error) {
	span, ctx := observability.NewSpan(ctx, "SwapService.CreateSwap")
	defer span.End()

	skillOffered = strings.TrimSpace(skillOffered)
	skillWanted = strings.TrimSpace(skillWanted)
	if skillOffered == "" || skillWanted == "" {
		return nil, models.NewValidationError("Both offered and wanted skills are required")
	}
	if fromUserID == toUserID {
		return nil, models.NewValidationError("Cannot send a swap request to yourself")
	}

	target, err := s.userRepo.GetByID(ctx, toUserID)
	if err != nil {
		return nil, err
	}
	if target.IsBanned {
		return nil, models.NewInvalidStateError("Cannot send a swap request to a banned user")
	}

	existing, err := s.swapRepo.GetPendingBetween(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("A pending swap request to this user already exists")
	}

	swap := &models.SwapRequest{
		FromUserID:   fromUserID,
		ToUserID:     toUserID,
		SkillOffered: skillOffered,
		SkillWanted:  skillWanted,
		Status:       models.SwapStatusPending,
	}
	if err := s.swapRepo.Create(ctx, swap); err != nil {
		return nil, err
	}

	observability.RecordSwapTransition(string(models.SwapStatusPending))
	s.activity.Record(ctx, fromUserID, models.ActionSwapCreated, &toUserID,
		fmt.Sprintf("Swap request created for %s in exchange for %s", skillOffered, skillWanted))

	return s.swapRepo.GetByID(ctx, swap.ID)
}

// AcceptSwap accepts a pending swap request. Only the recipient may accept.
func (s *SwapService) AcceptSwap(ctx context.Context, userID, requestID uint) (*models.SwapRequest, error) {
	return s.decide(ctx, userID, requestID, models.SwapStatusAccepted)
}

// RejectSwap rejects a pending swap request. Only the recipient may reject.
func (s *SwapService) RejectSwap(ctx context.Context, userID, requestID uint) (*models.SwapRequest, error) {
	return s.decide(ctx, userID, requestID, models.SwapStatusRejected)
}

func (s *SwapService) decide(ctx context.Context, userID, requestID uint, status models.SwapStatus) (*models.SwapRequest, error) {
	span, ctx := observability.NewSpan(ctx, "SwapService.decide")
	defer span.End()
	span.AddAttributes(attribute.String("swap.target_status", string(status)))

	swap, err := s.swapRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if swap.ToUserID != userID {
		return nil, models.NewForbiddenError("You can only respond to swap requests sent to you")
	}

	if err := s.transition(ctx, swap, status); err != nil {
		span.SetError(err)
		return nil, err
	}

	action := models.ActionSwapAccepted
	if status == models.SwapStatusRejected {
		action = models.ActionSwapRejected
	}
	s.activity.Record(ctx, userID, action, &swap.FromUserID,
		fmt.Sprintf("Swap request %s", status))

	return s.swapRepo.GetByID(ctx, requestID)
}

// CancelSwap withdraws a pending swap request. Only the sender may cancel.
func (s *SwapService) CancelSwap(ctx context.Context, userID, requestID uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if swap.FromUserID != userID {
		return nil, models.NewForbiddenError("You can only cancel swap requests you sent")
	}

	if err := s.transition(ctx, swap, models.SwapStatusCancelled); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, userID, models.ActionSwapCancelled, &swap.ToUserID,
		"Swap request cancelled")

	return s.swapRepo.GetByID(ctx, requestID)
}

// transition applies the conditional status update and translates a lost race
// or an already-settled request into an invalid-state error.
func (s *SwapService) transition(ctx context.Context, swap *models.SwapRequest, status models.SwapStatus) error {
	rows, err := s.swapRepo.UpdateStatusIfPending(ctx, swap.ID, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		// Re-read so a lost race reports the settled status, not the stale one.
		current, err := s.swapRepo.GetByID(ctx, swap.ID)
		if err != nil {
			return err
		}
		return models.NewInvalidStateError(fmt.Sprintf("Swap request is not pending (current status: %s)", current.Status))
	}
	observability.RecordSwapTransition(string(status))
	return nil
}

// GetSwap returns a single swap request visible to one of its parties or an admin.
func (s *SwapService) GetSwap(ctx context.Context, requestID uint) (*models.SwapRequest, error) {
	return s.swapRepo.GetByID(ctx, requestID)
}

// GetSentSwaps returns swap requests sent by the user.
func (s *SwapService) GetSentSwaps(ctx context.Context, userID uint, limit, offset int) ([]models.SwapRequest, error) {
	return s.swapRepo.ListSentBy(ctx, userID, limit, offset)
}

// GetReceivedSwaps returns swap requests received by the user.
func (s *SwapService) GetReceivedSwaps(ctx context.Context, userID uint, limit, offset int) ([]models.SwapRequest, error) {
	return s.swapRepo.ListReceivedBy(ctx, userID, limit, offset)
}

// GetAllSwaps returns every swap request, newest first.
func (s *SwapService) GetAllSwaps(ctx context.Context, limit, offset int) ([]models.SwapRequest, error) {
	return s.swapRepo.ListAll(ctx, limit, offset)
}
