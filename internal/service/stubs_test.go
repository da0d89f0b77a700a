package service

import (
	"context"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, error)
	listPublicFn    func(context.Context, int, int) ([]models.User, error)
	searchBySkillFn func(context.Context, string, int, int) ([]models.User, error)
	setBannedFn     func(context.Context, uint, bool) error
	countsFn        func(context.Context) (*repository.UserCounts, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) ListPublic(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listPublicFn(ctx, limit, offset)
}
func (s *userRepoStub) SearchBySkill(ctx context.Context, skill string, limit, offset int) ([]models.User, error) {
	return s.searchBySkillFn(ctx, skill, limit, offset)
}
func (s *userRepoStub) SetBanned(ctx context.Context, id uint, banned bool) error {
	return s.setBannedFn(ctx, id, banned)
}
func (s *userRepoStub) Counts(ctx context.Context) (*repository.UserCounts, error) {
	return s.countsFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:     func(context.Context, *models.User) error { return nil },
		updateFn:     func(context.Context, *models.User) error { return nil },
		listFn:       func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		listPublicFn: func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		searchBySkillFn: func(context.Context, string, int, int) ([]models.User, error) {
			return nil, nil
		},
		setBannedFn: func(context.Context, uint, bool) error { return nil },
		countsFn:    func(context.Context) (*repository.UserCounts, error) { return &repository.UserCounts{}, nil },
	}
}

type swapRepoStub struct {
	createFn                func(context.Context, *models.SwapRequest) error
	getByIDFn               func(context.Context, uint) (*models.SwapRequest, error)
	getPendingBetweenFn     func(context.Context, uint, uint) (*models.SwapRequest, error)
	updateStatusIfPendingFn func(context.Context, uint, models.SwapStatus) (int64, error)
	listSentByFn            func(context.Context, uint, int, int) ([]models.SwapRequest, error)
	listReceivedByFn        func(context.Context, uint, int, int) ([]models.SwapRequest, error)
	listAllFn               func(context.Context, int, int) ([]models.SwapRequest, error)
	countByStatusFn         func(context.Context) (map[models.SwapStatus]int64, error)
	countForUserFn          func(context.Context, uint) (*repository.UserSwapCounts, error)
}

func (s *swapRepoStub) Create(ctx context.Context, swap *models.SwapRequest) error {
	return s.createFn(ctx, swap)
}
func (s *swapRepoStub) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *swapRepoStub) GetPendingBetween(ctx context.Context, fromUserID, toUserID uint) (*models.SwapRequest, error) {
	return s.getPendingBetweenFn(ctx, fromUserID, toUserID)
}
func (s *swapRepoStub) UpdateStatusIfPending(ctx context.Context, id uint, status models.SwapStatus) (int64, error) {
	return s.updateStatusIfPendingFn(ctx, id, status)
}
func (s *swapRepoStub) ListSentBy(ctx context.Context, userID uint, limit, offset int) ([]models.SwapRequest, error) {
	return s.listSentByFn(ctx, userID, limit, offset)
}
func (s *swapRepoStub) ListReceivedBy(ctx context.Context, userID uint, limit, offset int) ([]models.SwapRequest, error) {
	return s.listReceivedByFn(ctx, userID, limit, offset)
}
func (s *swapRepoStub) ListAll(ctx context.Context, limit, offset int) ([]models.SwapRequest, error) {
	return s.listAllFn(ctx, limit, offset)
}
func (s *swapRepoStub) CountByStatus(ctx context.Context) (map[models.SwapStatus]int64, error) {
	return s.countByStatusFn(ctx)
}
func (s *swapRepoStub) CountForUser(ctx context.Context, userID uint) (*repository.UserSwapCounts, error) {
	return s.countForUserFn(ctx, userID)
}

func noopSwapRepo() *swapRepoStub {
	return &swapRepoStub{
		createFn:            func(context.Context, *models.SwapRequest) error { return nil },
		getByIDFn:           func(context.Context, uint) (*models.SwapRequest, error) { return &models.SwapRequest{}, nil },
		getPendingBetweenFn: func(context.Context, uint, uint) (*models.SwapRequest, error) { return nil, nil },
		updateStatusIfPendingFn: func(context.Context, uint, models.SwapStatus) (int64, error) {
			return 1, nil
		},
		listSentByFn: func(context.Context, uint, int, int) ([]models.SwapRequest, error) {
			return nil, nil
		},
		listReceivedByFn: func(context.Context, uint, int, int) ([]models.SwapRequest, error) {
			return nil, nil
		},
		listAllFn:       func(context.Context, int, int) ([]models.SwapRequest, error) { return nil, nil },
		countByStatusFn: func(context.Context) (map[models.SwapStatus]int64, error) { return nil, nil },
		countForUserFn: func(context.Context, uint) (*repository.UserSwapCounts, error) {
			return &repository.UserSwapCounts{}, nil
		},
	}
}

type feedbackRepoStub struct {
	createFn             func(context.Context, *models.Feedback) error
	getByIDFn            func(context.Context, uint) (*models.Feedback, error)
	getBySwapAndAuthorFn func(context.Context, uint, uint) (*models.Feedback, error)
	listReceivedByFn     func(context.Context, uint, int, int) ([]models.Feedback, error)
	listAllFn            func(context.Context, int, int) ([]models.Feedback, error)
	updateFn             func(context.Context, *models.Feedback) error
	deleteFn             func(context.Context, uint) error
	countReceivedByFn    func(context.Context, uint) (int64, error)
	averageRatingForFn   func(context.Context, uint) (float64, error)
	statsFn              func(context.Context) (int64, float64, error)
}

func (s *feedbackRepoStub) Create(ctx context.Context, feedback *models.Feedback) error {
	return s.createFn(ctx, feedback)
}
func (s *feedbackRepoStub) GetByID(ctx context.Context, id uint) (*models.Feedback, error) {
	return s.getByIDFn(ctx, id)
}
func (s *feedbackRepoStub) GetBySwapAndAuthor(ctx context.Context, swapID, authorID uint) (*models.Feedback, error) {
	return s.getBySwapAndAuthorFn(ctx, swapID, authorID)
}
func (s *feedbackRepoStub) ListReceivedBy(ctx context.Context, userID uint, limit, offset int) ([]models.Feedback, error) {
	return s.listReceivedByFn(ctx, userID, limit, offset)
}
func (s *feedbackRepoStub) ListAll(ctx context.Context, limit, offset int) ([]models.Feedback, error) {
	return s.listAllFn(ctx, limit, offset)
}
func (s *feedbackRepoStub) Update(ctx context.Context, feedback *models.Feedback) error {
	return s.updateFn(ctx, feedback)
}
func (s *feedbackRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *feedbackRepoStub) CountReceivedBy(ctx context.Context, userID uint) (int64, error) {
	return s.countReceivedByFn(ctx, userID)
}
func (s *feedbackRepoStub) AverageRatingFor(ctx context.Context, userID uint) (float64, error) {
	return s.averageRatingForFn(ctx, userID)
}
func (s *feedbackRepoStub) Stats(ctx context.Context) (int64, float64, error) {
	return s.statsFn(ctx)
}

func noopFeedbackRepo() *feedbackRepoStub {
	return &feedbackRepoStub{
		createFn:             func(context.Context, *models.Feedback) error { return nil },
		getByIDFn:            func(context.Context, uint) (*models.Feedback, error) { return &models.Feedback{}, nil },
		getBySwapAndAuthorFn: func(context.Context, uint, uint) (*models.Feedback, error) { return nil, nil },
		listReceivedByFn: func(context.Context, uint, int, int) ([]models.Feedback, error) {
			return nil, nil
		},
		listAllFn:          func(context.Context, int, int) ([]models.Feedback, error) { return nil, nil },
		updateFn:           func(context.Context, *models.Feedback) error { return nil },
		deleteFn:           func(context.Context, uint) error { return nil },
		countReceivedByFn:  func(context.Context, uint) (int64, error) { return 0, nil },
		averageRatingForFn: func(context.Context, uint) (float64, error) { return 0, nil },
		statsFn:            func(context.Context) (int64, float64, error) { return 0, 0, nil },
	}
}

type activityRepoStub struct {
	createFn       func(context.Context, *models.ActivityLog) error
	listFn         func(context.Context, string, int, int) ([]models.ActivityLog, int64, error)
	listRecentFn   func(context.Context, int) ([]models.ActivityLog, error)
	countForUserFn func(context.Context, uint) (int64, error)
}

func (s *activityRepoStub) Create(ctx context.Context, entry *models.ActivityLog) error {
	return s.createFn(ctx, entry)
}
func (s *activityRepoStub) List(ctx context.Context, action string, limit, offset int) ([]models.ActivityLog, int64, error) {
	return s.listFn(ctx, action, limit, offset)
}
func (s *activityRepoStub) ListRecent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	return s.listRecentFn(ctx, limit)
}
func (s *activityRepoStub) CountForUser(ctx context.Context, userID uint) (int64, error) {
	return s.countForUserFn(ctx, userID)
}

func noopActivityRepo() *activityRepoStub {
	return &activityRepoStub{
		createFn: func(context.Context, *models.ActivityLog) error { return nil },
		listFn: func(context.Context, string, int, int) ([]models.ActivityLog, int64, error) {
			return nil, 0, nil
		},
		listRecentFn:   func(context.Context, int) ([]models.ActivityLog, error) { return nil, nil },
		countForUserFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}
