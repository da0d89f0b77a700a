package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID        uint
	Name          string
	Location      string
	ProfilePhoto  string
	SkillsOffered []string
	SkillsWanted  []string
	Availability  string
	IsPublic      *bool
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// ListPublicUsers returns browsable profiles, excluding private and banned users.
func (s *UserService) ListPublicUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.ListPublic(ctx, limit, offset)
}

// SearchBySkill returns public users offering or wanting the given skill.
func (s *UserService) SearchBySkill(ctx context.Context, skill string, limit, offset int) ([]models.User, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, models.NewValidationError("Search skill is required")
	}
	return s.userRepo.SearchBySkill(ctx, skill, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		if err := validation.ValidateName(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = strings.TrimSpace(in.Name)
	}
	if in.Location != "" {
		user.Location = in.Location
	}
	if in.ProfilePhoto != "" {
		user.ProfilePhoto = in.ProfilePhoto
	}
	if in.SkillsOffered != nil {
		if err := validation.ValidateSkills(in.SkillsOffered); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.SkillsOffered = in.SkillsOffered
	}
	if in.SkillsWanted != nil {
		if err := validation.ValidateSkills(in.SkillsWanted); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.SkillsWanted = in.SkillsWanted
	}
	if in.Availability != "" {
		user.Availability = in.Availability
	}
	if in.IsPublic != nil {
		user.IsPublic = *in.IsPublic
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
