package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/user/profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// UpdateMyProfile handles PUT /api/user/profile
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name          string   `json:"name"`
		Location      string   `json:"location"`
		ProfilePhoto  string   `json:"profile_photo"`
		SkillsOffered []string `json:"skills_offered"`
		SkillsWanted  []string `json:"skills_wanted"`
		Availability  string   `json:"availability"`
		IsPublic      *bool    `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:        userID,
		Name:          req.Name,
		Location:      req.Location,
		ProfilePhoto:  req.ProfilePhoto,
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
		Availability:  req.Availability,
		IsPublic:      req.IsPublic,
	})
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// GetPublicUsers handles GET /api/user/public
func (s *Server) GetPublicUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	users, err := s.userService.ListPublicUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{
		"users":  users,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// SearchUsersBySkill handles GET /api/user/search?skill=...
func (s *Server) SearchUsersBySkill(c *fiber.Ctx) error {
	skill := c.Query("skill")
	p := parsePagination(c, 20)

	users, err := s.userService.SearchBySkill(c.Context(), skill, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{
		"users": users,
		"skill": skill,
	})
}

// GetUserRating handles GET /api/user/:id/rating
func (s *Server) GetUserRating(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// Ensure the user exists before reporting a rating.
	if _, err := s.userService.GetUserByID(c.Context(), userID); err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	avg, err := s.feedbackService.GetAverageRating(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{
		"user_id":    userID,
		"avg_rating": avg,
	})
}
