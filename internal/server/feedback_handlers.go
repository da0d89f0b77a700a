package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SubmitFeedback handles POST /api/feedback
func (s *Server) SubmitFeedback(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		SwapID  uint   `json:"swap_id"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.SwapID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Swap ID is required"))
	}

	feedback, err := s.feedbackService.SubmitFeedback(c.Context(), userID, req.SwapID, req.Rating, req.Comment)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"feedback": feedback})
}

// GetMyFeedback handles GET /api/feedback/my-feedback
func (s *Server) GetMyFeedback(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	feedbacks, err := s.feedbackService.GetReceivedFeedback(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	avg, err := s.feedbackService.GetAverageRating(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{
		"feedback":   feedbacks,
		"avg_rating": avg,
	})
}

// GetUserFeedback handles GET /api/feedback/user/:userId
func (s *Server) GetUserFeedback(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	feedbacks, err := s.feedbackService.GetReceivedFeedback(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	avg, err := s.feedbackService.GetAverageRating(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{
		"feedback":   feedbacks,
		"avg_rating": avg,
	})
}

// UpdateFeedback handles PUT /api/feedback/:feedbackId
func (s *Server) UpdateFeedback(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	feedbackID, err := s.parseID(c, "feedbackId")
	if err != nil {
		return nil
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	feedback, err := s.feedbackService.UpdateFeedback(c.Context(), userID, feedbackID, req.Rating, req.Comment)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{"feedback": feedback})
}

// DeleteFeedback handles DELETE /api/feedback/:feedbackId
func (s *Server) DeleteFeedback(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	feedbackID, err := s.parseID(c, "feedbackId")
	if err != nil {
		return nil
	}

	if err := s.feedbackService.DeleteFeedback(c.Context(), userID, feedbackID); err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{"message": "Feedback deleted"})
}
