package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPlatformStats handles GET /api/admin/stats
func (s *Server) GetPlatformStats(c *fiber.Ctx) error {
	stats, err := s.adminService.GetStats(c.Context())
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{"stats": stats})
}

// GetAllUsers handles GET /api/admin/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	users, err := s.userService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{
		"users":  users,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetAllSwaps handles GET /api/admin/swaps
func (s *Server) GetAllSwaps(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	swaps, err := s.swapService.GetAllSwaps(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{"swaps": swaps})
}

// GetAllFeedback handles GET /api/admin/feedback
func (s *Server) GetAllFeedback(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	feedbacks, err := s.feedbackService.GetAllFeedback(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{"feedback": feedbacks})
}

// GetActivityLogs handles GET /api/admin/activity-logs?action=...&limit=...&offset=...
func (s *Server) GetActivityLogs(c *fiber.Ctx) error {
	action := c.Query("action")
	p := parsePagination(c, 20)

	entries, total, err := s.activityService.List(c.Context(), action, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	totalPages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		totalPages++
	}

	return c.JSON(fiber.Map{
		"logs":        entries,
		"total":       total,
		"total_pages": totalPages,
		"limit":       p.Limit,
		"offset":      p.Offset,
	})
}

// GetRecentActivity handles GET /api/admin/recent-activity
func (s *Server) GetRecentActivity(c *fiber.Ctx) error {
	p := parsePagination(c, 10)

	entries, err := s.activityService.ListRecent(c.Context(), p.Limit)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{"activity": entries})
}

// GetUserReport handles GET /api/admin/user-report/:userId
func (s *Server) GetUserReport(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	report, err := s.adminService.GetUserReport(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{"report": report})
}

// BanUser handles POST /api/admin/ban/:userId
func (s *Server) BanUser(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if targetID == adminID {
		validationErr := models.NewValidationError("Cannot ban yourself")
		return models.RespondWithError(c, models.HTTPStatus(validationErr), validationErr)
	}

	user, err := s.adminService.BanUser(c.Context(), adminID, targetID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{
		"message": "User banned",
		"user":    user,
	})
}

// UnbanUser handles POST /api/admin/unban/:userId
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	user, err := s.adminService.UnbanUser(c.Context(), adminID, targetID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{
		"message": "User unbanned",
		"user":    user,
	})
}

// SendPlatformMessage handles POST /api/admin/message
func (s *Server) SendPlatformMessage(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	var req struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.adminService.SendPlatformMessage(c.Context(), adminID, req.Title, req.Message); err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{"message": "Platform message sent"})
}
