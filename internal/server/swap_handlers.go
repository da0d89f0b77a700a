package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateSwap handles POST /api/swap/create
func (s *Server) CreateSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		ToUserID     uint   `json:"to_user_id"`
		SkillOffered string `json:"skill_offered"`
		SkillWanted  string `json:"skill_wanted"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ToUserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Target user is required"))
	}

	swap, err := s.swapService.CreateSwap(c.Context(), userID, req.ToUserID, req.SkillOffered, req.SkillWanted)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"swap": swap})
}

// AcceptSwap handles PUT /api/swap/accept/:requestId
func (s *Server) AcceptSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.AcceptSwap(c.Context(), userID, requestID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{"swap": swap})
}

// RejectSwap handles PUT /api/swap/reject/:requestId
func (s *Server) RejectSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.RejectSwap(c.Context(), userID, requestID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{"swap": swap})
}

// CancelSwap handles PUT /api/swap/cancel/:requestId
func (s *Server) CancelSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.CancelSwap(c.Context(), userID, requestID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{"swap": swap})
}

// GetSwap handles GET /api/swap/:requestId
func (s *Server) GetSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.GetSwap(c.Context(), requestID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	// Only the parties or an admin may view a swap request.
	if swap.FromUserID != userID && swap.ToUserID != userID {
		admin, adminErr := s.isAdmin(c, userID)
		if adminErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(adminErr))
		}
		if !admin {
			forbidden := models.NewForbiddenError("You are not a participant of this swap request")
			return models.RespondWithError(c, models.HTTPStatus(forbidden), forbidden)
		}
	}

	return c.JSON(fiber.Map{"swap": swap})
}

// GetMySwapRequests handles GET /api/swap/my-requests
func (s *Server) GetMySwapRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	sent, err := s.swapService.GetSentSwaps(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	received, err := s.swapService.GetReceivedSwaps(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(fiber.Map{
		"sent":     sent,
		"received": received,
	})
}
