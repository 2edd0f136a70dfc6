package server

import (
	"socialsync/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetBlockedUsers lists the users the authenticated user has blocked.
func (s *Server) GetBlockedUsers(c *fiber.Ctx) error {
	blocked, err := s.blockRepo.ListByBlocker(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(blocked)
}

type blockRequest struct {
	UserID uint `json:"user_id"`
}

// BlockUser adds a block edge toward another user. Blocking hides the
// pair from each other's listings and stops messages both ways.
func (s *Server) BlockUser(c *fiber.Ctx) error {
	var req blockRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	userID := currentUserID(c)
	if req.UserID == 0 {
		return fail(c, models.NewValidationError("user_id is required"))
	}
	if req.UserID == userID {
		return fail(c, models.NewValidationError("You cannot block yourself"))
	}

	// The target must exist; blocking a ghost ID would silently no-op.
	if _, err := s.userRepo.GetByID(c.Context(), req.UserID); err != nil {
		return fail(c, err)
	}

	if err := s.blockRepo.Create(c.Context(), userID, req.UserID); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User blocked"})
}

// UnblockUser removes the authenticated user's block edge toward the
// given user.
func (s *Server) UnblockUser(c *fiber.Ctx) error {
	blockedID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := s.blockRepo.Delete(c.Context(), currentUserID(c), blockedID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "User unblocked"})
}
