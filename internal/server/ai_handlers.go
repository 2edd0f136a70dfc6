package server

import (
	"strings"

	"socialsync/internal/ai"
	"socialsync/internal/models"

	"github.com/gofiber/fiber/v2"
)

type aiChatRequest struct {
	Message string    `json:"message"`
	History []ai.Turn `json:"history"`
}

// AIChat forwards a chat message to the configured text-generation
// provider and returns the reply plus the model that produced it.
func (s *Server) AIChat(c *fiber.Ctx) error {
	if s.aiProxy == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("AI assistant is not configured"))
	}

	var req aiChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return fail(c, models.NewValidationError("Message is required"))
	}

	reply, err := s.aiProxy.Chat(c.Context(), req.Message, req.History)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(reply)
}
