package server

import (
	"strings"
	"unicode/utf8"

	"socialsync/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetInboxUsers lists the users a conversation can be started with.
func (s *Server) GetInboxUsers(c *fiber.Ctx) error {
	users, err := s.userRepo.ListMessageable(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

// GetConversations lists one summary per counterparty, newest first.
func (s *Server) GetConversations(c *fiber.Ctx) error {
	conversations, err := s.messageRepo.ListConversations(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(conversations)
}

// GetChatMessages returns the full thread with the given user and
// marks their messages read. Blocked pairs cannot read each other.
func (s *Server) GetChatMessages(c *fiber.Ctx) error {
	otherID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	userID := currentUserID(c)

	if err := s.requireMessageable(c, userID, otherID); err != nil {
		return fail(c, err)
	}

	msgs, err := s.messageRepo.Thread(c.Context(), userID, otherID)
	if err != nil {
		return fail(c, err)
	}
	if err := s.messageRepo.MarkRead(c.Context(), userID, otherID); err != nil {
		return fail(c, err)
	}
	return c.JSON(msgs)
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

// SendChatMessage delivers a message to the given user. Fails when the
// pair is blocked in either direction.
func (s *Server) SendChatMessage(c *fiber.Ctx) error {
	otherID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	userID := currentUserID(c)
	if otherID == userID {
		return fail(c, models.NewValidationError("You cannot message yourself"))
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}
	req.Body = strings.TrimSpace(req.Body)
	if req.Body == "" {
		return fail(c, models.NewValidationError("Message body is required"))
	}
	if utf8.RuneCountInString(req.Body) > models.MaxMessageLength {
		return fail(c, models.NewValidationError("Message is too long"))
	}

	if err := s.requireMessageable(c, userID, otherID); err != nil {
		return fail(c, err)
	}

	msg := &models.Message{
		SenderID:   userID,
		ReceiverID: otherID,
		Body:       req.Body,
	}
	if err := s.messageRepo.Create(c.Context(), msg); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// DeleteChat removes the whole conversation with the given user, both
// directions.
func (s *Server) DeleteChat(c *fiber.Ctx) error {
	otherID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := s.messageRepo.DeleteConversation(c.Context(), currentUserID(c), otherID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Conversation deleted"})
}

// requireMessageable verifies the counterparty exists and that no block
// edge exists in either direction.
func (s *Server) requireMessageable(c *fiber.Ctx, userID, otherID uint) error {
	if _, err := s.userRepo.GetByID(c.Context(), otherID); err != nil {
		return err
	}
	blocked, err := s.blockRepo.IsBlockedEither(c.Context(), userID, otherID)
	if err != nil {
		return err
	}
	if blocked {
		return models.NewForbiddenError("Chat unavailable")
	}
	return nil
}
