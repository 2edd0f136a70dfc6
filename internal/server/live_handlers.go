package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ToggleLive flips the user's broadcasting state and returns the new
// state.
func (s *Server) ToggleLive(c *fiber.Ctx) error {
	live, err := s.liveRepo.Toggle(c.Context(), currentUserID(c), time.Now())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"live": live})
}

// GetLiveSummary reports the user's current state and total broadcast
// time across all sessions.
func (s *Server) GetLiveSummary(c *fiber.Ctx) error {
	summary, err := s.liveRepo.Summary(c.Context(), currentUserID(c), time.Now())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}

// GetLiveCreators lists other users broadcasting right now.
func (s *Server) GetLiveCreators(c *fiber.Ctx) error {
	creators, err := s.liveRepo.ListLive(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(creators)
}
