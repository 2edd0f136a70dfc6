package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetTrendingCreators serves the cached creator ranking, refreshing it
// once the freshness window lapses.
func (s *Server) GetTrendingCreators(c *fiber.Ctx) error {
	creators, source := s.trendCache.Creators(c.Context())
	return c.JSON(fiber.Map{
		"source":   source,
		"creators": creators,
	})
}
