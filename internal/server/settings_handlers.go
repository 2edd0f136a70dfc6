package server

import (
	"socialsync/internal/models"

	"github.com/gofiber/fiber/v2"
)

var (
	validAppearances = map[string]bool{"Dark": true, "Light": true}
	validFontSizes   = map[string]bool{"Small": true, "Medium": true, "Large": true}
)

// GetSettings returns the user's preferences, creating the defaults
// row on first read.
func (s *Server) GetSettings(c *fiber.Ctx) error {
	settings, err := s.settingsRepo.GetOrCreate(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(settings)
}

type settingsRequest struct {
	Appearance         string `json:"appearance"`
	FontSize           string `json:"font_size"`
	Language           string `json:"language"`
	InAppNotifications *bool  `json:"in_app_notifications"`
}

// UpdateSettings replaces the preferences record wholesale.
func (s *Server) UpdateSettings(c *fiber.Ctx) error {
	var req settingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	if !validAppearances[req.Appearance] {
		return fail(c, models.NewValidationError("Appearance must be Dark or Light"))
	}
	if !validFontSizes[req.FontSize] {
		return fail(c, models.NewValidationError("Font size must be Small, Medium or Large"))
	}
	if req.Language == "" {
		return fail(c, models.NewValidationError("Language is required"))
	}
	if req.InAppNotifications == nil {
		return fail(c, models.NewValidationError("in_app_notifications is required"))
	}

	userID := currentUserID(c)
	settings := &models.Settings{
		UserID:             userID,
		Appearance:         req.Appearance,
		FontSize:           req.FontSize,
		Language:           req.Language,
		InAppNotifications: *req.InAppNotifications,
	}
	if err := s.settingsRepo.Replace(c.Context(), userID, settings); err != nil {
		return fail(c, err)
	}
	return c.JSON(settings)
}
