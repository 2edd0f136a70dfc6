package server

import (
	"strconv"
	"strings"

	"socialsync/internal/models"
	"socialsync/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// campaignTitleLimit caps the title derived from a post caption.
const campaignTitleLimit = 40

// GetCampaigns lists the authenticated user's ad campaigns.
func (s *Server) GetCampaigns(c *fiber.Ctx) error {
	campaigns, err := s.campaignRepo.ListByUser(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(campaigns)
}

type boostRequest struct {
	PostID uint `json:"post_id"`
	Budget int  `json:"budget"`
}

// CreateCampaign boosts an existing owned post into a campaign. The
// campaign title is the caption truncated for display.
func (s *Server) CreateCampaign(c *fiber.Ctx) error {
	var req boostRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}
	if req.Budget <= 0 {
		return fail(c, models.NewValidationError("Budget must be a positive amount"))
	}

	userID := currentUserID(c)
	post, err := s.postRepo.GetOwned(c.Context(), userID, req.PostID)
	if err != nil {
		return fail(c, err)
	}
	if post.Status != models.PostStatusPublished {
		return fail(c, models.NewValidationError("Only published posts can be boosted"))
	}

	campaign := &models.Campaign{
		UserID:    userID,
		PostID:    post.ID,
		Title:     truncateTitle(post.Caption),
		Status:    models.CampaignStatusRunning,
		Budget:    req.Budget,
		ImagePath: post.ImagePath,
	}
	if err := s.campaignRepo.Create(c.Context(), campaign); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(campaign)
}

// CreateCustomCampaign creates a published ad-only post and its
// campaign in one step from a multipart form: caption, budget,
// platforms and an optional image file.
func (s *Server) CreateCustomCampaign(c *fiber.Ctx) error {
	caption := strings.TrimSpace(c.FormValue("caption"))
	if caption == "" {
		return fail(c, models.NewValidationError("Caption is required"))
	}

	budget, err := strconv.Atoi(c.FormValue("budget"))
	if err != nil || budget <= 0 {
		return fail(c, models.NewValidationError("Budget must be a positive amount"))
	}

	userID := currentUserID(c)

	post := &models.Post{
		UserID:    userID,
		Caption:   caption,
		Platforms: parsePlatforms(c.FormValue("platforms")),
		Status:    models.PostStatusPublished,
	}

	if file, ferr := c.FormFile("image"); ferr == nil && file != nil {
		path, serr := s.uploads.Save(file)
		if serr != nil {
			return fail(c, serr)
		}
		post.ImagePath = path
	}

	campaign := &models.Campaign{
		UserID:    userID,
		Title:     truncateTitle(caption),
		Status:    models.CampaignStatusRunning,
		Budget:    budget,
		ImagePath: post.ImagePath,
	}
	if err := s.campaignRepo.CreateWithPost(c.Context(), post, campaign); err != nil {
		if post.ImagePath != "" {
			s.uploads.Remove(post.ImagePath)
		}
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"campaign": campaign,
		"post":     post,
	})
}

type campaignUpdateRequest struct {
	Status *string `json:"status"`
	Budget *int    `json:"budget"`
	Title  *string `json:"title"`
}

// UpdateCampaign applies the provided fields to an owned campaign.
func (s *Server) UpdateCampaign(c *fiber.Ctx) error {
	campaignID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req campaignUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	if req.Status != nil &&
		*req.Status != models.CampaignStatusRunning &&
		*req.Status != models.CampaignStatusPaused {
		return fail(c, models.NewValidationError("Status must be Running or Paused"))
	}
	if req.Budget != nil && *req.Budget <= 0 {
		return fail(c, models.NewValidationError("Budget must be a positive amount"))
	}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			return fail(c, models.NewValidationError("Title cannot be empty"))
		}
		req.Title = &trimmed
	}

	upd := repository.CampaignUpdate{
		Status: req.Status,
		Budget: req.Budget,
		Title:  req.Title,
	}
	if err := s.campaignRepo.Update(c.Context(), currentUserID(c), campaignID, upd); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Campaign updated"})
}

// DeleteCampaign removes an owned campaign. The image file stays with
// the linked post and is cleaned up when the post is deleted.
func (s *Server) DeleteCampaign(c *fiber.Ctx) error {
	campaignID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if _, err := s.campaignRepo.Delete(c.Context(), currentUserID(c), campaignID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Campaign deleted"})
}

// truncateTitle counts runes so a multi-byte caption is never cut
// mid-character.
func truncateTitle(caption string) string {
	runes := []rune(caption)
	if len(runes) <= campaignTitleLimit {
		return caption
	}
	return string(runes[:campaignTitleLimit])
}
