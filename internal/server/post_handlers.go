package server

import (
	"strings"

	"socialsync/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPosts lists the authenticated user's posts.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.ListByUser(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(posts)
}

// CreatePost creates a post from a multipart form: caption, status,
// a comma-separated platforms field and an optional image file.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	caption := strings.TrimSpace(c.FormValue("caption"))
	if caption == "" {
		return fail(c, models.NewValidationError("Caption is required"))
	}

	status := c.FormValue("status", models.PostStatusDraft)
	if status != models.PostStatusDraft && status != models.PostStatusPublished {
		return fail(c, models.NewValidationError("Status must be draft or published"))
	}

	platforms := parsePlatforms(c.FormValue("platforms"))

	post := &models.Post{
		UserID:    currentUserID(c),
		Caption:   caption,
		Platforms: platforms,
		Status:    status,
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		path, serr := s.uploads.Save(file)
		if serr != nil {
			return fail(c, serr)
		}
		post.ImagePath = path
	}

	if err := s.postRepo.Create(c.Context(), post); err != nil {
		if post.ImagePath != "" {
			s.uploads.Remove(post.ImagePath)
		}
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost removes an owned post and its stored image file.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	imagePath, err := s.postRepo.Delete(c.Context(), currentUserID(c), postID)
	if err != nil {
		return fail(c, err)
	}
	if imagePath != "" {
		s.uploads.Remove(imagePath)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

func parsePlatforms(raw string) models.StringList {
	parts := strings.Split(raw, ",")
	platforms := make(models.StringList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			platforms = append(platforms, p)
		}
	}
	return platforms
}
