package server

import (
	"log/slog"
	"strings"
	"time"

	"socialsync/internal/middleware"
	"socialsync/internal/models"
	"socialsync/internal/session"
	"socialsync/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetAccountInfo returns the authenticated user's profile.
func (s *Server) GetAccountInfo(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"handle":        user.Handle(),
		"profile_image": user.ProfileImage,
		"created_at":    user.CreatedAt,
	})
}

type accountInfoRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UpdateAccountInfo changes username and email. The cached session
// handle is refreshed on the next login.
func (s *Server) UpdateAccountInfo(c *fiber.Ctx) error {
	var req accountInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if err := validation.ValidateUsername(req.Username); err != nil {
		return fail(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return fail(c, models.NewValidationError(err.Error()))
	}

	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}

	user.Username = req.Username
	user.Email = req.Email
	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Account updated",
		"username": user.Username,
		"email":    user.Email,
		"handle":   user.Handle(),
	})
}

// UploadProfilePhoto stores the uploaded image and replaces the
// previous photo, removing its file.
func (s *Server) UploadProfilePhoto(c *fiber.Ctx) error {
	file, err := c.FormFile("photo")
	if err != nil {
		return fail(c, models.NewValidationError("A photo file is required"))
	}

	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}

	path, err := s.uploads.Save(file)
	if err != nil {
		return fail(c, err)
	}

	old := user.ProfileImage
	user.ProfileImage = path
	if err := s.userRepo.Update(c.Context(), user); err != nil {
		s.uploads.Remove(path)
		return fail(c, err)
	}
	if old != "" {
		s.uploads.Remove(old)
	}

	return c.JSON(fiber.Map{"profile_image": path})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	if req.NewPassword != req.ConfirmPassword {
		return fail(c, models.NewValidationError("New passwords do not match"))
	}
	if err := validation.ValidatePassword(req.NewPassword); err != nil {
		return fail(c, models.NewValidationError(err.Error()))
	}

	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
		return fail(c, models.NewUnauthorizedError("Current password is incorrect"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}
	if err := s.userRepo.UpdatePassword(c.Context(), user.ID, string(hash)); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}

// DeactivateAccount soft-locks the account and ends the session. Data
// is kept; the account can be reactivated out-of-band.
func (s *Server) DeactivateAccount(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if err := s.userRepo.Deactivate(c.Context(), userID); err != nil {
		return fail(c, err)
	}

	s.endSession(c)

	middleware.Logger.InfoContext(c.UserContext(), "account deactivated",
		slog.Uint64("user_id", uint64(userID)))

	return c.JSON(fiber.Map{"message": "Account deactivated"})
}

// DeleteAccount permanently removes the account and everything it
// owns, including uploaded files, then ends the session.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := currentUserID(c)

	files, err := s.userRepo.DeleteCascade(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	for _, f := range files {
		s.uploads.Remove(f)
	}

	s.endSession(c)

	middleware.Logger.InfoContext(c.UserContext(), "account deleted",
		slog.Uint64("user_id", uint64(userID)))

	return c.JSON(fiber.Map{"message": "Account deleted"})
}

func (s *Server) endSession(c *fiber.Ctx) {
	if token, ok := s.sessionToken(c); ok {
		_ = s.sessions.Destroy(c.Context(), token)
	}
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}
