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

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new account. The email must be unused; the
// password is stored bcrypt-hashed.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
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
	if err := validation.ValidatePassword(req.Password); err != nil {
		return fail(c, models.NewValidationError(err.Error()))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		IsActive: true,
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return fail(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user signed up",
		slog.Uint64("user_id", uint64(user.ID)))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created successfully",
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Login verifies credentials and establishes a session. A deactivated
// account is rejected before the password is checked so its owner gets
// an actionable message.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		return fail(c, models.NewValidationError("Email and password are required"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return fail(c, err)
	}
	if user == nil {
		return fail(c, models.NewUnauthorizedError("Invalid email or password"))
	}
	if !user.IsActive {
		return fail(c, models.NewForbiddenError("This account has been deactivated."))
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return fail(c, models.NewUnauthorizedError("Invalid email or password"))
	}

	// Replace any session the browser already holds.
	if old, ok := s.sessionToken(c); ok {
		_ = s.sessions.Destroy(c.Context(), old)
	}

	token, err := s.sessions.Create(c.Context(), session.Session{
		UserID:   user.ID,
		Username: user.Username,
		Handle:   user.Handle(),
	})
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    session.SignToken(s.config.SessionSecret, token),
		Expires:  time.Now().Add(session.TTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   s.config.Env == "production" || s.config.Env == "prod",
		Path:     "/",
	})

	middleware.Logger.InfoContext(c.UserContext(), "user logged in",
		slog.Uint64("user_id", uint64(user.ID)))

	return c.JSON(fiber.Map{
		"message": "Logged in",
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"handle":   user.Handle(),
		},
	})
}

// Logout destroys the session and clears the cookie. Safe to call
// without a valid session.
func (s *Server) Logout(c *fiber.Ctx) error {
	if token, ok := s.sessionToken(c); ok {
		if err := s.sessions.Destroy(c.Context(), token); err != nil {
			return fail(c, models.NewInternalError(err))
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	return c.JSON(fiber.Map{"message": "Logged out"})
}
