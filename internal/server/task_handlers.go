package server

import (
	"strings"

	"socialsync/internal/models"
	"socialsync/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetTasks lists the authenticated user's tasks.
func (s *Server) GetTasks(c *fiber.Ctx) error {
	tasks, err := s.taskRepo.ListByUser(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tasks)
}

type taskRequest struct {
	Title     string  `json:"title"`
	Completed *bool   `json:"completed"`
	DueDate   *string `json:"due_date"`
}

// CreateTask adds a task for the authenticated user.
func (s *Server) CreateTask(c *fiber.Ctx) error {
	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return fail(c, models.NewValidationError("Title is required"))
	}

	task := &models.Task{
		UserID:  currentUserID(c),
		Title:   req.Title,
		DueDate: req.DueDate,
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	if err := s.taskRepo.Create(c.Context(), task); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// UpdateTask applies the provided fields to an owned task. A task
// belonging to another user is indistinguishable from a missing one.
func (s *Server) UpdateTask(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req struct {
		Title     *string `json:"title"`
		Completed *bool   `json:"completed"`
		DueDate   *string `json:"due_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			return fail(c, models.NewValidationError("Title cannot be empty"))
		}
		req.Title = &trimmed
	}

	upd := repository.TaskUpdate{
		Title:     req.Title,
		Completed: req.Completed,
		DueDate:   req.DueDate,
	}
	if err := s.taskRepo.Update(c.Context(), currentUserID(c), taskID, upd); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Task updated"})
}

// DeleteTask removes an owned task.
func (s *Server) DeleteTask(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := s.taskRepo.Delete(c.Context(), currentUserID(c), taskID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Task deleted"})
}
