package repository

import (
	"context"

	"socialsync/internal/models"

	"gorm.io/gorm"
)

// TaskUpdate carries the optional fields of a task update. Nil fields
// are left untouched.
type TaskUpdate struct {
	Title     *string
	Completed *bool
	DueDate   *string
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	// Update and Delete report not-found when the row does not exist OR is
	// owned by someone else; callers cannot tell the two apart.
	Update(ctx context.Context, userID, taskID uint, upd TaskUpdate) error
	Delete(ctx context.Context, userID, taskID uint) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository returns a new TaskRepository implementation.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) ListByUser(ctx context.Context, userID uint) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *taskRepository) Update(ctx context.Context, userID, taskID uint, upd TaskUpdate) error {
	fields := map[string]interface{}{}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Completed != nil {
		fields["completed"] = *upd.Completed
	}
	if upd.DueDate != nil {
		fields["due_date"] = *upd.DueDate
	}
	if len(fields) == 0 {
		return models.NewValidationError("No fields to update")
	}

	res := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(fields)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Task", taskID)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&models.Task{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Task", taskID)
	}
	return nil
}
