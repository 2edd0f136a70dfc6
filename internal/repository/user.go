// Package repository implements the data access layer for the application.
//
// Every mutating method takes the owning user's ID and scopes its SQL to
// it, so a handler cannot accidentally reach across tenants.
package repository

import (
	"context"
	"errors"
	"strings"

	"socialsync/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// GetByEmail returns (nil, nil) when no account uses the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	Deactivate(ctx context.Context, id uint) error
	// DeleteCascade removes the user and every row they own, returning the
	// stored file paths (post images, campaign images, profile photo) so
	// the caller can clean up the uploads directory best-effort.
	DeleteCascade(ctx context.Context, id uint) ([]string, error)
	// ListMessageable returns all other active users the viewer may start a
	// conversation with, hiding pairs with a block edge in either direction.
	ListMessageable(ctx context.Context, viewerID uint) ([]models.InboxUser, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Email already exists. Try logging in.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// SQLite reports "UNIQUE constraint failed: table.column"
	return strings.Contains(msg, "unique constraint")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Email already in use by another account")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("password", passwordHash)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	return nil
}

func (r *userRepository) Deactivate(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	return nil
}

func (r *userRepository) DeleteCascade(ctx context.Context, id uint) ([]string, error) {
	var files []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		if user.ProfileImage != "" {
			files = append(files, user.ProfileImage)
		}

		var postImages []string
		if err := tx.Model(&models.Post{}).
			Where("user_id = ? AND image_path <> ''", id).
			Pluck("image_path", &postImages).Error; err != nil {
			return models.NewInternalError(err)
		}
		files = append(files, postImages...)

		var campaignImages []string
		if err := tx.Model(&models.Campaign{}).
			Where("user_id = ? AND image_path <> ''", id).
			Pluck("image_path", &campaignImages).Error; err != nil {
			return models.NewInternalError(err)
		}
		files = append(files, campaignImages...)

		for _, del := range []*gorm.DB{
			tx.Where("sender_id = ? OR receiver_id = ?", id, id).Delete(&models.Message{}),
			tx.Where("user_id = ?", id).Delete(&models.Campaign{}),
			tx.Where("user_id = ?", id).Delete(&models.Post{}),
			tx.Where("user_id = ?", id).Delete(&models.Task{}),
			tx.Where("user_id = ?", id).Delete(&models.LiveSession{}),
			tx.Where("user_id = ?", id).Delete(&models.Settings{}),
			tx.Where("blocker_id = ? OR blocked_id = ?", id, id).Delete(&models.BlockedUser{}),
			tx.Delete(&models.User{}, id),
		} {
			if del.Error != nil {
				return models.NewInternalError(del.Error)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// notBlockedEither filters rows of the users table aliased as "users"
// against the viewer's block edges in both directions.
const notBlockedEither = `NOT EXISTS (
	SELECT 1 FROM blocked_users b
	WHERE (b.blocker_id = ? AND b.blocked_id = users.id)
	   OR (b.blocker_id = users.id AND b.blocked_id = ?)
)`

func (r *userRepository) ListMessageable(ctx context.Context, viewerID uint) ([]models.InboxUser, error) {
	var users []models.InboxUser
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.id, users.username, users.profile_image").
		Where("users.id <> ? AND users.is_active = ?", viewerID, true).
		Where(notBlockedEither, viewerID, viewerID).
		Order("users.username ASC").
		Scan(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
