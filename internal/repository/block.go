package repository

import (
	"context"

	"socialsync/internal/models"

	"gorm.io/gorm"
)

// BlockRepository defines persistence operations for block edges.
type BlockRepository interface {
	ListByBlocker(ctx context.Context, blockerID uint) ([]models.BlockedEntry, error)
	Create(ctx context.Context, blockerID, blockedID uint) error
	// Delete removes the blocker's edge to the given user.
	Delete(ctx context.Context, blockerID, blockedID uint) error
	// IsBlockedEither reports whether a block edge exists between the two
	// users in either direction.
	IsBlockedEither(ctx context.Context, userID, otherID uint) (bool, error)
}

type blockRepository struct {
	db *gorm.DB
}

// NewBlockRepository returns a new BlockRepository implementation.
func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) ListByBlocker(ctx context.Context, blockerID uint) ([]models.BlockedEntry, error) {
	var entries []models.BlockedEntry
	err := r.db.WithContext(ctx).
		Model(&models.BlockedUser{}).
		Select("blocked_users.id, users.id AS user_id, users.username, users.profile_image, blocked_users.created_at AS blocked_at").
		Joins("JOIN users ON users.id = blocked_users.blocked_id").
		Where("blocked_users.blocker_id = ?", blockerID).
		Order("blocked_users.created_at DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *blockRepository) Create(ctx context.Context, blockerID, blockedID uint) error {
	edge := models.BlockedUser{BlockerID: blockerID, BlockedID: blockedID}
	if err := r.db.WithContext(ctx).Create(&edge).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User is already blocked")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blockRepository) Delete(ctx context.Context, blockerID, blockedID uint) error {
	res := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.BlockedUser{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Blocked user", blockedID)
	}
	return nil
}

func (r *blockRepository) IsBlockedEither(ctx context.Context, userID, otherID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BlockedUser{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userID, otherID, otherID, userID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
