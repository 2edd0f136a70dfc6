package repository

import (
	"context"
	"errors"

	"socialsync/internal/models"

	"gorm.io/gorm"
)

// SettingsRepository defines persistence operations for user settings.
type SettingsRepository interface {
	// GetOrCreate returns the user's settings row, inserting the defaults
	// on first read.
	GetOrCreate(ctx context.Context, userID uint) (*models.Settings, error)
	// Replace overwrites the user's settings wholesale.
	Replace(ctx context.Context, userID uint, settings *models.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository returns a new SettingsRepository implementation.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetOrCreate(ctx context.Context, userID uint) (*models.Settings, error) {
	var settings models.Settings
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError(err)
	}

	defaults := models.DefaultSettings(userID)
	if err := r.db.WithContext(ctx).Create(defaults).Error; err != nil {
		// Lost a race against a concurrent first read; the row exists now.
		if isUniqueConstraintError(err) {
			if rerr := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; rerr == nil {
				return &settings, nil
			}
		}
		return nil, models.NewInternalError(err)
	}
	return defaults, nil
}

func (r *settingsRepository) Replace(ctx context.Context, userID uint, settings *models.Settings) error {
	existing, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	settings.ID = existing.ID
	settings.UserID = userID
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
