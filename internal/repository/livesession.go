package repository

import (
	"context"
	"errors"
	"time"

	"socialsync/internal/models"

	"gorm.io/gorm"
)

// LiveSessionRepository defines persistence operations for live sessions.
type LiveSessionRepository interface {
	// Toggle flips the user's live state: it closes the open session if one
	// exists, otherwise starts a new one. Returns the resulting state.
	Toggle(ctx context.Context, userID uint, now time.Time) (bool, error)
	// Summary reports the current state and the summed historical duration,
	// counting an open session up to now.
	Summary(ctx context.Context, userID uint, now time.Time) (*models.LiveSummary, error)
	// ListLive returns other users with an open session, block-filtered.
	ListLive(ctx context.Context, viewerID uint) ([]models.LiveCreator, error)
}

type liveSessionRepository struct {
	db *gorm.DB
}

// NewLiveSessionRepository returns a new LiveSessionRepository implementation.
func NewLiveSessionRepository(db *gorm.DB) LiveSessionRepository {
	return &liveSessionRepository{db: db}
}

func (r *liveSessionRepository) Toggle(ctx context.Context, userID uint, now time.Time) (bool, error) {
	var live bool
	// The single toggle entry point always inspects current state inside a
	// transaction, so at most one open session per user can exist.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open models.LiveSession
		err := tx.Where("user_id = ? AND ended_at IS NULL", userID).First(&open).Error
		switch {
		case err == nil:
			if uerr := tx.Model(&models.LiveSession{}).
				Where("id = ?", open.ID).
				Update("ended_at", now).Error; uerr != nil {
				return models.NewInternalError(uerr)
			}
			live = false
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			sess := models.LiveSession{UserID: userID, StartedAt: now}
			if cerr := tx.Create(&sess).Error; cerr != nil {
				return models.NewInternalError(cerr)
			}
			live = true
			return nil
		default:
			return models.NewInternalError(err)
		}
	})
	if err != nil {
		return false, err
	}
	return live, nil
}

func (r *liveSessionRepository) Summary(ctx context.Context, userID uint, now time.Time) (*models.LiveSummary, error) {
	var sessions []models.LiveSession
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&sessions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	summary := &models.LiveSummary{Sessions: len(sessions)}
	var total time.Duration
	for _, s := range sessions {
		end := now
		if s.EndedAt != nil {
			end = *s.EndedAt
		} else {
			summary.Live = true
		}
		if end.After(s.StartedAt) {
			total += end.Sub(s.StartedAt)
		}
	}
	summary.TotalSeconds = int64(total.Seconds())
	return summary, nil
}

func (r *liveSessionRepository) ListLive(ctx context.Context, viewerID uint) ([]models.LiveCreator, error) {
	var creators []models.LiveCreator
	err := r.db.WithContext(ctx).
		Model(&models.LiveSession{}).
		Select("users.id AS user_id, users.username, users.profile_image, live_sessions.started_at").
		Joins("JOIN users ON users.id = live_sessions.user_id").
		Where("live_sessions.ended_at IS NULL AND live_sessions.user_id <> ?", viewerID).
		Where(notBlockedEither, viewerID, viewerID).
		Order("live_sessions.started_at DESC").
		Scan(&creators).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return creators, nil
}
