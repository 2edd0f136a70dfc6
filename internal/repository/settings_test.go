package repository

import (
	"context"
	"testing"

	"socialsync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsGetOrCreate(t *testing.T) {
	db := setupDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice", "alice@example.com")

	settings, err := repo.GetOrCreate(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dark", settings.Appearance)
	assert.Equal(t, "Medium", settings.FontSize)
	assert.Equal(t, "English", settings.Language)
	assert.True(t, settings.InAppNotifications)

	// A second read returns the same row, not another insert.
	again, err := repo.GetOrCreate(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.Settings{}).Where("user_id = ?", alice.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSettingsReplace(t *testing.T) {
	db := setupDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice", "alice@example.com")

	original, err := repo.GetOrCreate(ctx, alice.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Replace(ctx, alice.ID, &models.Settings{
		UserID:             alice.ID,
		Appearance:         "Light",
		FontSize:           "Large",
		Language:           "German",
		InAppNotifications: false,
	}))

	updated, err := repo.GetOrCreate(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, "Light", updated.Appearance)
	assert.Equal(t, "Large", updated.FontSize)
	assert.Equal(t, "German", updated.Language)
	assert.False(t, updated.InAppNotifications)
}
