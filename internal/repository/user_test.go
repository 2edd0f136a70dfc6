package repository

import (
	"context"
	"testing"

	"socialsync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserGetByEmail(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createUser(t, db, "alice", "alice@example.com")

	user, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)

	// Unknown email is not an error, just absent.
	user, err = repo.GetByEmail(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createUser(t, db, "alice", "alice@example.com")

	err := repo.Create(ctx, &models.User{
		Username: "impostor",
		Email:    "alice@example.com",
		Password: "hashed",
	})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.Equal(t, "Email already exists. Try logging in.", appErr.Message)
}

func TestUserDeleteCascade(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "alice@example.com")
	bob := createUser(t, db, "bob", "bob@example.com")
	alice.ProfileImage = "avatar.png"
	require.NoError(t, repo.Update(ctx, alice))

	require.NoError(t, db.Create(&models.Task{UserID: alice.ID, Title: "t"}).Error)
	require.NoError(t, db.Create(&models.Post{UserID: alice.ID, Caption: "c", ImagePath: "post.png", Status: "published"}).Error)
	require.NoError(t, db.Create(&models.Campaign{UserID: alice.ID, PostID: 1, Title: "camp", Budget: 100, ImagePath: "camp.png"}).Error)
	require.NoError(t, db.Create(&models.Message{SenderID: alice.ID, ReceiverID: bob.ID, Body: "hi"}).Error)
	require.NoError(t, db.Create(&models.Message{SenderID: bob.ID, ReceiverID: alice.ID, Body: "yo"}).Error)
	require.NoError(t, db.Create(models.DefaultSettings(alice.ID)).Error)
	require.NoError(t, NewBlockRepository(db).Create(ctx, alice.ID, bob.ID))

	files, err := repo.DeleteCascade(ctx, alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"avatar.png", "post.png", "camp.png"}, files)

	// Every owned row is gone, including both message directions.
	for _, count := range []struct {
		name  string
		model interface{}
		where string
	}{
		{"tasks", &models.Task{}, "user_id = ?"},
		{"posts", &models.Post{}, "user_id = ?"},
		{"campaigns", &models.Campaign{}, "user_id = ?"},
		{"settings", &models.Settings{}, "user_id = ?"},
		{"sessions", &models.LiveSession{}, "user_id = ?"},
	} {
		var n int64
		require.NoError(t, db.Model(count.model).Where(count.where, alice.ID).Count(&n).Error)
		assert.Zero(t, n, count.name)
	}

	var msgs int64
	require.NoError(t, db.Model(&models.Message{}).
		Where("sender_id = ? OR receiver_id = ?", alice.ID, alice.ID).Count(&msgs).Error)
	assert.Zero(t, msgs)

	var blocks int64
	require.NoError(t, db.Model(&models.BlockedUser{}).
		Where("blocker_id = ? OR blocked_id = ?", alice.ID, alice.ID).Count(&blocks).Error)
	assert.Zero(t, blocks)

	_, err = repo.GetByID(ctx, alice.ID)
	assert.Error(t, err)

	// The counterparty survives.
	_, err = repo.GetByID(ctx, bob.ID)
	assert.NoError(t, err)
}

func TestListMessageable(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	blocks := NewBlockRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "alice@example.com")
	bob := createUser(t, db, "bob", "bob@example.com")
	carol := createUser(t, db, "carol", "carol@example.com")
	inactive := createUser(t, db, "dormant", "dormant@example.com")
	require.NoError(t, repo.Deactivate(ctx, inactive.ID))

	// Bob blocks Alice; the pair is hidden in both directions.
	require.NoError(t, blocks.Create(ctx, bob.ID, alice.ID))

	users, err := repo.ListMessageable(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "carol", users[0].Username)

	users, err = repo.ListMessageable(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "carol", users[0].Username)

	users, err = repo.ListMessageable(ctx, carol.ID)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
