package repository

import (
	"context"
	"errors"

	"socialsync/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	GetOwned(ctx context.Context, userID, postID uint) (*models.Post, error)
	// Delete returns the stored image path (possibly "") so the caller can
	// remove the file after the row is gone.
	Delete(ctx context.Context, userID, postID uint) (string, error)
	// ListRecentByOthers returns recent published posts authored by other
	// users, block-filtered in both directions, newest first.
	ListRecentByOthers(ctx context.Context, viewerID uint, limit int) ([]PostWithAuthor, error)
}

// PostWithAuthor is a post row joined with its author's username.
type PostWithAuthor struct {
	models.Post
	AuthorName string `json:"author_name"`
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetOwned(ctx context.Context, userID, postID uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", postID, userID).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, userID, postID uint) (string, error) {
	post, err := r.GetOwned(ctx, userID, postID)
	if err != nil {
		return "", err
	}

	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", postID, userID).
		Delete(&models.Post{})
	if res.Error != nil {
		return "", models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return "", models.NewNotFoundError("Post", postID)
	}
	return post.ImagePath, nil
}

func (r *postRepository) ListRecentByOthers(ctx context.Context, viewerID uint, limit int) ([]PostWithAuthor, error) {
	var posts []PostWithAuthor
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("posts.*, users.username AS author_name").
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.user_id <> ? AND posts.status = ?", viewerID, models.PostStatusPublished).
		Where(notBlockedEither, viewerID, viewerID).
		Order("posts.created_at DESC").
		Limit(limit).
		Scan(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
