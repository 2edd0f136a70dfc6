package repository

import (
	"context"

	"socialsync/internal/models"

	"gorm.io/gorm"
)

// CampaignUpdate carries the optional fields of a campaign update.
type CampaignUpdate struct {
	Status *string
	Budget *int
	Title  *string
}

// CampaignRepository defines persistence operations for ad campaigns.
type CampaignRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Campaign, error)
	Create(ctx context.Context, campaign *models.Campaign) error
	// CreateWithPost creates the ad-only post and its campaign in one
	// transaction so a campaign failure cannot leave an orphan post.
	CreateWithPost(ctx context.Context, post *models.Post, campaign *models.Campaign) error
	Update(ctx context.Context, userID, campaignID uint, upd CampaignUpdate) error
	// Delete returns the campaign's stored image path for file cleanup.
	Delete(ctx context.Context, userID, campaignID uint) (string, error)
}

type campaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository returns a new CampaignRepository implementation.
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) ListByUser(ctx context.Context, userID uint) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&campaigns).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return campaigns, nil
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	if err := r.db.WithContext(ctx).Create(campaign).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *campaignRepository) CreateWithPost(ctx context.Context, post *models.Post, campaign *models.Campaign) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		campaign.PostID = post.ID
		return tx.Create(campaign).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *campaignRepository) Update(ctx context.Context, userID, campaignID uint, upd CampaignUpdate) error {
	fields := map[string]interface{}{}
	if upd.Status != nil {
		fields["status"] = *upd.Status
	}
	if upd.Budget != nil {
		fields["budget"] = *upd.Budget
	}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if len(fields) == 0 {
		return models.NewValidationError("No fields to update")
	}

	res := r.db.WithContext(ctx).Model(&models.Campaign{}).
		Where("id = ? AND user_id = ?", campaignID, userID).
		Updates(fields)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Campaign", campaignID)
	}
	return nil
}

func (r *campaignRepository) Delete(ctx context.Context, userID, campaignID uint) (string, error) {
	var campaign models.Campaign
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", campaignID, userID).
		First(&campaign).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", models.NewNotFoundError("Campaign", campaignID)
		}
		return "", models.NewInternalError(err)
	}

	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", campaignID, userID).
		Delete(&models.Campaign{})
	if res.Error != nil {
		return "", models.NewInternalError(res.Error)
	}
	return campaign.ImagePath, nil
}
