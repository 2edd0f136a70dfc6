package models

import "time"

// Campaign statuses.
const (
	CampaignStatusRunning = "Running"
	CampaignStatusPaused  = "Paused"
)

// Campaign is a budgeted promotion linked to a post. Created either by
// boosting an existing published post or together with a new ad-only
// post.
type Campaign struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	PostID    uint      `gorm:"not null" json:"post_id"`
	Title     string    `gorm:"not null" json:"title"`
	Status    string    `gorm:"not null;default:Running" json:"status"`
	Budget    int       `gorm:"not null" json:"budget"`
	ImagePath string    `json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
}
