package models

import "time"

// BlockedUser is a directed block edge (blocker -> blocked). The edge
// itself is directed so that unblocking by the original blocker
// restores both sides, but every read path filters symmetrically: a
// block in either direction hides the pair from each other.
type BlockedUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BlockerID uint      `gorm:"not null;uniqueIndex:idx_block_pair" json:"blocker_id"`
	BlockedID uint      `gorm:"not null;uniqueIndex:idx_block_pair" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BlockedEntry is one row of the blocked-users listing.
type BlockedEntry struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	Username     string    `json:"username"`
	ProfileImage string    `json:"profile_image"`
	BlockedAt    time.Time `json:"blocked_at"`
}
