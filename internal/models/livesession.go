package models

import "time"

// LiveSession records one interval during which a user was broadcasting.
// An open session has a nil EndedAt; at most one open session per user
// is maintained by the repository's toggle operation.
type LiveSession struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	StartedAt time.Time  `gorm:"not null" json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
}

// LiveSummary reports a user's current live state and their summed
// historical broadcast duration. An open session counts up to "now".
type LiveSummary struct {
	Live         bool  `json:"live"`
	TotalSeconds int64 `json:"total_seconds"`
	Sessions     int   `json:"sessions"`
}

// LiveCreator is another user currently broadcasting.
type LiveCreator struct {
	UserID       uint      `json:"user_id"`
	Username     string    `json:"username"`
	ProfileImage string    `json:"profile_image"`
	StartedAt    time.Time `json:"started_at"`
}
