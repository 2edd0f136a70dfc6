package models

import "time"

// Notification kinds.
const (
	NotificationKindMessage = "message"
	NotificationKindPost    = "post"
)

// NotificationItem is one entry of the merged notifications feed.
type NotificationItem struct {
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NotificationFeed is the /api/notifications payload. Disabled is set
// when the user turned off in-app notifications; Items is then empty.
type NotificationFeed struct {
	Disabled bool               `json:"disabled"`
	Items    []NotificationItem `json:"items"`
}
