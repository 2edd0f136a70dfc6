package models

import "time"

// MaxMessageLength caps the body of a single chat message.
const MaxMessageLength = 2000

// Message is a direct message between two users. A conversation is the
// set of messages between two user IDs in either direction.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Body       string    `gorm:"not null" json:"body"`
	IsRead     bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ConversationSummary is one row of the inbox listing: the counterparty,
// the most recent message exchanged with them and how many of their
// messages are still unread.
type ConversationSummary struct {
	UserID       uint      `json:"user_id"`
	Username     string    `json:"username"`
	ProfileImage string    `json:"profile_image"`
	LastMessage  string    `json:"last_message"`
	LastSentByMe bool      `json:"last_sent_by_me"`
	LastAt       time.Time `json:"last_at"`
	UnreadCount  int       `json:"unread_count"`
}

// InboxUser is a user that can be messaged (not blocked in either
// direction).
type InboxUser struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	ProfileImage string `json:"profile_image"`
}
