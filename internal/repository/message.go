package repository

import (
	"context"

	"socialsync/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	// ListConversations returns one summary per counterparty the user has
	// exchanged messages with, excluding blocked pairs, newest first.
	ListConversations(ctx context.Context, userID uint) ([]models.ConversationSummary, error)
	// Thread returns the full history between the two users in
	// chronological order.
	Thread(ctx context.Context, userID, otherID uint) ([]models.Message, error)
	// MarkRead marks every unread message from otherID to userID as read.
	MarkRead(ctx context.Context, userID, otherID uint) error
	// DeleteConversation removes all messages between the two users in
	// both directions.
	DeleteConversation(ctx context.Context, userID, otherID uint) error
	// ListRecentReceived returns the user's most recent incoming messages
	// with sender names, excluding blocked senders, newest first.
	ListRecentReceived(ctx context.Context, userID uint, limit int) ([]MessageWithSender, error)
}

// MessageWithSender is a message row joined with the sender's username.
type MessageWithSender struct {
	models.Message
	SenderName string `json:"sender_name"`
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) ListConversations(ctx context.Context, userID uint) ([]models.ConversationSummary, error) {
	var msgs []models.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&msgs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	blocked, err := r.blockedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Messages are newest-first, so the first sighting of a counterparty
	// carries the latest message; later sightings only feed unread counts.
	summaries := make(map[uint]*models.ConversationSummary)
	var order []uint
	for _, m := range msgs {
		other := m.SenderID
		if other == userID {
			other = m.ReceiverID
		}
		if other == userID || blocked[other] {
			continue
		}

		s, ok := summaries[other]
		if !ok {
			s = &models.ConversationSummary{
				UserID:       other,
				LastMessage:  m.Body,
				LastSentByMe: m.SenderID == userID,
				LastAt:       m.CreatedAt,
			}
			summaries[other] = s
			order = append(order, other)
		}
		if m.ReceiverID == userID && !m.IsRead {
			s.UnreadCount++
		}
	}

	if len(order) == 0 {
		return []models.ConversationSummary{}, nil
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", order).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	names := make(map[uint]models.User, len(users))
	for _, u := range users {
		names[u.ID] = u
	}

	result := make([]models.ConversationSummary, 0, len(order))
	for _, id := range order {
		s := summaries[id]
		if u, ok := names[id]; ok {
			s.Username = u.Username
			s.ProfileImage = u.ProfileImage
		}
		result = append(result, *s)
	}
	return result, nil
}

func (r *messageRepository) blockedSet(ctx context.Context, userID uint) (map[uint]bool, error) {
	var edges []models.BlockedUser
	err := r.db.WithContext(ctx).
		Where("blocker_id = ? OR blocked_id = ?", userID, userID).
		Find(&edges).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	set := make(map[uint]bool, len(edges))
	for _, e := range edges {
		if e.BlockerID == userID {
			set[e.BlockedID] = true
		} else {
			set[e.BlockerID] = true
		}
	}
	return set, nil
}

func (r *messageRepository) Thread(ctx context.Context, userID, otherID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, userID, otherID uint) error {
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", otherID, userID, false).
		Update("is_read", true).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) DeleteConversation(ctx context.Context, userID, otherID uint) error {
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Delete(&models.Message{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) ListRecentReceived(ctx context.Context, userID uint, limit int) ([]MessageWithSender, error) {
	var msgs []MessageWithSender
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Select("messages.*, users.username AS sender_name").
		Joins("JOIN users ON users.id = messages.sender_id").
		Where("messages.receiver_id = ?", userID).
		Where(notBlockedEither, userID, userID).
		Order("messages.created_at DESC").
		Limit(limit).
		Scan(&msgs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}
