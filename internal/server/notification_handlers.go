package server

import (
	"fmt"
	"sort"

	"socialsync/internal/models"

	"github.com/gofiber/fiber/v2"
)

// notificationFeedLimit caps the merged notifications feed.
const notificationFeedLimit = 20

// GetNotifications merges recent incoming messages and recent posts by
// other users into one feed, newest first. When the user disabled
// in-app notifications the feed is empty and flagged.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	userID := currentUserID(c)

	settings, err := s.settingsRepo.GetOrCreate(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	if !settings.InAppNotifications {
		return c.JSON(models.NotificationFeed{
			Disabled: true,
			Items:    []models.NotificationItem{},
		})
	}

	messages, err := s.messageRepo.ListRecentReceived(c.Context(), userID, notificationFeedLimit)
	if err != nil {
		return fail(c, err)
	}
	posts, err := s.postRepo.ListRecentByOthers(c.Context(), userID, notificationFeedLimit)
	if err != nil {
		return fail(c, err)
	}

	items := make([]models.NotificationItem, 0, len(messages)+len(posts))
	for _, m := range messages {
		items = append(items, models.NotificationItem{
			Kind:        models.NotificationKindMessage,
			Title:       fmt.Sprintf("New message from %s", m.SenderName),
			Description: truncateText(m.Body, 80),
			CreatedAt:   m.CreatedAt,
		})
	}
	for _, p := range posts {
		items = append(items, models.NotificationItem{
			Kind:        models.NotificationKindPost,
			Title:       fmt.Sprintf("%s published a new post", p.AuthorName),
			Description: truncateText(p.Caption, 80),
			CreatedAt:   p.CreatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > notificationFeedLimit {
		items = items[:notificationFeedLimit]
	}

	return c.JSON(models.NotificationFeed{Items: items})
}

func truncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
