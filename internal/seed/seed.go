// Package seed populates a development database with plausible demo
// data.
package seed

import (
	"fmt"
	"log"
	"strings"
	"time"

	"socialsync/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the login password for every seeded account.
const DefaultPassword = "password123"

var platforms = []string{"YouTube", "Instagram", "TikTok", "Twitter", "Facebook"}

// Run fills the database with demo users and their content. It is
// idempotent enough for development: it bails out when users already
// exist.
func Run(db *gorm.DB, userCount int) error {
	var existing int64
	if err := db.Model(&models.User{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if existing > 0 {
		log.Printf("Database already has %d users, skipping seed", existing)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	faker := gofakeit.New(42)

	users := make([]models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		name := faker.Username()
		users = append(users, models.User{
			Username: name,
			Email:    fmt.Sprintf("%s%d@example.com", strings.ToLower(name), i),
			Password: string(hash),
			IsActive: true,
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("create users: %w", err)
	}

	for _, u := range users {
		if err := db.Create(models.DefaultSettings(u.ID)).Error; err != nil {
			return fmt.Errorf("create settings: %w", err)
		}

		for i := 0; i < faker.Number(2, 5); i++ {
			due := faker.DateRange(time.Now(), time.Now().AddDate(0, 1, 0)).Format("2006-01-02")
			task := models.Task{
				UserID:    u.ID,
				Title:     faker.HipsterSentence(4),
				Completed: faker.Bool(),
				DueDate:   &due,
			}
			if err := db.Create(&task).Error; err != nil {
				return fmt.Errorf("create task: %w", err)
			}
		}

		for i := 0; i < faker.Number(1, 4); i++ {
			status := models.PostStatusPublished
			if faker.Bool() {
				status = models.PostStatusDraft
			}
			post := models.Post{
				UserID:    u.ID,
				Caption:   faker.HipsterSentence(8),
				Platforms: models.StringList{platforms[faker.Number(0, len(platforms)-1)]},
				Status:    status,
			}
			if err := db.Create(&post).Error; err != nil {
				return fmt.Errorf("create post: %w", err)
			}

			if status == models.PostStatusPublished && faker.Bool() {
				title := post.Caption
				if len(title) > 40 {
					title = title[:40]
				}
				campaign := models.Campaign{
					UserID: u.ID,
					PostID: post.ID,
					Title:  title,
					Status: models.CampaignStatusRunning,
					Budget: faker.Number(50, 2000),
				}
				if err := db.Create(&campaign).Error; err != nil {
					return fmt.Errorf("create campaign: %w", err)
				}
			}
		}
	}

	// A few conversations between neighbouring users.
	for i := 0; i+1 < len(users); i += 2 {
		a, b := users[i], users[i+1]
		for j := 0; j < faker.Number(2, 6); j++ {
			sender, receiver := a.ID, b.ID
			if j%2 == 1 {
				sender, receiver = b.ID, a.ID
			}
			msg := models.Message{
				SenderID:   sender,
				ReceiverID: receiver,
				Body:       faker.HipsterSentence(6),
				IsRead:     j%2 == 0,
			}
			if err := db.Create(&msg).Error; err != nil {
				return fmt.Errorf("create message: %w", err)
			}
		}
	}

	log.Printf("Seeded %d users (password %q)", len(users), DefaultPassword)
	return nil
}
