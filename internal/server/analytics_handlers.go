package server

import (
	"fmt"
	"hash/fnv"
	"time"

	"socialsync/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gofiber/fiber/v2"
)

// analyticsDays is the length of the generated daily series.
const analyticsDays = 7

var analyticsPlatforms = map[string]bool{
	"youtube":  true,
	"facebook": true,
	"twitter":  true,
}

type analyticsPoint struct {
	Date      string `json:"date"`
	Views     int    `json:"views"`
	Likes     int    `json:"likes"`
	Comments  int    `json:"comments"`
	Followers int    `json:"followers"`
}

// GetPlatformAnalytics returns a mocked daily engagement series for the
// given platform. Values are derived from the user, platform and date,
// so repeated requests within a day return identical numbers.
func (s *Server) GetPlatformAnalytics(c *fiber.Ctx) error {
	platform := c.Params("platform")
	if !analyticsPlatforms[platform] {
		return fail(c, models.NewNotFoundError("Platform", platform))
	}

	userID := currentUserID(c)
	now := time.Now()

	series := make([]analyticsPoint, 0, analyticsDays)
	totalViews, totalLikes, totalComments := 0, 0, 0
	for i := analyticsDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		faker := gofakeit.New(analyticsSeed(userID, platform, day))

		point := analyticsPoint{
			Date:      day,
			Views:     faker.Number(500, 50000),
			Likes:     faker.Number(50, 5000),
			Comments:  faker.Number(5, 800),
			Followers: faker.Number(1000, 250000),
		}
		totalViews += point.Views
		totalLikes += point.Likes
		totalComments += point.Comments
		series = append(series, point)
	}

	return c.JSON(fiber.Map{
		"platform": platform,
		"series":   series,
		"totals": fiber.Map{
			"views":    totalViews,
			"likes":    totalLikes,
			"comments": totalComments,
		},
	})
}

// analyticsSeed derives a stable seed from the user, platform and day.
func analyticsSeed(userID uint, platform, day string) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s|%s", userID, platform, day)
	return int64(h.Sum64())
}
