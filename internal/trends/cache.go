// Package trends fetches the external creator-ranking feed and memoizes
// it for a freshness window, falling back to a fixed list when the
// upstream is unreachable.
package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"socialsync/internal/middleware"
)

// Result sources.
const (
	SourceLive     = "live"
	SourceCache    = "cache"
	SourceFallback = "fallback"
)

// Creator is one row of the trending-creators ranking.
type Creator struct {
	Rank      int    `json:"rank"`
	Name      string `json:"name"`
	Handle    string `json:"handle"`
	Platform  string `json:"platform"`
	Followers string `json:"followers"`
}

// fallbackCreators is returned whenever a live fetch fails.
var fallbackCreators = []Creator{
	{Rank: 1, Name: "Ava Martinez", Handle: "@avamakes", Platform: "YouTube", Followers: "12.4M"},
	{Rank: 2, Name: "Jordan Lee", Handle: "@jlee.daily", Platform: "Instagram", Followers: "9.8M"},
	{Rank: 3, Name: "Priya Nair", Handle: "@priyacooks", Platform: "TikTok", Followers: "8.1M"},
	{Rank: 4, Name: "Sam Okafor", Handle: "@samokafor", Platform: "Twitter", Followers: "5.6M"},
	{Rank: 5, Name: "Mina Park", Handle: "@minaplays", Platform: "Twitch", Followers: "3.2M"},
}

// Cache memoizes the creator ranking for a freshness window. It is
// owned by the server and injected into handlers; the value and its
// captured-at timestamp are the only state.
type Cache struct {
	url    string
	ttl    time.Duration
	client *http.Client
	now    func() time.Time

	mu        sync.Mutex
	value     []Creator
	fetchedAt time.Time
}

// New returns a Cache for the given upstream URL. An empty URL means
// every refresh serves the fallback list.
func New(url string, ttl time.Duration) *Cache {
	return &Cache{
		url:    url,
		ttl:    ttl,
		client: &http.Client{Timeout: 8 * time.Second},
		now:    time.Now,
	}
}

// Creators returns the current ranking and which source produced it.
// Within the freshness window the memoized value is reused; otherwise a
// live fetch is attempted and the fallback list is served on any
// failure. The captured-at timestamp is refreshed on both refresh
// paths so a dead upstream is not hammered on every request.
func (c *Cache) Creators(ctx context.Context) ([]Creator, string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.value != nil && now.Sub(c.fetchedAt) < c.ttl {
		return c.value, SourceCache
	}

	creators, err := c.fetch(ctx)
	source := SourceLive
	if err != nil {
		middleware.Logger.Warn("trend fetch failed, serving fallback list",
			"error", err.Error())
		middleware.UpstreamFailures.WithLabelValues("trends").Inc()
		creators = fallbackCreators
		source = SourceFallback
	}

	c.value = creators
	c.fetchedAt = now
	return creators, source
}

func (c *Cache) fetch(ctx context.Context) ([]Creator, error) {
	if c.url == "" {
		return nil, fmt.Errorf("no trends upstream configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trends upstream returned status %d", resp.StatusCode)
	}

	var creators []Creator
	if err := json.NewDecoder(resp.Body).Decode(&creators); err != nil {
		return nil, fmt.Errorf("decode trends response: %w", err)
	}
	if len(creators) == 0 {
		return nil, fmt.Errorf("trends upstream returned an empty list")
	}
	return creators, nil
}
