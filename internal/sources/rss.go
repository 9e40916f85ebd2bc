package sources

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"github.com/nandinisonar18/Health-Multi-Agent/internal/logger"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/news"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/retry"
)

// RSSClient fetches candidate items from a configured list of RSS/Atom
// feeds. One broken feed never fails the adapter: its error is logged
// and the remaining feeds still contribute items.
type RSSClient struct {
	feedURLs    []string
	parser      *gofeed.Parser
	maxArticles int

	// Retry controls the fetch retry policy.
	Retry retry.Config
}

func NewRSSClient(feedURLs []string, client *http.Client, maxArticles int) *RSSClient {
	// gofeed's default client has no timeout; feed fetches must go
	// through the app's timeout-bounded client like every other call.
	parser := gofeed.NewParser()
	parser.Client = client

	return &RSSClient{
		feedURLs:    feedURLs,
		parser:      parser,
		maxArticles: maxArticles,
		Retry:       retry.Default.Attempts(fetchAttempts),
	}
}

func (c *RSSClient) Name() string {
	return "rss"
}

// Fetch downloads and parses every configured feed, preserving each
// feed's native entry order.
func (c *RSSClient) Fetch(ctx context.Context) ([]news.CandidateItem, error) {
	return fetchWithRetry(ctx, c.Retry, func() ([]news.CandidateItem, error) {
		return c.fetchOnce(ctx)
	})
}

func (c *RSSClient) fetchOnce(ctx context.Context) ([]news.CandidateItem, error) {
	var out []news.CandidateItem
	successCount := 0

	for _, feedURL := range c.feedURLs {
		if feedURL == "" {
			continue
		}

		feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			logger.Warn("rss fetch failed", "feed", feedURL, "error", err)
			continue
		}

		for i, entry := range feed.Items {
			if i >= c.maxArticles {
				break
			}
			out = append(out, news.CandidateItem{
				ID:        uuid.NewString(),
				Title:     entry.Title,
				URL:       entry.Link,
				Source:    feed.Title,
				Published: entry.Published,
				Content:   entry.Description, // may be HTML, may be just a teaser
			})
		}
		successCount++
	}

	logger.Info("rss feeds processed", "ok", successCount, "total", len(c.feedURLs))
	return out, nil
}
