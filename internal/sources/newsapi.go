package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/nandinisonar18/Health-Multi-Agent/internal/news"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/retry"
)

const newsAPIEndpoint = "https://newsapi.org/v2/top-headlines"

// NewsAPIClient fetches health headlines from newsapi.org.
type NewsAPIClient struct {
	apiKey      string
	client      *http.Client
	maxArticles int

	// BaseURL overrides the production endpoint, for tests.
	BaseURL string
	// Retry controls the fetch retry policy.
	Retry retry.Config
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Content     string `json:"content"`
	} `json:"articles"`
}

func NewNewsAPIClient(apiKey string, client *http.Client, maxArticles int) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:      apiKey,
		client:      client,
		maxArticles: maxArticles,
		BaseURL:     newsAPIEndpoint,
		Retry:       retry.Default.Attempts(fetchAttempts),
	}
}

func (c *NewsAPIClient) Name() string {
	return "newsapi"
}

// Fetch returns the latest health headlines. A missing API key means
// the source is not configured, which yields no items rather than an
// error.
func (c *NewsAPIClient) Fetch(ctx context.Context) ([]news.CandidateItem, error) {
	if c.apiKey == "" {
		return nil, nil
	}
	return fetchWithRetry(ctx, c.Retry, func() ([]news.CandidateItem, error) {
		return c.fetchOnce(ctx)
	})
}

func (c *NewsAPIClient) fetchOnce(ctx context.Context) ([]news.CandidateItem, error) {
	pageSize := c.maxArticles
	if pageSize > 100 {
		pageSize = 100 // NewsAPI hard limit
	}

	params := url.Values{}
	params.Set("category", "health")
	params.Set("language", "en")
	params.Set("pageSize", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi returned status %d", resp.StatusCode)
	}

	var apiResp newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode newsapi response: %w", err)
	}
	if apiResp.Status != "ok" {
		return nil, fmt.Errorf("newsapi error: %s", apiResp.Status)
	}

	items := make([]news.CandidateItem, 0, len(apiResp.Articles))
	for _, a := range apiResp.Articles {
		if len(items) >= c.maxArticles {
			break
		}
		items = append(items, news.CandidateItem{
			ID:        uuid.NewString(),
			Title:     a.Title,
			URL:       a.URL,
			Source:    a.Source.Name,
			Published: a.PublishedAt,
			Content:   a.Content,
		})
	}
	return items, nil
}
