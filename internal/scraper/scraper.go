// Package scraper extracts article body text from web pages and fills
// in candidate items that arrived with only a teaser.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nandinisonar18/Health-Multi-Agent/internal/logger"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/news"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/retry"
)

const (
	// minContentLength is the threshold below which an item's content
	// counts as a teaser and triggers full-article extraction.
	minContentLength = 300

	// articleTextMin is the minimum length for an <article> block to be
	// trusted over the paragraph fallback.
	articleTextMin = 200

	// fallbackParagraphs caps the paragraph fallback. The paragraphs are
	// taken longest-first, not in document order.
	fallbackParagraphs = 12
)

// Extract pulls best-effort article text out of raw page markup.
// Returns "" when nothing usable is found; never errors.
func Extract(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	// Prefer a real <article> element.
	if article := doc.Find("article").First(); article.Length() > 0 {
		var parts []string
		article.Find("p").Each(func(i int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				parts = append(parts, text)
			}
		})
		text := strings.Join(parts, " ")
		if len(text) > articleTextMin {
			return text
		}
	}

	// Fallback: the longest paragraphs anywhere on the page.
	var paragraphs []string
	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		return ""
	}
	sort.SliceStable(paragraphs, func(i, j int) bool {
		return len(paragraphs[i]) > len(paragraphs[j])
	})
	if len(paragraphs) > fallbackParagraphs {
		paragraphs = paragraphs[:fallbackParagraphs]
	}
	return strings.Join(paragraphs, " ")
}

// Completer fills in full article text for items that only carry a
// teaser. Failures are logged and never propagated: the worst case is
// that the item keeps the content it arrived with.
type Completer struct {
	client  *http.Client
	extract func(html string) string

	// Retry controls the page-fetch retry policy.
	Retry retry.Config
}

func NewCompleter(client *http.Client) *Completer {
	return &Completer{client: client, extract: Extract, Retry: retry.Default}
}

// NewCompleterWithExtractor lets tests substitute the text extractor.
func NewCompleterWithExtractor(client *http.Client, extract func(string) string) *Completer {
	return &Completer{client: client, extract: extract, Retry: retry.Default}
}

// NeedsCompletion reports whether the item's content is missing or too
// short to summarize well.
func (c *Completer) NeedsCompletion(item news.CandidateItem) bool {
	return len(item.Content) < minContentLength
}

// Complete returns the item's content, replaced by extracted full text
// when the fetch and extraction yield something non-empty.
func (c *Completer) Complete(ctx context.Context, item news.CandidateItem) string {
	if !c.NeedsCompletion(item) || item.URL == "" {
		return item.Content
	}

	var html string
	err := retry.WithRetry(ctx, c.Retry, func() error {
		var err error
		html, err = c.fetchPage(ctx, item.URL)
		return err
	})
	if err != nil {
		logger.Warn("article fetch failed", "url", item.URL, "error", err)
		return item.Content
	}

	if text := c.extract(html); text != "" {
		return text
	}
	return item.Content
}

func (c *Completer) fetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
