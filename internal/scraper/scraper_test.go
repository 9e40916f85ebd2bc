package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nandinisonar18/Health-Multi-Agent/internal/news"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/retry"
)

func fastRetry() retry.Config {
	return retry.Config{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestExtractPrefersArticleTag(t *testing.T) {
	long := strings.Repeat("Sentence with enough words to matter. ", 10)
	html := fmt.Sprintf(`<html><body>
		<p>navigation junk</p>
		<article><p>%s</p><p>Second paragraph.</p></article>
	</body></html>`, long)

	text := Extract(html)
	assert.Contains(t, text, "Sentence with enough words")
	assert.Contains(t, text, "Second paragraph.")
	assert.NotContains(t, text, "navigation junk")
}

func TestExtractFallsBackToLongestParagraphs(t *testing.T) {
	// The <article> text is too short to trust, so the fallback picks
	// paragraphs longest-first from the whole page.
	html := `<html><body>
		<article><p>tiny</p></article>
		<p>short one</p>
		<p>` + strings.Repeat("medium text here ", 5) + `</p>
		<p>` + strings.Repeat("the longest paragraph on the page ", 8) + `</p>
	</body></html>`

	text := Extract(html)
	require.NotEmpty(t, text)
	// Longest-first ordering, not document order.
	assert.True(t, strings.Index(text, "the longest paragraph") < strings.Index(text, "medium text"))
}

func TestExtractCapsFallbackParagraphs(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 20; i++ {
		// Increasing lengths so the longest twelve are the last twelve.
		fmt.Fprintf(&sb, "<p>paragraph-%02d %s</p>", i, strings.Repeat("x", i+1))
	}
	sb.WriteString("</body></html>")

	text := Extract(sb.String())
	for i := 8; i < 20; i++ {
		assert.Contains(t, text, fmt.Sprintf("paragraph-%02d", i))
	}
	for i := 0; i < 8; i++ {
		assert.NotContains(t, text, fmt.Sprintf("paragraph-%02d", i))
	}
}

func TestExtractEmptyWhenNoParagraphs(t *testing.T) {
	assert.Empty(t, Extract("<html><body><div>no paragraphs here</div></body></html>"))
}

func TestCompleterSkipsSufficientContent(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := NewCompleter(srv.Client())
	c.Retry = fastRetry()

	content := strings.Repeat("already complete ", 30) // well over the threshold
	item := news.CandidateItem{URL: srv.URL, Content: content}

	assert.Equal(t, content, c.Complete(context.Background(), item))
	assert.Zero(t, hits.Load())
}

func TestCompleterReplacesShortContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>page</body></html>")
	}))
	defer srv.Close()

	c := NewCompleterWithExtractor(srv.Client(), func(string) string {
		return "extracted full article text"
	})
	c.Retry = fastRetry()

	item := news.CandidateItem{URL: srv.URL, Content: "teaser"}
	assert.Equal(t, "extracted full article text", c.Complete(context.Background(), item))
}

func TestCompleterKeepsOriginalWhenExtractorEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>page</body></html>")
	}))
	defer srv.Close()

	c := NewCompleterWithExtractor(srv.Client(), func(string) string { return "" })
	c.Retry = fastRetry()

	item := news.CandidateItem{URL: srv.URL, Content: "teaser"}
	assert.Equal(t, "teaser", c.Complete(context.Background(), item))
}

func TestCompleterKeepsOriginalOnFetchFailure(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewCompleter(srv.Client())
	c.Retry = fastRetry()

	item := news.CandidateItem{URL: srv.URL, Content: "teaser"}
	assert.Equal(t, "teaser", c.Complete(context.Background(), item))
	assert.Equal(t, int32(3), hits.Load(), "fetch is retried before giving up")
}

func TestCompleterSkipsItemsWithoutURL(t *testing.T) {
	c := NewCompleter(http.DefaultClient)
	c.Retry = fastRetry()

	item := news.CandidateItem{Content: "short"}
	assert.Equal(t, "short", c.Complete(context.Background(), item))
}
