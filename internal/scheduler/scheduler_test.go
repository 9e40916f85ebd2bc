package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nandinisonar18/Health-Multi-Agent/internal/aggregate"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/news"
)

func makeItems(n int) []news.CandidateItem {
	items := make([]news.CandidateItem, n)
	for i := range items {
		items[i] = news.CandidateItem{
			ID:    fmt.Sprintf("item-%02d", i),
			Title: fmt.Sprintf("Title %02d", i),
			URL:   fmt.Sprintf("https://e.com/%02d", i),
		}
	}
	return items
}

func okResult(item news.CandidateItem) news.EnrichmentResult {
	return news.EnrichmentResult{
		ID:      item.ID,
		Title:   item.Title,
		URL:     item.URL,
		Summary: &news.Summary{Summary: "s"},
	}
}

func TestRunPreservesDispatchOrder(t *testing.T) {
	const n = 8
	items := makeItems(n)

	// Reversed completion latency: the last dispatched item finishes
	// first.
	process := func(ctx context.Context, item news.CandidateItem) news.EnrichmentResult {
		var idx int
		fmt.Sscanf(item.ID, "item-%02d", &idx)
		time.Sleep(time.Duration(n-idx) * 5 * time.Millisecond)
		return okResult(item)
	}

	batch := Run(context.Background(), items, n, process)

	require.Len(t, batch, n)
	for i, r := range batch {
		assert.Equal(t, fmt.Sprintf("item-%02d", i), r.ID)
	}
}

func TestRunEnforcesConcurrencyBound(t *testing.T) {
	const limit = 2
	items := makeItems(10)

	var inFlight, maxInFlight atomic.Int32
	process := func(ctx context.Context, item news.CandidateItem) news.EnrichmentResult {
		cur := inFlight.Add(1)
		for {
			prev := maxInFlight.Load()
			if cur <= prev || maxInFlight.CompareAndSwap(prev, cur) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return okResult(item)
	}

	batch := Run(context.Background(), items, limit, process)

	require.Len(t, batch, 10)
	assert.LessOrEqual(t, maxInFlight.Load(), int32(limit))
}

func TestRunConvertsPanicToErrorRecord(t *testing.T) {
	items := makeItems(3)

	process := func(ctx context.Context, item news.CandidateItem) news.EnrichmentResult {
		if item.ID == "item-01" {
			panic("boom")
		}
		return okResult(item)
	}

	batch := Run(context.Background(), items, 2, process)

	require.Len(t, batch, 3)
	assert.NotNil(t, batch[0].Summary)
	assert.NotNil(t, batch[2].Summary)

	assert.Nil(t, batch[1].Summary)
	assert.Contains(t, batch[1].ErrorSummarize, "pipeline panic")
	assert.Equal(t, "item-01", batch[1].ID, "failed item keeps its identity")
}

func TestRunEmptyInput(t *testing.T) {
	batch := Run(context.Background(), nil, 5, func(ctx context.Context, item news.CandidateItem) news.EnrichmentResult {
		t.Fatal("process must not be called")
		return news.EnrichmentResult{}
	})
	assert.Empty(t, batch)
}

// End-to-end shape of a run: two API items and three feed items with
// one cross-source duplicate, limit 4, everything enriched in order.
func TestAggregateThenRunEndToEnd(t *testing.T) {
	api := []news.CandidateItem{
		{ID: "a1", URL: "https://e.com/1", Title: "One"},
		{ID: "a2", URL: "https://e.com/2", Title: "Two"},
	}
	rss := []news.CandidateItem{
		{ID: "r1", URL: "https://e.com/1", Title: "One"}, // duplicate of a1
		{ID: "r2", URL: "https://e.com/3", Title: "Three"},
		{ID: "r3", URL: "https://e.com/4", Title: "Four"},
	}

	items := aggregate.Aggregate(context.Background(), [][]news.CandidateItem{api, rss}, 4, nil)
	require.Len(t, items, 4)

	batch := Run(context.Background(), items, 2, func(ctx context.Context, item news.CandidateItem) news.EnrichmentResult {
		return okResult(item)
	})

	require.Len(t, batch, 4)
	assert.Equal(t, "a1", batch[0].ID)
	assert.Equal(t, "a2", batch[1].ID)
	assert.Equal(t, "r2", batch[2].ID)
	assert.Equal(t, "r3", batch[3].ID)
	for _, r := range batch {
		assert.NotNil(t, r.Summary)
	}
}
