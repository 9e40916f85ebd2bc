// Package scheduler fans the enrichment pipeline out over a run's
// items under a bounded admission gate.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/nandinisonar18/Health-Multi-Agent/internal/logger"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/news"
)

// ProcessFunc enriches a single item. It must contain its own failures
// in the result; anything that still escapes (including a panic) is
// converted into an item-level error record by Run.
type ProcessFunc func(ctx context.Context, item news.CandidateItem) news.EnrichmentResult

// Run dispatches one task per item, eagerly, and gates entry into the
// pipeline with a weighted semaphore of the given size: at most
// concurrency items are inside their enrichment-service calls at once.
// Results land in their dispatch slot, so the returned batch has one
// record per item in input order regardless of completion order. No
// item's failure touches any sibling's result.
func Run(ctx context.Context, items []news.CandidateItem, concurrency int, process ProcessFunc) news.Batch {
	if concurrency < 1 {
		concurrency = 1
	}

	gate := semaphore.NewWeighted(int64(concurrency))
	results := make(news.Batch, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(slot int, item news.CandidateItem) {
			defer wg.Done()
			results[slot] = runOne(ctx, gate, item, process)
		}(i, item)
	}
	wg.Wait()

	return results
}

func runOne(ctx context.Context, gate *semaphore.Weighted, item news.CandidateItem, process ProcessFunc) (result news.EnrichmentResult) {
	// A panicking task must not take the batch down with it.
	defer func() {
		if r := recover(); r != nil {
			logger.Error("pipeline task panicked", "id", item.ID, "panic", r)
			result = errorResult(item, fmt.Sprintf("pipeline panic: %v", r))
		}
	}()

	if err := gate.Acquire(ctx, 1); err != nil {
		return errorResult(item, fmt.Sprintf("admission cancelled: %v", err))
	}
	defer gate.Release(1)

	return process(ctx, item)
}

func errorResult(item news.CandidateItem, msg string) news.EnrichmentResult {
	return news.EnrichmentResult{
		ID:             item.ID,
		Title:          item.Title,
		URL:            item.URL,
		Source:         item.Source,
		ErrorSummarize: msg,
	}
}
