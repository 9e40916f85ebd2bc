// Package aggregate merges per-source candidate lists into one
// deduplicated, order-preserving run list.
package aggregate

import (
	"context"

	"github.com/nandinisonar18/Health-Multi-Agent/internal/logger"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/metrics"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/news"
)

// Completer fills in full article text for an accepted item. The
// returned string replaces the item's content only when non-empty.
type Completer interface {
	NeedsCompletion(item news.CandidateItem) bool
	Complete(ctx context.Context, item news.CandidateItem) string
}

// Aggregate walks the source lists in their declared priority order,
// dropping items whose dedup key was already seen and stopping as soon
// as limit items are accepted. Items past the limit are never examined,
// so no completion work is spent on them. Accepted items with short
// content go through the completer before entering the output.
//
// The seen-set is owned by this single pass; aggregation is not
// parallelized across items.
func Aggregate(ctx context.Context, sourceLists [][]news.CandidateItem, limit int, completer Completer) []news.CandidateItem {
	seen := make(map[string]struct{})
	results := make([]news.CandidateItem, 0, limit)

	for _, list := range sourceLists {
		for _, item := range list {
			if len(results) >= limit {
				return results
			}

			key := item.DedupKey()
			if _, dup := seen[key]; dup {
				metrics.Global.IncrementDuplicatesFiltered()
				logger.Debug("duplicate filtered", "title", item.Title, "url", item.URL)
				continue
			}
			seen[key] = struct{}{}

			if completer != nil && completer.NeedsCompletion(item) {
				if content := completer.Complete(ctx, item); content != "" {
					if content != item.Content {
						metrics.Global.IncrementContentCompleted()
					}
					item.Content = content
				}
			}

			results = append(results, item)
		}
	}

	return results
}
