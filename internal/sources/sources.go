// Package sources contains the ingestion adapters. Each adapter
// normalizes its upstream into []news.CandidateItem with freshly
// generated IDs; fetches go through the shared retry policy.
package sources

import (
	"context"

	"github.com/nandinisonar18/Health-Multi-Agent/internal/news"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/retry"
)

// Source pulls candidate items from one upstream provider.
type Source interface {
	Fetch(ctx context.Context) ([]news.CandidateItem, error)
	Name() string
}

const fetchAttempts = 3

// fetchWithRetry runs fn under the source-fetch retry policy.
func fetchWithRetry(ctx context.Context, cfg retry.Config, fn func() ([]news.CandidateItem, error)) ([]news.CandidateItem, error) {
	var items []news.CandidateItem
	err := retry.WithRetry(ctx, cfg, func() error {
		var err error
		items, err = fn()
		return err
	})
	return items, err
}
