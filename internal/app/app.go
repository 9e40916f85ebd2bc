// Package app wires the ingestion, aggregation, and enrichment stages
// into one run.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/nandinisonar18/Health-Multi-Agent/internal/aggregate"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/config"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/enrich"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/logger"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/metrics"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/news"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/scheduler"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/scraper"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/sources"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/storage"
)

// Run executes one full pipeline pass: fetch all sources, aggregate,
// enrich, and save the batch to the configured results file.
func Run(ctx context.Context, cfg *config.Config) (news.Batch, error) {
	started := time.Now()

	// One HTTP client for every component that fetches; the connection
	// pool is released when the run ends.
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	defer httpClient.CloseIdleConnections()

	gemini, err := enrich.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return nil, err
	}
	defer gemini.Close()

	feeds, err := sources.LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		logger.Warn("could not load feeds config, continuing without RSS", "path", cfg.FeedsConfigPath, "error", err)
	}

	// Declared priority order: NewsAPI before RSS.
	srcs := []sources.Source{
		sources.NewNewsAPIClient(cfg.NewsAPIKey, httpClient, cfg.MaxArticles),
		sources.NewRSSClient(feeds, httpClient, cfg.MaxArticles),
	}
	sourceLists := fetchAll(ctx, srcs)

	completer := scraper.NewCompleter(httpClient)
	items := aggregate.Aggregate(ctx, sourceLists, cfg.NewsLimit, completer)
	logger.Info("aggregated candidate items", "count", len(items))

	var cache *storage.FileCache
	if cfg.CacheFilePath != "" {
		cache = storage.NewFileCache(cfg.CacheFilePath, cfg.CacheTTLHours)
		if err := cache.Load(); err != nil {
			logger.Warn("could not load processed cache", "error", err)
		}
		items = filterProcessed(cache, items)
	}

	pipeline := enrich.NewPipeline(gemini, gemini)
	batch := scheduler.Run(ctx, items, cfg.MaxConcurrency, pipeline.Process)

	if cache != nil {
		for _, r := range batch {
			if r.Summary != nil {
				cache.MarkProcessed(r.URL, r.Title, r.Source)
			}
		}
		if err := cache.Save(); err != nil {
			logger.Warn("could not save processed cache", "error", err)
		}
	}

	if err := storage.SaveBatch(cfg.ResultsPath, batch); err != nil {
		metrics.Global.SetError(err.Error())
		return batch, err
	}

	metrics.Global.SetLastRun(started)
	logger.Info("run finished", "results", len(batch), "path", cfg.ResultsPath, "took", time.Since(started))
	return batch, nil
}

// fetchAll runs every source adapter concurrently and returns their
// item lists in the adapters' declared order, so source priority
// survives regardless of completion order. A source that fails after
// its retries contributes nothing; the other sources still count.
func fetchAll(ctx context.Context, srcs []sources.Source) [][]news.CandidateItem {
	lists := make([][]news.CandidateItem, len(srcs))

	var wg sync.WaitGroup
	for i, src := range srcs {
		wg.Add(1)
		go func(slot int, src sources.Source) {
			defer wg.Done()
			items, err := src.Fetch(ctx)
			if err != nil {
				logger.Error("source fetch failed", "source", src.Name(), "error", err)
				metrics.Global.SetError(fmt.Sprintf("%s: %v", src.Name(), err))
				return
			}
			logger.Info("source fetched", "source", src.Name(), "items", len(items))
			metrics.Global.AddItemsFetched(len(items))
			lists[slot] = items
		}(i, src)
	}
	wg.Wait()

	return lists
}

func filterProcessed(cache *storage.FileCache, items []news.CandidateItem) []news.CandidateItem {
	fresh := items[:0]
	for _, item := range items {
		if cache.IsProcessed(item.URL, item.Title) {
			logger.Debug("skipping already processed item", "title", item.Title)
			continue
		}
		fresh = append(fresh, item)
	}
	return fresh
}
