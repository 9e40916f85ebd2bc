package enrich

import (
	"context"

	"github.com/nandinisonar18/Health-Multi-Agent/internal/logger"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/metrics"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/news"
	"github.com/nandinisonar18/Health-Multi-Agent/internal/retry"
)

// Summarizer produces the stage-one payload for an article.
type Summarizer interface {
	Summarize(ctx context.Context, title, url, content string) (*news.Summary, error)
}

// Classifier produces the stage-two payload from a summary.
type Classifier interface {
	Classify(ctx context.Context, title, summary string, keyFacts []string) (*news.Classification, error)
}

// serviceAttempts is the per-stage retry budget for enrichment-service
// calls.
const serviceAttempts = 2

// Pipeline runs one item through summarize then classify. Stage
// failures are recorded on the result and never escape: classify is
// only reached when summarize succeeded, and a classify failure keeps
// the stage-one summary.
type Pipeline struct {
	summarizer Summarizer
	classifier Classifier
	retryCfg   retry.Config
}

func NewPipeline(summarizer Summarizer, classifier Classifier) *Pipeline {
	return &Pipeline{
		summarizer: summarizer,
		classifier: classifier,
		retryCfg:   retry.Default.Attempts(serviceAttempts),
	}
}

// Process enriches one candidate item and returns its result record.
func (p *Pipeline) Process(ctx context.Context, item news.CandidateItem) news.EnrichmentResult {
	result := news.EnrichmentResult{
		ID:     item.ID,
		Title:  item.Title,
		URL:    item.URL,
		Source: item.Source,
	}

	var summary *news.Summary
	err := retry.WithRetry(ctx, p.retryCfg, func() error {
		var err error
		summary, err = p.summarizer.Summarize(ctx, item.Title, item.URL, item.Content)
		return err
	})
	if err != nil {
		logger.Warn("summarize failed", "id", item.ID, "url", item.URL, "error", err)
		metrics.Global.RecordSummarize(false)
		result.ErrorSummarize = err.Error()
		return result
	}
	metrics.Global.RecordSummarize(true)
	result.Summary = summary

	var classification *news.Classification
	err = retry.WithRetry(ctx, p.retryCfg, func() error {
		var err error
		classification, err = p.classifier.Classify(ctx, item.Title, summary.Summary, summary.KeyFacts)
		return err
	})
	if err != nil {
		logger.Warn("classify failed", "id", item.ID, "url", item.URL, "error", err)
		metrics.Global.RecordClassify(false)
		result.ErrorClassify = err.Error()
		return result
	}
	metrics.Global.RecordClassify(true)
	result.Classification = classification

	return result
}
