// package tasks implements the summarization pipeline run by the service.
//
// The core abstraction is [SummaryEngine], which checks the cache, fetches the article, asks the
// model for a summary, and stores the result. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/skim/internal/models"
	"github.com/desertthunder/skim/internal/shared"
	"github.com/desertthunder/skim/internal/summarizer"
)

// ArticleFetcher downloads and extracts an article. Implemented by article.Fetcher.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (*models.Article, error)
}

// SummaryCacher stores summaries by URL. Implemented by repositories.SummaryCache.
type SummaryCacher interface {
	Get(url string) (*models.CachedSummary, bool)
	Put(article models.Article, summary, provider, model string) (*models.CachedSummary, error)
	Prune() (int64, error)
}

// SummarizeResult contains the outcome of one pipeline run.
type SummarizeResult struct {
	URL      string
	Summary  string
	Article  *models.Article // nil on a cache hit
	Cached   bool
	Provider string
	Model    string
}

// SummaryEngine runs the fetch → summarize → cache pipeline.
type SummaryEngine struct {
	fetcher    ArticleFetcher
	summarizer summarizer.Summarizer
	cache      SummaryCacher
	logger     *log.Logger
}

// NewSummaryEngine creates a new engine. cache may be nil to disable caching.
func NewSummaryEngine(fetcher ArticleFetcher, s summarizer.Summarizer, cache SummaryCacher, logger *log.Logger) *SummaryEngine {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &SummaryEngine{fetcher: fetcher, summarizer: s, cache: cache, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *SummaryEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Summarize produces a summary for url, serving from the cache when possible.
//
// Fetch failures wrap [shared.ErrArticleFetch] (or [shared.ErrEmptyArticle]); model failures wrap
// [shared.ErrSummarizer]. A failure to store the result is logged and does not fail the run.
func (e *SummaryEngine) Summarize(ctx context.Context, progress chan<- ProgressUpdate, url string) (*SummarizeResult, error) {
	if e.fetcher == nil || e.summarizer == nil {
		return nil, fmt.Errorf("%w: summary engine not initialized", shared.ErrServiceUnavailable)
	}

	if e.cache != nil {
		e.sendProgress(progress, checkCacheUpdate(url))
		if hit, ok := e.cache.Get(url); ok {
			e.sendProgress(progress, cacheHitUpdate(hit))
			e.logger.Debug("cache hit", "url", url, "sequence", hit.Sequence())
			return &SummarizeResult{
				URL:      url,
				Summary:  hit.Summary(),
				Cached:   true,
				Provider: hit.Provider(),
				Model:    hit.Model(),
			}, nil
		}
	}

	e.sendProgress(progress, fetchArticleUpdate(url))
	a, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	provider, model := e.summarizer.Provider()
	e.sendProgress(progress, summarizeUpdate(a, provider))

	summary, err := e.summarizer.Summarize(ctx, summarizer.Input{Text: a.Text, SourceURL: a.URL, Language: a.Language})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSummarizer, err)
	}

	if e.cache != nil {
		e.sendProgress(progress, storeCacheUpdate())
		if _, err := e.cache.Put(*a, summary, provider, model); err != nil {
			e.logger.Warn("failed to cache summary", "url", url, "error", err)
		}
	}

	return &SummarizeResult{URL: url, Summary: summary, Article: a, Provider: provider, Model: model}, nil
}

// Prune removes expired cache entries.
func (e *SummaryEngine) Prune(progress chan<- ProgressUpdate) (int64, error) {
	if e.cache == nil {
		return 0, nil
	}
	n, err := e.cache.Prune()
	if err != nil {
		return 0, err
	}
	e.sendProgress(progress, pruneUpdate(n))
	return n, nil
}
