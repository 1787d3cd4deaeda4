package tasks

import (
	"fmt"

	"github.com/desertthunder/skim/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	CheckCache Phase = iota
	FetchArticle
	Summarize
	StoreCache
	WarmCache
	PruneCache
)

func (p Phase) String() string {
	switch p {
	case CheckCache:
		return "check_cache"
	case FetchArticle:
		return "fetch_article"
	case Summarize:
		return "summarize"
	case StoreCache:
		return "store_cache"
	case WarmCache:
		return "warm_cache"
	case PruneCache:
		return "prune_cache"
	default:
		return ""
	}
}

func checkCacheUpdate(url string) ProgressUpdate {
	return ProgressUpdate{Phase: CheckCache, Step: 1, Total: 4, Message: fmt.Sprintf("Checking cache for %s...", url)}
}

func cacheHitUpdate(s *models.CachedSummary) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CheckCache,
		Step:    4,
		Total:   4,
		Message: fmt.Sprintf("Cache hit (summary #%d)", s.Sequence()),
		Data:    s,
	}
}

func fetchArticleUpdate(url string) ProgressUpdate {
	return ProgressUpdate{Phase: FetchArticle, Step: 2, Total: 4, Message: fmt.Sprintf("Fetching article %s...", url)}
}

func summarizeUpdate(a *models.Article, provider string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Summarize,
		Step:    3,
		Total:   4,
		Message: fmt.Sprintf("Summarizing %q with %s...", a.Title, provider),
		Data:    a,
	}
}

func storeCacheUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: StoreCache, Step: 4, Total: 4, Message: "Caching summary..."}
}

func warmStartedUpdate(total int) ProgressUpdate {
	return ProgressUpdate{Phase: WarmCache, Step: 0, Total: total, Message: fmt.Sprintf("Warming cache with %d URLs...", total)}
}

func warmCompletedUpdate(step, total int, url string, cached bool) ProgressUpdate {
	note := "summarized"
	if cached {
		note = "already cached"
	}
	return ProgressUpdate{
		Phase:   WarmCache,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%s)", step, total, url, note),
	}
}

func warmFailedUpdate(step, total int, url string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WarmCache,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, url, err),
	}
}

func pruneUpdate(n int64) ProgressUpdate {
	return ProgressUpdate{Phase: PruneCache, Step: 1, Total: 1, Message: fmt.Sprintf("Pruned %d expired summaries", n)}
}
