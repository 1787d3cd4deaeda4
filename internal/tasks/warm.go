package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/skim/internal/shared"
	"golang.org/x/time/rate"
)

// WarmOpts contains configuration for bulk cache warming.
type WarmOpts struct {
	NumWorkers int     // Concurrent workers (default: 3, max: 10)
	RateLimit  float64 // Article fetches started per second (default: 2)
}

// WarmURLResult is the outcome for one URL.
type WarmURLResult struct {
	URL     string
	Success bool
	Cached  bool // true when the cache already held a live summary
	Error   error
}

// WarmResult summarizes a warm run.
type WarmResult struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []WarmURLResult
}

// Warm summarizes every URL concurrently so later requests are served from the cache.
//
// It uses a rate-limited worker pool; individual failures are collected rather than aborting the run.
func (e *SummaryEngine) Warm(ctx context.Context, prog chan<- ProgressUpdate, urls []string, opts WarmOpts) (*WarmResult, error) {
	if e.cache == nil {
		return nil, fmt.Errorf("%w: cache not configured", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	result := &WarmResult{Total: len(urls), Results: make([]WarmURLResult, 0, len(urls))}
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan string, len(urls))
	results := make(chan WarmURLResult, len(urls))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.warmWorker(ctx, &wg, jobs, results)
	}

	go func() {
		defer close(jobs)
		e.sendProgress(prog, warmStartedUpdate(len(urls)))
		for _, url := range urls {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			jobs <- url
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.Succeeded++
			e.sendProgress(prog, warmCompletedUpdate(completed, len(urls), res.URL, res.Cached))
		} else {
			result.Failed++
			e.sendProgress(prog, warmFailedUpdate(completed, len(urls), res.URL, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// warmWorker summarizes URLs from the jobs channel.
func (e *SummaryEngine) warmWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan string, results chan<- WarmURLResult) {
	defer wg.Done()

	for url := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := e.Summarize(ctx, nil, url)
		if err != nil {
			results <- WarmURLResult{URL: url, Error: err}
			continue
		}
		results <- WarmURLResult{URL: url, Success: true, Cached: res.Cached}
	}
}
