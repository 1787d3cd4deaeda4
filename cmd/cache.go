package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/skim/internal/repositories"
	"github.com/desertthunder/skim/internal/tasks"
	"github.com/urfave/cli/v3"
)

// cacheEntry is the JSON shape of one row in `skim cache list`.
type cacheEntry struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	Title     string     `json:"title,omitempty"`
	Language  string     `json:"language,omitempty"`
	Provider  string     `json:"provider"`
	Model     string     `json:"model"`
	Hits      int        `json:"hits"`
	Summary   string     `json:"summary"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// CacheList prints cached summaries, newest first.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	criteria := map[string]any{"limit": int(cmd.Int("limit"))}
	if p := cmd.String("provider"); p != "" {
		criteria["provider"] = p
	}
	if l := cmd.String("language"); l != "" {
		criteria["language"] = l
	}

	summaries, err := repositories.NewSummaryRepository(db).List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list summaries: %w", err)
	}

	if cmd.Bool("json") {
		entries := make([]cacheEntry, 0, len(summaries))
		for _, s := range summaries {
			entries = append(entries, cacheEntry{
				ID:        s.ID(),
				URL:       s.URL(),
				Title:     s.Title(),
				Language:  s.Language(),
				Provider:  s.Provider(),
				Model:     s.Model(),
				Hits:      s.Hits(),
				Summary:   s.Summary(),
				CreatedAt: s.CreatedAt(),
				ExpiresAt: s.ExpiresAt(),
			})
		}
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Cached summaries (%d)", len(summaries)))
	now := time.Now()
	for _, s := range summaries {
		status := "live"
		if s.Expired(now) {
			status = "expired"
		}
		title := s.Title()
		if title == "" {
			title = s.URL()
		}
		r.writePlain("%s\n", title)
		r.writePlain("  %s\n", s.URL())
		r.writePlain("  %s/%s · %s · %d hits · %s\n\n",
			s.Provider(), s.Model(), s.CreatedAt().Local().Format(time.DateTime), s.Hits(), status)
	}
	return nil
}

// CachePrune deletes expired summaries.
func (r *Runner) CachePrune(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := r.newCache(db).Prune()
	if err != nil {
		return fmt.Errorf("failed to prune cache: %w", err)
	}

	r.writePlain("✓ Pruned %d expired summaries\n", n)
	return nil
}

// CacheClear deletes every cached summary.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := r.newCache(db).Clear()
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	r.writePlain("✓ Cleared %d summaries\n", n)
	return nil
}

// CacheWarm summarizes the given URLs into the cache with a rate-limited worker pool.
func (r *Runner) CacheWarm(ctx context.Context, cmd *cli.Command) error {
	urls := cmd.Args().Slice()
	if path := cmd.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		found, err := extractURLs(string(data))
		if err != nil {
			return err
		}
		urls = append(urls, found...)
	}
	if len(urls) == 0 {
		found, err := firstURL(r.input)
		if err != nil {
			return err
		}
		urls = []string{found}
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	engine, err := r.newEngine(db)
	if err != nil {
		return fmt.Errorf("failed to configure summarizer: %w", err)
	}

	progress := make(chan tasks.ProgressUpdate, len(urls)+1)
	p := NewProgress(os.Stderr, len(urls), "Warming cache")
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for update := range progress {
			if update.Phase == tasks.WarmCache && update.Step > 0 {
				p.Update(update.Message)
			}
		}
	}()

	result, err := engine.Warm(ctx, progress, urls, tasks.WarmOpts{
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(progress)
	<-drained
	p.Clear()

	if err != nil {
		return fmt.Errorf("cache warm failed: %w", err)
	}

	r.writePlainHeader("Cache warm complete")
	r.writePlain("Total: %d  Succeeded: %d  Failed: %d\n", result.Total, result.Succeeded, result.Failed)
	for _, res := range result.Results {
		switch {
		case res.Error != nil:
			r.writePlain("  ✗ %s: %v\n", res.URL, res.Error)
		case res.Cached:
			r.writePlain("  • %s (already cached)\n", res.URL)
		default:
			r.writePlain("  ✓ %s\n", res.URL)
		}
	}
	return nil
}
