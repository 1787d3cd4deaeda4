package repositories

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/skim/internal/models"
	"github.com/desertthunder/skim/internal/shared"
	gocache "github.com/patrickmn/go-cache"
)

// SummaryCache keeps recently served summaries in memory in front of a [SummaryRepository].
//
// The repository is the source of truth; the memory layer only shortens lookups and is
// bounded by memoryTTL. Both layers honor the entry's own expiry.
type SummaryCache struct {
	repo      *SummaryRepository
	memory    *gocache.Cache
	ttl       time.Duration
	memoryTTL time.Duration
	logger    *log.Logger
	now       func() time.Time
}

// NewSummaryCache creates a cache whose entries live for ttl (zero never expires) and stay
// in memory for at most memoryTTL.
func NewSummaryCache(repo *SummaryRepository, ttl, memoryTTL time.Duration, logger *log.Logger) *SummaryCache {
	if memoryTTL <= 0 {
		memoryTTL = 30 * time.Minute
	}
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	return &SummaryCache{
		repo:      repo,
		memory:    gocache.New(memoryTTL, 2*memoryTTL),
		ttl:       ttl,
		memoryTTL: memoryTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// Get returns the live summary cached for url.
//
// Expired rows are deleted on read and reported as a miss.
func (c *SummaryCache) Get(url string) (*models.CachedSummary, bool) {
	now := c.now()

	if v, ok := c.memory.Get(url); ok {
		s := v.(*models.CachedSummary)
		if !s.Expired(now) {
			c.hit(s)
			return s, true
		}
		c.memory.Delete(url)
	}

	s, err := c.repo.GetByURL(url)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			c.logger.Warn("cache lookup failed", "url", url, "error", err)
		}
		return nil, false
	}

	if s.Expired(now) {
		if err := c.repo.Delete(s.ID()); err != nil {
			c.logger.Warn("failed to drop expired summary", "url", url, "error", err)
		}
		return nil, false
	}

	c.remember(s, now)
	c.hit(s)
	return s, true
}

// Put stores summary for article, replacing any existing entry for the same URL.
func (c *SummaryCache) Put(article models.Article, summary, provider, model string) (*models.CachedSummary, error) {
	fresh := models.NewCachedSummary(article, summary, provider, model, c.ttl)

	existing, err := c.repo.GetByURL(article.URL)
	switch {
	case err == nil:
		existing.SetSummary(summary)
		existing.SetProvider(provider)
		existing.SetModel(model)
		existing.SetExpiresAt(fresh.ExpiresAt())
		if err := c.repo.Update(existing); err != nil {
			return nil, fmt.Errorf("failed to refresh cached summary: %w", err)
		}
		fresh = existing
	case errors.Is(err, shared.ErrNotFound):
		if err := c.repo.Create(fresh); err != nil {
			return nil, fmt.Errorf("failed to cache summary: %w", err)
		}
	default:
		return nil, err
	}

	c.remember(fresh, c.now())
	return fresh, nil
}

// Prune deletes expired rows and flushes the memory layer's expired items.
func (c *SummaryCache) Prune() (int64, error) {
	c.memory.DeleteExpired()
	n, err := c.repo.DeleteExpired(c.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		c.logger.Info("pruned expired summaries", "count", n, "in_memory", c.Len())
	}
	return n, nil
}

// Clear empties both layers.
func (c *SummaryCache) Clear() (int64, error) {
	c.memory.Flush()
	return c.repo.Clear()
}

// Len reports the number of entries held in memory.
func (c *SummaryCache) Len() int {
	return c.memory.ItemCount()
}

func (c *SummaryCache) remember(s *models.CachedSummary, now time.Time) {
	d := c.memoryTTL
	if exp := s.ExpiresAt(); exp != nil {
		if left := exp.Sub(now); left < d {
			d = left
		}
	}
	if d > 0 {
		c.memory.Set(s.URL(), s, d)
	}
}

func (c *SummaryCache) hit(s *models.CachedSummary) {
	if err := c.repo.RecordHit(s.ID()); err != nil {
		c.logger.Debug("failed to record cache hit", "id", s.ID(), "error", err)
	}
}
