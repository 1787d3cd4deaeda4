package models

import (
	"errors"
	"time"
)

// CachedSummary is a summary persisted by the service so repeat requests for the same URL skip the model call.
type CachedSummary struct {
	id        string
	sequence  int
	url       string
	title     string
	language  string
	summary   string
	provider  string
	model     string
	hits      int
	createdAt time.Time
	updatedAt time.Time
	expiresAt *time.Time
}

var _ Model = (*CachedSummary)(nil)

// NewCachedSummary builds an unsaved [CachedSummary] for article. A zero ttl never expires.
func NewCachedSummary(article Article, summary, provider, model string, ttl time.Duration) *CachedSummary {
	now := time.Now().UTC()
	s := &CachedSummary{
		url:       article.URL,
		title:     article.Title,
		language:  article.Language,
		summary:   summary,
		provider:  provider,
		model:     model,
		createdAt: now,
		updatedAt: now,
	}
	if ttl > 0 {
		exp := now.Add(ttl)
		s.expiresAt = &exp
	}
	return s
}

func (s *CachedSummary) ID() string            { return s.id }
func (s *CachedSummary) Sequence() int         { return s.sequence }
func (s *CachedSummary) URL() string           { return s.url }
func (s *CachedSummary) Title() string         { return s.title }
func (s *CachedSummary) Language() string      { return s.language }
func (s *CachedSummary) Summary() string       { return s.summary }
func (s *CachedSummary) Provider() string      { return s.provider }
func (s *CachedSummary) Model() string         { return s.model }
func (s *CachedSummary) Hits() int             { return s.hits }
func (s *CachedSummary) CreatedAt() time.Time  { return s.createdAt }
func (s *CachedSummary) UpdatedAt() time.Time  { return s.updatedAt }
func (s *CachedSummary) ExpiresAt() *time.Time { return s.expiresAt }

func (s *CachedSummary) SetID(id string)             { s.id = id }
func (s *CachedSummary) SetSequence(seq int)         { s.sequence = seq }
func (s *CachedSummary) SetSummary(summary string)   { s.summary = summary }
func (s *CachedSummary) SetHits(hits int)            { s.hits = hits }
func (s *CachedSummary) SetCreatedAt(t time.Time)    { s.createdAt = t }
func (s *CachedSummary) SetUpdatedAt(t time.Time)    { s.updatedAt = t }
func (s *CachedSummary) SetExpiresAt(t *time.Time)   { s.expiresAt = t }
func (s *CachedSummary) SetProvider(provider string) { s.provider = provider }
func (s *CachedSummary) SetModel(model string)       { s.model = model }

// Expired reports whether the entry is past its expiry at now.
func (s *CachedSummary) Expired(now time.Time) bool {
	return s.expiresAt != nil && !now.Before(*s.expiresAt)
}

// Validate checks required fields.
func (s *CachedSummary) Validate() error {
	if s.url == "" {
		return errors.New("url is required")
	}
	if s.summary == "" {
		return errors.New("summary is required")
	}
	return nil
}
