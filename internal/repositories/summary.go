package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/skim/internal/models"
	"github.com/desertthunder/skim/internal/shared"
)

const summaryColumns = `id, sequence, url, title, language, summary, provider, model, hits, created_at, updated_at, expires_at`

// SummaryRepository implements models.Repository[*models.CachedSummary] for the summary cache.
//
// Rows are keyed by URL; expired rows stay readable until [SummaryRepository.DeleteExpired] runs.
type SummaryRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.CachedSummary] = (*SummaryRepository)(nil)

// NewSummaryRepository creates a new SummaryRepository with the given database connection
func NewSummaryRepository(db *sql.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Create inserts a new summary into the database with generated ID and sequence
func (r *SummaryRepository) Create(s *models.CachedSummary) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "summaries")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()

	query := `
		INSERT INTO summaries (` + summaryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		s.URL(),
		s.Title(),
		s.Language(),
		s.Summary(),
		s.Provider(),
		s.Model(),
		s.Hits(),
		s.CreatedAt().UTC(),
		s.UpdatedAt().UTC(),
		nullTime(s.ExpiresAt()),
	)
	if err != nil {
		return fmt.Errorf("failed to insert summary: %w", err)
	}

	s.SetID(id)
	s.SetSequence(sequence)
	return nil
}

// Get retrieves a summary by ID
func (r *SummaryRepository) Get(id string) (*models.CachedSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM summaries WHERE id = ?`
	return r.scan(r.db.QueryRow(query, id))
}

// GetByURL retrieves the summary cached for url
func (r *SummaryRepository) GetByURL(url string) (*models.CachedSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM summaries WHERE url = ?`
	return r.scan(r.db.QueryRow(query, url))
}

// Update replaces the summary text, provider, hit count and expiry of an existing row
func (r *SummaryRepository) Update(s *models.CachedSummary) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	s.SetUpdatedAt(now)

	query := `
		UPDATE summaries
		SET summary = ?, provider = ?, model = ?, hits = ?, updated_at = ?, expires_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		s.Summary(),
		s.Provider(),
		s.Model(),
		s.Hits(),
		now,
		nullTime(s.ExpiresAt()),
		s.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update summary: %w", err)
	}

	return expectRows(result, "summary", s.ID())
}

// RecordHit increments the hit counter of the row with id
func (r *SummaryRepository) RecordHit(id string) error {
	result, err := r.db.Exec(`UPDATE summaries SET hits = hits + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to record hit: %w", err)
	}
	return expectRows(result, "summary", id)
}

// Delete removes a summary by ID
func (r *SummaryRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM summaries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete summary: %w", err)
	}
	return expectRows(result, "summary", id)
}

// DeleteExpired removes every row whose expiry is at or before now and returns how many were removed
func (r *SummaryRepository) DeleteExpired(now time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM summaries WHERE expires_at IS NOT NULL AND expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired summaries: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}

// Clear removes every cached summary
func (r *SummaryRepository) Clear() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM summaries`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear summaries: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}

// List retrieves summaries matching the given criteria, newest first.
//
// Supported criteria: "provider" (string), "language" (string), "expired_before" (time.Time), "limit" (int).
func (r *SummaryRepository) List(criteria map[string]any) ([]*models.CachedSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM summaries WHERE 1 = 1`
	args := []any{}

	if provider, ok := criteria["provider"].(string); ok && provider != "" {
		query += " AND provider = ?"
		args = append(args, provider)
	}

	if language, ok := criteria["language"].(string); ok && language != "" {
		query += " AND language = ?"
		args = append(args, language)
	}

	if before, ok := criteria["expired_before"].(time.Time); ok {
		query += " AND expires_at IS NOT NULL AND expires_at <= ?"
		args = append(args, before.UTC())
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	var summaries []*models.CachedSummary
	for rows.Next() {
		s, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return summaries, nil
}

// scanner is satisfied by both [sql.Row] and [sql.Rows]
type scanner interface {
	Scan(dest ...any) error
}

// scan reads one row into a [models.CachedSummary]
func (r *SummaryRepository) scan(row scanner) (*models.CachedSummary, error) {
	var (
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
		expiresAt sql.NullTime
	)

	err := row.Scan(
		&id, &sequence, &url, &title, &language, &summary,
		&provider, &model, &hits, &createdAt, &updatedAt, &expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: summary", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan summary: %w", err)
	}

	s := models.NewCachedSummary(models.Article{URL: url, Title: title, Language: language}, summary, provider, model, 0)
	s.SetID(id)
	s.SetSequence(sequence)
	s.SetHits(hits)
	s.SetCreatedAt(createdAt)
	s.SetUpdatedAt(updatedAt)
	if expiresAt.Valid {
		s.SetExpiresAt(&expiresAt.Time)
	}

	return s, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func expectRows(result sql.Result, entity, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s %s", shared.ErrNotFound, entity, id)
	}
	return nil
}
