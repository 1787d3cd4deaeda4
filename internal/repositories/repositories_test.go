package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/skim/internal/models"
	"github.com/desertthunder/skim/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func newSummary(url string, ttl time.Duration) *models.CachedSummary {
	return models.NewCachedSummary(
		models.Article{URL: url, Title: "Title", Language: "en"},
		"A summary.", "openrouter", "deepseek/deepseek-chat:free", ttl,
	)
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "summaries")
		if err != nil {
			t.Fatalf("NextSequence failed: %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(db, "missing"); err == nil {
		t.Error("expected error for table without sequence")
	}
}

func TestSummaryRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSummaryRepository(db)
		s := newSummary("https://example.com/a", time.Hour)

		if err := repo.Create(s); err != nil {
			t.Fatalf("failed to create summary: %v", err)
		}
		if s.ID() == "" {
			t.Error("summary ID should be set after creation")
		}
		if s.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", s.Sequence())
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSummaryRepository(db)
		s := newSummary("https://example.com/a", time.Hour)
		if err := repo.Create(s); err != nil {
			t.Fatalf("failed to create summary: %v", err)
		}

		got, err := repo.Get(s.ID())
		if err != nil {
			t.Fatalf("failed to get summary: %v", err)
		}
		if got.URL() != s.URL() || got.Summary() != s.Summary() || got.Title() != "Title" {
			t.Errorf("round trip mismatch: %+v", got)
		}
		if got.Language() != "en" || got.Provider() != "openrouter" {
			t.Errorf("unexpected metadata %s/%s", got.Language(), got.Provider())
		}
		if got.ExpiresAt() == nil || !got.ExpiresAt().Equal(*s.ExpiresAt()) {
			t.Errorf("expected expiry %v, got %v", s.ExpiresAt(), got.ExpiresAt())
		}
	})

	t.Run("GetByURL", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSummaryRepository(db)
		s := newSummary("https://example.com/a", 0)
		if err := repo.Create(s); err != nil {
			t.Fatalf("failed to create summary: %v", err)
		}

		got, err := repo.GetByURL("https://example.com/a")
		if err != nil {
			t.Fatalf("failed to get summary: %v", err)
		}
		if got.ID() != s.ID() {
			t.Errorf("expected ID %s, got %s", s.ID(), got.ID())
		}
		if got.ExpiresAt() != nil {
			t.Error("zero ttl should never expire")
		}

		if _, err := repo.GetByURL("https://example.com/missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSummaryRepository(db)
		s := newSummary("https://example.com/a", time.Hour)
		if err := repo.Create(s); err != nil {
			t.Fatalf("failed to create summary: %v", err)
		}

		s.SetSummary("Rewritten.")
		s.SetProvider("anthropic")
		if err := repo.Update(s); err != nil {
			t.Fatalf("failed to update summary: %v", err)
		}

		got, _ := repo.Get(s.ID())
		if got.Summary() != "Rewritten." || got.Provider() != "anthropic" {
			t.Errorf("update not persisted: %s/%s", got.Summary(), got.Provider())
		}
	})

	t.Run("RecordHit", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSummaryRepository(db)
		s := newSummary("https://example.com/a", time.Hour)
		_ = repo.Create(s)

		for range 3 {
			if err := repo.RecordHit(s.ID()); err != nil {
				t.Fatalf("RecordHit failed: %v", err)
			}
		}
		got, _ := repo.Get(s.ID())
		if got.Hits() != 3 {
			t.Errorf("expected 3 hits, got %d", got.Hits())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSummaryRepository(db)
		s := newSummary("https://example.com/a", time.Hour)
		_ = repo.Create(s)

		if err := repo.Delete(s.ID()); err != nil {
			t.Fatalf("failed to delete summary: %v", err)
		}
		if _, err := repo.Get(s.ID()); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSummaryRepository(db)
		for _, u := range []string{"https://a.example", "https://b.example", "https://c.example"} {
			if err := repo.Create(newSummary(u, time.Hour)); err != nil {
				t.Fatalf("failed to create summary: %v", err)
			}
		}
		other := newSummary("https://d.example", time.Hour)
		other.SetProvider("openai")
		_ = repo.Create(other)

		all, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list summaries: %v", err)
		}
		if len(all) != 4 {
			t.Fatalf("expected 4 summaries, got %d", len(all))
		}
		if all[0].URL() != "https://d.example" {
			t.Errorf("expected newest first, got %s", all[0].URL())
		}

		byProvider, _ := repo.List(map[string]any{"provider": "openrouter"})
		if len(byProvider) != 3 {
			t.Errorf("expected 3 openrouter summaries, got %d", len(byProvider))
		}

		limited, _ := repo.List(map[string]any{"limit": 2})
		if len(limited) != 2 {
			t.Errorf("expected 2 summaries, got %d", len(limited))
		}
	})

	t.Run("DeleteExpired", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSummaryRepository(db)
		past := time.Now().Add(-time.Minute)

		stale := newSummary("https://stale.example", time.Hour)
		stale.SetExpiresAt(&past)
		_ = repo.Create(stale)
		_ = repo.Create(newSummary("https://fresh.example", time.Hour))
		_ = repo.Create(newSummary("https://forever.example", 0))

		n, err := repo.DeleteExpired(time.Now())
		if err != nil {
			t.Fatalf("DeleteExpired failed: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 row pruned, got %d", n)
		}

		rest, _ := repo.List(nil)
		if len(rest) != 2 {
			t.Errorf("expected 2 rows to remain, got %d", len(rest))
		}
	})

	t.Run("Clear", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSummaryRepository(db)
		_ = repo.Create(newSummary("https://a.example", time.Hour))
		_ = repo.Create(newSummary("https://b.example", time.Hour))

		n, err := repo.Clear()
		if err != nil || n != 2 {
			t.Errorf("expected 2 rows cleared, got %d (%v)", n, err)
		}
	})
}

func TestSummaryRepositoryErrors(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("ValidationError", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSummaryRepository(db)
			s := models.NewCachedSummary(models.Article{URL: "https://a.example"}, "", "", "", 0)
			if err := repo.Create(s); err == nil {
				t.Fatal("expected validation error for empty summary")
			}
		})

		t.Run("DuplicateURL", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSummaryRepository(db)
			if err := repo.Create(newSummary("https://a.example", 0)); err != nil {
				t.Fatalf("failed to create first summary: %v", err)
			}
			if err := repo.Create(newSummary("https://a.example", 0)); err == nil {
				t.Fatal("expected error for duplicate URL")
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			s := newSummary("https://a.example", 0)
			s.SetID("nonexistent-id")
			if err := NewSummaryRepository(db).Update(s); !errors.Is(err, shared.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			if err := NewSummaryRepository(db).Delete("nonexistent-id"); !errors.Is(err, shared.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("ClosedDatabase", func(t *testing.T) {
		db := setupTestDB(t)
		db.Close()

		repo := NewSummaryRepository(db)
		if err := repo.Create(newSummary("https://a.example", 0)); err == nil {
			t.Error("expected error on closed database")
		}
		if _, err := repo.List(nil); err == nil {
			t.Error("expected error on closed database")
		}
		if _, err := repo.DeleteExpired(time.Now()); err == nil {
			t.Error("expected error on closed database")
		}
	})
}
