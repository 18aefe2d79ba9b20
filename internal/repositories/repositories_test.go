package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/desertthunder/lessonctl/internal/models"
	"github.com/desertthunder/lessonctl/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.MigrateUp(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func newTestSession(t *testing.T, email string) *models.Session {
	t.Helper()
	return models.NewSession(email, "access-token", "refresh-token", time.Now().Add(time.Hour))
}

func TestSessionRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		session := newTestSession(t, "admin@example.com")

		if err := repo.Create(session); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}
		if session.ID() == "" {
			t.Error("session ID should be set after creation")
		}
	})

	t.Run("Create Keeps A Single Session", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		if err := repo.Create(newTestSession(t, "first@example.com")); err != nil {
			t.Fatalf("failed to create first session: %v", err)
		}
		if err := repo.Create(newTestSession(t, "second@example.com")); err != nil {
			t.Fatalf("failed to create second session: %v", err)
		}

		sessions, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list sessions: %v", err)
		}
		if len(sessions) != 1 {
			t.Fatalf("expected exactly one stored session, got %d", len(sessions))
		}
		if sessions[0].Email() != "second@example.com" {
			t.Errorf("expected the newest session to win, got %s", sessions[0].Email())
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		session := newTestSession(t, "admin@example.com")
		if err := repo.Create(session); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		got, err := repo.Get(session.ID())
		if err != nil {
			t.Fatalf("failed to get session: %v", err)
		}
		if got.Email() != "admin@example.com" || got.AccessToken() != "access-token" {
			t.Errorf("unexpected session: %s / %s", got.Email(), got.AccessToken())
		}
	})

	t.Run("Get Missing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		if _, err := repo.Get("missing"); err == nil {
			t.Error("expected error for missing session")
		}
	})

	t.Run("Latest", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)

		got, err := repo.Latest()
		if err != nil {
			t.Fatalf("expected no error for empty store, got %v", err)
		}
		if got != nil {
			t.Error("expected nil session when signed out")
		}

		session := newTestSession(t, "admin@example.com")
		if err := repo.Create(session); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		got, err = repo.Latest()
		if err != nil {
			t.Fatalf("failed to get latest session: %v", err)
		}
		if got == nil || got.ID() != session.ID() {
			t.Error("expected the stored session")
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		session := newTestSession(t, "admin@example.com")
		if err := repo.Create(session); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		if err := repo.Update(session); err != nil {
			t.Fatalf("failed to update session: %v", err)
		}
	})

	t.Run("Update Missing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		session := newTestSession(t, "admin@example.com")
		session.SetID("never-stored")

		if err := repo.Update(session); err == nil {
			t.Error("expected error for unknown session")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		if err := repo.Create(newTestSession(t, "admin@example.com")); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear sessions: %v", err)
		}

		got, err := repo.Latest()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Error("expected no session after clear")
		}
	})
}

func TestSubmissionRepository(t *testing.T) {
	t.Run("Create And Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSubmissionRepository(db)
		submission := models.NewSubmission("lesson", "Животные/koshka", "Кошка")

		if err := repo.Create(submission); err != nil {
			t.Fatalf("failed to create submission: %v", err)
		}
		if submission.ID() == "" {
			t.Error("submission ID should be set after creation")
		}

		got, err := repo.Get(submission.ID())
		if err != nil {
			t.Fatalf("failed to get submission: %v", err)
		}
		if got.Kind() != "lesson" || got.RecordKey() != "Животные/koshka" {
			t.Errorf("unexpected submission: %s / %s", got.Kind(), got.RecordKey())
		}
	})

	t.Run("Invalid Kind", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSubmissionRepository(db)
		submission := models.NewSubmission("podcast", "key", "title")

		if err := repo.Create(submission); err == nil {
			t.Error("expected error for invalid kind")
		}
	})

	t.Run("List By Kind", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSubmissionRepository(db)
		for _, entry := range []struct{ kind, key string }{
			{"lesson", "Животные/koshka"},
			{"video", "animals-abc123-video"},
			{"lesson", "Космос/raketa"},
		} {
			if err := repo.Create(models.NewSubmission(entry.kind, entry.key, "t")); err != nil {
				t.Fatalf("failed to create submission: %v", err)
			}
		}

		lessons, err := repo.List(map[string]any{"kind": "lesson"})
		if err != nil {
			t.Fatalf("failed to list submissions: %v", err)
		}
		if len(lessons) != 2 {
			t.Errorf("expected 2 lesson submissions, got %d", len(lessons))
		}
	})

	t.Run("Recent", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSubmissionRepository(db)
		for i := 0; i < 3; i++ {
			if err := repo.Create(models.NewSubmission("video", "key", "t")); err != nil {
				t.Fatalf("failed to create submission: %v", err)
			}
		}

		recent, err := repo.Recent(2)
		if err != nil {
			t.Fatalf("failed to list recent submissions: %v", err)
		}
		if len(recent) != 2 {
			t.Errorf("expected limit respected, got %d entries", len(recent))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSubmissionRepository(db)
		submission := models.NewSubmission("lesson", "key", "t")
		if err := repo.Create(submission); err != nil {
			t.Fatalf("failed to create submission: %v", err)
		}

		if err := repo.Delete(submission.ID()); err != nil {
			t.Fatalf("failed to delete submission: %v", err)
		}
		if _, err := repo.Get(submission.ID()); err == nil {
			t.Error("expected error after delete")
		}
	})
}
