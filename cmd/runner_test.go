package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/lessonctl/internal/content"
	"github.com/desertthunder/lessonctl/internal/repositories"
	"github.com/desertthunder/lessonctl/internal/services"
	"github.com/desertthunder/lessonctl/internal/shared"
	tu "github.com/desertthunder/lessonctl/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			auth := &tu.FakeAuth{}
			storage := &tu.FakeStorage{}
			table := &tu.FakeTable{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Auth:       auth,
				Storage:    storage,
				Table:      table,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.auth != auth {
				t.Error("expected auth to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be built from storage and table")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("without storage no engine is built", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Table: &tu.FakeTable{}})
			if runner.engine != nil {
				t.Error("expected no engine without a storage service")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) != 6 {
			t.Errorf("expected 6 top-level commands, got %d", len(commands))
		}

		names := map[string]bool{}
		for _, cmd := range commands {
			names[cmd.Name] = true
		}
		for _, expected := range []string{"setup", "auth", "lesson", "video", "history", "tui"} {
			if !names[expected] {
				t.Errorf("expected command %s to be registered", expected)
			}
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"slug": "koshka"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "\"slug\": \"koshka\"") {
				t.Errorf("unexpected output: %s", output.String())
			}
		})

		t.Run("handles marshal error", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})
			if err := runner.writeJSON(make(chan int), false); err == nil {
				t.Error("expected error for non-serializable data")
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
			if err := runner.writeJSON(map[string]string{"a": "b"}, false); err == nil {
				t.Error("expected error for failing writer")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("hello %s", "world"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "hello world" {
			t.Errorf("unexpected output: %q", output.String())
		}
	})

	t.Run("recordSubmission", func(t *testing.T) {
		t.Run("without repository is a no-op", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			runner.recordSubmission("lesson", "Животные/koshka", "Кошка")
		})

		t.Run("persists to the history table", func(t *testing.T) {
			db, err := shared.NewDatabase(":memory:")
			if err != nil {
				t.Fatalf("failed to create database: %v", err)
			}
			defer db.Close()
			if err := shared.MigrateUp(db); err != nil {
				t.Fatalf("failed to migrate: %v", err)
			}

			repo := repositories.NewSubmissionRepository(db)
			runner := NewRunner(RunnerOpts{Submissions: repo})

			runner.recordSubmission("lesson", "Животные/koshka", "Кошка")

			entries, err := repo.Recent(10)
			if err != nil {
				t.Fatalf("failed to list submissions: %v", err)
			}
			if len(entries) != 1 || entries[0].RecordKey() != "Животные/koshka" {
				t.Errorf("unexpected history entries: %+v", entries)
			}
		})
	})

	t.Run("requireSession", func(t *testing.T) {
		t.Run("passes with an active session", func(t *testing.T) {
			auth := &tu.FakeAuth{Session: &services.Session{Email: "admin@example.com"}}
			runner := NewRunner(RunnerOpts{Auth: auth})

			if err := runner.requireSession(context.Background()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if auth.GetSessionCalls != 1 {
				t.Errorf("expected one session check, got %d", auth.GetSessionCalls)
			}
		})

		t.Run("fails when signed out", func(t *testing.T) {
			auth := &tu.FakeAuth{}
			runner := NewRunner(RunnerOpts{Auth: auth})

			err := runner.requireSession(context.Background())
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
			if auth.GetSessionCalls != 1 {
				t.Errorf("expected one session check, got %d", auth.GetSessionCalls)
			}
		})

		t.Run("surfaces session check failures", func(t *testing.T) {
			auth := &tu.FakeAuth{GetSessionErr: errors.New("gotrue unreachable")}
			runner := NewRunner(RunnerOpts{Auth: auth})

			err := runner.requireSession(context.Background())
			if err == nil || !strings.Contains(err.Error(), "gotrue unreachable") {
				t.Errorf("expected the check error surfaced, got %v", err)
			}
		})

		t.Run("without auth service", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if err := runner.requireSession(context.Background()); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})

	t.Run("persistSession", func(t *testing.T) {
		db, err := shared.NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()
		if err := shared.MigrateUp(db); err != nil {
			t.Fatalf("failed to migrate: %v", err)
		}

		repo := repositories.NewSessionRepository(db)
		runner := NewRunner(RunnerOpts{Sessions: repo})

		runner.persistSession(&services.Session{
			Email:       "admin@example.com",
			AccessToken: "jwt-abc",
			ExpiresAt:   time.Now().Add(time.Hour),
		})

		stored, err := repo.Latest()
		if err != nil {
			t.Fatalf("failed to load session: %v", err)
		}
		if stored == nil || stored.Email() != "admin@example.com" {
			t.Error("expected the session persisted")
		}
	})
}

func TestLoadLessonDraft(t *testing.T) {
	writeManifest := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "lesson.toml")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write manifest: %v", err)
		}
		return path
	}

	t.Run("Builds Draft From Manifest", func(t *testing.T) {
		path := writeManifest(t, `
category = "Животные"
title = "Кошка"
steps = ["Draw ears", "Draw tail"]
`)

		draft, err := loadLessonDraft(path, "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if draft.Category != "Животные" || draft.Title != "Кошка" {
			t.Errorf("unexpected draft header: %s / %s", draft.Category, draft.Title)
		}
		if draft.Slug != "koshka" {
			t.Errorf("expected derived slug, got %s", draft.Slug)
		}
		if draft.Steps.Len() != 2 {
			t.Fatalf("expected 2 steps, got %d", draft.Steps.Len())
		}
		if draft.Steps.At(0).Caption != "Draw ears" || draft.Steps.At(1).Caption != "Draw tail" {
			t.Error("captions should fill in manifest order")
		}
	})

	t.Run("Applies Intake Directory", func(t *testing.T) {
		dir := t.TempDir()
		for name, data := range map[string]string{
			"preview.png": "p",
			"01.png":      "a",
			"02.png":      "b",
		} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
				t.Fatalf("failed to write image: %v", err)
			}
		}
		path := writeManifest(t, `
title = "Кошка"
steps = ["Draw ears", "Draw tail"]
`)

		draft, err := loadLessonDraft(path, dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(draft.Preview) == 0 {
			t.Error("preview.png should fill the preview slot")
		}
		if errs := content.ValidateLesson(draft); errs.Any() {
			t.Errorf("draft should be submit-ready, got %+v", errs)
		}
	})

	t.Run("Missing Manifest", func(t *testing.T) {
		if _, err := loadLessonDraft(filepath.Join(t.TempDir(), "missing.toml"), ""); err == nil {
			t.Error("expected error for missing manifest")
		}
	})

	t.Run("Malformed Manifest", func(t *testing.T) {
		path := writeManifest(t, "title = [broken")
		if _, err := loadLessonDraft(path, ""); err == nil {
			t.Error("expected error for malformed manifest")
		}
	})
}

func TestFirstTitle(t *testing.T) {
	if got := firstTitle(map[string]string{"en": "Cats", "ru": "Кошки"}); got != "Кошки" {
		t.Errorf("expected russian title preferred, got %s", got)
	}
	if got := firstTitle(map[string]string{"en": "Cats"}); got != "Cats" {
		t.Errorf("expected fallback to english, got %s", got)
	}
	if got := firstTitle(nil); got != "" {
		t.Errorf("expected empty for no titles, got %s", got)
	}
}
