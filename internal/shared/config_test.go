package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Valid File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[backend]
url = "https://project.supabase.co"
anon_key = "anon-123"
bucket = "lesson-images"
lesson_table = "lessons"
video_table = "videos"

[database]
path = "test.db"
max_open_conns = 10
max_idle_conns = 4
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Backend.URL != "https://project.supabase.co" {
			t.Errorf("unexpected backend url: %s", config.Backend.URL)
		}
		if config.Backend.Bucket != "lesson-images" {
			t.Errorf("unexpected bucket: %s", config.Backend.Bucket)
		}
		if config.Database.MaxOpenConns != 10 {
			t.Errorf("unexpected max open conns: %d", config.Database.MaxOpenConns)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("Malformed TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("[backend\nurl = "), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for malformed toml")
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Backend.Bucket != "lessons" {
		t.Errorf("unexpected default bucket: %s", config.Backend.Bucket)
	}
	if config.Backend.LessonTable != "lessons" || config.Backend.VideoTable != "videos" {
		t.Errorf("unexpected default tables: %s / %s", config.Backend.LessonTable, config.Backend.VideoTable)
	}
	if config.Database.Path != "lessonctl.db" {
		t.Errorf("unexpected default database path: %s", config.Database.Path)
	}
	if config.Server.Port != 8765 {
		t.Errorf("unexpected default server port: %d", config.Server.Port)
	}
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("Creates File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("created file should parse: %v", err)
		}
		if config.Backend.Bucket != "lessons" {
			t.Errorf("unexpected bucket in created file: %s", config.Backend.Bucket)
		}
	})

	t.Run("Refuses To Overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("# existing"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file exists")
		}
	})
}
