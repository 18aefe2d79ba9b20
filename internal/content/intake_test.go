package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIntake(t *testing.T) {
	t.Run("Preview Routes To Preview Slot", func(t *testing.T) {
		d := NewLessonDraft()

		applied := d.Intake([]IntakeFile{
			{Name: "preview.png", Data: []byte("p")},
			{Name: "01.png", Data: []byte("a")},
			{Name: "02.png", Data: []byte("b")},
		})

		if applied != 3 {
			t.Errorf("expected 3 files applied, got %d", applied)
		}
		if string(d.Preview) != "p" {
			t.Error("preview.png should fill the preview slot")
		}
		if d.Steps.Len() != 2 {
			t.Errorf("expected 2 steps after intake, got %d", d.Steps.Len())
		}
		if string(d.Steps.At(0).Image) != "a" || string(d.Steps.At(1).Image) != "b" {
			t.Error("step images should fill in file order")
		}
	})

	t.Run("Preview Name Is Case Insensitive", func(t *testing.T) {
		d := NewLessonDraft()
		d.Intake([]IntakeFile{{Name: "Preview.PNG", Data: []byte("p")}})
		if string(d.Preview) != "p" {
			t.Error("Preview.PNG should fill the preview slot")
		}
	})

	t.Run("Non PNG Ignored", func(t *testing.T) {
		d := NewLessonDraft()

		applied := d.Intake([]IntakeFile{
			{Name: "notes.txt", Data: []byte("x")},
			{Name: "photo.jpg", Data: []byte("x")},
			{Name: "01.png", Data: []byte("a")},
		})

		if applied != 1 {
			t.Errorf("expected 1 file applied, got %d", applied)
		}
		if d.Steps.Len() != 1 {
			t.Errorf("expected existing blank step reused, got %d steps", d.Steps.Len())
		}
	})

	t.Run("Fills Empty Slots Before Appending", func(t *testing.T) {
		d := NewLessonDraft()
		d.Steps.Append()
		d.Steps.SetImage(0, []byte("existing"), "old.png")

		d.Intake([]IntakeFile{
			{Name: "new1.png", Data: []byte("n1")},
			{Name: "new2.png", Data: []byte("n2")},
		})

		if string(d.Steps.At(0).Image) != "existing" {
			t.Error("occupied slot should not be overwritten")
		}
		if string(d.Steps.At(1).Image) != "n1" {
			t.Error("first empty slot should receive the first file")
		}
		if d.Steps.Len() != 3 || string(d.Steps.At(2).Image) != "n2" {
			t.Error("remaining files should append new steps")
		}
	})
}

func TestReadIntakeDir(t *testing.T) {
	t.Run("Reads Files Sorted By Name", func(t *testing.T) {
		dir := t.TempDir()
		for name, data := range map[string]string{
			"02.png":      "b",
			"01.png":      "a",
			"preview.png": "p",
		} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
				t.Fatalf("failed to write fixture: %v", err)
			}
		}
		if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
			t.Fatalf("failed to create subdir: %v", err)
		}

		files, err := ReadIntakeDir(dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(files) != 3 {
			t.Fatalf("expected 3 files, got %d", len(files))
		}
		expected := []string{"01.png", "02.png", "preview.png"}
		for i, name := range expected {
			if files[i].Name != name {
				t.Errorf("expected %s at position %d, got %s", name, i, files[i].Name)
			}
		}
	})

	t.Run("Missing Directory", func(t *testing.T) {
		if _, err := ReadIntakeDir(filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}
