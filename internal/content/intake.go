package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IntakeFile is one dropped-in file offered to bulk intake.
type IntakeFile struct {
	Name string
	Data []byte
}

// Intake distributes a batch of dropped image files into the draft's slots.
//
// A file literally named preview (preview.png, any case) fills the preview
// slot. Every other .png fills the first step whose image slot is empty, in
// file order, appending new steps once the existing empty slots run out.
// Files without a .png extension are ignored entirely. Returns the number of
// files applied.
func (d *LessonDraft) Intake(files []IntakeFile) int {
	applied := 0

	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Name))
		if ext != ".png" {
			continue
		}

		base := strings.ToLower(strings.TrimSuffix(filepath.Base(file.Name), filepath.Ext(file.Name)))
		if base == "preview" {
			d.Preview = file.Data
			applied++
			continue
		}

		step := d.firstEmptyImageSlot()
		if step == nil {
			step = d.Steps.Append()
		}
		step.Image = file.Data
		step.Filename = file.Name
		applied++
	}

	return applied
}

// firstEmptyImageSlot returns the first step without an image, or nil.
func (d *LessonDraft) firstEmptyImageSlot() *Step {
	for _, step := range d.Steps.All() {
		if !step.HasImage() {
			return step
		}
	}
	return nil
}

// ReadIntakeDir loads every regular file in dir as an [IntakeFile], ordered by
// filename. Filtering by extension is left to [LessonDraft.Intake].
func ReadIntakeDir(dir string) ([]IntakeFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read intake directory: %w", err)
	}

	var files []IntakeFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}

		files = append(files, IntakeFile{Name: entry.Name(), Data: data})
	}

	return files, nil
}
