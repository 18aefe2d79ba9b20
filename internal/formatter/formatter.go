// package formatter provides local export of draft data (CSV summaries, JSON manifests)
package formatter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/lessonctl/internal/content"
	"github.com/desertthunder/lessonctl/internal/shared"
)

// ExportLessonCSV converts a lesson draft to its CSV summary.
//
// Layout: a title,slug,category,category_slug header and data row, a blank
// row, then a step,frank,image header with one row per step. The image cell
// holds the two-digit step image filename, or stays empty when the step has
// no image yet. Embedded commas are not quoted or escaped; the format
// predates this tool and consumers rely on it as-is.
func ExportLessonCSV(draft *content.LessonDraft) []byte {
	rows := []string{
		"title,slug,category,category_slug",
		strings.Join([]string{draft.Title, draft.Slug, draft.Category, content.CategorySlug(draft.Category)}, ","),
		"",
		"step,frank,image",
	}

	for i, step := range draft.Steps.All() {
		image := ""
		if step.HasImage() {
			image = fmt.Sprintf("%02d.png", i+1)
		}
		rows = append(rows, strings.Join([]string{fmt.Sprintf("step%d", i+1), step.Caption, image}, ","))
	}

	return []byte(strings.Join(rows, "\n"))
}

// WriteLessonCSV writes the draft's CSV summary to path, creating parent directories as needed.
func WriteLessonCSV(draft *content.LessonDraft, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, ExportLessonCSV(draft), 0644); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}

	return nil
}

// WriteJSON writes data to path as pretty-printed JSON, creating parent directories as needed.
//
// Used for submission manifests saved alongside exports.
func WriteJSON(path string, data any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	payload, err := shared.MarshalJSON(data, true)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, payload, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}
