package main

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/lessonctl/internal/content"
	"github.com/desertthunder/lessonctl/internal/formatter"
	"github.com/desertthunder/lessonctl/internal/shared"
	"github.com/desertthunder/lessonctl/internal/tasks"
	"github.com/urfave/cli/v3"
)

// lessonManifest is the TOML shape accepted by lesson submit and export.
//
// Step captions are listed in presentation order; images come from the
// intake directory, preview.png routed to the preview slot and the rest
// filling steps top to bottom.
type lessonManifest struct {
	Category string   `toml:"category"`
	Title    string   `toml:"title"`
	Steps    []string `toml:"steps"`
}

// loadLessonDraft builds a draft from a manifest file plus an optional
// intake directory.
func loadLessonDraft(manifestPath, dir string) (*content.LessonDraft, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest lessonManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("%w: failed to parse manifest: %v", shared.ErrInvalidInput, err)
	}

	draft := content.NewLessonDraft()
	if manifest.Category != "" {
		draft.Category = manifest.Category
	}
	draft.SetTitle(manifest.Title)

	// The fresh draft already holds one blank step.
	for i, caption := range manifest.Steps {
		if i > 0 {
			draft.Steps.Append()
		}
		draft.Steps.SetCaption(i, caption)
	}

	if dir != "" {
		files, err := content.ReadIntakeDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read intake directory: %w", err)
		}
		draft.Intake(files)
	}

	return draft, nil
}

// LessonSubmit validates a manifest-built draft, uploads its images, and
// inserts the lesson record.
func (r *Runner) LessonSubmit(ctx context.Context, cmd *cli.Command) error {
	if r.engine == nil {
		return fmt.Errorf("%w: submit engine not initialized", shared.ErrServiceUnavailable)
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	draft, err := loadLessonDraft(cmd.String("manifest"), cmd.String("dir"))
	if err != nil {
		return err
	}

	if errs := content.ValidateLesson(draft); errs.Any() {
		return r.reportLessonErrors(errs)
	}

	r.logger.Info("starting lesson submission", "title", draft.Title, "steps", draft.Steps.Len())
	r.writePlain("Submitting lesson '%s' (%d steps)...\n\n", draft.Title, draft.Steps.Len())

	title := draft.Title

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.UploadPreview:
				r.writePlain("📤 %s\n", update.Message)
			case tasks.UploadSteps:
				r.writePlain("   %s\n", update.Message)
			case tasks.InsertRecord:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.SubmitLesson(ctx, progressCh, draft)
	close(progressCh)

	if err != nil {
		return err
	}

	r.recordSubmission("lesson", result.Folder, title)

	r.writePlainln("═══════════════════════════════════════")
	r.writePlain("Lesson Saved!\n")
	r.writePlain("Folder: %s\n", result.Folder)
	r.writePlain("Steps uploaded: %d\n", result.Steps)
	return nil
}

// LessonExport writes a manifest-built draft as CSV.
func (r *Runner) LessonExport(ctx context.Context, cmd *cli.Command) error {
	draft, err := loadLessonDraft(cmd.String("manifest"), cmd.String("dir"))
	if err != nil {
		return err
	}

	outputPath := cmd.String("output")
	if outputPath == "" {
		data := formatter.ExportLessonCSV(draft)
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return r.writePlain("\n")
	}

	if err := formatter.WriteLessonCSV(draft, outputPath); err != nil {
		return err
	}
	r.logger.Info("csv exported", "path", outputPath)
	return r.writePlain("✓ Exported to %s\n", outputPath)
}

func (r *Runner) reportLessonErrors(errs content.LessonErrors) error {
	if errs.Title {
		r.writePlain("✗ title is required\n")
	}
	if errs.Slug {
		r.writePlain("✗ slug is empty, title produced no usable characters\n")
	}
	if errs.PreviewFile {
		r.writePlain("✗ preview image is missing\n")
	}
	if errs.NoSteps {
		r.writePlain("✗ at least one step is required\n")
	}
	for i, flagged := range errs.Steps {
		if flagged {
			r.writePlain("✗ step %d is incomplete (caption and image required)\n", i+1)
		}
	}
	return fmt.Errorf("%w: lesson draft is invalid", shared.ErrValidationFailed)
}
