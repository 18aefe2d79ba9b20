package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lessonctl/internal/content"
	"github.com/desertthunder/lessonctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// VideoSubmit parses the YouTube reference, validates the draft, and inserts
// one video record.
func (r *Runner) VideoSubmit(ctx context.Context, cmd *cli.Command) error {
	if r.engine == nil {
		return fmt.Errorf("%w: submit engine not initialized", shared.ErrServiceUnavailable)
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	draft := content.NewVideoDraft()
	draft.SetURL(cmd.String("url"))
	draft.Format = cmd.String("format")
	draft.CategoryKey = cmd.String("category")
	draft.LanguageDependency = cmd.String("dependency")
	draft.ContentLanguage = cmd.String("language")
	draft.TitleRU = cmd.String("title-ru")
	draft.TitleHE = cmd.String("title-he")
	draft.TitleEN = cmd.String("title-en")
	draft.SourceChannel = cmd.String("channel")
	draft.SetDurationLabel(cmd.String("duration"))

	if _, ok := draft.Parse(); !ok {
		return fmt.Errorf("%w: could not extract a video id from %q", shared.ErrNoMatch, cmd.String("url"))
	}
	r.logger.Info("parsed youtube reference", "id", draft.YouTubeID)

	if errs := content.ValidateVideo(draft); errs.Any() {
		return r.reportVideoErrors(errs)
	}

	record := draft.Record()

	result, err := r.engine.SubmitVideo(ctx, nil, draft)
	if err != nil {
		return err
	}

	r.recordSubmission("video", result.Record.ID, firstTitle(record.Title))

	if cmd.Bool("json") {
		return r.writeJSON(result.Record, true)
	}

	r.writePlain("✓ Video record saved\n")
	r.writePlain("ID: %s\n", result.Record.ID)
	r.writePlain("Status: %s\n", result.Record.Status)
	return nil
}

func (r *Runner) reportVideoErrors(errs content.VideoErrors) error {
	if errs.YouTubeRef {
		r.writePlain("✗ a parsed YouTube reference is required\n")
	}
	if errs.Titles {
		r.writePlain("✗ at least one title is required\n")
	}
	if errs.Category {
		r.writePlain("✗ category is required\n")
	}
	if errs.SourceChannel {
		r.writePlain("✗ source channel is required\n")
	}
	if errs.DurationLabel {
		r.writePlain("✗ duration must be mm:ss\n")
	}
	if errs.ContentLanguage {
		r.writePlain("✗ content language is required for spoken videos\n")
	}
	return fmt.Errorf("%w: video draft is invalid", shared.ErrValidationFailed)
}

// firstTitle picks any available title for history display, preferring Russian.
func firstTitle(titles map[string]string) string {
	for _, lang := range []string{"ru", "he", "en"} {
		if title := titles[lang]; title != "" {
			return title
		}
	}
	return ""
}
