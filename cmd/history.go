package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lessonctl/internal/models"
	"github.com/desertthunder/lessonctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// History lists recent submissions from the local history table.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	if r.submissions == nil {
		return fmt.Errorf("%w: local database not initialized, run 'lessonctl setup' first", shared.ErrServiceUnavailable)
	}

	kind := cmd.String("kind")
	limit := int(cmd.Int("limit"))

	var entries []*models.Submission
	var err error
	if kind != "" {
		entries, err = r.submissions.List(map[string]any{"kind": kind})
	} else {
		entries, err = r.submissions.Recent(limit)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return r.writePlain("No submissions recorded\n")
	}

	for _, entry := range entries {
		r.writePlain("%s  %-6s  %-30s  %s\n",
			entry.CreatedAt().Format("2006-01-02 15:04"),
			entry.Kind(),
			entry.RecordKey(),
			entry.Title(),
		)
	}
	return nil
}
