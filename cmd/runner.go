package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lessonctl/internal/models"
	"github.com/desertthunder/lessonctl/internal/repositories"
	"github.com/desertthunder/lessonctl/internal/services"
	"github.com/desertthunder/lessonctl/internal/shared"
	"github.com/desertthunder/lessonctl/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	auth        services.Auth
	storage     services.Storage
	table       services.Table
	engine      tasks.SubmitEngine
	sessions    *repositories.SessionRepository
	submissions *repositories.SubmissionRepository
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	Auth        services.Auth
	Storage     services.Storage
	Table       services.Table
	Engine      tasks.SubmitEngine
	Sessions    *repositories.SessionRepository
	Submissions *repositories.SubmissionRepository
	HTTPClient  *http.Client
	Logger      *log.Logger
	Output      io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Engine == nil && opts.Storage != nil && opts.Table != nil {
		opts.Engine = tasks.NewUploadEngine(opts.Storage, opts.Table, tasks.UploadEngineOpts{
			LessonTable: opts.Config.Backend.LessonTable,
			VideoTable:  opts.Config.Backend.VideoTable,
		})
	}

	return &Runner{
		config:      opts.Config,
		auth:        opts.Auth,
		storage:     opts.Storage,
		table:       opts.Table,
		engine:      opts.Engine,
		sessions:    opts.Sessions,
		submissions: opts.Submissions,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
	}
}

// SetLogger replaces the Runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, lessonCommand, videoCommand, historyCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// recordSubmission logs a successful submission into the local history table.
// Failures are reported but never fail the command.
func (r *Runner) recordSubmission(kind, recordKey, title string) {
	if r.submissions == nil {
		return
	}
	submission := models.NewSubmission(kind, recordKey, title)
	if err := r.submissions.Create(submission); err != nil {
		r.logger.Warn("failed to record submission history", "error", err)
	}
}
