package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/lessonctl/internal/repositories"
	"github.com/desertthunder/lessonctl/internal/server"
	"github.com/desertthunder/lessonctl/internal/services"
	"github.com/desertthunder/lessonctl/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	auth := services.NewSupabaseAuth(config.Backend.URL, config.Backend.AnonKey, nil)
	if config.OAuth.ClientID != "" && config.OAuth.ClientSecret != "" {
		flow := server.NewOAuthFlow(config.Server.Host, config.Server.Port, logger)
		auth.SetProviderFlow(config.OAuth.ClientID, config.OAuth.ClientSecret, config.OAuth.RedirectURI, flow)
	}

	storage := services.NewSupabaseStorage(config.Backend.URL, config.Backend.AnonKey, config.Backend.Bucket, nil, auth)
	table := services.NewSupabaseTable(config.Backend.URL, config.Backend.AnonKey, nil, auth)

	var sessions *repositories.SessionRepository
	var submissions *repositories.SubmissionRepository
	if _, err := os.Stat(config.Database.Path); err == nil {
		if db, err := shared.NewDatabase(config.Database.Path); err == nil {
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			sessions = repositories.NewSessionRepository(db)
			submissions = repositories.NewSubmissionRepository(db)
		} else {
			logger.Warn("failed to open local database", "path", config.Database.Path, "error", err)
		}
	}

	// Restore the persisted session, if any, so commands start signed in.
	if sessions != nil {
		if stored, err := sessions.Latest(); err == nil && stored != nil && !stored.Expired() {
			auth.UseSession(&services.Session{
				Email:        stored.Email(),
				AccessToken:  stored.AccessToken(),
				RefreshToken: stored.RefreshToken(),
				ExpiresAt:    stored.ExpiresAt(),
			})
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:      config,
		Auth:        auth,
		Storage:     storage,
		Table:       table,
		Sessions:    sessions,
		Submissions: submissions,
		Logger:      logger,
	})

	app := &cli.Command{
		Name:     "lessonctl",
		Usage:    "Upload lesson and video records to the hosted backend",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
