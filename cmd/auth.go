package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lessonctl/internal/models"
	"github.com/desertthunder/lessonctl/internal/services"
	"github.com/desertthunder/lessonctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin starts a sign-in: --email sends a magic link, --provider runs the
// OAuth loopback flow and persists the resulting session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.auth == nil {
		return fmt.Errorf("%w: auth service not initialized", shared.ErrServiceUnavailable)
	}

	email := cmd.String("email")
	provider := cmd.String("provider")

	switch {
	case email != "" && provider != "":
		return fmt.Errorf("%w: cannot specify both --email and --provider", shared.ErrInvalidFlag)

	case email != "":
		r.logger.Info("requesting magic link", "email", email)
		if err := r.auth.SignInWithLink(ctx, email); err != nil {
			return err
		}
		r.writePlain("✓ Magic link sent to %s\n", email)
		r.writePlain("Complete sign-in with: lessonctl auth verify --email %s --code <code>\n", email)
		return nil

	case provider != "":
		r.logger.Info("starting provider sign-in", "provider", provider)
		session, err := r.auth.SignInWithProvider(ctx, provider)
		if err != nil {
			return err
		}
		r.persistSession(session)
		return r.writePlain("✓ Signed in as %s\n", session.Email)

	default:
		return fmt.Errorf("%w: either --email or --provider must be provided", shared.ErrMissingArgument)
	}
}

// AuthVerify exchanges an emailed one-time code for a session.
func (r *Runner) AuthVerify(ctx context.Context, cmd *cli.Command) error {
	if r.auth == nil {
		return fmt.Errorf("%w: auth service not initialized", shared.ErrServiceUnavailable)
	}

	email := cmd.String("email")
	code := cmd.String("code")

	session, err := r.auth.VerifyLinkCode(ctx, email, code)
	if err != nil {
		return err
	}

	r.persistSession(session)
	return r.writePlain("✓ Signed in as %s\n", session.Email)
}

// AuthStatus reports the active session.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.auth == nil {
		return fmt.Errorf("%w: auth service not initialized", shared.ErrServiceUnavailable)
	}

	session, err := r.auth.GetSession(ctx)
	if err != nil {
		return err
	}

	if session == nil {
		return r.writePlain("✗ Not signed in\n")
	}

	r.writePlain("✓ Signed in\n")
	r.writePlain("Email: %s\n", session.Email)
	if !session.ExpiresAt.IsZero() {
		r.writePlain("Expires: %s\n", session.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

// AuthLogout revokes the active session and clears the local session store.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.auth == nil {
		return fmt.Errorf("%w: auth service not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.auth.SignOut(ctx); err != nil {
		return err
	}

	if r.sessions != nil {
		if err := r.sessions.Clear(); err != nil {
			r.logger.Warn("failed to clear local session store", "error", err)
		}
	}

	return r.writePlain("✓ Signed out\n")
}

// requireSession checks the hosted session once before an authenticated
// action runs. A missing or expired session fails with [shared.ErrNotAuthenticated].
func (r *Runner) requireSession(ctx context.Context) error {
	if r.auth == nil {
		return fmt.Errorf("%w: auth service not initialized", shared.ErrServiceUnavailable)
	}

	session, err := r.auth.GetSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("%w: run 'lessonctl auth login' first", shared.ErrNotAuthenticated)
	}

	return nil
}

// persistSession stores the session in the local database so later
// invocations start signed in. Persistence failures are non-fatal.
func (r *Runner) persistSession(session *services.Session) {
	if r.sessions == nil || session == nil {
		return
	}
	stored := models.NewSession(session.Email, session.AccessToken, session.RefreshToken, session.ExpiresAt)
	if err := r.sessions.Create(stored); err != nil {
		r.logger.Warn("failed to persist session", "error", err)
	}
}
