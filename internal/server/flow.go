package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lessonctl/internal/shared"
	"golang.org/x/oauth2"
)

// OAuthFlow runs the user-facing half of a provider sign-in: it serves the
// loopback callback, opens the authorization URL in the system browser, and
// waits for exactly one exchanged token.
//
// Implements the services.ProviderAuthorizer contract.
type OAuthFlow struct {
	host   string
	port   int
	logger *log.Logger
}

// NewOAuthFlow creates an OAuthFlow listening on the given loopback host and port.
func NewOAuthFlow(host string, port int, logger *log.Logger) *OAuthFlow {
	if host == "" {
		host = "127.0.0.1"
	}
	if port == 0 {
		port = 8765
	}

	return &OAuthFlow{host: host, port: port, logger: logger}
}

// Authorize serves the callback, opens the browser, and blocks until the
// provider redirects back or ctx is cancelled.
func (f *OAuthFlow) Authorize(ctx context.Context, config *oauth2.Config, state string) (*oauth2.Token, error) {
	handler := NewOAuthHandler(config, state)

	router := NewBasicRouter()
	if f.logger != nil {
		router.Use(RequestLogger(f.logger))
	}
	router.Handler(handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", f.host, f.port),
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()
	defer srv.Shutdown(context.Background())

	authURL := config.AuthCodeURL(state)
	if f.logger != nil {
		f.logger.Infof("opening browser for authorization: %s", authURL)
	}
	if err := shared.OpenBrowser(authURL); err != nil {
		// The user can still complete the flow by opening the URL manually
		if f.logger != nil {
			f.logger.Warnf("failed to open browser, visit %s to continue: %v", authURL, err)
		}
	}

	select {
	case result := <-handler.Result():
		if result.Error() != nil {
			return nil, result.Error()
		}
		return result.Token, nil
	case err := <-errChan:
		return nil, fmt.Errorf("callback server failed: %w", err)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
