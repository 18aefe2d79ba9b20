// package services defines interfaces for the hosted backend's HTTP APIs
//
// Auth (GoTrue), Storage (object API), Table (PostgREST)
package services

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// Session represents an active authenticated session with the backend.
type Session struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Auth defines the authentication service contract.
type Auth interface {
	// GetSession returns the active session, or (nil, nil) when there is none.
	// Called exactly once per screen activation by the session gate.
	GetSession(ctx context.Context) (*Session, error)

	// SignInWithLink sends a magic sign-in link to the given email address.
	SignInWithLink(ctx context.Context, email string) error

	// VerifyLinkCode exchanges the emailed one-time code for a session.
	// This is the terminal-side completion of the magic-link flow.
	VerifyLinkCode(ctx context.Context, email, code string) (*Session, error)

	// SignInWithProvider runs the OAuth authorization flow for the named
	// provider (github, google) and returns the resulting session.
	SignInWithProvider(ctx context.Context, provider string) (*Session, error)

	// SignOut revokes the active session.
	SignOut(ctx context.Context) error
}

// Storage defines the object storage contract.
//
// Paths are POSIX-style, rooted at a fixed bucket; every image produced by
// the lesson workflow ends in a literal .png extension.
type Storage interface {
	// Upload writes data to path inside the bucket. overwrite controls
	// whether an existing object at path is replaced.
	Upload(ctx context.Context, path string, data []byte, overwrite bool) error
}

// Table defines the relational table insert contract.
type Table interface {
	// Insert writes one structured record into the named table.
	Insert(ctx context.Context, table string, record any) error
}

// TokenProvider supplies the bearer token for authenticated storage and table requests.
type TokenProvider interface {
	AccessToken() string
}

// ProviderAuthorizer performs the user-facing half of an OAuth flow: opening
// the authorization URL and collecting the exchanged token, typically via a
// loopback callback server.
type ProviderAuthorizer interface {
	Authorize(ctx context.Context, config *oauth2.Config, state string) (*oauth2.Token, error)
}
