package models

import (
	"fmt"
	"time"
)

// Session is an authenticated backend session persisted in the local database so a login survives between CLI invocations.
type Session struct {
	id           string
	email        string
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewSession creates a Session for the given account with its token pair.
//
// The ID is assigned by the repository on Create.
func NewSession(email, accessToken, refreshToken string, expiresAt time.Time) *Session {
	now := time.Now().UTC()
	return &Session{
		email:        email,
		accessToken:  accessToken,
		refreshToken: refreshToken,
		expiresAt:    expiresAt,
		createdAt:    now,
		updatedAt:    now,
	}
}

// RestoreSession rebuilds a Session from persisted fields.
func RestoreSession(id, email, accessToken, refreshToken string, expiresAt, createdAt, updatedAt time.Time) *Session {
	return &Session{
		id:           id,
		email:        email,
		accessToken:  accessToken,
		refreshToken: refreshToken,
		expiresAt:    expiresAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Email() string        { return s.email }
func (s *Session) AccessToken() string  { return s.accessToken }
func (s *Session) RefreshToken() string { return s.refreshToken }
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }
func (s *Session) CreatedAt() time.Time { return s.createdAt }
func (s *Session) UpdatedAt() time.Time { return s.updatedAt }

// SetID assigns the unique identifier, called by the repository on Create.
func (s *Session) SetID(id string) { s.id = id }

// Touch updates the modification timestamp.
func (s *Session) Touch() { s.updatedAt = time.Now().UTC() }

// Expired reports whether the access token's lifetime has elapsed.
//
// A zero expiry means the backend did not report one; such sessions are
// revalidated against the auth service instead.
func (s *Session) Expired() bool {
	return !s.expiresAt.IsZero() && time.Now().After(s.expiresAt)
}

// Validate checks that the session has the fields required for authenticated requests.
func (s *Session) Validate() error {
	if s.email == "" {
		return fmt.Errorf("session email is required")
	}
	if s.accessToken == "" {
		return fmt.Errorf("session access token is required")
	}
	return nil
}
