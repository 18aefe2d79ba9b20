package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/lessonctl/internal/models"
	"github.com/desertthunder/lessonctl/internal/shared"
)

// SessionRepository implements [models.Repository] for [models.Session] persistence.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ models.Repository[*models.Session] = (*SessionRepository)(nil)

// Create inserts a new session into the database with a generated ID.
//
// Only one session is kept at a time: any previous sessions are cleared first.
func (r *SessionRepository) Create(session *models.Session) error {
	if err := r.Clear(); err != nil {
		return err
	}

	id := shared.GenerateID()
	session.SetID(id)

	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO sessions (id, email, access_token, refresh_token, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, id, session.Email(), session.AccessToken(), session.RefreshToken(),
		nullableTime(session.ExpiresAt()), session.CreatedAt(), session.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID
func (r *SessionRepository) Get(id string) (*models.Session, error) {
	query := `
		SELECT id, email, access_token, refresh_token, expires_at, created_at, updated_at
		FROM sessions
		WHERE id = ?
	`

	session, err := scanSession(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// Latest retrieves the most recently stored session, or (nil, nil) when signed out.
func (r *SessionRepository) Latest() (*models.Session, error) {
	query := `
		SELECT id, email, access_token, refresh_token, expires_at, created_at, updated_at
		FROM sessions
		ORDER BY created_at DESC
		LIMIT 1
	`

	session, err := scanSession(r.db.QueryRow(query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest session: %w", err)
	}

	return session, nil
}

// Update modifies an existing session's tokens and timestamps
func (r *SessionRepository) Update(session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	session.Touch()

	query := `
		UPDATE sessions
		SET email = ?, access_token = ?, refresh_token = ?, expires_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, session.Email(), session.AccessToken(), session.RefreshToken(),
		nullableTime(session.ExpiresAt()), session.UpdatedAt(), session.ID())
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("session not found: %s", session.ID())
	}

	return nil
}

// Delete removes a session by ID
func (r *SessionRepository) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Clear removes every stored session, used on sign-out.
func (r *SessionRepository) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	return nil
}

// List retrieves sessions matching the given criteria (supported key: email)
func (r *SessionRepository) List(criteria map[string]any) ([]*models.Session, error) {
	query := `
		SELECT id, email, access_token, refresh_token, expires_at, created_at, updated_at
		FROM sessions
	`
	args := []any{}

	if email, ok := criteria["email"]; ok {
		query += ` WHERE email = ?`
		args = append(args, email)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*models.Session, error) {
	var (
		id           string
		email        string
		accessToken  string
		refreshToken string
		expiresAt    sql.NullTime
		createdAt    sql.NullTime
		updatedAt    sql.NullTime
	)

	if err := row.Scan(&id, &email, &accessToken, &refreshToken, &expiresAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return models.RestoreSession(id, email, accessToken, refreshToken,
		expiresAt.Time, createdAt.Time, updatedAt.Time), nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
