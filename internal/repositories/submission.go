package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/lessonctl/internal/models"
	"github.com/desertthunder/lessonctl/internal/shared"
)

// SubmissionRepository implements [models.Repository] for the [models.Submission] upload log.
type SubmissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new [SubmissionRepository] with the given database connection
func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

var _ models.Repository[*models.Submission] = (*SubmissionRepository)(nil)

// Create inserts a new submission log entry with a generated ID
func (r *SubmissionRepository) Create(submission *models.Submission) error {
	id := shared.GenerateID()
	submission.SetID(id)

	if err := submission.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO submissions (id, kind, record_key, title, created_at) VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, id, submission.Kind(), submission.RecordKey(), submission.Title(), submission.CreatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	return nil
}

// Get retrieves a submission by ID
func (r *SubmissionRepository) Get(id string) (*models.Submission, error) {
	query := `
		SELECT id, kind, record_key, title, created_at FROM submissions WHERE id = ?
	`

	submission, err := scanSubmission(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("submission not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return submission, nil
}

// Update rewrites a submission log entry
func (r *SubmissionRepository) Update(submission *models.Submission) error {
	if err := submission.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE submissions SET kind = ?, record_key = ?, title = ? WHERE id = ?
	`

	result, err := r.db.Exec(query, submission.Kind(), submission.RecordKey(), submission.Title(), submission.ID())
	if err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("submission not found: %s", submission.ID())
	}

	return nil
}

// Delete removes a submission log entry by ID
func (r *SubmissionRepository) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM submissions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	return nil
}

// List retrieves submissions matching the given criteria (supported key: kind)
func (r *SubmissionRepository) List(criteria map[string]any) ([]*models.Submission, error) {
	query := `SELECT id, kind, record_key, title, created_at FROM submissions`
	args := []any{}

	if kind, ok := criteria["kind"]; ok {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, submission)
	}

	return submissions, rows.Err()
}

// Recent retrieves the most recent submissions up to limit.
func (r *SubmissionRepository) Recent(limit int) ([]*models.Submission, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(`SELECT id, kind, record_key, title, created_at FROM submissions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, submission)
	}

	return submissions, rows.Err()
}

func scanSubmission(row rowScanner) (*models.Submission, error) {
	var (
		id        string
		kind      string
		recordKey string
		title     string
		createdAt sql.NullTime
	)

	if err := row.Scan(&id, &kind, &recordKey, &title, &createdAt); err != nil {
		return nil, err
	}

	return models.RestoreSubmission(id, kind, recordKey, title, createdAt.Time), nil
}
