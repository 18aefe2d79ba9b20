package models

import (
	"fmt"
	"time"
)

// Submission kinds
const (
	SubmissionLesson = "lesson"
	SubmissionVideo  = "video"
)

// Submission is a local log entry recording a successful lesson or video upload.
type Submission struct {
	id        string
	kind      string
	recordKey string
	title     string
	createdAt time.Time
}

// NewSubmission creates a Submission log entry.
//
// recordKey is the remote identifier: the lesson slug or the derived video id.
func NewSubmission(kind, recordKey, title string) *Submission {
	return &Submission{
		kind:      kind,
		recordKey: recordKey,
		title:     title,
		createdAt: time.Now().UTC(),
	}
}

// RestoreSubmission rebuilds a Submission from persisted fields.
func RestoreSubmission(id, kind, recordKey, title string, createdAt time.Time) *Submission {
	return &Submission{
		id:        id,
		kind:      kind,
		recordKey: recordKey,
		title:     title,
		createdAt: createdAt,
	}
}

func (s *Submission) ID() string           { return s.id }
func (s *Submission) Kind() string         { return s.kind }
func (s *Submission) RecordKey() string    { return s.recordKey }
func (s *Submission) Title() string        { return s.title }
func (s *Submission) CreatedAt() time.Time { return s.createdAt }
func (s *Submission) UpdatedAt() time.Time { return s.createdAt }

// SetID assigns the unique identifier, called by the repository on Create.
func (s *Submission) SetID(id string) { s.id = id }

// Validate checks the submission's fields.
func (s *Submission) Validate() error {
	if s.kind != SubmissionLesson && s.kind != SubmissionVideo {
		return fmt.Errorf("invalid submission kind: %q", s.kind)
	}
	if s.recordKey == "" {
		return fmt.Errorf("submission record key is required")
	}
	return nil
}
