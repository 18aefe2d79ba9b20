package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ValidateDraft Phase = iota
	UploadPreview
	UploadSteps
	InsertRecord
	Done
)

func (p Phase) String() string {
	switch p {
	case ValidateDraft:
		return "validate_draft"
	case UploadPreview:
		return "upload_preview"
	case UploadSteps:
		return "upload_steps"
	case InsertRecord:
		return "insert_record"
	case Done:
		return "done"
	default:
		return ""
	}
}

func validateUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   ValidateDraft,
		Step:    1,
		Total:   1,
		Message: "Validating draft...",
	}
}

func previewUpdate(folder string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadPreview,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Uploading preview to %s...", folder),
	}
}

func stepUploadUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadSteps,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Uploading step image %d of %d...", step, total),
	}
}

func insertUpdate(table string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   InsertRecord,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Inserting record into %s...", table),
	}
}

func doneUpdate(message string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    1,
		Total:   1,
		Message: message,
	}
}
