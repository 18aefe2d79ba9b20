package ui

import (
	"github.com/desertthunder/lessonctl/internal/services"
	"github.com/desertthunder/lessonctl/internal/tasks"
)

// sessionCheckedMsg carries the result of the one-time session gate check.
type sessionCheckedMsg struct {
	session *services.Session
	err     error
}

// linkSentMsg reports the outcome of requesting a magic link.
type linkSentMsg struct {
	email string
	err   error
}

// verifiedMsg carries the session established from a magic-link code.
type verifiedMsg struct {
	session *services.Session
	err     error
}

// signedOutMsg reports the outcome of a sign-out request.
type signedOutMsg struct {
	err error
}

// intakeLoadedMsg reports how many files a directory intake consumed.
type intakeLoadedMsg struct {
	added int
	err   error
}

// progressUpdateMsg wraps a [tasks.ProgressUpdate] from a running submission.
type progressUpdateMsg tasks.ProgressUpdate

// lessonSubmittedMsg carries the final result of a lesson submission.
type lessonSubmittedMsg struct {
	result *tasks.LessonSubmitResult
	err    error
}

// videoSubmittedMsg carries the final result of a video submission.
type videoSubmittedMsg struct {
	result *tasks.VideoSubmitResult
	err    error
}
