package content

import (
	"regexp"
	"strings"
)

// durationPattern is the strict MM:SS shape required for full-length videos.
var durationPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// LessonErrors is the field-indexed error map produced by [ValidateLesson].
//
// It is rebuilt wholesale on every validation pass; a true value marks the
// field as invalid. Steps carries one entry per step in draft order.
type LessonErrors struct {
	Title       bool
	Slug        bool
	PreviewFile bool
	NoSteps     bool
	Steps       []bool
}

// Any reports whether any field is flagged invalid.
func (e LessonErrors) Any() bool {
	if e.Title || e.Slug || e.PreviewFile || e.NoSteps {
		return true
	}
	for _, invalid := range e.Steps {
		if invalid {
			return true
		}
	}
	return false
}

// ValidateLesson checks the full draft and returns a complete error map.
//
// Rules: title and slug non-empty, preview image present, at least one step,
// and every step holding both a caption and an image. The draft is never
// mutated; a flagged map blocks submission entirely.
func ValidateLesson(draft *LessonDraft) LessonErrors {
	errs := LessonErrors{
		Title:       strings.TrimSpace(draft.Title) == "",
		Slug:        strings.TrimSpace(draft.Slug) == "",
		PreviewFile: len(draft.Preview) == 0,
	}

	steps := draft.Steps.All()
	errs.NoSteps = len(steps) == 0
	errs.Steps = make([]bool, len(steps))
	for i, step := range steps {
		errs.Steps[i] = strings.TrimSpace(step.Caption) == "" || !step.HasImage()
	}

	return errs
}

// VideoErrors is the field-indexed error map produced by [ValidateVideo].
type VideoErrors struct {
	YouTubeRef      bool
	Titles          bool
	Category        bool
	SourceChannel   bool
	DurationLabel   bool
	ContentLanguage bool
}

// Any reports whether any field is flagged invalid.
func (e VideoErrors) Any() bool {
	return e.YouTubeRef || e.Titles || e.Category || e.SourceChannel || e.DurationLabel || e.ContentLanguage
}

// ValidateVideo checks the full draft and returns a complete error map.
//
// Rules: a parsed YouTube reference, at least one non-empty title (ru/he/en),
// a category, a source channel, an MM:SS duration when format is video, and a
// content language when the language dependency is spoken.
func ValidateVideo(draft *VideoDraft) VideoErrors {
	errs := VideoErrors{
		YouTubeRef:    draft.YouTubeID == "",
		Titles:        len(draft.Titles()) == 0,
		Category:      strings.TrimSpace(draft.CategoryKey) == "",
		SourceChannel: strings.TrimSpace(draft.SourceChannel) == "",
	}

	if draft.Format == FormatVideo {
		errs.DurationLabel = !durationPattern.MatchString(draft.DurationLabel)
	}

	if draft.LanguageDependency == DependencySpoken {
		errs.ContentLanguage = draft.ContentLanguage == ""
	}

	return errs
}
