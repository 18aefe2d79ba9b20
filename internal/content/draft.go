package content

import (
	"strings"

	"github.com/desertthunder/lessonctl/internal/models"
)

// LessonDraft is the in-memory, unsaved state of the lesson form.
//
// The slug is derived: every title change recomputes it and silently
// overwrites the field, so it can never drift from the title.
type LessonDraft struct {
	Category string
	Title    string
	Slug     string
	Preview  []byte
	Steps    *StepList
}

// NewLessonDraft creates an empty draft with the default category and one blank step.
func NewLessonDraft() *LessonDraft {
	draft := &LessonDraft{
		Category: LessonCategories[0],
		Steps:    NewStepList(),
	}
	draft.Steps.Append()
	return draft
}

// SetTitle updates the title and recomputes the slug from it.
func (d *LessonDraft) SetTitle(title string) {
	d.Title = title
	d.Slug = Slugify(title)
}

// Reset discards all form state, returning the draft to its initial empty shape.
func (d *LessonDraft) Reset() {
	*d = *NewLessonDraft()
}

// VideoDraft is the in-memory, unsaved state of the video form.
type VideoDraft struct {
	URL                string
	YouTubeID          string // parsed identifier, empty until Parse succeeds
	Format             string
	CategoryKey        string
	LanguageDependency string
	ContentLanguage    string
	TitleRU            string
	TitleHE            string
	TitleEN            string
	SourceChannel      string
	DurationLabel      string
}

// NewVideoDraft creates an empty draft with the form's default selections.
func NewVideoDraft() *VideoDraft {
	return &VideoDraft{
		Format:             FormatVideo,
		CategoryKey:        VideoCategories[0].Key,
		LanguageDependency: DependencySpoken,
		ContentLanguage:    "en",
	}
}

// SetURL updates the raw URL input. When the draft already holds a parsed
// identifier and the new text no longer yields that same identifier, the
// parsed state is invalidated.
func (d *VideoDraft) SetURL(raw string) {
	d.URL = raw

	if strings.TrimSpace(raw) == "" {
		d.YouTubeID = ""
		return
	}

	if d.YouTubeID != "" {
		next, ok := ExtractYouTubeID(raw)
		if !ok || next != d.YouTubeID {
			d.YouTubeID = ""
		}
	}
}

// Parse extracts the video identifier from the current URL input.
//
// ok=false leaves the draft without a parsed reference; the user fixes the
// input and tries again.
func (d *VideoDraft) Parse() (string, bool) {
	id, ok := ExtractYouTubeID(d.URL)
	if !ok {
		d.YouTubeID = ""
		return "", false
	}
	d.YouTubeID = id
	return id, true
}

// SetDurationLabel updates the duration, stripping every character other than digits and ':'.
func (d *VideoDraft) SetDurationLabel(raw string) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == ':' {
			b.WriteRune(r)
		}
	}
	d.DurationLabel = b.String()
}

// Titles returns a language-code map holding only the non-empty titles.
func (d *VideoDraft) Titles() map[string]string {
	titles := make(map[string]string)
	if t := strings.TrimSpace(d.TitleRU); t != "" {
		titles["ru"] = d.TitleRU
	}
	if t := strings.TrimSpace(d.TitleHE); t != "" {
		titles["he"] = d.TitleHE
	}
	if t := strings.TrimSpace(d.TitleEN); t != "" {
		titles["en"] = d.TitleEN
	}
	return titles
}

// RecordID derives the video record identifier: join(category, youtubeID, format).
func (d *VideoDraft) RecordID() string {
	return strings.Join([]string{d.CategoryKey, d.YouTubeID, d.Format}, "-")
}

// Record builds the table row for the draft. Status is fixed to "approved".
func (d *VideoDraft) Record() models.VideoRecord {
	contentLanguages := []string{d.ContentLanguage}
	if d.LanguageDependency == DependencyVisual {
		contentLanguages = []string{"all"}
	}

	var durationLabel *string
	if d.Format == FormatVideo {
		label := d.DurationLabel
		durationLabel = &label
	}

	return models.VideoRecord{
		ID:                 d.RecordID(),
		Format:             d.Format,
		CategoryKey:        d.CategoryKey,
		LanguageDependency: d.LanguageDependency,
		ContentLanguages:   contentLanguages,
		Title:              d.Titles(),
		Source:             models.VideoSource{Platform: "youtube", Channel: d.SourceChannel},
		YouTubeID:          d.YouTubeID,
		DurationLabel:      durationLabel,
		Status:             "approved",
	}
}

// Reset discards all form state, returning the draft to its initial empty shape.
func (d *VideoDraft) Reset() {
	*d = *NewVideoDraft()
}
