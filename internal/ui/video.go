package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lessonctl/internal/content"
)

// videoField enumerates the focusable rows of the video panel, top to bottom.
type videoField int

const (
	videoURLField videoField = iota
	videoFormatField
	videoCategoryField
	videoDependencyField
	videoLanguageField
	videoTitleRUField
	videoTitleHEField
	videoTitleENField
	videoChannelField
	videoDurationField
	videoFieldCount
)

// videoForm holds the editable state of the video panel.
type videoForm struct {
	draft         *content.VideoDraft
	urlInput      textinput.Model
	titleRUInput  textinput.Model
	titleHEInput  textinput.Model
	titleENInput  textinput.Model
	channelInput  textinput.Model
	durationInput textinput.Model
	focus         videoField
	errors        content.VideoErrors
	showErrors    bool
}

func newVideoForm() *videoForm {
	newInput := func(placeholder string, limit int) textinput.Model {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = limit
		return input
	}

	return &videoForm{
		draft:         content.NewVideoDraft(),
		urlInput:      newInput("youtube url or iframe embed", 500),
		titleRUInput:  newInput("название", 200),
		titleHEInput:  newInput("כותרת", 200),
		titleENInput:  newInput("title", 200),
		channelInput:  newInput("channel name", 120),
		durationInput: newInput("mm:ss", 5),
	}
}

// rebuild resets the form after a successful submission. The draft itself
// was already reset by the submission workflow.
func (f *videoForm) rebuild() {
	for _, input := range f.textInputs() {
		input.SetValue("")
	}
	f.focus = videoURLField
	f.errors = content.VideoErrors{}
	f.showErrors = false
}

func (f *videoForm) textInputs() []*textinput.Model {
	return []*textinput.Model{
		&f.urlInput, &f.titleRUInput, &f.titleHEInput,
		&f.titleENInput, &f.channelInput, &f.durationInput,
	}
}

// focusedInput returns the text input behind the focused row, or nil when a
// selector row is focused.
func (f *videoForm) focusedInput() *textinput.Model {
	switch f.focus {
	case videoURLField:
		return &f.urlInput
	case videoTitleRUField:
		return &f.titleRUInput
	case videoTitleHEField:
		return &f.titleHEInput
	case videoTitleENField:
		return &f.titleENInput
	case videoChannelField:
		return &f.channelInput
	case videoDurationField:
		return &f.durationInput
	default:
		return nil
	}
}

func (f *videoForm) cycleFocus(delta int) {
	count := int(videoFieldCount)
	next := (int(f.focus) + delta + count) % count
	f.focus = videoField(next)
	if f.hiddenField(f.focus) {
		f.cycleFocus(delta)
	}
}

// hiddenField reports whether the row for field is omitted from the form:
// shorts carry no duration label and visual videos no content language.
func (f *videoForm) hiddenField(field videoField) bool {
	switch field {
	case videoDurationField:
		return f.draft.Format != content.FormatVideo
	case videoLanguageField:
		return f.draft.LanguageDependency == content.DependencyVisual
	default:
		return false
	}
}

// cycleSelector advances the value of the focused selector row.
func (f *videoForm) cycleSelector() {
	switch f.focus {
	case videoFormatField:
		if f.draft.Format == content.FormatVideo {
			f.draft.Format = content.FormatShort
		} else {
			f.draft.Format = content.FormatVideo
		}
	case videoDependencyField:
		if f.draft.LanguageDependency == content.DependencySpoken {
			f.draft.LanguageDependency = content.DependencyVisual
		} else {
			f.draft.LanguageDependency = content.DependencySpoken
		}
	case videoLanguageField:
		for i, lang := range content.ContentLanguages {
			if lang == f.draft.ContentLanguage {
				f.draft.ContentLanguage = content.ContentLanguages[(i+1)%len(content.ContentLanguages)]
				return
			}
		}
		f.draft.ContentLanguage = content.ContentLanguages[0]
	}
}

func (m *Model) handleVideoKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.video

	switch {
	case key.Matches(msg, m.keys.switchTo):
		m.view = LessonFormView
		return m, nil

	case key.Matches(msg, m.keys.logout):
		return m, m.signOut()

	case key.Matches(msg, m.keys.pick):
		m.openCategoryPicker(VideoFormView)
		return m, nil

	case key.Matches(msg, m.keys.next):
		f.cycleFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.prev):
		f.cycleFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.toggle):
		f.cycleSelector()
		return m, nil

	case key.Matches(msg, m.keys.enter):
		switch f.focus {
		case videoURLField:
			f.draft.Parse()
			return m, nil
		case videoCategoryField:
			m.openCategoryPicker(VideoFormView)
			return m, nil
		case videoFormatField, videoDependencyField, videoLanguageField:
			f.cycleSelector()
			return m, nil
		}

	case key.Matches(msg, m.keys.submit):
		f.errors = content.ValidateVideo(f.draft)
		if f.errors.Any() {
			f.showErrors = true
			return m, nil
		}
		f.showErrors = false
		return m, m.startVideoSubmit()
	}

	return m, m.updateVideoInputs(msg)
}

func (m *Model) updateVideoInputs(msg tea.Msg) tea.Cmd {
	f := m.video
	input := f.focusedInput()
	if input == nil {
		return nil
	}

	for _, other := range f.textInputs() {
		if other != input {
			other.Blur()
		}
	}
	input.Focus()

	updated, cmd := input.Update(msg)
	*input = updated

	switch f.focus {
	case videoURLField:
		f.draft.SetURL(input.Value())
	case videoTitleRUField:
		f.draft.TitleRU = input.Value()
	case videoTitleHEField:
		f.draft.TitleHE = input.Value()
	case videoTitleENField:
		f.draft.TitleEN = input.Value()
	case videoChannelField:
		f.draft.SourceChannel = input.Value()
	case videoDurationField:
		f.draft.SetDurationLabel(input.Value())
		if f.draft.DurationLabel != input.Value() {
			input.SetValue(f.draft.DurationLabel)
		}
	}
	return cmd
}

func (m *Model) renderVideoForm() string {
	f := m.video
	var b strings.Builder

	b.WriteString(styles.title.Render("Video"))
	b.WriteString("\n")

	parsed := styles.help.Render("not parsed")
	if f.draft.YouTubeID != "" {
		parsed = styles.ok.Render(f.draft.YouTubeID)
	}

	writeRow := func(field videoField, label, value string, flagged bool, hint string) {
		b.WriteString(fmt.Sprintf("%s %s", m.fieldMarker(f.focus == field, label), value))
		if f.showErrors && flagged {
			b.WriteString("  " + styles.err.Render(hint))
		}
		b.WriteString("\n")
	}

	writeRow(videoURLField, "URL:", f.urlInput.View(), false, "")
	b.WriteString(fmt.Sprintf("  %s %s", styles.label.Render("Parsed:"), parsed))
	if f.showErrors && f.errors.YouTubeRef {
		b.WriteString("  " + styles.err.Render("parse a valid reference first"))
	}
	b.WriteString("\n")

	writeRow(videoFormatField, "Format:", f.draft.Format, false, "")
	writeRow(videoCategoryField, "Category:", f.draft.CategoryKey, f.errors.Category, "required")
	writeRow(videoDependencyField, "Language dep:", f.draft.LanguageDependency, false, "")
	if f.draft.LanguageDependency == content.DependencySpoken {
		writeRow(videoLanguageField, "Content lang:", f.draft.ContentLanguage, f.errors.ContentLanguage, "required")
	}

	writeRow(videoTitleRUField, "Title (ru):", f.titleRUInput.View(), f.errors.Titles, "at least one title")
	writeRow(videoTitleHEField, "Title (he):", f.titleHEInput.View(), false, "")
	writeRow(videoTitleENField, "Title (en):", f.titleENInput.View(), false, "")
	writeRow(videoChannelField, "Channel:", f.channelInput.View(), f.errors.SourceChannel, "required")
	if f.draft.Format == content.FormatVideo {
		writeRow(videoDurationField, "Duration:", f.durationInput.View(), f.errors.DurationLabel, "mm:ss")
	}

	helpKeys := []key.Binding{
		m.keys.next, m.keys.enter, m.keys.toggle, m.keys.pick,
		m.keys.submit, m.keys.switchTo, m.keys.logout,
	}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}
