package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lessonctl/internal/content"
)

// lessonForm holds the editable state of the lesson panel.
//
// Caption inputs are keyed by step identifier, not index, so reordering
// steps carries each caption along with its step.
type lessonForm struct {
	draft      *content.LessonDraft
	titleInput textinput.Model
	captions   map[string]*textinput.Model
	focus      int // 0 = title, 1..N = step captions
	errors     content.LessonErrors
	showErrors bool
}

func newLessonForm() *lessonForm {
	title := textinput.New()
	title.Placeholder = "lesson title"
	title.CharLimit = 120

	f := &lessonForm{
		draft:      content.NewLessonDraft(),
		titleInput: title,
		captions:   make(map[string]*textinput.Model),
	}
	f.sync()
	return f
}

// sync creates caption inputs for steps that lack one and drops inputs for
// steps that no longer exist.
func (f *lessonForm) sync() {
	seen := make(map[string]bool, f.draft.Steps.Len())
	for _, step := range f.draft.Steps.All() {
		seen[step.ID] = true
		if _, ok := f.captions[step.ID]; ok {
			continue
		}
		input := textinput.New()
		input.Placeholder = "caption"
		input.CharLimit = 200
		input.SetValue(step.Caption)
		f.captions[step.ID] = &input
	}
	for id := range f.captions {
		if !seen[id] {
			delete(f.captions, id)
		}
	}
	if max := f.draft.Steps.Len(); f.focus > max {
		f.focus = max
	}
}

// rebuild resets the form state after a successful submission. The draft
// itself was already reset by the submission workflow.
func (f *lessonForm) rebuild() {
	f.titleInput.SetValue("")
	f.captions = make(map[string]*textinput.Model)
	f.focus = 0
	f.errors = content.LessonErrors{}
	f.showErrors = false
	f.sync()
}

func (f *lessonForm) addStep() {
	f.draft.Steps.Append()
	f.sync()
	f.focus = f.draft.Steps.Len()
}

func (f *lessonForm) removeStep(index int) {
	f.draft.Steps.RemoveAt(index)
	f.sync()
}

// focusedStep returns the index of the step under focus, or -1 when the
// title field is focused.
func (f *lessonForm) focusedStep() int {
	return f.focus - 1
}

func (f *lessonForm) cycleFocus(delta int) {
	fields := f.draft.Steps.Len() + 1
	f.focus = (f.focus + delta + fields) % fields
}

func (m *Model) handleLessonKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.lesson

	switch {
	case key.Matches(msg, m.keys.switchTo):
		m.view = VideoFormView
		return m, nil

	case key.Matches(msg, m.keys.logout):
		return m, m.signOut()

	case key.Matches(msg, m.keys.pick):
		m.openCategoryPicker(LessonFormView)
		return m, nil

	case key.Matches(msg, m.keys.next):
		f.cycleFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.prev):
		f.cycleFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.addStep):
		f.addStep()
		return m, nil

	case key.Matches(msg, m.keys.delStep):
		if index := f.focusedStep(); index >= 0 {
			m.deleteIndex = index
			m.deleteReturn = LessonFormView
			m.view = ConfirmDeleteView
		}
		return m, nil

	case key.Matches(msg, m.keys.moveUp):
		if index := f.focusedStep(); index > 0 {
			step := f.draft.Steps.At(index)
			if f.draft.Steps.Move(step.ID, index-1) {
				f.focus--
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.moveDown):
		if index := f.focusedStep(); index >= 0 && index < f.draft.Steps.Len()-1 {
			step := f.draft.Steps.At(index)
			if f.draft.Steps.Move(step.ID, index+1) {
				f.focus++
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.intake):
		return m, m.loadIntake()

	case key.Matches(msg, m.keys.submit):
		f.errors = content.ValidateLesson(f.draft)
		if f.errors.Any() {
			f.showErrors = true
			return m, nil
		}
		f.showErrors = false
		return m, m.startLessonSubmit()
	}

	return m, m.updateLessonInputs(msg)
}

func (m *Model) updateLessonInputs(msg tea.Msg) tea.Cmd {
	f := m.lesson
	var cmd tea.Cmd

	if f.focus == 0 {
		f.titleInput.Focus()
		f.titleInput, cmd = f.titleInput.Update(msg)
		f.draft.SetTitle(f.titleInput.Value())
		return cmd
	}
	f.titleInput.Blur()

	index := f.focusedStep()
	step := f.draft.Steps.At(index)
	if step == nil {
		return nil
	}
	input := f.captions[step.ID]
	if input == nil {
		return nil
	}
	input.Focus()
	updated, cmd := input.Update(msg)
	*input = updated
	f.draft.Steps.SetCaption(index, input.Value())
	return cmd
}

func (m *Model) renderLessonForm() string {
	f := m.lesson
	var b strings.Builder

	b.WriteString(styles.title.Render("Lesson"))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s %s\n", styles.label.Render("Category:"), f.draft.Category))
	b.WriteString(fmt.Sprintf("%s %s", m.fieldMarker(f.focus == 0, "Title:"), f.titleInput.View()))
	if f.showErrors && f.errors.Title {
		b.WriteString("  " + styles.err.Render("required"))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s", styles.label.Render("Slug:"), f.draft.Slug))
	if f.showErrors && f.errors.Slug {
		b.WriteString("  " + styles.err.Render("required"))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s %s", styles.label.Render("Preview:"), imageMarker(len(f.draft.Preview) > 0)))
	if f.showErrors && f.errors.PreviewFile {
		b.WriteString("  " + styles.err.Render("missing"))
	}
	b.WriteString("\n\n")

	b.WriteString(styles.label.Render("Steps"))
	if f.showErrors && f.errors.NoSteps {
		b.WriteString("  " + styles.err.Render("at least one step required"))
	}
	b.WriteString("\n")

	for i, step := range f.draft.Steps.All() {
		input := f.captions[step.ID]
		caption := step.Caption
		if input != nil {
			caption = input.View()
		}
		b.WriteString(fmt.Sprintf("%s %s %s",
			m.fieldMarker(f.focus == i+1, fmt.Sprintf("%2d.", i+1)),
			imageMarker(step.HasImage()),
			caption,
		))
		if f.showErrors && i < len(f.errors.Steps) && f.errors.Steps[i] {
			b.WriteString("  " + styles.err.Render("incomplete"))
		}
		b.WriteString("\n")
	}

	if m.intakeNotice != "" {
		b.WriteString("\n" + styles.warn.Render(m.intakeNotice) + "\n")
	}

	helpKeys := []key.Binding{
		m.keys.next, m.keys.addStep, m.keys.delStep, m.keys.moveUp, m.keys.moveDown,
		m.keys.intake, m.keys.pick, m.keys.submit, m.keys.switchTo, m.keys.logout,
	}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) fieldMarker(focused bool, label string) string {
	if focused {
		return styles.ok.Render("> " + label)
	}
	return "  " + label
}

func imageMarker(has bool) string {
	if has {
		return styles.ok.Render("[img]")
	}
	return styles.help.Render("[   ]")
}
