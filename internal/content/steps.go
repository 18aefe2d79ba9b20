package content

import (
	"github.com/desertthunder/lessonctl/internal/shared"
)

// Step is one captioned image entry in a lesson draft.
//
// ID is an opaque stable identifier assigned at creation time. Reordering and
// async image previews key off the ID, never the position: a prior variant of
// the lesson form used the array index as the drag identifier, which detached
// previews from their entries once the list was edited concurrently.
type Step struct {
	ID       string
	Caption  string
	Image    []byte
	Filename string
}

// HasImage reports whether the step's image slot is filled.
func (s *Step) HasImage() bool {
	return len(s.Image) > 0
}

// StepList is the ordered, mutable collection of steps backing the lesson form.
//
// Entries live in an arena keyed by identifier; order is a separate slice of
// identifier references.
type StepList struct {
	steps map[string]*Step
	order []string
}

// NewStepList creates an empty StepList.
func NewStepList() *StepList {
	return &StepList{steps: make(map[string]*Step)}
}

// Len returns the number of steps.
func (l *StepList) Len() int {
	return len(l.order)
}

// Append adds a new step with a fresh identifier, empty caption, and no image,
// returning the created entry.
func (l *StepList) Append() *Step {
	step := &Step{ID: shared.GenerateID()}
	l.steps[step.ID] = step
	l.order = append(l.order, step.ID)
	return step
}

// At returns the step at position index, or nil when out of range.
func (l *StepList) At(index int) *Step {
	if index < 0 || index >= len(l.order) {
		return nil
	}
	return l.steps[l.order[index]]
}

// Get returns the step with the given identifier, or nil when absent.
func (l *StepList) Get(id string) *Step {
	return l.steps[id]
}

// IndexOf returns the position of the step with the given identifier, or -1.
func (l *StepList) IndexOf(id string) int {
	for i, stepID := range l.order {
		if stepID == id {
			return i
		}
	}
	return -1
}

// All returns the steps in display order.
func (l *StepList) All() []*Step {
	steps := make([]*Step, len(l.order))
	for i, id := range l.order {
		steps[i] = l.steps[id]
	}
	return steps
}

// RemoveAt deletes the step at position index.
//
// Callers are expected to confirm with the user before removal.
func (l *StepList) RemoveAt(index int) bool {
	if index < 0 || index >= len(l.order) {
		return false
	}

	id := l.order[index]
	delete(l.steps, id)
	l.order = append(l.order[:index], l.order[index+1:]...)
	return true
}

// Move repositions the step with the given identifier to target, preserving
// the relative order of every other entry. Reordering is identity-driven so
// the entry keeps its caption and image regardless of position.
func (l *StepList) Move(id string, target int) bool {
	src := l.IndexOf(id)
	if src < 0 || target < 0 || target >= len(l.order) {
		return false
	}
	if src == target {
		return true
	}

	l.order = append(l.order[:src], l.order[src+1:]...)

	rest := make([]string, 0, len(l.order)+1)
	rest = append(rest, l.order[:target]...)
	rest = append(rest, id)
	rest = append(rest, l.order[target:]...)
	l.order = rest
	return true
}

// MoveIndex resolves the step at sourceIndex to its identifier and delegates to [StepList.Move].
func (l *StepList) MoveIndex(sourceIndex, targetIndex int) bool {
	step := l.At(sourceIndex)
	if step == nil {
		return false
	}
	return l.Move(step.ID, targetIndex)
}

// SetCaption updates the caption of the step at position index.
func (l *StepList) SetCaption(index int, caption string) bool {
	step := l.At(index)
	if step == nil {
		return false
	}
	step.Caption = caption
	return true
}

// SetImage updates the image of the step at position index.
func (l *StepList) SetImage(index int, image []byte, filename string) bool {
	step := l.At(index)
	if step == nil {
		return false
	}
	step.Image = image
	step.Filename = filename
	return true
}
