package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
//
// Form screens accept free text, so every editing action binds a ctrl
// chord rather than a bare letter.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	yes      key.Binding
	no       key.Binding
	restart  key.Binding
	next     key.Binding
	prev     key.Binding
	switchTo key.Binding
	addStep  key.Binding
	delStep  key.Binding
	moveUp   key.Binding
	moveDown key.Binding
	intake   key.Binding
	pick     key.Binding
	toggle   key.Binding
	submit   key.Binding
	logout   key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		restart:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new record")),
		next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		switchTo: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "switch panel")),
		addStep:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add step")),
		delStep:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete step")),
		moveUp:   key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "move step up")),
		moveDown: key.NewBinding(key.WithKeys("ctrl+j"), key.WithHelp("ctrl+j", "move step down")),
		intake:   key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "load images")),
		pick:     key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "pick category")),
		toggle:   key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "toggle")),
		submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		logout:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "sign out")),
		quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.switchTo},
		{k.addStep, k.delStep, k.moveUp, k.moveDown},
		{k.intake, k.pick, k.submit},
		{k.logout, k.quit},
	}
}
