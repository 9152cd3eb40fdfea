package ui

import (
	"github.com/gdamore/tcell/v2"
)

// Editor is the title prompt opened for a row
type Editor struct {
	input  LineInput
	index  int
	id     string
	active bool
}

// NewEditor creates an inactive editor
func NewEditor() *Editor {
	return &Editor{index: -1}
}

// Start opens the editor for the row at index holding record id
func (e *Editor) Start(index int, id, title string) {
	e.active = true
	e.index = index
	e.id = id
	e.input.SetText(title)
}

// Stop closes the editor
func (e *Editor) Stop() {
	e.active = false
}

// IsActive returns whether the editor is active
func (e *Editor) IsActive() bool {
	return e.active
}

// Index returns the row the editor was opened for
func (e *Editor) Index() int {
	return e.index
}

// ID returns the record id the editor was opened for
func (e *Editor) ID() string {
	return e.id
}

// Text returns the title being edited
func (e *Editor) Text() string {
	return e.input.Text()
}

// HandleKey handles a key press while editing. Submit and cancel close the
// editor; the caller reads Text after a submit.
func (e *Editor) HandleKey(ev *tcell.EventKey) PromptAction {
	if !e.active {
		return PromptCancel
	}

	// Backspace on an empty title keeps editing so the title can be retyped
	if (ev.Key() == tcell.KeyBackspace || ev.Key() == tcell.KeyBackspace2) && e.input.Text() == "" {
		return PromptContinue
	}

	action := e.input.HandleKey(ev)
	if action != PromptContinue {
		e.Stop()
	}
	return action
}

// Render draws the editor on row y
func (e *Editor) Render(screen *Screen, y int) {
	if !e.active {
		return
	}
	e.input.Render(screen, y, "Title: ")
}
