package ui

import (
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/microqrart/internal/history"
)

const commandHistorySize = 50

// CommandMode manages command line input (`:command`)
type CommandMode struct {
	active  bool
	input   LineInput
	history *History
}

// NewCommandMode creates a command line without history persistence
func NewCommandMode() *CommandMode {
	return &CommandMode{history: NewHistory(commandHistorySize)}
}

// NewCommandModeWithHistory creates a command line whose history is kept in
// command.toml
func NewCommandModeWithHistory(manager *history.Manager) *CommandMode {
	h, err := NewHistoryWithManager(commandHistorySize, manager, "command.toml")
	if err != nil {
		log.Printf("Failed to load command history: %v", err)
	}
	return &CommandMode{history: h}
}

// Start enters command mode
func (c *CommandMode) Start() {
	c.active = true
	c.input.SetText("")
	c.history.Reset()
}

// Stop exits command mode
func (c *CommandMode) Stop() {
	c.active = false
}

// IsActive returns whether command mode is active
func (c *CommandMode) IsActive() bool {
	return c.active
}

// HandleKey processes a key press in command mode. done is true when the
// command line closed; command is empty when it was cancelled.
func (c *CommandMode) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		if prev, ok := c.history.Previous(c.input.Text()); ok {
			c.input.SetText(prev)
		}
		return "", false
	case tcell.KeyDown:
		if next, ok := c.history.Next(); ok {
			c.input.SetText(next)
		}
		return "", false
	}

	switch c.input.HandleKey(ev) {
	case PromptSubmit:
		cmd := strings.TrimSpace(c.input.Text())
		c.history.Add(cmd)
		c.Stop()
		return cmd, true
	case PromptCancel:
		c.Stop()
		return "", true
	}
	return "", false
}

// GetInput returns the current command input
func (c *CommandMode) GetInput() string {
	return strings.TrimSpace(c.input.Text())
}

// Render renders the command line
func (c *CommandMode) Render(screen *Screen, y int) {
	if !c.active {
		return
	}
	c.input.Render(screen, y, ":")
}
