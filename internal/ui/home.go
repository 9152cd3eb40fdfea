package ui

import (
	"fmt"
)

// HomeScreen is the content of the home tab: a centered welcome block with
// the number of stored QR codes
type HomeScreen struct {
	title string
	count int
}

// NewHomeScreen creates the home tab content
func NewHomeScreen(title string) *HomeScreen {
	return &HomeScreen{title: title}
}

// SetCount updates the number of QR codes shown
func (h *HomeScreen) SetCount(count int) {
	h.count = count
}

// GetContent returns the lines to display
func (h *HomeScreen) GetContent() []string {
	codes := fmt.Sprintf("%d QR codes", h.count)
	if h.count == 1 {
		codes = "1 QR code"
	}
	return []string{
		"~~ " + h.title + " ~~",
		"",
		codes,
		"",
		"",
		"Commands:",
		"2 or l       - Open My QR codes",
		":reload      - Fetch the list again",
		":export file - Write the list as markdown",
		"?            - Show keybindings",
		"q            - Quit",
	}
}

// Render draws the block centered in the rows [top, top+height)
func (h *HomeScreen) Render(screen *Screen, top, height int) {
	textStyle := screen.HeaderStyle()
	dimStyle := screen.RowSourceStyle()

	content := h.GetContent()

	maxWidth := 0
	for _, line := range content {
		if w := StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}

	startY := top + (height-len(content))/2
	if startY < top {
		startY = top
	}
	startX := (screen.GetWidth() - maxWidth) / 2
	if startX < 0 {
		startX = 0
	}

	for i, line := range content {
		y := startY + i
		if y >= top+height {
			break
		}
		if i == 0 {
			// Title is centered on its own
			screen.DrawString((screen.GetWidth()-StringWidth(line))/2, y, line, textStyle)
			continue
		}
		screen.DrawString(startX, y, line, dimStyle)
	}
}
