package ui

import (
	"fmt"
	"time"
)

// NavigationBar draws the screen title and the tab strip
type NavigationBar struct {
	tabs      []string
	current   int
	changedAt time.Time
	forward   bool
}

// NewNavigationBar creates a bar with the given tab titles
func NewNavigationBar(tabs ...string) *NavigationBar {
	return &NavigationBar{tabs: tabs}
}

// SetCurrent marks tab index as selected. forward tells which way the
// transition went, for the slide marker.
func (n *NavigationBar) SetCurrent(index int, forward bool) {
	if index < 0 || index >= len(n.tabs) {
		return
	}
	n.current = index
	n.forward = forward
	n.changedAt = time.Now()
}

// Current returns the selected tab index
func (n *NavigationBar) Current() int {
	return n.current
}

// Render draws the title on row y and the tabs on row y+1
func (n *NavigationBar) Render(screen *Screen, y int, title string) {
	width := screen.GetWidth()
	screen.FillLine(0, y, width, screen.BackgroundStyle())
	screen.FillLine(0, y+1, width, screen.BackgroundStyle())
	screen.DrawStringLimited(1, y, title, width-2, screen.HeaderStyle())

	x := 1
	for i, tab := range n.tabs {
		label := fmt.Sprintf(" %d %s ", i+1, tab)
		style := screen.TabInactiveStyle()
		if i == n.current {
			style = screen.TabActiveStyle()
		}
		x += screen.DrawString(x, y+1, label, style)
		x++
	}

	// A short arrow shows the direction of the last switch
	if !n.changedAt.IsZero() && time.Since(n.changedAt) < 400*time.Millisecond {
		arrow := "→"
		if !n.forward {
			arrow = "←"
		}
		screen.DrawString(x+1, y+1, arrow, screen.TabActiveStyle())
	}
}
