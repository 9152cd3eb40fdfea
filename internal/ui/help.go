package ui

// KeyHelp describes one key binding for the help screen
type KeyHelp struct {
	Key         string
	Description string
}

// HelpScreen manages the help display
type HelpScreen struct {
	visible  bool
	bindings []KeyHelp
}

// NewHelpScreen creates a hidden help screen
func NewHelpScreen(bindings []KeyHelp) *HelpScreen {
	return &HelpScreen{bindings: bindings}
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
}

// Hide closes the help screen
func (h *HelpScreen) Hide() {
	h.visible = false
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Lines returns the formatted help text
func (h *HelpScreen) Lines() []string {
	keyWidth := 0
	for _, b := range h.bindings {
		if w := StringWidth(b.Key); w > keyWidth {
			keyWidth = w
		}
	}

	lines := []string{"Keys:", ""}
	for _, b := range h.bindings {
		lines = append(lines, "  "+PadStringToWidth(b.Key, keyWidth)+"  "+b.Description)
	}
	lines = append(lines,
		"",
		"Commands:",
		"",
		"  :q              quit",
		"  :reload         reload the list",
		"  :theme <name>   switch color theme",
		"  :set key=value  change a setting for this session",
		"  :filter <query> filter the list",
		"  :export <file>  write the shown rows as markdown",
		"  :debug          toggle debug logging",
	)
	return lines
}

// Render renders the help screen as a box over the whole screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()

	width, height := screen.GetWidth(), screen.GetHeight()
	for y := 0; y < height; y++ {
		screen.FillLine(0, y, width, contentStyle)
	}

	startX, startY := 2, 1
	boxWidth := width - 4
	bottom := height - 2
	if boxWidth < 10 || bottom-startY < 4 {
		return
	}

	hline := func(y int, left, right rune) {
		screen.SetCell(startX, y, left, borderStyle)
		for i := 1; i < boxWidth-1; i++ {
			screen.SetCell(startX+i, y, '─', borderStyle)
		}
		screen.SetCell(startX+boxWidth-1, y, right, borderStyle)
	}
	sides := func(y int) {
		screen.SetCell(startX, y, '│', borderStyle)
		screen.SetCell(startX+boxWidth-1, y, '│', borderStyle)
	}

	hline(startY, '┌', '┐')
	sides(startY + 1)
	screen.DrawStringLimited(startX+2, startY+1, " Help (? to close) ", boxWidth-4, titleStyle)
	hline(startY+2, '├', '┤')

	y := startY + 3
	for _, line := range h.Lines() {
		if y >= bottom {
			break
		}
		sides(y)
		screen.DrawStringLimited(startX+2, y, line, boxWidth-4, contentStyle)
		y++
	}
	hline(y, '└', '┘')
}
