package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/microqrart/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates and initializes a terminal screen using t
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFrom(tcellScreen, t)
}

// NewScreenFrom wraps an existing tcell screen, initializing it. Tests pass
// a simulation screen here.
func NewScreenFrom(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.MicroQRArt()
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear fills the screen with the theme background
func (s *Screen) Clear() {
	s.tcellScreen.SetStyle(s.BackgroundStyle())
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws text at the given position and returns the number of
// columns used. Wide runes take two columns.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	col := x
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(col, y, r, style)
		col += w
	}
	return col - x
}

// DrawStringLimited draws text truncated to maxWidth columns
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	return s.DrawString(x, y, TruncateToWidthWithEllipsis(text, maxWidth), style)
}

// FillLine paints columns [x, x+width) of row y with style
func (s *Screen) FillLine(x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		s.SetCell(x+i, y, ' ', style)
	}
}

// PollEvent polls for the next event (key press, resize, interrupt)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// PostEvent queues an event for PollEvent
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.tcellScreen.PostEvent(ev)
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync refreshes the size after a resize
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
	s.Size()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// Theme-aware style methods

// BackgroundStyle returns the default background style for the application
func (s *Screen) BackgroundStyle() tcell.Style {
	return tcell.StyleDefault.Background(s.Theme.Colors.Background)
}

// HeaderStyle returns the style for the screen title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HeaderTitle, s.Theme.Colors.Background).Bold(true)
}

// TabActiveStyle returns the style for the selected tab
func (s *Screen) TabActiveStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TabActive, s.Theme.Colors.Background).Bold(true).Underline(true)
}

// TabInactiveStyle returns the style for the other tabs
func (s *Screen) TabInactiveStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TabInactive, s.Theme.Colors.Background)
}

// RowTitleStyle returns the style for a row title
func (s *Screen) RowTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.RowTitle, s.Theme.Colors.Background).Bold(true)
}

// RowSourceStyle returns the style for a row source URL
func (s *Screen) RowSourceStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.RowSource, s.Theme.Colors.Background)
}

// RowDateStyle returns the style for a row date label
func (s *Screen) RowDateStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.RowDate, s.Theme.Colors.Background).Dim(true)
}

// RowSelectedStyle returns the style for the selected row
func (s *Screen) RowSelectedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.RowSelected, s.Theme.Colors.RowSelectedBg).Bold(true)
}

// RowHighlightStyle returns the style for a row that just changed. progress
// runs from 0 (just changed) to 1 (faded out).
func (s *Screen) RowHighlightStyle(highlight tcell.Color, progress float64) tcell.Style {
	bg := theme.Blend(highlight, s.Theme.Colors.Background, progress)
	return theme.ColorPairToStyle(s.Theme.Colors.RowTitle, bg)
}

// SeparatorStyle returns the style for row separators
func (s *Screen) SeparatorStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Separator, s.Theme.Colors.Background)
}

// ImageStyle returns the style for thumbnail cells
func (s *Screen) ImageStyle(loaded bool) tcell.Style {
	if loaded {
		return theme.ColorPairToStyle(s.Theme.Colors.ImageLoaded, s.Theme.Colors.Background)
	}
	return theme.ColorPairToStyle(s.Theme.Colors.ImagePlaceholder, s.Theme.Colors.Background)
}

// PromptLabelStyle returns the style for prompt labels
func (s *Screen) PromptLabelStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.PromptLabel, s.Theme.Colors.Background).Bold(true)
}

// PromptTextStyle returns the style for prompt input
func (s *Screen) PromptTextStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.PromptText, s.Theme.Colors.Background)
}

// PromptCursorStyle returns the style for the prompt cursor
func (s *Screen) PromptCursorStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Background, s.Theme.Colors.PromptCursor)
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusMessage, s.Theme.Colors.Background)
}

// StatusErrorStyle returns the style for error messages
func (s *Screen) StatusErrorStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusError, s.Theme.Colors.Background).Bold(true)
}
