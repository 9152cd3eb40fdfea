package ui

import (
	"github.com/gdamore/tcell/v2"
)

// PromptAction tells the caller what a key did to a prompt
type PromptAction int

const (
	// PromptContinue means the prompt is still being edited
	PromptContinue PromptAction = iota
	// PromptSubmit means Enter was pressed
	PromptSubmit
	// PromptCancel means Escape was pressed, or Backspace on an empty line
	PromptCancel
)

// LineInput is a single line text field. The cursor is a rune index.
type LineInput struct {
	text   []rune
	cursor int
}

// SetText replaces the text and moves the cursor to the end
func (l *LineInput) SetText(s string) {
	l.text = []rune(s)
	l.cursor = len(l.text)
}

// Text returns the current text
func (l *LineInput) Text() string {
	return string(l.text)
}

// Cursor returns the cursor position in runes
func (l *LineInput) Cursor() int {
	return l.cursor
}

// HandleKey edits the line
func (l *LineInput) HandleKey(ev *tcell.EventKey) PromptAction {
	switch ev.Key() {
	case tcell.KeyEscape:
		return PromptCancel
	case tcell.KeyEnter:
		return PromptSubmit
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(l.text) == 0 {
			return PromptCancel
		}
		if l.cursor > 0 {
			l.text = append(l.text[:l.cursor-1], l.text[l.cursor:]...)
			l.cursor--
		}
	case tcell.KeyDelete:
		if l.cursor < len(l.text) {
			l.text = append(l.text[:l.cursor], l.text[l.cursor+1:]...)
		}
	case tcell.KeyLeft:
		if l.cursor > 0 {
			l.cursor--
		}
	case tcell.KeyRight:
		if l.cursor < len(l.text) {
			l.cursor++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		l.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		l.cursor = len(l.text)
	case tcell.KeyCtrlU:
		l.text = append([]rune(nil), l.text[l.cursor:]...)
		l.cursor = 0
	case tcell.KeyCtrlK:
		l.text = l.text[:l.cursor]
	case tcell.KeyCtrlW:
		l.deleteWordBackwards()
	case tcell.KeyRune:
		r := ev.Rune()
		l.text = append(l.text[:l.cursor], append([]rune{r}, l.text[l.cursor:]...)...)
		l.cursor++
	}
	return PromptContinue
}

func (l *LineInput) deleteWordBackwards() {
	pos := l.cursor
	for pos > 0 && l.text[pos-1] == ' ' {
		pos--
	}
	for pos > 0 && l.text[pos-1] != ' ' {
		pos--
	}
	l.text = append(l.text[:pos], l.text[l.cursor:]...)
	l.cursor = pos
}

// Render draws label and text on row y, scrolling so the cursor stays visible
func (l *LineInput) Render(screen *Screen, y int, label string) {
	width := screen.GetWidth()
	labelStyle := screen.PromptLabelStyle()
	textStyle := screen.PromptTextStyle()
	cursorStyle := screen.PromptCursorStyle()

	screen.FillLine(0, y, width, textStyle)
	x := screen.DrawString(0, y, label, labelStyle)
	avail := width - x - 1
	if avail <= 0 {
		return
	}

	// Skip leading runes until the cursor fits
	start := 0
	for ColumnOf(l.text[start:], l.cursor-start) > avail {
		start++
	}

	col := x
	for i := start; i < len(l.text); i++ {
		w := RuneWidth(l.text[i])
		if col+w > width {
			break
		}
		style := textStyle
		if i == l.cursor {
			style = cursorStyle
		}
		screen.SetCell(col, y, l.text[i], style)
		col += w
	}
	if l.cursor == len(l.text) {
		screen.SetCell(x+ColumnOf(l.text[start:], l.cursor-start), y, ' ', cursorStyle)
	}
}
