package app

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pstuifzand/microqrart/internal/export"
	"github.com/pstuifzand/microqrart/internal/model"
	"github.com/pstuifzand/microqrart/internal/theme"
)

// parseCommand splits a command line into words. Single or double quotes
// group words and a backslash escapes the next character.
func parseCommand(input string) []string {
	var parts []string
	var current strings.Builder
	var quote rune
	inWord := false
	escaped := false

	for _, r := range input {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				parts = append(parts, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, current.String())
	}
	return parts
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "q", "quit":
		a.Quit()
	case "reload":
		a.reload()
	case "theme":
		if len(parts) < 2 {
			a.SetStatus("Theme: " + a.screen.Theme.Name)
			return
		}
		a.setTheme(parts[1])
	case "set":
		a.handleSet(parts[1:])
	case "filter":
		a.filter.SetQuery(strings.Join(parts[1:], " "))
		if err := a.filter.Err(); err != nil {
			a.SetError("Invalid filter: " + err.Error())
			return
		}
		a.applyFilter()
	case "export":
		if len(parts) < 2 {
			a.SetError("Usage: export <file.md>")
			return
		}
		a.exportMarkdown(parts[1])
	case "help":
		a.help.Toggle()
	case "messages":
		for _, msg := range a.messages.GetMessages() {
			log.Printf("[%s] %s", msg.Timestamp.Format(time.TimeOnly), msg.Text)
		}
		a.SetStatus(fmt.Sprintf("%d messages written to the log", a.messages.Count()))
	case "debug":
		a.SetDebugMode(!a.debugMode)
		if a.debugMode {
			a.SetStatus("Debug mode ON")
		} else {
			a.SetStatus("Debug mode OFF")
		}
	default:
		a.SetError("Unknown command: " + parts[0])
	}
}

// exportMarkdown writes the rows currently shown, so an active filter
// narrows the export
func (a *App) exportMarkdown(path string) {
	var rows model.List
	for _, section := range a.list.Sections() {
		rows = append(rows, section.Items...)
	}
	if err := export.ExportToMarkdown(rows, listTitle, path); err != nil {
		a.SetError(err.Error())
		return
	}
	a.SetStatus(fmt.Sprintf("Exported %d QR codes to %s", len(rows), path))
}

func (a *App) setTheme(name string) {
	t, err := theme.LoadTheme(name)
	if err != nil {
		a.SetError(fmt.Sprintf("Failed to load theme %s: %v", name, err))
		return
	}
	a.screen.Theme = t
	a.cfg.Set("theme", name)
	a.SetStatus("Theme: " + t.Name)
}

// handleSet applies `set key=value` (or `set key value`) for this session.
// With no arguments it lists the settings.
func (a *App) handleSet(args []string) {
	if len(args) == 0 {
		var pairs []string
		for k, v := range a.cfg.GetAll() {
			pairs = append(pairs, k+"="+v)
		}
		sort.Strings(pairs)
		a.SetStatus(strings.Join(pairs, " "))
		return
	}

	key, value, ok := strings.Cut(args[0], "=")
	if !ok {
		if len(args) < 2 {
			a.SetStatus(fmt.Sprintf("%s=%s", key, a.cfg.Get(key)))
			return
		}
		value = args[1]
	}

	switch key {
	case "highlight_ms":
		ms, err := strconv.Atoi(value)
		if err != nil || ms < 0 {
			a.SetError("highlight_ms must be a non-negative number")
			return
		}
		a.list.SetHighlightDuration(time.Duration(ms) * time.Millisecond)
	case "debug":
		a.SetDebugMode(value == "true")
	}

	a.cfg.Set(key, value)
	a.SetStatus(fmt.Sprintf("%s=%s", key, value))
}
