package app

import (
	"github.com/pstuifzand/microqrart/internal/ui"
	"github.com/pstuifzand/microqrart/internal/viewmodel"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Description string
	// ListOnly bindings act on the list and are ignored on the home tab
	ListOnly bool
	Handler  func(*App)
}

// InitializeKeybindings sets up all the key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         'j',
			Description: "Move down",
			ListOnly:    true,
			Handler: func(app *App) {
				app.list.MoveDown()
			},
		},
		{
			Key:         'k',
			Description: "Move up",
			ListOnly:    true,
			Handler: func(app *App) {
				app.list.MoveUp()
			},
		},
		{
			Key:         'g',
			Description: "Go to first row",
			ListOnly:    true,
			Handler: func(app *App) {
				app.list.Select(0)
			},
		},
		{
			Key:         'G',
			Description: "Go to last row",
			ListOnly:    true,
			Handler: func(app *App) {
				app.list.Select(app.list.Len() - 1)
			},
		},
		{
			Key:         'd',
			Description: "Delete QR code",
			ListOnly:    true,
			Handler: func(app *App) {
				app.deleteSelected()
			},
		},
		{
			Key:         'e',
			Description: "Edit title",
			ListOnly:    true,
			Handler: func(app *App) {
				app.editSelected()
			},
		},
		{
			Key:         'r',
			Description: "Reload",
			Handler: func(app *App) {
				app.reload()
			},
		},
		{
			Key:         '/',
			Description: "Filter",
			ListOnly:    true,
			Handler: func(app *App) {
				app.filter.Start()
			},
		},
		{
			Key:         'h',
			Description: "Previous tab",
			Handler: func(app *App) {
				app.rootVM.Prev()
			},
		},
		{
			Key:         'l',
			Description: "Next tab",
			Handler: func(app *App) {
				app.rootVM.Next()
			},
		},
		{
			Key:         '1',
			Description: "Home tab",
			Handler: func(app *App) {
				app.rootVM.DidTap(viewmodel.TabHome)
			},
		},
		{
			Key:         '2',
			Description: "Profile tab",
			Handler: func(app *App) {
				app.rootVM.DidTap(viewmodel.TabProfile)
			},
		},
		{
			Key:         '?',
			Description: "Toggle help",
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
		{
			Key:         ':',
			Description: "Command line",
			Handler: func(app *App) {
				app.command.Start()
			},
		},
		{
			Key:         'q',
			Description: "Quit",
			Handler: func(app *App) {
				app.Quit()
			},
		},
	}
}

// GetKeybindingByKey returns the binding for key, or nil
func (a *App) GetKeybindingByKey(key rune) *KeyBinding {
	for i := range a.keybindings {
		if a.keybindings[i].Key == key {
			return &a.keybindings[i]
		}
	}
	return nil
}

// helpEntries lists the bindings for the help screen
func helpEntries(bindings []KeyBinding) []ui.KeyHelp {
	entries := make([]ui.KeyHelp, 0, len(bindings)+3)
	for _, kb := range bindings {
		entries = append(entries, ui.KeyHelp{Key: string(kb.Key), Description: kb.Description})
	}
	return append(entries,
		ui.KeyHelp{Key: "↑/↓", Description: "Move (alternative to j/k)"},
		ui.KeyHelp{Key: "←/→", Description: "Switch tabs (alternative to h/l)"},
		ui.KeyHelp{Key: "Esc", Description: "Close prompt or clear filter"},
	)
}
