package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Palette holds the five brand colors every role color is derived from
type Palette struct {
	Background       tcell.Color
	PrimaryContent   tcell.Color
	Content          tcell.Color
	SecondaryContent tcell.Color
	SubtleContent    tcell.Color
}

// Colors holds all the color definitions for the theme
type Colors struct {
	Background tcell.Color

	// Header and navigation colors
	HeaderTitle tcell.Color
	TabActive   tcell.Color
	TabInactive tcell.Color

	// List row colors
	RowTitle      tcell.Color
	RowSource     tcell.Color
	RowDate       tcell.Color
	RowSelected   tcell.Color
	RowSelectedBg tcell.Color
	RowInserted   tcell.Color
	RowUpdated    tcell.Color
	Separator     tcell.Color

	// Image thumbnail colors
	ImageLoaded      tcell.Color
	ImagePlaceholder tcell.Color

	// Prompt colors (edit title, filter, command line)
	PromptLabel  tcell.Color
	PromptText   tcell.Color
	PromptCursor tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line colors
	StatusMessage tcell.Color
	StatusError   tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// FromPalette derives every role color from a palette
func FromPalette(name string, p Palette) *Theme {
	return &Theme{
		Name: name,
		Colors: Colors{
			Background:       p.Background,
			HeaderTitle:      p.PrimaryContent,
			TabActive:        p.PrimaryContent,
			TabInactive:      p.SecondaryContent,
			RowTitle:         p.Content,
			RowSource:        p.SecondaryContent,
			RowDate:          p.SecondaryContent,
			RowSelected:      p.Content,
			RowSelectedBg:    p.SubtleContent,
			RowInserted:      p.PrimaryContent,
			RowUpdated:       HexToColor("#e0af68"),
			Separator:        p.SubtleContent,
			ImageLoaded:      p.PrimaryContent,
			ImagePlaceholder: p.SubtleContent,
			PromptLabel:      p.PrimaryContent,
			PromptText:       p.Content,
			PromptCursor:     p.PrimaryContent,
			HelpBackground:   p.Background,
			HelpBorder:       p.PrimaryContent,
			HelpTitle:        p.PrimaryContent,
			HelpContent:      p.Content,
			StatusMessage:    p.SecondaryContent,
			StatusError:      HexToColor("#f7768e"),
		},
	}
}

// MicroQRArt returns the built-in green-on-dark theme of the app
func MicroQRArt() *Theme {
	return FromPalette("microqrart", Palette{
		Background:       HexToColor("#172112"), // Deep forest
		PrimaryContent:   HexToColor("#54d12b"), // Signal green
		Content:          HexToColor("#ffffff"),
		SecondaryContent: HexToColor("#a1c299"), // Sage
		SubtleContent:    HexToColor("#2e4229"), // Moss
	})
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	t := FromPalette("default", Palette{
		Background:       tcell.ColorDefault,
		PrimaryContent:   tcell.ColorDefault,
		Content:          tcell.ColorDefault,
		SecondaryContent: tcell.ColorDefault,
		SubtleContent:    tcell.ColorDefault,
	})
	t.Colors.RowUpdated = tcell.ColorDefault
	t.Colors.StatusError = tcell.ColorDefault
	return t
}
