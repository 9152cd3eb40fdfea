package theme

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration.
//
// The palette section derives a whole theme from five colors; entries in
// the colors section then override single roles by their TOML key.
type ThemeConfig struct {
	Name    string `toml:"name"`
	Palette struct {
		Background       string `toml:"background"`
		PrimaryContent   string `toml:"primary_content"`
		Content          string `toml:"content"`
		SecondaryContent string `toml:"secondary_content"`
		SubtleContent    string `toml:"subtle_content"`
	} `toml:"palette"`
	Colors map[string]string `toml:"colors"`
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "microqrart", "themes"),
			filepath.Join(home, ".local", "share", "microqrart", "themes"),
		)
	}

	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config)
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to the
// built-in palette for missing colors
func configToTheme(config ThemeConfig) (*Theme, error) {
	base := MicroQRArt()
	palette := Palette{
		Background:       base.Colors.Background,
		PrimaryContent:   base.Colors.HeaderTitle,
		Content:          base.Colors.RowTitle,
		SecondaryContent: base.Colors.RowSource,
		SubtleContent:    base.Colors.Separator,
	}

	paletteFields := []struct {
		key   string
		value string
		dst   *tcell.Color
	}{
		{"background", config.Palette.Background, &palette.Background},
		{"primary_content", config.Palette.PrimaryContent, &palette.PrimaryContent},
		{"content", config.Palette.Content, &palette.Content},
		{"secondary_content", config.Palette.SecondaryContent, &palette.SecondaryContent},
		{"subtle_content", config.Palette.SubtleContent, &palette.SubtleContent},
	}
	for _, f := range paletteFields {
		if f.value == "" {
			continue
		}
		c, ok := ParseColor(f.value)
		if !ok {
			return nil, fmt.Errorf("invalid palette color %s = %q", f.key, f.value)
		}
		*f.dst = c
	}

	name := config.Name
	if name == "" {
		name = base.Name
	}
	t := FromPalette(name, palette)

	roles := t.roles()
	keys := make([]string, 0, len(config.Colors))
	for k := range config.Colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		dst, ok := roles[key]
		if !ok {
			log.Printf("theme %s: ignoring unknown color %q", name, key)
			continue
		}
		c, ok := ParseColor(config.Colors[key])
		if !ok {
			return nil, fmt.Errorf("invalid color %s = %q", key, config.Colors[key])
		}
		*dst = c
	}

	return t, nil
}

// roles maps TOML keys to the color fields they override
func (t *Theme) roles() map[string]*tcell.Color {
	c := &t.Colors
	return map[string]*tcell.Color{
		"background":        &c.Background,
		"header_title":      &c.HeaderTitle,
		"tab_active":        &c.TabActive,
		"tab_inactive":      &c.TabInactive,
		"row_title":         &c.RowTitle,
		"row_source":        &c.RowSource,
		"row_date":          &c.RowDate,
		"row_selected":      &c.RowSelected,
		"row_selected_bg":   &c.RowSelectedBg,
		"row_inserted":      &c.RowInserted,
		"row_updated":       &c.RowUpdated,
		"separator":         &c.Separator,
		"image_loaded":      &c.ImageLoaded,
		"image_placeholder": &c.ImagePlaceholder,
		"prompt_label":      &c.PromptLabel,
		"prompt_text":       &c.PromptText,
		"prompt_cursor":     &c.PromptCursor,
		"help_background":   &c.HelpBackground,
		"help_border":       &c.HelpBorder,
		"help_title":        &c.HelpTitle,
		"help_content":      &c.HelpContent,
		"status_message":    &c.StatusMessage,
		"status_error":      &c.StatusError,
	}
}

// LoadThemeOrDefault loads a theme by name, or returns the built-in theme if not found
func LoadThemeOrDefault(themeName string) *Theme {
	switch themeName {
	case "default":
		return Default()
	case "", "microqrart":
		return MicroQRArt()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		log.Printf("Failed to load theme %q, using built-in: %v", themeName, err)
		return MicroQRArt()
	}

	return theme
}
