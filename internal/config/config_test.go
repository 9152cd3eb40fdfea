package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("filter", "wifi")
	if cfg.Get("filter") != "wifi" {
		t.Errorf("Expected 'wifi', got '%s'", cfg.Get("filter"))
	}
}

func TestGet(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	// Test getting a value that doesn't exist
	if cfg.Get("nonexistent") != "" {
		t.Errorf("Expected empty string for nonexistent key, got '%s'", cfg.Get("nonexistent"))
	}

	// Set and then get
	cfg.Set("test", "value")
	if cfg.Get("test") != "value" {
		t.Errorf("Expected 'value', got '%s'", cfg.Get("test"))
	}
}

func TestGetAll(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("key1", "value1")
	cfg.Set("key2", "value2")

	all := cfg.GetAll()
	if len(all) != 2 {
		t.Errorf("Expected 2 settings, got %d", len(all))
	}

	if all["key1"] != "value1" {
		t.Errorf("Expected 'value1', got '%s'", all["key1"])
	}

	if all["key2"] != "value2" {
		t.Errorf("Expected 'value2', got '%s'", all["key2"])
	}
}

func TestGetAllReturnsACopy(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("original", "value")

	// Modify the returned map
	all := cfg.GetAll()
	all["original"] = "modified"

	// Verify the original config was not modified
	if cfg.Get("original") != "value" {
		t.Errorf("GetAll() should return a copy, not a reference")
	}
}

func TestNilSessionSettings(t *testing.T) {
	cfg := &Config{}
	// sessionSettings is nil

	// Set should initialize it
	cfg.Set("key", "value")
	if cfg.Get("key") != "value" {
		t.Errorf("Set should initialize nil sessionSettings")
	}

	// Get should handle nil gracefully
	cfg2 := &Config{}
	if cfg2.Get("key") != "" {
		t.Errorf("Get should return empty string for nil sessionSettings")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Theme != "microqrart" {
		t.Errorf("Expected default theme 'microqrart', got '%s'", cfg.Theme)
	}

	if cfg.sessionSettings == nil {
		t.Errorf("defaultConfig should initialize sessionSettings")
	}
}

func TestLoadFromFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "microqrart", cfg.Theme)
	assert.Equal(t, SourceFixture, cfg.Source)
	assert.Equal(t, "%Y/%m/%d", cfg.DateFormat)
	assert.Equal(t, 600, cfg.HighlightMS)
}

func TestLoadFromFileParsesSourceAndSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
theme = "default"
source = "http"
endpoint = "https://api.example.com/qrcodes"
highlight_ms = 250

[settings]
filter = "wifi"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.Theme)
	assert.Equal(t, SourceHTTP, cfg.Source)
	assert.Equal(t, "https://api.example.com/qrcodes", cfg.Endpoint)
	assert.Equal(t, 250, cfg.HighlightMS)
	assert.Equal(t, "wifi", cfg.Get("filter"))
}

func TestLoadFromFileRejectsInvalidSource(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown source", `source = "ftp"`},
		{"http without endpoint", `source = "http"`},
		{"broken toml", `source = `},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, fmt.Sprintf("config-%d.toml", i))
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadFromFile(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	cfg.Settings["filter"] = "card"
	cfg.Set("session-only", "x")
	require.NoError(t, cfg.Save())

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "card", loaded.Get("filter"))
	assert.Empty(t, loaded.Get("session-only"), "session settings are not persisted")
}

func TestDebugEnabledSessionOverride(t *testing.T) {
	cfg := defaultConfig()
	assert.False(t, cfg.DebugEnabled())

	cfg.Set("debug", "true")
	assert.True(t, cfg.DebugEnabled())

	cfg.Set("debug", "nonsense")
	assert.False(t, cfg.DebugEnabled())
}
