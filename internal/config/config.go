package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Data sources the repository factory understands
const (
	SourceFixture = "fixture"
	SourceHTTP    = "http"
	SourceFile    = "file"
)

const (
	defaultTheme       = "microqrart"
	defaultDateFormat  = "%Y/%m/%d"
	defaultHighlightMS = 600
)

// Config holds application configuration
type Config struct {
	Theme       string            `toml:"theme"`
	Source      string            `toml:"source"`
	Endpoint    string            `toml:"endpoint,omitempty"`
	DataFile    string            `toml:"data_file,omitempty"`
	DateFormat  string            `toml:"date_format,omitempty"`
	HighlightMS int               `toml:"highlight_ms,omitempty"`
	Debug       bool              `toml:"debug,omitempty"`
	Settings    map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
	path            string
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file
func LoadFromFile(filePath string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		cfg := defaultConfig()
		cfg.path = filePath
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = toml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	config.path = filePath

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyDefaults fills every unset field
func (c *Config) applyDefaults() {
	if c.Theme == "" {
		c.Theme = defaultTheme
	}
	if c.Source == "" {
		c.Source = SourceFixture
	}
	if c.DateFormat == "" {
		c.DateFormat = defaultDateFormat
	}
	if c.HighlightMS <= 0 {
		c.HighlightMS = defaultHighlightMS
	}
	if c.Source == SourceFile && c.DataFile == "" {
		if dir, err := GetDataDir(); err == nil {
			c.DataFile = filepath.Join(dir, "qrcodes.json")
		}
	}

	// Initialize persisted settings if not present
	if c.Settings == nil {
		c.Settings = make(map[string]string)
	}

	// Initialize session settings
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
}

// Validate checks that the selected source has what it needs
func (c *Config) Validate() error {
	switch c.Source {
	case SourceFixture:
	case SourceHTTP:
		if c.Endpoint == "" {
			return fmt.Errorf("source %q requires an endpoint", c.Source)
		}
	case SourceFile:
		if c.DataFile == "" {
			return fmt.Errorf("source %q requires a data_file", c.Source)
		}
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(home, ".config", "microqrart")
	return configDir, nil
}

// GetDataDir returns the directory for data files, sockets and history
func GetDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".local", "share", "microqrart"), nil
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value, checking session settings first (which override persisted settings)
// Returns empty string if not found in either source
func (c *Config) Get(key string) string {
	// Check session settings first (they override persisted settings)
	if c.sessionSettings != nil {
		if val, ok := c.sessionSettings[key]; ok {
			return val
		}
	}

	// Fall back to persisted settings
	if c.Settings != nil {
		if val, ok := c.Settings[key]; ok {
			return val
		}
	}

	return ""
}

// GetBool interprets a setting as a boolean; unset or unparsable values yield fallback
func (c *Config) GetBool(key string, fallback bool) bool {
	val := c.Get(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}

// GetAll returns all configuration values (both persisted and session)
// Session settings override persisted settings with the same key
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string)

	// First, add all persisted settings
	for k, v := range c.Settings {
		result[k] = v
	}

	// Then override with session settings (they take precedence)
	for k, v := range c.sessionSettings {
		result[k] = v
	}

	return result
}

// DebugEnabled reports whether debug logging is on, either in the file or for this session
func (c *Config) DebugEnabled() bool {
	return c.GetBool("debug", c.Debug)
}

// Save persists the configuration to the TOML file it was loaded from, or the standard location
// Note: This only persists the Settings map, not session settings
func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		var err error
		configPath, err = getConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshall the config to TOML
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
