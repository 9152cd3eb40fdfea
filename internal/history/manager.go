// Package history persists prompt histories (filter, command line) as TOML.
package history

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/pstuifzand/microqrart/internal/config"
)

// Manager handles loading and saving history to TOML files
type Manager struct {
	historyDir string
}

// HistoryFile represents the structure of a history TOML file
type HistoryFile struct {
	Entries []string `toml:"entries"`
}

// NewManager creates a manager in the application data directory,
// ~/.local/share/microqrart/history/
func NewManager() (*Manager, error) {
	dataDir, err := config.GetDataDir()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(filepath.Join(dataDir, "history"))
}

// NewManagerAt creates a manager storing its files in dir
func NewManagerAt(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &Manager{historyDir: dir}, nil
}

// Dir returns the directory holding the history files
func (m *Manager) Dir() string {
	return m.historyDir
}

// Load reads the entries of a history file. A missing or corrupted file
// yields an empty history.
func (m *Manager) Load(filename string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(m.historyDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var histFile HistoryFile
	if err := toml.Unmarshal(data, &histFile); err != nil {
		return []string{}, nil
	}
	return histFile.Entries, nil
}

// Save writes entries to a history file
func (m *Manager) Save(filename string, entries []string) error {
	data, err := toml.Marshal(HistoryFile{Entries: entries})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(m.historyDir, filename), data, 0644)
}
