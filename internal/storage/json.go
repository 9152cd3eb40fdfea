package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pstuifzand/microqrart/internal/model"
)

// recordFile is the on-disk layout of a records file
type recordFile struct {
	Version int        `json:"version"`
	Records model.List `json:"records"`
}

const fileVersion = 1

// JSONStore handles JSON file persistence of the QR code list
type JSONStore struct {
	FilePath string
}

// NewJSONStore creates a new JSON store for the given file path
func NewJSONStore(filePath string) *JSONStore {
	return &JSONStore{
		FilePath: filePath,
	}
}

// Load loads the records from the JSON file. A missing file is an empty list.
func (s *JSONStore) Load() (model.List, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.List{}, nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file recordFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if file.Version > fileVersion {
		return nil, fmt.Errorf("unsupported records file version %d", file.Version)
	}
	if file.Records == nil {
		file.Records = model.List{}
	}

	return file.Records, nil
}

// Save writes the records to the JSON file. The file is replaced atomically
// so a crash never leaves a half-written list behind.
func (s *JSONStore) Save(records model.List) error {
	// Ensure directory exists
	dir := filepath.Dir(s.FilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if records == nil {
		records = model.List{}
	}
	data, err := json.MarshalIndent(recordFile{Version: fileVersion, Records: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.FilePath), ".qrcodes-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.FilePath); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}

	return nil
}

// FileExists checks if the records file exists
func (s *JSONStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}

// ReadRecords decodes a records file, an API response payload or a bare JSON
// array of records.
func ReadRecords(path string) (model.List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var list model.List
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var resp model.APIResponse
	if err := json.Unmarshal(data, &resp); err == nil && resp.Data != nil {
		return resp.Data, nil
	}

	var file recordFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return file.Records, nil
}
