package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/microqrart/internal/model"
)

func TestJSONStoreMissingFileIsEmpty(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "qrcodes.json"))

	assert.False(t, store.FileExists())
	records, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestJSONStoreRoundTrip(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "data", "qrcodes.json"))
	records := model.List{
		{ID: "1", Title: "Home Wi-Fi", Source: "https://wifi.example.com/qr/1", Date: "2025/05/30"},
		{ID: "2", Title: "Ticket", Source: "https://event.example.com/qr/2", Date: "2025/05/27", Image: "https://img.example.com/2.png"},
	}

	require.NoError(t, store.Save(records))
	assert.True(t, store.FileExists())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.True(t, records.Equal(loaded))

	entries, err := os.ReadDir(filepath.Dir(store.FilePath))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestJSONStoreRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qrcodes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99, "records": []}`), 0644))

	_, err := NewJSONStore(path).Load()
	assert.Error(t, err)
}

func TestReadRecordsAcceptsAllLayouts(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bare array", `[{"id": "1", "title": "a"}, {"id": "2", "title": "b"}]`},
		{"api response", `{"result": "success", "data": [{"id": "1", "title": "a"}, {"id": "2", "title": "b"}]}`},
		{"records file", `{"version": 1, "records": [{"id": "1", "title": "a"}, {"id": "2", "title": "b"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			records, err := ReadRecords(path)
			require.NoError(t, err)
			assert.Equal(t, []string{"1", "2"}, records.IDs())
		})
	}
}

func TestReadRecordsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"records": [`), 0644))

	_, err := ReadRecords(path)
	assert.Error(t, err)
}
