package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	m, err := NewManagerAt(filepath.Join(t.TempDir(), "history"))
	require.NoError(t, err)

	require.NoError(t, m.Save("filter.toml", []string{"wifi", "menu"}))

	entries, err := m.Load("filter.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"wifi", "menu"}, entries)
}

func TestLoadMissingOrCorruptedFile(t *testing.T) {
	m, err := NewManagerAt(t.TempDir())
	require.NoError(t, err)

	entries, err := m.Load("nothing.toml")
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, os.WriteFile(filepath.Join(m.Dir(), "bad.toml"), []byte("entries = [unterminated"), 0644))
	entries, err = m.Load("bad.toml")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
