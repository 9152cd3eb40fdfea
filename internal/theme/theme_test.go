package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToColor(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(0x54, 0xd1, 0x2b), HexToColor("#54d12b"))
	assert.Equal(t, tcell.NewRGBColor(0xff, 0xff, 0xff), HexToColor("#fff"))
	assert.Equal(t, tcell.ColorDefault, HexToColor("#12"))
	assert.Equal(t, tcell.ColorDefault, HexToColor("#zzzzzz"))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want tcell.Color
		ok   bool
	}{
		{"#172112", tcell.NewRGBColor(0x17, 0x21, 0x12), true},
		{"rgb(161, 194, 153)", tcell.NewRGBColor(161, 194, 153), true},
		{"rgb(300, 0, 0)", tcell.ColorDefault, false},
		{"rgb(1,2)", tcell.ColorDefault, false},
		{"red", tcell.ColorRed, true},
		{"default", tcell.ColorDefault, true},
		{"", tcell.ColorDefault, false},
		{"not-a-color", tcell.ColorDefault, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBlendEndpoints(t *testing.T) {
	from := HexToColor("#54d12b")
	to := HexToColor("#172112")

	assert.Equal(t, from, Blend(from, to, 0))
	assert.Equal(t, to, Blend(from, to, 1))

	mid := Blend(from, to, 0.5)
	assert.NotEqual(t, from, mid)
	assert.NotEqual(t, to, mid)

	assert.Equal(t, tcell.ColorDefault, Blend(from, tcell.ColorDefault, 0.5),
		"blending into the terminal default yields the default")
}

func TestMicroQRArtPalette(t *testing.T) {
	th := MicroQRArt()
	assert.Equal(t, "microqrart", th.Name)
	assert.Equal(t, HexToColor("#172112"), th.Colors.Background)
	assert.Equal(t, HexToColor("#54d12b"), th.Colors.RowInserted)
	assert.Equal(t, HexToColor("#2e4229"), th.Colors.RowSelectedBg)
}

func TestLoadThemeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocean.toml")
	content := `
name = "ocean"

[palette]
background = "#001122"
primary_content = "rgb(0, 200, 255)"

[colors]
row_updated = "yellow"
unknown_role = "#ffffff"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "ocean", th.Name)
	assert.Equal(t, HexToColor("#001122"), th.Colors.Background)
	assert.Equal(t, tcell.NewRGBColor(0, 200, 255), th.Colors.TabActive, "derived from primary_content")
	assert.Equal(t, tcell.ColorYellow, th.Colors.RowUpdated)
	assert.Equal(t, MicroQRArt().Colors.RowSource, th.Colors.RowSource, "unset palette entries keep the built-in color")
}

func TestLoadThemeFromFileRejectsBadColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[colors]\nrow_title = \"#12\"\n"), 0644))

	_, err := LoadThemeFromFile(path)
	assert.Error(t, err)
}

func TestLoadThemeOrDefaultFallsBack(t *testing.T) {
	assert.Equal(t, "default", LoadThemeOrDefault("default").Name)
	assert.Equal(t, "microqrart", LoadThemeOrDefault("does-not-exist-anywhere").Name)
}
