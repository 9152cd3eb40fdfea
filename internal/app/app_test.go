package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/microqrart/internal/config"
	"github.com/pstuifzand/microqrart/internal/model"
	"github.com/pstuifzand/microqrart/internal/repository"
	"github.com/pstuifzand/microqrart/internal/socket"
	"github.com/pstuifzand/microqrart/internal/theme"
	"github.com/pstuifzand/microqrart/internal/ui"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple command",
			input:    "reload",
			expected: []string{"reload"},
		},
		{
			name:     "command with arguments",
			input:    "theme microqrart",
			expected: []string{"theme", "microqrart"},
		},
		{
			name:     "double quoted string",
			input:    `filter "home wi"`,
			expected: []string{"filter", "home wi"},
		},
		{
			name:     "single quoted string",
			input:    "filter 'home wi'",
			expected: []string{"filter", "home wi"},
		},
		{
			name:     "mixed quotes",
			input:    `filter "Business card" or 'Event entry'`,
			expected: []string{"filter", "Business card", "or", "Event entry"},
		},
		{
			name:     "escaped quotes",
			input:    `set label "value with \"quotes\""`,
			expected: []string{"set", "label", `value with "quotes"`},
		},
		{
			name:     "escaped backslash",
			input:    `set data_file "C:\\Users\\test"`,
			expected: []string{"set", "data_file", `C:\Users\test`},
		},
		{
			name:     "multiple spaces",
			input:    "command    with    spaces",
			expected: []string{"command", "with", "spaces"},
		},
		{
			name:     "tabs and spaces",
			input:    "command\twith\t  mixed",
			expected: []string{"command", "with", "mixed"},
		},
		{
			name:     "empty quoted string",
			input:    `command ""`,
			expected: []string{"command", ""},
		},
		{
			name:     "quoted string with special characters",
			input:    `set endpoint "https://example.com/path?query=value&other=123"`,
			expected: []string{"set", "endpoint", "https://example.com/path?query=value&other=123"},
		},
		{
			name:     "empty input",
			input:    "   ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCommand(tt.input))
		})
	}
}

// brokenRepo fails every call
type brokenRepo struct{}

func (brokenRepo) Fetch(ctx context.Context) (model.List, error) {
	return nil, errors.New("connection refused")
}

func (brokenRepo) Delete(ctx context.Context, id string) error {
	return errors.New("connection refused")
}

func (brokenRepo) Update(ctx context.Context, rec model.Record) error {
	return errors.New("connection refused")
}

// gatedRepo holds every Delete until release is closed
type gatedRepo struct {
	*repository.Fixture
	release chan struct{}
}

func (r *gatedRepo) Delete(ctx context.Context, id string) error {
	<-r.release
	return r.Fixture.Delete(ctx, id)
}

func newTestApp(t *testing.T, repo repository.Repository) (*App, tcell.SimulationScreen) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(sim, theme.MicroQRArt())
	require.NoError(t, err)

	cfg, err := config.LoadFromFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	a := newApp(cfg, screen, repo, nil)
	t.Cleanup(func() {
		a.listVM.Wait()
		a.Close()
	})
	return a, sim
}

// settle waits for background actions and applies everything they
// produced, the way the event loop would
func settle(a *App) {
	a.listVM.Wait()
	for {
		select {
		case sections := <-a.sectionsCh:
			a.applySections(sections)
		case msg := <-a.errorsCh:
			a.SetError(msg)
		case p := <-a.editCh:
			a.openEditor(p)
		case tr := <-a.transitionsCh:
			a.handleTransition(tr)
		default:
			return
		}
	}
}

func press(a *App, keys ...rune) {
	for _, r := range keys {
		a.handleRawEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func pressKey(a *App, key tcell.Key) {
	a.handleRawEvent(tcell.NewEventKey(key, 0, tcell.ModNone))
}

func loadedApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	a, sim := newTestApp(t, repository.NewFixture())
	a.listVM.Load()
	settle(a)
	require.Equal(t, 4, a.list.Len())
	return a, sim
}

func screenText(sim tcell.SimulationScreen) string {
	cells, width, _ := sim.GetContents()
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 && i%width == 0 {
			b.WriteByte('\n')
		}
		if len(cell.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(string(cell.Runes))
	}
	return b.String()
}

func TestLoadShowsRecords(t *testing.T) {
	a, _ := loadedApp(t)

	stats := a.list.Stats()
	assert.Equal(t, 1, stats.Reloads)
	assert.Equal(t, 0, stats.Batches)

	rec, index, ok := a.list.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, index)
	assert.Equal(t, "Home Wi-Fi", rec.Title)
}

func TestTabKeys(t *testing.T) {
	a, _ := loadedApp(t)

	press(a, 'l')
	settle(a)
	assert.Equal(t, 1, a.rootVM.State.Value().CurrentIndex)
	assert.Equal(t, 1, a.nav.Current())

	press(a, 'l')
	settle(a)
	assert.Equal(t, 0, a.rootVM.State.Value().CurrentIndex)

	press(a, '2')
	settle(a)
	assert.Equal(t, 1, a.nav.Current())

	pressKey(a, tcell.KeyLeft)
	settle(a)
	assert.Equal(t, 0, a.nav.Current())
}

func TestListKeysIgnoredOnHomeTab(t *testing.T) {
	a, _ := loadedApp(t)

	press(a, 'j', 'd')
	settle(a)

	assert.Equal(t, 4, a.list.Len())
	_, index, _ := a.list.Selected()
	assert.Equal(t, 0, index)
}

func TestDeleteSelectedRemovesOneRow(t *testing.T) {
	a, _ := loadedApp(t)

	press(a, '2', 'j', 'd')
	settle(a)

	require.Equal(t, 3, a.list.Len())
	assert.Equal(t, []string{"1", "3", "4"}, a.listVM.Items().IDs())

	stats := a.list.Stats()
	assert.Equal(t, 1, stats.Reloads)
	assert.Equal(t, 1, stats.Batches)
	assert.Equal(t, 1, stats.Deleted)

	rec, index, ok := a.list.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, index)
	assert.Equal(t, "Business card", rec.Title)
}

func TestDoubleDeleteRemovesOnlyTheSelectedRecord(t *testing.T) {
	repo := &gatedRepo{Fixture: repository.NewFixture(), release: make(chan struct{})}
	a, _ := newTestApp(t, repo)
	a.listVM.Load()
	settle(a)
	require.Equal(t, 4, a.list.Len())

	// Both presses land before the first delete finishes
	press(a, '2', 'd', 'd')
	close(repo.release)
	settle(a)

	assert.Equal(t, []string{"2", "3", "4"}, a.listVM.Items().IDs())
	stored, err := repo.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3", "4"}, stored.IDs())

	assert.Equal(t, 3, a.list.Len())
	assert.True(t, a.statusErr)
	assert.Equal(t, "item to delete not found", a.statusMsg)
}

func TestFirstLoadReloadsInsteadOfInserting(t *testing.T) {
	a, sim := newTestApp(t, repository.NewFixture())

	// Nothing was loaded yet, so the list still shows the placeholder
	settle(a)
	assert.Equal(t, 0, a.list.Len())
	assert.Equal(t, ui.ApplyStats{}, a.list.Stats())

	press(a, '2')
	settle(a)
	a.render()
	assert.Contains(t, screenText(sim), "Loading...")

	a.listVM.Load()
	settle(a)

	stats := a.list.Stats()
	assert.Equal(t, 1, stats.Reloads)
	assert.Equal(t, 0, stats.Batches)
	assert.Equal(t, 0, stats.Inserted)
	assert.Equal(t, 4, a.list.Len())
}

func TestEditSelectedUpdatesTitleInPlace(t *testing.T) {
	a, _ := loadedApp(t)

	press(a, '2', 'e')
	settle(a)
	require.True(t, a.editor.IsActive())
	assert.Equal(t, "Home Wi-Fi", a.editor.Text())

	pressKey(a, tcell.KeyCtrlU)
	press(a, []rune("Guest Wi-Fi")...)
	pressKey(a, tcell.KeyEnter)
	settle(a)

	assert.False(t, a.editor.IsActive())
	rec, _, ok := a.list.Selected()
	require.True(t, ok)
	assert.Equal(t, "Guest Wi-Fi", rec.Title)

	stats := a.list.Stats()
	assert.Equal(t, 1, stats.Batches)
	assert.Equal(t, 1, stats.Updated)
}

func TestEditWithEmptyTitleReportsError(t *testing.T) {
	a, _ := loadedApp(t)

	press(a, '2', 'e')
	settle(a)
	pressKey(a, tcell.KeyCtrlU)
	pressKey(a, tcell.KeyEnter)
	settle(a)

	assert.True(t, a.statusErr)
	assert.Equal(t, "title is empty", a.statusMsg)
	assert.Equal(t, "Home Wi-Fi", a.listVM.Items()[0].Title)
}

func TestFilterThenDeleteTargetsFilteredRow(t *testing.T) {
	a, _ := loadedApp(t)

	press(a, '2', '/')
	press(a, []rune("event")...)
	pressKey(a, tcell.KeyEnter)
	settle(a)

	require.Equal(t, 1, a.list.Len())
	assert.True(t, a.filter.IsFiltering())

	press(a, 'd')
	settle(a)

	assert.Equal(t, []string{"1", "2", "3"}, a.listVM.Items().IDs())
	assert.Equal(t, 0, a.list.Len())

	pressKey(a, tcell.KeyEscape)
	assert.False(t, a.filter.IsFiltering())
	assert.Equal(t, 3, a.list.Len())
}

func TestLoadErrorReachesStatusLine(t *testing.T) {
	a, _ := newTestApp(t, brokenRepo{})

	a.listVM.Load()
	settle(a)

	assert.True(t, a.statusErr)
	assert.Contains(t, a.statusMsg, "failed to load data")
	assert.Equal(t, 1, a.messages.Count())
}

func TestCommands(t *testing.T) {
	a, _ := loadedApp(t)

	a.handleCommand("set highlight_ms 0")
	assert.Equal(t, "0", a.cfg.Get("highlight_ms"))
	assert.False(t, a.statusErr)

	a.handleCommand("set highlight_ms=-4")
	assert.True(t, a.statusErr)

	a.handleCommand("debug")
	assert.True(t, a.debugMode)
	a.handleCommand("debug")
	assert.False(t, a.debugMode)

	a.handleCommand("filter home")
	assert.Equal(t, 1, a.list.Len())

	a.handleCommand("bogus")
	assert.True(t, a.statusErr)
	assert.Equal(t, "Unknown command: bogus", a.statusMsg)

	a.handleCommand("q")
	assert.True(t, a.quit)
}

func TestExportCommandWritesShownRows(t *testing.T) {
	a, _ := loadedApp(t)
	path := filepath.Join(t.TempDir(), "codes.md")

	a.handleCommand("filter wifi")
	a.handleCommand("export " + path)
	require.False(t, a.statusErr, a.statusMsg)
	assert.Equal(t, "Exported 2 QR codes to "+path, a.statusMsg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Home Wi-Fi")
	assert.NotContains(t, string(data), "Business card")

	a.handleCommand("export")
	assert.True(t, a.statusErr)
}

func TestCommandModeKeys(t *testing.T) {
	a, _ := loadedApp(t)

	press(a, ':')
	require.True(t, a.command.IsActive())
	press(a, []rune("help")...)
	pressKey(a, tcell.KeyEnter)

	assert.False(t, a.command.IsActive())
	assert.True(t, a.help.IsVisible())

	pressKey(a, tcell.KeyEscape)
	assert.False(t, a.help.IsVisible())
}

func TestSocketListResponds(t *testing.T) {
	a, _ := loadedApp(t)

	respCh := make(chan *socket.Response, 1)
	a.handleSocketMessage(socket.Message{Command: socket.CommandList, ResponseChan: respCh})

	resp := <-respCh
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"1", "2", "3", "4"}, resp.Records.IDs())
}

func TestSocketAddRecordNeedsWritableSource(t *testing.T) {
	a, _ := loadedApp(t)

	a.handleSocketMessage(socket.Message{
		Command: socket.CommandAddRecord,
		Title:   "Menu",
		Source:  "https://cafe.example.com",
	})
	settle(a)

	assert.True(t, a.statusErr)
	assert.Equal(t, "This source cannot add QR codes", a.statusMsg)
	assert.Equal(t, 4, a.list.Len())
}

func TestRenderShowsTabsAndRows(t *testing.T) {
	a, sim := loadedApp(t)

	a.render()
	text := screenText(sim)
	assert.Contains(t, text, "MicroQRArt")
	assert.Contains(t, text, "4 QR codes")

	press(a, '2')
	settle(a)
	a.render()
	text = screenText(sim)
	assert.Contains(t, text, "My QR codes")
	assert.Contains(t, text, "Home Wi-Fi")
}
