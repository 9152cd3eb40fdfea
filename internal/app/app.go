// Package app wires the view models, the list renderer and the terminal
// together and runs the event loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/microqrart/internal/config"
	"github.com/pstuifzand/microqrart/internal/history"
	"github.com/pstuifzand/microqrart/internal/imageload"
	"github.com/pstuifzand/microqrart/internal/model"
	"github.com/pstuifzand/microqrart/internal/observable"
	"github.com/pstuifzand/microqrart/internal/repository"
	"github.com/pstuifzand/microqrart/internal/socket"
	"github.com/pstuifzand/microqrart/internal/storage"
	"github.com/pstuifzand/microqrart/internal/theme"
	"github.com/pstuifzand/microqrart/internal/ui"
	"github.com/pstuifzand/microqrart/internal/viewmodel"
)

const (
	appTitle       = "MicroQRArt"
	listTitle      = "My QR codes"
	statusDuration = 4 * time.Second
)

// App is the main application controller. All screen state is owned by
// the goroutine running Run; view model outputs reach it through channels.
type App struct {
	cfg      *config.Config
	screen   *ui.Screen
	repo     repository.Repository
	images   *imageload.Loader
	listVM   *viewmodel.ListViewModel
	rootVM   *viewmodel.RootViewModel
	list     *ui.ListView
	nav      *ui.NavigationBar
	home     *ui.HomeScreen
	editor   *ui.Editor
	filter   *ui.Filter
	command  *ui.CommandMode
	help     *ui.HelpScreen
	messages *ui.MessageLogger
	server   *socket.Server
	watcher  *storage.Watcher

	keybindings []KeyBinding

	ctx    context.Context
	cancel context.CancelFunc
	bag    observable.Bag

	sectionsCh    chan []model.Section
	errorsCh      chan string
	editCh        chan viewmodel.EditPrompt
	transitionsCh chan viewmodel.Transition

	// latest is the newest unfiltered snapshot from the view model
	latest []model.Section

	statusMsg  string
	statusErr  bool
	statusTime time.Time
	quit       bool
	debugMode  bool
}

// NewApp creates the application with a terminal screen and the repository
// selected by cfg
func NewApp(cfg *config.Config) (*App, error) {
	repo, err := repository.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}

	screen, err := ui.NewScreen(theme.LoadThemeOrDefault(cfg.Theme))
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	return newApp(cfg, screen, repo, imageload.NewLoader(nil, imageload.DefaultCacheSize)), nil
}

func newApp(cfg *config.Config, screen *ui.Screen, repo repository.Repository, images *imageload.Loader) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		cfg:           cfg,
		screen:        screen,
		repo:          repo,
		images:        images,
		listVM:        viewmodel.NewListViewModel(ctx, repo),
		rootVM:        viewmodel.NewRootViewModel(),
		nav:           ui.NewNavigationBar(viewmodel.TabHome.String(), viewmodel.TabProfile.String()),
		home:          ui.NewHomeScreen(appTitle),
		editor:        ui.NewEditor(),
		messages:      ui.NewMessageLogger(100),
		ctx:           ctx,
		cancel:        cancel,
		sectionsCh:    make(chan []model.Section, 1),
		errorsCh:      make(chan string, 16),
		editCh:        make(chan viewmodel.EditPrompt, 1),
		transitionsCh: make(chan viewmodel.Transition, 4),
		statusMsg:     "Ready",
		statusTime:    time.Now(),
	}

	var imageSource ui.ImageSource
	if images != nil {
		imageSource = images
	}
	a.list = ui.NewListView(ctx, imageSource, time.Duration(cfg.HighlightMS)*time.Millisecond)

	if manager, err := history.NewManager(); err == nil {
		a.filter = ui.NewFilterWithHistory(manager)
		a.command = ui.NewCommandModeWithHistory(manager)
	} else {
		log.Printf("History disabled: %v", err)
		a.filter = ui.NewFilter()
		a.command = ui.NewCommandMode()
	}

	a.keybindings = a.InitializeKeybindings()
	a.help = ui.NewHelpScreen(helpEntries(a.keybindings))
	a.SetDebugMode(cfg.DebugEnabled())
	a.bind()
	return a
}

// bind forwards view model outputs into the loop's channels
func (a *App) bind() {
	a.bag.Add(a.listVM.Sections.Subscribe(func(sections []model.Section) {
		// The empty value present before the first load is not a snapshot;
		// the list keeps showing "Loading..." until one arrives
		if !a.listVM.Loaded() {
			return
		}
		sendLatest(a.sectionsCh, sections)
	}))
	a.bag.Add(a.listVM.Errors.Observe(func(msg string) {
		select {
		case a.errorsCh <- msg:
		case <-a.ctx.Done():
		}
	}))
	a.bag.Add(a.listVM.EditPrompt.Observe(func(p viewmodel.EditPrompt) {
		sendLatest(a.editCh, p)
	}))
	a.bag.Add(a.rootVM.Transition.Observe(func(tr viewmodel.Transition) {
		select {
		case a.transitionsCh <- tr:
		case <-a.ctx.Done():
		}
	}))
}

// sendLatest puts v on a one-slot channel, replacing an unread older value.
// Only the newest snapshot matters because the list view reconciles against
// what it shows, not against what it was last sent.
func sendLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// EnableSocket starts the control socket for this process
func (a *App) EnableSocket(pid int) error {
	server, err := socket.NewServer(pid)
	if err != nil {
		return err
	}
	server.Start()
	a.server = server
	return nil
}

// WatchDataFile reloads the list whenever the records file changes on disk
func (a *App) WatchDataFile(path string) error {
	w, err := storage.NewWatcher(path, storage.DefaultDebounce, a.listVM.Load)
	if err != nil {
		return err
	}
	a.watcher = w
	return nil
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	var socketMsgs <-chan socket.Message
	if a.server != nil {
		socketMsgs = a.server.Messages()
	}

	a.listVM.Load()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for !a.quit {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			a.handleRawEvent(ev)
		case sections := <-a.sectionsCh:
			a.applySections(sections)
		case msg := <-a.errorsCh:
			a.SetError(msg)
		case p := <-a.editCh:
			a.openEditor(p)
		case tr := <-a.transitionsCh:
			a.handleTransition(tr)
		case msg := <-socketMsgs:
			a.handleSocketMessage(msg)
		case <-ticker.C:
			a.render()
		}
	}
	return nil
}

// Close stops background work and restores the terminal
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	a.cancel()
	a.bag.CancelAll()
	a.listVM.Close()
	if a.server != nil {
		a.server.Stop()
		a.server = nil
	}
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// applySections stores a view model snapshot and shows it through the filter
func (a *App) applySections(sections []model.Section) {
	a.latest = sections
	a.showFiltered()
}

func (a *App) showFiltered() {
	filtered := make([]model.Section, len(a.latest))
	for i, section := range a.latest {
		filtered[i] = model.Section{Header: section.Header, Items: a.filter.Apply(section.Items)}
	}
	result := a.list.Apply(filtered)
	if a.debugMode {
		log.Printf("Applied snapshot: %s, %d operations", result.Kind, result.Count())
	}
}

func (a *App) applyFilter() {
	a.showFiltered()
	if a.filter.IsFiltering() {
		a.SetStatus(fmt.Sprintf("Filter: %s (%d shown)", a.filter.Query(), a.list.Len()))
	}
}

func (a *App) handleTransition(tr viewmodel.Transition) {
	a.nav.SetCurrent(a.rootVM.State.Value().CurrentIndex, tr.Direction == viewmodel.Forward)
	a.help.Hide()
	if a.debugMode {
		log.Printf("Tab transition %s -> %s (%s)", tr.From, tr.To, tr.Direction)
	}
}

// viewModelIndex maps the selected row to its index in the unfiltered list
func (a *App) viewModelIndex() (model.Record, int, bool) {
	rec, _, ok := a.list.Selected()
	if !ok {
		return model.Record{}, -1, false
	}
	return rec, a.listVM.Items().IndexOf(rec.ID), true
}

func (a *App) deleteSelected() {
	rec, _, ok := a.list.Selected()
	if !ok {
		return
	}
	a.SetStatus("Deleting " + rec.Title)
	a.listVM.DeleteID(rec.ID)
}

func (a *App) editSelected() {
	_, index, ok := a.viewModelIndex()
	if !ok {
		return
	}
	a.listVM.RequestEdit(index)
}

func (a *App) openEditor(p viewmodel.EditPrompt) {
	items := a.listVM.Items()
	if p.Index < 0 || p.Index >= len(items) {
		return
	}
	a.editor.Start(p.Index, items[p.Index].ID, p.Title)
}

func (a *App) submitEdit() {
	// The list may have changed while the prompt was open
	a.listVM.EditID(a.editor.ID(), a.editor.Text())
}

func (a *App) reload() {
	a.SetStatus("Reloading...")
	a.listVM.Load()
}

// handleRawEvent processes raw input events
func (a *App) handleRawEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		return
	case *tcell.EventKey:
		a.handleKeyEvent(ev)
	}
}

func (a *App) handleKeyEvent(ev *tcell.EventKey) {
	if a.command.IsActive() {
		if cmd, done := a.command.HandleKey(ev); done {
			a.handleCommand(cmd)
		}
		return
	}

	if a.editor.IsActive() {
		switch a.editor.HandleKey(ev) {
		case ui.PromptSubmit:
			a.submitEdit()
		case ui.PromptCancel:
			a.SetStatus("Edit cancelled")
		}
		return
	}

	if a.filter.IsActive() {
		if a.filter.HandleKey(ev) {
			a.applyFilter()
		}
		return
	}

	if a.help.IsVisible() {
		if ev.Key() == tcell.KeyEscape || ev.Rune() == '?' || ev.Rune() == 'q' {
			a.help.Toggle()
		}
		return
	}

	a.handleKeypress(ev)
}

// handleKeypress handles a single keypress in normal mode
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers()))
	}

	onList := a.rootVM.State.Value().Current() == viewmodel.TabProfile

	switch ev.Key() {
	case tcell.KeyDown:
		if onList {
			a.list.MoveDown()
		}
		return
	case tcell.KeyUp:
		if onList {
			a.list.MoveUp()
		}
		return
	case tcell.KeyLeft:
		a.rootVM.Prev()
		return
	case tcell.KeyRight:
		a.rootVM.Next()
		return
	case tcell.KeyEscape:
		if a.filter.IsFiltering() {
			a.filter.Clear()
			a.applyFilter()
			a.SetStatus("Filter cleared")
		}
		return
	case tcell.KeyCtrlC:
		a.Quit()
		return
	case tcell.KeyRune:
	default:
		return
	}

	kb := a.GetKeybindingByKey(ev.Rune())
	if kb == nil || (kb.ListOnly && !onList) {
		return
	}
	kb.Handler(a)
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()

	width := a.screen.GetWidth()
	height := a.screen.GetHeight()
	if width <= 0 || height < 5 {
		a.screen.Show()
		return
	}

	tab := a.rootVM.State.Value().Current()
	title := appTitle
	if tab == viewmodel.TabProfile {
		title = listTitle
	}
	a.nav.Render(a.screen, 0, title)

	contentTop := 2
	contentHeight := height - contentTop - 2
	switch tab {
	case viewmodel.TabProfile:
		a.list.Render(a.screen, contentTop, contentHeight)
	default:
		a.home.SetCount(len(a.listVM.Items()))
		a.home.Render(a.screen, contentTop, contentHeight)
	}

	promptY := height - 2
	switch {
	case a.editor.IsActive():
		a.editor.Render(a.screen, promptY)
	case a.filter.IsActive():
		a.filter.Render(a.screen, promptY)
	case a.command.IsActive():
		a.command.Render(a.screen, promptY)
	case a.filter.IsFiltering():
		a.screen.DrawStringLimited(0, promptY, "/"+a.filter.Query(), width, a.screen.PromptTextStyle())
	}

	a.renderStatus(height - 1)
	a.help.Render(a.screen)
	a.screen.Show()
}

func (a *App) renderStatus(y int) {
	width := a.screen.GetWidth()
	a.screen.FillLine(0, y, width, a.screen.BackgroundStyle())

	msg := ""
	style := a.screen.StatusMessageStyle()
	if a.statusMsg != "" && time.Since(a.statusTime) <= statusDuration {
		msg = a.statusMsg
		if a.statusErr {
			style = a.screen.StatusErrorStyle()
		}
	}

	right := fmt.Sprintf("%d codes", len(a.listVM.Items()))
	if a.debugMode {
		stats := a.list.Stats()
		right = fmt.Sprintf("reloads %d batches %d skipped %d | %s", stats.Reloads, stats.Batches, stats.Skipped, right)
	}
	rightX := width - ui.StringWidth(right) - 1
	a.screen.DrawStringLimited(1, y, msg, rightX-2, style)
	a.screen.DrawString(rightX, y, right, a.screen.StatusMessageStyle())
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.statusMsg = msg
	a.statusErr = false
	a.statusTime = time.Now()
	a.messages.AddMessage(msg)
}

// SetError shows an error on the status line
func (a *App) SetError(msg string) {
	a.statusMsg = msg
	a.statusErr = true
	a.statusTime = time.Now()
	a.messages.AddError(msg)
	log.Printf("Error: %s", msg)
}

// report forwards an error from a background goroutine to the loop
func (a *App) report(err error) {
	msg := err.Error()
	if errors.Is(err, repository.ErrUnsupported) {
		msg = "This source cannot add QR codes"
	}
	select {
	case a.errorsCh <- msg:
	case <-a.ctx.Done():
	}
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
	a.listVM.SetDebug(debug)
	a.list.SetDebug(debug)
}
