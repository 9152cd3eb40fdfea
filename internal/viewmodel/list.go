// Package viewmodel turns repository data into observable screen state.
package viewmodel

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/davecgh/go-spew/spew"

	"github.com/pstuifzand/microqrart/internal/model"
	"github.com/pstuifzand/microqrart/internal/observable"
	"github.com/pstuifzand/microqrart/internal/repository"
)

// EditPrompt asks the view to show the title editor for a row
type EditPrompt struct {
	Index int
	Title string
}

// ListViewModel drives the "My QR codes" list
type ListViewModel struct {
	repo  repository.Repository
	ctx   context.Context
	debug bool

	// mu serializes mutations so each one starts from the latest snapshot
	mu    sync.Mutex
	items *observable.Property[model.List]
	// gen counts published snapshots; guarded by mu
	gen    uint64
	loaded atomic.Bool
	wg     sync.WaitGroup

	// Sections is the list grouped for the renderer
	Sections *observable.Property[[]model.Section]
	// EditPrompt fires when a row's title editor should open
	EditPrompt *observable.Signal[EditPrompt]
	// Errors carries user-facing error messages
	Errors *observable.Signal[string]

	sectionsToken observable.Token
}

// NewListViewModel creates a view model backed by repo. Repository calls run
// on their own goroutines bound to ctx.
func NewListViewModel(ctx context.Context, repo repository.Repository) *ListViewModel {
	items := observable.NewProperty(model.List{})
	sections, token := observable.Map(items, model.SingleSection)

	return &ListViewModel{
		repo:          repo,
		ctx:           ctx,
		items:         items,
		Sections:      sections,
		EditPrompt:    observable.NewSignal[EditPrompt](),
		Errors:        observable.NewSignal[string](),
		sectionsToken: token,
	}
}

// SetDebug enables duplicate-id checks on every loaded snapshot
func (vm *ListViewModel) SetDebug(debug bool) {
	vm.debug = debug
}

// Items returns the current snapshot
func (vm *ListViewModel) Items() model.List {
	return vm.items.Value()
}

// maxLoadAttempts bounds how often Load refetches when the list changed
// while a fetch was in flight
const maxLoadAttempts = 3

// Loaded reports whether a snapshot has been published since creation
func (vm *ListViewModel) Loaded() bool {
	return vm.loaded.Load()
}

// Load fetches the list from the repository. A fetch that started before a
// Delete or Edit published its result is discarded and repeated.
func (vm *ListViewModel) Load() {
	vm.run(func(ctx context.Context) {
		for attempt := 1; attempt <= maxLoadAttempts; attempt++ {
			vm.mu.Lock()
			start := vm.gen
			vm.mu.Unlock()

			items, err := vm.repo.Fetch(ctx)
			if err != nil {
				vm.fail("failed to load data: %v", err)
				return
			}

			vm.mu.Lock()
			if vm.gen == start {
				vm.publish(items)
				vm.mu.Unlock()
				return
			}
			vm.mu.Unlock()
			log.Printf("List changed while loading, fetching again (attempt %d)", attempt)
		}
		log.Printf("List kept changing while loading; keeping the current snapshot")
	})
}

// Delete removes the row at index in the snapshot current when the action runs
func (vm *ListViewModel) Delete(index int) {
	vm.deleteAt(func(model.List) int { return index })
}

// DeleteID removes the record with id. Nothing is removed when the record
// is already gone.
func (vm *ListViewModel) DeleteID(id string) {
	vm.deleteAt(func(current model.List) int { return current.IndexOf(id) })
}

func (vm *ListViewModel) deleteAt(resolve func(model.List) int) {
	vm.run(func(ctx context.Context) {
		vm.mu.Lock()
		defer vm.mu.Unlock()

		current := vm.items.Value()
		index := resolve(current)
		if index < 0 || index >= len(current) {
			vm.fail("item to delete not found")
			return
		}
		target := current[index]

		if err := vm.repo.Delete(ctx, target.ID); err != nil {
			vm.fail("delete failed: %v", err)
			return
		}
		vm.publish(current.Without(index))
	})
}

// Edit replaces the title of the row at index
func (vm *ListViewModel) Edit(index int, title string) {
	vm.editAt(func(model.List) int { return index }, title)
}

// EditID replaces the title of the record with id
func (vm *ListViewModel) EditID(id, title string) {
	vm.editAt(func(current model.List) int { return current.IndexOf(id) }, title)
}

func (vm *ListViewModel) editAt(resolve func(model.List) int, title string) {
	title = strings.TrimSpace(title)

	vm.run(func(ctx context.Context) {
		if title == "" {
			vm.fail("title is empty")
			return
		}

		vm.mu.Lock()
		defer vm.mu.Unlock()

		current := vm.items.Value()
		index := resolve(current)
		if index < 0 || index >= len(current) {
			vm.fail("item to edit not found")
			return
		}
		updated := current[index]
		updated.Title = title

		if err := vm.repo.Update(ctx, updated); err != nil {
			vm.fail("update failed: %v", err)
			return
		}
		vm.publish(current.WithRecord(index, updated))
	})
}

// RequestEdit emits an EditPrompt for the row at index
func (vm *ListViewModel) RequestEdit(index int) {
	current := vm.items.Value()
	if index < 0 || index >= len(current) {
		return
	}
	vm.EditPrompt.Send(EditPrompt{Index: index, Title: current[index].Title})
}

// Wait blocks until every action started so far has finished
func (vm *ListViewModel) Wait() {
	vm.wg.Wait()
}

// Close stops deriving sections. Pending actions still finish.
func (vm *ListViewModel) Close() {
	vm.sectionsToken.Cancel()
}

// run starts an action in the background
func (vm *ListViewModel) run(action func(ctx context.Context)) {
	vm.wg.Add(1)
	go func() {
		defer vm.wg.Done()
		action(vm.ctx)
	}()
}

// publish replaces the snapshot; the caller holds vm.mu
func (vm *ListViewModel) publish(items model.List) {
	if vm.debug {
		if dups := items.DuplicateIDs(); len(dups) > 0 {
			log.Printf("WARNING: list contains duplicate ids %v; row updates are undefined", dups)
		}
		log.Printf("Publishing list snapshot:\n%s", spew.Sdump(items.IDs()))
	}
	vm.gen++
	vm.loaded.Store(true)
	vm.items.Set(items)
}

func (vm *ListViewModel) fail(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("List view model: %s", msg)
	vm.Errors.Send(msg)
}
