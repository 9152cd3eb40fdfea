package viewmodel

import (
	"github.com/pstuifzand/microqrart/internal/observable"
)

// Tab identifies a top-level screen
type Tab int

const (
	TabHome Tab = iota
	TabProfile
)

// Tabs lists the tabs in display order
var Tabs = []Tab{TabHome, TabProfile}

func (t Tab) String() string {
	switch t {
	case TabHome:
		return "Home"
	case TabProfile:
		return "Profile"
	default:
		return "Unknown"
	}
}

// Direction is the way a tab transition moves
type Direction int

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// RootState is the navigation state
type RootState struct {
	CurrentIndex int
}

// Current returns the selected tab
func (s RootState) Current() Tab {
	return Tabs[s.CurrentIndex]
}

// Transition describes a tab change
type Transition struct {
	From      Tab
	To        Tab
	Direction Direction
}

// RootViewModel tracks which tab is shown
type RootViewModel struct {
	State      *observable.Property[RootState]
	Transition *observable.Signal[Transition]
}

// NewRootViewModel starts on the home tab
func NewRootViewModel() *RootViewModel {
	return &RootViewModel{
		State:      observable.NewProperty(RootState{CurrentIndex: 0}),
		Transition: observable.NewSignal[Transition](),
	}
}

// DidTap switches to tab. Tapping the current tab does nothing.
func (vm *RootViewModel) DidTap(tab Tab) {
	to := indexOf(tab)
	if to < 0 {
		return
	}

	from := vm.State.Value().CurrentIndex
	if from == to {
		return
	}

	dir := Forward
	if to < from {
		dir = Reverse
	}

	vm.State.Set(RootState{CurrentIndex: to})
	vm.Transition.Send(Transition{From: Tabs[from], To: tab, Direction: dir})
}

// Next moves one tab to the right, wrapping around
func (vm *RootViewModel) Next() {
	cur := vm.State.Value().CurrentIndex
	vm.DidTap(Tabs[(cur+1)%len(Tabs)])
}

// Prev moves one tab to the left, wrapping around
func (vm *RootViewModel) Prev() {
	cur := vm.State.Value().CurrentIndex
	vm.DidTap(Tabs[(cur+len(Tabs)-1)%len(Tabs)])
}

func indexOf(tab Tab) int {
	for i, t := range Tabs {
		if t == tab {
			return i
		}
	}
	return -1
}
