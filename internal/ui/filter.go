package ui

import (
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/microqrart/internal/history"
	"github.com/pstuifzand/microqrart/internal/model"
	"github.com/pstuifzand/microqrart/internal/search"
)

const filterHistorySize = 50

// Filter narrows the list with a search query typed after "/"
type Filter struct {
	active  bool
	input   LineInput
	query   string
	expr    search.FilterExpr
	err     error
	history *History
}

// NewFilter creates a filter whose history lives in memory only
func NewFilter() *Filter {
	return &Filter{expr: search.AlwaysMatchExpr{}, history: NewHistory(filterHistorySize)}
}

// NewFilterWithHistory creates a filter whose history is kept in filter.toml
func NewFilterWithHistory(manager *history.Manager) *Filter {
	h, err := NewHistoryWithManager(filterHistorySize, manager, "filter.toml")
	if err != nil {
		log.Printf("Failed to load filter history: %v", err)
	}
	return &Filter{expr: search.AlwaysMatchExpr{}, history: h}
}

// Start opens the filter prompt with the current query
func (f *Filter) Start() {
	f.active = true
	f.input.SetText(f.query)
	f.history.Reset()
}

// IsActive returns whether the filter prompt is open
func (f *Filter) IsActive() bool {
	return f.active
}

// Query returns the applied query
func (f *Filter) Query() string {
	return f.query
}

// Err returns the parse error of the text being typed, if any
func (f *Filter) Err() error {
	return f.err
}

// IsFiltering reports whether a non-empty query is applied
func (f *Filter) IsFiltering() bool {
	return f.query != ""
}

// SetQuery applies query. An invalid query keeps the previous expression
// and is reported by Err.
func (f *Filter) SetQuery(query string) {
	query = strings.TrimSpace(query)
	expr, err := search.ParseQuery(query)
	f.err = err
	if err != nil {
		return
	}
	f.query = query
	f.expr = expr
}

// Clear removes the applied query
func (f *Filter) Clear() {
	f.query = ""
	f.expr = search.AlwaysMatchExpr{}
	f.err = nil
}

// Apply returns the records matching the applied query
func (f *Filter) Apply(list model.List) model.List {
	if f.query == "" {
		return list
	}
	return search.Filter(list, f.expr)
}

// HandleKey edits the query; the list follows every keystroke. changed is
// true when the applied query changed.
func (f *Filter) HandleKey(ev *tcell.EventKey) (changed bool) {
	before := f.query

	switch ev.Key() {
	case tcell.KeyUp:
		if prev, ok := f.history.Previous(f.input.Text()); ok {
			f.input.SetText(prev)
			f.SetQuery(prev)
		}
		return f.query != before
	case tcell.KeyDown:
		if next, ok := f.history.Next(); ok {
			f.input.SetText(next)
			f.SetQuery(next)
		}
		return f.query != before
	}

	switch f.input.HandleKey(ev) {
	case PromptSubmit:
		f.active = false
		f.history.Add(f.query)
	case PromptCancel:
		f.active = false
		f.Clear()
	default:
		f.SetQuery(f.input.Text())
	}
	return f.query != before
}

// Render draws the filter prompt on row y
func (f *Filter) Render(screen *Screen, y int) {
	if !f.active {
		return
	}
	f.input.Render(screen, y, "/")
	if f.err != nil {
		msg := " " + f.err.Error()
		x := screen.GetWidth() - StringWidth(msg)
		if x > StringWidth(f.input.Text())+2 {
			screen.DrawString(x, y, msg, screen.StatusErrorStyle())
		}
	}
}
