package ui

import (
	"log"

	"github.com/pstuifzand/microqrart/internal/history"
)

// History keeps previous prompt entries and lets the user walk through them
// with the arrow keys
type History struct {
	entries      []string
	currentIndex int // -1 when not navigating
	maxEntries   int
	pending      string // input typed before navigation started
	manager      *history.Manager
	filename     string
}

// NewHistory creates an in-memory history
func NewHistory(maxEntries int) *History {
	return &History{
		entries:      []string{},
		currentIndex: -1,
		maxEntries:   maxEntries,
	}
}

// NewHistoryWithManager creates a history persisted in filename. A load
// failure leaves the history empty and is returned for logging.
func NewHistoryWithManager(maxEntries int, manager *history.Manager, filename string) (*History, error) {
	h := NewHistory(maxEntries)
	h.manager = manager
	h.filename = filename

	entries, err := manager.Load(filename)
	if err != nil {
		return h, err
	}
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	h.entries = entries
	return h, nil
}

// Add appends entry, skipping blanks and immediate repeats, and saves the
// history when it is persisted
func (h *History) Add(entry string) {
	h.Reset()
	if entry == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}

	if err := h.Save(); err != nil {
		log.Printf("Failed to save history %s: %v", h.filename, err)
	}
}

// Save persists the entries if a manager is configured
func (h *History) Save() error {
	if h.manager == nil || h.filename == "" {
		return nil
	}
	return h.manager.Save(h.filename, h.entries)
}

// Previous steps back through history. current is the input shown before the
// first step and is restored when Next walks past the newest entry.
func (h *History) Previous(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}

	switch {
	case h.currentIndex < 0:
		h.pending = current
		h.currentIndex = len(h.entries) - 1
	case h.currentIndex > 0:
		h.currentIndex--
	}
	return h.entries[h.currentIndex], true
}

// Next steps forward through history
func (h *History) Next() (string, bool) {
	if h.currentIndex < 0 {
		return "", false
	}

	h.currentIndex++
	if h.currentIndex >= len(h.entries) {
		pending := h.pending
		h.Reset()
		return pending, true
	}
	return h.entries[h.currentIndex], true
}

// Reset leaves history navigation
func (h *History) Reset() {
	h.currentIndex = -1
	h.pending = ""
}

// GetAll returns a copy of all history entries
func (h *History) GetAll() []string {
	return append([]string(nil), h.entries...)
}

// Len returns the number of entries in history
func (h *History) Len() int {
	return len(h.entries)
}

// IsNavigating reports whether the user is walking through history
func (h *History) IsNavigating() bool {
	return h.currentIndex >= 0
}
