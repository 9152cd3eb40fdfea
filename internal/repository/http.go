package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/pstuifzand/microqrart/internal/model"
)

// maxResponseSize bounds how much of the list response is read
const maxResponseSize = 4 << 20

// HTTP fetches the list from a JSON endpoint. The endpoint is read-only, so
// deletions and edits are kept in a local overlay applied to every fetch.
type HTTP struct {
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker

	mu      sync.Mutex
	deleted map[string]bool
	edits   map[string]model.Record
}

// NewHTTP creates a repository for the given endpoint
func NewHTTP(endpoint string, client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "qrcode-list",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("Circuit breaker '%s' state changed from %v to %v", name, from, to)
		},
	})

	return &HTTP{
		endpoint: endpoint,
		client:   client,
		breaker:  breaker,
		deleted:  make(map[string]bool),
		edits:    make(map[string]model.Record),
	}
}

// Fetch downloads the list and applies local deletions and edits
func (h *HTTP) Fetch(ctx context.Context) (model.List, error) {
	out, err := h.breaker.Execute(func() (interface{}, error) {
		return h.get(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", h.endpoint, err)
	}

	return h.applyOverlay(out.(model.List)), nil
}

func (h *HTTP) get(ctx context.Context) (model.List, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var payload model.APIResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if payload.Result != model.ResultSuccess {
		return nil, fmt.Errorf("endpoint returned result %q", payload.Result)
	}

	return model.List(payload.Data), nil
}

func (h *HTTP) applyOverlay(list model.List) model.List {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make(model.List, 0, len(list))
	for _, rec := range list {
		if h.deleted[rec.ID] {
			continue
		}
		if edited, ok := h.edits[rec.ID]; ok {
			rec = edited
		}
		out = append(out, rec)
	}
	return out
}

// Delete hides the record from subsequent fetches
func (h *HTTP) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.deleted[id] = true
	delete(h.edits, id)
	return nil
}

// Update overrides the record in subsequent fetches
func (h *HTTP) Update(ctx context.Context, rec model.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.deleted[rec.ID] {
		return ErrNotFound
	}
	h.edits[rec.ID] = rec
	return nil
}

// State returns the circuit breaker state, for the status line
func (h *HTTP) State() gobreaker.State {
	return h.breaker.State()
}
