package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ncruces/go-strftime"

	"github.com/pstuifzand/microqrart/internal/model"
	"github.com/pstuifzand/microqrart/internal/storage"
)

// File keeps the list in a JSON file
type File struct {
	store      *storage.JSONStore
	dateFormat string
	now        func() time.Time

	mu sync.Mutex
}

// NewFile creates a file repository. dateFormat is a strftime pattern used
// for the date label of new records.
func NewFile(store *storage.JSONStore, dateFormat string) *File {
	if dateFormat == "" {
		dateFormat = "%Y/%m/%d"
	}
	return &File{
		store:      store,
		dateFormat: dateFormat,
		now:        time.Now,
	}
}

// Fetch reads the list from disk
func (f *File) Fetch(ctx context.Context) (model.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.store.Load()
}

// Delete removes the record and writes the list back
func (f *File) Delete(ctx context.Context, id string) error {
	return f.modify(ctx, func(records model.List) (model.List, error) {
		idx := records.IndexOf(id)
		if idx < 0 {
			return nil, ErrNotFound
		}
		return records.Without(idx), nil
	})
}

// Update replaces the record with the same id and writes the list back
func (f *File) Update(ctx context.Context, rec model.Record) error {
	return f.modify(ctx, func(records model.List) (model.List, error) {
		idx := records.IndexOf(rec.ID)
		if idx < 0 {
			return nil, ErrNotFound
		}
		return records.WithRecord(idx, rec), nil
	})
}

// Add creates a record at the top of the list
func (f *File) Add(ctx context.Context, rec NewRecord) (model.Record, error) {
	created := model.Record{
		ID:     uuid.NewString(),
		Image:  strings.TrimSpace(rec.Image),
		Title:  strings.TrimSpace(rec.Title),
		Source: strings.TrimSpace(rec.Source),
		Date:   strftime.Format(f.dateFormat, f.now()),
	}

	err := f.modify(ctx, func(records model.List) (model.List, error) {
		out := make(model.List, 0, len(records)+1)
		out = append(out, created)
		return append(out, records...), nil
	})
	if err != nil {
		return model.Record{}, err
	}
	return created, nil
}

func (f *File) modify(ctx context.Context, change func(model.List) (model.List, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	records, err := f.store.Load()
	if err != nil {
		return err
	}
	updated, err := change(records)
	if err != nil {
		return err
	}
	if err := f.store.Save(updated); err != nil {
		return fmt.Errorf("save %s: %w", f.store.FilePath, err)
	}
	return nil
}
