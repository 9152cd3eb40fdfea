package repository

import (
	"context"
	"log"
	"sync"

	"github.com/pstuifzand/microqrart/internal/model"
)

// SampleRecords returns the records the fixture starts with
func SampleRecords() model.List {
	return model.List{
		{ID: "1", Title: "Home Wi-Fi", Source: "https://wifi.example.com/qr/1234567890", Date: "2025/05/30"},
		{ID: "2", Title: "Office Wi-Fi", Source: "https://wifi.example.com/qr/0987654321", Date: "2025/05/29"},
		{ID: "3", Title: "Business card", Source: "https://meishi.example.com/qr/1111111111", Date: "2025/05/28"},
		{ID: "4", Title: "Event entry", Source: "https://event.example.com/qr/2222222222", Date: "2025/05/27"},
	}
}

// Fixture is an in-memory repository
type Fixture struct {
	mu      sync.Mutex
	records model.List
}

// NewFixture creates a fixture seeded with the sample records
func NewFixture() *Fixture {
	return NewFixtureWith(SampleRecords())
}

// NewFixtureWith creates a fixture holding a copy of records
func NewFixtureWith(records model.List) *Fixture {
	return &Fixture{records: records.Clone()}
}

// Fetch returns a snapshot of the records
func (f *Fixture) Fetch(ctx context.Context) (model.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records.Clone(), nil
}

// Delete removes the record with the given id
func (f *Fixture) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.records.IndexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	log.Printf("Deleting fixture record %s", id)
	f.records = f.records.Without(idx)
	return nil
}

// Update replaces the record with the same id
func (f *Fixture) Update(ctx context.Context, rec model.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.records.IndexOf(rec.ID)
	if idx < 0 {
		return ErrNotFound
	}
	log.Printf("Updating fixture record %s", rec.ID)
	f.records = f.records.WithRecord(idx, rec)
	return nil
}
