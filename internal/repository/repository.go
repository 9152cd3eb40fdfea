// Package repository provides the interchangeable backings of the QR code
// list: an in-memory fixture, a read-only HTTP endpoint and a JSON file.
package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pstuifzand/microqrart/internal/config"
	"github.com/pstuifzand/microqrart/internal/model"
	"github.com/pstuifzand/microqrart/internal/storage"
)

var (
	// ErrNotFound is returned when no record has the requested id
	ErrNotFound = errors.New("record not found")
	// ErrUnsupported is returned when a backing cannot perform an operation
	ErrUnsupported = errors.New("operation not supported by this source")
)

// Repository loads and mutates the QR code list
type Repository interface {
	Fetch(ctx context.Context) (model.List, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, rec model.Record) error
}

// NewRecord describes a record to create
type NewRecord struct {
	Title  string `json:"title" validate:"required,max=200"`
	Source string `json:"source" validate:"required,url"`
	Image  string `json:"image,omitempty" validate:"omitempty,url"`
}

// Adder is implemented by repositories that can create records
type Adder interface {
	Add(ctx context.Context, rec NewRecord) (model.Record, error)
}

// New builds the repository selected by the config source
func New(cfg *config.Config) (Repository, error) {
	switch cfg.Source {
	case config.SourceFixture, "":
		return NewFixture(), nil
	case config.SourceHTTP:
		client := &http.Client{Timeout: 10 * time.Second}
		return NewHTTP(cfg.Endpoint, client), nil
	case config.SourceFile:
		return NewFile(storage.NewJSONStore(cfg.DataFile), cfg.DateFormat), nil
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}
