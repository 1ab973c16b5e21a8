// Package store persists calendar events. The core only depends on the
// Store interface; the SQLite implementation lives alongside it for the
// standalone binary and for tests.
package store

import (
	"context"

	"github.com/minjaecode/haruplan/internal/models"
)

// Store is the persistence collaborator contract. Implementations
// report failures as opaque errors; callers only act on success or
// failure, never on error detail.
type Store interface {
	// FetchAll returns every stored event in insertion order.
	FetchAll(ctx context.Context) ([]models.Event, error)

	// Create persists a draft, assigning it an id, and returns the
	// stored record.
	Create(ctx context.Context, event models.Event) (models.Event, error)

	// Update replaces the stored record with the event's id.
	Update(ctx context.Context, event models.Event) error

	// Delete removes the event with the given id.
	Delete(ctx context.Context, id string) error

	Close() error
}
