// Package store persists snapshots behind a small interface so the pipeline
// never depends on a concrete engine.
package store

import (
	"context"
	"errors"

	"ivywatch/internal/model"
)

// ErrDuplicate is returned by Insert when a snapshot with the same
// (url, content_hash) pair already exists. Callers treat it as an expected
// skip, not a failure.
var ErrDuplicate = errors.New("snapshot already stored for url and content hash")

// Filter narrows Count.
type Filter struct {
	University string
	PageType   model.PageType
}

// Store is the persistence interface the pipeline consumes.
type Store interface {
	// Insert stores a new snapshot, assigning its ID. Returns ErrDuplicate
	// when the (url, content_hash) uniqueness constraint rejects it.
	Insert(ctx context.Context, snap *model.Snapshot) error
	// ListByUniversity returns all snapshots for a university ordered by
	// extraction time descending.
	ListByUniversity(ctx context.Context, university string) ([]model.Snapshot, error)
	// Latest returns the most recent snapshots across all sources.
	Latest(ctx context.Context, limit int) ([]model.Snapshot, error)
	// Delete removes one snapshot by ID.
	Delete(ctx context.Context, id string) error
	// Count returns the number of snapshots matching the filter.
	Count(ctx context.Context, f Filter) (int64, error)
	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
