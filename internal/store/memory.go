package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ivywatch/internal/model"
)

// Memory is an in-process Store with the same (url, content_hash) semantics
// as the Mongo implementation. Used by tests and the --memory flag.
type Memory struct {
	mu     sync.Mutex
	rows   []model.Snapshot
	nextID int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Insert stores a snapshot unless its (url, content_hash) pair exists.
func (m *Memory) Insert(_ context.Context, snap *model.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, row := range m.rows {
		if row.URL == snap.URL && row.ContentHash == snap.ContentHash {
			return ErrDuplicate
		}
	}

	m.nextID++
	if snap.ID == "" {
		snap.ID = fmt.Sprintf("mem-%d", m.nextID)
	}
	if snap.ExtractedAt.IsZero() {
		snap.ExtractedAt = time.Now().UTC()
	}
	m.rows = append(m.rows, *snap)
	return nil
}

// ListByUniversity returns a university's snapshots, newest first.
func (m *Memory) ListByUniversity(_ context.Context, university string) ([]model.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Snapshot
	for _, row := range m.rows {
		if row.University == university {
			out = append(out, row)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// Latest returns the most recent snapshots across all sources.
func (m *Memory) Latest(_ context.Context, limit int) ([]model.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Snapshot, len(m.rows))
	copy(out, m.rows)
	sortNewestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes one snapshot by ID.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, row := range m.rows {
		if row.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

// Count returns the number of snapshots matching the filter.
func (m *Memory) Count(_ context.Context, f Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, row := range m.rows {
		if f.University != "" && row.University != f.University {
			continue
		}
		if f.PageType != "" && row.PageType != f.PageType {
			continue
		}
		n++
	}
	return n, nil
}

// Close is a no-op.
func (m *Memory) Close(context.Context) error {
	return nil
}

func sortNewestFirst(snaps []model.Snapshot) {
	sort.SliceStable(snaps, func(i, j int) bool {
		return snaps[i].ExtractedAt.After(snaps[j].ExtractedAt)
	})
}
