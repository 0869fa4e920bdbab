// Package store persists object-graph snapshots for the HTTP API.
//
// Two implementations are provided: [MemoryStore] for single-process use and
// tests, and [MongoStore] for deployments where snapshots outlive the
// server process. Both store the graphio wire types directly.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/scopeviz/scopetree/pkg/graphio"
)

// ErrNotFound is returned when a snapshot ID does not exist in the store.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one stored object-graph snapshot.
type Snapshot struct {
	ID        string        `json:"id" bson:"_id"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	NodeCount int           `json:"node_count" bson:"node_count"`
	Graph     graphio.Graph `json:"graph" bson:"graph"`
}

// Store is the snapshot persistence interface.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put stores a snapshot, overwriting any existing one with the same ID.
	Put(ctx context.Context, snap Snapshot) error

	// Get retrieves a snapshot by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (Snapshot, error)

	// List returns all stored snapshots, newest first, without graph bodies.
	List(ctx context.Context) ([]Snapshot, error)

	// Delete removes a snapshot. Deleting a missing ID returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore keeps snapshots in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]Snapshot)}
}

// Put implements [Store].
func (s *MemoryStore) Put(ctx context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[snap.ID] = snap
	return nil
}

// Get implements [Store].
func (s *MemoryStore) Get(ctx context.Context, id string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snap, nil
}

// List implements [Store].
func (s *MemoryStore) List(ctx context.Context) ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Snapshot, 0, len(s.snaps))
	for _, snap := range s.snaps {
		snap.Graph = graphio.Graph{} // listings omit graph bodies
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Delete implements [Store].
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snaps[id]; !ok {
		return ErrNotFound
	}
	delete(s.snaps, id)
	return nil
}

// Close implements [Store].
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
