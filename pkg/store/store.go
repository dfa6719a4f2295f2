// Package store persists placement run records so the API server can serve
// run history and results after the fact. A memory backend covers tests and
// single-process use; MongoDB covers server deployments.
package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/boardwalk-eda/boardwalk/pkg/errors"
)

// Run is one recorded placement run.
type Run struct {
	ID         string          `json:"id" bson:"_id"`
	BoardName  string          `json:"board_name" bson:"board_name"`
	BoardHash  string          `json:"board_hash" bson:"board_hash"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
	Iterations int             `json:"iterations" bson:"iterations"`
	Converged  bool            `json:"converged" bson:"converged"`
	WireLength float64         `json:"wire_length" bson:"wire_length"`
	Energy     float64         `json:"energy" bson:"energy"`
	Board      json.RawMessage `json:"board,omitempty" bson:"board,omitempty"`
}

// Store is the interface for run persistence backends.
// All methods are safe for concurrent use.
type Store interface {
	// SaveRun inserts or replaces a run record.
	SaveRun(ctx context.Context, run *Run) error

	// GetRun retrieves a run by ID. A missing run reports a RUN_NOT_FOUND
	// coded error.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns up to limit runs, newest first. A limit of 0 means
	// no limit.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	// DeleteRun removes a run. Deleting a missing run is not an error.
	DeleteRun(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore is an in-process Store for tests and single-binary use.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]*Run)}
}

// SaveRun inserts or replaces a run record.
func (s *MemoryStore) SaveRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "run ID cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *run
	s.runs[run.ID] = &cp
	return nil
}

// GetRun retrieves a run by ID.
func (s *MemoryStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeRunNotFound, "run %q not found", id)
	}
	cp := *run
	return &cp, nil
}

// ListRuns returns up to limit runs, newest first.
func (s *MemoryStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*Run, 0, len(s.runs))
	for _, run := range s.runs {
		cp := *run
		runs = append(runs, &cp)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// DeleteRun removes a run.
func (s *MemoryStore) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
