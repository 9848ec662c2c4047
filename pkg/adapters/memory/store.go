// Package memory provides an in-memory ModelStore, suitable for tests and
// single-process deployments.
package memory

import (
	"context"
	"sync"

	"github.com/autostate/autostate/pkg/domain"
)

// Store implements ports.ModelStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Model
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Model),
	}
}

// Put persists a model snapshot. The snapshot is deep-copied so later
// caller mutations cannot leak into the store.
func (s *Store) Put(ctx context.Context, model domain.Model) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[model.ID] = model.Clone()
	return nil
}

// Get retrieves a copy of the stored snapshot.
func (s *Store) Get(ctx context.Context, id string) (domain.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	model, ok := s.data[id]
	if !ok {
		return domain.Model{}, domain.ErrModelNotFound
	}
	return model.Clone(), nil
}

// List returns the stored model ids.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

// Delete removes a model.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[id]; !ok {
		return domain.ErrModelNotFound
	}
	delete(s.data, id)
	return nil
}
