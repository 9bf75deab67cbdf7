package catalog

import (
	"context"
	"sync"
)

// MemoryStore keeps the catalog in process. Entries keep insertion order.
type MemoryStore struct {
	mu     sync.RWMutex
	models []Model
}

// NewMemoryStore creates a store seeded with models, or the defaults when none are given.
func NewMemoryStore(models ...Model) *MemoryStore {
	if len(models) == 0 {
		models = Defaults()
	}
	s := &MemoryStore{models: make([]Model, 0, len(models))}
	for _, m := range models {
		s.models = append(s.models, m.clone())
	}
	return s
}

func (s *MemoryStore) List(ctx context.Context) ([]Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Model, len(s.models))
	for i, m := range s.models {
		out[i] = m.clone()
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return Model{}, ErrModelNotFound
	}
	return s.models[i].clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, patch Patch) (Model, error) {
	if err := patch.Validate(); err != nil {
		return Model{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return Model{}, ErrModelNotFound
	}
	s.models[i] = s.models[i].Apply(patch)
	return s.models[i].clone(), nil
}

func (s *MemoryStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return ErrModelNotFound
	}
	s.models = append(s.models[:i], s.models[i+1:]...)
	return nil
}

func (s *MemoryStore) index(id string) int {
	for i, m := range s.models {
		if m.ID == id {
			return i
		}
	}
	return -1
}
