package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/dfakit/pkg/domain"
)

// Store implements ports.AutomatonStore in memory.
// Safe for concurrent use. Automata are immutable, so they are shared, not copied.
type Store struct {
	data map[string]*domain.Automaton
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Automaton),
	}
}

// Save keeps the automaton under name.
func (s *Store) Save(ctx context.Context, name string, a *domain.Automaton) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidName)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = a
	return nil
}

// Load retrieves the automaton from memory.
func (s *Store) Load(ctx context.Context, name string) (*domain.Automaton, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.data[name]
	if !ok {
		return nil, domain.ErrAutomatonNotFound
	}
	return a, nil
}

// Delete removes the automaton.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
