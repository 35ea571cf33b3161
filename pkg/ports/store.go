package ports

import (
	"context"

	"github.com/aretw0/dfakit/pkg/domain"
)

// AutomatonStore defines the interface for persisting built automata by name.
type AutomatonStore interface {
	// Save persists the automaton under name, replacing any previous value.
	Save(ctx context.Context, name string, a *domain.Automaton) error

	// Load retrieves the automaton stored under name.
	// Returns domain.ErrAutomatonNotFound if the name does not exist.
	Load(ctx context.Context, name string) (*domain.Automaton, error)

	// Delete removes the automaton stored under name.
	Delete(ctx context.Context, name string) error

	// List returns the stored names.
	List(ctx context.Context) ([]string, error)
}
