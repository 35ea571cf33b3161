package domain

import (
	"errors"
	"fmt"
)

// Registry is the ordered collection of states of an automaton under construction.
// Lookups by name are hash-indexed; declaration order is preserved for serialization.
type Registry struct {
	states []State
	index  map[string]StateID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]StateID),
	}
}

// AddState registers a new state with default flags.
func (r *Registry) AddState(name string) (StateID, error) {
	if !ValidStateName(name) {
		return -1, fmt.Errorf("%w: %q", ErrInvalidStateName, name)
	}
	if _, ok := r.index[name]; ok {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateState, name)
	}

	id := StateID(len(r.states))
	r.states = append(r.states, State{Name: name})
	r.index[name] = id
	return id, nil
}

// SetInitial marks the named state as the initial state.
// Any previously initial state loses the flag, so there is at most one.
func (r *Registry) SetInitial(name string) error {
	id, ok := r.index[name]
	if !ok {
		return fmt.Errorf("%w: initial state %q", ErrUnknownState, name)
	}
	for i := range r.states {
		r.states[i].Initial = false
	}
	r.states[id].Initial = true
	return nil
}

// SetFinal marks each named state as final.
// Matched names are marked even when some names are unknown; every unknown name
// contributes one ErrUnknownState to the joined error.
func (r *Registry) SetFinal(names []string) error {
	var errs []error
	for _, name := range names {
		id, ok := r.index[name]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: final state %q", ErrUnknownState, name))
			continue
		}
		r.states[id].Final = true
	}
	return errors.Join(errs...)
}

// Find returns the id of the named state.
func (r *Registry) Find(name string) (StateID, bool) {
	id, ok := r.index[name]
	return id, ok
}

// State returns the state registered under id.
func (r *Registry) State(id StateID) (State, bool) {
	if id < 0 || int(id) >= len(r.states) {
		return State{}, false
	}
	return r.states[id], true
}

// Len returns the number of registered states.
func (r *Registry) Len() int {
	return len(r.states)
}

// States returns a copy of the states in declaration order.
func (r *Registry) States() []State {
	out := make([]State, len(r.states))
	copy(out, r.states)
	return out
}

// Initial returns the initial state.
func (r *Registry) Initial() (State, error) {
	for _, s := range r.states {
		if s.Initial {
			return s, nil
		}
	}
	return State{}, ErrNoInitialState
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	out := &Registry{
		states: r.States(),
		index:  make(map[string]StateID, len(r.index)),
	}
	for k, v := range r.index {
		out.index[k] = v
	}
	return out
}
