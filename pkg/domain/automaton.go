package domain

import (
	"errors"
	"fmt"
)

// Automaton is a built DFA: its states, the per-state transition tables and the
// transition list. It is immutable; every accessor returns a copy.
type Automaton struct {
	registry    *Registry
	tables      map[string]TransitionTable
	transitions []Transition // arrival order
}

// NewAutomaton assembles an automaton from a registry and transitions in arrival order.
// The registry is copied. On a symbol collision the later transition wins the table
// slot; callers that need strict determinism reject collisions before this point.
func NewAutomaton(reg *Registry, transitions []Transition) *Automaton {
	if reg == nil {
		reg = NewRegistry()
	}
	a := &Automaton{
		registry:    reg.Clone(),
		tables:      make(map[string]TransitionTable),
		transitions: make([]Transition, len(transitions)),
	}
	copy(a.transitions, transitions)

	for _, t := range transitions {
		table, ok := a.tables[t.From]
		if !ok {
			table = make(TransitionTable)
			a.tables[t.From] = table
		}
		table[t.Symbol] = t.To
	}
	return a
}

// States returns the states in declaration order.
func (a *Automaton) States() []State {
	return a.registry.States()
}

// State returns the named state.
func (a *Automaton) State(name string) (State, bool) {
	id, ok := a.registry.Find(name)
	if !ok {
		return State{}, false
	}
	return a.registry.State(id)
}

// Initial returns the initial state, or ErrNoInitialState.
func (a *Automaton) Initial() (State, error) {
	return a.registry.Initial()
}

// Finals returns the final states in declaration order.
func (a *Automaton) Finals() []State {
	var out []State
	for _, s := range a.registry.States() {
		if s.Final {
			out = append(out, s)
		}
	}
	return out
}

// Transitions returns the transitions most-recently-added first.
func (a *Automaton) Transitions() []Transition {
	out := make([]Transition, 0, len(a.transitions))
	for i := len(a.transitions) - 1; i >= 0; i-- {
		out = append(out, a.transitions[i])
	}
	return out
}

// Table returns a copy of the transition table of the named state.
// States without outgoing transitions have an empty table.
func (a *Automaton) Table(name string) TransitionTable {
	return a.tables[name].clone()
}

// Next looks up the destination of (from, symbol).
func (a *Automaton) Next(from string, symbol rune) (string, bool) {
	return a.tables[from].Lookup(symbol)
}

// Validate checks the invariants required to simulate: every transition endpoint is
// a registered state and exactly one state is initial.
func (a *Automaton) Validate() error {
	var errs []error
	for _, t := range a.transitions {
		if _, ok := a.registry.Find(t.From); !ok {
			errs = append(errs, fmt.Errorf("%w: transition %s: source %q is not declared", ErrMalformedAutomaton, t, t.From))
		}
		if _, ok := a.registry.Find(t.To); !ok {
			errs = append(errs, fmt.Errorf("%w: transition %s: target %q is not declared", ErrMalformedAutomaton, t, t.To))
		}
	}

	initials := 0
	for _, s := range a.registry.States() {
		if s.Initial {
			initials++
		}
	}
	switch {
	case initials == 0:
		errs = append(errs, ErrNoInitialState)
	case initials > 1:
		errs = append(errs, fmt.Errorf("%w: %d initial states", ErrMalformedAutomaton, initials))
	}

	return errors.Join(errs...)
}
