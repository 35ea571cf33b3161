package domain

import "errors"

// ErrDuplicateState is returned when a state name is registered twice.
var ErrDuplicateState = errors.New("duplicate state")

// ErrUnknownState is returned when an operation names a state that is not registered.
var ErrUnknownState = errors.New("unknown state")

// ErrInvalidStateName is returned for names that cannot be represented (empty or containing a comma).
var ErrInvalidStateName = errors.New("invalid state name")

// ErrMalformedTransition is returned when a transition descriptor is not exactly "from,symbol,to".
var ErrMalformedTransition = errors.New("malformed transition")

// ErrConflictingTransition is returned when a state already has a different target for a symbol.
var ErrConflictingTransition = errors.New("conflicting transition")

// ErrMalformedAutomaton is returned when a transition references a state that does not exist.
var ErrMalformedAutomaton = errors.New("malformed automaton")

// ErrNoInitialState is returned when an automaton has no initial state to start from.
var ErrNoInitialState = errors.New("no initial state")

// ErrFileUnreadable is returned when a descriptor source cannot be opened or read.
var ErrFileUnreadable = errors.New("file unreadable")

// ErrAutomatonNotFound is returned when a name cannot be found in the store.
var ErrAutomatonNotFound = errors.New("automaton not found")

// ErrInvalidName is returned when a store key cannot be used as an automaton name.
var ErrInvalidName = errors.New("invalid automaton name")
