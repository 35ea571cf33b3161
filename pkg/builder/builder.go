package builder

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/dfakit/pkg/domain"
)

// Option defines a functional option for configuring the Builder.
type Option func(*Builder)

// WithValidation toggles strict validation (default: true).
func WithValidation(strict bool) Option {
	return func(b *Builder) {
		b.strict = strict
	}
}

// WithLogger sets a structured logger for construction diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

type edge struct {
	from   string
	symbol rune
}

// Builder manages the automaton construction.
// It is not safe for concurrent use.
type Builder struct {
	registry    *domain.Registry
	transitions []domain.Transition
	edges       map[edge]string

	strict   bool
	finalErr error
	warnings []error
	logger   *slog.Logger
}

// New creates a new automaton builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		registry: domain.NewRegistry(),
		edges:    make(map[edge]string),
		strict:   true,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Strict reports whether the builder validates strictly.
func (b *Builder) Strict() bool {
	return b.strict
}

// DeclareStates registers every name of a comma-separated state list, in order.
func (b *Builder) DeclareStates(csv string) error {
	for _, name := range ParseStateList(csv) {
		if err := b.AddState(name); err != nil {
			return err
		}
	}
	return nil
}

// AddState registers a single state.
func (b *Builder) AddState(name string) error {
	if _, err := b.registry.AddState(name); err != nil {
		return err
	}
	b.logger.Debug("state declared", "state", name)
	return nil
}

// SetInitial marks the named state as initial.
func (b *Builder) SetInitial(name string) error {
	if err := b.registry.SetInitial(name); err != nil {
		return err
	}
	b.logger.Debug("initial state set", "state", name)
	return nil
}

// SetFinal marks every state of a comma-separated list as final.
// Known names are always marked. Unknown names are returned as a joined
// ErrUnknownState error; a strict builder also refuses to Build afterwards,
// a permissive one records them in Warnings.
func (b *Builder) SetFinal(csv string) error {
	err := b.registry.SetFinal(ParseStateList(csv))
	if err == nil {
		return nil
	}

	if b.strict {
		b.finalErr = errors.Join(b.finalErr, err)
	} else {
		b.warn(err)
	}
	return err
}

// AddTransition parses a "from,symbol,to" descriptor and registers it.
func (b *Builder) AddTransition(desc string) error {
	t, err := ParseTransition(desc)
	if err != nil {
		return err
	}
	return b.Add(t)
}

// Add registers a parsed transition into the owning state's table.
// A second target for the same (from, symbol) is a conflict: strict builders fail
// with ErrConflictingTransition, permissive ones keep the first target and warn.
// Exact duplicates are ignored with a warning.
func (b *Builder) Add(t domain.Transition) error {
	if !domain.ValidSymbol(t.Symbol) {
		return fmt.Errorf("%w: symbol %q cannot be serialized", domain.ErrMalformedTransition, string(t.Symbol))
	}
	if !domain.ValidStateName(t.From) || !domain.ValidStateName(t.To) {
		return fmt.Errorf("%w: %s: %w", domain.ErrMalformedTransition, t, domain.ErrInvalidStateName)
	}
	if b.strict {
		for _, name := range []string{t.From, t.To} {
			if _, ok := b.registry.Find(name); !ok {
				return fmt.Errorf("%w: transition %s references undeclared state %q", domain.ErrMalformedAutomaton, t, name)
			}
		}
	}

	key := edge{from: t.From, symbol: t.Symbol}
	if to, ok := b.edges[key]; ok {
		if to == t.To {
			b.warn(fmt.Errorf("duplicate transition %s ignored", t))
			return nil
		}
		err := fmt.Errorf("%w: %s already goes to %q on %q", domain.ErrConflictingTransition, t.From, to, string(t.Symbol))
		if b.strict {
			return err
		}
		b.warn(err)
		return nil
	}

	b.edges[key] = t.To
	b.transitions = append(b.transitions, t)
	b.logger.Debug("transition added", "from", t.From, "symbol", string(t.Symbol), "to", t.To)
	return nil
}

// Warnings returns the problems tolerated so far.
func (b *Builder) Warnings() []error {
	out := make([]error, len(b.warnings))
	copy(out, b.warnings)
	return out
}

// Build assembles the automaton. A strict builder validates it first.
func (b *Builder) Build() (*domain.Automaton, error) {
	a := domain.NewAutomaton(b.registry, b.transitions)

	if b.strict {
		if b.finalErr != nil {
			return nil, b.finalErr
		}
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}

	b.logger.Debug("automaton built",
		"states", b.registry.Len(),
		"transitions", len(b.transitions),
		"warnings", len(b.warnings),
	)
	return a, nil
}

func (b *Builder) warn(err error) {
	b.warnings = append(b.warnings, err)
	b.logger.Warn("builder warning", "error", err)
}
