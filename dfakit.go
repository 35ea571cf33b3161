package dfakit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/dfakit/internal/runtime"
	"github.com/aretw0/dfakit/pkg/adapters/memory"
	"github.com/aretw0/dfakit/pkg/builder"
	"github.com/aretw0/dfakit/pkg/descriptor"
	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/aretw0/dfakit/pkg/ports"
)

// Engine is the high-level entry point for the dfakit library.
// It wires the builder, the simulator and a store together behind a small API.
type Engine struct {
	simulator *runtime.Simulator
	store     ports.AutomatonStore
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	strict    bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks on the simulator.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithStore injects a custom AutomatonStore (default: in-memory).
func WithStore(store ports.AutomatonStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithValidation toggles strict construction (default: true).
// Permissive engines accept what the descriptor allows and log the rest as warnings.
func WithValidation(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// New initializes a new Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{strict: true}

	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil down to the runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	eng.simulator = runtime.NewSimulator(
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	)

	return eng, nil
}

// NewBuilder returns a builder configured like the engine, for token-by-token construction.
func (e *Engine) NewBuilder() *builder.Builder {
	return builder.New(
		builder.WithValidation(e.strict),
		builder.WithLogger(e.logger),
	)
}

// Build reads a descriptor stream into a fresh builder and returns it with the result.
// The builder is returned even on failure so callers can inspect its warnings.
func (e *Engine) Build(ctx context.Context, src ports.LineReader) (*domain.Automaton, *builder.Builder, error) {
	b := e.NewBuilder()
	if err := b.ReadFrom(ctx, src); err != nil {
		return nil, b, err
	}
	a, err := b.Build()
	if err != nil {
		return nil, b, err
	}
	for _, w := range b.Warnings() {
		e.logger.Warn("descriptor accepted with warning", "warning", w)
	}
	return a, b, nil
}

// Load builds an automaton from a descriptor reader.
func (e *Engine) Load(ctx context.Context, r io.Reader) (*domain.Automaton, error) {
	a, _, err := e.Build(ctx, ports.NewReaderLines(r))
	return a, err
}

// LoadFile builds an automaton from a descriptor file.
// A file that cannot be opened yields an error wrapping domain.ErrFileUnreadable.
func (e *Engine) LoadFile(ctx context.Context, path string) (*domain.Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrFileUnreadable, path, err)
	}
	defer f.Close()

	a, err := e.Load(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	e.logger.Debug("automaton loaded", "path", path, "states", len(a.States()))
	return a, nil
}

// WriteFile saves the descriptor of a to path.
func (e *Engine) WriteFile(path string, a *domain.Automaton) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := descriptor.Encode(f, a); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Run simulates input against a.
func (e *Engine) Run(ctx context.Context, a *domain.Automaton, input string) (*domain.Result, error) {
	return e.simulator.Run(ctx, a, input)
}

// RunAll simulates every input against a, in order.
func (e *Engine) RunAll(ctx context.Context, a *domain.Automaton, inputs []string) ([]*domain.Result, error) {
	results := make([]*domain.Result, 0, len(inputs))
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := e.simulator.Run(ctx, a, in)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Save stores a under name.
func (e *Engine) Save(ctx context.Context, name string, a *domain.Automaton) error {
	return e.store.Save(ctx, name, a)
}

// Fetch loads the automaton stored under name.
func (e *Engine) Fetch(ctx context.Context, name string) (*domain.Automaton, error) {
	return e.store.Load(ctx, name)
}

// Store returns the underlying AutomatonStore.
func (e *Engine) Store() ports.AutomatonStore {
	return e.store
}

// Strict reports whether the engine validates strictly.
func (e *Engine) Strict() bool {
	return e.strict
}
