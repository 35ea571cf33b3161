package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/dfakit"
	"github.com/aretw0/dfakit/internal/config"
	"github.com/aretw0/dfakit/internal/logging"
	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/aretw0/dfakit/pkg/observability"
)

// EngineOptions carries the command-line view of an engine setup.
type EngineOptions struct {
	Config *config.Config
	Debug  bool
	Hooks  []domain.LifecycleHooks
}

// NewLogger configures the application logger.
// Debug wins over the configured level.
func NewLogger(level string, debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(logging.ParseLevel(level))
}

// NewEngine initializes an engine with standard CLI conventions: the configured
// store, strictness and logger, plus step tracing in debug mode.
// The returned close function releases the store.
func NewEngine(opts EngineOptions, logger *slog.Logger) (*dfakit.Engine, func() error, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	store, closeStore, err := cfg.OpenStore()
	if err != nil {
		return nil, closeStore, err
	}

	hooks := opts.Hooks
	if opts.Debug {
		hooks = append(hooks, observability.LogHooks(logger))
	}

	engine, err := dfakit.New(
		dfakit.WithLogger(logger),
		dfakit.WithStore(store),
		dfakit.WithValidation(cfg.Strict),
		dfakit.WithLifecycleHooks(observability.Combine(hooks...)),
	)
	if err != nil {
		_ = closeStore()
		return nil, func() error { return nil }, fmt.Errorf("error initializing engine: %w", err)
	}

	logger.Debug("engine ready", "store", cfg.Store.Backend, "strict", cfg.Strict)
	return engine, closeStore, nil
}
