package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/dfakit/pkg/domain"
)

// Option defines a functional option for configuring the Simulator.
type Option func(*Simulator)

// WithLogger sets a custom structured logger for the simulator.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Simulator) {
		s.hooks = hooks
	}
}

// Simulator walks input strings through an automaton.
// It holds no per-run state and may be shared across goroutines as long as the
// registered hooks are themselves safe for concurrent use.
type Simulator struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// NewSimulator creates a simulator.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes input against a, one rune per step, starting at the initial state.
// A symbol with no transition leaves the run Stuck, which is a Rejected verdict and
// not an error. The automaton is never modified.
func (s *Simulator) Run(ctx context.Context, a *domain.Automaton, input string) (*domain.Result, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil automaton", domain.ErrMalformedAutomaton)
	}

	initial, err := a.Initial()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	s.emitRunStart(ctx, input)

	res := &domain.Result{
		Input:  input,
		Status: domain.StatusRunning,
		State:  initial.Name,
		Path:   []string{initial.Name},
	}

	for idx, sym := range []rune(input) {
		next, ok := a.Next(res.State, sym)
		if !ok {
			res.Status = domain.StatusStuck
			res.Symbol = string(sym)
			s.logger.Debug("no transition", "state", res.State, "symbol", res.Symbol, "index", idx)
			break
		}

		s.emitStep(ctx, res.State, sym, next, idx)
		res.State = next
		res.Consumed++
		res.Path = append(res.Path, next)
	}

	s.halt(a, res)

	s.logger.Debug("run finished",
		"input", input,
		"verdict", res.Verdict,
		"status", res.Status,
		"state", res.State,
	)
	s.emitHalt(ctx, res, time.Since(start))

	return res, nil
}

// halt evaluates the terminal verdict of a run.
func (s *Simulator) halt(a *domain.Automaton, res *domain.Result) {
	if res.Status == domain.StatusStuck {
		res.Verdict = domain.Rejected
		return
	}

	// Dangling targets (permissive builds) have no registry entry and are never final.
	if st, ok := a.State(res.State); ok && st.Final {
		res.Status = domain.StatusAccepted
		res.Verdict = domain.Accepted
		return
	}
	res.Status = domain.StatusRejected
	res.Verdict = domain.Rejected
}

// Accepts reports whether a accepts input. Errors are reported as rejection.
func (s *Simulator) Accepts(ctx context.Context, a *domain.Automaton, input string) bool {
	res, err := s.Run(ctx, a, input)
	return err == nil && res.Accepted()
}

func (s *Simulator) emitRunStart(ctx context.Context, input string) {
	if s.hooks.OnRunStart == nil {
		return
	}
	s.hooks.OnRunStart(ctx, &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunStart},
		Input:     input,
	})
}

func (s *Simulator) emitStep(ctx context.Context, from string, sym rune, to string, idx int) {
	if s.hooks.OnStep == nil {
		return
	}
	s.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep},
		From:      from,
		Symbol:    string(sym),
		To:        to,
		Index:     idx,
	})
}

func (s *Simulator) emitHalt(ctx context.Context, res *domain.Result, d time.Duration) {
	if s.hooks.OnHalt == nil {
		return
	}
	s.hooks.OnHalt(ctx, &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventHalt},
		Input:     res.Input,
		Result:    res,
		Duration:  d,
	})
}
