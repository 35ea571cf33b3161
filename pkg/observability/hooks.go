package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/dfakit/pkg/domain"
)

// LogHooks returns lifecycle hooks that write one record per run.
// Steps are logged at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"from", e.From,
				"symbol", e.Symbol,
				"to", e.To,
				"index", e.Index,
			)
		},
		OnHalt: func(ctx context.Context, e *domain.RunEvent) {
			if e.Result == nil {
				return
			}
			logger.InfoContext(ctx, "run",
				"input", e.Input,
				"verdict", e.Result.Verdict,
				"status", e.Result.Status,
				"state", e.Result.State,
				"duration", e.Duration,
			)
		},
	}
}

// Combine merges several hook sets; each callback fans out in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnRunStart = chainRun(out.OnRunStart, h.OnRunStart)
		out.OnStep = chainStep(out.OnStep, h.OnStep)
		out.OnHalt = chainRun(out.OnHalt, h.OnHalt)
	}
	return out
}

func chainRun(a, b func(context.Context, *domain.RunEvent)) func(context.Context, *domain.RunEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.RunEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainStep(a, b func(context.Context, *domain.StepEvent)) func(context.Context, *domain.StepEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.StepEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
