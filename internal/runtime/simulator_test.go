package runtime_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/dfakit/internal/runtime"
	"github.com/aretw0/dfakit/pkg/builder"
	"github.com/aretw0/dfakit/pkg/descriptor"
	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onePlusA accepts a+.
const onePlusA = "q0,q1\nq0\nq1\nq0,a,q1\nq1,a,q1\n"

func mustParse(t *testing.T, text string, opts ...builder.Option) *domain.Automaton {
	t.Helper()
	a, err := descriptor.Parse(text, opts...)
	require.NoError(t, err)
	return a
}

func TestSimulator_Run(t *testing.T) {
	a := mustParse(t, onePlusA)
	sim := runtime.NewSimulator()
	ctx := context.Background()

	tests := []struct {
		input      string
		verdict    domain.Verdict
		status     domain.ExecutionStatus
		finalState string
		consumed   int
	}{
		{"a", domain.Accepted, domain.StatusAccepted, "q1", 1},
		{"aaaa", domain.Accepted, domain.StatusAccepted, "q1", 4},
		{"", domain.Rejected, domain.StatusRejected, "q0", 0},
		{"b", domain.Rejected, domain.StatusStuck, "q0", 0},
		{"aab", domain.Rejected, domain.StatusStuck, "q1", 2},
		{"aba", domain.Rejected, domain.StatusStuck, "q1", 1},
	}

	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			res, err := sim.Run(ctx, a, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.verdict, res.Verdict)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.finalState, res.State)
			assert.Equal(t, tt.consumed, res.Consumed)
			assert.Len(t, res.Path, tt.consumed+1)
		})
	}
}

func TestSimulator_StuckSymbol(t *testing.T) {
	a := mustParse(t, onePlusA)
	res, err := runtime.NewSimulator().Run(context.Background(), a, "ab")
	require.NoError(t, err)
	assert.True(t, res.Stuck())
	assert.Equal(t, "b", res.Symbol)
}

func TestSimulator_EmptyInputOnFinalInitial(t *testing.T) {
	a := mustParse(t, "s\ns\ns\n")
	res, err := runtime.NewSimulator().Run(context.Background(), a, "")
	require.NoError(t, err)
	assert.True(t, res.Accepted())
}

func TestSimulator_Unicode(t *testing.T) {
	a := mustParse(t, "q0,q1\nq0\nq1\nq0,λ,q1\n")
	assert.True(t, runtime.NewSimulator().Accepts(context.Background(), a, "λ"))
}

func TestSimulator_NoInitialState(t *testing.T) {
	a := mustParse(t, "q0,q1\n\nq1\nq0,a,q1\n", builder.WithValidation(false))
	_, err := runtime.NewSimulator().Run(context.Background(), a, "a")
	assert.ErrorIs(t, err, domain.ErrNoInitialState)

	assert.False(t, runtime.NewSimulator().Accepts(context.Background(), a, "a"))
}

func TestSimulator_NilAutomaton(t *testing.T) {
	_, err := runtime.NewSimulator().Run(context.Background(), nil, "a")
	assert.ErrorIs(t, err, domain.ErrMalformedAutomaton)
}

func TestSimulator_DanglingTarget(t *testing.T) {
	// Permissive builds may point at undeclared states; they behave as non-final sinks.
	a := mustParse(t, "q0\nq0\nq0\nq0,a,ghost\n", builder.WithValidation(false))
	sim := runtime.NewSimulator()

	res, err := sim.Run(context.Background(), a, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.Rejected, res.Verdict)
	assert.Equal(t, "ghost", res.State)

	res, err = sim.Run(context.Background(), a, "aa")
	require.NoError(t, err)
	assert.True(t, res.Stuck())
}

func TestSimulator_Idempotent(t *testing.T) {
	a := mustParse(t, onePlusA)
	before := descriptor.Format(a)
	sim := runtime.NewSimulator()

	for _, in := range []string{"a", "", "b", "aaab"} {
		r1, err := sim.Run(context.Background(), a, in)
		require.NoError(t, err)
		r2, err := sim.Run(context.Background(), a, in)
		require.NoError(t, err)
		assert.Equal(t, r1, r2)
	}
	assert.Equal(t, before, descriptor.Format(a), "simulation must not mutate the automaton")
}

func TestSimulator_ConcurrentRuns(t *testing.T) {
	a := mustParse(t, onePlusA)
	sim := runtime.NewSimulator()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := "a"
			if i%2 == 1 {
				in = "b"
			}
			res, err := sim.Run(context.Background(), a, in)
			assert.NoError(t, err)
			assert.Equal(t, i%2 == 0, res.Accepted())
		}(i)
	}
	wg.Wait()
}

func TestSimulator_LifecycleHooks(t *testing.T) {
	a := mustParse(t, onePlusA)

	var starts, halts int
	var steps []string
	var last *domain.Result

	hooks := domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) { starts++ },
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			steps = append(steps, e.From+"-"+e.Symbol+"->"+e.To)
		},
		OnHalt: func(ctx context.Context, e *domain.RunEvent) {
			halts++
			last = e.Result
		},
	}

	sim := runtime.NewSimulator(runtime.WithLifecycleHooks(hooks))
	_, err := sim.Run(context.Background(), a, "aa")
	require.NoError(t, err)

	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, halts)
	assert.Equal(t, []string{"q0-a->q1", "q1-a->q1"}, steps)
	require.NotNil(t, last)
	assert.Equal(t, domain.Accepted, last.Verdict)
}
