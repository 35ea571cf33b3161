package builder

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/aretw0/dfakit/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStateList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"q0,q1,q2", []string{"q0", "q1", "q2"}},
		{"q0,,q1,", []string{"q0", "q1"}},
		{" q0, q1", []string{" q0", " q1"}},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseStateList(tt.in), "ParseStateList(%q)", tt.in)
	}
}

func TestParseTransition(t *testing.T) {
	tr, err := ParseTransition("q0,a,q1")
	require.NoError(t, err)
	assert.Equal(t, domain.Transition{From: "q0", Symbol: 'a', To: "q1"}, tr)

	tr, err = ParseTransition("q0,é,q1")
	require.NoError(t, err)
	assert.Equal(t, 'é', tr.Symbol)

	tr, err = ParseTransition("q0,\uFFFD,q1")
	require.NoError(t, err)
	assert.Equal(t, '\uFFFD', tr.Symbol)

	for _, bad := range []string{"q0,a", "q0,a,q1,q2", "q0,ab,q1", "q0,,q1", ",a,q1", "q0,a,", "", "q0,\xff,q1"} {
		_, err := ParseTransition(bad)
		assert.ErrorIs(t, err, domain.ErrMalformedTransition, "ParseTransition(%q)", bad)
	}
}

func TestBuilder_SimpleAutomaton(t *testing.T) {
	b := New()
	require.NoError(t, b.DeclareStates("q0,q1"))
	require.NoError(t, b.SetInitial("q0"))
	require.NoError(t, b.SetFinal("q1"))
	require.NoError(t, b.AddTransition("q0,a,q1"))
	require.NoError(t, b.AddTransition("q1,a,q1"))

	a, err := b.Build()
	require.NoError(t, err)

	initial, err := a.Initial()
	require.NoError(t, err)
	assert.Equal(t, "q0", initial.Name)
	assert.Len(t, a.Finals(), 1)

	to, ok := a.Next("q0", 'a')
	assert.True(t, ok)
	assert.Equal(t, "q1", to)
	assert.Empty(t, b.Warnings())
}

func TestBuilder_DuplicateState(t *testing.T) {
	b := New()
	err := b.DeclareStates("q0,q1,q0")
	assert.ErrorIs(t, err, domain.ErrDuplicateState)
}

func TestBuilder_FinalWithoutStates(t *testing.T) {
	for _, strict := range []bool{true, false} {
		b := New(WithValidation(strict))
		err := b.SetFinal("q1")
		assert.ErrorIs(t, err, domain.ErrUnknownState, "strict=%v", strict)
	}
}

func TestBuilder_UnknownFinal(t *testing.T) {
	t.Run("Strict", func(t *testing.T) {
		b := New()
		require.NoError(t, b.DeclareStates("q0"))
		require.NoError(t, b.SetInitial("q0"))
		_ = b.SetFinal("q0,ghost")

		_, err := b.Build()
		assert.ErrorIs(t, err, domain.ErrUnknownState)
	})

	t.Run("Permissive", func(t *testing.T) {
		b := New(WithValidation(false))
		require.NoError(t, b.DeclareStates("q0"))
		require.NoError(t, b.SetInitial("q0"))
		_ = b.SetFinal("q0,ghost")

		a, err := b.Build()
		require.NoError(t, err)
		assert.Len(t, a.Finals(), 1)
		require.Len(t, b.Warnings(), 1)
		assert.ErrorIs(t, b.Warnings()[0], domain.ErrUnknownState)
	})
}

func TestBuilder_DanglingTransition(t *testing.T) {
	t.Run("Strict", func(t *testing.T) {
		b := New()
		require.NoError(t, b.DeclareStates("q0"))
		err := b.AddTransition("q0,a,q9")
		assert.ErrorIs(t, err, domain.ErrMalformedAutomaton)
	})

	t.Run("Permissive", func(t *testing.T) {
		b := New(WithValidation(false))
		require.NoError(t, b.DeclareStates("q0"))
		require.NoError(t, b.SetInitial("q0"))
		require.NoError(t, b.AddTransition("q0,a,q9"))

		a, err := b.Build()
		require.NoError(t, err)
		assert.ErrorIs(t, a.Validate(), domain.ErrMalformedAutomaton)
	})
}

func TestBuilder_SymbolCollision(t *testing.T) {
	t.Run("Strict Conflict", func(t *testing.T) {
		b := New()
		require.NoError(t, b.DeclareStates("q0,q1,q2"))
		require.NoError(t, b.AddTransition("q0,a,q1"))
		err := b.AddTransition("q0,a,q2")
		assert.ErrorIs(t, err, domain.ErrConflictingTransition)
	})

	t.Run("Permissive Keeps First", func(t *testing.T) {
		b := New(WithValidation(false))
		require.NoError(t, b.DeclareStates("q0,q1,q2"))
		require.NoError(t, b.SetInitial("q0"))
		require.NoError(t, b.AddTransition("q0,a,q1"))
		require.NoError(t, b.AddTransition("q0,a,q2"))

		a, err := b.Build()
		require.NoError(t, err)
		to, _ := a.Next("q0", 'a')
		assert.Equal(t, "q1", to)
		assert.Len(t, a.Transitions(), 1)
		assert.Len(t, b.Warnings(), 1)
	})

	t.Run("Exact Duplicate", func(t *testing.T) {
		b := New()
		require.NoError(t, b.DeclareStates("q0,q1"))
		require.NoError(t, b.SetInitial("q0"))
		require.NoError(t, b.AddTransition("q0,a,q1"))
		require.NoError(t, b.AddTransition("q0,a,q1"))

		a, err := b.Build()
		require.NoError(t, err)
		assert.Len(t, a.Transitions(), 1)
		assert.Len(t, b.Warnings(), 1)
	})
}

func TestBuilder_UnserializableNames(t *testing.T) {
	for _, sym := range []rune{',', '\n', '\r'} {
		for _, strict := range []bool{true, false} {
			b := New(WithValidation(strict))
			require.NoError(t, b.DeclareStates("q0,q1"))
			err := b.Add(domain.Transition{From: "q0", Symbol: sym, To: "q1"})
			assert.ErrorIs(t, err, domain.ErrMalformedTransition, "symbol %q strict=%v", sym, strict)
		}
	}

	for _, name := range []string{"q\n0", "q\r0"} {
		b := New()
		assert.ErrorIs(t, b.AddState(name), domain.ErrInvalidStateName, "state %q", name)

		b = New(WithValidation(false))
		require.NoError(t, b.DeclareStates("q0"))
		err := b.Add(domain.Transition{From: "q0", Symbol: 'a', To: name})
		assert.ErrorIs(t, err, domain.ErrMalformedTransition, "target %q", name)
	}
}

func TestBuilder_NoInitialState(t *testing.T) {
	b := New()
	require.NoError(t, b.DeclareStates("q0"))
	_, err := b.Build()
	assert.ErrorIs(t, err, domain.ErrNoInitialState)

	b = New(WithValidation(false))
	require.NoError(t, b.DeclareStates("q0"))
	_, err = b.Build()
	assert.NoError(t, err)
}

func TestFromLines(t *testing.T) {
	ctx := context.Background()

	t.Run("Descriptor", func(t *testing.T) {
		src := ports.NewSliceLines("q0,q1", "q0", "q1", "q0,a,q1", "", "q1,a,q1")
		a, err := FromLines(ctx, src)
		require.NoError(t, err)
		assert.Len(t, a.Transitions(), 2)
	})

	t.Run("Empty Final Line", func(t *testing.T) {
		src := ports.NewSliceLines("q0", "q0", "", "q0,a,q0")
		a, err := FromLines(ctx, src)
		require.NoError(t, err)
		assert.Empty(t, a.Finals())
	})

	t.Run("Malformed Transition Line", func(t *testing.T) {
		src := ports.NewSliceLines("q0,q1", "q0", "q1", "q0,a")
		_, err := FromLines(ctx, src)
		require.ErrorIs(t, err, domain.ErrMalformedTransition)

		var lineErr *LineError
		require.True(t, errors.As(err, &lineErr))
		assert.Equal(t, 4, lineErr.Line)
		assert.Equal(t, "q0,a", lineErr.Text)
	})

	t.Run("Unknown Initial", func(t *testing.T) {
		src := ports.NewSliceLines("q0", "q7", "")
		_, err := FromLines(ctx, src)
		assert.ErrorIs(t, err, domain.ErrUnknownState)
	})

	t.Run("Permissive Unknown Final", func(t *testing.T) {
		b := New(WithValidation(false))
		err := b.ReadFrom(ctx, ports.NewSliceLines("q0", "q0", "q0,q5"))
		require.NoError(t, err)
		assert.Len(t, b.Warnings(), 1)
	})

	t.Run("Source Failure", func(t *testing.T) {
		boom := errors.New("disk on fire")
		src := ports.LineReaderFunc(func(ctx context.Context) (string, error) {
			return "", boom
		})
		_, err := FromLines(ctx, src)
		assert.ErrorIs(t, err, domain.ErrFileUnreadable)
		assert.ErrorIs(t, err, boom)
	})
}
