package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/dfakit"
	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/aretw0/dfakit/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(t *testing.T, lines ...string) (*Console, *bytes.Buffer) {
	t.Helper()
	engine, err := dfakit.New()
	require.NoError(t, err)

	var out bytes.Buffer
	return NewConsole(engine, ports.NewSliceLines(lines...), &out), &out
}

func TestConsole_EnterAndTest(t *testing.T) {
	c, out := newTestConsole(t,
		"1",
		"q0,q1",
		"q0",
		"q1",
		"q0,a,q1", "y",
		"q1,a,q1", "n",
		"n",
		"aa", "y",
		"", "y",
		"ab", "n",
	)

	require.NoError(t, c.Run(context.Background()))

	want := strings.Join([]string{
		"Please create or load a DFA:",
		"1 - Enter DFA 2 - Read DFA",
		"Enter States (comma separated list):",
		"Enter Initial state:",
		"Enter accepting states (comma separated list):",
		"Enter a transition",
		"Another transition (y or n)?",
		"Enter a transition",
		"Another transition (y or n)?",
		"Would you like to save this DFA (y or n)?",
		"Please enter an input string to test your DFA:",
		"Accepted",
		"Would you like to test another string (y or n)?",
		"Please enter an input string to test your DFA:",
		"Rejected",
		"Would you like to test another string (y or n)?",
		"Please enter an input string to test your DFA:",
		"Invalid character found.",
		"Rejected",
		"Would you like to test another string (y or n)?",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
}

func TestConsole_SaveThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ones.dfa")

	c, _ := newTestConsole(t,
		"1",
		"s",
		"s",
		"s",
		"s,1,s", "n",
		"y", path,
		"11", "n",
	)
	require.NoError(t, c.Run(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "s\ns\ns\ns,1,s\n", string(data))

	c, out := newTestConsole(t, "2", path, "10", "n")
	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "What file path name:\n")
	assert.Contains(t, out.String(), "Invalid character found.\nRejected\n")
}

func TestConsole_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("Unreadable File", func(t *testing.T) {
		c, _ := newTestConsole(t, "2", filepath.Join(t.TempDir(), "missing.dfa"))
		err := c.Run(ctx)
		assert.ErrorIs(t, err, domain.ErrFileUnreadable)
	})

	t.Run("Malformed Transition", func(t *testing.T) {
		c, _ := newTestConsole(t, "1", "q0,q1", "q0", "q1", "q0,a")
		err := c.Run(ctx)
		assert.ErrorIs(t, err, domain.ErrMalformedTransition)
	})

	t.Run("Duplicate State", func(t *testing.T) {
		c, _ := newTestConsole(t, "1", "q0,q0")
		err := c.Run(ctx)
		assert.ErrorIs(t, err, domain.ErrDuplicateState)
	})

	t.Run("Input Closed While Building", func(t *testing.T) {
		c, _ := newTestConsole(t, "1", "q0")
		err := c.Run(ctx)
		assert.ErrorIs(t, err, ErrInputClosed)
		assert.True(t, IsInterrupted(err))
	})
}

func TestConsole_RepromptsUnknownChoice(t *testing.T) {
	c, out := newTestConsole(t, "7", "1", "q", "q", "q", "q,x,q", "n", "n")
	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, 2, strings.Count(out.String(), "1 - Enter DFA 2 - Read DFA"))
}

func TestConsole_TestLoopEndsOnClosedInput(t *testing.T) {
	c, out := newTestConsole(t, "x")

	a, err := c.Engine.Load(context.Background(), strings.NewReader("q\nq\nq\nq,x,q\n"))
	require.NoError(t, err)

	require.NoError(t, c.TestLoop(context.Background(), a))
	assert.Contains(t, out.String(), "Accepted\n")
}
