// Package descriptor reads and writes the plain-text automaton description:
//
//	line 0: comma-separated state names, in declaration order
//	line 1: initial state name
//	line 2: comma-separated final state names (may be empty)
//	line 3..N: one "from,symbol,to" transition per line
//
// There is no quoting; a comma inside a state name or symbol cannot be represented.
package descriptor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/dfakit/pkg/builder"
	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/aretw0/dfakit/pkg/ports"
)

// Decode builds an automaton from a descriptor stream.
func Decode(ctx context.Context, r io.Reader, opts ...builder.Option) (*domain.Automaton, error) {
	return builder.FromLines(ctx, ports.NewReaderLines(r), opts...)
}

// Parse builds an automaton from a descriptor string.
func Parse(text string, opts ...builder.Option) (*domain.Automaton, error) {
	return Decode(context.Background(), strings.NewReader(text), opts...)
}

// Encode writes the descriptor of a to w.
// Transitions are written most-recently-added first.
func Encode(w io.Writer, a *domain.Automaton) error {
	bw := bufio.NewWriter(w)

	states := a.States()
	names := make([]string, 0, len(states))
	initial := ""
	for _, s := range states {
		names = append(names, s.Name)
		if s.Initial {
			initial = s.Name
		}
	}

	finals := make([]string, 0)
	for _, s := range a.Finals() {
		finals = append(finals, s.Name)
	}

	fmt.Fprintln(bw, strings.Join(names, ","))
	fmt.Fprintln(bw, initial)
	fmt.Fprintln(bw, strings.Join(finals, ","))
	for _, t := range a.Transitions() {
		fmt.Fprintln(bw, t.String())
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	return nil
}

// Format returns the descriptor of a as a string.
func Format(a *domain.Automaton) string {
	var sb strings.Builder
	_ = Encode(&sb, a)
	return sb.String()
}
