package builder

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/aretw0/dfakit/pkg/ports"
)

// Descriptor line roles.
const (
	lineStates = iota
	lineInitial
	lineFinals
)

// LineError locates a construction failure in a descriptor stream.
type LineError struct {
	Line int    // 1-based
	Text string // the offending line
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d (%q): %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ReadFrom feeds a descriptor stream into the builder: line 0 is the state list,
// line 1 the initial state, line 2 the final-state list and every further non-empty
// line one transition. The stream is read until io.EOF.
func (b *Builder) ReadFrom(ctx context.Context, src ports.LineReader) error {
	for idx := 0; ; idx++ {
		line, err := src.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrFileUnreadable, err)
		}

		if err := b.consume(idx, line); err != nil {
			return &LineError{Line: idx + 1, Text: line, Err: err}
		}
	}
}

func (b *Builder) consume(idx int, line string) error {
	switch idx {
	case lineStates:
		return b.DeclareStates(line)
	case lineInitial:
		if line == "" {
			// Left unset; strict Build reports ErrNoInitialState.
			return nil
		}
		return b.SetInitial(line)
	case lineFinals:
		err := b.SetFinal(line)
		if err != nil && b.strict {
			return err
		}
		return nil
	default:
		if line == "" {
			return nil
		}
		return b.AddTransition(line)
	}
}

// FromLines builds an automaton from a descriptor stream.
func FromLines(ctx context.Context, src ports.LineReader, opts ...Option) (*domain.Automaton, error) {
	b := New(opts...)
	if err := b.ReadFrom(ctx, src); err != nil {
		return nil, err
	}
	return b.Build()
}
