package ports

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// LineReader yields successive lines from an input source.
// It returns io.EOF once the source is exhausted. Returned lines carry no
// trailing newline or carriage return.
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

// LineReaderFunc adapts a function to the LineReader interface.
type LineReaderFunc func(ctx context.Context) (string, error)

// ReadLine calls f(ctx).
func (f LineReaderFunc) ReadLine(ctx context.Context) (string, error) {
	return f(ctx)
}

// NewReaderLines reads lines from an io.Reader.
func NewReaderLines(r io.Reader) LineReader {
	br := bufio.NewReader(r)
	return LineReaderFunc(func(ctx context.Context) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		line, err := br.ReadString('\n')
		if err != nil {
			if err == io.EOF && line != "" {
				return trimEOL(line), nil
			}
			return "", err
		}
		return trimEOL(line), nil
	})
}

// NewSliceLines serves the given lines in order.
func NewSliceLines(lines ...string) LineReader {
	i := 0
	return LineReaderFunc(func(ctx context.Context) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if i >= len(lines) {
			return "", io.EOF
		}
		line := lines[i]
		i++
		return trimEOL(line), nil
	})
}

func trimEOL(s string) string {
	return strings.TrimRight(s, "\r\n")
}
