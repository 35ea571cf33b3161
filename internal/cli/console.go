package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/dfakit"
	"github.com/aretw0/dfakit/internal/presentation/tui"
	"github.com/aretw0/dfakit/pkg/builder"
	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/aretw0/dfakit/pkg/ports"
)

// Source choices offered by the first prompt.
const (
	SourceEnter = "1"
	SourceRead  = "2"
)

// ErrInputClosed is returned when input ends in the middle of a dialogue.
var ErrInputClosed = errors.New("input closed")

// Console drives the interactive dialogue: create or load an automaton,
// optionally save it, then test strings against it until the user stops.
type Console struct {
	Engine *dfakit.Engine
	In     ports.LineReader
	Out    io.Writer
	Styler tui.Styler
	Logger *slog.Logger
}

// NewConsole wires a console with plain output and a no-op logger.
func NewConsole(engine *dfakit.Engine, in ports.LineReader, out io.Writer) *Console {
	return &Console{
		Engine: engine,
		In:     in,
		Out:    out,
		Styler: tui.NewStyler(false),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Run executes the full dialogue.
func (c *Console) Run(ctx context.Context) error {
	a, err := c.Acquire(ctx)
	if err != nil {
		return err
	}
	return c.TestLoop(ctx, a)
}

// Acquire asks for the automaton source and returns the built or loaded automaton.
func (c *Console) Acquire(ctx context.Context) (*domain.Automaton, error) {
	for {
		c.say("Please create or load a DFA:")
		c.say("1 - Enter DFA 2 - Read DFA")
		choice, err := c.ask(ctx)
		if err != nil {
			return nil, err
		}

		switch strings.TrimSpace(choice) {
		case SourceEnter:
			a, err := c.Enter(ctx)
			if err != nil {
				return nil, err
			}
			if err := c.offerSave(ctx, a); err != nil {
				return nil, err
			}
			return a, nil
		case SourceRead:
			return c.Read(ctx)
		default:
			c.Logger.Debug("unrecognised source choice", "choice", choice)
		}
	}
}

// Enter builds an automaton from prompted answers.
func (c *Console) Enter(ctx context.Context) (*domain.Automaton, error) {
	b := c.Engine.NewBuilder()

	line, err := c.prompt(ctx, "Enter States (comma separated list):")
	if err != nil {
		return nil, err
	}
	if err := b.DeclareStates(line); err != nil {
		return nil, err
	}

	line, err = c.prompt(ctx, "Enter Initial state:")
	if err != nil {
		return nil, err
	}
	if err := b.SetInitial(strings.TrimSpace(line)); err != nil {
		return nil, err
	}

	line, err = c.prompt(ctx, "Enter accepting states (comma separated list):")
	if err != nil {
		return nil, err
	}
	if err := b.SetFinal(line); err != nil && b.Strict() {
		return nil, err
	}

	for {
		line, err = c.prompt(ctx, "Enter a transition")
		if err != nil {
			return nil, err
		}
		if err := b.AddTransition(strings.TrimSpace(line)); err != nil {
			return nil, err
		}

		more, err := c.confirm(ctx, "Another transition (y or n)?")
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	return c.build(b)
}

// Read loads an automaton from a descriptor file named by the user.
func (c *Console) Read(ctx context.Context) (*domain.Automaton, error) {
	path, err := c.prompt(ctx, "What file path name:")
	if err != nil {
		return nil, err
	}
	return c.Engine.LoadFile(ctx, strings.TrimSpace(path))
}

// TestLoop simulates strings until the user declines another test.
// Input ending between tests terminates the loop without error.
func (c *Console) TestLoop(ctx context.Context, a *domain.Automaton) error {
	for {
		input, err := c.prompt(ctx, "Please enter an input string to test your DFA:")
		if errors.Is(err, ErrInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}

		res, err := c.Engine.Run(ctx, a, input)
		if err != nil {
			return err
		}
		if res.Stuck() {
			c.say(c.Styler.Notice("Invalid character found."))
		}
		c.say(c.Styler.Verdict(res.Verdict))

		again, err := c.confirm(ctx, "Would you like to test another string (y or n)?")
		if errors.Is(err, ErrInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (c *Console) offerSave(ctx context.Context, a *domain.Automaton) error {
	save, err := c.confirm(ctx, "Would you like to save this DFA (y or n)?")
	if err != nil || !save {
		return err
	}

	path, err := c.prompt(ctx, "What file path name:")
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)
	if err := c.Engine.WriteFile(path, a); err != nil {
		return err
	}
	c.Logger.Info("automaton saved", "path", path)
	return nil
}

func (c *Console) build(b *builder.Builder) (*domain.Automaton, error) {
	a, err := b.Build()
	if err != nil {
		return nil, err
	}
	for _, w := range b.Warnings() {
		c.Logger.Warn("automaton accepted with warning", "warning", w)
	}
	return a, nil
}

func (c *Console) prompt(ctx context.Context, question string) (string, error) {
	c.say(question)
	return c.ask(ctx)
}

// confirm reports whether the answer starts with 'y'.
func (c *Console) confirm(ctx context.Context, question string) (bool, error) {
	answer, err := c.prompt(ctx, question)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.TrimSpace(answer), "y"), nil
}

func (c *Console) ask(ctx context.Context) (string, error) {
	line, err := c.In.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return "", ErrInputClosed
	}
	if err != nil {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return line, nil
}

func (c *Console) say(line string) {
	fmt.Fprintln(c.Out, line)
}
