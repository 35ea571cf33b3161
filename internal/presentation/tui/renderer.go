package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// It detects light/dark backgrounds automatically.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Describe produces a markdown summary of an automaton: its states and the
// transition table (one row per state, one column per symbol).
func Describe(name string, a *domain.Automaton) string {
	var sb strings.Builder

	if name == "" {
		name = "Automaton"
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", name))

	states := a.States()
	symbols := alphabet(a)

	sb.WriteString(fmt.Sprintf("%d states, %d symbols, %d transitions.\n\n", len(states), len(symbols), len(a.Transitions())))

	sb.WriteString("| State |")
	for _, sym := range symbols {
		sb.WriteString(fmt.Sprintf(" `%s` |", sym))
	}
	sb.WriteString("\n|---|")
	for range symbols {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")

	for _, s := range states {
		label := s.Name
		if s.Initial {
			label = "→ " + label
		}
		if s.Final {
			label = label + " *"
		}
		sb.WriteString(fmt.Sprintf("| %s |", label))

		table := a.Table(s.Name)
		for _, sym := range symbols {
			to, ok := table.Lookup([]rune(sym)[0])
			if !ok {
				to = "—"
			}
			sb.WriteString(fmt.Sprintf(" %s |", to))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n→ initial, * final\n")
	return sb.String()
}

// alphabet returns the symbols used by any transition, sorted.
func alphabet(a *domain.Automaton) []string {
	seen := make(map[rune]bool)
	var runes []rune
	for _, t := range a.Transitions() {
		if !seen[t.Symbol] {
			seen[t.Symbol] = true
			runes = append(runes, t.Symbol)
		}
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}
