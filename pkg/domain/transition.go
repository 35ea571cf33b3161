package domain

import "fmt"

// Transition is an edge of the automaton consuming exactly one symbol.
type Transition struct {
	From   string
	Symbol rune
	To     string
}

// String renders the transition in descriptor form ("from,symbol,to").
func (t Transition) String() string {
	return fmt.Sprintf("%s,%c,%s", t.From, t.Symbol, t.To)
}

// TransitionTable maps a symbol to the destination state name, scoped to one state.
type TransitionTable map[rune]string

// Lookup returns the destination for symbol, if any.
func (t TransitionTable) Lookup(symbol rune) (string, bool) {
	to, ok := t[symbol]
	return to, ok
}

// Symbols returns the number of symbols with an outgoing edge.
func (t TransitionTable) Symbols() int {
	return len(t)
}

func (t TransitionTable) clone() TransitionTable {
	out := make(TransitionTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
