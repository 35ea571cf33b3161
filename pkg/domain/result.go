package domain

// Verdict is the outcome of a simulation.
type Verdict string

const (
	Accepted Verdict = "accepted"
	Rejected Verdict = "rejected"
)

// ExecutionStatus is the mode of the simulator while it walks an input.
type ExecutionStatus string

const (
	StatusRunning  ExecutionStatus = "running"  // Consuming input
	StatusAccepted ExecutionStatus = "accepted" // Input exhausted on a final state
	StatusRejected ExecutionStatus = "rejected" // Input exhausted on a non-final state
	StatusStuck    ExecutionStatus = "stuck"    // No transition for the current symbol
)

// Result is the verdict of a single run plus the trace that produced it.
type Result struct {
	Input   string          `json:"input"`
	Verdict Verdict         `json:"verdict"`
	Status  ExecutionStatus `json:"status"`

	// State is the last state reached.
	State string `json:"state"`

	// Consumed counts the symbols that moved the automaton.
	Consumed int `json:"consumed"`

	// Path lists visited states, starting with the initial state.
	Path []string `json:"path"`

	// Symbol is the symbol with no matching transition (Status == StatusStuck).
	Symbol string `json:"symbol,omitempty"`
}

// Accepted reports whether the run ended in the Accepted verdict.
func (r *Result) Accepted() bool {
	return r != nil && r.Verdict == Accepted
}

// Stuck reports whether the run halted on a symbol without a transition.
func (r *Result) Stuck() bool {
	return r != nil && r.Status == StatusStuck
}
