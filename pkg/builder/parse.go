package builder

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/dfakit/pkg/domain"
)

// ParseStateList splits a comma-separated list of state names.
// Names are not trimmed; empty tokens are skipped.
func ParseStateList(csv string) []string {
	var names []string
	for _, tok := range strings.Split(csv, ",") {
		if tok == "" {
			continue
		}
		names = append(names, tok)
	}
	return names
}

// ParseTransition parses a "from,symbol,to" descriptor.
func ParseTransition(desc string) (domain.Transition, error) {
	fields := strings.Split(desc, ",")
	if len(fields) != 3 {
		return domain.Transition{}, fmt.Errorf("%w: %q has %d fields, want 3", domain.ErrMalformedTransition, desc, len(fields))
	}

	from, sym, to := fields[0], fields[1], fields[2]
	if from == "" || to == "" {
		return domain.Transition{}, fmt.Errorf("%w: %q has an empty state name", domain.ErrMalformedTransition, desc)
	}

	r, size := utf8.DecodeRuneInString(sym)
	if size == 0 || size != len(sym) || (r == utf8.RuneError && size == 1) {
		return domain.Transition{}, fmt.Errorf("%w: %q: symbol %q must be a single character", domain.ErrMalformedTransition, desc, sym)
	}

	return domain.Transition{From: from, Symbol: r, To: to}, nil
}
