package domain

import "strings"

// StateID is the position of a state in its registry (declaration order).
type StateID int

// State is a named node of the automaton.
type State struct {
	Name    string `json:"name" yaml:"name"`
	Initial bool   `json:"initial,omitempty" yaml:"initial,omitempty"`
	Final   bool   `json:"final,omitempty" yaml:"final,omitempty"`
}

// ValidStateName reports whether name can be registered and serialized.
// Commas and line breaks are descriptor delimiters and cannot be escaped.
func ValidStateName(name string) bool {
	return name != "" && !strings.ContainsAny(name, ",\r\n")
}

// ValidSymbol reports whether r can be written to a descriptor transition line.
func ValidSymbol(r rune) bool {
	return r != ',' && r != '\r' && r != '\n'
}
