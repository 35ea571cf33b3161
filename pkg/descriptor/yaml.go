package descriptor

import (
	"fmt"
	"io"

	"github.com/aretw0/dfakit/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Document is the structured view of an automaton, used for YAML and JSON exports.
type Document struct {
	States      []string         `yaml:"states" json:"states"`
	Initial     string           `yaml:"initial" json:"initial"`
	Finals      []string         `yaml:"finals" json:"finals"`
	Transitions []TransitionView `yaml:"transitions" json:"transitions"`
}

// TransitionView renders the symbol as a string.
type TransitionView struct {
	From   string `yaml:"from" json:"from"`
	Symbol string `yaml:"symbol" json:"symbol"`
	To     string `yaml:"to" json:"to"`
}

// NewDocument builds the structured view of a. Transitions keep descriptor order.
func NewDocument(a *domain.Automaton) Document {
	doc := Document{
		States:      []string{},
		Finals:      []string{},
		Transitions: []TransitionView{},
	}
	for _, s := range a.States() {
		doc.States = append(doc.States, s.Name)
		if s.Initial {
			doc.Initial = s.Name
		}
		if s.Final {
			doc.Finals = append(doc.Finals, s.Name)
		}
	}
	for _, t := range a.Transitions() {
		doc.Transitions = append(doc.Transitions, TransitionView{
			From:   t.From,
			Symbol: string(t.Symbol),
			To:     t.To,
		})
	}
	return doc
}

// EncodeYAML writes the structured view of a as YAML.
func EncodeYAML(w io.Writer, a *domain.Automaton) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(a)); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
