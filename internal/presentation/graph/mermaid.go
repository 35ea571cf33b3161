package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/dfakit/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
	Stuck         bool
}

// OverlayFromResult highlights the path of a simulation.
func OverlayFromResult(res *domain.Result) *GraphOverlay {
	if res == nil {
		return nil
	}
	return &GraphOverlay{
		VisitedStates: res.Path,
		CurrentState:  res.State,
		Stuck:         res.Stuck(),
	}
}

// GenerateMermaid produces a Mermaid flowchart (graph LR) for an automaton.
// It applies semantic styling:
// - Final: (((Double circle)))
// - Other states: ((Circle))
// - Initial: entered by an arrow from a filled start point
// Parallel edges between the same pair of states share one arrow labelled with all symbols.
func GenerateMermaid(a *domain.Automaton, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, s := range a.States() {
		safeID := sanitizeMermaidID(s.Name)
		opener, closer := "((", "))"
		if s.Final {
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(s.Name), closer))
	}

	if initial, err := a.Initial(); err == nil {
		sb.WriteString("    __start__(( )):::entry\n")
		sb.WriteString(fmt.Sprintf("    __start__ --> %s\n", sanitizeMermaidID(initial.Name)))
	}

	for _, e := range groupEdges(a) {
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
			sanitizeMermaidID(e.from),
			escapeLabel(strings.Join(e.symbols, ", ")),
			sanitizeMermaidID(e.to),
		))
	}

	sb.WriteString("    classDef entry fill:#000,stroke:#000;\n")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef stuck fill:#ffcdd2,stroke:#c62828,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, name := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(name)
			if safeID == "" || visited[safeID] || name == overlay.CurrentState {
				continue
			}
			visited[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
		}

		if overlay.CurrentState != "" {
			class := "current"
			if overlay.Stuck {
				class = "stuck"
			}
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", sanitizeMermaidID(overlay.CurrentState), class))
		}
	}

	return sb.String()
}

type edgeGroup struct {
	from, to string
	symbols  []string
}

// groupEdges merges transitions by (from, to) in state declaration order, symbols sorted.
func groupEdges(a *domain.Automaton) []edgeGroup {
	order := make(map[string]int)
	for i, s := range a.States() {
		order[s.Name] = i
	}

	byPair := make(map[[2]string]*edgeGroup)
	var groups []*edgeGroup
	for _, t := range a.Transitions() {
		key := [2]string{t.From, t.To}
		g, ok := byPair[key]
		if !ok {
			g = &edgeGroup{from: t.From, to: t.To}
			byPair[key] = g
			groups = append(groups, g)
		}
		g.symbols = append(g.symbols, string(t.Symbol))
	}

	rank := func(name string) int {
		if i, ok := order[name]; ok {
			return i
		}
		return len(order)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if rank(groups[i].from) != rank(groups[j].from) {
			return rank(groups[i].from) < rank(groups[j].from)
		}
		return rank(groups[i].to) < rank(groups[j].to)
	})

	out := make([]edgeGroup, 0, len(groups))
	for _, g := range groups {
		sort.Strings(g.symbols)
		out = append(out, *g)
	}
	return out
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "\"", "_")
	return "s_" + s
}
