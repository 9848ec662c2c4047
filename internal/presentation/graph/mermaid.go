package graph

import (
	"fmt"
	"strings"

	"github.com/autostate/autostate/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart from a model for quick CLI
// inspection. The initial state is drawn as a circle, every other state
// as a rectangle; guarded edges carry the guard in their label.
func GenerateMermaid(m domain.Model) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, s := range m.States {
		safeID := sanitizeMermaidID(s)
		opener, closer := "[", "]"
		if s == m.InitialState {
			opener, closer = "((", "))" // Circle
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, s, closer)
	}

	for _, t := range m.Transitions {
		from := sanitizeMermaidID(t.State)
		to := sanitizeMermaidID(t.NextState)

		label := t.Event
		if t.Guard != "" {
			// Escape double quotes for Mermaid labels
			safeGuard := strings.ReplaceAll(t.Guard, "\"", "'")
			label = fmt.Sprintf("%s [%s]", label, safeGuard)
		}

		arrow := fmt.Sprintf("-- \"%s\" -->", label)
		if t.Source == domain.SourceLLMInferred {
			arrow = fmt.Sprintf("-. \"%s\" .->", label)
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", from, arrow, to)
	}

	return sb.String()
}

// sanitizeMermaidID strips characters Mermaid cannot use in node ids.
func sanitizeMermaidID(id string) string {
	replacer := strings.NewReplacer(
		" ", "_",
		"-", "_",
		"/", "_",
		".", "_",
	)
	return replacer.Replace(id)
}
