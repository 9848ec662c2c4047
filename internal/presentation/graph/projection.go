// Package graph projects an FSM model into the node/edge structure
// consumed by the visualization collaborator. It is a presentation view:
// no analysis happens here, order is preserved, and unreachable or
// conflicting elements appear as-is.
package graph

import (
	"fmt"

	"github.com/autostate/autostate/pkg/domain"
)

// Project returns one node per state (the initial state is tagged) and
// one edge per transition, carrying the provenance tag and a composite
// event/guard/action label.
func Project(m domain.Model) domain.Graph {
	g := domain.Graph{
		Nodes: make([]domain.GraphNode, 0, len(m.States)),
		Edges: make([]domain.GraphEdge, 0, len(m.Transitions)),
	}

	for _, s := range m.States {
		g.Nodes = append(g.Nodes, domain.GraphNode{
			ID:      s,
			Label:   s,
			Initial: s == m.InitialState,
		})
	}

	for _, t := range m.Transitions {
		g.Edges = append(g.Edges, domain.GraphEdge{
			From:   t.State,
			To:     t.NextState,
			Label:  edgeLabel(t),
			Source: t.Source,
		})
	}
	return g
}

// edgeLabel composes "event\n[guard]\n/action", omitting absent parts.
func edgeLabel(t domain.Transition) string {
	label := t.Event
	if t.Guard != "" {
		label += fmt.Sprintf("\n[%s]", t.Guard)
	}
	if t.Action != "" {
		label += fmt.Sprintf("\n/%s", t.Action)
	}
	return label
}
