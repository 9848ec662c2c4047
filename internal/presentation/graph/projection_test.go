package graph_test

import (
	"strings"
	"testing"

	"github.com/autostate/autostate/internal/presentation/graph"
	"github.com/autostate/autostate/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleModel() domain.Model {
	return domain.Build("Door", []domain.Transition{
		{State: "open", Event: "push", Action: "latch", NextState: "closed", Source: domain.SourceUser},
		{State: "closed", Event: "pull", Guard: "unlocked", Action: "release", NextState: "open", Source: domain.SourceLLMInferred},
	})
}

func TestProject(t *testing.T) {
	g := graph.Project(sampleModel())

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, domain.GraphNode{ID: "open", Label: "open", Initial: true}, g.Nodes[0])
	assert.False(t, g.Nodes[1].Initial)

	require.Len(t, g.Edges, 2)
	assert.Equal(t, "push\n/latch", g.Edges[0].Label)
	assert.Equal(t, "pull\n[unlocked]\n/release", g.Edges[1].Label)
	assert.Equal(t, domain.SourceLLMInferred, g.Edges[1].Source)
}

func TestProject_OrderPreserved(t *testing.T) {
	m := sampleModel()
	g := graph.Project(m)

	for i, s := range m.States {
		assert.Equal(t, s, g.Nodes[i].ID)
	}
	for i, tr := range m.Transitions {
		assert.Equal(t, tr.State, g.Edges[i].From)
		assert.Equal(t, tr.NextState, g.Edges[i].To)
	}
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(sampleModel())

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `open(("open"))`, "initial state drawn as circle")
	assert.Contains(t, out, `closed["closed"]`)
	assert.Contains(t, out, `open -- "push" --> closed`)
	// LLM-inferred edges are dotted and carry the guard.
	assert.Contains(t, out, `closed -. "pull [unlocked]" .-> open`)
}
