package domain

// GraphNode is one state rendered for the visualization collaborator.
type GraphNode struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Initial bool   `json:"initial,omitempty"`
}

// GraphEdge is one transition rendered for the visualization collaborator.
// Label is the composite "event [guard] /action" presentation string;
// Source carries the provenance tag unchanged.
type GraphEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Label  string `json:"label"`
	Source Source `json:"source,omitempty"`
}

// Graph is the presentation-oriented projection of a model. It performs
// no analysis; unreachable or conflicting elements appear as-is.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}
