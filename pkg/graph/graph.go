package graph

import (
	"github.com/flowviz/sankey/pkg/sankey"
)

// Graph is the canonical serialization format for flow graphs.
// Used for CLI input, API requests, and cross-tool compatibility.
//
// The format is human-readable and designed for round-trip fidelity:
// import → layout → export preserves identity and payload fields.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Node is the serialized form of a flow graph vertex.
type Node struct {
	ID    string         `json:"id"`
	Label string         `json:"label,omitempty"` // Display label (defaults to ID)
	Value *float64       `json:"value,omitempty"` // Fixed value override; absent means derived
	Meta  map[string]any `json:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Link is the serialized form of a directed flow between two nodes.
type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

// Sankey converts the serialized graph into engine input. The returned
// graph owns fresh node and link objects; the engine fills in their
// geometry on [sankey.Layout].
func (g Graph) Sankey() *sankey.Graph {
	out := &sankey.Graph{
		Nodes: make([]*sankey.Node, len(g.Nodes)),
		Links: make([]*sankey.Link, len(g.Links)),
	}
	for i, n := range g.Nodes {
		node := &sankey.Node{ID: n.ID, Label: n.Label, Meta: n.Meta}
		if n.Value != nil {
			v := *n.Value
			node.FixedValue = &v
		}
		out.Nodes[i] = node
	}
	for i, l := range g.Links {
		out.Links[i] = &sankey.Link{Source: l.Source, Target: l.Target, Value: l.Value}
	}
	return out
}

// Result is the serialized output of a layout run: the final geometry of
// every node and link. This is the full stable contract consumed by
// rendering collaborators, and nothing more.
type Result struct {
	Nodes []ResultNode `json:"nodes"`
	Links []ResultLink `json:"links"`
}

// ResultNode carries a node's final placement.
type ResultNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label,omitempty"`
	Layer int     `json:"layer"`
	Value float64 `json:"value"`
	X0    float64 `json:"x0"`
	X1    float64 `json:"x1"`
	Y0    float64 `json:"y0"`
	Y1    float64 `json:"y1"`
}

// ResultLink carries a link's final thickness and vertical endpoints.
type ResultLink struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
	Width  float64 `json:"width"`
	Y0     float64 `json:"y0"`
	Y1     float64 `json:"y1"`
}

// ResultFrom captures the geometry of a laid-out graph.
func ResultFrom(g *sankey.Graph) Result {
	out := Result{
		Nodes: make([]ResultNode, len(g.Nodes)),
		Links: make([]ResultLink, len(g.Links)),
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = ResultNode{
			ID:    n.ID,
			Label: n.Label,
			Layer: n.Layer,
			Value: n.Value,
			X0:    n.X0,
			X1:    n.X1,
			Y0:    n.Y0,
			Y1:    n.Y1,
		}
	}
	for i, l := range g.Links {
		out.Links[i] = ResultLink{
			Source: l.Source,
			Target: l.Target,
			Value:  l.Value,
			Width:  l.Width,
			Y0:     l.Y0,
			Y1:     l.Y1,
		}
	}
	return out
}
