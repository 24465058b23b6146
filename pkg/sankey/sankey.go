package sankey

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidGraph is returned by [Layout] when the input graph is not
	// structurally sound: a node has an empty or duplicate ID, a link
	// references a node absent from the node set, or a link carries a
	// non-positive value.
	ErrInvalidGraph = errors.New("invalid graph")

	// ErrCyclicGraph is returned by [Layout] when the depth or height
	// traversal exceeds the node-count round bound, which only happens when
	// the flow graph contains a directed cycle. Sankey layouts require an
	// acyclic graph.
	ErrCyclicGraph = errors.New("graph contains a cycle")

	// ErrInvalidConfiguration is returned by [Layout] when the configuration
	// is degenerate: inverted bounds, non-positive node width, negative
	// padding or iteration count, a custom alignment without a function, or
	// a column whose total value is zero (the vertical scale would be
	// undefined).
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Node is a vertex in the flow graph. The caller constructs nodes with an ID
// and optionally a fixed value and display payload; [Layout] fills in every
// other field. Nodes are mutated in place and never copied, so the caller can
// keep pointers across the call.
type Node struct {
	// ID is the unique, caller-supplied identity. Links reference nodes by ID.
	ID string

	// Label is an optional display label, opaque to the engine.
	Label string

	// Meta holds arbitrary key-value payload for rendering collaborators.
	// The engine never reads or writes it.
	Meta map[string]any

	// FixedValue, when non-nil, overrides the derived node value. A fixed
	// value of zero is honored verbatim.
	FixedValue *float64

	// Index is the node's position in the caller-provided node list. It is
	// used only as a stable tie-breaker, never as identity.
	Index int

	// Value is the node's magnitude: FixedValue if set, otherwise the larger
	// of the outgoing and incoming link value sums.
	Value float64

	// Depth is the longest-path distance from any source, in link hops.
	Depth int

	// Height is the longest-path distance to any sink, in link hops.
	Height int

	// Layer is the horizontal column the node was assigned to.
	Layer int

	// X0, X1 are the node's horizontal extent (X1 - X0 == NodeWidth).
	X0, X1 float64

	// Y0, Y1 are the node's vertical extent.
	Y0, Y1 float64

	// SourceLinks are the node's outgoing links, ordered by the stacking
	// order used for link offsets.
	SourceLinks []*Link

	// TargetLinks are the node's incoming links, same ordering contract.
	TargetLinks []*Link
}

// Link is a directed flow between two nodes. The caller sets Source, Target
// and Value; [Layout] resolves the endpoints and fills in the geometry.
type Link struct {
	// Source and Target are node IDs. Both must resolve to nodes present in
	// the same layout call.
	Source string
	Target string

	// Value is the flow magnitude. It must be positive.
	Value float64

	// Index is the link's position in the caller-provided link list,
	// used as a stable tie-breaker.
	Index int

	// Width is the link's vertical thickness, Value scaled by the diagram's
	// shared vertical scale factor.
	Width float64

	// Y0 is the link's vertical center at the source node's right edge.
	Y0 float64

	// Y1 is the link's vertical center at the target node's left edge.
	Y1 float64

	// SourceNode and TargetNode are the resolved endpoints.
	SourceNode *Node
	TargetNode *Node
}

// Graph groups the node and link collections passed to [Layout]. The engine
// mutates the referenced nodes and links in place; it never adds or removes
// entries.
type Graph struct {
	Nodes []*Node
	Links []*Link
}

// AlignFunc maps a node to a column index given the total column count.
// Results outside [0, columns-1] are clamped.
type AlignFunc func(n *Node, columns int) int

// Alignment selects the column-assignment policy.
type Alignment int

const (
	// AlignJustify places nodes at their depth, except true sinks which are
	// pushed to the last column.
	AlignJustify Alignment = iota
	// AlignLeft places nodes at their depth.
	AlignLeft
	// AlignRight places nodes at columns-1-height.
	AlignRight
	// AlignCenter places nodes with incoming links at their depth, nodes
	// with only outgoing links one column before their nearest target, and
	// isolated nodes at column zero.
	AlignCenter
	// AlignCustom delegates to [Config.AlignFunc].
	AlignCustom
)

// String returns the policy name as accepted by [ParseAlignment].
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	case AlignCustom:
		return "custom"
	default:
		return "justify"
	}
}

// ParseAlignment maps a policy name ("justify", "left", "right", "center")
// to its [Alignment]. AlignCustom has no name: it can only be configured
// programmatically.
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "justify":
		return AlignJustify, nil
	case "left":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	case "center":
		return AlignCenter, nil
	}
	return 0, fmt.Errorf("unknown alignment %q: %w", s, ErrInvalidConfiguration)
}

// Config is the immutable per-call layout configuration.
//
// The zero value is not usable: the bounds would be degenerate. Start from
// [DefaultConfig] and override what you need.
type Config struct {
	// X0, Y0, X1, Y1 are the bounding rectangle. X0 < X1 and Y0 < Y1.
	X0, Y0 float64
	X1, Y1 float64

	// NodeWidth is the horizontal extent of every node. Must be positive.
	NodeWidth float64

	// NodePadding is the minimum vertical gap between nodes in a column.
	// It is clamped internally when a column is too dense for it.
	NodePadding float64

	// Iterations is the number of relaxation rounds. Zero disables
	// relaxation and keeps the initial stacking.
	Iterations int

	// Align selects the column-assignment policy.
	Align Alignment

	// AlignFunc is the custom policy used when Align is [AlignCustom].
	AlignFunc AlignFunc

	// NodeSort, when non-nil, fixes the vertical order of nodes within each
	// column; relaxation will nudge positions but never re-order.
	NodeSort func(a, b *Node) int

	// LinkSort, when non-nil, fixes the order of every adjacency list; the
	// engine will not re-stack links by neighbor position.
	LinkSort func(a, b *Link) int
}

// DefaultConfig returns the reference defaults: a unit square extent, node
// width 24, padding 8, justify alignment and 6 relaxation iterations.
func DefaultConfig() Config {
	return Config{
		X1:          1,
		Y1:          1,
		NodeWidth:   24,
		NodePadding: 8,
		Iterations:  6,
		Align:       AlignJustify,
	}
}

// Validate checks the configuration without touching any graph.
func (c Config) Validate() error {
	if !(c.X0 < c.X1) || !(c.Y0 < c.Y1) {
		return fmt.Errorf("degenerate bounds [%g,%g]x[%g,%g]: %w", c.X0, c.X1, c.Y0, c.Y1, ErrInvalidConfiguration)
	}
	if !(c.NodeWidth > 0) {
		return fmt.Errorf("node width %g must be positive: %w", c.NodeWidth, ErrInvalidConfiguration)
	}
	if math.IsNaN(c.NodePadding) || c.NodePadding < 0 {
		return fmt.Errorf("node padding %g must be non-negative: %w", c.NodePadding, ErrInvalidConfiguration)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("iteration count %d must be non-negative: %w", c.Iterations, ErrInvalidConfiguration)
	}
	if c.Align == AlignCustom && c.AlignFunc == nil {
		return fmt.Errorf("custom alignment without a function: %w", ErrInvalidConfiguration)
	}
	return nil
}
