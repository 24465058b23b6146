// Package sankey computes the geometric layout of Sankey diagrams: given a
// directed flow graph of weighted nodes and links, it assigns each node a
// horizontal column and a vertical extent, and each link a thickness and
// vertical endpoints, so that the diagram reads left to right with flow
// magnitude encoded as width and no overlapping nodes.
//
// # Basic Usage
//
// Build a [Graph] from caller-owned nodes and links, then run [Layout] with
// a [Config]:
//
//	g := &sankey.Graph{
//	    Nodes: []*sankey.Node{{ID: "coal"}, {ID: "power"}, {ID: "grid"}},
//	    Links: []*sankey.Link{
//	        {Source: "coal", Target: "power", Value: 25},
//	        {Source: "power", Target: "grid", Value: 25},
//	    },
//	}
//	cfg := sankey.DefaultConfig()
//	cfg.X1, cfg.Y1 = 960, 500
//	if err := sankey.Layout(g, cfg); err != nil {
//	    // handle ErrInvalidGraph / ErrCyclicGraph / ErrInvalidConfiguration
//	}
//
// Layout mutates the nodes and links in place; the caller keeps ownership
// and identity of every object. Renderers consume node X0/X1/Y0/Y1 and link
// SourceNode/TargetNode/Width/Y0/Y1 read-only.
//
// # Pipeline
//
// A layout call runs a fixed sequence of stages: adjacency linking, value
// resolution, depth/height layering (which doubles as the cycle gate),
// column assignment through the alignment policy, vertical stacking with a
// shared scale factor, a configurable number of relaxation rounds with
// collision resolution, and finally link offset computation. The stages are
// deterministic: identical input and configuration reproduce identical
// coordinates bit for bit.
//
// # Alignment
//
// Column assignment is pluggable via [Alignment]: [AlignJustify] (default),
// [AlignLeft], [AlignRight], [AlignCenter], or [AlignCustom] with a
// caller-supplied [AlignFunc]. Node and link ordering can likewise be pinned
// with the Config comparators; when set, the engine never re-orders.
//
// # Concurrency
//
// The engine is single-threaded and holds no state between calls. A Graph
// must not be laid out concurrently from multiple goroutines without
// external synchronization, since every stage mutates shared node and link
// fields.
//
// # Limits
//
// The flow graph must be acyclic; a cycle fails the call with
// [ErrCyclicGraph] rather than being approximated. The engine renders
// nothing and persists nothing.
package sankey
