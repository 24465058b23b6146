// Package pkg provides the core libraries for Sankey diagram layout.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. [sankey] - The layout engine (column assignment, relaxation, link geometry)
//  2. [graph] - Serialization types for flow graphs and layout results
//  3. [buildinfo] - Build-time version metadata
//
// # Architecture
//
// The typical data flow:
//
//	graph.json (nodes + links)
//	         ↓
//	    [graph] package (decode, convert to engine input)
//	         ↓
//	    [sankey] package (Layout: columns, breadths, link offsets)
//	         ↓
//	    [graph] package (Result: stable geometry contract)
//	         ↓
//	    layout.json for downstream renderers
//
// # Quick Start
//
// Load a flow graph, compute its layout, and capture the geometry:
//
//	import (
//	    "github.com/flowviz/sankey/pkg/graph"
//	    "github.com/flowviz/sankey/pkg/sankey"
//	)
//
//	g, _ := graph.ImportGraph("flows.json")
//	sg := g.Sankey()
//	if err := sankey.Layout(sg, sankey.DefaultConfig()); err != nil {
//	    return err
//	}
//	res := graph.ResultFrom(sg)
//
// Rendering is out of scope here: the Result types are the contract, and
// downstream tools draw from them without re-running the engine.
package pkg
