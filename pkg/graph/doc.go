// Package graph provides the serialization layer around the layout engine:
// the JSON flow-graph input format, the JSON layout-result output format,
// and builders for alternative input shapes.
//
// # Formats
//
// A [Graph] is the canonical input: arrays of nodes (identity plus optional
// label, fixed value and metadata) and links (source, target, positive
// value). [Graph.Sankey] converts it to engine input.
//
// A [Result] is the output counterpart, capturing exactly the geometry
// renderers are allowed to depend on: node x0/x1/y0/y1 and layer, link
// width and vertical endpoints.
//
// # I/O
//
// [ReadGraph] and [ImportGraph] decode input from a reader or file;
// [WriteResult] and [ExportResult] encode output. Decoding checks JSON
// syntax only - the engine validates referential integrity and value
// contracts itself, so there is a single source of truth for those errors.
//
// # Matrix input
//
// [FromMatrix] builds a Graph from a gonum weighted adjacency matrix, for
// callers whose flow data lives in matrix form.
package graph
