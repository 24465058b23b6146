package graph

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrMatrixShape is returned by [FromMatrix] for a non-square matrix.
	ErrMatrixShape = errors.New("adjacency matrix must be square")

	// ErrMatrixLabels is returned by [FromMatrix] when the label count does
	// not match the matrix dimension.
	ErrMatrixLabels = errors.New("label count must match matrix dimension")

	// ErrMatrixWeight is returned by [FromMatrix] for a negative weight.
	ErrMatrixWeight = errors.New("adjacency weights must be non-negative")
)

// FromMatrix builds a flow graph from a weighted adjacency matrix: entry
// (i, j) is the flow from node i to node j. Positive entries become links,
// zero entries are skipped, and negative entries are an error. Row/column
// index i is labeled ids[i].
//
// The diagonal is not special-cased: a positive diagonal entry becomes a
// self-link, which [sankey.Layout] will then reject as a cycle.
func FromMatrix(m *mat.Dense, ids []string) (Graph, error) {
	r, c := m.Dims()
	if r != c {
		return Graph{}, fmt.Errorf("%dx%d: %w", r, c, ErrMatrixShape)
	}
	if len(ids) != r {
		return Graph{}, fmt.Errorf("%d labels for %d rows: %w", len(ids), r, ErrMatrixLabels)
	}

	g := Graph{Nodes: make([]Node, r)}
	for i, id := range ids {
		g.Nodes[i] = Node{ID: id}
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			w := m.At(i, j)
			if w < 0 {
				return Graph{}, fmt.Errorf("entry (%d,%d) = %g: %w", i, j, w, ErrMatrixWeight)
			}
			if w == 0 {
				continue
			}
			g.Links = append(g.Links, Link{Source: ids[i], Target: ids[j], Value: w})
		}
	}
	return g, nil
}
