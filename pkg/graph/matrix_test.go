package graph

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/flowviz/sankey/pkg/sankey"
)

func TestFromMatrix(t *testing.T) {
	// a→b 3, a→c 2, b→c 4
	m := mat.NewDense(3, 3, []float64{
		0, 3, 2,
		0, 0, 4,
		0, 0, 0,
	})
	g, err := FromMatrix(m, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("FromMatrix() error = %v", err)
	}
	if len(g.Nodes) != 3 || len(g.Links) != 3 {
		t.Fatalf("got %d nodes, %d links, want 3, 3", len(g.Nodes), len(g.Links))
	}
	want := []Link{
		{Source: "a", Target: "b", Value: 3},
		{Source: "a", Target: "c", Value: 2},
		{Source: "b", Target: "c", Value: 4},
	}
	for i, l := range g.Links {
		if l != want[i] {
			t.Errorf("link %d = %+v, want %+v", i, l, want[i])
		}
	}

	// The produced graph lays out cleanly.
	if err := sankey.Layout(g.Sankey(), sankey.DefaultConfig()); err != nil {
		t.Errorf("Layout() on matrix graph: error = %v", err)
	}
}

func TestFromMatrix_Errors(t *testing.T) {
	tests := []struct {
		name string
		m    *mat.Dense
		ids  []string
		want error
	}{
		{"not square", mat.NewDense(2, 3, nil), []string{"a", "b"}, ErrMatrixShape},
		{"label mismatch", mat.NewDense(2, 2, nil), []string{"a"}, ErrMatrixLabels},
		{"negative weight", mat.NewDense(2, 2, []float64{0, -1, 0, 0}), []string{"a", "b"}, ErrMatrixWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromMatrix(tt.m, tt.ids); !errors.Is(err, tt.want) {
				t.Errorf("FromMatrix() error = %v, want %v", err, tt.want)
			}
		})
	}
}
