package sankey_test

import (
	"fmt"

	"github.com/flowviz/sankey/pkg/sankey"
)

func ExampleLayout() {
	// A small energy flow: two fuels feed one plant, the plant feeds the grid.
	g := &sankey.Graph{
		Nodes: []*sankey.Node{
			{ID: "coal"}, {ID: "gas"}, {ID: "plant"}, {ID: "grid"},
		},
		Links: []*sankey.Link{
			{Source: "coal", Target: "plant", Value: 30},
			{Source: "gas", Target: "plant", Value: 20},
			{Source: "plant", Target: "grid", Value: 50},
		},
	}

	cfg := sankey.DefaultConfig()
	cfg.X1, cfg.Y1 = 960, 500
	if err := sankey.Layout(g, cfg); err != nil {
		fmt.Println("layout failed:", err)
		return
	}

	for _, n := range g.Nodes {
		fmt.Printf("%s: column %d, value %g\n", n.ID, n.Layer, n.Value)
	}
	// Output:
	// coal: column 0, value 30
	// gas: column 0, value 20
	// plant: column 1, value 50
	// grid: column 2, value 50
}

func ExampleLayout_customAlignment() {
	g := &sankey.Graph{
		Nodes: []*sankey.Node{{ID: "a"}, {ID: "b"}},
		Links: []*sankey.Link{{Source: "a", Target: "b", Value: 1}},
	}

	cfg := sankey.DefaultConfig()
	cfg.Align = sankey.AlignCustom
	cfg.AlignFunc = func(n *sankey.Node, columns int) int {
		// Mirror the left alignment by hand.
		return n.Depth
	}
	if err := sankey.Layout(g, cfg); err != nil {
		fmt.Println("layout failed:", err)
		return
	}
	fmt.Println("a column:", g.Nodes[0].Layer)
	fmt.Println("b column:", g.Nodes[1].Layer)
	// Output:
	// a column: 0
	// b column: 1
}
