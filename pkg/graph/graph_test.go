package graph

import (
	"strings"
	"testing"

	"github.com/flowviz/sankey/pkg/sankey"
)

const sampleJSON = `{
  "nodes": [
    {"id": "coal", "label": "Coal"},
    {"id": "plant"},
    {"id": "grid", "value": 25}
  ],
  "links": [
    {"source": "coal", "target": "plant", "value": 30},
    {"source": "plant", "target": "grid", "value": 25}
  ]
}`

func TestReadGraph(t *testing.T) {
	g, err := ReadGraph(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ReadGraph() error = %v", err)
	}
	if len(g.Nodes) != 3 || len(g.Links) != 2 {
		t.Fatalf("got %d nodes, %d links, want 3, 2", len(g.Nodes), len(g.Links))
	}
	if g.Nodes[0].DisplayLabel() != "Coal" {
		t.Errorf("DisplayLabel() = %q, want Coal", g.Nodes[0].DisplayLabel())
	}
	if g.Nodes[1].DisplayLabel() != "plant" {
		t.Errorf("DisplayLabel() = %q, want plant (ID fallback)", g.Nodes[1].DisplayLabel())
	}
	if g.Nodes[2].Value == nil || *g.Nodes[2].Value != 25 {
		t.Errorf("grid fixed value not decoded: %v", g.Nodes[2].Value)
	}
	if g.Nodes[0].Value != nil {
		t.Errorf("coal has a fixed value, want none")
	}
}

func TestReadGraph_Malformed(t *testing.T) {
	if _, err := ReadGraph(strings.NewReader("{nodes")); err == nil {
		t.Fatal("ReadGraph() on malformed input: error = nil")
	}
}

func TestGraph_Sankey_RoundTrip(t *testing.T) {
	g, err := ReadGraph(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ReadGraph() error = %v", err)
	}

	sg := g.Sankey()
	cfg := sankey.DefaultConfig()
	cfg.X1, cfg.Y1 = 960, 500
	if err := sankey.Layout(sg, cfg); err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	res := ResultFrom(sg)
	if len(res.Nodes) != 3 || len(res.Links) != 2 {
		t.Fatalf("got %d nodes, %d links, want 3, 2", len(res.Nodes), len(res.Links))
	}
	for i, rn := range res.Nodes {
		n := sg.Nodes[i]
		if rn.ID != n.ID || rn.X0 != n.X0 || rn.X1 != n.X1 || rn.Y0 != n.Y0 || rn.Y1 != n.Y1 {
			t.Errorf("result node %d does not match engine geometry", i)
		}
	}
	for i, rl := range res.Links {
		l := sg.Links[i]
		if rl.Width != l.Width || rl.Y0 != l.Y0 || rl.Y1 != l.Y1 {
			t.Errorf("result link %d does not match engine geometry", i)
		}
	}
	if res.Nodes[2].Value != 25 {
		t.Errorf("grid value = %g, want fixed 25", res.Nodes[2].Value)
	}
}

func TestGraph_Sankey_CopiesFixedValue(t *testing.T) {
	v := 10.0
	g := Graph{Nodes: []Node{{ID: "a", Value: &v}}}
	sg := g.Sankey()

	*sg.Nodes[0].FixedValue = 99
	if v != 10 {
		t.Errorf("engine graph aliases the serialized fixed value")
	}
}

func TestWriteResult(t *testing.T) {
	var sb strings.Builder
	res := Result{
		Nodes: []ResultNode{{ID: "a", X0: 1, X1: 2, Y0: 3, Y1: 4}},
		Links: []ResultLink{{Source: "a", Target: "b", Value: 5, Width: 6}},
	}
	if err := WriteResult(&sb, res); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}
	out := sb.String()
	for _, want := range []string{`"id": "a"`, `"x0": 1`, `"width": 6`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}
