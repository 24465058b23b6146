package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadGraph decodes a JSON flow graph from r.
//
// The input must be a JSON object with "nodes" and "links" arrays:
//
//	{
//	  "nodes": [{"id": "coal"}, {"id": "plant"}],
//	  "links": [{"source": "coal", "target": "plant", "value": 30}]
//	}
//
// Each node must have an "id" field; "label", "value" (fixed value
// override), and "meta" are optional. Each link must have "source",
// "target" and a positive "value".
//
// ReadGraph only validates JSON syntax; referential integrity and value
// contracts are checked by [sankey.Layout]. ReadGraph does not close r.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

// ImportGraph reads a JSON file at path and returns the decoded graph.
// Errors wrap the underlying cause with the file path for context.
func ImportGraph(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	g, err := ReadGraph(f)
	if err != nil {
		return Graph{}, fmt.Errorf("read %s: %w", path, err)
	}
	return g, nil
}

// WriteResult encodes a layout result as indented JSON to w.
func WriteResult(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportResult writes a layout result to the file at path, creating or
// truncating it.
func ExportResult(path string, r Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteResult(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
