package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowviz/sankey/pkg/graph"
	"github.com/flowviz/sankey/pkg/sankey"
)

// layoutCommand creates the layout command for computing diagram geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		configPath string
	)
	opts := defaultOptions()

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute Sankey diagram geometry from a flow graph",
		Long: `Compute Sankey diagram geometry from a flow graph.

The layout command takes a graph.json file with "nodes" and "links" arrays,
runs the layout engine, and writes a layout.json file describing the final
position of every node and link. Downstream renderers consume that file
read-only.

Options can come from flags or from a TOML config file (--config); explicit
flags win over the file, and the file wins over built-in defaults.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				fileOpts, err := loadOptions(configPath, defaultOptions())
				if err != nil {
					return err
				}
				mergeUnchanged(cmd, &opts, fileOpts)
			}
			return c.runLayout(args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, \"-\" for stdout)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file with layout options")

	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().Float64Var(&opts.NodeWidth, "node-width", opts.NodeWidth, "horizontal node extent")
	cmd.Flags().Float64Var(&opts.NodePadding, "node-padding", opts.NodePadding, "minimum vertical gap between nodes")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", opts.Iterations, "relaxation iterations")
	cmd.Flags().StringVar(&opts.Align, "align", opts.Align, "alignment policy: justify (default), left, right, center")

	return cmd
}

// mergeUnchanged copies config-file values into opts for every flag the user
// did not set explicitly, so precedence is flags > file > defaults.
func mergeUnchanged(cmd *cobra.Command, opts *Options, file Options) {
	if !cmd.Flags().Changed("width") {
		opts.Width = file.Width
	}
	if !cmd.Flags().Changed("height") {
		opts.Height = file.Height
	}
	if !cmd.Flags().Changed("node-width") {
		opts.NodeWidth = file.NodeWidth
	}
	if !cmd.Flags().Changed("node-padding") {
		opts.NodePadding = file.NodePadding
	}
	if !cmd.Flags().Changed("iterations") {
		opts.Iterations = file.Iterations
	}
	if !cmd.Flags().Changed("align") {
		opts.Align = file.Align
	}
}

// runLayout loads the graph, runs the engine, and writes the result.
func (c *CLI) runLayout(input string, opts Options, output string) error {
	cfg, err := opts.Config()
	if err != nil {
		return err
	}

	g, err := graph.ImportGraph(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	c.Logger.Debugf("loaded %d nodes, %d links from %s", len(g.Nodes), len(g.Links), input)

	p := newProgress(c.Logger)
	sg := g.Sankey()
	if err := sankey.Layout(sg, cfg); err != nil {
		return fmt.Errorf("layout %s: %w", input, err)
	}
	p.done(fmt.Sprintf("Laid out %d nodes across %d columns", len(sg.Nodes), columnCount(sg)))

	res := graph.ResultFrom(sg)
	if output == "-" {
		return graph.WriteResult(os.Stdout, res)
	}
	if output == "" {
		output = strings.TrimSuffix(input, ".json") + ".layout.json"
	}
	if err := graph.ExportResult(output, res); err != nil {
		return err
	}
	printSuccess("Wrote %s", output)
	printSummary(sg)
	return nil
}

// columnCount returns the number of occupied columns after layout.
func columnCount(g *sankey.Graph) int {
	maxLayer := -1
	for _, n := range g.Nodes {
		maxLayer = max(maxLayer, n.Layer)
	}
	return maxLayer + 1
}
