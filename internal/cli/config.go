package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/flowviz/sankey/pkg/sankey"
)

// Options mirrors the layout flags. The TOML tags double as the config file
// keys, so a file can pin any subset:
//
//	width = 1280
//	height = 720
//	node_width = 20
//	node_padding = 10
//	iterations = 32
//	align = "left"
type Options struct {
	Width       float64 `toml:"width" json:"width,omitempty"`
	Height      float64 `toml:"height" json:"height,omitempty"`
	NodeWidth   float64 `toml:"node_width" json:"node_width,omitempty"`
	NodePadding float64 `toml:"node_padding" json:"node_padding,omitempty"`
	Iterations  int     `toml:"iterations" json:"iterations,omitempty"`
	Align       string  `toml:"align" json:"align,omitempty"`
}

// defaultOptions returns the CLI defaults: a 960x500 frame with the engine's
// reference node width, padding and iteration count.
func defaultOptions() Options {
	return Options{
		Width:       960,
		Height:      500,
		NodeWidth:   24,
		NodePadding: 8,
		Iterations:  6,
		Align:       sankey.AlignJustify.String(),
	}
}

// loadOptions reads a TOML config file over base. Keys absent from the file
// keep their base values; unknown keys are an error.
func loadOptions(path string, base Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("open config %s: %w", path, err)
	}
	opts := base
	meta, err := toml.Decode(string(data), &opts)
	if err != nil {
		return Options{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Options{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return opts, nil
}

// Config converts the options into an engine configuration.
func (o Options) Config() (sankey.Config, error) {
	align, err := sankey.ParseAlignment(o.Align)
	if err != nil {
		return sankey.Config{}, err
	}
	cfg := sankey.Config{
		X1:          o.Width,
		Y1:          o.Height,
		NodeWidth:   o.NodeWidth,
		NodePadding: o.NodePadding,
		Iterations:  o.Iterations,
		Align:       align,
	}
	if err := cfg.Validate(); err != nil {
		return sankey.Config{}, err
	}
	return cfg, nil
}
