package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/flowviz/sankey/pkg/sankey"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleNumber      = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim         = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
)

// printSuccess prints a success message to stderr.
func printSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", styleIconSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}

// printError prints an error message to stderr.
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", styleIconError.Render(iconError), fmt.Sprintf(format, args...))
}

// printSummary prints a one-line overview of a laid-out graph.
func printSummary(g *sankey.Graph) {
	var total float64
	for _, l := range g.Links {
		total += l.Value
	}
	fmt.Fprintf(os.Stderr, "  %s nodes  %s links  %s columns  %s\n",
		styleNumber.Render(fmt.Sprintf("%d", len(g.Nodes))),
		styleNumber.Render(fmt.Sprintf("%d", len(g.Links))),
		styleNumber.Render(fmt.Sprintf("%d", columnCount(g))),
		styleDim.Render(fmt.Sprintf("total flow %g", total)),
	)
}
