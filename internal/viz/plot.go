// Package viz renders trajectories and live runs in the terminal.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"chemsim/internal/ode"
)

const (
	PlotWidth  = 80
	PlotHeight = 10
)

// PlotSeries renders one labelled series.
func PlotSeries(values []float64, caption string) string {
	if len(values) < 2 {
		return "(not enough samples to plot)"
	}
	return asciigraph.Plot(values,
		asciigraph.Height(PlotHeight),
		asciigraph.Width(PlotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotResult renders one graph per column of a trajectory.
func PlotResult(res *ode.Result, columns []string) string {
	var b strings.Builder
	for i, name := range columns {
		caption := fmt.Sprintf("[%s] over time (%.4g .. %.4g)", name,
			res.Times[0], res.Times[len(res.Times)-1])
		if name == "T" {
			caption = fmt.Sprintf("T / K over time (%.4g .. %.4g)",
				res.Times[0], res.Times[len(res.Times)-1])
		}
		b.WriteString(HeaderStyle.Render(name))
		b.WriteString("\n")
		b.WriteString(PlotSeries(res.At(i), caption))
		b.WriteString("\n\n")
	}
	return b.String()
}

// PlotColumns renders stored CSV data, one graph per selected column.
func PlotColumns(times []float64, states [][]float64, columns []string, only string) (string, error) {
	var b strings.Builder
	plotted := 0
	for i, name := range columns {
		if only != "" && name != only {
			continue
		}
		series := make([]float64, len(states))
		for k, row := range states {
			series[k] = row[i]
		}
		caption := fmt.Sprintf("[%s] over time (%.4g .. %.4g)", name,
			times[0], times[len(times)-1])
		b.WriteString(HeaderStyle.Render(name))
		b.WriteString("\n")
		b.WriteString(PlotSeries(series, caption))
		b.WriteString("\n\n")
		plotted++
	}
	if plotted == 0 {
		return "", fmt.Errorf("no column %q in %v", only, columns)
	}
	return b.String(), nil
}
