// Package export renders trajectories to SVG.
package export

import (
	"fmt"
	"strings"
)

var strokePalette = []string{
	"#00ccff", "#00ff88", "#ffcc00", "#ff4444", "#ff00ff", "#8888ff",
}

// TrajectoriesToSVG plots one or more series against time with a
// shared vertical scale and a small legend.
func TrajectoriesToSVG(times []float64, series [][]float64, labels []string, width, height int) string {
	if len(times) < 2 || len(series) == 0 {
		return ""
	}

	minY, maxY := series[0][0], series[0][0]
	for _, s := range series {
		for _, v := range s {
			if v < minY {
				minY = v
			}
			if v > maxY {
				maxY = v
			}
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	minT := times[0]
	rangeT := times[len(times)-1] - minT
	if rangeT == 0 {
		rangeT = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for si, s := range series {
		color := strokePalette[si%len(strokePalette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for i := range times {
			x := (times[i] - minT) / rangeT * float64(width)
			y := float64(height) - (s[i]-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	for si, label := range labels {
		if si >= len(series) {
			break
		}
		color := strokePalette[si%len(strokePalette)]
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 16+14*si, color, label))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
