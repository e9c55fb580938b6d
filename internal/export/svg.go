// Package export renders a results graph as SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/virtuallab/internal/results"
)

// GraphSVG draws the points of a results table as dots with the best fit
// line through them. It returns "" when there are fewer than two points.
func GraphSVG(x, y []float64, fit results.Fit, width, height int, caption string) string {
	if len(x) < 2 || len(x) != len(y) {
		return ""
	}

	minX, maxX := x[0], x[0]
	minY, maxY := y[0], y[0]
	for i := range x {
		minX, maxX = min(minX, x[i]), max(maxX, x[i])
		minY, maxY = min(minY, y[i]), max(maxY, y[i])
	}
	for _, fx := range []float64{minX, maxX} {
		fy := fit.At(fx)
		minY, maxY = min(minY, fy), max(maxY, fy)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	px := func(v float64) float64 { return (v - minX) / rangeX * float64(width) }
	py := func(v float64) float64 { return float64(height) - (v-minY)/rangeY*float64(height) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	lo, hi := minX+rangeX*0.05, maxX-rangeX*0.05
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#ff4444" stroke-width="1.5" d="M%.1f,%.1f L%.1f,%.1f"/>
`, px(lo), py(fit.At(lo)), px(hi), py(fit.At(hi))))

	sb.WriteString(`<g fill="#00ccff">
`)
	for i := range x {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3"/>
`, px(x[i]), py(y[i])))
	}
	sb.WriteString("</g>\n")

	if caption != "" {
		sb.WriteString(fmt.Sprintf(`<text x="8" y="16" fill="#888899" font-family="monospace" font-size="12">%s</text>
`, escape(caption)))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// TableSVG analyses t and draws its graph.
func TableSVG(t *results.Table, width, height int) (string, error) {
	r, err := results.Analyse(t)
	if err != nil {
		return "", err
	}
	x, y := t.Points()
	return GraphSVG(x, y, r.Fit, width, height, r.String()), nil
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
