package export

import (
	"strings"
	"testing"

	"github.com/san-kum/virtuallab/internal/results"
)

func TestGraphSVG(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{1, 3, 5}
	svg := GraphSVG(x, y, results.Fit{Gradient: 2, Intercept: 1, N: 3}, 200, 100, "a < b")

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if n := strings.Count(svg, "<circle"); n != 3 {
		t.Errorf("expected 3 points, got %d", n)
	}
	if !strings.Contains(svg, "a &lt; b") {
		t.Error("caption not escaped")
	}
}

func TestGraphSVGTooFewPoints(t *testing.T) {
	if svg := GraphSVG([]float64{1}, []float64{1}, results.Fit{}, 10, 10, ""); svg != "" {
		t.Error("expected empty output")
	}
}

func TestTableSVG(t *testing.T) {
	svg, err := TableSVG(results.Example(results.Planck), 400, 300)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(svg, "<circle"); n != 7 {
		t.Errorf("expected 7 points, got %d", n)
	}
	if !strings.Contains(svg, "h = ") {
		t.Error("missing result caption")
	}

	if _, err := TableSVG(results.NewTable(results.Vertical), 10, 10); err == nil {
		t.Error("expected error for empty table")
	}
}
