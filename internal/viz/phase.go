package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/shmviz/internal/analysis"
)

// phaseMargin pads the plotted extent so the ellipse does not touch the border.
const phaseMargin = 1.1

// PlotPhasePortrait draws position against velocity on a Braille canvas of
// cols x rows cells. Each axis is scaled to the portrait's extent so an SHM
// trajectory fills the plot as an ellipse regardless of A and ω. Axes are
// drawn through the origin and labelled with the extents.
func PlotPhasePortrait(p *analysis.PhasePortrait2D, cols, rows int) string {
	if p == nil || len(p.Points) == 0 || cols < 2 || rows < 2 {
		return ""
	}

	ex, ey := p.Extent()
	c := NewCanvas(cols, rows)
	w, h := c.DotsWide(), c.DotsHigh()
	toDot := func(x, y float64) (int, int) {
		dx := (x/(ex*phaseMargin) + 1) / 2 * float64(w-1)
		dy := (1 - y/(ey*phaseMargin)) / 2 * float64(h-1)
		return int(math.Round(dx)), int(math.Round(dy))
	}

	ox, oy := toDot(0, 0)
	c.DrawLine(0, oy, w-1, oy)
	c.DrawLine(ox, 0, ox, h-1)
	for _, pt := range p.Points {
		c.Set(toDot(pt.X, pt.Y))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "velocity ±%.4g\n", ey)
	b.WriteString(c.String())
	fmt.Fprintf(&b, "\nposition ±%.4g\n", ex)
	return b.String()
}
