package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/shmviz/internal/shm"
)

// Series is one line of a chart.
type Series struct {
	Name   string
	Color  string
	Values []float64
}

type ChartOptions struct {
	Width      int
	Height     int
	Title      string
	XLabel     string
	YLabel     string
	Background string
}

func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Width:      800,
		Height:     450,
		Title:      "Simple harmonic motion",
		XLabel:     "Time (s)",
		YLabel:     "Value",
		Background: "#fff8e7",
	}
}

// TrajectorySeries returns the three series in chart order with their
// conventional colors.
func TrajectorySeries(tr shm.Trajectory) []Series {
	return []Series{
		{Name: "Position", Color: "orange", Values: tr.Position},
		{Name: "Velocity", Color: "purple", Values: tr.Velocity},
		{Name: "Acceleration", Color: "cyan", Values: tr.Acceleration},
	}
}

func TrajectoryToSVG(tr shm.Trajectory, opts ChartOptions) string {
	return LineChartSVG(tr.T, TrajectorySeries(tr), opts)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// LineChartSVG renders series sharing the x values xs. Non-finite points
// break the line instead of stretching the axes.
func LineChartSVG(xs []float64, series []Series, opts ChartOptions) string {
	const margin = 50.0
	w, h := float64(opts.Width), float64(opts.Height)
	plotW, plotH := w-2*margin, h-2*margin

	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		if finite(x) {
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		}
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for i, v := range s.Values {
			if i < len(xs) && finite(v) {
				minY, maxY = math.Min(minY, v), math.Max(maxY, v)
			}
		}
	}
	if math.IsInf(minX, 1) {
		minX, maxX = 0, 1
	}
	if math.IsInf(minY, 1) {
		minY, maxY = -1, 1
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
		minY -= 0.5
	}
	minY -= rangeY * 0.05
	rangeY *= 1.1

	px := func(x float64) float64 { return margin + (x-minX)/rangeX*plotW }
	py := func(y float64) float64 { return margin + plotH - (y-minY)/rangeY*plotH }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Background))

	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="18">%s</text>
`, w/2, margin/2, opts.Title))
	}

	sb.WriteString(fmt.Sprintf(`<g stroke="#444" stroke-width="1">
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
</g>
`, margin, margin+plotH, margin+plotW, margin+plotH, margin, margin, margin, margin+plotH))

	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="12">%s</text>
<text x="%.1f" y="%.1f" text-anchor="middle" font-size="12" transform="rotate(-90 %.1f %.1f)">%s</text>
`, margin+plotW/2, h-margin/4, opts.XLabel, margin/3, margin+plotH/2, margin/3, margin+plotH/2, opts.YLabel))

	sb.WriteString(fmt.Sprintf(`<g font-size="10" fill="#444">
<text x="%.1f" y="%.1f" text-anchor="end">%.3g</text>
<text x="%.1f" y="%.1f" text-anchor="end">%.3g</text>
<text x="%.1f" y="%.1f" text-anchor="middle">%.3g</text>
<text x="%.1f" y="%.1f" text-anchor="middle">%.3g</text>
</g>
`, margin-4, margin+4, maxY, margin-4, margin+plotH, minY,
		margin, margin+plotH+14, minX, margin+plotW, margin+plotH+14, maxX))

	for _, s := range series {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, s.Color))
		pen := false
		for i, v := range s.Values {
			if i >= len(xs) {
				break
			}
			if !finite(v) || !finite(xs[i]) {
				pen = false
				continue
			}
			cmd := "L"
			if !pen {
				cmd = "M"
				pen = true
			}
			sb.WriteString(fmt.Sprintf("%s%.1f,%.1f ", cmd, px(xs[i]), py(v)))
		}
		sb.WriteString("\"/>\n")
	}

	for i, s := range series {
		y := margin + float64(i)*16
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="12" height="3" fill="%s"/><text x="%.1f" y="%.1f" font-size="11">%s</text>
`, w-margin-90, y, s.Color, w-margin-74, y+5, s.Name))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
