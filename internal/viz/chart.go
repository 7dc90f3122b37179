package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/shmviz/internal/shm"
)

// SeriesLegends labels the chart series in trajectory order.
var SeriesLegends = []string{"position", "velocity", "acceleration"}

type ChartOptions struct {
	Width   int
	Height  int
	Caption string
	Theme   Theme
}

func DefaultChartOptions() ChartOptions {
	return ChartOptions{Width: 80, Height: 12, Caption: "time (s)", Theme: ThemeClassic}
}

// PlotTrajectory draws the three series of tr as one ascii chart.
// Infinite samples are treated as gaps. If no sample is finite the
// chart is replaced by a one-line notice.
func PlotTrajectory(tr shm.Trajectory, opts ChartOptions) string {
	if tr.Len() == 0 {
		return "no samples"
	}
	series, lo, hi, ok := finiteSeries(tr.Series())
	if !ok {
		return fmt.Sprintf("nothing to plot for %s (no finite samples)", tr.Params)
	}
	if opts.Width <= 0 {
		opts.Width = DefaultChartOptions().Width
	}
	if opts.Height <= 0 {
		opts.Height = DefaultChartOptions().Height
	}
	// asciigraph sizes its grid from height/(hi-lo); keep that finite.
	if span := hi - lo; span > 0 && (math.IsInf(span, 0) || math.IsInf(float64(opts.Height)/span, 0)) {
		return fmt.Sprintf("values of %s are out of chart range [%g, %g]", tr.Params, lo, hi)
	}
	caption := opts.Caption
	if caption == "" {
		caption = fmt.Sprintf("time (s) 0 .. %g", shm.WindowSpan())
	}
	th := opts.Theme
	return asciigraph.PlotMany(series,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(th.Series[0], th.Series[1], th.Series[2]),
		asciigraph.SeriesLegends(SeriesLegends...),
	)
}

// finiteSeries copies data replacing ±Inf with NaN, which the chart
// skips. It returns the range of the finite values and whether there
// was any.
func finiteSeries(data [][]float64) (out [][]float64, lo, hi float64, ok bool) {
	out = make([][]float64, len(data))
	lo, hi = math.Inf(1), math.Inf(-1)
	for i, s := range data {
		out[i] = make([]float64, len(s))
		for j, v := range s {
			if math.IsInf(v, 0) {
				v = math.NaN()
			}
			if !math.IsNaN(v) {
				ok = true
				lo, hi = math.Min(lo, v), math.Max(hi, v)
			}
			out[i][j] = v
		}
	}
	return out, lo, hi, ok
}
