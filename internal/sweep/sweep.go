// Package sweep evaluates a grid of SHM parameters concurrently.
package sweep

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sort"

	"github.com/san-kum/shmviz/internal/analysis"
	"github.com/san-kum/shmviz/internal/shm"
	"golang.org/x/sync/errgroup"
)

var ErrEmptyGrid = errors.New("sweep: every axis needs at least one value")

// Grid lists the values tried for each parameter. Points enumerates the
// cartesian product.
type Grid struct {
	Amplitudes []float64
	Omegas     []float64
	Phases     []float64
}

func (g Grid) Size() int { return len(g.Amplitudes) * len(g.Omegas) * len(g.Phases) }

// Points returns every parameter combination, amplitude varying slowest.
func (g Grid) Points() []shm.Params {
	points := make([]shm.Params, 0, g.Size())
	axes := [][]float64{g.Amplitudes, g.Omegas, g.Phases}
	var walk func(depth int, current [3]float64)
	walk = func(depth int, current [3]float64) {
		if depth == len(axes) {
			points = append(points, shm.Params{
				Amplitude:        current[0],
				AngularFrequency: current[1],
				Phase:            current[2],
			})
			return
		}
		for _, v := range axes[depth] {
			current[depth] = v
			walk(depth+1, current)
		}
	}
	walk(0, [3]float64{})
	return points
}

// Result is the evaluation of one grid point.
type Result struct {
	Params   shm.Params
	Summary  analysis.Summary
	PeakAbs  [3]float64 // position, velocity, acceleration
	Dominant float64    // Hz, NaN when the position series is not finite
}

// Run samples and summarizes every grid point with at most workers
// goroutines. Results keep grid order. workers <= 0 uses GOMAXPROCS.
func Run(ctx context.Context, g Grid, workers int) ([]Result, error) {
	if g.Size() == 0 {
		return nil, ErrEmptyGrid
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	points := g.Points()
	results := make([]Result, len(points))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, p := range points {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = evaluatePoint(p)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	// gctx is always done after Wait; only the caller's context means abort.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// evaluatePoint is swapped in tests to hold a sweep mid-run.
var evaluatePoint = evaluate

func evaluate(p shm.Params) Result {
	tr := shm.Sample(p)
	s := analysis.Summarize(tr)
	r := Result{
		Params:  p,
		Summary: s,
		PeakAbs: [3]float64{peakAbs(s.Position), peakAbs(s.Velocity), peakAbs(s.Acceleration)},
	}
	f, err := analysis.DominantFrequency(tr.Position, shm.SampleStep)
	if err != nil {
		f = math.NaN()
	}
	r.Dominant = f
	return r
}

func peakAbs(e analysis.Extrema) float64 {
	if e.Count == 0 {
		return math.NaN()
	}
	return math.Max(math.Abs(e.Min), math.Abs(e.Max))
}

// Metric picks the value Best ranks by.
type Metric func(Result) float64

var Metrics = map[string]Metric{
	"position":     func(r Result) float64 { return r.PeakAbs[0] },
	"velocity":     func(r Result) float64 { return r.PeakAbs[1] },
	"acceleration": func(r Result) float64 { return r.PeakAbs[2] },
	"frequency":    func(r Result) float64 { return r.Dominant },
}

func MetricNames() []string {
	names := make([]string, 0, len(Metrics))
	for k := range Metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Best returns the result with the smallest metric value, skipping NaN.
// ok is false when no result has a comparable value.
func Best(results []Result, metric Metric) (best Result, ok bool) {
	bestVal := math.Inf(1)
	for _, r := range results {
		v := metric(r)
		if math.IsNaN(v) {
			continue
		}
		if !ok || v < bestVal {
			best, bestVal, ok = r, v, true
		}
	}
	return best, ok
}
