package analysis

import (
	"math"

	"github.com/san-kum/shmviz/internal/shm"
)

type Point struct{ X, Y float64 }

// PhasePortrait2D holds position/velocity pairs of a trajectory together
// with the semi-axes |A| and |ωA| of the ellipse they should trace.
type PhasePortrait2D struct {
	Points       []Point
	SemiPosition float64
	SemiVelocity float64
}

// PhasePortrait pairs each sampled position with its velocity. Pairs with a
// non-finite component are skipped.
func PhasePortrait(tr shm.Trajectory) *PhasePortrait2D {
	portrait := &PhasePortrait2D{
		Points:       make([]Point, 0, tr.Len()),
		SemiPosition: math.Abs(tr.Params.Amplitude),
		SemiVelocity: math.Abs(tr.Params.AngularFrequency * tr.Params.Amplitude),
	}
	for i := range tr.T {
		x, y := tr.Position[i], tr.Velocity[i]
		if !isFinite(x) || !isFinite(y) {
			continue
		}
		portrait.Points = append(portrait.Points, Point{X: x, Y: y})
	}
	return portrait
}

// Extent returns the half-widths to plot the portrait at. The semi-axes are
// used when usable; otherwise the largest sample magnitude, then 1.
func (p *PhasePortrait2D) Extent() (x, y float64) {
	var maxX, maxY float64
	for _, pt := range p.Points {
		maxX = math.Max(maxX, math.Abs(pt.X))
		maxY = math.Max(maxY, math.Abs(pt.Y))
	}
	return pickExtent(p.SemiPosition, maxX), pickExtent(p.SemiVelocity, maxY)
}

func pickExtent(semi, observed float64) float64 {
	switch {
	case semi > 0 && isFinite(semi):
		return semi
	case observed > 0:
		return observed
	default:
		return 1
	}
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
