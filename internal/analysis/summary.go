package analysis

import (
	"math"

	"github.com/san-kum/shmviz/internal/shm"
)

// Extrema of one series. NaN entries are ignored; Count is the number of
// values considered.
type Extrema struct {
	Min, Max float64
	Count    int
}

type Summary struct {
	Position     Extrema
	Velocity     Extrema
	Acceleration Extrema
	Period       float64
}

func extremaOf(xs []float64) Extrema {
	e := Extrema{Min: math.NaN(), Max: math.NaN()}
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if e.Count == 0 || x < e.Min {
			e.Min = x
		}
		if e.Count == 0 || x > e.Max {
			e.Max = x
		}
		e.Count++
	}
	return e
}

func Summarize(tr shm.Trajectory) Summary {
	return Summary{
		Position:     extremaOf(tr.Position),
		Velocity:     extremaOf(tr.Velocity),
		Acceleration: extremaOf(tr.Acceleration),
		Period:       shm.Period(tr.Params),
	}
}
