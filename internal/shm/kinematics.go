package shm

import "math"

// Kinematics is the SHM state at a single instant.
type Kinematics struct {
	Position     float64
	Velocity     float64
	Acceleration float64
}

// Position returns A·sin(ωt+φ).
func Position(p Params, t float64) float64 {
	return p.Amplitude * math.Sin(p.AngularFrequency*t+p.Phase)
}

// Velocity returns ω·A·cos(ωt+φ).
func Velocity(p Params, t float64) float64 {
	return p.AngularFrequency * p.Amplitude * math.Cos(p.AngularFrequency*t+p.Phase)
}

// Acceleration returns ω²·A·sin(ωt+φ). The sign is positive; see the package
// documentation.
func Acceleration(p Params, t float64) float64 {
	w := p.AngularFrequency
	return w * w * p.Amplitude * math.Sin(w*t+p.Phase)
}

// Eval evaluates all three quantities at t with a single sin/cos pair.
func Eval(p Params, t float64) Kinematics {
	w, a := p.AngularFrequency, p.Amplitude
	s, c := math.Sincos(w*t + p.Phase)
	return Kinematics{
		Position:     a * s,
		Velocity:     w * a * c,
		Acceleration: w * w * a * s,
	}
}

// Period returns 2π/ω, or +Inf when ω is zero.
func Period(p Params) float64 {
	if p.AngularFrequency == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / math.Abs(p.AngularFrequency)
}
