package shm

const (
	// SampleCount is the number of points in the sample window.
	SampleCount = 1000
	// SampleStep is the spacing between consecutive sample times, in seconds.
	SampleStep = 0.002
)

// SampleWindow returns a fresh slice of t_i = i·SampleStep for i in [0, SampleCount).
// The window does not depend on the parameters.
func SampleWindow() []float64 {
	t := make([]float64, SampleCount)
	for i := range t {
		t[i] = float64(i) * SampleStep
	}
	return t
}

// WindowSpan returns the time of the last sample.
func WindowSpan() float64 {
	return float64(SampleCount-1) * SampleStep
}
