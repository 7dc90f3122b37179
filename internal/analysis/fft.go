package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/shmviz/internal/shm"
)

var (
	ErrTooShort  = errors.New("analysis: need at least 4 samples")
	ErrNonFinite = errors.New("analysis: series contains NaN or Inf")
)

// PowerSpectrum returns |X_k| for k in [0, n/2]. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin
// of a series sampled every dt seconds. A flat series yields 0.
func DominantFrequency(data []float64, dt float64) (float64, error) {
	if len(data) < 4 {
		return 0, ErrTooShort
	}
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, ErrNonFinite
		}
	}

	ps := PowerSpectrum(data)
	total := 0.0
	for _, p := range ps {
		total += p
	}

	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower, maxIdx = ps[i], i
		}
	}
	if maxIdx == 0 || maxPower <= 1e-9*total {
		return 0, nil
	}
	return float64(maxIdx) / (float64(len(data)) * dt), nil
}

// EstimateOmega recovers |ω| from the position series. Resolution is one
// FFT bin, 2π/(N·dt) rad/s.
func EstimateOmega(tr shm.Trajectory) (float64, error) {
	f, err := DominantFrequency(tr.Position, shm.SampleStep)
	if err != nil {
		return 0, err
	}
	return 2 * math.Pi * f, nil
}
