package shm_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/shmviz/internal/shm"
)

var _ = Describe("SampleWindow", func() {
	It("has 1000 points spaced 0.002 apart", func() {
		t := shm.SampleWindow()
		Expect(t).To(HaveLen(shm.SampleCount))
		Expect(t[0]).To(BeNumerically("==", 0))
		Expect(t[len(t)-1]).To(BeNumerically("~", 1.998, 1e-12))
		for i := 1; i < len(t); i++ {
			Expect(t[i] - t[i-1]).To(BeNumerically("~", shm.SampleStep, 1e-12))
		}
	})

	It("returns a fresh slice on every call", func() {
		a := shm.SampleWindow()
		a[10] = -1
		b := shm.SampleWindow()
		Expect(b[10]).To(BeNumerically("~", 0.02, 1e-15))
	})
})

var _ = Describe("Sample", func() {
	params := []shm.Params{
		shm.DefaultParams(),
		{Amplitude: 2.5, AngularFrequency: 3, Phase: 0.7},
		{Amplitude: -1, AngularFrequency: -7.5, Phase: -2},
		{Amplitude: 1e6, AngularFrequency: 150, Phase: math.Pi},
	}

	It("keeps every series aligned with the window", func() {
		for _, p := range params {
			tr := shm.Sample(p)
			Expect(tr.Len()).To(Equal(shm.SampleCount))
			Expect(tr.Position).To(HaveLen(shm.SampleCount))
			Expect(tr.Velocity).To(HaveLen(shm.SampleCount))
			Expect(tr.Acceleration).To(HaveLen(shm.SampleCount))
			Expect(tr.T).To(Equal(shm.SampleWindow()))
		}
	})

	It("evaluates the closed-form formulas at each sample", func() {
		for _, p := range params {
			tr := shm.Sample(p)
			A, w, phi := p.Amplitude, p.AngularFrequency, p.Phase
			tol := 1e-9 * math.Max(1, math.Abs(w*w*A))
			for i, t := range tr.T {
				Expect(tr.Position[i]).To(BeNumerically("~", A*math.Sin(w*t+phi), tol))
				Expect(tr.Velocity[i]).To(BeNumerically("~", w*A*math.Cos(w*t+phi), tol))
				Expect(tr.Acceleration[i]).To(BeNumerically("~", w*w*A*math.Sin(w*t+phi), tol))
			}
		}
	})

	It("matches the free functions", func() {
		p := shm.Params{Amplitude: 1.3, AngularFrequency: 4.2, Phase: 0.1}
		tr := shm.Sample(p)
		for _, i := range []int{0, 1, 333, 999} {
			Expect(tr.Position[i]).To(BeNumerically("~", shm.Position(p, tr.T[i]), 1e-12))
			Expect(tr.Velocity[i]).To(BeNumerically("~", shm.Velocity(p, tr.T[i]), 1e-12))
			Expect(tr.Acceleration[i]).To(BeNumerically("~", shm.Acceleration(p, tr.T[i]), 1e-12))
		}
	})

	It("reproduces the quarter-period example with a positive acceleration sign", func() {
		tr := shm.Sample(shm.DefaultParams())
		i := 125
		Expect(tr.T[i]).To(BeNumerically("~", 0.25, 1e-12))
		Expect(tr.Position[i]).To(BeNumerically("~", 1.0, 1e-9))
		Expect(tr.Velocity[i]).To(BeNumerically("~", 0, 1e-9))
		Expect(tr.Acceleration[i]).To(BeNumerically("~", 4*math.Pi*math.Pi, 1e-9))
		Expect(tr.Acceleration[i]).To(BeNumerically(">", 39.47))
	})

	It("is periodic in 2π/ω", func() {
		for _, w := range []float64{2 * math.Pi, 4 * math.Pi, -2 * math.Pi} {
			p := shm.Params{Amplitude: 1.7, AngularFrequency: w, Phase: 0.4}
			tr := shm.Sample(p)
			shift := int(math.Round(shm.Period(p) / shm.SampleStep))
			for i := 0; i+shift < tr.Len(); i++ {
				Expect(tr.Position[i+shift]).To(BeNumerically("~", tr.Position[i], 1e-9))
			}
		}
	})

	It("is constant with zero velocity and acceleration when ω is zero", func() {
		p := shm.Params{Amplitude: 3, AngularFrequency: 0, Phase: 0.5}
		tr := shm.Sample(p)
		for i := range tr.T {
			Expect(tr.Position[i]).To(BeNumerically("~", 3*math.Sin(0.5), 1e-15))
			Expect(tr.Velocity[i]).To(BeNumerically("==", 0))
			Expect(tr.Acceleration[i]).To(BeNumerically("==", 0))
		}
	})

	It("scales every series linearly with amplitude", func() {
		base := shm.Params{Amplitude: 1.1, AngularFrequency: 5.3, Phase: 0.2}
		ref := shm.Sample(base)
		for _, k := range []float64{2, -0.5, 8} {
			p := base
			p.Amplitude *= k
			tr := shm.Sample(p)
			for i := range tr.T {
				Expect(tr.Position[i]).To(Equal(k * ref.Position[i]))
				Expect(tr.Velocity[i]).To(Equal(k * ref.Velocity[i]))
				Expect(tr.Acceleration[i]).To(Equal(k * ref.Acceleration[i]))
			}
		}
	})

	It("propagates non-finite inputs instead of failing", func() {
		tr := shm.Sample(shm.Params{Amplitude: math.NaN(), AngularFrequency: 1})
		for i := range tr.T {
			Expect(math.IsNaN(tr.Position[i])).To(BeTrue())
		}

		tr = shm.Sample(shm.Params{Amplitude: 1, AngularFrequency: math.Inf(1)})
		Expect(math.IsNaN(tr.Position[0])).To(BeTrue())
		Expect(math.IsNaN(tr.Velocity[500])).To(BeTrue())
		Expect(tr.Len()).To(Equal(shm.SampleCount))
	})
})

var _ = Describe("Sampler", func() {
	It("returns the cached trajectory for identical parameters", func() {
		s := shm.NewSampler(4)
		p := shm.DefaultParams()
		a := s.Sample(p)
		b := s.Sample(p)
		Expect(&a.Position[0]).To(BeIdenticalTo(&b.Position[0]))

		hits, misses := s.Stats()
		Expect(hits).To(Equal(1))
		Expect(misses).To(Equal(1))
	})

	It("caches NaN parameters by bit pattern", func() {
		s := shm.NewSampler(4)
		p := shm.Params{Amplitude: math.NaN()}
		s.Sample(p)
		s.Sample(p)
		Expect(s.Len()).To(Equal(1))
	})

	It("evicts the oldest entry when full", func() {
		s := shm.NewSampler(2)
		for i := 0; i < 3; i++ {
			s.Sample(shm.Params{Amplitude: float64(i + 1), AngularFrequency: 1})
		}
		Expect(s.Len()).To(Equal(2))

		s.Sample(shm.Params{Amplitude: 1, AngularFrequency: 1})
		_, misses := s.Stats()
		Expect(misses).To(Equal(4))
	})
})
