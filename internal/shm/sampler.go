package shm

import (
	"math"
	"sync"
)

// Trajectory holds the sampled series, index-aligned with T.
// Slices returned by Sample and Sampler must be treated as read-only.
type Trajectory struct {
	Params       Params
	T            []float64
	Position     []float64
	Velocity     []float64
	Acceleration []float64
}

func (tr Trajectory) Len() int { return len(tr.T) }

// At returns the kinematics of sample i.
func (tr Trajectory) At(i int) Kinematics {
	return Kinematics{
		Position:     tr.Position[i],
		Velocity:     tr.Velocity[i],
		Acceleration: tr.Acceleration[i],
	}
}

// Series returns the three value series in chart order.
func (tr Trajectory) Series() [][]float64 {
	return [][]float64{tr.Position, tr.Velocity, tr.Acceleration}
}

// Sample evaluates the kinematics independently at every point of the sample
// window. Non-finite parameters produce non-finite samples.
func Sample(p Params) Trajectory {
	t := SampleWindow()
	tr := Trajectory{
		Params:       p,
		T:            t,
		Position:     make([]float64, len(t)),
		Velocity:     make([]float64, len(t)),
		Acceleration: make([]float64, len(t)),
	}
	for i, ti := range t {
		k := Eval(p, ti)
		tr.Position[i] = k.Position
		tr.Velocity[i] = k.Velocity
		tr.Acceleration[i] = k.Acceleration
	}
	return tr
}

const DefaultCacheSize = 16

type paramsKey [3]uint64

func keyOf(p Params) paramsKey {
	return paramsKey{
		math.Float64bits(p.Amplitude),
		math.Float64bits(p.AngularFrequency),
		math.Float64bits(p.Phase),
	}
}

// Sampler memoizes Sample by parameter bit pattern, so NaN inputs are cached
// like any other value. Oldest entries are evicted first.
type Sampler struct {
	mu     sync.Mutex
	size   int
	cache  map[paramsKey]Trajectory
	order  []paramsKey
	hits   int
	misses int
}

func NewSampler(size int) *Sampler {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Sampler{
		size:  size,
		cache: make(map[paramsKey]Trajectory, size),
		order: make([]paramsKey, 0, size),
	}
}

func (s *Sampler) Sample(p Params) Trajectory {
	k := keyOf(p)

	s.mu.Lock()
	if tr, ok := s.cache[k]; ok {
		s.hits++
		s.mu.Unlock()
		return tr
	}
	s.misses++
	s.mu.Unlock()

	tr := Sample(p)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cache[k]; !ok {
		if len(s.order) >= s.size {
			delete(s.cache, s.order[0])
			s.order = s.order[1:]
		}
		s.order = append(s.order, k)
		s.cache[k] = tr
	}
	return tr
}

// Stats reports cache hits and misses.
func (s *Sampler) Stats() (hits, misses int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits, s.misses
}

func (s *Sampler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}
