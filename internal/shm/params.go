package shm

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
)

const (
	ParamAmplitude = "amplitude"
	ParamOmega     = "omega"
	ParamPhase     = "phase"
)

const (
	DefaultAmplitude = 1.0
	DefaultOmega     = 2 * math.Pi
	DefaultPhase     = 0.0
)

// Params holds the three SHM inputs. Any float64 is accepted, including zero,
// negative and non-finite values.
type Params struct {
	Amplitude        float64 `json:"amplitude" yaml:"amplitude"`
	AngularFrequency float64 `json:"omega" yaml:"omega"`
	Phase            float64 `json:"phase" yaml:"phase"`
}

func DefaultParams() Params {
	return Params{
		Amplitude:        DefaultAmplitude,
		AngularFrequency: DefaultOmega,
		Phase:            DefaultPhase,
	}
}

// ParamNames lists parameter names in input-widget order.
func ParamNames() []string {
	return []string{ParamAmplitude, ParamOmega, ParamPhase}
}

func (p Params) Get(name string) (float64, error) {
	switch name {
	case ParamAmplitude:
		return p.Amplitude, nil
	case ParamOmega:
		return p.AngularFrequency, nil
	case ParamPhase:
		return p.Phase, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownParam, name)
}

func (p *Params) Set(name string, value float64) error {
	switch name {
	case ParamAmplitude:
		p.Amplitude = value
	case ParamOmega:
		p.AngularFrequency = value
	case ParamPhase:
		p.Phase = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("A=%g ω=%g φ=%g", p.Amplitude, p.AngularFrequency, p.Phase)
}

// ParseValue parses raw input text as a real number. Literals beyond float64
// range become ±Inf rather than an error.
func ParseValue(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrMalformedInput
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, nil
		}
		return 0, ErrMalformedInput
	}
	return v, nil
}

// Controls is the parameter container shared by input widgets (writers) and
// the animation driver (reader).
type Controls struct {
	mu      sync.RWMutex
	params  Params
	initial Params
}

func NewControls(p Params) *Controls {
	return &Controls{params: p, initial: p}
}

// Snapshot returns the current parameters by value.
func (c *Controls) Snapshot() Params {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.params
}

func (c *Controls) Set(name string, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params.Set(name, value)
}

// SetText parses raw and stores it under name. On a parse failure the
// previous value is kept and an *InputError is returned.
func (c *Controls) SetText(name, raw string) error {
	if _, err := (Params{}).Get(name); err != nil {
		return err
	}
	v, err := ParseValue(raw)
	if err != nil {
		return &InputError{Param: name, Raw: raw, Wrapped: err}
	}
	return c.Set(name, v)
}

// Replace swaps all three parameters at once.
func (c *Controls) Replace(p Params) {
	c.mu.Lock()
	c.params = p
	c.mu.Unlock()
}

// Reset restores the parameters the container was created with.
func (c *Controls) Reset() {
	c.mu.Lock()
	c.params = c.initial
	c.mu.Unlock()
}
