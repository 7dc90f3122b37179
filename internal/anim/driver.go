package anim

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/san-kum/shmviz/internal/shm"
	"go.uber.org/zap"
)

const (
	DefaultInterval      = 30 * time.Millisecond
	DefaultClockStep     = 0.02
	DefaultPixelsPerUnit = 100.0
)

// Axis is the screen direction the offset is applied along.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

func ParseAxis(s string) (Axis, error) {
	switch s {
	case "horizontal", "h", "x":
		return Horizontal, nil
	case "vertical", "v", "y":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown axis %q", s)
}

// Frame is what the driver publishes on every tick.
type Frame struct {
	Tick         int
	Clock        float64
	Params       shm.Params
	Displacement float64
	Offset       float64
	Axis         Axis
}

// Translation returns the offset as a (dx, dy) pixel pair.
func (f Frame) Translation() (dx, dy float64) {
	if f.Axis == Vertical {
		return 0, f.Offset
	}
	return f.Offset, 0
}

// Renderer consumes frames. Render runs while the driver holds its lock and
// must not call back into the driver.
type Renderer interface {
	Render(Frame)
}

type RendererFunc func(Frame)

func (f RendererFunc) Render(fr Frame) { f(fr) }

// ParamSource yields the parameters current at the moment of a tick.
type ParamSource interface {
	Snapshot() shm.Params
}

type Options struct {
	Interval      time.Duration
	ClockStep     float64
	PixelsPerUnit float64
	Axis          Axis
	Logger        *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		Interval:      DefaultInterval,
		ClockStep:     DefaultClockStep,
		PixelsPerUnit: DefaultPixelsPerUnit,
		Axis:          Horizontal,
	}
}

type phase int

const (
	phaseIdle phase = iota
	phaseRunning
	phaseStopped
)

// Driver owns the virtual clock. It moves Idle -> Running on Start and
// Running -> Stopped on Stop; a stopped driver never runs again.
type Driver struct {
	mu     sync.Mutex
	src    ParamSource
	out    Renderer
	sched  Scheduler
	opts   Options
	log    *zap.Logger
	phase  phase
	clock  float64
	ticks  int
	last   Frame
	cancel func()
}

func finitePositive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

func NewDriver(src ParamSource, out Renderer, sched Scheduler, opts Options) *Driver {
	def := DefaultOptions()
	if opts.Interval <= 0 {
		opts.Interval = def.Interval
	}
	if !finitePositive(opts.ClockStep) {
		opts.ClockStep = def.ClockStep
	}
	if !finitePositive(opts.PixelsPerUnit) {
		opts.PixelsPerUnit = def.PixelsPerUnit
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{
		src:   src,
		out:   out,
		sched: sched,
		opts:  opts,
		log:   log.Named("anim"),
		last:  Frame{Axis: opts.Axis},
	}
}

// Start schedules the periodic tick. Starting a running driver is a no-op;
// starting a stopped one fails with shm.ErrDriverStopped.
func (d *Driver) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.phase {
	case phaseRunning:
		return nil
	case phaseStopped:
		return shm.ErrDriverStopped
	}

	d.phase = phaseRunning
	d.cancel = d.sched.Schedule(d.opts.Interval, d.onTimer)
	d.log.Debug("driver started",
		zap.Duration("interval", d.opts.Interval),
		zap.Float64("clock_step", d.opts.ClockStep),
		zap.Stringer("axis", d.opts.Axis))
	return nil
}

func (d *Driver) onTimer() { d.Tick() }

// Tick advances the clock by one step, evaluates the displacement with the
// current parameters and publishes it. It reports false, without side
// effects, unless the driver is running.
func (d *Driver) Tick() (Frame, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.phase != phaseRunning {
		return Frame{}, false
	}

	d.ticks++
	d.clock += d.opts.ClockStep

	p := d.src.Snapshot()
	disp := shm.Position(p, d.clock)
	f := Frame{
		Tick:         d.ticks,
		Clock:        d.clock,
		Params:       p,
		Displacement: disp,
		Offset:       disp * d.opts.PixelsPerUnit,
		Axis:         d.opts.Axis,
	}
	d.last = f

	if d.out != nil {
		d.out.Render(f)
	}
	return f, true
}

// Stop cancels the schedule and waits for an in-flight tick to finish. No
// frame is published after Stop returns. Safe to call more than once.
func (d *Driver) Stop() {
	d.mu.Lock()
	if d.phase == phaseStopped {
		d.mu.Unlock()
		return
	}
	d.phase = phaseStopped
	cancel := d.cancel
	d.cancel = nil
	ticks, clock := d.ticks, d.clock
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	d.log.Debug("driver stopped", zap.Int("ticks", ticks), zap.Float64("clock", clock))
}

func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase == phaseRunning
}

func (d *Driver) Clock() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clock
}

func (d *Driver) Ticks() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticks
}

// Last returns the most recently published frame.
func (d *Driver) Last() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

func (d *Driver) Interval() time.Duration { return d.opts.Interval }
