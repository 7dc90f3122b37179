package viz

import (
	"math"
	"sync"

	"github.com/san-kum/shmviz/internal/anim"
)

const (
	// DefaultPixelsPerDot maps frame pixels to Braille dots.
	DefaultPixelsPerDot = 5.0
	trailLength         = 24
	massHalfSize        = 3
	springCoils         = 10
)

// BobView draws the oscillating mass on a spring. It implements
// anim.Renderer and keeps the most recent frame for the next View.
type BobView struct {
	mu       sync.Mutex
	frame    anim.Frame
	frames   int
	trail    []float64
	pxPerDot float64
}

func NewBobView(pxPerDot float64) *BobView {
	if pxPerDot <= 0 {
		pxPerDot = DefaultPixelsPerDot
	}
	return &BobView{pxPerDot: pxPerDot, trail: make([]float64, 0, trailLength)}
}

func (b *BobView) Render(f anim.Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame = f
	b.frames++
	b.trail = append(b.trail, f.Offset)
	if len(b.trail) > trailLength {
		b.trail = b.trail[1:]
	}
}

// Frame returns the last rendered frame and how many frames were rendered.
func (b *BobView) Frame() (anim.Frame, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frame, b.frames
}

// Reset forgets the trail, e.g. after the parameters jump.
func (b *BobView) Reset() {
	b.mu.Lock()
	b.trail = b.trail[:0]
	b.mu.Unlock()
}

// Draw paints the spring, the mass and its trail on c. The rest position
// is the middle of the canvas along the frame's axis.
func (b *BobView) Draw(c *Canvas) {
	b.mu.Lock()
	f := b.frame
	trail := append([]float64(nil), b.trail...)
	b.mu.Unlock()

	c.Clear()
	if f.Axis == anim.Vertical {
		b.drawVertical(c, f.Offset, trail)
		return
	}
	b.drawHorizontal(c, f.Offset, trail)
}

// MassDot converts a pixel offset to the dot position of the mass center
// along the axis of motion for a canvas whose rest point is at rest.
func (b *BobView) MassDot(rest int, offset float64) int {
	d := offset / b.pxPerDot
	if math.IsNaN(d) {
		return rest
	}
	d = math.Max(-1e6, math.Min(1e6, d))
	return rest + int(math.Round(d))
}

func (b *BobView) drawHorizontal(c *Canvas, offset float64, trail []float64) {
	cy := c.DotsHigh() / 2
	restX := c.DotsWide() / 2
	wallX := 1
	c.DrawLine(wallX, 0, wallX, c.DotsHigh()-1)
	for _, o := range trail {
		c.Set(b.MassDot(restX, o), c.DotsHigh()-1)
	}
	massX := b.MassDot(restX, offset)
	drawCoils(c, wallX, cy, massX-massHalfSize, cy, false)
	c.FillRect(massX, cy, massHalfSize)
}

func (b *BobView) drawVertical(c *Canvas, offset float64, trail []float64) {
	cx := c.DotsWide() / 2
	restY := c.DotsHigh() / 2
	ceilY := 0
	c.DrawLine(cx-8, ceilY, cx+8, ceilY)
	for _, o := range trail {
		c.Set(c.DotsWide()-1, b.MassDot(restY, o))
	}
	massY := b.MassDot(restY, offset)
	drawCoils(c, cx, ceilY, cx, massY-massHalfSize, true)
	c.FillRect(cx, massY, massHalfSize)
}

// drawCoils draws a zigzag spring between two points on one axis.
func drawCoils(c *Canvas, x0, y0, x1, y1 int, vertical bool) {
	start, end := x0, x1
	if vertical {
		start, end = y0, y1
	}
	step := float64(end-start) / springCoils
	prevX, prevY := x0, y0
	for i := 1; i <= springCoils; i++ {
		along := start + int(float64(i)*step)
		amp := 2
		if i%2 == 0 {
			amp = -2
		}
		if i == springCoils {
			amp = 0
		}
		currX, currY := along, y0+amp
		if vertical {
			currX, currY = x0+amp, along
		}
		c.DrawLine(prevX, prevY, currX, currY)
		prevX, prevY = currX, currY
	}
}
