package tui

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/shmviz/internal/anim"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"

	// DefaultPixelsPerCell maps frame pixels to terminal columns. Rows are
	// twice as tall as columns are wide.
	DefaultPixelsPerCell = 10.0
)

// LiveRenderer draws the bob on a plain ANSI terminal. It implements
// anim.Renderer.
type LiveRenderer struct {
	out          io.Writer
	pxPerCell    float64
	canvas       [][]rune
	trail        []cell
	pivotX       int
	pivotY       int
	restX, restY int
}

type cell struct{ x, y int }

func NewLiveRenderer(out io.Writer, pxPerCell float64) *LiveRenderer {
	if pxPerCell <= 0 {
		pxPerCell = DefaultPixelsPerCell
	}
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		out:       out,
		pxPerCell: pxPerCell,
		canvas:    canvas,
		trail:     make([]cell, 0, 40),
		pivotX:    width / 2,
		pivotY:    1,
		restX:     width / 2,
		restY:     height / 2,
	}
}

// BobCell returns the canvas cell the bob occupies for frame f.
func (r *LiveRenderer) BobCell(f anim.Frame) (x, y int) {
	dx, dy := f.Translation()
	return r.restX + toCells(dx, r.pxPerCell), r.restY + toCells(dy, 2*r.pxPerCell)
}

func toCells(px, pxPerCell float64) int {
	c := px / pxPerCell
	if math.IsNaN(c) {
		return 0
	}
	c = math.Max(-1e6, math.Min(1e6, c))
	return int(math.Round(c))
}

func (r *LiveRenderer) Render(f anim.Frame) {
	r.clear()
	bx, by := r.BobCell(f)

	r.trail = append(r.trail, cell{bx, by})
	if len(r.trail) > 30 {
		r.trail = r.trail[1:]
	}
	for _, pt := range r.trail {
		r.set(pt.x, pt.y, '.')
	}

	r.set(r.pivotX-2, r.pivotY-1, '=')
	r.set(r.pivotX-1, r.pivotY-1, '=')
	r.set(r.pivotX, r.pivotY-1, '=')
	r.set(r.pivotX+1, r.pivotY-1, '=')
	r.set(r.pivotX+2, r.pivotY-1, '=')

	if f.Axis == anim.Vertical {
		for y := r.pivotY; y < by; y++ {
			if (y-r.pivotY)%2 == 0 {
				r.set(bx, y, '<')
			} else {
				r.set(bx, y, '>')
			}
		}
	} else {
		r.line(r.pivotX, r.pivotY, bx, by, '|')
	}
	r.set(bx, by, 'O')

	r.render(f)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) line(x1, y1, x2, y2 int, c rune) {
	// keep Bresenham bounded when the bob is far off screen
	x2 = clamp(x2, -width, 2*width)
	y2 = clamp(y2, -height, 2*height)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		r.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (r *LiveRenderer) render(f anim.Frame) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  shm  t=%.2fs  tick=%d\n", f.Clock, f.Tick))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  x=%.3f  offset=%.1fpx  %s\n", f.Displacement, f.Offset, f.Params))

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
