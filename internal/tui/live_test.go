package tui

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/shmviz/internal/anim"
	"github.com/san-kum/shmviz/internal/shm"
)

func bobPosition(t *testing.T, out string) (col, row int) {
	t.Helper()
	lines := strings.Split(out, "\n")
	// header line, separator, then canvas rows prefixed by two spaces
	for i, line := range lines[2 : 2+height] {
		if idx := strings.IndexRune(line, 'O'); idx >= 0 {
			return len([]rune(line[:idx])) - 2, i
		}
	}
	t.Fatal("bob not drawn")
	return 0, 0
}

func TestLiveRenderer_HorizontalOffset(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 10)

	r.Render(anim.Frame{Offset: 0, Axis: anim.Horizontal})
	col0, row0 := bobPosition(t, buf.String())

	buf.Reset()
	r.Render(anim.Frame{Offset: 100, Axis: anim.Horizontal})
	col1, row1 := bobPosition(t, buf.String())

	if col1-col0 != 10 {
		t.Errorf("expected bob to move 10 columns, moved %d", col1-col0)
	}
	if row1 != row0 {
		t.Errorf("horizontal motion changed row: %d -> %d", row0, row1)
	}
}

func TestLiveRenderer_VerticalOffset(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 10)

	r.Render(anim.Frame{Offset: 0, Axis: anim.Vertical})
	col0, row0 := bobPosition(t, buf.String())

	buf.Reset()
	r.Render(anim.Frame{Offset: -100, Axis: anim.Vertical})
	col1, row1 := bobPosition(t, buf.String())

	if row0-row1 != 5 {
		t.Errorf("expected bob to rise 5 rows, moved %d", row0-row1)
	}
	if col1 != col0 {
		t.Errorf("vertical motion changed column: %d -> %d", col0, col1)
	}
}

func TestLiveRenderer_ExtremeOffsetsDoNotPanic(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 10)
	for _, off := range []float64{1e12, -1e12, math.Inf(1), math.NaN()} {
		r.Render(anim.Frame{Offset: off, Axis: anim.Horizontal})
		r.Render(anim.Frame{Offset: off, Axis: anim.Vertical})
	}
}

func TestLiveRenderer_DrivenByDriver(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 10)
	sched := &anim.ManualScheduler{}
	d := anim.NewDriver(shm.NewControls(shm.DefaultParams()), r, sched, anim.DefaultOptions())
	if err := d.Start(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 13; i++ {
		sched.Fire()
	}
	d.Stop()

	out := buf.String()
	if !strings.Contains(out, "tick=13") {
		t.Errorf("expected last frame header, got %q", out[strings.LastIndex(out, clearScreen):])
	}
	if !strings.Contains(out, "t=0.26s") {
		t.Error("expected clock 0.26 in header")
	}
}

func TestLiveRenderer_StartStopCursor(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 0)
	r.Start()
	r.Stop()
	if buf.String() != hideCursor+showCursor {
		t.Errorf("unexpected cursor sequences %q", buf.String())
	}
}
