package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/shmviz/internal/shm"
)

func TestPlotTrajectory(t *testing.T) {
	tests := []struct {
		name   string
		params shm.Params
		want   string
	}{
		{"default", shm.DefaultParams(), "position"},
		{"zero amplitude", shm.Params{Amplitude: 0, AngularFrequency: 1}, "acceleration"},
		{"still", shm.Params{Amplitude: 1, AngularFrequency: 0, Phase: math.Pi / 2}, "velocity"},
		{"nan", shm.Params{Amplitude: math.NaN(), AngularFrequency: 1}, "no finite samples"},
		{"infinite amplitude", shm.Params{Amplitude: math.Inf(1), AngularFrequency: 1}, "nothing to plot"},
		{"overflowing range", shm.Params{Amplitude: 1.5e308, AngularFrequency: 1}, "out of chart range"},
		{"tiny range", shm.Params{Amplitude: 1e-320, AngularFrequency: 1}, "out of chart range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := PlotTrajectory(shm.Sample(tt.params), DefaultChartOptions())
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected %q in:\n%s", tt.want, out)
			}
		})
	}
}

func TestFiniteSeries(t *testing.T) {
	in := [][]float64{{1, math.Inf(1), -2}, {math.NaN(), math.Inf(-1)}}
	out, lo, hi, ok := finiteSeries(in)
	if !ok || lo != -2 || hi != 1 {
		t.Fatalf("unexpected range [%v, %v] ok=%v", lo, hi, ok)
	}
	if !math.IsNaN(out[0][1]) || !math.IsNaN(out[1][1]) {
		t.Fatalf("expected infinities replaced by NaN, got %v", out)
	}
	if !math.IsInf(in[0][1], 1) {
		t.Fatal("input modified")
	}
}

func TestBobViewMassDot(t *testing.T) {
	b := NewBobView(5)
	tests := []struct {
		offset float64
		want   int
	}{
		{0, 60},
		{100, 80},
		{-100, 40},
		{math.NaN(), 60},
		{math.Inf(1), 60 + 1e6},
	}
	for _, tt := range tests {
		if got := b.MassDot(60, tt.offset); got != tt.want {
			t.Errorf("MassDot(%v) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestCanvasDrawLineClamps(t *testing.T) {
	c := NewCanvas(10, 2)
	c.DrawLine(0, 0, 1<<40, 3)
	c.FillRect(-5, -5, 2)
	if strings.Count(c.String(), "\n") != 1 {
		t.Fatalf("expected 2 rows, got %q", c.String())
	}
	if c.Grid[0][0] == brailleBlank {
		t.Fatal("expected first cell lit")
	}
}
