package viz

import (
	"errors"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/shmviz/internal/anim"
	"github.com/san-kum/shmviz/internal/shm"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return mm, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func clearInput(t *testing.T, m Model) Model {
	t.Helper()
	for len(m.inputs[m.focus].Value()) > 0 {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	return m
}

func TestModelEditsAmplitude(t *testing.T) {
	m := NewModel(DefaultOptions())
	m = clearInput(t, m)
	m = typeText(t, m, "2.5")

	if got := m.Params().Amplitude; got != 2.5 {
		t.Fatalf("expected amplitude 2.5, got %v", got)
	}
	if status, isErr := m.Status(); isErr {
		t.Fatalf("unexpected error status %q", status)
	}
}

func TestModelRejectsMalformedInput(t *testing.T) {
	m := NewModel(DefaultOptions())
	m = typeText(t, m, "abc")

	if m.inputs[0].Value() != "1abc" {
		t.Fatalf("expected raw text kept in the input, got %q", m.inputs[0].Value())
	}
	if got := m.Params().Amplitude; got != 1 {
		t.Fatalf("expected amplitude to stay 1, got %v", got)
	}
	status, isErr := m.Status()
	if !isErr || !strings.Contains(status, "amplitude") {
		t.Fatalf("expected error status naming the parameter, got %q", status)
	}

	// an empty field is also rejected
	m = clearInput(t, m)
	if got := m.Params().Amplitude; got != 1 {
		t.Fatalf("expected amplitude to stay 1 after clearing, got %v", got)
	}
}

func TestModelTabMovesFocus(t *testing.T) {
	m := NewModel(DefaultOptions())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != 1 || !m.inputs[1].Focused() || m.inputs[0].Focused() {
		t.Fatalf("expected focus on omega, got %d", m.focus)
	}

	m = clearInput(t, m)
	m = typeText(t, m, "3")
	p := m.Params()
	if p.AngularFrequency != 3 || p.Amplitude != 1 {
		t.Fatalf("unexpected params %s", p)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != 2 {
		t.Fatalf("expected focus to wrap to phase, got %d", m.focus)
	}
}

func TestModelReset(t *testing.T) {
	m := NewModel(DefaultOptions())
	m = clearInput(t, m)
	m = typeText(t, m, "7")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})

	if p := m.Params(); p != shm.DefaultParams() {
		t.Fatalf("expected defaults after reset, got %s", p)
	}
	if m.inputs[0].Value() != "1" {
		t.Fatalf("expected input to show 1, got %q", m.inputs[0].Value())
	}
}

func TestModelTicksDriveAnimation(t *testing.T) {
	m := NewModel(DefaultOptions())
	if cmd := m.Init(); cmd == nil {
		t.Fatal("expected init command")
	}
	if !m.Driver().Running() {
		t.Fatal("expected driver running after Init")
	}

	var cmd tea.Cmd
	for i := 0; i < 13; i++ {
		m, cmd = update(t, m, TickMsg{})
		if cmd == nil {
			t.Fatalf("expected next tick scheduled at %d", i)
		}
	}
	frame, n := m.bob.Frame()
	if n != 13 || math.Abs(frame.Clock-0.26) > 1e-9 {
		t.Fatalf("unexpected frame %+v after %d renders", frame, n)
	}
	want := 100 * math.Sin(2*math.Pi*frame.Clock)
	if math.Abs(frame.Offset-want) > 1e-9 {
		t.Fatalf("expected offset %v, got %v", want, frame.Offset)
	}
}

func TestModelQuitStopsDriver(t *testing.T) {
	m := NewModel(DefaultOptions())
	m.Init()
	m, _ = update(t, m, TickMsg{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg, got %T", cmd())
	}
	if m.Driver().Running() {
		t.Fatal("expected driver stopped")
	}

	// a tick already queued when quitting is dropped
	m, cmd = update(t, m, TickMsg{})
	if cmd != nil {
		t.Fatal("expected no further ticks")
	}
	if _, n := m.bob.Frame(); n != 1 {
		t.Fatalf("expected no frame after stop, got %d", n)
	}
	if err := m.Driver().Start(); !errors.Is(err, shm.ErrDriverStopped) {
		t.Fatalf("expected ErrDriverStopped, got %v", err)
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(DefaultOptions())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	out := m.View()
	for _, want := range []string{"SIMPLE HARMONIC MOTION", "amplitude", "omega", "phase", "position", "velocity", "acceleration"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelViewNonFiniteParams(t *testing.T) {
	opts := DefaultOptions()
	opts.Params = shm.Params{Amplitude: math.NaN(), AngularFrequency: 1, Phase: 0}
	m := NewModel(opts)
	m.Init()
	m, _ = update(t, m, TickMsg{})
	if out := m.View(); !strings.Contains(out, "no finite samples") {
		t.Fatalf("expected notice for NaN amplitude, got:\n%s", out)
	}
}

func TestModelVerticalAxis(t *testing.T) {
	opts := DefaultOptions()
	opts.Anim.Axis = anim.Vertical
	m := NewModel(opts)
	m.Init()
	m, _ = update(t, m, TickMsg{})
	frame, _ := m.bob.Frame()
	if frame.Axis != anim.Vertical {
		t.Fatalf("expected vertical frames, got %v", frame.Axis)
	}
	if lines := strings.Count(m.View(), "\n"); lines < trackRowsTall {
		t.Fatalf("expected tall track, got %d lines", lines)
	}
}
