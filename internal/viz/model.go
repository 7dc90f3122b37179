package viz

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/shmviz/internal/anim"
	"github.com/san-kum/shmviz/internal/shm"
	"go.uber.org/zap"
)

const (
	minChartWidth = 30
	trackCols     = 60
	trackRows     = 3
	trackRowsTall = 10
)

// TickMsg drives the animation. Each one fires the manual scheduler once.
type TickMsg time.Time

type Options struct {
	Params    shm.Params
	Anim      anim.Options
	CacheSize int
	Theme     string
}

func DefaultOptions() Options {
	return Options{
		Params:    shm.DefaultParams(),
		Anim:      anim.DefaultOptions(),
		CacheSize: shm.DefaultCacheSize,
		Theme:     ThemeClassic.Name,
	}
}

// Model is the interactive view: parameter inputs, the trajectory chart
// and the animated mass.
type Model struct {
	controls *shm.Controls
	sampler  *shm.Sampler
	sched    *anim.ManualScheduler
	driver   *anim.Driver
	bob      *BobView
	logger   *zap.Logger

	inputs    []textinput.Model
	names     []string
	focus     int
	status    string
	statusErr bool
	theme     int

	width, height int
	quitting      bool
}

func NewModel(opts Options) Model {
	if opts.Anim.Logger == nil {
		opts.Anim.Logger = zap.NewNop()
	}
	controls := shm.NewControls(opts.Params)
	sched := &anim.ManualScheduler{}
	bob := NewBobView(DefaultPixelsPerDot)
	bob.frame.Axis = opts.Anim.Axis

	names := shm.ParamNames()
	inputs := make([]textinput.Model, len(names))
	p := controls.Snapshot()
	for i, name := range names {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 32
		ti.Width = 16
		ti.Placeholder = name
		v, _ := p.Get(name)
		ti.SetValue(formatValue(v))
		inputs[i] = ti
	}
	inputs[0].Focus()

	theme := 0
	for i, t := range Themes {
		if t.Name == opts.Theme {
			theme = i
		}
	}

	return Model{
		controls: controls,
		sampler:  shm.NewSampler(opts.CacheSize),
		sched:    sched,
		driver:   anim.NewDriver(controls, bob, sched, opts.Anim),
		bob:      bob,
		logger:   opts.Anim.Logger.Named("viz"),
		inputs:   inputs,
		names:    names,
		theme:    theme,
		width:    100,
		height:   40,
	}
}

func formatValue(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func (m Model) Init() tea.Cmd {
	if err := m.driver.Start(); err != nil {
		m.logger.Warn("animation did not start", zap.Error(err))
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.driver.Interval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the animation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if !m.sched.Fire() {
			return m, nil
		}
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.driver.Stop()
		m.quitting = true
		return m, tea.Quit
	case "tab", "down", "enter":
		return m, m.setFocus((m.focus + 1) % len(m.inputs))
	case "shift+tab", "up":
		return m, m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
	case "ctrl+r":
		m.controls.Reset()
		m.syncInputs()
		m.bob.Reset()
		m.status, m.statusErr = "parameters reset", false
		return m, nil
	case "ctrl+t":
		m.theme = (m.theme + 1) % len(Themes)
		m.status, m.statusErr = "theme "+Themes[m.theme].Name, false
		return m, nil
	}

	var cmd tea.Cmd
	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if raw := m.inputs[m.focus].Value(); raw != before {
		m.apply(m.names[m.focus], raw)
	}
	return m, cmd
}

// apply pushes the edited text into the controls. A value that does not
// parse leaves the previous parameter in effect.
func (m *Model) apply(name, raw string) {
	if err := m.controls.SetText(name, raw); err != nil {
		m.status, m.statusErr = err.Error(), true
		m.logger.Debug("input rejected", zap.String("param", name), zap.String("raw", raw))
		return
	}
	m.status, m.statusErr = "", false
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

// syncInputs rewrites every input from the current parameters.
func (m *Model) syncInputs() {
	p := m.controls.Snapshot()
	for i, name := range m.names {
		v, _ := p.Get(name)
		m.inputs[i].SetValue(formatValue(v))
		m.inputs[i].CursorEnd()
	}
}

// Params returns the parameters currently in effect.
func (m Model) Params() shm.Params { return m.controls.Snapshot() }

func (m Model) Driver() *anim.Driver { return m.driver }

func (m Model) Status() (string, bool) { return m.status, m.statusErr }

// View renders the inputs, the chart and the animated mass.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	th := Themes[m.theme]
	p := m.controls.Snapshot()

	var left strings.Builder
	left.WriteString(headerStyle.Render("SIMPLE HARMONIC MOTION") + "\n")
	for i, name := range m.names {
		label := labelStyle.Render(name)
		if i == m.focus {
			label = focusStyle(th).Width(11).Render(name)
		}
		left.WriteString(label + m.inputs[i].View() + "\n")
	}
	left.WriteString("\n")
	frame, _ := m.bob.Frame()
	left.WriteString(labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.2fs", frame.Clock)) + "\n")
	left.WriteString(labelStyle.Render("x") + valueStyle.Render(fmt.Sprintf("%.3f", frame.Displacement)) + "\n")
	left.WriteString(labelStyle.Render("offset") + valueStyle.Render(fmt.Sprintf("%.1fpx", frame.Offset)) + "\n")
	left.WriteString(labelStyle.Render("period") + valueStyle.Render(fmt.Sprintf("%.3gs", shm.Period(p))) + "\n")
	if m.status != "" {
		left.WriteString("\n" + statusStyle(th, m.statusErr).Render(m.status) + "\n")
	}
	left.WriteString(helpStyle.Render("tab/↑↓ move  ctrl+r reset\nctrl+t theme  esc quit"))
	leftView := panelStyle.Render(left.String())

	chartWidth := m.width - lipgloss.Width(leftView) - 12
	if chartWidth < minChartWidth {
		chartWidth = minChartWidth
	}
	chart := PlotTrajectory(m.sampler.Sample(p), ChartOptions{
		Width:   chartWidth,
		Height:  10,
		Caption: "time (s)",
		Theme:   th,
	})
	top := lipgloss.JoinHorizontal(lipgloss.Top, leftView, " ", chart)

	rows := trackRows
	if frame.Axis == anim.Vertical {
		rows = trackRowsTall
	}
	canvas := NewCanvas(trackCols, rows)
	m.bob.Draw(canvas)
	return lipgloss.JoinVertical(lipgloss.Left, top, "", trackStyle.Render(canvas.String()))
}

// Run starts the interactive program and blocks until the user quits.
func Run(opts Options) error {
	m := NewModel(opts)
	defer m.driver.Stop()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
