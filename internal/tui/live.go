package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravlab/nbody/internal/gravity"
	"github.com/gravlab/nbody/internal/sim"
	"github.com/gravlab/nbody/internal/viz"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
	frameRate    = 30
	maxTrail     = 4096
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	statsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Stepper matches sim.Stepper; redeclared here so the viewer depends
// only on what it uses.
type Stepper interface {
	Step(k gravity.Kernel, bodies []gravity.Body, g, h float64) []gravity.Body
}

// Model steps the simulation between frames and draws the bodies with
// their trails on a braille canvas.
type Model struct {
	name    string
	kernel  gravity.Kernel
	stepper Stepper
	cfg     sim.Config

	initial []gravity.Body
	bodies  []gravity.Body
	t       float64
	step    int
	total   int

	canvas *viz.OrbitCanvas
	trail  []sim.Point

	initialEnergy float64
	paused        bool
	done          bool
}

func NewModel(name string, bodies []gravity.Body, cfg sim.Config, kernel gravity.Kernel, stepper Stepper) Model {
	xmin, xmax, ymin, ymax := viewport(bodies)
	return Model{
		name:          name,
		kernel:        kernel,
		stepper:       stepper,
		cfg:           cfg,
		initial:       gravity.CloneBodies(bodies),
		bodies:        gravity.CloneBodies(bodies),
		total:         int(math.Ceil(cfg.Duration / cfg.Dt)),
		canvas:        viz.NewOrbitCanvas(canvasWidth, canvasHeight, xmin, xmax, ymin, ymax),
		initialEnergy: gravity.Energy(bodies, cfg.G),
	}
}

// viewport frames the initial configuration with generous margins so
// moderately eccentric orbits stay on screen.
func viewport(bodies []gravity.Body) (xmin, xmax, ymin, ymax float64) {
	r := 0.0
	for _, b := range bodies {
		r = math.Max(r, math.Max(math.Abs(b.X), math.Abs(b.Y)))
	}
	if r == 0 {
		r = 1
	}
	r *= 2
	return -r, r, -r, r
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.bodies = gravity.CloneBodies(m.initial)
			m.t = 0
			m.step = 0
			m.trail = m.trail[:0]
			m.done = false
		}
		return m, nil

	case tickMsg:
		if !m.paused && !m.done {
			m.advance()
		}
		return m, tick()
	}

	return m, nil
}

// advance runs SampleEvery integration steps per frame, mirroring the
// batch simulator's snapshot cadence.
func (m *Model) advance() {
	for i := 0; i < m.cfg.SampleEvery && m.t < m.cfg.Duration; i++ {
		m.bodies = m.stepper.Step(m.kernel, m.bodies, m.cfg.G, m.cfg.Dt)
		m.t += m.cfg.Dt
		m.step++
	}
	if m.t >= m.cfg.Duration {
		m.done = true
	}

	for _, b := range m.bodies {
		m.trail = append(m.trail, sim.Point{X: b.X, Y: b.Y})
	}
	if len(m.trail) > maxTrail {
		m.trail = m.trail[len(m.trail)-maxTrail:]
	}
}

func (m Model) View() string {
	m.canvas.Clear()
	for _, p := range m.trail {
		m.canvas.Mark(p.X, p.Y)
	}

	energy := gravity.Energy(m.bodies, m.cfg.G)
	drift := 0.0
	if m.initialEnergy != 0 {
		drift = math.Abs(energy-m.initialEnergy) / math.Abs(m.initialEnergy)
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("nbody live: %s", m.name)))
	sb.WriteByte('\n')
	sb.WriteString(m.canvas.Render())
	sb.WriteString(statsStyle.Render(fmt.Sprintf(
		"t: %8.4f / %.4f   step: %d/%d   E: %.6g   drift: %.3g",
		m.t, m.cfg.Duration, m.step, m.total, energy, drift)))
	if m.paused {
		sb.WriteString("  " + pausedStyle.Render("paused"))
	}
	if m.done {
		sb.WriteString("  " + pausedStyle.Render("done"))
	}
	sb.WriteByte('\n')
	if len(m.bodies) <= 4 {
		sb.WriteString(viz.FootnoteText(m.bodies))
		sb.WriteByte('\n')
	}
	sb.WriteString(helpStyle.Render("space: pause  r: reset  q: quit"))
	sb.WriteByte('\n')
	return sb.String()
}

// Run starts the live viewer and blocks until it exits.
func Run(name string, bodies []gravity.Body, cfg sim.Config, kernel gravity.Kernel, stepper Stepper) error {
	p := tea.NewProgram(NewModel(name, bodies, cfg, kernel, stepper))
	_, err := p.Run()
	return err
}
