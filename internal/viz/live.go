package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/geodyn/internal/config"
	"github.com/san-kum/geodyn/internal/geodesic"
	"github.com/san-kum/geodyn/internal/geometry"
	"github.com/san-kum/geodyn/internal/tensor"
)

const (
	canvasWidth     = 60
	canvasHeight    = 22
	historyCapacity = 400
	pulsePeriod     = 4.0
	pulseAmplitude  = 0.5
)

type TickMsg time.Time

// Model holds the manifold, the test particle, and the UI buffers.
type Model struct {
	cfg      *config.Config
	manifold *geometry.Manifold
	solver   *geodesic.Solver

	point    geometry.GeodesicPoint
	velocity tensor.Vec4
	lambda   float64
	fps      int

	canvas        *Canvas
	trail         []struct{ x, y int }
	scalarHistory []float64
	singularities int
	running       bool
	stepErr       error
}

// NewModel builds the live view from a scenario configuration.
func NewModel(cfg *config.Config, fps int) (Model, error) {
	manifold := geometry.NewManifold()
	manifold.SetSingularityThreshold(cfg.SingularityThreshold)
	manifold.UpdateMetric(cfg.Density, cfg.FlowVectors())

	solver, err := geodesic.New(manifold, cfg.StepSize)
	if err != nil {
		return Model{}, err
	}

	return Model{
		cfg:           cfg,
		manifold:      manifold,
		solver:        solver,
		point:         cfg.StartPoint(),
		velocity:      tensor.Vec4(cfg.Velocity),
		fps:           fps,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		trail:         make([]struct{ x, y int }, 0, 200),
		scalarHistory: make([]float64, 0, historyCapacity),
		running:       true,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the particle.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step pulses the density, refreshes the metric, and advances the particle
// along its geodesic by one step of the affine parameter.
func (m *Model) step() {
	phase := 1 + pulseAmplitude*math.Sin(2*math.Pi*m.lambda/pulsePeriod)
	density := m.cfg.Density
	for i := range density {
		density[i] *= phase
	}
	m.manifold.UpdateMetric(density, m.cfg.FlowVectors())

	point, velocity, err := m.solver.Step(m.point, m.velocity, m.cfg.StepSize)
	if err != nil {
		m.stepErr = err
		m.running = false
		return
	}
	m.point, m.velocity = point, velocity
	m.lambda += m.cfg.StepSize

	scalar, err := m.manifold.RicciScalar()
	if err != nil {
		m.stepErr = err
		m.running = false
		return
	}
	m.scalarHistory = append(m.scalarHistory, scalar)
	if len(m.scalarHistory) > historyCapacity {
		m.scalarHistory = m.scalarHistory[1:]
	}

	records, err := m.manifold.DetectSingularities()
	if err == nil {
		m.singularities = len(records)
	}
}

// reset restores the initial particle and the unperturbed metric.
func (m *Model) reset() {
	m.lambda = 0
	m.point = m.cfg.StartPoint()
	m.velocity = tensor.Vec4(m.cfg.Velocity)
	m.trail = m.trail[:0]
	m.scalarHistory = m.scalarHistory[:0]
	m.singularities = 0
	m.stepErr = nil
	m.manifold.UpdateMetric(m.cfg.Density, m.cfg.FlowVectors())
	m.running = true
}

// draw plots the particle in the x-y plane with a fading trail.
func (m *Model) draw() {
	m.canvas.Clear()

	cw, ch := canvasWidth*2, canvasHeight*4
	cx, cy := cw/2, ch/2
	scale := float64(ch) / 6.0
	px := cx + int(m.point.Spatial[0]*scale)
	py := cy - int(m.point.Spatial[1]*scale)

	m.trail = append(m.trail, struct{ x, y int }{px, py})
	if len(m.trail) > 200 {
		m.trail = m.trail[1:]
	}
	for _, pt := range m.trail {
		m.canvas.Set(pt.x, pt.y)
	}

	m.canvas.DrawLine(0, cy, cw-1, cy)
	m.canvas.DrawLine(cx, 0, cx, ch-1)

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			m.canvas.Set(px+dx, py+dy)
		}
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("SPACETIME LIVE") + "\n")

	status := "RUNNING"
	if m.stepErr != nil {
		status = "ERROR: " + m.stepErr.Error()
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.scalarHistory) > 1 {
		chart := asciigraph.Plot(m.scalarHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Ricci scalar"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	scalar := 0.0
	if len(m.scalarHistory) > 0 {
		scalar = m.scalarHistory[len(m.scalarHistory)-1]
	}
	s.WriteString(labelStyle.Render("Lambda") + valueStyle.Render(fmt.Sprintf("%.3f", m.lambda)) + "\n")
	s.WriteString(labelStyle.Render("t") + valueStyle.Render(fmt.Sprintf("%.4f", m.point.T)) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("(%.3f, %.3f, %.3f)",
		m.point.Spatial[0], m.point.Spatial[1], m.point.Spatial[2])) + "\n")
	s.WriteString(labelStyle.Render("R") + valueStyle.Render(fmt.Sprintf("%.3e", scalar)) + "\n")

	singLine := labelStyle.Render("Singularities")
	if m.singularities > 0 {
		singLine += alertStyle.Render(fmt.Sprintf("%d", m.singularities))
	} else {
		singLine += valueStyle.Render("0")
	}
	s.WriteString(singLine + "\n")

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run starts the live view and blocks until the user quits.
func Run(cfg *config.Config, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	model, err := NewModel(cfg, fps)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model)
	_, err = p.Run()
	return err
}
