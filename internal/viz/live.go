package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rcsaid/internal/deltav"
	"github.com/san-kum/rcsaid/internal/metrics"
	"github.com/san-kum/rcsaid/internal/sim"
	"github.com/san-kum/rcsaid/internal/vessel"
)

const (
	frameRate       = 30
	historyCapacity = 300
	planWidth       = 28
	planHeight      = 12
)

type TickMsg time.Time

// Model is the live build-aid readout. It steps the simulator itself, one
// frame's worth of ticks per TickMsg, and shows what the estimator published.
type Model struct {
	sim       *sim.Simulator
	thrusters []*vessel.Thruster
	title     string

	x, x0    sim.State
	t, dt    float64
	duration float64
	step     int
	last     sim.Sample
	err      error

	running bool
	theme   int
	styles  styles
	canvas  *Canvas

	dvHistory    []float64
	omegaHistory []float64
}

func NewModel(s *sim.Simulator, thrusters []*vessel.Thruster, x0 sim.State, cfg sim.Config, title string) Model {
	s.Reset()
	return Model{
		sim:          s,
		thrusters:    thrusters,
		title:        title,
		x:            x0.Clone(),
		x0:           x0.Clone(),
		dt:           cfg.Dt,
		duration:     cfg.Duration,
		running:      true,
		styles:       newStyles(Themes[0]),
		canvas:       NewCanvas(planWidth, planHeight),
		dvHistory:    make([]float64, 0, historyCapacity),
		omegaHistory: make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
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
			m.running = !m.running
		case "e":
			est := m.sim.Estimator()
			est.SetEnabled(!est.Enabled())
		case "m":
			est := m.sim.Estimator()
			modes := deltav.Modes()
			est.SetMode(modes[(int(est.Mode())+1)%len(modes)])
		case "c":
			m.clearAverage()
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = newStyles(Themes[m.theme])
		case "n":
			if !m.running {
				m.advance(1)
			}
		}
	case TickMsg:
		if m.running {
			m.advance(m.ticksPerFrame())
		}
		return m, tick()
	}
	return m, nil
}

// clearAverage drops the drag-coefficient window. The shown reading drops to
// zero at once, even while paused.
func (m *Model) clearAverage() {
	if !m.sim.ResetMetric("avg_cd") {
		return
	}
	readings := make(map[string]float64, len(m.last.Readings))
	for k, v := range m.last.Readings {
		readings[k] = v
	}
	readings["avg_cd"] = 0
	m.last.Readings = readings
}

func (m *Model) ticksPerFrame() int {
	n := int(math.Round(1.0 / (frameRate * m.dt)))
	if n < 1 {
		return 1
	}
	return n
}

// advance runs up to n simulator ticks, stopping at the end of the scenario
// or on an invalid state.
func (m *Model) advance(n int) {
	for i := 0; i < n; i++ {
		if m.err != nil || m.Done() {
			m.running = false
			return
		}

		next, sample := m.sim.Tick(m.step, m.x, m.t, m.dt)
		m.last = sample
		m.record(sample)

		if !next.IsValid() {
			m.err = sim.SimError{Step: m.step, Time: m.t, Message: "invalid state (NaN/Inf)", Err: sim.ErrInvalidState}
			return
		}
		m.x = next
		m.t += m.dt
		m.step++
	}
}

func (m *Model) record(s sim.Sample) {
	m.dvHistory = appendBounded(m.dvHistory, s.Estimate.DeltaV)
	m.omegaHistory = appendBounded(m.omegaHistory, s.AngularVelocity.Len())
}

func appendBounded(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m Model) Done() bool    { return m.duration > 0 && m.t >= m.duration }
func (m Model) Time() float64 { return m.t }
func (m Model) Err() error    { return m.err }

func (m Model) View() string {
	st := m.styles
	est := m.sim.Estimator().Latest()

	var s strings.Builder
	s.WriteString(st.title.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}

	row("Mode", est.Mode.String())
	row("Δv", fmt.Sprintf("%.2f m/s", est.DeltaV))
	row("Burn time", fmt.Sprintf("%.1f s", est.BurnTime))
	row("Isp", fmt.Sprintf("%.1f s", est.Isp))
	row("Propellant", fmt.Sprintf("%.3f t", est.ResourceMass))
	row("Thrust", fmt.Sprintf("%.3f kN", est.Thrust))
	switch {
	case !est.Sane:
		s.WriteString(st.warning.Render("! resource cannot be pooled, estimate unreliable") + "\n")
	case est.Degenerate:
		s.WriteString(st.warning.Render("! propellant outweighs dry mass") + "\n")
	default:
		s.WriteString(st.good.Render("estimate OK") + "\n")
	}

	s.WriteString("\n")
	r := m.last.Readings
	omega := m.last.AngularVelocity.Len()
	w := m.last.AngularVelocity
	row("ω", fmt.Sprintf("(%.3f, %.3f, %.3f)", w[0], w[1], w[2]))
	row("Ang. vel.", fmt.Sprintf("%.3f rad/s  %.1f°/s", omega, metrics.Degrees(omega)))
	row("Ang. mom.", fmt.Sprintf("%.3f  (%.3f, %.3f, %.3f)", r["angmo"], r["angmo_x"], r["angmo_y"], r["angmo_z"]))
	row("MOI", fmt.Sprintf("%.3f %.3f %.3f", r["moi_x"], r["moi_y"], r["moi_z"]))
	row("Ang. acc.", fmt.Sprintf("%.3f rad/s²", r["acc"]))
	row("Peak acc.", fmt.Sprintf("%.3f rad/s²  %.1f°/s²", r["peak_acc"], metrics.Degrees(r["peak_acc"])))
	row("Avg Cd", fmt.Sprintf("%.4f", r["avg_cd"]))
	row("Time", fmt.Sprintf("%.2f / %.0f s", m.t, m.duration))

	if len(m.dvHistory) > 1 {
		chart := asciigraph.Plot(m.dvHistory, asciigraph.Height(4), asciigraph.Width(36), asciigraph.Caption("Δv (m/s)"))
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}
	if len(m.omegaHistory) > 1 {
		chart := asciigraph.Plot(m.omegaHistory, asciigraph.Height(4), asciigraph.Width(36), asciigraph.Caption("|ω| (rad/s)"))
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}

	s.WriteString(st.help.Render("SP:Pause N:Step E:Estimator M:Mode C:Clear avg T:Theme Q:Quit"))

	m.drawPlan()
	plan := st.plan.Render(m.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, plan, st.panel.Render(s.String()))
}

func (m Model) status() string {
	st := m.styles
	switch {
	case m.err != nil:
		return st.warning.Render(m.err.Error())
	case m.Done():
		return st.value.Render("COMPLETE")
	case !m.sim.Estimator().Enabled():
		return st.warning.Render("ESTIMATOR OFF")
	case !m.running:
		return st.value.Render("PAUSED")
	default:
		return st.good.Render("RUNNING")
	}
}

// drawPlan is a top-down view of the blocks with every firing nozzle drawn
// along its exhaust, longer the harder it fires.
func (m Model) drawPlan() {
	c := m.canvas
	c.Clear()

	cw, ch := c.Width*2, c.Height*4
	cx, cy := cw/2, ch/2

	reach := 0.0
	for _, th := range m.thrusters {
		reach = math.Max(reach, math.Hypot(th.Position[0], th.Position[1]))
	}
	scale := 1.0
	if reach > 0 {
		scale = float64(min(cw, ch)/2-8) / reach
	}

	c.Set(cx, cy)
	for _, th := range m.thrusters {
		px := cx + int(math.Round(th.Position[0]*scale))
		py := cy - int(math.Round(th.Position[1]*scale))
		c.Blob(px, py, 1)

		for _, n := range th.Nozzles {
			if n.Throttle <= 0 || th.Disabled {
				continue
			}
			flat := vessel.Unit(n.Direction)
			lx, ly := flat[0], flat[1]
			if math.Hypot(lx, ly) < 0.5 {
				c.Ring(px, py, 3)
				continue
			}
			length := 2 + 6*n.Throttle
			c.DrawLine(px, py, px+int(math.Round(lx*length)), py-int(math.Round(ly*length)))
		}
	}
}
