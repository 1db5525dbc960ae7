package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/mkumar097/MonteCarloProject/internal/sim"
)

const (
	canvasWidth     = 30
	canvasHeight    = 15
	historyCapacity = 600
	maxStepsPerTick = 1 << 14
)

type TickMsg time.Time

// Live advances a chain while rendering its energy history and the particle
// positions.
type Live struct {
	chain        *sim.Chain
	boxLength    float64
	title        string
	stepsPerTick int
	running      bool
	err          error
	canvas       *Canvas
}

func NewLive(chain *sim.Chain, boxLength float64, title string) Live {
	return Live{
		chain:        chain,
		boxLength:    boxLength,
		title:        title,
		stepsPerTick: 50,
		running:      true,
		canvas:       NewCanvas(canvasWidth, canvasHeight),
	}
}

// Err returns the error that stopped the chain, if any.
func (m Live) Err() error { return m.err }

func (m Live) Chain() *sim.Chain { return m.chain }

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Live) Init() tea.Cmd { return tick() }

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			if m.stepsPerTick < maxStepsPerTick {
				m.stepsPerTick *= 2
			}
		case "-", "_":
			if m.stepsPerTick > 1 {
				m.stepsPerTick /= 2
			}
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Live) advance() {
	for i := 0; i < m.stepsPerTick && !m.chain.Done(); i++ {
		if _, err := m.chain.Step(); err != nil {
			m.err = err
			m.running = false
			return
		}
	}
}

func (m Live) history() []float64 {
	traj := m.chain.Trajectory()
	if len(traj) > historyCapacity {
		return traj[len(traj)-historyCapacity:]
	}
	return traj
}

func (m Live) draw() {
	m.canvas.Clear()
	m.canvas.Frame()
	half := m.boxLength / 2
	for _, r := range m.chain.Coords() {
		m.canvas.Plot((r[0]+half)/m.boxLength, (r[1]+half)/m.boxLength)
	}
}

func (m Live) status() string {
	switch {
	case m.err != nil:
		return StatusError.Render("ERROR: " + m.err.Error())
	case m.chain.Done():
		return StatusDone.Render("DONE")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusRunning.Render("RUNNING")
	}
}

func (m Live) View() string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	done := 1.0
	if total := m.chain.NumSteps(); total > 0 {
		done = float64(m.chain.StepIndex()) / float64(total)
	}
	s.WriteString(ProgressBar(done, 40) + fmt.Sprintf(" %d/%d\n", m.chain.StepIndex(), m.chain.NumSteps()))

	if hist := m.history(); len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(8), asciigraph.Width(50), asciigraph.Caption("E / N"))
		s.WriteString(GraphStyle.Render(chart) + "\n")
	}

	energy := m.chain.TotalEnergy()
	stats := strings.Join([]string{
		MetricLine("Step", fmt.Sprintf("%d", m.chain.StepIndex())),
		MetricLine("Energy", fmt.Sprintf("%.5f", energy)),
		MetricLine("Acceptance", fmt.Sprintf("%.3f", m.chain.AcceptanceRatio())),
		MetricLine("Max displacement", fmt.Sprintf("%.4f", m.chain.Displacement().Max)),
		MetricLine("Steps/frame", fmt.Sprintf("%d", m.stepsPerTick)),
	}, "\n")

	m.draw()
	box := lipgloss.JoinVertical(lipgloss.Left, Subtle.Render("x-y projection"), m.canvas.String())
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, GlassPanel.Render(stats), "  ", box))

	s.WriteString("\n" + KeyHint.Render("space pause  +/- speed  q quit") + "\n")
	return s.String()
}
