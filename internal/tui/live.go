// Package tui shows a reaction run live in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"chemsim/internal/ode"
	"chemsim/internal/scenario"
	"chemsim/internal/viz"
)

const (
	fps          = 30
	historyCap   = 600
	ticksPerRun  = 300 // a full run plays back in about ten seconds
	sparkWidth   = 48
)

type TickMsg time.Time

// Model steps the scenario at playback speed and tracks per-species
// history for the sparklines.
type Model struct {
	sc       *scenario.Scenario
	state    ode.State
	t        float64
	dt       float64
	perTick  int
	running  bool
	done     bool
	showHelp bool
	history  [][]float64
}

func NewModel(sc *scenario.Scenario) Model {
	cfg := sc.Cfg.Solver
	perTick := int(cfg.Duration / cfg.Dt / ticksPerRun)
	if perTick < 1 {
		perTick = 1
	}
	return Model{
		sc:      sc,
		state:   sc.X0.Clone(),
		dt:      cfg.Dt,
		perTick: perTick,
		running: true,
		history: make([][]float64, len(sc.Network.Species)),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.done {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.done {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) reset() {
	m.state = m.sc.X0.Clone()
	m.t = 0
	m.running = true
	m.done = false
	m.history = make([][]float64, len(m.sc.Network.Species))
}

func (m *Model) advance() {
	duration := m.sc.Cfg.Solver.Duration
	for i := 0; i < m.perTick && m.t < duration; i++ {
		dt := m.dt
		if m.t+dt > duration {
			dt = duration - m.t
		}
		m.state = m.sc.Integ.Step(m.sc.System, m.state, m.t, dt)
		m.t += dt
	}
	if !m.state.IsValid() {
		m.done = true
		m.running = false
		return
	}

	conc := m.sc.Concentrations(m.state)
	for i := range m.history {
		m.history[i] = append(m.history[i], conc[i])
		if len(m.history[i]) > historyCap {
			m.history[i] = m.history[i][1:]
		}
	}

	if m.t >= duration {
		m.done = true
		m.running = false
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(viz.HeaderStyle.Render("chemsim live — " + m.sc.Cfg.Name))
	b.WriteString("\n\n")

	conc := m.sc.Concentrations(m.state)
	for i, name := range m.sc.Network.Species {
		b.WriteString(viz.LabelStyle.Render("[" + name + "]"))
		b.WriteString(viz.ValueStyle.Render(fmt.Sprintf(" %10.6f  ", conc[i])))
		b.WriteString(viz.Sparkline(m.history[i], sparkWidth))
		b.WriteString("\n")
	}

	b.WriteString(viz.LabelStyle.Render("T"))
	b.WriteString(viz.ValueStyle.Render(fmt.Sprintf(" %8.2f K", m.sc.TemperatureAt(m.state, m.t))))
	b.WriteString("\n")
	b.WriteString(viz.LabelStyle.Render("t"))
	b.WriteString(viz.ValueStyle.Render(fmt.Sprintf(" %8.3f / %g s", m.t, m.sc.Cfg.Solver.Duration)))
	b.WriteString("\n\n")

	switch {
	case m.done:
		b.WriteString(viz.StatusPaused.Render("● finished"))
	case m.running:
		b.WriteString(viz.StatusRunning.Render("● running"))
	default:
		b.WriteString(viz.StatusPaused.Render("● paused"))
	}

	if m.showHelp {
		b.WriteString(viz.HelpStyle.Render("\nspace pause/resume · r reset · q quit"))
	} else {
		b.WriteString(viz.HelpStyle.Render("\n? " + "help"))
	}
	b.WriteString("\n")
	return b.String()
}

// Run starts the live view and blocks until the user quits.
func Run(sc *scenario.Scenario) error {
	p := tea.NewProgram(NewModel(sc))
	_, err := p.Run()
	return err
}
