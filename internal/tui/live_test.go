package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"chemsim/internal/config"
	"chemsim/internal/scenario"
)

func testModel(t *testing.T) Model {
	t.Helper()
	cfg := *config.GetPreset("nobr-ramp")
	cfg.Solver.Duration = 0.1
	cfg.Solver.Dt = 0.01
	sc, err := scenario.Build(&cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return NewModel(sc)
}

func TestAdvanceFinishes(t *testing.T) {
	m := testModel(t)
	for i := 0; i < 1000 && !m.done; i++ {
		m.advance()
	}
	if !m.done {
		t.Fatal("run never finished")
	}
	if m.t < 0.1-1e-9 {
		t.Errorf("stopped at t=%g", m.t)
	}
}

func TestViewShowsSpecies(t *testing.T) {
	m := testModel(t)
	m.advance()
	view := m.View()
	for _, name := range []string{"NOBr", "NO", "Br"} {
		if !strings.Contains(view, name) {
			t.Errorf("view missing %s", name)
		}
	}
	if !strings.Contains(view, "running") {
		t.Error("status missing")
	}
}

func TestPauseAndReset(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m = next.(Model)
	if m.running {
		t.Error("space did not pause")
	}

	m.advance()
	tBefore := m.t
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	if m.t != 0 || m.t == tBefore && tBefore != 0 {
		t.Errorf("reset left t=%g", m.t)
	}
	if !m.running {
		t.Error("reset should resume")
	}
}
