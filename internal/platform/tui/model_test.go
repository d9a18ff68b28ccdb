package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/storage"
)

// stubGame counts calls and draws a fixed line.
type stubGame struct {
	resets int
	steps  int
	quits  int
	state  core.GameState
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++; g.state = core.GameState{} }
func (g *stubGame) State() core.GameState    { return g.state }
func (g *stubGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "stub") }
func (g *stubGame) Quit()                    { g.quits++ }
func (g *stubGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	return core.StepResult{State: g.state}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecorder(t *testing.T) {
	store := openTestStore(t)
	rec := NewRecorder(store, "alice", nil)
	rec.Start()
	rec.Record(core.GameState{Room: "room2", Solved: 1, WrongAnswers: 2, Outcome: core.OutcomeEscaped})

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("RecentRuns() returned %d runs, expected 1", len(runs))
	}
	r := runs[0]
	if r.Player != "alice" || r.Outcome != core.OutcomeEscaped || r.Room != "room2" || r.WrongAnswers != 2 {
		t.Errorf("run = %+v", r)
	}
}

func TestRecorderWithoutStore(t *testing.T) {
	var nilRec *Recorder
	nilRec.Record(core.GameState{}) // Should not panic

	NewRecorder(nil, "bob", nil).Record(core.GameState{Outcome: core.OutcomeQuit})
}

func TestModelQuitEndsGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 1})
	m.Init()

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if !next.(Model).IsQuitting() {
		t.Error("model should be quitting")
	}
	if g.quits != 1 {
		t.Errorf("Quit() called %d times, expected 1", g.quits)
	}
}

func TestModelTicks(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 1})
	m.Init()

	next, _ := m.Update(TickMsg{Loop: m.loop})
	m = next.(Model)
	next, _ = m.Update(TickMsg{Loop: m.loop + 1})
	m = next.(Model)

	if g.steps != 1 {
		t.Errorf("steps = %d, expected ticks of another loop to be ignored", g.steps)
	}
	if !strings.Contains(m.View(), "stub") {
		t.Error("View() should render the game")
	}
}

func TestModelBackAfterGameOver(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 1})
	m.Init()

	// Back is ignored while playing
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.BackToMenu() {
		t.Fatal("back should be ignored during play")
	}

	g.state = core.GameState{GameOver: true, Outcome: core.OutcomeBound}
	next, _ = m.Update(TickMsg{Loop: m.loop})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if !m.BackToMenu() {
		t.Error("back should leave after the game is over")
	}
}

func TestModelRestart(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 1})
	m.Init()

	g.state = core.GameState{GameOver: true}
	next, _ := m.Update(TickMsg{Loop: m.loop})
	m = next.(Model)
	next, _ = m.Update(runeKey('r'))
	m = next.(Model)
	m.Update(TickMsg{Loop: m.loop})

	if g.resets != 2 {
		t.Errorf("resets = %d, expected a restart", g.resets)
	}
}
