package purgatory

import (
	"testing"
	"time"

	"github.com/vovakirdan/purgatory/internal/config"
	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/cutscene"
	"github.com/vovakirdan/purgatory/internal/dialogue"
	"github.com/vovakirdan/purgatory/internal/registry"
	"github.com/vovakirdan/purgatory/internal/room"
	"github.com/vovakirdan/purgatory/internal/selection"
	"github.com/vovakirdan/purgatory/internal/trigger"
)

const maxTicks = 60 * 120

type memFlags map[string]bool

func (m memFlags) Flag(key string) (bool, error)    { return m[key], nil }
func (m memFlags) SetFlag(key string, v bool) error { m[key] = v; return nil }

type harness struct {
	g          *Game
	flags      memFlags
	dismissals []core.GameState
}

func newHarness(t *testing.T, flags memFlags, edit func(*config.PurgatoryConfig)) *harness {
	t.Helper()
	lib, err := room.Bundled()
	if err != nil {
		t.Fatalf("Bundled() failed: %v", err)
	}
	if flags == nil {
		flags = memFlags{}
	}
	cfg := config.DefaultPurgatoryConfig()
	if edit != nil {
		edit(&cfg)
	}

	h := &harness{flags: flags}
	env := registry.Env{
		Flags:     flags,
		OnDismiss: func(st core.GameState) { h.dismissals = append(h.dismissals, st) },
	}
	h.g = New(env, WithConfig(cfg), WithRooms(lib))
	h.g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	return h
}

// until steps the game, tapping through dialogue, until cond holds.
func (h *harness) until(t *testing.T, what string, cond func() bool) {
	t.Helper()
	for i := 0; i < maxTicks; i++ {
		if cond() {
			return
		}
		in := core.NewInputFrame()
		if h.g.dialogue.State() == dialogue.StateShowing {
			in.Set(core.ActionTap)
		}
		h.g.Step(in)
	}
	if !cond() {
		t.Fatalf("%s: not reached after %d ticks", what, maxTicks)
	}
}

func (h *harness) skipIntro(t *testing.T) {
	t.Helper()
	h.until(t, "introduction", func() bool {
		return h.g.introduced && !h.g.cutscene.IsPlaying()
	})
}

func (h *harness) quiet(t *testing.T) {
	t.Helper()
	h.until(t, "dialogue drained", func() bool { return !h.g.dialogue.IsActive() })
}

// choose picks the button labelled label.
func (h *harness) choose(t *testing.T, label string) {
	t.Helper()
	for i, b := range h.g.selection.Buttons() {
		if b.Label == label {
			in := core.NewInputFrame()
			in.Choose(i)
			h.g.Step(in)
			return
		}
	}
	t.Fatalf("no %q button in %+v", label, h.g.selection.Buttons())
}

func (h *harness) menu(t *testing.T, m selection.Menu) {
	t.Helper()
	h.until(t, m.String()+" menu", func() bool { return h.g.selection.Menu() == m })
}

// stand teleports the leader to (col, row) and runs one tick.
func (h *harness) stand(col, row int) {
	h.g.actors.Place(h.g.enri, room.Pos{Col: col, Row: row}.Vec())
	h.g.Step(core.NewInputFrame())
}

func (h *harness) countPlayed(name string) int {
	n := 0
	for _, p := range h.g.played {
		if p == name {
			n++
		}
	}
	return n
}

func TestIntroductionHandsOverControl(t *testing.T) {
	h := newHarness(t, nil, nil)
	g := h.g

	if g.canWalk() {
		t.Error("input should be disabled while the introduction plays")
	}
	if g.CoverOpacity() != 1 {
		t.Errorf("CoverOpacity() = %v, expected the scene to start dark", g.CoverOpacity())
	}

	h.skipIntro(t)

	if !g.canWalk() {
		t.Error("input should be enabled after the introduction")
	}
	if g.view.presented != 2 {
		t.Errorf("introduction showed %d lines, expected 2", g.view.presented)
	}
	if g.CoverOpacity() != 0 {
		t.Errorf("CoverOpacity() = %v, expected lights up", g.CoverOpacity())
	}
	enri, emma := g.actors.Get(g.enri), g.actors.Get(g.emma)
	if enri.Pos.X <= emma.Pos.X {
		t.Errorf("characters should have stepped apart, enri=%v emma=%v", enri.Pos, emma.Pos)
	}
}

func TestWalking(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.skipIntro(t)
	g := h.g

	start := g.actors.Get(g.enri).Pos
	in := core.NewInputFrame()
	in.Set(core.ActionUp)
	g.Step(in)
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}

	pos := g.actors.Get(g.enri).Pos
	if pos.Y >= start.Y {
		t.Errorf("leader should have walked up, start=%v now=%v", start, pos)
	}
	if g.actors.Get(g.enri).IsMoving() {
		t.Error("a single key press should only walk for one pulse")
	}
	if cellOf(g.actors.Get(g.emma).Pos).Row != cellOf(pos).Row {
		t.Error("follower should walk with the leader")
	}
}

func TestWallsStopWalking(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.skipIntro(t)
	g := h.g

	for i := 0; i < 120; i++ {
		in := core.NewInputFrame()
		in.Set(core.ActionUp)
		g.Step(in)
	}
	if row := cellOf(g.actors.Get(g.enri).Pos).Row; row != 1 {
		t.Errorf("leader row = %d, expected to stop below the wall at row 0", row)
	}
}

func TestLockedDoor(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.skipIntro(t)

	h.stand(16, 2)

	if h.g.progress.Room() != "room1" {
		t.Errorf("Room() = %q, door should be locked until the writing is solved", h.g.progress.Room())
	}
	if !h.g.dialogue.IsActive() {
		t.Error("locked door should say so")
	}
}

func TestRightAnswerOpensDoor(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.skipIntro(t)
	g := h.g

	h.stand(11, 5)
	h.menu(t, selection.MenuCharacter)
	h.choose(t, selection.Enri)
	if g.selection.Menu() != selection.MenuWord {
		t.Fatalf("Menu() = %v, expected word selection", g.selection.Menu())
	}
	h.choose(t, "Echo")

	if h.countPlayed("illusionTrap") != 0 || h.countPlayed("lastAttemptHasBeenLost") != 0 {
		t.Errorf("right answer should escalate nothing, played %v", g.played)
	}
	if !g.progress.WordGuessed() {
		t.Error("WordGuessed() should be true")
	}
	for _, n := range g.triggers {
		if !n.Solved() {
			t.Errorf("trigger %s should be solved", n.Key())
		}
	}
	if !h.flags["puzzle.room1.blood_writing.11.6"] {
		t.Errorf("solve should be saved, flags = %v", h.flags)
	}

	h.quiet(t)
	h.stand(16, 2)

	if g.progress.Room() != "room2" {
		t.Fatalf("Room() = %q, expected room2", g.progress.Room())
	}
	if g.progress.RoomNumber() != 2 {
		t.Errorf("RoomNumber() = %d, expected 2", g.progress.RoomNumber())
	}
	if h.countPlayed("introduction") != 1 || h.countPlayed("secondRoom") != 1 {
		t.Errorf("played %v", g.played)
	}
}

func TestWrongAnswerEscalation(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.skipIntro(t)
	g := h.g

	h.stand(11, 5)
	h.menu(t, selection.MenuCharacter)
	h.choose(t, selection.Emma)
	h.choose(t, "Wind")

	if g.progress.WrongAnswers("blood_writing") != 1 {
		t.Errorf("WrongAnswers = %d, expected 1", g.progress.WrongAnswers("blood_writing"))
	}
	if g.cutscene.Name() != "illusionTrap" {
		t.Fatalf("cutscene = %q, expected illusionTrap", g.cutscene.Name())
	}

	// The trap closes in and the riddle comes back.
	h.menu(t, selection.MenuWord)
	if g.trap.Len() == 0 {
		t.Error("walls should have started closing in")
	}
	if g.canWalk() {
		t.Error("characters should be held inside the trap")
	}

	h.choose(t, "Ghost")
	if g.cutscene.Name() != "lastAttemptHasBeenLost" {
		t.Fatalf("cutscene = %q, expected lastAttemptHasBeenLost", g.cutscene.Name())
	}

	h.until(t, "extraction", func() bool { return g.gameOver })

	if g.outcome != core.OutcomeExtracted {
		t.Errorf("outcome = %q, expected extracted", g.outcome)
	}
	if h.countPlayed("illusionTrap") != 1 || h.countPlayed("lastAttemptHasBeenLost") != 1 {
		t.Errorf("each escalation should play once, played %v", g.played)
	}
	if len(h.dismissals) != 1 {
		t.Fatalf("OnDismiss called %d times, expected 1", len(h.dismissals))
	}
	if st := h.dismissals[0]; st.WrongAnswers != 2 || st.Outcome != core.OutcomeExtracted {
		t.Errorf("dismiss state = %+v", st)
	}
	if h.flags["puzzle.room1.blood_writing.11.6"] {
		t.Error("a failed riddle must not be saved as solved")
	}
}

func TestRightAnswerInsideTrapReleases(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.skipIntro(t)
	g := h.g

	h.stand(11, 5)
	h.menu(t, selection.MenuCharacter)
	h.choose(t, selection.Enri)
	h.choose(t, "Shadow")
	h.menu(t, selection.MenuWord)

	walls := g.trap.Len()
	if walls == 0 {
		t.Fatal("expected walls before answering")
	}
	h.choose(t, "Echo")
	h.quiet(t)
	h.until(t, "walls released", func() bool { return g.trap.Len() == 0 })

	if !g.canWalk() {
		t.Error("input should be back after release")
	}
	if g.gameOver {
		t.Error("right answer inside the trap should not end the game")
	}
	if h.countPlayed("lastAttemptHasBeenLost") != 0 {
		t.Errorf("played %v", g.played)
	}
}

func TestTriggerWaitsForCutscene(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.skipIntro(t)
	g := h.g

	g.play("aside", []cutscene.Action{
		cutscene.Wait(time.Second),
		cutscene.ShowDialogue("Hold on.", dialogue.PortraitEmma).WithDelay(2 * time.Second),
	})
	h.stand(11, 5)

	var node *trigger.Node
	for _, n := range g.triggers {
		if n.Zone().Contains(11, 5) {
			node = n
		}
	}
	if node == nil {
		t.Fatal("no trigger around (11, 5)")
	}
	if node.State() != trigger.Armed {
		t.Errorf("State() = %v during a cutscene, expected armed", node.State())
	}

	h.until(t, "cutscene end", func() bool { return !g.cutscene.IsPlaying() })
	h.menu(t, selection.MenuCharacter)

	if node.State() != trigger.Triggered || !node.DialogueTriggered() {
		t.Errorf("State() = %v, expected the trigger to fire after the cutscene", node.State())
	}
}

func TestSavedProgressUnlocksDoor(t *testing.T) {
	flags := memFlags{"puzzle.room1.blood_writing.1.6": true}
	h := newHarness(t, flags, nil)
	h.skipIntro(t)

	if !h.g.requirementMet() {
		t.Fatal("saved solve should satisfy the room")
	}
	h.stand(16, 2)
	if h.g.progress.Room() != "room2" {
		t.Errorf("Room() = %q, expected room2", h.g.progress.Room())
	}
}

func TestQuitDismissesOnce(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.g.Quit()
	h.g.Quit()

	if !h.g.gameOver || h.g.outcome != core.OutcomeQuit {
		t.Errorf("State() = %+v, expected quit", h.g.State())
	}
	if len(h.dismissals) != 1 {
		t.Errorf("OnDismiss called %d times, expected 1", len(h.dismissals))
	}

	before := h.g.tickCount
	h.g.Step(core.NewInputFrame())
	if h.g.tickCount != before {
		t.Error("Step should do nothing after game over")
	}
}

func TestPause(t *testing.T) {
	h := newHarness(t, nil, nil)
	g := h.g

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	g.Step(in)
	now := g.Elapsed()
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Elapsed() != now {
		t.Error("clock should not advance while paused")
	}
	if !g.State().Paused {
		t.Error("State().Paused should be true")
	}
}

func TestResetStartsOver(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.skipIntro(t)
	h.g.Quit()

	h.g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	st := h.g.State()
	if st.GameOver || st.Room != "room1" || st.WrongAnswers != 0 {
		t.Errorf("State() after Reset = %+v", st)
	}
	if len(h.g.played) != 1 || h.g.played[0] != "introduction" {
		t.Errorf("played %v, expected a fresh introduction", h.g.played)
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatal("game should register itself")
	}
	g, err := registry.Create(ID, registry.Env{})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Purgatory" {
		t.Errorf("Title() = %q", g.Title())
	}
}
