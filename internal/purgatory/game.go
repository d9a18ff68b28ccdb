// Package purgatory implements the adventure game: two companions walking
// through tile rooms, reading blood writings and bargaining their way out.
//
// Everything runs inside Step. Timed behavior is scheduled on a per-game
// clock which Step advances once per tick, after input, movement and contact
// detection.
package purgatory

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/purgatory/internal/actor"
	"github.com/vovakirdan/purgatory/internal/clock"
	"github.com/vovakirdan/purgatory/internal/config"
	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/cutscene"
	"github.com/vovakirdan/purgatory/internal/dialogue"
	"github.com/vovakirdan/purgatory/internal/logging"
	"github.com/vovakirdan/purgatory/internal/registry"
	"github.com/vovakirdan/purgatory/internal/room"
	"github.com/vovakirdan/purgatory/internal/selection"
	"github.com/vovakirdan/purgatory/internal/session"
	"github.com/vovakirdan/purgatory/internal/trigger"
)

// ID is the registry id of the game.
const ID = "purgatory"

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Option customizes a Game.
type Option func(*Game)

// WithConfig uses cfg instead of loading the configuration on Reset.
func WithConfig(cfg config.PurgatoryConfig) Option {
	return func(g *Game) {
		cfg.Normalize()
		g.fixedCfg = &cfg
	}
}

// WithRooms uses lib instead of loading room layouts on Reset.
func WithRooms(lib *room.Library) Option {
	return func(g *Game) {
		g.fixedRooms = lib
	}
}

// Game implements the Purgatory game logic.
type Game struct {
	env        registry.Env
	log        *log.Logger
	fixedCfg   *config.PurgatoryConfig
	fixedRooms *room.Library

	cfg     config.PurgatoryConfig
	runtime core.RuntimeConfig
	rooms   *room.Library
	rng     *rand.Rand

	clock     *clock.Clock
	dialogue  *dialogue.Manager
	cutscene  *cutscene.Manager
	selection *selection.Manager
	view      *lineView
	session   *session.State
	progress  *room.Progress
	trap      *room.Trap

	actors     *actor.Registry
	enri, emma actor.Handle

	layout        room.Layout
	triggers      []*trigger.Node
	doors         []*door
	contacts      map[contactKey]bool
	bumps         []contact
	lastTriggered *trigger.Node
	roomGen       int // bumped on every room change

	carried    []trigger.PlaceableObject
	placed     []trigger.ObjectKind
	introduced bool
	chooser    string
	played     []string // cutscene names in play order

	inputEnabled bool
	walkLeft     time.Duration
	cover        coverFade

	tickCount int
	gameOver  bool
	outcome   core.Outcome
	paused    bool
	dismissed bool
}

// New creates a new game instance.
func New(env registry.Env, opts ...Option) *Game {
	g := &Game{
		env: env,
		log: logging.OrDiscard(env.Logger).WithPrefix(ID),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Purgatory"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime

	if g.fixedCfg != nil {
		g.cfg = *g.fixedCfg
	} else {
		cfg, err := config.LoadPurgatory(configPath)
		if err != nil {
			g.log.Warn("could not load config, using defaults", "error", err)
		}
		g.cfg = cfg
	}

	if g.fixedRooms != nil {
		g.rooms = g.fixedRooms
	} else {
		g.rooms = room.Load(g.cfg.Rooms.Path, g.log)
	}

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.clock = clock.New()

	g.view = newLineView()
	g.dialogue = dialogue.New(g.clock, g.log)
	g.dialogue.SetFades(g.cfg.Timing.FadeIn, g.cfg.Timing.FadeOut)
	g.dialogue.SetView(g.view)
	g.cutscene = cutscene.New(g.clock, g.dialogue, g, g.log)
	g.dialogue.SetCutscene(g.cutscene)
	g.selection = selection.New(g.rng, g.log)

	g.session = session.New(g.env.Flags, g.env.Player, g.log)
	g.session.Load(g.rooms.PuzzleKeys())
	g.progress = room.NewProgress(room.Thresholds{
		TrapAt:    g.cfg.Puzzle.TrapAt,
		ExtractAt: g.cfg.Puzzle.ExtractAt,
	})
	g.trap = room.NewTrap(g.clock, g.progress.WordGuessed, g.cfg.Trap.Multiplier, g.cfg.Trap.Fade, g.log)

	g.carried = nil
	g.placed = nil
	g.introduced = false
	g.chooser = ""
	g.played = nil
	g.tickCount = 0
	g.gameOver = false
	g.outcome = core.OutcomeNone
	g.paused = false
	g.dismissed = false

	start := g.cfg.Rooms.Start
	if start == "" {
		start = g.rooms.First()
	}
	g.enterRoom(start)
}

// tickDuration returns the simulated time covered by one Step.
func (g *Game) tickDuration() time.Duration {
	return time.Second / time.Duration(g.runtime.TickRate)
}

// Step advances the game by one tick.
// Order: input, actor movement, contact detection, then timers.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	dt := g.tickDuration()

	g.handleInput(in, dt)
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.actors.Update(dt, g.blocked)
	g.detectContacts()
	g.clock.Advance(dt)

	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame, dt time.Duration) {
	if in.Has(core.ActionTap) && g.dialogue.IsActive() {
		g.dialogue.HandleTap()
	}
	if in.HasChoice() && g.selection.Visible() {
		g.selection.Choose(in.Choice)
	}

	if dir := direction(in); dir != actor.DirNone && g.canWalk() {
		g.actors.StartMoving(g.enri, dir)
		g.walkLeft = g.cfg.Timing.WalkPulse
		return
	}
	if g.walkLeft > 0 {
		g.walkLeft -= dt
		if g.walkLeft <= 0 || !g.canWalk() {
			g.walkLeft = 0
			g.actors.StopMoving(g.enri)
		}
	}
}

// canWalk reports whether the player may move the characters.
func (g *Game) canWalk() bool {
	return g.inputEnabled && !g.dialogue.IsActive() && !g.selection.Visible()
}

func direction(in core.InputFrame) actor.Direction {
	switch {
	case in.Has(core.ActionUp):
		return actor.DirUp
	case in.Has(core.ActionDown):
		return actor.DirDown
	case in.Has(core.ActionLeft):
		return actor.DirLeft
	case in.Has(core.ActionRight):
		return actor.DirRight
	default:
		return actor.DirNone
	}
}

// SetInputEnabled turns player movement on or off.
func (g *Game) SetInputEnabled(enabled bool) {
	g.inputEnabled = enabled
	if !enabled {
		g.walkLeft = 0
		g.actors.StopAll()
	}
}

// MoveActor glides an actor to dest.
func (g *Game) MoveActor(h actor.Handle, dest core.Vec, d time.Duration, done func()) {
	g.actors.MoveTo(h, dest, d, done)
}

// play starts a cutscene from the library.
func (g *Game) play(name string, actions []cutscene.Action) {
	g.played = append(g.played, name)
	g.cutscene.Play(name, actions)
}

// Quit ends a game that is still running, e.g. when the player leaves it.
func (g *Game) Quit() {
	if g.clock != nil && !g.gameOver {
		g.finish(core.OutcomeQuit)
	}
}

// finish ends the game with outcome and notifies the host once.
func (g *Game) finish(outcome core.Outcome) {
	if g.gameOver {
		return
	}
	g.gameOver = true
	g.outcome = outcome
	g.cutscene.Stop()
	g.selection.Clear()
	g.SetInputEnabled(false)
	g.session.Save()
	g.log.Info("game over", "outcome", outcome, "room", g.progress.Room(), "wrong", g.progress.TotalWrongAnswers())

	if !g.dismissed {
		g.dismissed = true
		if g.env.OnDismiss != nil {
			g.env.OnDismiss(g.State())
		}
	}
}

// Elapsed returns the simulated time since Reset.
func (g *Game) Elapsed() time.Duration {
	return g.clock.Now()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		GameOver: g.gameOver,
		Outcome:  g.outcome,
		Paused:   g.paused,
	}
	if g.progress != nil {
		st.Room = g.progress.Room()
		st.WrongAnswers = g.progress.TotalWrongAnswers()
	}
	if g.session != nil {
		st.Solved = g.session.SolvedCount()
	}
	return st
}

// Register the game with the registry
func init() {
	registry.Register(ID, func(env registry.Env) registry.Game {
		return New(env)
	})
}
