package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/logging"
	"github.com/vovakirdan/purgatory/internal/registry"
	"github.com/vovakirdan/purgatory/internal/storage"
)

// Recorder writes finished runs to the journal.
type Recorder struct {
	store   *storage.Store
	player  string
	log     *log.Logger
	started time.Time
}

// NewRecorder creates a recorder for player. A nil store records nothing.
func NewRecorder(store *storage.Store, player string, logger *log.Logger) *Recorder {
	return &Recorder{
		store:   store,
		player:  player,
		log:     logging.OrDiscard(logger),
		started: time.Now(),
	}
}

// Start marks the beginning of a run.
func (r *Recorder) Start() {
	r.started = time.Now()
}

// Record saves the final state of a run. It is meant as a registry.Env
// OnDismiss hook.
func (r *Recorder) Record(st core.GameState) {
	if r == nil || r.store == nil {
		return
	}
	run := storage.Run{
		Player:       r.player,
		Outcome:      st.Outcome,
		Room:         st.Room,
		Solved:       st.Solved,
		WrongAnswers: st.WrongAnswers,
		Duration:     int(time.Since(r.started).Seconds()),
	}
	if _, err := r.store.SaveRun(run); err != nil {
		r.log.Error("could not save run", "error", err)
		return
	}
	r.log.Info("run saved", "player", r.player, "outcome", st.Outcome)
}

// quitter is implemented by games that must be told the player left.
type quitter interface {
	Quit()
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	recorder   *Recorder
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	loop       int64
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, rec *Recorder, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:   rec,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		loop:       time.Now().UnixNano(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if m.recorder != nil {
		m.recorder.Start()
	}
	return tickCmd(m.loop, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		// The story is not restarted on resize; the room is recentered.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.endGame()
		m.quitting = true
		return m, tea.Quit
	}

	// B or Esc leaves to the menu once the game is over or paused
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.endGame()
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// endGame tells a running game the player left.
func (m Model) endGame() {
	if q, ok := m.game.(quitter); ok {
		q.Quit()
	}
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		if m.recorder != nil {
			m.recorder.Start()
		}
		m.gameState = m.game.State()
		m.inputFrame.Clear()
		return m, tickCmd(m.loop, m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.loop, m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".purgatory", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
// It reports whether the player asked to go back to the menu.
func Run(game registry.Game, rec *Recorder, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewModel(game, rec, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks advance dialogue
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
