// Package cutscene plays ordered lists of timed actions.
//
// Actions run strictly in list order. Each waits for its delay on the clock
// and then, if a dialogue line is on screen, waits for the dialogue manager
// to go idle before dispatching. No action effect ever runs while a line is
// visible.
package cutscene

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/purgatory/internal/actor"
	"github.com/vovakirdan/purgatory/internal/clock"
	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/dialogue"
	"github.com/vovakirdan/purgatory/internal/logging"
)

// Dialogue is the part of the dialogue manager the scheduler drives.
type Dialogue interface {
	IsShowing() bool
	OnIdle(fn func())
	PresentSequence(lines []dialogue.Line, onDrained func())
}

// Stage is the scene the cutscene acts on.
type Stage interface {
	SetInputEnabled(enabled bool)
	MoveActor(h actor.Handle, dest core.Vec, d time.Duration, done func())
}

// Manager is the cutscene scheduler.
type Manager struct {
	clock    *clock.Clock
	dialogue Dialogue
	stage    Stage
	log      *log.Logger

	name    string
	actions []Action
	cursor  int
	playing bool

	// gen is bumped by Play and Stop; callbacks from older runs no-op.
	gen uint64
}

// New creates a cutscene manager.
func New(clk *clock.Clock, dlg Dialogue, stage Stage, logger *log.Logger) *Manager {
	return &Manager{
		clock:    clk,
		dialogue: dlg,
		stage:    stage,
		log:      logging.OrDiscard(logger).WithPrefix("cutscene"),
	}
}

// Play starts actions from the beginning, replacing any cutscene in progress.
func (m *Manager) Play(name string, actions []Action) {
	if m.playing {
		m.log.Debug("replacing cutscene", "old", m.name, "new", name)
	}
	m.gen++
	m.name = name
	m.actions = append(m.actions[:0:0], actions...)
	m.cursor = 0
	m.playing = true
	m.log.Debug("play", "name", name, "actions", len(actions))
	m.executeNext()
}

// Stop abandons the current cutscene. Safe to call at any time.
func (m *Manager) Stop() {
	m.gen++
	m.actions = nil
	m.cursor = 0
	m.playing = false
}

// IsPlaying reports whether a cutscene is in progress.
func (m *Manager) IsPlaying() bool {
	return m.playing
}

// Name returns the name of the current or last cutscene.
func (m *Manager) Name() string {
	return m.name
}

// Cursor returns the index of the next action to dispatch.
func (m *Manager) Cursor() int {
	return m.cursor
}

func (m *Manager) executeNext() {
	if m.cursor >= len(m.actions) {
		if m.playing {
			m.log.Debug("finished", "name", m.name)
		}
		m.playing = false
		return
	}

	gen := m.gen
	m.clock.After(m.actions[m.cursor].Delay, func() {
		m.fire(gen)
	})
}

// fire dispatches the action at the cursor, or parks it until the dialogue
// manager goes idle.
func (m *Manager) fire(gen uint64) {
	if gen != m.gen || m.cursor >= len(m.actions) {
		return
	}
	if m.dialogue.IsShowing() {
		m.dialogue.OnIdle(func() { m.fire(gen) })
		return
	}

	action := m.actions[m.cursor]
	m.dispatch(action)
	if gen != m.gen {
		// The action started or stopped a cutscene itself.
		return
	}
	m.cursor++
	m.executeNext()
}

func (m *Manager) dispatch(a Action) {
	switch a.Kind {
	case KindMoveCharacter:
		m.stage.SetInputEnabled(false)
		m.stage.MoveActor(a.Actor, a.Dest, a.Duration, func() {
			m.stage.SetInputEnabled(true)
			if a.Callback != nil {
				a.Callback()
			}
		})
	case KindShowDialogue:
		m.dialogue.PresentSequence([]dialogue.Line{a.Line}, nil)
	case KindWait:
	case KindCameraMove:
		m.log.Debug("camera move not supported", "dest", a.Dest, "duration", a.Duration)
	case KindPlayAnimation:
		m.log.Debug("animation not supported", "actor", a.Actor, "clip", a.Clip)
	case KindRunCallback:
		if a.Callback != nil {
			a.Callback()
		}
	default:
		m.log.Warn("unknown action kind", "kind", a.Kind)
	}
}
