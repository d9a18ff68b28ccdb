// Package dialogue presents queued dialogue lines one at a time.
//
// The manager is a small state machine: Idle, Showing and Dismissing.
// A tap dismisses the line on screen; once the fade-out finishes the manager
// either hands control back to a playing cutscene or shows the next queued
// line. When the queue runs dry the caller's drained callback fires.
package dialogue

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/purgatory/internal/clock"
	"github.com/vovakirdan/purgatory/internal/logging"
)

// Portrait identifies the face shown next to a line. Empty means none.
type Portrait string

const (
	PortraitNone Portrait = ""
	PortraitEnri Portrait = "enri"
	PortraitEmma Portrait = "emma"
)

// Line is a single piece of dialogue.
type Line struct {
	Text     string
	Portrait Portrait
}

// View is the on-screen presentation of a line.
type View interface {
	// Present spawns the view for line and starts the fade-in.
	Present(line Line)
	// Dismiss starts the fade-out of the current view.
	Dismiss()
	// Remove takes the view off screen.
	Remove()
}

// PlaybackReporter tells the manager whether a cutscene owns the flow.
type PlaybackReporter interface {
	IsPlaying() bool
}

// State of the manager.
type State int

const (
	StateIdle State = iota
	StateShowing
	StateDismissing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateShowing:
		return "showing"
	case StateDismissing:
		return "dismissing"
	default:
		return "unknown"
	}
}

// Default fade durations.
const (
	DefaultFadeIn  = 300 * time.Millisecond
	DefaultFadeOut = 300 * time.Millisecond
)

// Manager owns the dialogue queue and the line currently on screen.
type Manager struct {
	clock    *clock.Clock
	log      *log.Logger
	view     View
	cutscene PlaybackReporter

	fadeIn  time.Duration
	fadeOut time.Duration

	queue     []Line
	current   *Line
	state     State
	changedAt time.Duration

	onDrained func()
	idleSubs  []func()

	// gen invalidates pending fade-out completions after Reset.
	gen uint64
}

// New creates a dialogue manager driven by clk.
func New(clk *clock.Clock, logger *log.Logger) *Manager {
	return &Manager{
		clock:   clk,
		log:     logging.OrDiscard(logger).WithPrefix("dialogue"),
		fadeIn:  DefaultFadeIn,
		fadeOut: DefaultFadeOut,
	}
}

// SetView installs the presentation collaborator.
func (m *Manager) SetView(v View) {
	m.view = v
}

// SetCutscene installs the cutscene the manager defers to on dismissal.
func (m *Manager) SetCutscene(c PlaybackReporter) {
	m.cutscene = c
}

// SetFades overrides the fade durations.
func (m *Manager) SetFades(in, out time.Duration) {
	m.fadeIn = max(in, 0)
	m.fadeOut = max(out, 0)
}

// SetOnQueueDrained replaces the callback fired when the queue runs dry.
// The callback fires once and is then cleared.
func (m *Manager) SetOnQueueDrained(fn func()) {
	m.onDrained = fn
}

// PresentSequence replaces the queue with lines and installs onDrained.
// If nothing is on screen the first line is shown right away. An empty
// sequence fires onDrained immediately without showing anything. When a line
// is already on screen the new queue waits for its dismissal, so there is
// never more than one line visible.
func (m *Manager) PresentSequence(lines []Line, onDrained func()) {
	m.queue = append(m.queue[:0:0], lines...)
	m.onDrained = onDrained

	if len(lines) == 0 {
		m.log.Debug("empty sequence")
		m.drain()
		return
	}
	if m.state == StateIdle {
		m.showNext()
	}
}

// HandleTap reacts to the player's tap.
// Showing: start dismissing. Idle with queued lines: show the next one.
// Anything else is ignored, including taps during a fade-out.
func (m *Manager) HandleTap() {
	switch m.state {
	case StateShowing:
		m.dismiss()
	case StateIdle:
		if len(m.queue) > 0 {
			m.showNext()
		}
	case StateDismissing:
	}
}

// OnIdle registers fn to run once, the next time a dismissal completes
// and the manager has no line on screen.
func (m *Manager) OnIdle(fn func()) {
	if fn != nil {
		m.idleSubs = append(m.idleSubs, fn)
	}
}

// Current returns the line on screen, if any.
// A line being faded out is still current until it is removed.
func (m *Manager) Current() (Line, bool) {
	if m.current == nil {
		return Line{}, false
	}
	return *m.current, true
}

// IsShowing reports whether a line is on screen.
func (m *Manager) IsShowing() bool {
	return m.current != nil
}

// IsActive reports whether a line is on screen or waiting in the queue.
func (m *Manager) IsActive() bool {
	return m.current != nil || len(m.queue) > 0
}

// Queued returns the number of lines waiting to be shown.
func (m *Manager) Queued() int {
	return len(m.queue)
}

// State returns the current state.
func (m *Manager) State() State {
	return m.state
}

// Opacity returns the fade level of the current line in [0, 1].
func (m *Manager) Opacity() float64 {
	elapsed := m.clock.Now() - m.changedAt
	switch m.state {
	case StateShowing:
		if m.fadeIn <= 0 || elapsed >= m.fadeIn {
			return 1
		}
		return float64(elapsed) / float64(m.fadeIn)
	case StateDismissing:
		if m.fadeOut <= 0 || elapsed >= m.fadeOut {
			return 0
		}
		return 1 - float64(elapsed)/float64(m.fadeOut)
	default:
		return 0
	}
}

// Reset drops the queue and any line on screen without firing callbacks.
func (m *Manager) Reset() {
	m.gen++
	if m.current != nil && m.view != nil {
		m.view.Remove()
	}
	m.queue = nil
	m.current = nil
	m.state = StateIdle
	m.onDrained = nil
	m.idleSubs = nil
}

func (m *Manager) showNext() {
	if m.current != nil {
		return
	}
	if len(m.queue) == 0 {
		m.drain()
		return
	}

	line := m.queue[0]
	m.queue = m.queue[1:]
	m.current = &line
	m.state = StateShowing
	m.changedAt = m.clock.Now()

	m.log.Debug("show", "text", line.Text, "portrait", line.Portrait, "queued", len(m.queue))
	if m.view != nil {
		m.view.Present(line)
	}
}

func (m *Manager) dismiss() {
	m.state = StateDismissing
	m.changedAt = m.clock.Now()
	if m.view != nil {
		m.view.Dismiss()
	}

	gen := m.gen
	m.clock.After(m.fadeOut, func() {
		if gen != m.gen {
			return
		}
		m.dismissed()
	})
}

func (m *Manager) dismissed() {
	if m.view != nil {
		m.view.Remove()
	}
	m.current = nil
	m.state = StateIdle
	m.changedAt = m.clock.Now()

	if m.cutscene == nil || !m.cutscene.IsPlaying() {
		m.showNext()
	}
	if m.current == nil {
		m.notifyIdle()
	}
}

func (m *Manager) drain() {
	fn := m.onDrained
	m.onDrained = nil
	if fn != nil {
		fn()
	}
}

func (m *Manager) notifyIdle() {
	subs := m.idleSubs
	m.idleSubs = nil
	for _, fn := range subs {
		fn()
	}
}
