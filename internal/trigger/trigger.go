// Package trigger implements the contact-driven trigger zones of a room.
//
// A Node starts Armed. The first character to enter it moves it to
// Triggered: the characters stop, the first dialogue plays, then the second
// one, then the puzzle hook runs. Leaving never resets a node, so
// re-entering a fired zone stays silent. A solved puzzle moves the node to
// Resolved; a node whose puzzle was solved in an earlier session only shows
// its idle line.
package trigger

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/purgatory/internal/actor"
	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/dialogue"
	"github.com/vovakirdan/purgatory/internal/logging"
)

// State of a trigger node.
type State int

const (
	Armed State = iota
	Triggered
	Resolved
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Triggered:
		return "triggered"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Presenter shows dialogue sequences.
type Presenter interface {
	PresentSequence(lines []dialogue.Line, onDrained func())
}

// Progress stores solved-puzzle flags for the session.
type Progress interface {
	PuzzleSolved(key string) bool
	SetPuzzleSolved(key string)
}

// Stopper halts walking actors.
type Stopper interface {
	StopMoving(h actor.Handle)
}

// Config describes a node.
type Config struct {
	Room     string
	Identity Identity
	Bounds   core.Rect
	Radius   int
	Object   *PlaceableObject

	Dialogue Presenter
	Progress Progress
	Actors   Stopper
	Logger   *log.Logger

	// OnPuzzleReady runs after the second dialogue drains.
	OnPuzzleReady func(n *Node)
}

// Node is a trigger zone.
type Node struct {
	room     string
	identity Identity
	bounds   core.Rect
	radius   int
	script   Script

	object      *PlaceableObject
	objectTaken bool

	state             State
	dialogueTriggered bool
	solved            bool
	active            map[actor.Handle]bool

	dialogue      Presenter
	progress      Progress
	actors        Stopper
	onPuzzleReady func(n *Node)
	log           *log.Logger
}

// New creates an armed node.
func New(cfg Config) *Node {
	n := &Node{
		room:          cfg.Room,
		identity:      cfg.Identity,
		bounds:        cfg.Bounds,
		radius:        cfg.Radius,
		object:        cfg.Object,
		script:        ScriptFor(cfg.Identity, cfg.Object),
		active:        make(map[actor.Handle]bool),
		dialogue:      cfg.Dialogue,
		progress:      cfg.Progress,
		actors:        cfg.Actors,
		onPuzzleReady: cfg.OnPuzzleReady,
		log:           logging.OrDiscard(cfg.Logger).WithPrefix("trigger"),
	}
	if n.progress != nil {
		n.solved = n.progress.PuzzleSolved(n.Key())
	}
	return n
}

// Key identifies the node's puzzle in saved progress.
func (n *Node) Key() string {
	return Key(n.room, n.identity, n.bounds)
}

// Key builds the saved-progress key of a node placed at bounds in room.
func Key(room string, id Identity, bounds core.Rect) string {
	return fmt.Sprintf("%s.%s.%d.%d", room, id, bounds.X, bounds.Y)
}

// Identity returns the trigger kind.
func (n *Node) Identity() Identity {
	return n.identity
}

// Room returns the id of the room the node belongs to.
func (n *Node) Room() string {
	return n.room
}

// Bounds returns the tile area of the node itself.
func (n *Node) Bounds() core.Rect {
	return n.bounds
}

// Zone returns the contact area: the node bounds grown by its radius.
func (n *Node) Zone() core.Rect {
	return n.bounds.Inflate(n.radius)
}

// State returns the current state.
func (n *Node) State() State {
	return n.state
}

// Solved reports whether the node's puzzle is solved.
func (n *Node) Solved() bool {
	return n.solved
}

// DialogueTriggered reports whether the puzzle dialogue has been started.
func (n *Node) DialogueTriggered() bool {
	return n.dialogueTriggered
}

// Object returns the pillar object still resting on the node, if any.
func (n *Node) Object() *PlaceableObject {
	if n.objectTaken {
		return nil
	}
	return n.object
}

// TakeObject removes the resting object and returns it.
func (n *Node) TakeObject() (PlaceableObject, bool) {
	if n.object == nil || n.objectTaken {
		return PlaceableObject{}, false
	}
	n.objectTaken = true
	return *n.object, true
}

// ObjectTaken reports whether the resting object was taken.
func (n *Node) ObjectTaken() bool {
	return n.objectTaken
}

// IsOccupied reports whether a character is inside the zone.
func (n *Node) IsOccupied() bool {
	return len(n.active) > 0
}

// Occupants returns the number of characters inside the zone.
func (n *Node) Occupants() int {
	return len(n.active)
}

// CharacterDidEnter records h inside the zone and fires the node if armed.
func (n *Node) CharacterDidEnter(h actor.Handle) {
	n.active[h] = true
	if n.state != Armed || len(n.active) == 0 {
		return
	}

	n.state = Triggered
	if n.actors != nil {
		for a := range n.active {
			n.actors.StopMoving(a)
		}
	}

	if !n.solved && n.progress != nil {
		n.solved = n.progress.PuzzleSolved(n.Key())
	}
	if n.solved {
		n.log.Debug("already solved", "key", n.Key())
		n.state = Resolved
		n.present(n.script.Solved, nil)
		return
	}

	if n.dialogueTriggered {
		return
	}
	n.dialogueTriggered = true
	n.log.Debug("fired", "key", n.Key(), "actor", h)
	n.present(n.script.First, func() {
		n.present(n.script.Second, func() {
			if n.onPuzzleReady != nil {
				n.onPuzzleReady(n)
			}
		})
	})
}

// CharacterDidExit forgets h. The node state is left untouched.
func (n *Node) CharacterDidExit(h actor.Handle) {
	delete(n.active, h)
}

// MarkSolved records the puzzle as solved and resolves the node.
func (n *Node) MarkSolved() {
	n.solved = true
	n.state = Resolved
	if n.progress != nil {
		n.progress.SetPuzzleSolved(n.Key())
	}
	n.log.Debug("solved", "key", n.Key())
}

func (n *Node) present(lines []dialogue.Line, onDrained func()) {
	if n.dialogue == nil {
		if onDrained != nil {
			onDrained()
		}
		return
	}
	n.dialogue.PresentSequence(lines, onDrained)
}
