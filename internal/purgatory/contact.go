package purgatory

import (
	"github.com/vovakirdan/purgatory/internal/actor"
	"github.com/vovakirdan/purgatory/internal/room"
	"github.com/vovakirdan/purgatory/internal/trigger"
)

// contactKind tags what an actor touched.
type contactKind int

const (
	contactWall contactKind = iota
	contactDoor
	contactTrigger
)

// String returns the kind name.
func (k contactKind) String() string {
	switch k {
	case contactWall:
		return "wall"
	case contactDoor:
		return "door"
	case contactTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}

// contact is an actor touching something in the room.
// Which of node, door and wall is set depends on kind.
type contact struct {
	kind  contactKind
	actor actor.Handle
	node  *trigger.Node
	door  *door
	wall  room.Pos
}

// contactKey identifies a contact across ticks.
type contactKey struct {
	kind  contactKind
	actor actor.Handle
	index int
}

func (g *Game) keyOf(c contact) contactKey {
	k := contactKey{kind: c.kind, actor: c.actor}
	switch c.kind {
	case contactWall:
		k.index = c.wall.Row*g.layout.Width + c.wall.Col
	case contactDoor:
		for i, d := range g.doors {
			if d == c.door {
				k.index = i
			}
		}
	case contactTrigger:
		for i, n := range g.triggers {
			if n == c.node {
				k.index = i
			}
		}
	}
	return k
}

// currentContacts lists everything the actors touch this tick.
func (g *Game) currentContacts() []contact {
	out := append([]contact(nil), g.bumps...)
	g.bumps = g.bumps[:0]

	for _, h := range g.actors.Handles() {
		a := g.actors.Get(h)
		if a.Hidden {
			continue
		}
		cell := cellOf(a.Pos)
		for _, n := range g.triggers {
			if n.Zone().Contains(cell.Col, cell.Row) {
				out = append(out, contact{kind: contactTrigger, actor: h, node: n})
			}
		}
		for _, d := range g.doors {
			if d.Pos == cell {
				out = append(out, contact{kind: contactDoor, actor: h, door: d})
			}
		}
	}
	return out
}

// detectContacts diffs this tick's contacts against the last tick's and
// dispatches begin and end events.
func (g *Game) detectContacts() {
	gen := g.roomGen
	current := g.currentContacts()

	// A trigger entered during a cutscene would have its dialogue taken
	// over by the cutscene's next line. Such contacts are left unrecorded
	// and begin once the cutscene ends.
	playing := g.cutscene.IsPlaying()

	seen := make(map[contactKey]bool, len(current))
	var began []contact
	for _, c := range current {
		k := g.keyOf(c)
		if seen[k] {
			continue
		}
		if playing && c.kind == contactTrigger && !g.contacts[k] {
			continue
		}
		seen[k] = true
		if !g.contacts[k] {
			began = append(began, c)
		}
	}

	for k := range g.contacts {
		if !seen[k] {
			g.contactEnded(k)
		}
	}
	g.contacts = seen

	for _, c := range began {
		g.contactBegan(c)
		if g.roomGen != gen || g.gameOver {
			return
		}
	}
}

func (g *Game) contactBegan(c contact) {
	switch c.kind {
	case contactWall:
		if c.actor == g.enri {
			g.actors.StopMoving(g.enri)
			g.walkLeft = 0
		}
	case contactDoor:
		if c.actor != g.enri || !g.canWalk() {
			return
		}
		g.enterDoor(c.door)
	case contactTrigger:
		c.node.CharacterDidEnter(c.actor)
	default:
		g.log.Warn("unknown contact", "kind", c.kind)
	}
}

func (g *Game) contactEnded(k contactKey) {
	switch k.kind {
	case contactWall, contactDoor:
	case contactTrigger:
		if k.index < len(g.triggers) {
			g.triggers[k.index].CharacterDidExit(k.actor)
		}
	default:
		g.log.Warn("unknown contact", "kind", k.kind)
	}
}
