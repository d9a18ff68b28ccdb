package purgatory

import (
	"math"
	"time"

	"github.com/vovakirdan/purgatory/internal/actor"
	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/dialogue"
	"github.com/vovakirdan/purgatory/internal/room"
	"github.com/vovakirdan/purgatory/internal/selection"
	"github.com/vovakirdan/purgatory/internal/trigger"
)

// door is a door placed in the current room.
type door struct {
	room.DoorSpec
	entered bool
}

// enterRoom tears down the current scene and builds room id.
func (g *Game) enterRoom(id string) {
	g.cutscene.Stop()
	g.dialogue.Reset()
	g.selection.Clear()
	g.trap.Reset()

	g.layout = g.rooms.Get(id)
	g.progress.Enter(g.layout.ID)
	g.roomGen++
	g.contacts = make(map[contactKey]bool)
	g.bumps = nil
	g.lastTriggered = nil
	g.inputEnabled = false
	g.walkLeft = 0
	g.cover = coverFade{}

	g.actors = actor.NewRegistry()
	g.enri = g.actors.Add(actor.Actor{
		Name:  selection.Enri,
		Glyph: '@',
		Color: core.ColorBrightWhite,
		Pos:   g.layout.Spawn.Vec(),
		Speed: g.cfg.Timing.WalkSpeed,
	})
	g.emma = g.actors.Add(actor.Actor{
		Name:  selection.Emma,
		Glyph: '&',
		Color: core.ColorBrightMagenta,
		Pos:   g.companionSpawn().Vec(),
		Speed: g.cfg.Timing.WalkSpeed,
	})
	g.actors.Follow(g.emma, g.enri)

	g.triggers = g.triggers[:0]
	for _, ts := range g.layout.Triggers {
		g.triggers = append(g.triggers, trigger.New(trigger.Config{
			Room:          g.layout.ID,
			Identity:      ts.Identity,
			Bounds:        ts.Rect(),
			Radius:        g.cfg.Timing.TriggerRadius,
			Object:        g.restingObject(ts.Object),
			Dialogue:      g.dialogue,
			Progress:      g.session,
			Actors:        g.actors,
			Logger:        g.log,
			OnPuzzleReady: g.puzzleReady,
		}))
	}

	g.doors = g.doors[:0]
	for _, ds := range g.layout.Doors {
		g.doors = append(g.doors, &door{DoorSpec: ds})
	}

	g.log.Info("entered room", "room", g.layout.ID, "number", g.progress.RoomNumber())

	if !g.introduced {
		g.cover = coverFade{from: 1, to: 1}
		g.play("introduction", g.introduction())
		return
	}
	g.play("secondRoom", g.secondRoom())
}

// companionSpawn returns a free cell next to the spawn for the follower.
func (g *Game) companionSpawn() room.Pos {
	sp := g.layout.Spawn
	for _, dc := range []int{1, -1} {
		p := room.Pos{Col: sp.Col + dc, Row: sp.Row}
		if !g.layout.Blocks(p.Col, p.Row) {
			return p
		}
	}
	return sp
}

// restingObject returns the object a pillar still holds this run.
func (g *Game) restingObject(obj *trigger.PlaceableObject) *trigger.PlaceableObject {
	if obj == nil || g.hasObject(obj.Kind) {
		return nil
	}
	cp := *obj
	return &cp
}

func (g *Game) hasObject(kind trigger.ObjectKind) bool {
	for _, o := range g.carried {
		if o.Kind == kind {
			return true
		}
	}
	for _, k := range g.placed {
		if k == kind {
			return true
		}
	}
	return false
}

// cellOf returns the cell an actor stands on.
func cellOf(pos core.Vec) room.Pos {
	return room.Pos{Col: int(math.Round(pos.X)), Row: int(math.Round(pos.Y))}
}

// blocked reports whether h may not step to next. Bumping into a wall is
// recorded as a contact.
func (g *Game) blocked(h actor.Handle, next core.Vec) bool {
	p := cellOf(next)
	if g.layout.Blocks(p.Col, p.Row) || g.trap.Blocks(p) {
		g.bumps = append(g.bumps, contact{kind: contactWall, actor: h, wall: p})
		return true
	}
	return false
}

// requirementMet reports whether the room's doors may be used.
func (g *Game) requirementMet() bool {
	if g.layout.Requires == "" {
		return true
	}
	for _, n := range g.triggers {
		if n.Identity().String() == g.layout.Requires && n.Solved() {
			return true
		}
	}
	return false
}

// enterDoor handles the leader stepping onto a door.
func (g *Game) enterDoor(d *door) {
	d.entered = true
	g.log.Debug("door", "id", d.ID, "target", d.Target)

	if d.Target == room.ExitTarget {
		g.atExit()
		return
	}
	if !g.requirementMet() {
		g.say(dialogue.Line{Text: "It won't open. The writing on the wall is still fresh.", Portrait: dialogue.PortraitEnri})
		return
	}
	if d.Target == "" {
		return
	}
	g.enterRoom(d.Target)
}

// say presents lines with no follow-up.
func (g *Game) say(lines ...dialogue.Line) {
	g.dialogue.PresentSequence(lines, nil)
}

// coverFade is the black overlay laid over the scene.
type coverFade struct {
	from, to float64
	start    time.Duration
	duration time.Duration
}

// FadeCover animates the cover opacity from from to to over d.
func (g *Game) FadeCover(from, to float64, d time.Duration) {
	g.cover = coverFade{from: from, to: to, start: g.clock.Now(), duration: d}
}

// CoverOpacity returns the current cover opacity in [0, 1].
func (g *Game) CoverOpacity() float64 {
	c := g.cover
	if c.duration <= 0 {
		return core.ClampF(c.to, 0, 1)
	}
	t := float64(g.clock.Now()-c.start) / float64(c.duration)
	t = core.ClampF(t, 0, 1)
	return core.ClampF(c.from+(c.to-c.from)*t, 0, 1)
}
