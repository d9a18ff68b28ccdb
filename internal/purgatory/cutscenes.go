package purgatory

import (
	"time"

	"github.com/vovakirdan/purgatory/internal/actor"
	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/cutscene"
	"github.com/vovakirdan/purgatory/internal/dialogue"
	"github.com/vovakirdan/purgatory/internal/room"
)

// Cutscene timing.
const (
	introWelcomeDelay = 5 * time.Second
	introMoveDuration = 2 * time.Second
	introLineDelay    = 2 * time.Second
	introEndDelay     = 2 * time.Second
	introStride       = 2 // cells each character steps aside

	trapCloseDelay  = 5 * time.Second
	extractionDelay = 6 * time.Second
	boundEndDelay   = 3 * time.Second
)

// introduction lights the first room, lets both characters speak and step
// apart, then hands control to the player.
func (g *Game) introduction() []cutscene.Action {
	emmaPos := g.actors.Get(g.emma).Pos
	enriPos := g.actors.Get(g.enri).Pos

	return []cutscene.Action{
		cutscene.DimLight(g, g.cfg.Timing.LightsUp),
		cutscene.ShowDialogue("Welcome to the game!", dialogue.PortraitEnri).WithDelay(introWelcomeDelay),
		cutscene.MoveCharacter(g.emma, g.stepAside(emmaPos, -introStride), introMoveDuration),
		cutscene.ShowDialogue("Let's explore together!", dialogue.PortraitEmma).WithDelay(introLineDelay),
		cutscene.MoveCharacter(g.enri, g.stepAside(enriPos, introStride), introMoveDuration),
		cutscene.RunCallback(func() {
			g.introduced = true
			g.SetInputEnabled(true)
		}).WithDelay(introEndDelay),
	}
}

// stepAside returns pos shifted by dx cells, or pos itself when the target
// cell is not free.
func (g *Game) stepAside(pos core.Vec, dx int) core.Vec {
	dest := pos.Add(core.Vec{X: float64(dx)})
	p := cellOf(dest)
	if g.layout.Blocks(p.Col, p.Row) {
		return pos
	}
	return dest
}

// secondRoom hands control straight to the player.
func (g *Game) secondRoom() []cutscene.Action {
	return []cutscene.Action{
		cutscene.RunCallback(func() { g.SetInputEnabled(true) }),
	}
}

// illusionTrap closes walls in on the characters and gives the riddle one
// last try.
func (g *Game) illusionTrap() []cutscene.Action {
	return []cutscene.Action{
		cutscene.DimLight(g, g.cfg.Timing.LightsUp),
		cutscene.RunCallback(func() {
			g.selection.Clear()
			g.SetInputEnabled(false)
			g.resetCharacterPositions()
		}),
		cutscene.RunCallback(g.closeTrap).WithDelay(trapCloseDelay),
		cutscene.ShowDialogue("You have the last attempt", dialogue.PortraitNone),
		cutscene.ShowDialogue("DO YOUR BEST", dialogue.PortraitNone),
		cutscene.RunCallback(func() {
			if n := g.lastTriggered; n != nil {
				g.showWordSelection(n)
			}
		}),
		cutscene.RunCallback(func() {
			g.log.Debug("trap set", "walls", g.trap.Len())
		}),
	}
}

// lastAttemptHasBeenLost fades to black and ends the game.
func (g *Game) lastAttemptHasBeenLost() []cutscene.Action {
	return []cutscene.Action{
		cutscene.DimBeforeExtraction(g, g.cfg.Timing.Extraction),
		cutscene.RunCallback(func() {
			g.selection.Clear()
			g.SetInputEnabled(false)
		}),
		cutscene.ShowDialogue("JUST DIE", dialogue.PortraitNone),
		cutscene.RunCallback(func() {
			g.finish(core.OutcomeExtracted)
		}).WithDelay(extractionDelay),
	}
}

// corpseStrappedToATable straps Emma down in place of the corpse.
func (g *Game) corpseStrappedToATable() []cutscene.Action {
	return []cutscene.Action{
		cutscene.DimLight(g, g.cfg.Timing.LightsUp),
		cutscene.RunCallback(func() {
			g.selection.Clear()
			g.SetInputEnabled(false)
			g.resetCharacterPositions()
			g.bindEmma()
		}),
		cutscene.ShowDialogue("The shard won't move. The straps are already around her.", dialogue.PortraitNone),
		cutscene.RunCallback(func() {
			g.finish(core.OutcomeBound)
		}).WithDelay(boundEndDelay),
	}
}

// resetCharacterPositions puts both characters back at the room spawn.
func (g *Game) resetCharacterPositions() {
	g.actors.Place(g.enri, g.layout.Spawn.Vec())
	g.actors.Place(g.emma, g.companionSpawn().Vec())
}

// closeTrap springs the wall sequence around the characters.
func (g *Game) closeTrap() {
	keepNear := []room.Pos{
		cellOf(g.actors.Get(g.enri).Pos),
		cellOf(g.actors.Get(g.emma).Pos),
	}
	g.trap.TrapInsideIllusion(g.layout.Interior(), func(p room.Pos) bool {
		if g.layout.At(p.Col, p.Row) != room.TileEmpty && g.layout.At(p.Col, p.Row) != room.TileSpawn {
			return true
		}
		for _, k := range keepNear {
			if core.Abs(p.Col-k.Col) <= 1 && core.Abs(p.Row-k.Row) <= 1 {
				return true
			}
		}
		return false
	})
}

// bindEmma lays Emma on the corpse table and takes Enri off the scene.
func (g *Game) bindEmma() {
	enri := g.actors.Get(g.enri)
	enri.Hidden = true

	emma := g.actors.Get(g.emma)
	if n := g.lastTriggered; n != nil {
		b := n.Bounds()
		p := room.Pos{Col: b.X - 1, Row: b.Y}
		if !g.layout.Blocks(p.Col, p.Row) {
			g.actors.Place(g.emma, p.Vec())
		}
	}
	emma.Bound = true
	emma.Facing = actor.DirNone
}
