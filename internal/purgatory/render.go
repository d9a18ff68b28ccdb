package purgatory

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/purgatory/internal/actor"
	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/dialogue"
	"github.com/vovakirdan/purgatory/internal/room"
	"github.com/vovakirdan/purgatory/internal/trigger"
)

// Visual characters for rendering
const (
	WallChar     = '█'
	FloorChar    = '·'
	DoorChar     = '▯'
	ExitChar     = '◊'
	BloodChar    = '≈'
	PillarChar   = 'Π'
	ObjectChar   = '†'
	CorpseChar   = '⌂'
	RuneChar     = '*'
	MirrorChar   = '□'
	EnemyChar    = 'E'
	NPCChar      = 'N'
	TrapChar     = '▓'
	TrapFadeChar = '░'
)

// Screen layout.
const (
	hudRow        = 0
	roomTop       = 2
	dialogueLines = 3
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.clock == nil {
		return
	}

	ox, oy := g.roomOrigin(dst)
	g.drawRoom(dst, ox, oy)
	g.drawTrap(dst, ox, oy)
	g.drawActors(dst, ox, oy)
	g.drawCover(dst, ox, oy)
	g.drawHUD(dst)
	g.drawSelection(dst, oy)
	g.drawDialogue(dst)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		title, subtitle := outcomeText(g.outcome)
		drawCenteredMessage(dst, title, subtitle+"  |  R to restart")
	}
}

// roomOrigin returns the screen position of the room's top-left cell.
func (g *Game) roomOrigin(dst *core.Screen) (int, int) {
	x := max((dst.Width()-g.layout.Width)/2, 0)
	return x, roomTop
}

func (g *Game) drawRoom(dst *core.Screen, ox, oy int) {
	for row := 0; row < g.layout.Height; row++ {
		for col := 0; col < g.layout.Width; col++ {
			r, c := g.tileGlyph(col, row)
			dst.SetColored(ox+col, oy+row, r, c)
		}
	}

	for _, n := range g.triggers {
		r, c := triggerGlyph(n)
		b := n.Bounds()
		dst.SetColored(ox+b.X, oy+b.Y, r, c)
	}

	for _, d := range g.doors {
		r, c := DoorChar, core.ColorYellow
		switch {
		case d.Target == room.ExitTarget:
			r, c = ExitChar, core.ColorBrightYellow
		case !g.requirementMet():
			c = core.ColorRed
		}
		dst.SetColored(ox+d.Col, oy+d.Row, r, c)
	}
}

func (g *Game) tileGlyph(col, row int) (rune, core.Color) {
	switch g.layout.At(col, row) {
	case room.TileWall:
		return WallChar, core.ColorGray
	case room.TileEnemy:
		return EnemyChar, core.ColorRed
	case room.TileNPC:
		return NPCChar, core.ColorCyan
	default:
		return FloorChar, core.ColorDarkGray
	}
}

func triggerGlyph(n *trigger.Node) (rune, core.Color) {
	switch n.Identity() {
	case trigger.BloodWriting:
		if n.Solved() {
			return BloodChar, core.ColorGray
		}
		return BloodChar, core.ColorBrightRed
	case trigger.Pillar:
		if n.Object() != nil {
			return ObjectChar, core.ColorBrightYellow
		}
		return PillarChar, core.ColorWhite
	case trigger.Corpse:
		return CorpseChar, core.ColorMagenta
	case trigger.MagicRune:
		return RuneChar, core.ColorBlue
	case trigger.CursedMirror:
		return MirrorChar, core.ColorCyan
	default:
		return '?', core.ColorDefault
	}
}

func (g *Game) drawTrap(dst *core.Screen, ox, oy int) {
	for _, w := range g.trap.Walls() {
		r := TrapChar
		if g.trap.Opacity(w) < 0.5 {
			r = TrapFadeChar
		}
		dst.SetColored(ox+w.Col, oy+w.Row, r, core.ColorMagenta)
	}
}

func (g *Game) drawActors(dst *core.Screen, ox, oy int) {
	// Followers first so the leader is drawn on top.
	handles := g.actors.Handles()
	for i := len(handles) - 1; i >= 0; i-- {
		a := g.actors.Get(handles[i])
		if a.Hidden {
			continue
		}
		c := a.Color
		if a.Bound {
			c = core.ColorRed
		}
		p := cellOf(a.Pos)
		dst.SetColored(ox+p.Col, oy+p.Row, actorGlyph(a), c)
	}
}

func actorGlyph(a *actor.Actor) rune {
	if a.Bound {
		return '─'
	}
	return a.Glyph
}

// drawCover shades the room by the cover opacity.
func (g *Game) drawCover(dst *core.Screen, ox, oy int) {
	op := g.CoverOpacity()
	if op <= 0.2 {
		return
	}
	for row := 0; row < g.layout.Height; row++ {
		for col := 0; col < g.layout.Width; col++ {
			x, y := ox+col, oy+row
			switch {
			case op >= 0.9:
				dst.Set(x, y, ' ')
			case op >= 0.5:
				dst.SetColored(x, y, dst.Get(x, y), core.ColorDarkGray)
			default:
				dst.SetColored(x, y, dst.Get(x, y), core.ColorGray)
			}
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s │ Room %d: %s │ Solved: %d │ Wrong: %d ",
		g.Title(), g.progress.RoomNumber(), g.layout.ID, g.session.SolvedCount(), g.progress.TotalWrongAnswers())
	dst.DrawText(1, hudRow, hud)

	if len(g.carried) > 0 {
		names := make([]string, len(g.carried))
		for i, o := range g.carried {
			names[i] = o.Kind.Title()
		}
		items := " Carrying: " + strings.Join(names, ", ") + " "
		dst.DrawTextColored(1, hudRow+1, items, core.ColorYellow)
	}
}

// drawSelection lays the buttons out around the room's middle row.
func (g *Game) drawSelection(dst *core.Screen, oy int) {
	buttons := g.selection.Buttons()
	if len(buttons) == 0 {
		return
	}
	mid := oy + g.layout.Height/2
	for i, b := range buttons {
		label := fmt.Sprintf(" [%d] %s ", i+1, b.Label)
		y := mid + b.Offset/30
		x := (dst.Width() - len([]rune(label))) / 2
		dst.DrawRect(core.NewRect(x-1, y, len([]rune(label))+2, 1), ' ')
		dst.DrawTextColored(x, y, label, core.ColorBrightCyan)
	}
}

// drawDialogue draws the line on screen in a box under the room.
func (g *Game) drawDialogue(dst *core.Screen) {
	if !g.view.visible {
		return
	}
	w := dst.Width() - 4
	if w < 10 {
		return
	}
	h := dialogueLines + 2
	box := core.NewRect(2, dst.Height()-h, w, h)

	color := core.ColorBrightWhite
	if g.dialogue.Opacity() < 0.5 {
		color = core.ColorGray
	}

	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, core.ColorGray)
	if name := speakerName(g.view.line.Portrait); name != "" {
		dst.DrawTextColored(box.X+2, box.Y, " "+name+" ", core.ColorBrightYellow)
	}

	lines := core.WrapText(g.view.line.Text, w-4)
	for i, line := range lines {
		if i >= dialogueLines {
			break
		}
		dst.DrawTextColored(box.X+2, box.Y+1+i, line, color)
	}
	if g.dialogue.State() == dialogue.StateShowing {
		hint := " ▼ space "
		dst.DrawTextColored(box.Right()-len([]rune(hint))-1, box.Bottom()-1, hint, core.ColorGray)
	}
}

func speakerName(p dialogue.Portrait) string {
	switch p {
	case dialogue.PortraitEnri:
		return "Enri"
	case dialogue.PortraitEmma:
		return "Emma"
	default:
		return ""
	}
}

func outcomeText(o core.Outcome) (string, string) {
	switch o {
	case core.OutcomeEscaped:
		return "YOU ESCAPED", "The door closes behind you"
	case core.OutcomeExtracted:
		return "EXTRACTED", "The last attempt has been lost"
	case core.OutcomeBound:
		return "BOUND", "Emma stays on the table"
	case core.OutcomeQuit:
		return "GAME OVER", "You left purgatory for now"
	default:
		return "GAME OVER", ""
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextCentered(boxY+1, title)
	dst.DrawTextCentered(boxY+3, subtitle)
}
