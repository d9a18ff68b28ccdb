package purgatory

import (
	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/dialogue"
	"github.com/vovakirdan/purgatory/internal/room"
	"github.com/vovakirdan/purgatory/internal/selection"
	"github.com/vovakirdan/purgatory/internal/trigger"
)

// Exit door options.
const (
	OptionStepThrough = "Step through"
)

// placementOrder is the order objects must be put into the exit frame.
var placementOrder = []trigger.ObjectKind{
	trigger.CrackedHolySymbol,
	trigger.BloodySurgicalKnife,
	trigger.MeltedCandle,
}

// puzzleReady runs when a trigger's second dialogue drains.
func (g *Game) puzzleReady(n *trigger.Node) {
	g.lastTriggered = n

	switch n.Identity() {
	case trigger.BloodWriting:
		g.chooseCharacter(func() { g.showWordSelection(n) })
	case trigger.Pillar:
		g.offerObject(n)
	case trigger.Corpse:
		g.chooseCharacter(func() { g.pullShard(n) })
	case trigger.MagicRune, trigger.CursedMirror:
		g.log.Debug("trigger has no puzzle", "identity", n.Identity())
	default:
		g.log.Warn("unknown trigger", "identity", n.Identity())
	}
}

// chooseCharacter asks who acts and remembers the pick.
func (g *Game) chooseCharacter(next func()) {
	g.selection.ShowCharacterSelection(
		[]string{selection.Enri, selection.Emma},
		func() { g.chooser = selection.Enri; next() },
		func() { g.chooser = selection.Emma; next() },
	)
}

// chooserPortrait returns the face of the character picked last.
func (g *Game) chooserPortrait() dialogue.Portrait {
	if g.chooser == selection.Emma {
		return dialogue.PortraitEmma
	}
	return dialogue.PortraitEnri
}

// showWordSelection offers the riddle answers for n.
func (g *Game) showWordSelection(n *trigger.Node) {
	g.selection.ShowWordSelection(g.cfg.Puzzle.Words, g.cfg.Puzzle.Answer,
		func() { g.rightWord(n) },
		func() { g.wrongWord(n) },
	)
}

func (g *Game) rightWord(n *trigger.Node) {
	g.progress.SetWordGuessed()
	for _, other := range g.triggers {
		if other.Identity() == n.Identity() {
			other.MarkSolved()
		}
	}

	if g.trap.Active() {
		g.trap.ReleaseCharactersFromTrap()
		g.SetInputEnabled(true)
	}
	g.say(
		dialogue.Line{Text: g.cfg.Puzzle.Answer + ".", Portrait: g.chooserPortrait()},
		dialogue.Line{Text: "The letters run down the wall and are gone.", Portrait: dialogue.PortraitNone},
	)
}

func (g *Game) wrongWord(n *trigger.Node) {
	esc := g.progress.RecordWrongAnswer(n.Identity().String())
	g.log.Info("wrong answer", "puzzle", n.Identity(), "count", g.progress.WrongAnswers(n.Identity().String()), "escalation", esc)

	switch esc {
	case room.EscalationTrap:
		g.play("illusionTrap", g.illusionTrap())
	case room.EscalationExtraction:
		g.play("lastAttemptHasBeenLost", g.lastAttemptHasBeenLost())
	case room.EscalationNone:
		g.dialogue.PresentSequence([]dialogue.Line{
			{Text: "Nothing happens. That was not it.", Portrait: g.chooserPortrait()},
		}, func() { g.showWordSelection(n) })
	}
}

// offerObject lets the player take what rests on a pillar.
func (g *Game) offerObject(n *trigger.Node) {
	if n.Object() == nil {
		return
	}
	g.selection.ShowTakeOrLeave([]string{selection.OptionTake, selection.OptionLeave},
		func() {
			obj, ok := n.TakeObject()
			if !ok {
				return
			}
			g.carried = append(g.carried, obj)
			g.say(dialogue.Line{Text: "We have the " + obj.Kind.Title() + ".", Portrait: dialogue.PortraitEmma})
		},
		func() {
			g.say(dialogue.Line{Text: "Let's leave it for now.", Portrait: dialogue.PortraitEnri})
		},
	)
}

// pullShard tries to pull the shard out of the corpse.
func (g *Game) pullShard(n *trigger.Node) {
	g.selection.PullOutShard(
		func() {
			n.MarkSolved()
			g.say(dialogue.Line{Text: "Got it. He didn't even twitch.", Portrait: g.chooserPortrait()})
		},
		func() {
			g.play("corpseStrappedToATable", g.corpseStrappedToATable())
		},
	)
}

// atExit handles the leader stepping into the exit door.
func (g *Game) atExit() {
	if len(g.carried) > 0 {
		labels := make([]string, 0, len(g.carried)+1)
		for _, o := range g.carried {
			labels = append(labels, o.Kind.Title())
		}
		labels = append(labels, selection.OptionLeave)
		g.selection.SelectObject(labels, func(index int, _ string) { g.placeObject(index) }, nil)
		return
	}

	g.dialogue.PresentSequence([]dialogue.Line{
		{Text: "The frame is empty. Something should stand in it.", Portrait: dialogue.PortraitEnri},
	}, func() {
		g.selection.FinalDecision([]string{OptionStepThrough, selection.OptionLeave},
			func() { g.play("lastAttemptHasBeenLost", g.lastAttemptHasBeenLost()) },
			nil,
		)
	})
}

// requiredObjects lists, in placement order, the objects the rooms hold.
func (g *Game) requiredObjects() []trigger.ObjectKind {
	present := make(map[trigger.ObjectKind]bool)
	for _, id := range g.rooms.IDs() {
		for _, ts := range g.rooms.Get(id).Triggers {
			if ts.Object != nil {
				present[ts.Object.Kind] = true
			}
		}
	}
	var out []trigger.ObjectKind
	for _, k := range placementOrder {
		if present[k] {
			out = append(out, k)
		}
	}
	return out
}

// placeObject puts carried object index into the exit frame.
func (g *Game) placeObject(index int) {
	if index < 0 || index >= len(g.carried) {
		return
	}
	obj := g.carried[index]
	required := g.requiredObjects()

	if len(g.placed) >= len(required) || required[len(g.placed)] != obj.Kind {
		g.say(dialogue.Line{Text: "It doesn't fit. Something else goes first.", Portrait: dialogue.PortraitEmma})
		return
	}

	g.carried = append(g.carried[:index], g.carried[index+1:]...)
	g.placed = append(g.placed, obj.Kind)

	if len(g.placed) < len(required) {
		g.say(dialogue.Line{Text: "It holds. The frame wants more.", Portrait: dialogue.PortraitEnri})
		return
	}
	g.dialogue.PresentSequence([]dialogue.Line{
		{Text: "The " + obj.Kind.Title() + " settles into the frame.", Portrait: dialogue.PortraitEnri},
		{Text: "The door gives way.", Portrait: dialogue.PortraitNone},
	}, func() { g.finish(core.OutcomeEscaped) })
}
