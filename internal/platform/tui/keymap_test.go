package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/purgatory/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"w", runeKey('w'), core.ActionUp, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionTap, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionTap, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.expected || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.expected, tc.quit)
			}
		})
	}
}

func TestMapKeyToFrameChoice(t *testing.T) {
	km := NewKeyMapper()

	frame := core.NewInputFrame()
	km.MapKeyToFrame(runeKey('3'), &frame)
	if frame.Choice != 2 {
		t.Errorf("Choice = %d, expected 2", frame.Choice)
	}

	frame = core.NewInputFrame()
	km.MapKeyToFrame(runeKey('0'), &frame)
	if frame.HasChoice() {
		t.Error("0 should not pick a button")
	}

	frame = core.NewInputFrame()
	km.MapKeyToFrame(runeKey('d'), &frame)
	if !frame.Has(core.ActionRight) || frame.HasChoice() {
		t.Errorf("frame = %+v, expected a walk right", frame)
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()

	frame := core.NewInputFrame()
	km.MapMouseToFrame(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	if !frame.Has(core.ActionTap) {
		t.Error("left click should tap")
	}

	frame = core.NewInputFrame()
	km.MapMouseToFrame(tea.MouseMsg{Action: tea.MouseActionMotion}, &frame)
	if frame.Has(core.ActionTap) {
		t.Error("mouse motion should not tap")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	if km.MapKeyToMenuAction(runeKey('k')) != MenuActionUp {
		t.Error("k should move up")
	}
	if km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyDown}) != MenuActionDown {
		t.Error("down should move down")
	}
	if km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}) != MenuActionSelect {
		t.Error("enter should select")
	}
}
