package purgatory

import (
	"strings"
	"testing"

	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/registry"
	"github.com/vovakirdan/purgatory/internal/selection"
)

func TestRender(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.skipIntro(t)
	g := h.g

	s := core.NewScreen(80, 24)
	g.Render(s)
	out := s.String()

	for _, want := range []string{"Purgatory", "Room 1: room1", "@", "&", string(WallChar), string(BloodChar)} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output should contain %q", want)
		}
	}
}

func TestRenderDialogueAndMenu(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.skipIntro(t)

	h.stand(11, 5)
	h.menu(t, selection.MenuCharacter)

	s := core.NewScreen(80, 24)
	h.g.Render(s)
	out := s.String()

	if !strings.Contains(out, "[1] Enri") || !strings.Contains(out, "[2] Emma") {
		t.Errorf("Render() should show the character buttons:\n%s", out)
	}
}

func TestRenderGameOver(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.g.Quit()

	s := core.NewScreen(80, 24)
	h.g.Render(s)
	if !strings.Contains(s.String(), "R to restart") {
		t.Error("game over screen should offer a restart")
	}
}

func TestRenderBeforeReset(t *testing.T) {
	g := New(registry.Env{})
	s := core.NewScreen(20, 5)
	g.Render(s)
	if strings.TrimSpace(s.String()) != "" {
		t.Error("an unstarted game should draw nothing")
	}
}
