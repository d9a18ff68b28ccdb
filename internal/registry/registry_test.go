package registry

import (
	"testing"

	"github.com/vovakirdan/purgatory/internal/core"
)

type stubGame struct {
	env Env
}

func (g *stubGame) ID() string                           { return "stub" }
func (g *stubGame) Title() string                        { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-create", func(env Env) Game { return &stubGame{env: env} })

	if !Exists("stub-create") {
		t.Fatal("Exists() = false after Register")
	}

	g, err := Create("stub-create", Env{Player: "alice"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.(*stubGame).env.Player != "alice" {
		t.Error("Create should pass the env to the factory")
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub-create" && info.Title == "Stub" {
			found = true
		}
	}
	if !found {
		t.Errorf("List() = %v, expected stub-create", List())
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-game", Env{}); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func(Env) Game { return &stubGame{} })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("stub-dup", func(Env) Game { return &stubGame{} })
}
