package cutscene

import (
	"time"

	"github.com/vovakirdan/purgatory/internal/actor"
	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/dialogue"
)

// Kind tags the variant of an Action.
type Kind int

const (
	KindMoveCharacter Kind = iota
	KindShowDialogue
	KindWait
	KindCameraMove
	KindPlayAnimation
	KindRunCallback
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMoveCharacter:
		return "move"
	case KindShowDialogue:
		return "dialogue"
	case KindWait:
		return "wait"
	case KindCameraMove:
		return "camera"
	case KindPlayAnimation:
		return "animation"
	case KindRunCallback:
		return "callback"
	default:
		return "unknown"
	}
}

// Action is one scripted step of a cutscene.
// Delay is how long the scheduler waits before the action becomes eligible.
// Which other fields matter depends on Kind.
type Action struct {
	Kind  Kind
	Delay time.Duration

	Actor    actor.Handle  // move, animation
	Dest     core.Vec      // move, camera
	Duration time.Duration // move, camera, wait
	Line     dialogue.Line // dialogue
	Clip     string        // animation
	Callback func()        // callback; for moves, called on arrival
}

// WithDelay returns a copy of a that waits d before running.
func (a Action) WithDelay(d time.Duration) Action {
	a.Delay = d
	return a
}

// MoveCharacter glides an actor to dest over duration.
// The scheduler does not wait for the move to finish.
func MoveCharacter(h actor.Handle, dest core.Vec, duration time.Duration) Action {
	return Action{Kind: KindMoveCharacter, Actor: h, Dest: dest, Duration: duration}
}

// OnArrive returns a copy of a move that calls fn once the actor arrives.
func (a Action) OnArrive(fn func()) Action {
	a.Callback = fn
	return a
}

// ShowDialogue presents a single line.
func ShowDialogue(text string, portrait dialogue.Portrait) Action {
	return Action{Kind: KindShowDialogue, Line: dialogue.Line{Text: text, Portrait: portrait}}
}

// Wait does nothing for d. The wait is carried entirely by the delay.
func Wait(d time.Duration) Action {
	return Action{Kind: KindWait, Delay: d, Duration: d}
}

// CameraMove pans the camera. Terminal scenes have a fixed camera.
func CameraMove(dest core.Vec, duration time.Duration) Action {
	return Action{Kind: KindCameraMove, Dest: dest, Duration: duration}
}

// PlayAnimation runs a named animation clip on an actor.
func PlayAnimation(h actor.Handle, clip string) Action {
	return Action{Kind: KindPlayAnimation, Actor: h, Clip: clip}
}

// RunCallback invokes fn.
func RunCallback(fn func()) Action {
	return Action{Kind: KindRunCallback, Callback: fn}
}

// Lighting fades the black cover laid over the scene.
// Opacity 1 is fully dark.
type Lighting interface {
	FadeCover(from, to float64, d time.Duration)
}

// DimLight brings the lights up from full darkness over d.
func DimLight(l Lighting, d time.Duration) Action {
	return RunCallback(func() { l.FadeCover(1, 0, d) })
}

// DimBeforeExtraction fades the scene to black over d.
func DimBeforeExtraction(l Lighting, d time.Duration) Action {
	return RunCallback(func() { l.FadeCover(0, 1, d) })
}
