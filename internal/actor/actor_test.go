package actor

import (
	"testing"
	"time"

	"github.com/vovakirdan/purgatory/internal/core"
)

func TestRegistryHandles(t *testing.T) {
	r := NewRegistry()
	enri := r.Add(Actor{Name: "Enri"})
	emma := r.Add(Actor{Name: "Emma"})

	if enri != 0 || emma != 1 {
		t.Errorf("handles = %d, %d, expected 0, 1", enri, emma)
	}
	if r.Get(emma).Name != "Emma" {
		t.Errorf("Get(emma).Name = %q", r.Get(emma).Name)
	}
	if r.Get(NoHandle) != nil || r.Get(5) != nil {
		t.Error("Get() with invalid handle should return nil")
	}
	if r.Get(enri).Leader != NoHandle {
		t.Error("new actor should have no leader")
	}
	if r.Get(enri).Speed != DefaultSpeed {
		t.Errorf("Speed = %v, expected default %v", r.Get(enri).Speed, DefaultSpeed)
	}
}

func TestFollowerMirrorsLeader(t *testing.T) {
	r := NewRegistry()
	enri := r.Add(Actor{Name: "Enri", Pos: core.Vec{X: 5, Y: 5}})
	emma := r.Add(Actor{Name: "Emma", Pos: core.Vec{X: 6, Y: 5}})
	r.Follow(emma, enri)

	r.StartMoving(enri, DirRight)
	if r.Get(emma).Walking != DirRight {
		t.Errorf("follower Walking = %v, expected right", r.Get(emma).Walking)
	}

	r.Update(500*time.Millisecond, nil)
	if got := r.Get(enri).Pos.X; got != 8 {
		t.Errorf("leader X = %v, expected 8", got)
	}
	if got := r.Get(emma).Pos.X; got != 9 {
		t.Errorf("follower X = %v, expected 9", got)
	}

	r.StopMoving(enri)
	if r.Get(emma).IsMoving() {
		t.Error("follower should stop with its leader")
	}
}

func TestFollowIgnoresInvalid(t *testing.T) {
	r := NewRegistry()
	a := r.Add(Actor{Name: "a"})
	r.Follow(a, a)
	r.Follow(a, 7)
	if r.Get(a).Leader != NoHandle {
		t.Errorf("Leader = %d, expected none", r.Get(a).Leader)
	}
}

func TestWalkBlocked(t *testing.T) {
	r := NewRegistry()
	a := r.Add(Actor{Name: "a", Pos: core.Vec{X: 1, Y: 1}})
	r.StartMoving(a, DirLeft)

	r.Update(time.Second, func(h Handle, next core.Vec) bool {
		return next.X < 1
	})

	if got := r.Get(a).Pos; got != (core.Vec{X: 1, Y: 1}) {
		t.Errorf("blocked actor moved to %+v", got)
	}
}

func TestMoveTo(t *testing.T) {
	r := NewRegistry()
	a := r.Add(Actor{Name: "a", Pos: core.Vec{X: 0, Y: 0}})

	done := 0
	r.MoveTo(a, core.Vec{X: 4, Y: 0}, 2*time.Second, func() { done++ })

	r.Update(time.Second, nil)
	if got := r.Get(a).Pos; got != (core.Vec{X: 2, Y: 0}) {
		t.Errorf("halfway Pos = %+v, expected {2 0}", got)
	}
	if done != 0 {
		t.Fatal("done fired early")
	}
	if r.Get(a).Facing != DirRight {
		t.Errorf("Facing = %v, expected right", r.Get(a).Facing)
	}

	// Walking input is ignored during a scripted move.
	r.StartMoving(a, DirUp)
	r.Update(time.Second, nil)
	if got := r.Get(a).Pos; got != (core.Vec{X: 4, Y: 0}) {
		t.Errorf("final Pos = %+v, expected {4 0}", got)
	}
	if done != 1 {
		t.Errorf("done fired %d times, expected 1", done)
	}
}

func TestMoveToZeroDuration(t *testing.T) {
	r := NewRegistry()
	a := r.Add(Actor{Name: "a"})
	done := false
	r.MoveTo(a, core.Vec{X: 3, Y: 3}, 0, func() { done = true })

	if !done || r.Get(a).Pos != (core.Vec{X: 3, Y: 3}) {
		t.Error("zero-duration move should teleport and complete")
	}
}

func TestMoveToInvalidHandleCompletes(t *testing.T) {
	r := NewRegistry()
	done := false
	r.MoveTo(NoHandle, core.Vec{}, time.Second, func() { done = true })
	if !done {
		t.Error("move of a missing actor should still complete")
	}
}

func TestBoundActorDoesNotWalk(t *testing.T) {
	r := NewRegistry()
	a := r.Add(Actor{Name: "a", Bound: true})
	r.StartMoving(a, DirDown)
	if r.Get(a).IsMoving() {
		t.Error("bound actor should not start walking")
	}
}

func TestPlaceCancelsMove(t *testing.T) {
	r := NewRegistry()
	a := r.Add(Actor{Name: "a"})
	done := false
	r.MoveTo(a, core.Vec{X: 10}, time.Second, func() { done = true })
	r.Place(a, core.Vec{X: 2, Y: 2})
	r.Update(2*time.Second, nil)

	if done {
		t.Error("Place should drop the pending completion")
	}
	if r.Get(a).Pos != (core.Vec{X: 2, Y: 2}) {
		t.Errorf("Pos = %+v after Place", r.Get(a).Pos)
	}
}
