// Package actor owns the characters walking through a room.
//
// All actors live in a Registry and are addressed by Handle. A follower
// stores its leader's handle, never a pointer, so the registry stays the
// single owner of every actor.
package actor

import (
	"time"

	"github.com/vovakirdan/purgatory/internal/core"
)

// Handle indexes an actor in its Registry.
type Handle int

// NoHandle is the zero reference.
const NoHandle Handle = -1

// Direction is a walking direction.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Vector returns the unit step for the direction. Y grows downwards.
func (d Direction) Vector() core.Vec {
	switch d {
	case DirUp:
		return core.Vec{Y: -1}
	case DirDown:
		return core.Vec{Y: 1}
	case DirLeft:
		return core.Vec{X: -1}
	case DirRight:
		return core.Vec{X: 1}
	default:
		return core.Vec{}
	}
}

// DefaultSpeed is the walking speed in tiles per second.
const DefaultSpeed = 6.0

// Actor is a character in the scene.
type Actor struct {
	Name    string
	Glyph   rune
	Color   core.Color
	Pos     core.Vec
	Facing  Direction
	Walking Direction
	Speed   float64
	Leader  Handle
	Hidden  bool
	Bound   bool // strapped down; cannot walk

	tween *tween
}

type tween struct {
	from, to core.Vec
	elapsed  time.Duration
	duration time.Duration
	done     func()
}

// IsMoving reports whether the actor is walking or being moved.
func (a *Actor) IsMoving() bool {
	return a.tween != nil || a.Walking != DirNone
}

// Bounds returns the tile the actor occupies.
func (a *Actor) Bounds() core.Rect {
	return a.Pos.Tile()
}

// BlockFunc reports whether the actor h may not step to next.
type BlockFunc func(h Handle, next core.Vec) bool

// Registry owns all actors of a scene.
type Registry struct {
	actors []*Actor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add stores a copy of a and returns its handle.
// The copy starts without a leader; use Follow to attach one.
func (r *Registry) Add(a Actor) Handle {
	if a.Speed <= 0 {
		a.Speed = DefaultSpeed
	}
	a.Leader = NoHandle
	a.tween = nil
	cp := a
	r.actors = append(r.actors, &cp)
	return Handle(len(r.actors) - 1)
}

// Get returns the actor for h, or nil for an invalid handle.
func (r *Registry) Get(h Handle) *Actor {
	if h < 0 || int(h) >= len(r.actors) {
		return nil
	}
	return r.actors[h]
}

// Len returns the number of actors.
func (r *Registry) Len() int {
	return len(r.actors)
}

// Handles returns every handle in insertion order.
func (r *Registry) Handles() []Handle {
	hs := make([]Handle, len(r.actors))
	for i := range r.actors {
		hs[i] = Handle(i)
	}
	return hs
}

// Follow makes follower copy leader's walking direction.
func (r *Registry) Follow(follower, leader Handle) {
	a := r.Get(follower)
	if a == nil || r.Get(leader) == nil || follower == leader {
		return
	}
	a.Leader = leader
}

// Followers returns the actors following h.
func (r *Registry) Followers(h Handle) []Handle {
	var out []Handle
	for i, a := range r.actors {
		if a.Leader == h && Handle(i) != h {
			out = append(out, Handle(i))
		}
	}
	return out
}

// StartMoving sets h and its followers walking in dir.
func (r *Registry) StartMoving(h Handle, dir Direction) {
	r.walk(h, dir)
	for _, f := range r.Followers(h) {
		r.walk(f, dir)
	}
}

// StopMoving halts h and its followers.
func (r *Registry) StopMoving(h Handle) {
	r.StartMoving(h, DirNone)
}

// StopAll halts walking for every actor. Scripted moves keep going.
func (r *Registry) StopAll() {
	for _, a := range r.actors {
		a.Walking = DirNone
	}
}

func (r *Registry) walk(h Handle, dir Direction) {
	a := r.Get(h)
	if a == nil || a.Bound || a.Hidden || a.tween != nil {
		return
	}
	a.Walking = dir
	if dir != DirNone {
		a.Facing = dir
	}
}

// MoveTo glides h to dest over d and calls done when it arrives.
// A zero duration teleports and calls done immediately.
func (r *Registry) MoveTo(h Handle, dest core.Vec, d time.Duration, done func()) {
	a := r.Get(h)
	if a == nil {
		if done != nil {
			done()
		}
		return
	}
	a.Walking = DirNone
	if d <= 0 {
		a.Pos = dest
		a.tween = nil
		if done != nil {
			done()
		}
		return
	}
	a.Facing = facing(dest.Sub(a.Pos), a.Facing)
	a.tween = &tween{from: a.Pos, to: dest, duration: d, done: done}
}

// Place puts h at pos, cancelling any movement without calling its
// completion.
func (r *Registry) Place(h Handle, pos core.Vec) {
	a := r.Get(h)
	if a == nil {
		return
	}
	a.Pos = pos
	a.Walking = DirNone
	a.tween = nil
}

// Update advances scripted moves and walking by dt.
// blocked may be nil; walking actors that would enter a blocked position stay
// where they are.
func (r *Registry) Update(dt time.Duration, blocked BlockFunc) {
	for i, a := range r.actors {
		h := Handle(i)
		if t := a.tween; t != nil {
			t.elapsed += dt
			if t.elapsed >= t.duration {
				a.Pos = t.to
				a.tween = nil
				if t.done != nil {
					t.done()
				}
			} else {
				a.Pos = t.from.Lerp(t.to, float64(t.elapsed)/float64(t.duration))
			}
			continue
		}
		if a.Walking == DirNone {
			continue
		}
		next := a.Pos.Add(a.Walking.Vector().Scale(a.Speed * dt.Seconds()))
		if blocked != nil && blocked(h, next) {
			continue
		}
		a.Pos = next
	}
}

func facing(delta core.Vec, fallback Direction) Direction {
	switch {
	case delta.X == 0 && delta.Y == 0:
		return fallback
	case abs(delta.X) >= abs(delta.Y) && delta.X < 0:
		return DirLeft
	case abs(delta.X) >= abs(delta.Y):
		return DirRight
	case delta.Y < 0:
		return DirUp
	default:
		return DirDown
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
