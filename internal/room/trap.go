package room

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/purgatory/internal/clock"
	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/logging"
)

// Default trap timing.
const (
	DefaultTrapMultiplier = 50 * time.Millisecond
	DefaultTrapFade       = 300 * time.Millisecond
)

// Wall is a trap wall spawned around the characters.
type Wall struct {
	Pos
	SpawnedAt time.Duration
	Fading    bool
	FadeAt    time.Duration
}

// Trap is the illusion trap: walls closing in one cell at a time, and the
// mirrored teardown once the riddle is answered.
type Trap struct {
	clock      *clock.Clock
	solved     func() bool
	multiplier time.Duration
	fade       time.Duration
	log        *log.Logger

	walls     []*Wall
	scheduled int
	gen       uint64
}

// NewTrap creates a trap. solved is checked whenever a spawn comes due; once
// it reports true no further walls appear.
func NewTrap(clk *clock.Clock, solved func() bool, multiplier, fade time.Duration, logger *log.Logger) *Trap {
	if multiplier <= 0 {
		multiplier = DefaultTrapMultiplier
	}
	if fade < 0 {
		fade = 0
	}
	return &Trap{
		clock:      clk,
		solved:     solved,
		multiplier: multiplier,
		fade:       fade,
		log:        logging.OrDiscard(logger).WithPrefix("trap"),
	}
}

// TrapInsideIllusion schedules a wall for every cell of area except those
// keep reports true for. The cell at column c and row r of area spawns after
// (c*rows + r + 1) * multiplier. It returns the number of spawns scheduled.
func (t *Trap) TrapInsideIllusion(area core.Rect, keep func(Pos) bool) int {
	gen := t.gen
	count := 0
	rows := area.H
	for c := 0; c < area.W; c++ {
		for r := 0; r < rows; r++ {
			p := Pos{Col: area.X + c, Row: area.Y + r}
			if keep != nil && keep(p) {
				continue
			}
			delay := time.Duration(c*rows+r+1) * t.multiplier
			t.clock.After(delay, func() { t.spawn(gen, p) })
			count++
		}
	}
	t.scheduled += count
	t.log.Debug("closing in", "walls", count)
	return count
}

func (t *Trap) spawn(gen uint64, p Pos) {
	if gen != t.gen {
		return
	}
	if t.solved != nil && t.solved() {
		return
	}
	t.walls = append(t.walls, &Wall{Pos: p, SpawnedAt: t.clock.Now()})
}

// ReleaseCharactersFromTrap fades out the walls spawned so far, in spawn
// order, wall i starting at i*multiplier, and removes each once faded.
// Spawns still pending are dropped. It returns the number of walls released.
func (t *Trap) ReleaseCharactersFromTrap() int {
	t.gen++
	t.scheduled = 0
	spawned := append([]*Wall(nil), t.walls...)

	for i, w := range spawned {
		start := time.Duration(i) * t.multiplier
		t.clock.After(start, func() {
			w.Fading = true
			w.FadeAt = t.clock.Now()
		})
		t.clock.After(start+t.fade, func() { t.remove(w) })
	}
	t.log.Debug("releasing", "walls", len(spawned))
	return len(spawned)
}

func (t *Trap) remove(w *Wall) {
	for i, cur := range t.walls {
		if cur == w {
			t.walls = append(t.walls[:i], t.walls[i+1:]...)
			return
		}
	}
}

// Reset drops every wall at once and cancels pending work.
func (t *Trap) Reset() {
	t.gen++
	t.walls = nil
	t.scheduled = 0
}

// Walls returns a copy of the walls currently standing.
func (t *Trap) Walls() []Wall {
	out := make([]Wall, len(t.walls))
	for i, w := range t.walls {
		out[i] = *w
	}
	return out
}

// Len returns the number of walls standing.
func (t *Trap) Len() int {
	return len(t.walls)
}

// Active reports whether the trap has been sprung and not yet released.
func (t *Trap) Active() bool {
	return len(t.walls) > 0 || t.scheduled > 0
}

// Blocks reports whether a standing wall occupies p.
func (t *Trap) Blocks(p Pos) bool {
	for _, w := range t.walls {
		if w.Pos == p {
			return true
		}
	}
	return false
}

// Opacity returns how solid w looks at the current time.
func (t *Trap) Opacity(w Wall) float64 {
	if !w.Fading {
		return 1
	}
	if t.fade <= 0 {
		return 0
	}
	elapsed := t.clock.Now() - w.FadeAt
	return core.ClampF(1-float64(elapsed)/float64(t.fade), 0, 1)
}
