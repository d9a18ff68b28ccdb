// Package clock provides the deferred-callback scheduler that drives all
// timed scene logic. Time only moves when the simulation advances it, so the
// whole scene runs on one goroutine and tests control time exactly.
package clock

import (
	"container/heap"
	"time"
)

// Clock is a tick-driven timer queue.
// Callbacks fire in deadline order; callbacks with equal deadlines fire in
// the order they were scheduled. A Clock is not safe for concurrent use.
type Clock struct {
	now    time.Duration
	seq    uint64
	timers timerQueue
}

// New creates a clock at time zero.
func New() *Clock {
	return &Clock{}
}

// Now returns the elapsed simulation time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// After schedules fn to run once d has elapsed.
// Negative durations are treated as zero. There is no cancellation: owners
// that need to abandon a callback guard it with their own state.
func (c *Clock) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	c.seq++
	heap.Push(&c.timers, &timer{at: c.now + d, seq: c.seq, fn: fn})
}

// Advance moves time forward by dt and fires every callback that became due.
// Callbacks scheduled during the advance fire in the same call when their
// deadline falls inside the window, including zero-delay callbacks.
func (c *Clock) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := c.now + dt
	for c.timers.Len() > 0 {
		next := c.timers[0]
		if next.at > target {
			break
		}
		heap.Pop(&c.timers)
		if next.at > c.now {
			c.now = next.at
		}
		next.fn()
	}
	c.now = target
}

// Flush fires pending callbacks with a zero-length advance.
func (c *Clock) Flush() {
	c.Advance(0)
}

// Pending returns the number of scheduled callbacks that have not fired.
func (c *Clock) Pending() int {
	return c.timers.Len()
}

type timer struct {
	at  time.Duration
	seq uint64
	fn  func()
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) {
	*q = append(*q, x.(*timer))
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
