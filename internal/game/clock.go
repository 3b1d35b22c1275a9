package game

import "sync/atomic"

// Clock is the session's monotonic logical clock. Every applied input
// event is stamped with a strictly increasing seq, which is what makes
// the journal replayable in the exact original order: no wall-clock
// timestamps, no races.
//
// Thread-safety: atomic, although the dispatcher's single-owner design
// means one goroutine normally calls Next.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific sequence number.
// Used when resuming a persisted session.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
