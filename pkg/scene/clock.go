package scene

import "time"

// Clock reports the time elapsed since the previous frame.
type Clock interface {
	DeltaSeconds() float64
}

// MaxDelta caps a single frame step so a stall (debugger, suspended
// terminal) does not make everything jump.
const MaxDelta = 0.1

// FrameClock measures wall time between Tick calls.
type FrameClock struct {
	now   func() time.Time
	last  time.Time
	delta float64
}

// NewFrameClock creates a clock whose first Tick measures from now.
func NewFrameClock() *FrameClock {
	return newFrameClock(time.Now)
}

func newFrameClock(now func() time.Time) *FrameClock {
	return &FrameClock{now: now, last: now()}
}

// Tick starts a new frame and returns its delta, clamped to MaxDelta.
func (c *FrameClock) Tick() float64 {
	t := c.now()
	c.delta = min(t.Sub(c.last).Seconds(), MaxDelta)
	if c.delta < 0 {
		c.delta = 0
	}
	c.last = t
	return c.delta
}

// DeltaSeconds returns the delta measured by the last Tick.
func (c *FrameClock) DeltaSeconds() float64 {
	return c.delta
}

// FixedClock always reports the same delta. Snapshots and tests use it.
type FixedClock float64

// DeltaSeconds returns c.
func (c FixedClock) DeltaSeconds() float64 {
	return float64(c)
}
