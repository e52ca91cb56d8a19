// Package frame provides the per-frame clock and frame rate limiter.
package frame

import "time"

// DefaultMaxDelta caps a single frame's elapsed time, in seconds.
const DefaultMaxDelta = 0.25

// Clock measures elapsed seconds between frames. The value it returns is
// passed explicitly into every per-frame update.
type Clock struct {
	MaxDelta float32

	last   time.Time
	frames uint64
}

// NewClock creates a clock with the default delta cap.
func NewClock() *Clock {
	return &Clock{MaxDelta: DefaultMaxDelta}
}

// Tick records a frame at now and returns the seconds since the previous
// tick. The first tick returns 0; long stalls are capped at MaxDelta.
func (c *Clock) Tick(now time.Time) float32 {
	c.frames++
	if c.last.IsZero() {
		c.last = now
		return 0
	}

	dt := float32(now.Sub(c.last).Seconds())
	c.last = now
	if dt < 0 {
		return 0
	}
	if c.MaxDelta > 0 && dt > c.MaxDelta {
		return c.MaxDelta
	}
	return dt
}

// Frames returns the number of ticks so far.
func (c *Clock) Frames() uint64 {
	return c.frames
}
