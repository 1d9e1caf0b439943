// Package frame drives the per-tick update of the standard shader inputs.
package frame

import (
	"time"

	"github.com/loov/hrtime"
)

// Clock measures monotonic time since the active program was loaded.
type Clock struct {
	now   func() time.Duration
	start time.Duration
}

// NewClock returns a clock backed by hrtime, started now.
func NewClock() *Clock {
	return NewClockFunc(hrtime.Now)
}

// NewClockFunc returns a clock reading now, which must be monotonic.
func NewClockFunc(now func() time.Duration) *Clock {
	c := &Clock{now: now}
	c.Reset()
	return c
}

// Reset restarts the clock. Called on every successful program load.
func (c *Clock) Reset() {
	c.start = c.now()
}

// Elapsed returns the time since the last Reset.
func (c *Clock) Elapsed() time.Duration {
	return c.now() - c.start
}

// Seconds returns Elapsed as the float a shader's time uniform expects.
func (c *Clock) Seconds() float32 {
	return float32(c.Elapsed().Seconds())
}
