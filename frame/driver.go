package frame

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goshaderview/uniforms"
)

// MaxTickDelay bounds the pause between ticks so window events keep flowing.
const MaxTickDelay = 50 * time.Millisecond

// State is what the window last reported: framebuffer size and pointer.
type State struct {
	Width, Height int
	Pointer       Pointer
}

// Target receives the values of each tick.
type Target interface {
	Push(v uniforms.Values)
	RequestRedraw()
}

// Driver recomputes the standard inputs once per tick.
type Driver struct {
	clock *Clock
	delay time.Duration
	sleep func(time.Duration)
	last  uniforms.Values
}

// NewDriver returns a driver reading clock. delay is clamped to
// [0, MaxTickDelay].
func NewDriver(clock *Clock, delay time.Duration) *Driver {
	if delay < 0 {
		delay = 0
	}
	if delay > MaxTickDelay {
		delay = MaxTickDelay
	}
	return &Driver{clock: clock, delay: delay, sleep: time.Sleep}
}

// Clock returns the clock the driver reads.
func (d *Driver) Clock() *Clock { return d.clock }

// Delay returns the effective pause between ticks.
func (d *Driver) Delay() time.Duration { return d.delay }

// Last returns the values pushed by the most recent tick.
func (d *Driver) Last() uniforms.Values { return d.last }

// Tick pauses for the configured delay, then pushes time since load,
// framebuffer size and pointer to t and asks it to redraw.
func (d *Driver) Tick(s *State, t Target) {
	if d.delay > 0 {
		d.sleep(d.delay)
	}
	v := uniforms.Values{
		Resolution: mgl32.Vec2{float32(s.Width), float32(s.Height)},
		Time:       d.clock.Seconds(),
		Pointer:    s.Pointer.Vec4(s.Height),
	}
	d.last = v
	t.Push(v)
	t.RequestRedraw()
}
