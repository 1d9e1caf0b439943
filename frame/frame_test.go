package frame

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goshaderview/uniforms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTime struct{ t time.Duration }

func (f *fakeTime) now() time.Duration { return f.t }

type target struct {
	pushed  []uniforms.Values
	redraws int
}

func (t *target) Push(v uniforms.Values) { t.pushed = append(t.pushed, v) }
func (t *target) RequestRedraw()          { t.redraws++ }

func TestClockResetsOnLoad(t *testing.T) {
	ft := &fakeTime{t: 5 * time.Hour}
	c := NewClockFunc(ft.now)
	assert.Zero(t, c.Elapsed())

	ft.t += 90 * time.Second
	assert.Equal(t, 90*time.Second, c.Elapsed())
	assert.InDelta(t, 90.0, c.Seconds(), 1e-3)

	c.Reset()
	assert.Zero(t, c.Elapsed())
	ft.t += 250 * time.Millisecond
	assert.InDelta(t, 0.25, c.Seconds(), 1e-6)
}

func TestClockMonotonic(t *testing.T) {
	c := NewClock()
	time.Sleep(2 * time.Millisecond)
	first := c.Elapsed()
	assert.Greater(t, first, time.Duration(0))
	c.Reset()
	assert.Less(t, c.Elapsed(), first)
}

func TestPointerFlipsY(t *testing.T) {
	var p Pointer
	p.Move(100, 30)
	v := p.Vec4(480)
	assert.Equal(t, float32(100), v.X())
	assert.Equal(t, float32(450), v.Y())
}

func TestPointerClick(t *testing.T) {
	var p Pointer
	p.Move(10, 20)
	p.Button(true)
	p.Move(50, 60)
	assert.True(t, p.Down())
	assert.Equal(t, mgl32.Vec4{50, 40, 10, 80}, p.Vec4(100))

	p.Button(false)
	assert.Equal(t, mgl32.Vec4{50, 40, -10, -80}, p.Vec4(100))

	// holding the button does not move the click position
	p.Button(true)
	p.Move(70, 70)
	p.Button(true)
	assert.Equal(t, mgl32.Vec4{70, 30, 50, 40}, p.Vec4(100))
}

func TestDriverTick(t *testing.T) {
	ft := &fakeTime{}
	d := NewDriver(NewClockFunc(ft.now), 0)
	var tgt target

	s := &State{Width: 800, Height: 600}
	s.Pointer.Move(200, 100)
	ft.t = 1500 * time.Millisecond
	d.Tick(s, &tgt)

	require.Len(t, tgt.pushed, 1)
	v := tgt.pushed[0]
	assert.Equal(t, mgl32.Vec2{800, 600}, v.Resolution)
	assert.InDelta(t, 1.5, v.Time, 1e-6)
	assert.Equal(t, float32(200), v.Pointer.X())
	assert.Equal(t, float32(500), v.Pointer.Y())
	assert.Equal(t, 1, tgt.redraws)
	assert.Equal(t, v, d.Last())
}

func TestDriverDelayBounded(t *testing.T) {
	d := NewDriver(NewClock(), time.Second)
	assert.Equal(t, MaxTickDelay, d.Delay())
	assert.Equal(t, time.Duration(0), NewDriver(NewClock(), -time.Second).Delay())

	var slept []time.Duration
	d = NewDriver(NewClock(), 10*time.Millisecond)
	d.sleep = func(x time.Duration) { slept = append(slept, x) }
	var tgt target
	d.Tick(&State{}, &tgt)
	d.Tick(&State{}, &tgt)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 10 * time.Millisecond}, slept)
	assert.Equal(t, 2, tgt.redraws)
}
