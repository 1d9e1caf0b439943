package frame

import "github.com/go-gl/mathgl/mgl32"

// Pointer tracks the cursor in framebuffer pixels and reports it in the
// bottom-left origin convention of gl_FragCoord.
//
// The z and w components hold the position of the last press; both are
// negated while the button is up.
type Pointer struct {
	x, y           float64
	clickX, clickY float64
	down           bool
}

// Move records a cursor position with a top-left origin.
func (p *Pointer) Move(x, y float64) {
	p.x, p.y = x, y
}

// Button records a button transition. A press latches the click position.
func (p *Pointer) Button(down bool) {
	if down && !p.down {
		p.clickX, p.clickY = p.x, p.y
	}
	p.down = down
}

// Down reports whether the button is held.
func (p *Pointer) Down() bool { return p.down }

// Vec4 returns the pointer for a framebuffer height in pixels.
func (p *Pointer) Vec4(height int) mgl32.Vec4 {
	h := float32(height)
	clickX := float32(p.clickX)
	clickY := h - float32(p.clickY)
	if !p.down {
		clickX, clickY = -clickX, -clickY
	}
	return mgl32.Vec4{float32(p.x), h - float32(p.y), clickX, clickY}
}
