package program

import (
	"github.com/richinsley/goshaderview/graphics"
	"github.com/richinsley/goshaderview/uniforms"
)

// State is the lifecycle position of a Program.
type State int

const (
	StateUninitialized State = iota
	StateCompiling
	StateLinked
	StateActive
	StateFailed
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCompiling:
		return "compiling"
	case StateLinked:
		return "linked"
	case StateActive:
		return "active"
	case StateFailed:
		return "failed"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Source is one shader file's text at load time and what was derived from it.
type Source struct {
	Raw       string
	Augmented string
	// Code is what was handed to the driver: the augmented text, or its
	// translation.
	Code string
}

// Program owns one GPU program object and the fragment shader attached to it.
type Program struct {
	gl       graphics.Backend
	handle   uint32
	fragment uint32
	vertex   uint32
	attached bool
	names    map[string]string
	source   Source
	state    State
}

var _ uniforms.Locator = (*Program)(nil)

func (p *Program) Handle() uint32 { return p.handle }
func (p *Program) State() State   { return p.state }
func (p *Program) Source() Source { return p.source }

// UniformLocation resolves a source-level uniform name. When the source was
// translated the name is mapped first; a name the translator dropped is
// reported as not present.
func (p *Program) UniformLocation(name string) int32 {
	if p.state != StateLinked && p.state != StateActive {
		return uniforms.Absent
	}
	if p.names != nil {
		mapped, ok := p.names[name]
		if !ok {
			return uniforms.Absent
		}
		name = mapped
	}
	return p.gl.GetUniformLocation(p.handle, name)
}

// release detaches and deletes everything the program owns. The shared
// vertex shader is only detached.
func (p *Program) release() {
	if p.handle == 0 {
		return
	}
	if p.attached {
		if p.vertex != 0 {
			p.gl.DetachShader(p.handle, p.vertex)
		}
		if p.fragment != 0 {
			p.gl.DetachShader(p.handle, p.fragment)
		}
	}
	if p.fragment != 0 {
		p.gl.DeleteShader(p.fragment)
	}
	p.gl.DeleteProgram(p.handle)
	p.handle, p.fragment, p.vertex = 0, 0, 0
	p.attached = false
}
