// Package fakegl is an in-memory graphics.Backend. It keeps the object
// bookkeeping of a real driver (names, attachment, link state, active
// uniforms) so lifecycle code can be tested without a GPU.
package fakegl

import (
	"fmt"
	"image"
	"regexp"
	"sort"
	"strings"

	"github.com/richinsley/goshaderview/graphics"
)

// Markers that make the fake driver reject a source.
const (
	CompileFailMarker = "#error"
	LinkFailMarker    = "FAKEGL_LINK_ERROR"
)

var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)

type Shader struct {
	Kind     graphics.ShaderKind
	Source   string
	Compiled bool
}

type Program struct {
	Attached map[uint32]bool
	Linked   bool
	Uniforms map[string]int32
}

// Upload is one uniform call as seen by the driver.
type Upload struct {
	Program  uint32
	Location int32
	Values   []float32
}

// Backend implements graphics.Backend.
type Backend struct {
	next     uint32
	shaders  map[uint32]*Shader
	programs map[uint32]*Program
	textures map[uint32]image.Point

	Current      uint32
	Bound        map[int]uint32
	Uploads      []Upload
	Draws        int
	Clears       int
	ViewportSize image.Point

	// Errors collects calls a real driver would reject with GL_INVALID_*.
	Errors []string
}

var _ graphics.Backend = (*Backend)(nil)

func New() *Backend {
	return &Backend{
		shaders:  make(map[uint32]*Shader),
		programs: make(map[uint32]*Program),
		textures: make(map[uint32]image.Point),
		Bound:    make(map[int]uint32),
	}
}

func (b *Backend) name() uint32 {
	b.next++
	return b.next
}

func (b *Backend) errorf(format string, args ...interface{}) {
	b.Errors = append(b.Errors, fmt.Sprintf(format, args...))
}

func (b *Backend) CreateProgram() uint32 {
	n := b.name()
	b.programs[n] = &Program{Attached: make(map[uint32]bool), Uniforms: make(map[string]int32)}
	return n
}

func (b *Backend) DeleteProgram(program uint32) {
	if _, ok := b.programs[program]; !ok {
		b.errorf("DeleteProgram(%d): no such program", program)
		return
	}
	delete(b.programs, program)
}

func (b *Backend) CreateShader(kind graphics.ShaderKind) uint32 {
	n := b.name()
	b.shaders[n] = &Shader{Kind: kind}
	return n
}

func (b *Backend) DeleteShader(shader uint32) {
	if _, ok := b.shaders[shader]; !ok {
		b.errorf("DeleteShader(%d): no such shader", shader)
		return
	}
	delete(b.shaders, shader)
}

func (b *Backend) CompileShader(shader uint32, source string) (bool, string) {
	s, ok := b.shaders[shader]
	if !ok {
		b.errorf("CompileShader(%d): no such shader", shader)
		return false, "invalid shader"
	}
	s.Source = source
	if i := strings.Index(source, CompileFailMarker); i >= 0 {
		line := strings.Count(source[:i], "\n") + 1
		return false, fmt.Sprintf("ERROR: 0:%d: '#error' : user error", line)
	}
	s.Compiled = true
	return true, ""
}

func (b *Backend) AttachShader(program, shader uint32) {
	p, ok := b.programs[program]
	if !ok {
		b.errorf("AttachShader(%d, %d): no such program", program, shader)
		return
	}
	if _, ok := b.shaders[shader]; !ok {
		b.errorf("AttachShader(%d, %d): no such shader", program, shader)
		return
	}
	p.Attached[shader] = true
}

func (b *Backend) DetachShader(program, shader uint32) {
	p, ok := b.programs[program]
	if !ok {
		b.errorf("DetachShader(%d, %d): no such program", program, shader)
		return
	}
	if !p.Attached[shader] {
		b.errorf("DetachShader(%d, %d): not attached", program, shader)
		return
	}
	delete(p.Attached, shader)
}

// LinkProgram marks as active every declared uniform that is also used
// somewhere else in the attached sources.
func (b *Backend) LinkProgram(program uint32) (bool, string) {
	p, ok := b.programs[program]
	if !ok {
		b.errorf("LinkProgram(%d): no such program", program)
		return false, "invalid program"
	}
	var sources []string
	for id := range p.Attached {
		s := b.shaders[id]
		if s == nil || !s.Compiled {
			return false, fmt.Sprintf("ERROR: shader %d not compiled", id)
		}
		sources = append(sources, s.Source)
	}
	all := strings.Join(sources, "\n")
	if strings.Contains(all, LinkFailMarker) {
		return false, "ERROR: Linking failed: " + LinkFailMarker
	}

	var names []string
	for _, m := range uniformDecl.FindAllStringSubmatch(all, -1) {
		if strings.Count(all, m[1]) > 1 {
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	p.Uniforms = make(map[string]int32, len(names))
	for _, n := range names {
		if _, dup := p.Uniforms[n]; !dup {
			p.Uniforms[n] = int32(len(p.Uniforms))
		}
	}
	p.Linked = true
	return true, ""
}

func (b *Backend) UseProgram(program uint32) {
	if program != 0 {
		p, ok := b.programs[program]
		if !ok || !p.Linked {
			b.errorf("UseProgram(%d): program not linked", program)
			return
		}
	}
	b.Current = program
}

func (b *Backend) GetUniformLocation(program uint32, name string) int32 {
	p, ok := b.programs[program]
	if !ok || !p.Linked {
		b.errorf("GetUniformLocation(%d, %q): program not linked", program, name)
		return -1
	}
	if loc, ok := p.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (b *Backend) upload(location int32, v ...float32) {
	if b.Current == 0 {
		b.errorf("Uniform(%d): no program in use", location)
		return
	}
	b.Uploads = append(b.Uploads, Upload{Program: b.Current, Location: location, Values: v})
}

func (b *Backend) Uniform1f(location int32, v float32)          { b.upload(location, v) }
func (b *Backend) Uniform2f(location int32, x, y float32)       { b.upload(location, x, y) }
func (b *Backend) Uniform4f(location int32, x, y, z, w float32) { b.upload(location, x, y, z, w) }

func (b *Backend) CreateTexture(img *image.RGBA) uint32 {
	n := b.name()
	b.textures[n] = img.Rect.Size()
	return n
}

func (b *Backend) BindTexture(unit int, texture uint32) {
	if _, ok := b.textures[texture]; !ok && texture != 0 {
		b.errorf("BindTexture(%d, %d): no such texture", unit, texture)
		return
	}
	b.Bound[unit] = texture
}

func (b *Backend) DeleteTexture(texture uint32) {
	if _, ok := b.textures[texture]; !ok {
		b.errorf("DeleteTexture(%d): no such texture", texture)
		return
	}
	delete(b.textures, texture)
}

func (b *Backend) Viewport(width, height int) {
	b.ViewportSize = image.Pt(width, height)
}

func (b *Backend) Clear() { b.Clears++ }

func (b *Backend) DrawQuad() {
	if b.Current == 0 {
		b.errorf("DrawQuad: no program in use")
		return
	}
	b.Draws++
}

// LivePrograms returns the number of program objects not yet deleted.
func (b *Backend) LivePrograms() int { return len(b.programs) }

// LiveShaders returns the number of shader objects not yet deleted.
func (b *Backend) LiveShaders() int { return len(b.shaders) }

// LiveTextures returns the number of texture objects not yet deleted.
func (b *Backend) LiveTextures() int { return len(b.textures) }

// Program returns the driver state of a live program.
func (b *Backend) Program(program uint32) (*Program, bool) {
	p, ok := b.programs[program]
	return p, ok
}

// Shader returns the driver state of a live shader.
func (b *Backend) Shader(shader uint32) (*Shader, bool) {
	s, ok := b.shaders[shader]
	return s, ok
}

// UploadsTo returns the uploads made to location while program was in use.
func (b *Backend) UploadsTo(program uint32, location int32) []Upload {
	var out []Upload
	for _, u := range b.Uploads {
		if u.Program == program && u.Location == location {
			out = append(out, u)
		}
	}
	return out
}
