// Package glbackend implements graphics.Backend on desktop OpenGL 4.1 core.
// Every method must be called on the thread that owns the context.
package glbackend

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshaderview/graphics"
)

var glInitOnce sync.Once

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// Backend owns the full-screen quad and forwards everything else to gl.
type Backend struct {
	quadVAO uint32
	quadVBO uint32
}

var _ graphics.Backend = (*Backend)(nil)

// New loads the GL entry points for the current context and uploads the
// quad. The context has to be current.
func New() (*Backend, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}

	b := &Backend{}
	gl.GenVertexArrays(1, &b.quadVAO)
	gl.GenBuffers(1, &b.quadVBO)
	gl.BindVertexArray(b.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return b, nil
}

// Version returns the GL_VERSION and GL_SHADING_LANGUAGE_VERSION strings.
func (b *Backend) Version() (string, string) {
	return gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))
}

// Destroy releases the quad.
func (b *Backend) Destroy() {
	gl.DeleteBuffers(1, &b.quadVBO)
	gl.DeleteVertexArrays(1, &b.quadVAO)
}

func (b *Backend) CreateProgram() uint32        { return gl.CreateProgram() }
func (b *Backend) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (b *Backend) DeleteShader(shader uint32)   { gl.DeleteShader(shader) }

func (b *Backend) CreateShader(kind graphics.ShaderKind) uint32 {
	if kind == graphics.VertexShader {
		return gl.CreateShader(gl.VERTEX_SHADER)
	}
	return gl.CreateShader(gl.FRAGMENT_SHADER)
}

func (b *Backend) CompileShader(shader uint32, source string) (bool, string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		return false, logText
	}
	return true, ""
}

func (b *Backend) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (b *Backend) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

func (b *Backend) LinkProgram(program uint32) (bool, string) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return false, log
	}
	return true, ""
}

func (b *Backend) UseProgram(program uint32) { gl.UseProgram(program) }

func (b *Backend) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (b *Backend) Uniform1f(location int32, v float32)    { gl.Uniform1f(location, v) }
func (b *Backend) Uniform2f(location int32, x, y float32) { gl.Uniform2f(location, x, y) }
func (b *Backend) Uniform4f(location int32, x, y, z, w float32) {
	gl.Uniform4f(location, x, y, z, w)
}

// CreateTexture uploads img as an RGBA8 texture with linear filtering and
// repeat wrapping.
func (b *Backend) CreateTexture(img *image.RGBA) uint32 {
	size := img.Rect.Size()

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return textureID
}

func (b *Backend) BindTexture(unit int, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (b *Backend) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

func (b *Backend) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (b *Backend) Clear() {
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (b *Backend) DrawQuad() {
	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(b.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}
