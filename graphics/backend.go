package graphics

import "image"

// ShaderKind selects the pipeline stage of a shader object.
type ShaderKind int

const (
	VertexShader ShaderKind = iota
	FragmentShader
)

func (k ShaderKind) String() string {
	if k == VertexShader {
		return "vertex"
	}
	return "fragment"
}

// Backend is the set of GPU primitives the previewer is built on. Handles
// are plain object names; zero is never a valid handle.
type Backend interface {
	CreateProgram() uint32
	DeleteProgram(program uint32)
	CreateShader(kind ShaderKind) uint32
	DeleteShader(shader uint32)

	// CompileShader sets the source of shader and compiles it. On failure
	// ok is false and log holds the driver diagnostics.
	CompileShader(shader uint32, source string) (ok bool, log string)
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	// LinkProgram links program. On failure ok is false and log holds the
	// driver diagnostics.
	LinkProgram(program uint32) (ok bool, log string)
	UseProgram(program uint32)

	GetUniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, x, y float32)
	Uniform4f(location int32, x, y, z, w float32)

	CreateTexture(img *image.RGBA) uint32
	BindTexture(unit int, texture uint32)
	DeleteTexture(texture uint32)

	Viewport(width, height int)
	Clear()
	DrawQuad()
}
