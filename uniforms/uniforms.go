// Package uniforms negotiates the standard shader inputs (resolution, time,
// pointer) against whatever a compiled program actually declares.
package uniforms

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Absent is the location recorded for an input the program does not declare.
const Absent int32 = -1

// Type is the GLSL type a standard input is uploaded as.
type Type int

const (
	Float Type = iota
	Vec2
	Vec4
)

func (t Type) String() string {
	switch t {
	case Float:
		return "float"
	case Vec2:
		return "vec2"
	case Vec4:
		return "vec4"
	default:
		return "unknown"
	}
}

// Name identifies one of the standard inputs.
type Name int

const (
	Resolution Name = iota
	Time
	Pointer

	numNames
)

func (n Name) String() string {
	switch n {
	case Resolution:
		return "resolution"
	case Time:
		return "time"
	case Pointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// Semantic ties a standard input to the GLSL names it may be declared under.
type Semantic struct {
	Name      Name
	Canonical string
	Alias     string
	Type      Type
}

// Semantics is iterated in order by Resolve. Only Canonical spellings are
// ever injected by the source augmenter.
var Semantics = [numNames]Semantic{
	{Name: Resolution, Canonical: "iResolution", Alias: "resolution", Type: Vec2},
	{Name: Time, Canonical: "iTime", Alias: "time", Type: Float},
	{Name: Pointer, Canonical: "iMouse", Alias: "mouse", Type: Vec4},
}

// Values holds one frame's worth of standard inputs.
type Values struct {
	Resolution mgl32.Vec2
	Time       float32
	Pointer    mgl32.Vec4
}

// Locator looks up a uniform location in a linked program. A negative result
// means the uniform is not active in the program.
type Locator interface {
	UniformLocation(name string) int32
}

// Uploader sends uniform values to the currently used program.
type Uploader interface {
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, x, y float32)
	Uniform4f(location int32, x, y, z, w float32)
}

// Binding is the resolved state of one standard input.
type Binding struct {
	Semantic
	// Declared is the GLSL name found in the source, empty if neither
	// spelling occurs.
	Declared string
	Location int32
}

// Bound reports whether the input has a usable location.
func (b Binding) Bound() bool {
	return b.Location >= 0
}

// Table maps every standard input to its binding for one program.
type Table [numNames]Binding

// Unbound returns a table with every input absent, which is what a frame
// uses before any program has loaded.
func Unbound() Table {
	var t Table
	for i, s := range Semantics {
		t[i] = Binding{Semantic: s, Location: Absent}
	}
	return t
}

// Resolve checks the shader text for each input's canonical name, then its
// alias, and looks up the location of the first one present. A declared
// uniform the linker optimised away resolves to Absent.
func Resolve(program Locator, text string) Table {
	t := Unbound()
	for i, s := range Semantics {
		var declared string
		switch {
		case strings.Contains(text, s.Canonical):
			declared = s.Canonical
		case strings.Contains(text, s.Alias):
			declared = s.Alias
		default:
			continue
		}
		t[i].Declared = declared
		if loc := program.UniformLocation(declared); loc >= 0 {
			t[i].Location = loc
		}
	}
	return t
}

// Lookup returns the binding for n.
func (t Table) Lookup(n Name) Binding {
	return t[n]
}

// BoundCount returns the number of inputs with a location.
func (t Table) BoundCount() int {
	n := 0
	for _, b := range t {
		if b.Bound() {
			n++
		}
	}
	return n
}

// Push uploads each bound input exactly once. Unbound inputs are skipped.
func (t *Table) Push(u Uploader, v Values) {
	for _, b := range t {
		if !b.Bound() {
			continue
		}
		switch b.Name {
		case Resolution:
			u.Uniform2f(b.Location, v.Resolution.X(), v.Resolution.Y())
		case Time:
			u.Uniform1f(b.Location, v.Time)
		case Pointer:
			u.Uniform4f(b.Location, v.Pointer.X(), v.Pointer.Y(), v.Pointer.Z(), v.Pointer.W())
		}
	}
}
