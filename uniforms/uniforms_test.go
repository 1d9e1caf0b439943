package uniforms_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goshaderview/graphics/fakegl"
	"github.com/richinsley/goshaderview/program"
	"github.com/richinsley/goshaderview/uniforms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type locations map[string]int32

func (l locations) UniformLocation(name string) int32 {
	if loc, ok := l[name]; ok {
		return loc
	}
	return uniforms.Absent
}

type recorder struct {
	calls map[int32][]float32
	n     int
}

func (r *recorder) record(loc int32, v ...float32) {
	if r.calls == nil {
		r.calls = make(map[int32][]float32)
	}
	r.calls[loc] = v
	r.n++
}

func (r *recorder) Uniform1f(loc int32, v float32)          { r.record(loc, v) }
func (r *recorder) Uniform2f(loc int32, x, y float32)       { r.record(loc, x, y) }
func (r *recorder) Uniform4f(loc int32, x, y, z, w float32) { r.record(loc, x, y, z, w) }

func TestResolveCanonical(t *testing.T) {
	prog := locations{"iResolution": 3, "iTime": 1, "iMouse": 7}
	table := uniforms.Resolve(prog, "uniform vec2 iResolution; uniform float iTime; uniform vec4 iMouse;")

	assert.Equal(t, int32(3), table.Lookup(uniforms.Resolution).Location)
	assert.Equal(t, "iResolution", table.Lookup(uniforms.Resolution).Declared)
	assert.Equal(t, int32(1), table.Lookup(uniforms.Time).Location)
	assert.Equal(t, int32(7), table.Lookup(uniforms.Pointer).Location)
	assert.Equal(t, 3, table.BoundCount())
}

func TestResolveAlias(t *testing.T) {
	prog := locations{"resolution": 0, "time": 2, "mouse": 4}
	table := uniforms.Resolve(prog, "uniform vec2 resolution; uniform float time; uniform vec2 mouse;")

	assert.Equal(t, "resolution", table.Lookup(uniforms.Resolution).Declared)
	assert.Equal(t, int32(0), table.Lookup(uniforms.Resolution).Location)
	assert.True(t, table.Lookup(uniforms.Resolution).Bound())
	assert.Equal(t, "time", table.Lookup(uniforms.Time).Declared)
	assert.Equal(t, "mouse", table.Lookup(uniforms.Pointer).Declared)
	assert.Equal(t, 3, table.BoundCount())
}

func TestResolveAbsent(t *testing.T) {
	prog := locations{"iTime": 0}
	table := uniforms.Resolve(prog, "void mainImage(out vec4 o, vec2 p) { o = vec4(0); }")

	for _, b := range table {
		assert.False(t, b.Bound(), b.Name.String())
		assert.Empty(t, b.Declared)
		assert.Equal(t, uniforms.Absent, b.Location)
	}
}

func TestResolveOptimisedAway(t *testing.T) {
	table := uniforms.Resolve(locations{}, "uniform float iTime;")

	b := table.Lookup(uniforms.Time)
	assert.Equal(t, "iTime", b.Declared)
	assert.False(t, b.Bound())
}

func TestPushSkipsUnbound(t *testing.T) {
	table := uniforms.Resolve(locations{"iTime": 5, "iMouse": 9}, "iTime iMouse")
	var r recorder

	table.Push(&r, uniforms.Values{
		Resolution: mgl32.Vec2{640, 480},
		Time:       1.5,
		Pointer:    mgl32.Vec4{10, 20, -1, -2},
	})

	assert.Equal(t, 2, r.n)
	assert.Equal(t, []float32{1.5}, r.calls[5])
	assert.Equal(t, []float32{10, 20, -1, -2}, r.calls[9])
}

func TestPushUnboundTable(t *testing.T) {
	table := uniforms.Unbound()
	var r recorder
	table.Push(&r, uniforms.Values{Time: 3})
	assert.Zero(t, r.n)
}

func TestTypes(t *testing.T) {
	assert.Equal(t, "vec2", uniforms.Semantics[uniforms.Resolution].Type.String())
	assert.Equal(t, "float", uniforms.Semantics[uniforms.Time].Type.String())
	assert.Equal(t, "vec4", uniforms.Semantics[uniforms.Pointer].Type.String())
}

func TestResolveLinkedProgram(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		expect map[uniforms.Name]bool
	}{
		{
			name:   "all",
			src:    "void mainImage(out vec4 o, vec2 p) { o = vec4(p / iResolution, iTime, 1) + iMouse; }",
			expect: map[uniforms.Name]bool{uniforms.Resolution: true, uniforms.Time: true, uniforms.Pointer: true},
		},
		{
			name:   "time only",
			src:    "void mainImage(out vec4 o, vec2 p) { o = vec4(sin(iTime)); }",
			expect: map[uniforms.Name]bool{uniforms.Time: true},
		},
		{
			name:   "none",
			src:    "void mainImage(out vec4 o, vec2 p) { o = vec4(1); }",
			expect: map[uniforms.Name]bool{},
		},
		{
			name: "sandbox aliases",
			src: "#version 300 es\nprecision highp float;\nuniform float time;\nuniform vec2 resolution;\n" +
				"out vec4 c;\nvoid main() { c = vec4(gl_FragCoord.xy / resolution, sin(time), 1); }\n",
			expect: map[uniforms.Name]bool{uniforms.Resolution: true, uniforms.Time: true},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gl := fakegl.New()
			c := program.NewCompiler(gl)
			p, err := c.Load(tc.src)
			require.NoError(t, err)

			table := uniforms.Resolve(p, p.Source().Augmented)
			for _, s := range uniforms.Semantics {
				assert.Equal(t, tc.expect[s.Name], table.Lookup(s.Name).Bound(), s.Name.String())
			}

			table.Push(gl, uniforms.Values{Time: 2})
			assert.Len(t, gl.Uploads, len(tc.expect))
			assert.Empty(t, gl.Errors)
		})
	}
}
