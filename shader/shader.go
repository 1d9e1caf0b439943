package shader

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const vertexShaderSourceGLES = `#version 300 es
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// ────────────────────────────────── Preambles ──────────────────────────────────

// PreambleESSL is what raw fragment sources are prefixed with before they go
// through the translator.
const PreambleESSL = "#version 300 es\nprecision mediump float;\n"

// PreambleGL is used when sources are handed to a desktop core profile as is.
const PreambleGL = "#version 410 core\n"

// ────────────────────────────────── Public API ─────────────────────────────────

// GenerateVertexShader returns the full-screen quad vertex stage.
func GenerateVertexShader(isGLES bool) string {
	if isGLES {
		return vertexShaderSourceGLES
	}
	return vertexShaderSourceGL
}

// GetMain returns the entry point that forwards to a Shadertoy style
// mainImage function.
func GetMain() string {
	return `
out vec4 fragColor;
void main() { mainImage(fragColor, gl_FragCoord.xy); }
`
}
