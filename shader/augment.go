package shader

import (
	"strings"

	"github.com/richinsley/goshaderview/uniforms"
)

// entryPoint marks a source that brings its own main.
const entryPoint = "void main("

// declaration is one uniform the augmenter may inject.
type declaration struct {
	name string
	glsl string
}

// declarations lists what gets injected, in header order.
var declarations = func() []declaration {
	d := make([]declaration, 0, len(uniforms.Semantics)+1)
	for _, s := range uniforms.Semantics {
		d = append(d, declaration{name: s.Canonical, glsl: s.Type.String()})
	}
	// sample texture bound to unit 0
	return append(d, declaration{name: "iChannel0", glsl: "sampler2D"})
}()

// Augmenter turns raw fragment text into a compilable program source.
type Augmenter struct {
	// Preamble starts the header of any source without a #version line.
	Preamble string
}

// Default uses the ESSL preamble.
var Default = Augmenter{Preamble: PreambleESSL}

// Augment runs the default augmenter.
func Augment(text string) string {
	return Default.Augment(text)
}

// Augment declares every standard uniform the text uses but does not declare,
// and appends a main that calls mainImage when the text has none. Detection
// is plain substring containment, so running it on its own output changes
// nothing.
func (a Augmenter) Augment(text string) string {
	var header strings.Builder
	for _, d := range declarations {
		if strings.Contains(text, d.name) && !declares(text, d.name) {
			header.WriteString("uniform " + d.glsl + " " + d.name + ";\n")
		}
	}

	body := text
	switch {
	case !hasVersion(text):
		body = a.Preamble + header.String() + text
	case header.Len() > 0:
		// #version has to stay the first directive
		at := strings.Index(text, "#version")
		end := strings.IndexByte(text[at:], '\n')
		if end < 0 {
			body = text + "\n" + header.String()
		} else {
			end += at + 1
			body = text[:end] + header.String() + text[end:]
		}
	}

	if !strings.Contains(body, entryPoint) {
		body += GetMain()
	}
	return body
}

// declares reports whether some line mentions both "uniform" and name.
func declares(text, name string) bool {
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "uniform") && strings.Contains(line, name) {
			return true
		}
	}
	return false
}

func hasVersion(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, " \t\r\n"), "#version")
}
