// Package program builds fragment sources into GPU programs and keeps exactly
// one of them active at a time.
package program

import (
	"github.com/richinsley/goshaderview/graphics"
	"github.com/richinsley/goshaderview/logging"
	"github.com/richinsley/goshaderview/shader"
	"go.uber.org/zap"
)

// Translation is a source rewritten for the target driver. Names maps
// source-level identifiers to the ones in Code.
type Translation struct {
	Code  string
	Names map[string]string
}

// Translator rewrites an augmented source before it is compiled.
type Translator interface {
	Translate(source string) (*Translation, error)
}

// Compiler owns the compile/attach/link/activate lifecycle.
type Compiler struct {
	gl           graphics.Backend
	augmenter    shader.Augmenter
	translator   Translator
	vertexSource string
	vertex       uint32
	active       *Program
	log          *zap.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithTranslator runs every augmented source through t before compiling.
func WithTranslator(t Translator) Option {
	return func(c *Compiler) { c.translator = t }
}

// WithAugmenter replaces the default ESSL augmenter.
func WithAugmenter(a shader.Augmenter) Option {
	return func(c *Compiler) { c.augmenter = a }
}

// WithVertexSource replaces the full-screen quad vertex stage.
func WithVertexSource(src string) Option {
	return func(c *Compiler) { c.vertexSource = src }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Compiler) { c.log = l }
}

func NewCompiler(gl graphics.Backend, opts ...Option) *Compiler {
	c := &Compiler{
		gl:           gl,
		augmenter:    shader.Default,
		vertexSource: shader.GenerateVertexShader(false),
		log:          zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = logging.OrNop(c.log)
	return c
}

// Active returns the active program, nil before the first successful load.
func (c *Compiler) Active() *Program { return c.active }

// Ready reports whether a program has linked and is active.
func (c *Compiler) Ready() bool { return c.active != nil }

// Load augments raw, builds it into a new program and, only if every step
// succeeds, makes it the active program and releases the previous one. A
// *CompileError leaves the previous program active and releases every
// object created by the failed attempt.
func (c *Compiler) Load(raw string) (*Program, error) {
	p := &Program{gl: c.gl, state: StateCompiling}
	p.source.Raw = raw
	p.source.Augmented = c.augmenter.Augment(raw)
	p.source.Code = p.source.Augmented

	if c.translator != nil {
		tr, err := c.translator.Translate(p.source.Augmented)
		if err != nil {
			p.state = StateFailed
			return nil, &CompileError{Stage: StageCompile, Log: err.Error()}
		}
		p.source.Code = tr.Code
		p.names = tr.Names
	}

	if err := c.ensureVertex(); err != nil {
		p.state = StateFailed
		return nil, err
	}

	p.handle = c.gl.CreateProgram()
	p.fragment = c.gl.CreateShader(graphics.FragmentShader)
	if ok, log := c.gl.CompileShader(p.fragment, p.source.Code); !ok {
		p.state = StateFailed
		p.release()
		return nil, &CompileError{Stage: StageCompile, Log: log}
	}

	p.vertex = c.vertex
	c.gl.AttachShader(p.handle, p.vertex)
	c.gl.AttachShader(p.handle, p.fragment)
	p.attached = true
	if ok, log := c.gl.LinkProgram(p.handle); !ok {
		p.state = StateFailed
		p.release()
		return nil, &CompileError{Stage: StageLink, Log: log}
	}
	p.state = StateLinked

	c.gl.UseProgram(p.handle)
	old := c.active
	p.state = StateActive
	c.active = p
	if old != nil {
		c.retire(old)
	}
	c.log.Debug("program linked", zap.Uint32("program", p.handle), zap.Int("bytes", len(p.source.Code)))
	return p, nil
}

// Enable makes the active program current for the next draw.
func (c *Compiler) Enable() error {
	if c.active == nil {
		return ErrNotReady
	}
	c.gl.UseProgram(c.active.handle)
	return nil
}

// Close releases the active program and the shared vertex shader.
func (c *Compiler) Close() {
	if c.active != nil {
		c.gl.UseProgram(0)
		c.retire(c.active)
		c.active = nil
	}
	if c.vertex != 0 {
		c.gl.DeleteShader(c.vertex)
		c.vertex = 0
	}
}

func (c *Compiler) retire(p *Program) {
	c.log.Debug("releasing program", zap.Uint32("program", p.handle))
	p.release()
	p.state = StateReleased
}

func (c *Compiler) ensureVertex() error {
	if c.vertex != 0 {
		return nil
	}
	v := c.gl.CreateShader(graphics.VertexShader)
	if ok, log := c.gl.CompileShader(v, c.vertexSource); !ok {
		c.gl.DeleteShader(v)
		return &CompileError{Stage: StageCompile, Log: "vertex shader: " + log}
	}
	c.vertex = v
	return nil
}
