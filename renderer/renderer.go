// Package renderer owns the previewer state: the active program, its
// uniform bindings, the file selection and the window inputs. Every method
// runs on the thread that owns the GL context.
package renderer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/richinsley/goshaderview/cycler"
	"github.com/richinsley/goshaderview/frame"
	"github.com/richinsley/goshaderview/graphics"
	"github.com/richinsley/goshaderview/inputs"
	"github.com/richinsley/goshaderview/logging"
	"github.com/richinsley/goshaderview/program"
	"github.com/richinsley/goshaderview/uniforms"
	"go.uber.org/zap"
)

// ErrMissingFile is returned when a selected shader file does not exist.
var ErrMissingFile = errors.New("shader file not found")

// FileWatcher reports saves of the file passed to Watch.
type FileWatcher interface {
	Watch(path string) error
	Changes() <-chan string
}

type Renderer struct {
	gl       graphics.Backend
	context  graphics.Context
	compiler *program.Compiler
	table    uniforms.Table
	files    *cycler.Cycler
	driver   *frame.Driver
	state    frame.State
	channel  inputs.IChannel
	watcher  FileWatcher
	redraw   bool
	loaded   string
	readFile func(string) ([]byte, error)
	log      *zap.Logger
}

var (
	_ graphics.EventHandler = (*Renderer)(nil)
	_ frame.Target          = (*Renderer)(nil)
)

func NewRenderer(gl graphics.Backend, compiler *program.Compiler, files *cycler.Cycler, driver *frame.Driver, log *zap.Logger) *Renderer {
	return &Renderer{
		gl:       gl,
		compiler: compiler,
		table:    uniforms.Unbound(),
		files:    files,
		driver:   driver,
		readFile: os.ReadFile,
		log:      logging.OrNop(log),
	}
}

// SetContext attaches the window and takes its framebuffer size.
func (r *Renderer) SetContext(ctx graphics.Context) {
	r.context = ctx
	r.state.Width, r.state.Height = ctx.GetFramebufferSize()
}

// SetChannel binds ch to texture unit 0 for every draw.
func (r *Renderer) SetChannel(ch inputs.IChannel) { r.channel = ch }

// SetWatcher enables reloading the current file when it is saved.
func (r *Renderer) SetWatcher(w FileWatcher) { r.watcher = w }

// Bindings returns the uniform table of the active program.
func (r *Renderer) Bindings() uniforms.Table { return r.table }

// Loaded returns the path of the file the active program was built from.
func (r *Renderer) Loaded() string { return r.loaded }

// State returns the window inputs as last reported.
func (r *Renderer) State() frame.State { return r.state }

// Start lists the shader directory and loads the first shader: initial if
// given, otherwise the first file of the listing. A missing or broken
// initial shader is logged and leaves the window blank until another one
// loads.
func (r *Renderer) Start(initial string) {
	if err := r.files.Load(); err != nil {
		r.log.Warn("shader cycling disabled", zap.Error(err))
	} else {
		r.log.Info("found shaders", zap.String("dir", r.files.Dir()), zap.Int("count", len(r.files.Files())))
	}

	if initial != "" {
		r.files.SetCurrent(initial)
		r.tryLoad(initial)
		return
	}
	r.Next()
}

// Next loads the file after the current one.
func (r *Renderer) Next() {
	r.cycle(r.files.Next)
}

// Previous loads the file before the current one.
func (r *Renderer) Previous() {
	r.cycle(r.files.Previous)
}

func (r *Renderer) cycle(step func() (string, bool)) {
	path, ok := step()
	if !ok {
		r.log.Warn("no shaders to cycle through", zap.String("dir", r.files.Dir()))
		return
	}
	r.tryLoad(path)
}

// tryLoad watches and loads path and logs failures; the previous program
// stays on screen. The file is watched even when it fails to build so that
// fixing it reloads it.
func (r *Renderer) tryLoad(path string) {
	if r.watcher != nil {
		if err := r.watcher.Watch(path); err != nil {
			r.log.Warn("hot reload unavailable", zap.String("file", path), zap.Error(err))
		}
	}
	err := r.LoadFile(path)
	var ce *program.CompileError
	switch {
	case err == nil:
	case errors.As(err, &ce):
		r.log.Error("shader build failed", zap.String("file", path), zap.Stringer("stage", ce.Stage))
		fmt.Fprintln(os.Stderr, ce.Log)
	default:
		r.log.Error("failed to load shader", zap.Error(err))
	}
}

// LoadFile reads path, builds it and, on success, makes it the active
// program, re-resolves the uniform bindings and restarts the clock.
func (r *Renderer) LoadFile(path string) error {
	data, err := r.readFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMissingFile, path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	p, err := r.compiler.Load(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	r.table = uniforms.Resolve(p, p.Source().Augmented)
	r.driver.Clock().Reset()
	r.loaded = path
	r.redraw = true

	if r.context != nil {
		r.context.SetTitle("goshaderview - " + filepath.Base(path))
	}

	fields := []zap.Field{zap.String("file", path)}
	for _, b := range r.table {
		if b.Bound() {
			fields = append(fields, zap.Int32(b.Declared, b.Location))
		}
	}
	r.log.Info("loaded shader", fields...)
	return nil
}

// OnAction implements graphics.EventHandler.
func (r *Renderer) OnAction(a graphics.Action) {
	r.log.Debug("key action", zap.Stringer("action", a))
	switch a {
	case graphics.ActionQuit:
		if r.context != nil {
			r.context.SetShouldClose(true)
		}
	case graphics.ActionToggleFullscreen:
		if r.context != nil {
			r.context.ToggleFullscreen()
		}
	case graphics.ActionNext:
		r.Next()
	case graphics.ActionPrevious:
		r.Previous()
	}
	r.redraw = true
}

// OnPointerMove implements graphics.EventHandler.
func (r *Renderer) OnPointerMove(x, y float64) {
	r.state.Pointer.Move(x, y)
}

// OnPointerButton implements graphics.EventHandler.
func (r *Renderer) OnPointerButton(down bool) {
	r.state.Pointer.Button(down)
}

// OnResize implements graphics.EventHandler.
func (r *Renderer) OnResize(width, height int) {
	r.state.Width, r.state.Height = width, height
	r.redraw = true
}

// Push implements frame.Target. Values go to the active program only.
func (r *Renderer) Push(v uniforms.Values) {
	if !r.compiler.Ready() {
		return
	}
	if err := r.compiler.Enable(); err != nil {
		return
	}
	r.table.Push(r.gl, v)
}

// RequestRedraw implements frame.Target.
func (r *Renderer) RequestRedraw() { r.redraw = true }

// Tick reloads the current file if it was saved, then runs the frame
// driver.
func (r *Renderer) Tick() {
	if r.watcher != nil {
		select {
		case path := <-r.watcher.Changes():
			if sameFile(path, r.files.Current()) {
				r.log.Info("reloading", zap.String("file", path))
				r.tryLoad(path)
			}
		default:
		}
	}
	r.driver.Tick(&r.state, r)
}

// Draw renders one frame if one was requested. With no program loaded only
// the clear happens.
func (r *Renderer) Draw() (bool, error) {
	if !r.redraw {
		return false, nil
	}
	r.redraw = false
	r.gl.Viewport(r.state.Width, r.state.Height)
	r.gl.Clear()
	if !r.compiler.Ready() {
		return true, nil
	}
	if err := r.compiler.Enable(); err != nil {
		return true, err
	}
	if r.channel != nil {
		r.gl.BindTexture(0, r.channel.GetTextureID())
	}
	r.gl.DrawQuad()
	return true, nil
}

// Run ticks and draws until the window is asked to close.
func (r *Renderer) Run() error {
	for !r.context.ShouldClose() {
		r.Tick()
		drawn, err := r.Draw()
		if err != nil {
			return err
		}
		if drawn {
			r.context.EndFrame()
		} else {
			r.context.PollEvents()
		}
	}
	return nil
}

// Shutdown releases the program and the input texture.
func (r *Renderer) Shutdown() {
	if r.channel != nil {
		r.channel.Destroy()
	}
	r.compiler.Close()
	r.table = uniforms.Unbound()
}

func sameFile(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}
