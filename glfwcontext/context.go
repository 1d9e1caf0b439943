package glfwcontext

import (
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/goshaderview/graphics"
	"github.com/richinsley/goshaderview/options"
)

// keyActions maps keys to previewer commands.
var keyActions = map[glfw.Key]graphics.Action{
	glfw.KeyEscape:   graphics.ActionQuit,
	glfw.KeyQ:        graphics.ActionQuit,
	glfw.KeyF:        graphics.ActionToggleFullscreen,
	glfw.KeyRight:    graphics.ActionNext,
	glfw.KeyN:        graphics.ActionNext,
	glfw.KeyPageDown: graphics.ActionNext,
	glfw.KeyLeft:     graphics.ActionPrevious,
	glfw.KeyP:        graphics.ActionPrevious,
	glfw.KeyPageUp:   graphics.ActionPrevious,
}

// Context is a GLFW window forwarding its input to a graphics.EventHandler.
// Input arriving before a handler is set is dropped.
type Context struct {
	window  *glfw.Window
	handler graphics.EventHandler

	fullscreen     bool
	windowedX      int
	windowedY      int
	windowedWidth  int
	windowedHeight int
}

var _ graphics.Context = (*Context)(nil)

// New creates and initializes a new GLFW window and returns a Context object.
func New(options *options.ShaderOptions, handler graphics.EventHandler) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(options.Width, options.Height, "goshaderview", nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:  win,
		handler: handler,
	}
	c.centre()

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetCursorPosCallback(c.glfwCursorPosCallback)
	win.SetMouseButtonCallback(c.glfwMouseButtonCallback)
	win.SetFramebufferSizeCallback(c.glfwFramebufferSizeCallback)

	return c, nil
}

// centre places the window in the middle of the primary monitor.
func (c *Context) centre() {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return
	}
	mode := monitor.GetVideoMode()
	w, h := c.window.GetSize()
	c.window.SetPos((mode.Width-w)/2, (mode.Height-h)/2)
}

// SetHandler replaces the receiver of window input.
func (c *Context) SetHandler(handler graphics.EventHandler) {
	c.handler = handler
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press || c.handler == nil {
		return
	}
	if a, ok := keyActions[key]; ok {
		c.handler.OnAction(a)
	}
}

// glfwCursorPosCallback converts screen coordinates to framebuffer pixels;
// they differ on high-DPI displays.
func (c *Context) glfwCursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if c.handler == nil {
		return
	}
	fbWidth, fbHeight := w.GetFramebufferSize()
	winWidth, winHeight := w.GetSize()
	var scaleX, scaleY float64 = 1.0, 1.0
	if winWidth > 0 && winHeight > 0 {
		scaleX = float64(fbWidth) / float64(winWidth)
		scaleY = float64(fbHeight) / float64(winHeight)
	}
	c.handler.OnPointerMove(xpos*scaleX, ypos*scaleY)
}

func (c *Context) glfwMouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft || c.handler == nil {
		return
	}
	c.handler.OnPointerButton(action == glfw.Press)
}

func (c *Context) glfwFramebufferSizeCallback(w *glfw.Window, width, height int) {
	if c.handler == nil {
		return
	}
	c.handler.OnResize(width, height)
}

// ToggleFullscreen switches between the primary monitor and the last
// windowed position and size.
func (c *Context) ToggleFullscreen() {
	if c.fullscreen {
		c.window.SetMonitor(nil, c.windowedX, c.windowedY, c.windowedWidth, c.windowedHeight, 0)
		c.fullscreen = false
		return
	}
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return
	}
	c.windowedX, c.windowedY = c.window.GetPos()
	c.windowedWidth, c.windowedHeight = c.window.GetSize()
	mode := monitor.GetVideoMode()
	c.window.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	c.fullscreen = true
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) SetShouldClose(v bool) {
	c.window.SetShouldClose(v)
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) PollEvents() {
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) SetTitle(title string) {
	c.window.SetTitle(title)
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	return glfw.Init()
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
}
