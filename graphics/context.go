package graphics

// Context defines the interface for the window that owns the OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	SetShouldClose(bool)
	EndFrame()
	PollEvents()
	GetFramebufferSize() (int, int)
	ToggleFullscreen()
	SetTitle(title string)
}

// Action is a keyboard command the previewer reacts to.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleFullscreen
	ActionNext
	ActionPrevious
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionToggleFullscreen:
		return "toggle-fullscreen"
	case ActionNext:
		return "next"
	case ActionPrevious:
		return "previous"
	default:
		return "none"
	}
}

// EventHandler receives window events. Pointer coordinates are framebuffer
// pixels with the origin at the top-left, as the window system reports them.
type EventHandler interface {
	OnAction(a Action)
	OnPointerMove(x, y float64)
	OnPointerButton(down bool)
	OnResize(width, height int)
}
