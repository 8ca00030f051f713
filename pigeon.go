// Package pigeon is a small 2D scene layer: windows, sprites, colored
// primitives, and the two built-in pipelines that draw them. The GPU layer
// it sits on lives in the parrot subpackage.
package pigeon

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Chameko/pigeon/geom"
	"github.com/Chameko/pigeon/parrot"
)

func init() {
	// glfw and surface presentation must stay on the main thread.
	runtime.LockOSThread()
}

// PresentMode selects how presented frames synchronize with the display.
// The zero value is Fifo (tear-free).
type PresentMode int

const (
	Fifo PresentMode = iota
	Immediate
)

// WGPU converts the present mode to its wgpu counterpart.
func (m PresentMode) WGPU() wgpu.PresentMode {
	if m == Immediate {
		return wgpu.PresentModeImmediate
	}
	return wgpu.PresentModeFifo
}

// Config configures the app and its first window.
type Config struct {
	Title string
	Size  geom.Size[int]
	// PresentMode applies to every window the app creates.
	PresentMode PresentMode
	// SampleCount is the multisample count, 0 or 1 for no multisampling.
	SampleCount uint32
	// Logger, when set, is installed as the logger for both the scene and
	// GPU layers.
	Logger *slog.Logger
}

// Handler receives window events and the per-frame draw callback. All
// methods are called on the main thread from [App.Run].
type Handler interface {
	// Draw renders one frame for the window.
	Draw(win *Window)
	// Resize reports the window's new size. The window's painter is already
	// reconfigured when this is called.
	Resize(win *Window, size geom.Size[int])
	// Key reports a key press, release, or repeat.
	Key(win *Window, key glfw.Key, action glfw.Action, mods glfw.ModifierKey)
	// CursorPos reports the cursor position in window coordinates.
	CursorPos(win *Window, pos geom.Point[float64])
	// Close is called once when the window is about to be destroyed.
	Close(win *Window)
}

// App owns the GPU instance, the windowing system, and the set of windows.
// Create one per process, on the main goroutine.
type App struct {
	Instance *wgpu.Instance
	Windows  []*Window

	config  Config
	handler Handler
}

// NewApp initializes the windowing system and creates the app's first
// window from the config.
func NewApp(config Config) (*App, error) {
	if config.Logger != nil {
		SetLogger(config.Logger)
		parrot.SetLogger(config.Logger)
	}
	if config.SampleCount == 0 {
		config.SampleCount = 1
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("pigeon: initializing glfw: %w", err)
	}
	app := &App{
		Instance: wgpu.CreateInstance(nil),
		config:   config,
	}
	if _, err := app.AddWindow(config.Title, config.Size); err != nil {
		glfw.Terminate()
		return nil, err
	}
	return app, nil
}

// AddWindow opens another window with its own surface and painter.
func (a *App) AddWindow(title string, size geom.Size[int]) (*Window, error) {
	win, err := newWindow(a, title, size)
	if err != nil {
		return nil, err
	}
	a.Windows = append(a.Windows, win)
	logger().Info("window opened", "title", title,
		"width", size.Width, "height", size.Height)
	return win, nil
}

// Run drives the event loop until every window has closed. Each iteration
// polls events and calls the handler's Draw for every open window.
func (a *App) Run(h Handler) {
	a.handler = h
	for _, win := range a.Windows {
		win.install(h)
	}
	for len(a.Windows) > 0 {
		glfw.PollEvents()
		open := a.Windows[:0]
		for _, win := range a.Windows {
			if win.GLFW.ShouldClose() {
				h.Close(win)
				win.Release()
				continue
			}
			h.Draw(win)
			open = append(open, win)
		}
		a.Windows = open
	}
}

// Release destroys any remaining windows and shuts the windowing system
// down.
func (a *App) Release() {
	for _, win := range a.Windows {
		win.Release()
	}
	a.Windows = nil
	a.Instance.Release()
	glfw.Terminate()
}
