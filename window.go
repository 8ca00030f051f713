package pigeon

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Chameko/pigeon/geom"
	"github.com/Chameko/pigeon/parrot"
)

// Window is one OS window with its own surface and painter. Resizes
// reconfigure the painter automatically before the handler hears about
// them.
type Window struct {
	GLFW    *glfw.Window
	Painter *parrot.Painter
	Surface *wgpu.Surface
	Title   string

	app *App
}

func newWindow(app *App, title string, size geom.Size[int]) (*Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfwWin, err := glfw.CreateWindow(size.Width, size.Height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("pigeon: creating window %q: %w", title, err)
	}
	surface := app.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(glfwWin))
	painter, err := parrot.NewPainter(app.Instance, surface)
	if err != nil {
		glfwWin.Destroy()
		return nil, err
	}
	if err := painter.UpdateSampleCount(app.config.SampleCount); err != nil {
		glfwWin.Destroy()
		return nil, err
	}
	width, height := glfwWin.GetFramebufferSize()
	if err := painter.Configure(geom.Sz(width, height), app.config.PresentMode.WGPU()); err != nil {
		glfwWin.Destroy()
		return nil, err
	}
	return &Window{
		GLFW:    glfwWin,
		Painter: painter,
		Surface: surface,
		Title:   title,
		app:     app,
	}, nil
}

// install registers the glfw callbacks that forward to the handler.
func (w *Window) install(h Handler) {
	w.GLFW.SetSizeCallback(func(_ *glfw.Window, _, _ int) {
		width, height := w.GLFW.GetFramebufferSize()
		if width == 0 || height == 0 {
			// Minimized; skip reconfiguring a zero-sized surface.
			return
		}
		size := geom.Sz(width, height)
		if err := w.Painter.Configure(size, w.app.config.PresentMode.WGPU()); err != nil {
			logger().Error("surface reconfigure failed", "title", w.Title, "err", err)
			return
		}
		h.Resize(w, size)
	})
	w.GLFW.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		h.Key(w, key, action, mods)
	})
	w.GLFW.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		h.CursorPos(w, geom.Pt(x, y))
	})
}

// Size returns the window's framebuffer size in pixels.
func (w *Window) Size() geom.Size[int] {
	width, height := w.GLFW.GetFramebufferSize()
	return geom.Sz(width, height)
}

// Close requests that the window close on the next event-loop iteration.
func (w *Window) Close() {
	w.GLFW.SetShouldClose(true)
}

// Release frees the window's painter and destroys the OS window.
func (w *Window) Release() {
	w.Painter.Release()
	w.GLFW.Destroy()
}
