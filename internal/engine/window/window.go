// Package window handles SDL2 initialisation, windows and OpenGL contexts.
//
// Resources is the single per-process owner of SDL. It is constructed once
// by main and passed to whatever needs to create windows or check for a
// current context; there is no global accessor.
package window

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/sciviz/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

var (
	ErrResourcesExist  = errors.New("window: resources already initialised in this process")
	ErrResourcesClosed = errors.New("window: resources closed")
)

// live guards the one-instance-per-process rule.
var live atomic.Bool

func acquire() error {
	if !live.CompareAndSwap(false, true) {
		return ErrResourcesExist
	}
	return nil
}

func release() { live.Store(false) }

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Resources owns SDL and every window created through it.
type Resources struct {
	log     *zap.Logger
	windows []*Window
	current *Window
	closed  bool
}

// NewResources initialises SDL video and events. Only one Resources may be
// live at a time; a second call before Close returns ErrResourcesExist.
func NewResources() (*Resources, error) {
	if err := acquire(); err != nil {
		return nil, err
	}
	log := logger.Named("window")
	log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		release()
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}
	return &Resources{log: log}, nil
}

// ContextCurrent reports whether a window's GL context is current.
func (r *Resources) ContextCurrent() bool {
	return r != nil && !r.closed && r.current != nil
}

// Window wraps an SDL2 window and its OpenGL context.
type Window struct {
	res       *Resources
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
}

// NewWindow creates a window with an OpenGL 4.1 core context and makes the
// context current.
func (r *Resources) NewWindow(cfg Config) (*Window, error) {
	if r.closed {
		return nil, ErrResourcesClosed
	}

	// We want OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 4)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	sw, err := sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	ctx, err := sw.GLCreateContext()
	if err != nil {
		sw.Destroy()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			r.log.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	w := &Window{res: r, config: cfg, sdlWindow: sw, glContext: ctx}
	r.windows = append(r.windows, w)
	r.current = w

	r.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

// MakeCurrent makes this window's context current on the calling thread.
func (w *Window) MakeCurrent() error {
	if err := w.sdlWindow.GLMakeCurrent(w.glContext); err != nil {
		return fmt.Errorf("SDL_GL_MakeCurrent failed: %w", err)
	}
	w.res.current = w
	return nil
}

// Close destroys the window and its context.
func (w *Window) Close() {
	if w.sdlWindow == nil {
		return
	}
	w.res.log.Info("closing window", zap.String("title", w.config.Title))
	sdl.GLDeleteContext(w.glContext)
	w.sdlWindow.Destroy()
	w.sdlWindow = nil

	if w.res.current == w {
		w.res.current = nil
	}
	for i, o := range w.res.windows {
		if o == w {
			w.res.windows = append(w.res.windows[:i], w.res.windows[i+1:]...)
			break
		}
	}
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// GetSize returns the current window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the framebuffer size, which differs from GetSize on
// HiDPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// Close destroys every remaining window and shuts SDL down. Another
// Resources may be created afterwards.
func (r *Resources) Close() {
	if r.closed {
		return
	}
	for len(r.windows) > 0 {
		r.windows[len(r.windows)-1].Close()
	}
	r.closed = true
	sdl.Quit()
	release()
	r.log.Info("SDL shut down")
}
