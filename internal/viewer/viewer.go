// Package viewer runs the interactive window: it owns the GL context, the
// scene and the main loop.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sciviz/internal/config"
	"github.com/Faultbox/sciviz/internal/engine/camera"
	"github.com/Faultbox/sciviz/internal/engine/colour"
	"github.com/Faultbox/sciviz/internal/engine/gpu"
	"github.com/Faultbox/sciviz/internal/engine/input"
	"github.com/Faultbox/sciviz/internal/engine/shader"
	"github.com/Faultbox/sciviz/internal/engine/window"
	"github.com/Faultbox/sciviz/internal/export"
	"github.com/Faultbox/sciviz/internal/logger"
	"github.com/Faultbox/sciviz/internal/visual"
	"github.com/Faultbox/sciviz/pkg/math"
)

// Program names used for shader reloads.
const (
	programModel = "model"
	programText  = "text"
)

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	res    *window.Resources
	window *window.Window
	gl     *gpu.GL
	input  *input.Input

	stages  map[string][]shader.Stage
	watcher *shader.Watcher

	scene    *visual.Scene
	controls *controls
}

// New opens the window, compiles the programs and builds the scene.
// Shader errors are returned unwrapped enough for shader.ExitCode.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg: cfg,
		log: logger.Named("viewer"),
		stages: map[string][]shader.Stage{
			programModel: shader.ModelStages(cfg.Shaders.Dir),
			programText:  shader.TextStages(cfg.Shaders.Dir),
		},
	}
	v.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	if v.res, err = window.NewResources(); err != nil {
		return nil, err
	}
	v.window, err = v.res.NewWindow(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// validated by config.Load
	bg, _ := colour.FromHex(cfg.Render.Background)
	if v.gl, err = gpu.NewGL(bg); err != nil {
		v.Close()
		return nil, err
	}

	prog, err := shader.Load(v.stages[programModel])
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("model program: %w", err)
	}
	textProg, err := shader.Load(v.stages[programText])
	if err != nil {
		shader.Delete(prog)
		v.Close()
		return nil, fmt.Errorf("text program: %w", err)
	}

	if cfg.Shaders.Watch {
		if err := v.watchShaders(); err != nil {
			v.log.Warn("shader reload disabled", zap.Error(err))
		}
	}

	v.scene = visual.NewScene(v.res, v.gl, prog, textProg)
	v.scene.Camera().SetTranslation(math.Vec3{Z: -5})
	v.input = input.New()
	v.controls = &controls{
		scene:    v.scene,
		ball:     camera.NewTrackball(v.scene.Camera()),
		render:   cfg.Render,
		viewport: v.gl.Resize,
	}
	v.controls.resize(v.window.DrawableSize())

	if _, err := Populate(v.scene, cfg); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	v.log.Info("viewer initialized", zap.Int("models", len(v.scene.Models())))
	return v, nil
}

func (v *Viewer) watchShaders() error {
	w, err := shader.NewWatcher()
	if err != nil {
		return err
	}
	for name, stages := range v.stages {
		if err := w.Watch(name, stages); err != nil {
			w.Close()
			return err
		}
	}
	v.watcher = w
	return nil
}

// reloadShaders relinks programs whose sources changed. A program that
// fails to build is logged and the previous one stays in use.
func (v *Viewer) reloadShaders() {
	if v.watcher == nil {
		return
	}
	for _, name := range v.watcher.Pending() {
		prog, err := shader.Load(v.stages[name])
		if err != nil {
			v.log.Warn("shader reload failed", zap.String("program", name), zap.Error(err))
			continue
		}
		v.log.Info("shader reloaded", zap.String("program", name), zap.Uint32("id", prog))
		switch name {
		case programModel:
			shader.Delete(v.scene.GraphicsProgram())
			v.scene.SetPrograms(prog, v.scene.TextProgram())
		case programText:
			// existing labels still draw with the old program
			v.scene.SetPrograms(v.scene.GraphicsProgram(), prog)
		}
	}
}

// Export writes every model of the scene to path (.gltf or .glb).
func (v *Viewer) Export(path string) error {
	models := v.scene.Models()
	srcs := make([]export.Source, len(models))
	for i, m := range models {
		srcs[i] = m
	}
	return export.Write(path, srcs...)
}

// Run starts the main loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		v.input.Update()
		for _, ev := range v.input.Events() {
			v.controls.handle(ev)
		}
		if v.controls.quit {
			v.running = false
			break
		}

		v.reloadShaders()
		v.controls.ball.Step(float32(dt))

		v.gl.Begin()
		if err := v.scene.Render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", now.Sub(fpsTimer)/time.Duration(frameCount)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases the scene, the programs and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.watcher != nil {
		v.watcher.Close()
	}
	if v.scene != nil {
		v.scene.Close()
		shader.Delete(v.scene.GraphicsProgram())
		shader.Delete(v.scene.TextProgram())
	}
	if v.res != nil {
		v.res.Close()
	}
}
