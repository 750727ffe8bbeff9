// Package viewer runs the planet clipmap preview window.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/planet-clipmap/internal/clipmap"
	"github.com/Faultbox/planet-clipmap/internal/config"
	"github.com/Faultbox/planet-clipmap/internal/engine/debug"
	"github.com/Faultbox/planet-clipmap/internal/engine/input"
	"github.com/Faultbox/planet-clipmap/internal/engine/planet"
	"github.com/Faultbox/planet-clipmap/internal/engine/window"
	"github.com/Faultbox/planet-clipmap/internal/logger"
	"github.com/Faultbox/planet-clipmap/pkg/math"
)

// spreadKey is the spread change per key press.
const spreadKey = 0.05

// Viewer owns the window, GL state and the clipmap renderer.
type Viewer struct {
	cfg      config.ViewerConfig
	holder   *clipmap.Holder
	window   *window.Window
	input    *input.Input
	renderer *planet.Renderer
	capture  *debug.Capture

	width, height int
	shotPending   bool
	spread        float32
	wireframe     bool
}

// New opens the window and prepares the renderer for the holder's mesh.
func New(cfg config.ViewerConfig, holder *clipmap.Holder) (*Viewer, error) {
	capture, err := debug.NewCapture(cfg.ScreenshotDir, "planet", cfg.ScreenshotFormat)
	if err != nil {
		return nil, fmt.Errorf("screenshot settings: %w", err)
	}

	v := &Viewer{
		cfg:       cfg,
		capture:   capture,
		holder:    holder,
		width:     cfg.Width,
		height:    cfg.Height,
		spread:    cfg.Spread,
		wireframe: cfg.Wireframe,
	}

	v.window, err = window.New(window.Config{
		Title:      "Planet Clipmap",
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	// Fullscreen may differ from the configured size.
	v.width, v.height = v.window.Size()

	if err := gl.Init(); err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(1, 1, 1, 1)

	v.renderer, err = planet.NewRenderer()
	if err != nil {
		v.window.Close()
		return nil, err
	}

	v.input = input.New()
	return v, nil
}

// Run drives the frame loop until the window is closed or Escape is pressed.
func (v *Viewer) Run() error {
	frames := 0
	fpsTimer := time.Now()

	for {
		if v.input.Update() {
			return nil
		}
		if v.handleEvents() {
			return nil
		}

		if err := v.renderer.Sync(v.holder); err != nil {
			return fmt.Errorf("uploading clipmap: %w", err)
		}

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		v.renderer.Render(v.frameParams())
		if v.shotPending {
			v.shotPending = false
			v.screenshot()
		}
		v.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			g, version := v.holder.Load()
			v.window.SetTitle(fmt.Sprintf("Planet Clipmap - %d fps - %d verts - spread %.2f",
				frames, g.VertexCount(), v.spread))
			logger.Debug("frame stats",
				zap.Int("fps", frames),
				zap.Uint64("mesh_version", version),
			)
			frames = 0
			fpsTimer = time.Now()
		}
	}
}

// handleEvents applies window and key events. It returns true to quit.
func (v *Viewer) handleEvents() bool {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.width, v.height = e.Width, e.Height
			gl.Viewport(0, 0, int32(e.Width), int32(e.Height))
		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				return true
			case sdl.SCANCODE_LEFTBRACKET:
				v.setSpread(v.spread - spreadKey)
			case sdl.SCANCODE_RIGHTBRACKET:
				v.setSpread(v.spread + spreadKey)
			case sdl.SCANCODE_W:
				v.wireframe = !v.wireframe
			case sdl.SCANCODE_F12:
				v.shotPending = true
			}
		}
	}
	return false
}

func (v *Viewer) setSpread(s float32) {
	v.spread = max(0, min(s, 1))
	logger.Debug("spread changed", zap.Float32("spread", v.spread))
}

// screenshot reads the back buffer before it is presented.
func (v *Viewer) screenshot() {
	pixels := make([]byte, v.width*v.height*4)
	gl.ReadPixels(0, 0, int32(v.width), int32(v.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	name, err := v.capture.Save(debug.FlipRows(pixels, v.width, v.height))
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", name))
}

func (v *Viewer) frameParams() planet.Params {
	aspect := float32(v.width) / float32(max(v.height, 1))

	return planet.Params{
		ViewProj:  planet.ViewProj(aspect),
		Model:     math.Translate(0, 0, v.cfg.OffsetZ),
		Spread:    v.spread,
		Radius:    v.cfg.Radius,
		Wireframe: v.wireframe,
	}
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	if v.renderer != nil {
		v.renderer.Destroy()
	}
	if v.window != nil {
		v.window.Close()
	}
}
