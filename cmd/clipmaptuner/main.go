// Clipmap Tuner - an ImGui tool for adjusting clipmap parameters live.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/planet-clipmap/internal/clipmap"
	"github.com/Faultbox/planet-clipmap/internal/config"
	"github.com/Faultbox/planet-clipmap/internal/engine/debug"
	"github.com/Faultbox/planet-clipmap/internal/engine/event"
	"github.com/Faultbox/planet-clipmap/internal/engine/framebuffer"
	"github.com/Faultbox/planet-clipmap/internal/engine/planet"
	"github.com/Faultbox/planet-clipmap/internal/logger"
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to start tuner", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	app.Run()
}

// App is the tuner state.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	log     *zap.Logger

	cfg    *config.Config
	holder *clipmap.Holder

	// GL resources, created on the first frame
	renderer *planet.Renderer
	target   *framebuffer.Target
	glErr    error

	capture *debug.Capture

	// Mesh controls
	scale      float32
	resolution int32
	levels     int32
	wide       bool // 32-bit indices
	buildErr   string

	// Render controls
	spread    float32
	wireframe bool

	reports []clipmap.Report

	status     string
	statusTime time.Time

	// Save paths chosen in file dialogs, handled on the main thread
	saves *event.Queue[pendingSave]
}

// NewApp builds the initial mesh from cfg and opens the tuner window.
func NewApp(cfg *config.Config) (*App, error) {
	meshCfg, err := cfg.Clipmap.Mesh()
	if err != nil {
		return nil, err
	}
	holder, err := clipmap.NewHolder(meshCfg)
	if err != nil {
		return nil, err
	}
	capture, err := debug.NewCapture(cfg.Viewer.ScreenshotDir, "tuner", cfg.Viewer.ScreenshotFormat)
	if err != nil {
		return nil, fmt.Errorf("screenshot settings: %w", err)
	}

	app := &App{
		log:        logger.Named("tuner"),
		cfg:        cfg,
		holder:     holder,
		capture:    capture,
		scale:      float32(meshCfg.Scale),
		resolution: int32(meshCfg.Resolution),
		levels:     int32(meshCfg.Levels),
		wide:       meshCfg.IndexFormat == clipmap.IndexUint32,
		spread:     cfg.Viewer.Spread,
		wireframe:  cfg.Viewer.Wireframe,
		saves:      event.NewQueue[pendingSave](4),
	}

	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}
	app.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	app.backend.CreateWindow("Clipmap Tuner", cfg.Viewer.Width, cfg.Viewer.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	g, _ := holder.Load()
	app.log.Info("tuner started",
		zap.Int("tiles", g.TileCount()),
		zap.String("gl_version", gl.GoStr(gl.GetString(gl.VERSION))),
	)
	return app, nil
}

// Run starts the main loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// Close releases GL resources.
func (app *App) Close() {
	if app.renderer != nil {
		app.renderer.Destroy()
		app.renderer = nil
	}
	if app.target != nil {
		app.target.Destroy()
		app.target = nil
	}
}

// ensureGL creates the renderer and preview target once a context is current.
func (app *App) ensureGL() {
	if app.renderer != nil || app.glErr != nil {
		return
	}

	r, err := planet.NewRenderer()
	if err != nil {
		app.glErr = err
		app.log.Error("planet renderer unavailable", zap.Error(err))
		return
	}
	t, err := framebuffer.New(640, 480)
	if err != nil {
		r.Destroy()
		app.glErr = err
		app.log.Error("preview target unavailable", zap.Error(err))
		return
	}
	app.renderer, app.target = r, t
}

// meshConfig assembles a clipmap.Config from the controls.
func (app *App) meshConfig() clipmap.Config {
	format := clipmap.IndexUint16
	if app.wide {
		format = clipmap.IndexUint32
	}
	return clipmap.Config{
		Scale:       float64(app.scale),
		Resolution:  int(app.resolution),
		Levels:      int(app.levels),
		IndexFormat: format,
	}
}

// rebuild swaps in a mesh for the current controls. On failure the previous
// mesh stays visible and the error is shown under the controls.
func (app *App) rebuild() {
	cfg := app.meshConfig()
	if _, err := app.holder.Rebuild(cfg); err != nil {
		app.buildErr = err.Error()
		return
	}
	app.buildErr = ""
	app.reports = nil

	app.cfg.Clipmap = config.ClipmapConfig{
		Scale:       cfg.Scale,
		Resolution:  cfg.Resolution,
		Levels:      cfg.Levels,
		IndexFormat: cfg.IndexFormat.String(),
	}
}

func (app *App) setStatus(format string, args ...any) {
	app.status = fmt.Sprintf(format, args...)
	app.statusTime = time.Now()
}
