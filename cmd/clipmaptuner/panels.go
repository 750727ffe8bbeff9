package main

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/planet-clipmap/internal/clipmap"
	"github.com/Faultbox/planet-clipmap/internal/engine/planet"
	"github.com/Faultbox/planet-clipmap/pkg/math"
)

var (
	colorError = imgui.NewVec4(0.9, 0.3, 0.3, 1)
	colorWarn  = imgui.NewVec4(1, 0.8, 0, 1)
	colorOK    = imgui.NewVec4(0.4, 0.8, 0.4, 1)
)

// render draws one frame of the tuner UI.
func (app *App) render() {
	app.ensureGL()
	app.drainSaves()

	app.renderMenu()

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()

	controlsWidth := float32(320)
	statusBarHeight := float32(30)
	contentHeight := workSize.Y - statusBarHeight

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(controlsWidth, contentHeight))
	if imgui.BeginV("Clipmap", nil, flags) {
		app.renderControls()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+controlsWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-controlsWidth, contentHeight))
	if imgui.BeginV("Preview", nil, flags|imgui.WindowFlagsNoScrollbar) {
		app.renderPreview()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()
}

func (app *App) renderMenu() {
	if !imgui.BeginMainMenuBar() {
		return
	}
	if imgui.BeginMenu("File") {
		if imgui.MenuItemBool("Export OBJ...") {
			app.openSaveDialog(saveOBJ)
		}
		if imgui.MenuItemBool("Export Coverage BMP...") {
			app.openSaveDialog(saveCoverage)
		}
		imgui.Separator()
		if imgui.MenuItemBool("Save Config") {
			if err := app.cfg.Save(); err != nil {
				app.setStatus("Save failed: %v", err)
			} else {
				app.setStatus("Config saved")
			}
		}
		if imgui.MenuItemBool("Save Config As...") {
			app.openSaveDialog(saveConfig)
		}
		imgui.Separator()
		if imgui.MenuItemBool("Screenshot") {
			app.screenshot()
		}
		imgui.EndMenu()
	}
	imgui.EndMainMenuBar()
}

func (app *App) renderControls() {
	imgui.Text("Mesh")
	imgui.Separator()

	changed := false
	if imgui.SliderFloatV("Scale", &app.scale, 0.05, 4, "%.2f", imgui.SliderFlagsNone) {
		changed = true
	}
	if imgui.SliderIntV("Resolution", &app.resolution, 1, 64, "%d", imgui.SliderFlagsNone) {
		changed = true
	}
	if imgui.SliderIntV("Levels", &app.levels, 0, 10, "%d", imgui.SliderFlagsNone) {
		changed = true
	}
	if imgui.Checkbox("32-bit indices", &app.wide) {
		changed = true
	}
	if changed {
		app.rebuild()
	}
	if app.buildErr != "" {
		imgui.TextColored(colorError, "Rebuild rejected:")
		imgui.TextWrapped(app.buildErr)
	}

	imgui.Spacing()
	imgui.Text("Render")
	imgui.Separator()
	imgui.SliderFloatV("Spread", &app.spread, 0, 1, "%.2f", imgui.SliderFlagsNone)
	imgui.Checkbox("Wireframe", &app.wireframe)

	imgui.Spacing()
	imgui.Text("Statistics")
	imgui.Separator()

	g, version := app.holder.Load()
	cfg := g.Config
	imgui.Text(fmt.Sprintf("Tiles: %d", g.TileCount()))
	imgui.Text(fmt.Sprintf("Vertices: %d / %d", g.VertexCount(), cfg.IndexFormat.MaxVertices()))
	imgui.Text(fmt.Sprintf("Triangles: %d", g.TriangleCount()))
	imgui.Text(fmt.Sprintf("Finest tile: %g", clipmap.FinestScale(cfg.Scale, cfg.Levels)))
	imgui.Text(fmt.Sprintf("GPU memory: %.1f KB", float64(g.Buffers.ByteSize())/1024))
	imgui.TextDisabled(fmt.Sprintf("Mesh version %d", version))
	if clipmap.CheckSeams(cfg) != nil {
		imgui.TextColored(colorWarn, "Odd resolution: shell seams crack")
	}

	imgui.Spacing()
	if imgui.ButtonV("Verify", imgui.NewVec2(-1, 0)) {
		app.verify()
	}
	for _, r := range app.reports {
		if r.Err != nil {
			imgui.TextColored(colorError, "FAIL "+r.Name)
			imgui.TextWrapped(r.Err.Error())
			continue
		}
		imgui.TextColored(colorOK, "ok   "+r.Name)
	}
}

func (app *App) renderPreview() {
	if app.glErr != nil {
		imgui.TextColored(colorError, "Preview unavailable:")
		imgui.TextWrapped(app.glErr.Error())
		return
	}
	if app.renderer == nil {
		return
	}

	avail := imgui.ContentRegionAvail()
	w, h := int32(avail.X), int32(avail.Y)
	if w < 1 || h < 1 {
		return
	}
	app.target.Resize(w, h)

	if err := app.renderer.Sync(app.holder); err != nil {
		imgui.TextColored(colorError, err.Error())
		return
	}

	restore := app.target.Begin(1, 1, 1, 1)
	gl.Enable(gl.DEPTH_TEST)
	app.renderer.Render(planet.Params{
		ViewProj:  planet.ViewProj(float32(w) / float32(h)),
		Model:     math.Translate(0, 0, app.cfg.Viewer.OffsetZ),
		Spread:    app.spread,
		Radius:    app.cfg.Viewer.Radius,
		Wireframe: app.wireframe,
	})
	gl.Disable(gl.DEPTH_TEST)
	restore()

	// Flip V for OpenGL
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(app.target.Texture()))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(float32(w), float32(h)),
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(1, 1, 1, 1),
		imgui.NewVec4(1, 1, 1, 1),
	)
}

func (app *App) renderStatusBar() {
	if app.status != "" && time.Since(app.statusTime) < 4*time.Second {
		imgui.Text(app.status)
		return
	}
	g, _ := app.holder.Load()
	imgui.TextDisabled(fmt.Sprintf("scale %g  resolution %d  levels %d  %s indices",
		g.Config.Scale, g.Config.Resolution, g.Config.Levels, g.Config.IndexFormat))
}
