package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/planet-clipmap/internal/clipmap"
	"github.com/Faultbox/planet-clipmap/internal/export"
)

// coverageSize is the edge length of exported coverage maps in pixels.
const coverageSize = 1024

type saveKind int

const (
	saveOBJ saveKind = iota
	saveCoverage
	saveConfig
)

// dialog returns the title, filter name and extension of the save dialog.
func (k saveKind) dialog() (title, filter, ext string) {
	switch k {
	case saveOBJ:
		return "Export OBJ", "Wavefront OBJ", "obj"
	case saveCoverage:
		return "Export Coverage Map", "Bitmap", "bmp"
	default:
		return "Save Config", "YAML", "yaml"
	}
}

type pendingSave struct {
	kind saveKind
	path string
}

// openSaveDialog asks for a path on a goroutine. The choice is queued and
// written by the next frame.
func (app *App) openSaveDialog(kind saveKind) {
	title, filter, ext := kind.dialog()
	go func() {
		path, err := dialog.File().
			Filter(filter, ext).
			Filter("All Files", "*").
			Title(title).
			Save()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				app.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		if filepath.Ext(path) == "" {
			path += "." + ext
		}
		if !app.saves.Push(pendingSave{kind: kind, path: path}) {
			app.log.Warn("save queue full, dropping", zap.String("path", path))
		}
	}()
}

func (app *App) drainSaves() {
	app.saves.Drain(app.save)
}

func (app *App) save(s pendingSave) {
	g, _ := app.holder.Load()

	var err error
	switch s.kind {
	case saveOBJ:
		err = writeFile(s.path, func(w io.Writer) error { return export.WriteOBJ(w, g) })
	case saveCoverage:
		err = writeFile(s.path, func(w io.Writer) error { return export.WriteCoverageBMP(w, g, coverageSize) })
	case saveConfig:
		err = app.cfg.SaveTo(s.path)
	}

	if err != nil {
		app.log.Warn("save failed", zap.String("path", s.path), zap.Error(err))
		app.setStatus("Save failed: %v", err)
		return
	}
	app.log.Info("saved", zap.String("path", s.path))
	app.setStatus("Saved %s", s.path)
}

func (app *App) screenshot() {
	if app.target == nil {
		app.setStatus("Screenshot failed: preview not ready")
		return
	}
	name, err := app.capture.Save(app.target.Image())
	if err != nil {
		app.setStatus("Screenshot failed: %v", err)
		return
	}
	app.setStatus("Screenshot saved: %s", name)
}

func (app *App) verify() {
	g, _ := app.holder.Load()
	app.reports = clipmap.Verify(g)

	failed := 0
	for _, r := range app.reports {
		if r.Err != nil {
			failed++
		}
	}
	app.setStatus("Verify: %d of %d checks passed", len(app.reports)-failed, len(app.reports))
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
