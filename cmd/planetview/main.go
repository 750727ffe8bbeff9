// Package main is the entry point for the planet clipmap viewer.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/planet-clipmap/internal/clipmap"
	"github.com/Faultbox/planet-clipmap/internal/config"
	"github.com/Faultbox/planet-clipmap/internal/logger"
	"github.com/Faultbox/planet-clipmap/internal/viewer"
)

func main() {
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

	logger.Info("=== Planet Clipmap Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	meshCfg, err := cfg.Clipmap.Mesh()
	if err != nil {
		logger.Error("invalid clipmap configuration", zap.Error(err))
		os.Exit(1)
	}

	holder, err := clipmap.NewHolder(meshCfg)
	if err != nil {
		logger.Error("failed to build clipmap", zap.Error(err))
		os.Exit(1)
	}
	g, _ := holder.Load()
	logger.Info("clipmap ready",
		zap.Int("tiles", g.TileCount()),
		zap.Int("vertices", g.VertexCount()),
		zap.Int("triangles", g.TriangleCount()),
	)

	go watchReload(holder)

	v, err := viewer.New(cfg.Viewer, holder)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

// watchReload rebuilds the mesh from the config file on SIGHUP.
func watchReload(holder *clipmap.Holder) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)

	for range hup {
		cfg, err := config.Load()
		if err != nil {
			logger.Warn("config reload failed", zap.Error(err))
			continue
		}
		meshCfg, err := cfg.Clipmap.Mesh()
		if err != nil {
			logger.Warn("config reload rejected", zap.Error(err))
			continue
		}
		// Rebuild logs its own outcome.
		_, _ = holder.Rebuild(meshCfg)
	}
}
