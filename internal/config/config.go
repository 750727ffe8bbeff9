// Package config handles clipmap and viewer configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/planet-clipmap/internal/clipmap"
)

// Config holds all settings.
type Config struct {
	Clipmap ClipmapConfig `yaml:"clipmap"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// ClipmapConfig holds the mesh construction parameters.
type ClipmapConfig struct {
	Scale       float64 `yaml:"scale"`
	Resolution  int     `yaml:"resolution"`
	Levels      int     `yaml:"levels"`
	IndexFormat string  `yaml:"index_format"` // uint16 or uint32
}

// ViewerConfig holds display and rendering settings.
type ViewerConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	Wireframe  bool    `yaml:"wireframe"`
	Spread     float32 `yaml:"spread"`   // morph intensity uniform
	Radius     float32 `yaml:"radius"`   // planet radius
	OffsetZ    float32 `yaml:"offset_z"` // mesh translation along +Z

	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // png or bmp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the planet demo configuration.
func Default() *Config {
	return &Config{
		Clipmap: ClipmapConfig{
			Scale:       0.5,
			Resolution:  16,
			Levels:      3,
			IndexFormat: "uint16",
		},
		Viewer: ViewerConfig{
			Width:     1280,
			Height:    720,
			VSync:     true,
			Wireframe: true,
			Spread:    1.0,
			Radius:    1.0,
			OffsetZ:   1.0,

			ScreenshotDir:    filepath.Join(os.TempDir(), "planet-clipmap"),
			ScreenshotFormat: "png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Mesh converts the YAML section into a validated clipmap.Config.
func (c ClipmapConfig) Mesh() (clipmap.Config, error) {
	format, err := clipmap.ParseIndexFormat(c.IndexFormat)
	if err != nil {
		return clipmap.Config{}, err
	}
	cfg := clipmap.Config{
		Scale:       c.Scale,
		Resolution:  c.Resolution,
		Levels:      c.Levels,
		IndexFormat: format,
	}
	if err := cfg.Validate(); err != nil {
		return clipmap.Config{}, fmt.Errorf("clipmap section: %w", err)
	}
	return cfg, nil
}
