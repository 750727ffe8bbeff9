package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagScale      = flag.Float64("scale", 0, "Clipmap base scale")
	flagResolution = flag.Int("resolution", 0, "Quads per tile edge")
	flagLevels     = flag.Int("levels", -1, "Number of clipmap shells")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagSpread     = flag.Float64("spread", -1, "Initial morph spread")
	flagWireframe  = flag.Bool("wireframe", false, "Force wireframe rendering")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScale > 0 {
		cfg.Clipmap.Scale = *flagScale
	}
	if *flagResolution > 0 {
		cfg.Clipmap.Resolution = *flagResolution
	}
	if *flagLevels >= 0 {
		cfg.Clipmap.Levels = *flagLevels
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
	if *flagSpread >= 0 {
		cfg.Viewer.Spread = float32(*flagSpread)
	}
	if *flagWireframe {
		cfg.Viewer.Wireframe = true
	}
}
