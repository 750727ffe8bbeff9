package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names a config file to use when -config is not given.
const EnvConfig = "PLANET_CLIPMAP_CONFIG"

// Load resolves the configuration with priority defaults < file < flags and
// rejects a clipmap section that cannot be built.
func Load() (*Config, error) {
	path := ConfigPath()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = findConfigFile()
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	applyFlags(cfg)
	if _, err := cfg.Clipmap.Mesh(); err != nil {
		return nil, fmt.Errorf("command line: %w", err)
	}
	return cfg, nil
}

// LoadFile merges the YAML file at path over the defaults. An empty path
// yields the defaults. Errors name the file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if _, err := cfg.Clipmap.Mesh(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "PlanetClipmap")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "PlanetClipmap")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "planet-clipmap")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "planet-clipmap")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
