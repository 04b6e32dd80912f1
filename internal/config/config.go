package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds weave configuration.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	Data    DataConfig    `toml:"data"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// BackendConfig points at the workflow execution service.
type BackendConfig struct {
	URL string `toml:"url"`
}

// DataConfig controls where workflows are stored.
type DataConfig struct {
	Dir string `toml:"dir"`
}

// UIConfig controls display options.
type UIConfig struct {
	ShowGrid bool    `toml:"show_grid"`
	ZoomStep float64 `toml:"zoom_step"`
	PanStep  float64 `toml:"pan_step"`
	Color    bool    `toml:"color"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
	File  string `toml:"file"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{URL: "ws://localhost:8000/ws/canvas"},
		Data:    DataConfig{Dir: defaultDataDir()},
		UI:      UIConfig{ShowGrid: true, ZoomStep: 1.1, PanStep: 4, Color: true},
		Log:     LogConfig{Level: "info"},
	}
}

// ConfigDir returns the weave config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "weave")
}

func defaultDataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "weave")
}

func configPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, creating defaults if it doesn't exist.
func Load() *Config {
	cfg := Default()
	path := configPath()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = toml.Unmarshal(data, cfg)
	return cfg
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	path := configPath()
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return Save(Default())
}
