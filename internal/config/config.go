package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when no -config flag is given.
const EnvConfigPath = "GAMECRAFT_CONFIG"

// Config is the root application configuration.
type Config struct {
	Window      WindowConfig  `yaml:"window"`
	World       WorldConfig   `yaml:"world"`
	Meshing     MeshingConfig `yaml:"meshing"`
	Log         LogConfig     `yaml:"log"`
	MetricsAddr string        `yaml:"metrics_addr"` // empty disables /metrics
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
	// FPSLimit caps the frame rate when vsync is off; 0 means uncapped.
	FPSLimit int `yaml:"fps_limit"`
}

type WorldConfig struct {
	Generator string `yaml:"generator"` // "flat" or "noise"
	Seed      int64  `yaml:"seed"`
	Radius    int    `yaml:"radius"`   // chunk columns around the origin, 0 = single chunk
	SaveDir   string `yaml:"save_dir"` // load/save chunks here when set
}

type MeshingConfig struct {
	Workers int `yaml:"workers"`
	Queue   int `yaml:"queue"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  900,
			Height: 600,
			Title:  "Gamecraft",
			VSync:  true,
		},
		World: WorldConfig{
			Generator: "flat",
			Seed:      1337,
		},
		Meshing: MeshingConfig{
			Workers: 4,
			Queue:   64,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML file on top of the defaults. An empty path falls back to
// $GAMECRAFT_CONFIG; if that is empty too, the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later in less obvious ways.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("fps limit %d must not be negative", c.Window.FPSLimit))
	}
	if c.World.Radius < 0 {
		errs = append(errs, fmt.Errorf("world radius %d must not be negative", c.World.Radius))
	}
	if c.Meshing.Workers < 1 {
		errs = append(errs, fmt.Errorf("meshing workers %d must be at least 1", c.Meshing.Workers))
	}
	if c.Meshing.Queue < 0 {
		errs = append(errs, fmt.Errorf("meshing queue %d must not be negative", c.Meshing.Queue))
	}
	return errors.Join(errs...)
}

// Merge applies file-loaded values into cfg, but only for fields that were
// NOT explicitly set via CLI flags. explicitFlags holds the flag names that
// were given on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["generator"] {
		cfg.World.Generator = fromFile.World.Generator
	}
	if !explicitFlags["seed"] {
		cfg.World.Seed = fromFile.World.Seed
	}
	if !explicitFlags["radius"] {
		cfg.World.Radius = fromFile.World.Radius
	}
	if !explicitFlags["save"] {
		cfg.World.SaveDir = fromFile.World.SaveDir
	}
	if !explicitFlags["workers"] {
		cfg.Meshing.Workers = fromFile.Meshing.Workers
	}
	if !explicitFlags["log-level"] {
		cfg.Log.Level = fromFile.Log.Level
	}
	if !explicitFlags["metrics"] {
		cfg.MetricsAddr = fromFile.MetricsAddr
	}
	cfg.Window = fromFile.Window
	cfg.Meshing.Queue = fromFile.Meshing.Queue
}
