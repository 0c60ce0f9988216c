// Package config loads the cityrun host settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Config holds host settings only. Gameplay tuning lives in the runner
// package and is not configurable.
type Config struct {
	Window   Window `yaml:"window"`
	LogLevel string `yaml:"log_level"`
	Seed     uint64 `yaml:"seed"`
	Debug    bool   `yaml:"debug"`
	// MaxCoins caps the live coin list; zero keeps it unbounded.
	MaxCoins int `yaml:"max_coins"`
	// TicksPerSecond pins the update rate. Zero runs one update per
	// display refresh.
	TicksPerSecond int `yaml:"ticks_per_second"`
}

// Default returns the settings used when no config file is given.
func Default() Config {
	return Config{
		Window: Window{
			Title:  "cityrun",
			Width:  1280,
			Height: 720,
		},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field. A Config returned by Load or Default has
// passed it, so Level cannot fail on one.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.MaxCoins < 0 {
		return fmt.Errorf("max_coins %d must not be negative", c.MaxCoins)
	}
	if c.TicksPerSecond < 0 {
		return fmt.Errorf("ticks_per_second %d must not be negative", c.TicksPerSecond)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// SyncWithDisplay reports whether the game updates once per display
// refresh rather than at a pinned rate.
func (c Config) SyncWithDisplay() bool {
	return c.TicksPerSecond == 0
}

// Level parses LogLevel. An empty level means info.
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
