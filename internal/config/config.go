package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Window  WindowConfig  `toml:"window"`
	Assets  AssetsConfig  `toml:"assets"`
	Logging LoggingConfig `toml:"logging"`
}

type EngineConfig struct {
	Name      string        `toml:"name"`
	FrameRate time.Duration `toml:"frame_rate"` // time between frames
	MaxFrames uint64        `toml:"max_frames"` // 0 = run until closed
}

type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`  // only used by the simulation screen
	Height     int    `toml:"height"` // only used by the simulation screen
	Background string `toml:"background"`
	ShowStatus bool   `toml:"show_status"`
}

type AssetsConfig struct {
	Shapes  string `toml:"shapes"`
	Scripts string `toml:"scripts"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty = stderr
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML over the defaults. name is only used in error messages.
func Parse(data []byte, name string) (*Config, error) {
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Engine.FrameRate <= 0 {
		return fmt.Errorf("engine.frame_rate must be positive, got %s", c.Engine.FrameRate)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			Name:      "ignition",
			FrameRate: 50 * time.Millisecond,
		},
		Window: WindowConfig{
			Title:      "ignition",
			Width:      80,
			Height:     24,
			Background: "black",
			ShowStatus: true,
		},
		Assets: AssetsConfig{
			Shapes:  "data/yaml/shapes.yaml",
			Scripts: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "ignition.log",
		},
	}
}
