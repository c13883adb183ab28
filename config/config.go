package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation" yaml:"simulation"`
	Window     WindowConfig     `toml:"window" yaml:"window"`
	Terminal   TerminalConfig   `toml:"terminal" yaml:"terminal"`
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
}

type SimulationConfig struct {
	Count              int     `toml:"count" yaml:"count"`
	Seed               int64   `toml:"seed" yaml:"seed"` // 0 seeds from the clock
	MaxParticles       int     `toml:"max_particles" yaml:"max_particles"`
	Gravity            float32 `toml:"gravity" yaml:"gravity"`
	Damping            float32 `toml:"damping" yaml:"damping"` // per-step velocity multiplier
	AttractStrength    float32 `toml:"attract_strength" yaml:"attract_strength"`
	TurbulenceScale    float32 `toml:"turbulence_scale" yaml:"turbulence_scale"`
	TurbulenceStrength float32 `toml:"turbulence_strength" yaml:"turbulence_strength"`
}

type WindowConfig struct {
	Width  int     `toml:"width" yaml:"width"`
	Height int     `toml:"height" yaml:"height"`
	TPS    int     `toml:"tps" yaml:"tps"`
	Title  string  `toml:"title" yaml:"title"`
	Zoom   float64 `toml:"zoom" yaml:"zoom"` // pixels per world unit at z=0
}

type TerminalConfig struct {
	FPS   int  `toml:"fps" yaml:"fps"`
	Audio bool `toml:"audio" yaml:"audio"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
	File   string `toml:"file" yaml:"file"`     // empty logs to stderr
}

// Load reads path over the defaults. Files ending in .yaml or .yml are
// parsed as YAML, everything else as TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the simulator or renderers cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Simulation.Count < 0:
		return fmt.Errorf("simulation.count %d is negative", c.Simulation.Count)
	case c.Simulation.MaxParticles < c.Simulation.Count:
		return fmt.Errorf("simulation.count %d exceeds max_particles %d", c.Simulation.Count, c.Simulation.MaxParticles)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d is invalid", c.Window.Width, c.Window.Height)
	case c.Window.TPS <= 0:
		return fmt.Errorf("window.tps %d is invalid", c.Window.TPS)
	case c.Terminal.FPS <= 0:
		return fmt.Errorf("terminal.fps %d is invalid", c.Terminal.FPS)
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Count:              5000,
			MaxParticles:       1 << 20,
			Gravity:            9.8,
			Damping:            0.98,
			AttractStrength:    40,
			TurbulenceScale:    0.15,
			TurbulenceStrength: 6,
		},
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			TPS:    60,
			Title:  "Sparkle Fountain",
			Zoom:   25,
		},
		Terminal: TerminalConfig{
			FPS: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
