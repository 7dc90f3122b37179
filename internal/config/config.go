package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/san-kum/shmviz/internal/shm"
	"gopkg.in/yaml.v3"
)

const (
	DefaultInterval      = 30 * time.Millisecond
	DefaultClockStep     = 0.02
	DefaultPixelsPerUnit = 100.0
	DefaultAxis          = "horizontal"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
)

type Config struct {
	Params    shm.Params      `yaml:"params"`
	Animation AnimationConfig `yaml:"animation"`
	Log       LogConfig       `yaml:"log"`
}

type AnimationConfig struct {
	Interval      time.Duration `yaml:"interval"`
	ClockStep     float64       `yaml:"clock_step"`
	PixelsPerUnit float64       `yaml:"pixels_per_unit"`
	Axis          string        `yaml:"axis"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

func DefaultConfig() *Config {
	return &Config{
		Params: shm.DefaultParams(),
		Animation: AnimationConfig{
			Interval:      DefaultInterval,
			ClockStep:     DefaultClockStep,
			PixelsPerUnit: DefaultPixelsPerUnit,
			Axis:          DefaultAxis,
		},
		Log: LogConfig{
			Level:      DefaultLogLevel,
			Format:     DefaultLogFormat,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Load reads a YAML file on top of DefaultConfig, so omitted keys keep their
// defaults.
func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads a YAML file on top of base, e.g. a preset. base is not
// modified.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// finitePositive also rejects NaN, which compares false against zero.
func finitePositive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

// Validate checks the animation and log sections. Params are never rejected.
func (c *Config) Validate() error {
	if c.Animation.Interval <= 0 {
		return fmt.Errorf("animation.interval must be positive, got %v", c.Animation.Interval)
	}
	if !finitePositive(c.Animation.ClockStep) {
		return fmt.Errorf("animation.clock_step must be finite and positive, got %f", c.Animation.ClockStep)
	}
	if !finitePositive(c.Animation.PixelsPerUnit) {
		return fmt.Errorf("animation.pixels_per_unit must be finite and positive, got %f", c.Animation.PixelsPerUnit)
	}
	switch c.Animation.Axis {
	case "horizontal", "vertical":
	default:
		return fmt.Errorf("animation.axis must be horizontal or vertical, got %q", c.Animation.Axis)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}
