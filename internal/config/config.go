package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	MinSpeed     = 100
	MaxSpeed     = 1000
	SpeedStep    = 100
	DefaultSpeed = 500

	MinSize     = 5
	MaxSize     = 50
	SizeStep    = 5
	DefaultSize = 10

	DefaultLow       = 5
	DefaultHigh      = 104
	DefaultGenerator = "random"
	DefaultTheme     = "tailwind"
)

// Config holds everything a session needs to regenerate its array.
// Speed is the tick interval in milliseconds; lower is faster.
type Config struct {
	Speed     int    `yaml:"speed"`
	Size      int    `yaml:"size"`
	Seed      int64  `yaml:"seed"`
	Generator string `yaml:"generator"`
	Low       int    `yaml:"low"`
	High      int    `yaml:"high"`
	Theme     string `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Speed:     DefaultSpeed,
		Size:      DefaultSize,
		Generator: DefaultGenerator,
		Low:       DefaultLow,
		High:      DefaultHigh,
		Theme:     DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the fields present in the file at path onto cfg, so
// fields the file leaves out keep their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Normalize()
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Normalize clamps every field into range instead of rejecting it. Speed
// and size are also rounded to the nearest step so the controls stay on
// the grid.
func (c *Config) Normalize() {
	c.Speed = snap(ClampSpeed(c.Speed), MinSpeed, SpeedStep)
	c.Size = snap(ClampSize(c.Size), MinSize, SizeStep)
	if c.Generator == "" {
		c.Generator = DefaultGenerator
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.Low < 1 {
		c.Low = DefaultLow
	}
	if c.High < c.Low {
		c.High = c.Low
	}
}

// Interval is Speed as a tick duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Speed) * time.Millisecond
}

func ClampSpeed(ms int) int {
	return clamp(ms, MinSpeed, MaxSpeed)
}

func ClampSize(n int) int {
	return clamp(n, MinSize, MaxSize)
}

// Faster shortens the tick interval by one step.
func Faster(ms int) int { return ClampSpeed(ms - SpeedStep) }

// Slower lengthens the tick interval by one step.
func Slower(ms int) int { return ClampSpeed(ms + SpeedStep) }

func Grow(n int) int { return ClampSize(n + SizeStep) }

func Shrink(n int) int { return ClampSize(n - SizeStep) }

// snap rounds v to the nearest lo+k*step, halves rounding up. v must not
// be below lo.
func snap(v, lo, step int) int {
	return lo + (v-lo+step/2)/step*step
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
