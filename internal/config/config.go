// Package config loads the waveshooter runtime configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/waveshooter/internal/core/observability/log"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Tick      TickConfig      `yaml:"tick"`
	Screen    ScreenConfig    `yaml:"screen"`
	Fade      FadeConfig      `yaml:"fade"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Log       LogConfig       `yaml:"log"`
	Assets    AssetsConfig    `yaml:"assets"`
	Input     InputConfig     `yaml:"input"`
	Bridge    BridgeConfig    `yaml:"bridge"`
}

type TickConfig struct {
	// Delta is the fixed simulation step in seconds.
	Delta float64 `yaml:"delta"`
	// MaxTicks stops the run after that many ticks; zero runs until quit.
	MaxTicks uint64 `yaml:"max_ticks"`
	// Realtime paces ticks to the wall clock instead of running flat out.
	Realtime bool `yaml:"realtime"`
}

type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type FadeConfig struct {
	Rate float64 `yaml:"rate"`
}

type SchedulerConfig struct {
	Parallel bool `yaml:"parallel"`
	Workers  int  `yaml:"workers"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Format is "json" or "console".
	Format string `yaml:"format"`
}

// AssetsConfig points at the level and prefab files. Empty paths select the
// built-in campaign and catalog.
type AssetsConfig struct {
	Levels  string `yaml:"levels"`
	Prefabs string `yaml:"prefabs"`
}

type InputConfig struct {
	// Script is a YAML tick -> events file replayed in headless runs.
	Script string `yaml:"script"`
}

type BridgeConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Addr         string        `yaml:"addr"`
	QueueSize    int           `yaml:"queue_size"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Tick:      TickConfig{Delta: 1.0 / 60, MaxTicks: 0, Realtime: true},
		Screen:    ScreenConfig{Width: 1920, Height: 1080},
		Fade:      FadeConfig{Rate: 0.8},
		Scheduler: SchedulerConfig{Parallel: true},
		Log:       LogConfig{Level: "info", Format: "json"},
		Bridge: BridgeConfig{
			Addr:         "127.0.0.1:8090",
			QueueSize:    1024,
			WriteTimeout: 2 * time.Second,
		},
	}
}

var logFormats = []string{"json", "console"}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format+": %w", append(args, ErrInvalidConfig)...))
	}
	if c.Tick.Delta <= 0 {
		bad("tick.delta must be positive, got %v", c.Tick.Delta)
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		bad("screen must be positive, got %vx%v", c.Screen.Width, c.Screen.Height)
	}
	if c.Fade.Rate <= 0 {
		bad("fade.rate must be positive, got %v", c.Fade.Rate)
	}
	if c.Scheduler.Workers < 0 {
		bad("scheduler.workers must not be negative, got %d", c.Scheduler.Workers)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		bad("log.level: %v", err)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		bad("unknown log.format %q", c.Log.Format)
	}
	if c.Bridge.Enabled {
		if c.Bridge.Addr == "" {
			bad("bridge.addr is required when the bridge is enabled")
		}
		if c.Bridge.QueueSize <= 0 {
			bad("bridge.queue_size must be positive, got %d", c.Bridge.QueueSize)
		}
	}
	return errors.Join(errs...)
}

// Decode overlays the YAML document in r on the defaults and validates the
// result. Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads path, or returns the defaults when path is empty.
func Load(path string) (Config, error) {
	if path == "" {
		c := Default()
		return c, c.Validate()
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
