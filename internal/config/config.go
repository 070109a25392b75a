// Package config loads forestgen settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvSeed   = "FORESTGEN_SEED"
	EnvWidth  = "FORESTGEN_WIDTH"
	EnvHeight = "FORESTGEN_HEIGHT"
	EnvPreset = "FORESTGEN_PRESET"
	EnvTick   = "FORESTGEN_TICK"
)

const (
	DefaultPreset = "forest"
	DefaultTick   = 30 * time.Millisecond
)

// Config holds generator and viewer settings.
type Config struct {
	// Seed for random number generation. A seed of 0 means a random seed will be generated.
	Seed int64
	// Width and Height of the terrain in tiles. Zero means the preset's size.
	Width  int
	Height int
	// Preset is the ID of the generation preset.
	Preset string
	// Tick is the delay between steps while the viewer is watching generation.
	Tick time.Duration
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Preset: DefaultPreset,
		Tick:   DefaultTick,
	}
}

// Load reads the given .env files (".env" if none are given) into the process
// environment, without overriding variables that are already set, and then
// builds a Config from the environment. Missing files are not an error.
func Load(filenames ...string) (Config, error) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading env file: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, starting from Default.
func FromEnv(lookup func(key string) (string, bool)) (Config, error) {
	cfg := Default()
	var err error

	if cfg.Seed, err = int64Env(lookup, EnvSeed, cfg.Seed); err != nil {
		return Config{}, err
	}
	if cfg.Width, err = intEnv(lookup, EnvWidth, cfg.Width); err != nil {
		return Config{}, err
	}
	if cfg.Height, err = intEnv(lookup, EnvHeight, cfg.Height); err != nil {
		return Config{}, err
	}
	if value, ok := lookup(EnvPreset); ok && value != "" {
		cfg.Preset = value
	}
	if value, ok := lookup(EnvTick); ok && value != "" {
		if cfg.Tick, err = time.ParseDuration(value); err != nil {
			return Config{}, fmt.Errorf("%s must be a duration: %w", EnvTick, err)
		}
	}

	return cfg, cfg.Validate()
}

// Validate rejects sizes and ticks that cannot be used.
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("size %dx%d must not be negative", c.Width, c.Height)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("tick %s must be positive", c.Tick)
	}
	return nil
}

func intEnv(lookup func(string) (string, bool), key string, def int) (int, error) {
	value, ok := lookup(key)
	if !ok || value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func int64Env(lookup func(string) (string, bool), key string, def int64) (int64, error) {
	value, ok := lookup(key)
	if !ok || value == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
