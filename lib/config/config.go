// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "CHIPTAN_CONFIG"

// Bounds of the user-adjustable flicker parameters. The delay moves in
// DelayStep increments in the viewers.
const (
	MinBarWidth = 10
	MaxBarWidth = 80

	MinDelayMS  = 10
	MaxDelayMS  = 1000
	DelayStepMS = 10
)

// Defaults for the flicker geometry, in the same nominal pixel units
// as the bar width. Terminal renderers scale them to cells.
const (
	DefaultBarWidth  = 44
	DefaultBarHeight = 200
	DefaultMargin    = 12
	DefaultDelayMS   = 50
)

// Config is the complete chiptan configuration.
type Config struct {
	// Flicker configures the animation.
	Flicker FlickerConfig `yaml:"flicker"`

	// Paths configures file locations.
	Paths PathsConfig `yaml:"paths"`

	// Server configures "chiptan serve".
	Server ServerConfig `yaml:"server"`

	// Log configures the structured logger.
	Log LogConfig `yaml:"log"`
}

// FlickerConfig configures bar geometry and timing.
type FlickerConfig struct {
	// DelayMS is the tick interval in milliseconds.
	// Default: 50
	DelayMS int `yaml:"delay_ms"`

	// BarWidth is the width of one bar.
	// Default: 44
	BarWidth int `yaml:"bar_width"`

	// BarHeight is the height of the bars.
	// Default: 200
	BarHeight int `yaml:"bar_height"`

	// Margin is the gap between adjacent bars.
	// Default: 12
	Margin int `yaml:"margin"`
}

// Interval returns DelayMS as a duration.
func (flicker FlickerConfig) Interval() time.Duration {
	return time.Duration(flicker.DelayMS) * time.Millisecond
}

// PathsConfig configures file locations.
type PathsConfig struct {
	// StateFile is where the viewer saves bar width and delay.
	// Empty disables persistence.
	// Default: ${XDG_STATE_HOME:-${HOME}/.local/state}/chiptan/state.json
	StateFile string `yaml:"state_file"`
}

// ServerConfig configures the HTTP frame endpoint.
type ServerConfig struct {
	// Listen is the TCP address to listen on.
	// Default: 127.0.0.1:8650
	Listen string `yaml:"listen"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// SlogLevel parses Level.
func (log LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Flicker: FlickerConfig{
			DelayMS:   DefaultDelayMS,
			BarWidth:  DefaultBarWidth,
			BarHeight: DefaultBarHeight,
			Margin:    DefaultMargin,
		},
		Paths: PathsConfig{
			StateFile: "${XDG_STATE_HOME:-${HOME}/.local/state}/chiptan/state.json",
		},
		Server: ServerConfig{
			Listen: "127.0.0.1:8650",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Resolve loads the file at path, or the file named by
// CHIPTAN_CONFIG when path is empty, or returns Default when both are
// empty. Paths are expanded in every case.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvironmentVariable)
	}
	if path == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} in paths.
func (c *Config) expandVariables() {
	c.Paths.StateFile = filepath.Clean(expandVars(c.Paths.StateFile))
	if c.Paths.StateFile == "." {
		c.Paths.StateFile = ""
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-((?:[^{}]|\$\{[^}]*\})*))?\}`)

// expandVars expands variables from the environment. A default may
// itself contain one ${VAR} reference.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if strings.Contains(parts[2], "${") {
			return expandVars(parts[2])
		}
		return parts[2]
	})
}

// Validate reports every out-of-range or malformed value.
func (c *Config) Validate() error {
	var errs []error

	if c.Flicker.DelayMS < MinDelayMS || c.Flicker.DelayMS > MaxDelayMS {
		errs = append(errs, fmt.Errorf("flicker.delay_ms must be between %d and %d, got %d",
			MinDelayMS, MaxDelayMS, c.Flicker.DelayMS))
	}
	if c.Flicker.BarWidth < MinBarWidth || c.Flicker.BarWidth > MaxBarWidth {
		errs = append(errs, fmt.Errorf("flicker.bar_width must be between %d and %d, got %d",
			MinBarWidth, MaxBarWidth, c.Flicker.BarWidth))
	}
	if c.Flicker.BarHeight <= 0 {
		errs = append(errs, fmt.Errorf("flicker.bar_height must be positive, got %d", c.Flicker.BarHeight))
	}
	if c.Flicker.Margin < 0 {
		errs = append(errs, fmt.Errorf("flicker.margin must not be negative, got %d", c.Flicker.Margin))
	}
	if c.Server.Listen == "" {
		errs = append(errs, errors.New("server.listen is required"))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ClampBarWidth limits width to [MinBarWidth, MaxBarWidth].
func ClampBarWidth(width int) int {
	return min(max(width, MinBarWidth), MaxBarWidth)
}

// ClampDelayMS limits delay to [MinDelayMS, MaxDelayMS].
func ClampDelayMS(delay int) int {
	return min(max(delay, MinDelayMS), MaxDelayMS)
}
