// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/chiptan/cmd/chiptan/cli"
	"github.com/bureau-foundation/chiptan/lib/config"
	"github.com/bureau-foundation/chiptan/lib/flicker"
)

// ConfigFlags are the flags shared by commands that read the
// configuration file.
type ConfigFlags struct {
	ConfigPath string
	LogLevel   string
}

// AddFlags implements cli.FlagBinder.
func (flags *ConfigFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&flags.ConfigPath, "config", "",
		"configuration file (default: $"+config.EnvironmentVariable+", then built-in defaults)")
	flagSet.StringVar(&flags.LogLevel, "log-level", "",
		"log level: debug, info, warn, error (default: from config)")
}

// load resolves and validates the configuration, applying --log-level.
func (flags *ConfigFlags) load() (*config.Config, error) {
	cfg, err := config.Resolve(flags.ConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cli.NotFound("loading configuration: %w", err).
			WithHint("Pass --config with an existing file, or unset " + config.EnvironmentVariable + ".")
	}
	if err != nil {
		return nil, cli.Validation("loading configuration: %w", err)
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

// level returns the configured log level. The configuration has been
// validated, so the parse cannot fail.
func level(cfg *config.Config) slog.Level {
	parsed, _ := cfg.Log.SlogLevel()
	return parsed
}

// commandLogger returns the stderr logger at the configured level,
// scoped to the command.
func commandLogger(cfg *config.Config, command string) *slog.Logger {
	return cli.NewCommandLogger(level(cfg)).With("command", command)
}

// challengeArgument extracts and validates the single challenge
// argument.
func challengeArgument(args []string, usage string) (string, error) {
	if len(args) == 0 {
		return "", cli.Validation("challenge required").
			WithHint("Usage: " + usage)
	}
	if len(args) > 1 {
		return "", cli.Validation("expected one challenge, got %d arguments", len(args)).
			WithHint("Usage: " + usage)
	}
	challenge := args[0]
	if err := flicker.Validate(challenge); err != nil {
		return "", cli.Validation("invalid challenge: %w", err).
			WithHint("The challenge is the hexadecimal code shown by your bank, for example 1784011041.")
	}
	return challenge, nil
}
