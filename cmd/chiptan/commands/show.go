// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/chiptan/cmd/chiptan/cli"
	"github.com/bureau-foundation/chiptan/lib/config"
	"github.com/bureau-foundation/chiptan/lib/flicker"
	"github.com/bureau-foundation/chiptan/lib/flickerui"
	"github.com/bureau-foundation/chiptan/lib/settings"
	"github.com/bureau-foundation/chiptan/lib/tcellscreen"
)

const (
	backendTUI   = "tui"
	backendTcell = "tcell"
)

type showParams struct {
	Config    ConfigFlags
	Backend   string `flag:"backend,b" desc:"display backend: tui or tcell" default:"tui"`
	DelayMS   int    `flag:"delay" desc:"tick interval in milliseconds (default: saved value, then config)"`
	BarWidth  int    `flag:"bar-width" desc:"bar width in pixels (default: saved value, then config)"`
	LogOutput string `flag:"log-output" desc:"write logs to this file while the display runs"`
	NoSave    bool   `flag:"no-save" desc:"do not persist bar width and delay on exit"`
}

// viewerResult is what either backend reports when it exits.
type viewerResult struct {
	Submitted bool
	TAN       string
	Values    settings.Values
}

func showCommand() *cli.Command {
	var params showParams
	return &cli.Command{
		Name:    "show",
		Summary: "Flicker a challenge in the terminal and read back the TAN",
		Description: `Show the flicker code for a challenge full-screen.

Hold the TAN generator in front of the bars with its triangles lined up
under the red markers. Adjust the bar width and the delay until the
generator reads the code, then type the TAN it shows and press Enter.
The TAN is printed to stdout. The final bar width and delay are saved
for the next run.`,
		Usage: "chiptan show [flags] <challenge>",
		Examples: []cli.Example{
			{
				Description: "Show a challenge with the saved settings",
				Command:     "chiptan show 1784011041",
			},
			{
				Description: "Use the tcell backend with a slower clock",
				Command:     "chiptan show --backend tcell --delay 100 1784011041",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			return runShow(ctx, args, &params)
		},
	}
}

func runShow(ctx context.Context, args []string, params *showParams) error {
	challenge, err := challengeArgument(args, "chiptan show [flags] <challenge>")
	if err != nil {
		return err
	}
	if params.Backend != backendTUI && params.Backend != backendTcell {
		return cli.Validation("unknown backend %q", params.Backend).
			WithHint("Valid backends: " + backendTUI + ", " + backendTcell + ".")
	}
	cfg, err := params.Config.load()
	if err != nil {
		return err
	}
	logger := commandLogger(cfg, "chiptan show")

	defaults := settings.Values{BarWidth: cfg.Flicker.BarWidth, DelayMS: cfg.Flicker.DelayMS}
	stored, err := settings.Load(cfg.Paths.StateFile, defaults)
	if err != nil {
		logger.Warn("ignoring saved settings", "path", cfg.Paths.StateFile, "error", err)
	}
	values, err := applyFlagOverrides(stored, params)
	if err != nil {
		return err
	}

	// The display owns the terminal from here on.
	displayLogger := slog.New(slog.DiscardHandler)
	if params.LogOutput != "" {
		fileLogger, closeLog, err := cli.OpenFileLogger(params.LogOutput, level(cfg))
		if err != nil {
			return cli.Forbidden("opening log output: %w", err)
		}
		defer closeLog()
		displayLogger = fileLogger.With("command", "chiptan show")
	}

	frames := flicker.Encode(challenge)
	displayLogger.Info("showing flicker code",
		"fingerprint", flicker.Fingerprint(challenge),
		"frames", len(frames),
		"backend", params.Backend,
		"bar_width", values.BarWidth,
		"delay_ms", values.DelayMS,
	)

	var result viewerResult
	switch params.Backend {
	case backendTUI:
		result, err = runTUI(ctx, frames, cfg, values, displayLogger)
	case backendTcell:
		result, err = runTcell(ctx, frames, cfg, values, displayLogger)
	}
	if err != nil {
		return err
	}

	if !params.NoSave {
		if err := settings.Save(cfg.Paths.StateFile, result.Values, defaults); err != nil {
			logger.Warn("saving settings failed", "path", cfg.Paths.StateFile, "error", err)
		}
	}

	if !result.Submitted {
		fmt.Fprintln(os.Stderr, "cancelled, no TAN entered")
		return &cli.ExitError{Code: 2}
	}
	fmt.Fprintln(os.Stdout, result.TAN)
	return nil
}

// applyFlagOverrides layers explicitly given flags over the stored
// values. Zero means the flag was not given; other values must lie
// within the control bounds.
func applyFlagOverrides(values settings.Values, params *showParams) (settings.Values, error) {
	if params.DelayMS != 0 {
		if params.DelayMS != config.ClampDelayMS(params.DelayMS) {
			return values, cli.Validation("--delay %d out of range", params.DelayMS).
				WithHint(fmt.Sprintf("The delay must be between %d and %d milliseconds.",
					config.MinDelayMS, config.MaxDelayMS))
		}
		values.DelayMS = params.DelayMS
	}
	if params.BarWidth != 0 {
		if params.BarWidth != config.ClampBarWidth(params.BarWidth) {
			return values, cli.Validation("--bar-width %d out of range", params.BarWidth).
				WithHint(fmt.Sprintf("The bar width must be between %d and %d.",
					config.MinBarWidth, config.MaxBarWidth))
		}
		values.BarWidth = params.BarWidth
	}
	return values, nil
}

func runTUI(ctx context.Context, frames []flicker.Frame, cfg *config.Config, values settings.Values, logger *slog.Logger) (viewerResult, error) {
	model := flickerui.NewModel(flickerui.Options{
		Frames:    frames,
		BarWidth:  values.BarWidth,
		BarHeight: cfg.Flicker.BarHeight,
		Margin:    cfg.Flicker.Margin,
		DelayMS:   values.DelayMS,
		Output:    os.Stdout,
		Profile:   termenv.EnvColorProfile(),
		Logger:    logger,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil && ctx.Err() == nil {
		return viewerResult{}, cli.Internal("running display: %w", err)
	}
	// A signal ends the program with the last model; nothing was
	// submitted but the adjustments are still saved.
	finalModel, ok := final.(flickerui.Model)
	if !ok {
		finalModel = model
	}
	result := finalModel.Result()
	if ctx.Err() != nil {
		result.Submitted = false
	}
	return viewerResult{
		Submitted: result.Submitted,
		TAN:       result.TAN,
		Values:    settings.Values{BarWidth: result.BarWidth, DelayMS: result.DelayMS},
	}, nil
}

func runTcell(ctx context.Context, frames []flicker.Frame, cfg *config.Config, values settings.Values, logger *slog.Logger) (viewerResult, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return viewerResult{}, cli.Internal("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return viewerResult{}, cli.Internal("initializing terminal: %w", err)
	}
	defer screen.Fini()

	display := tcellscreen.New(screen, tcellscreen.Options{
		BarWidth:  values.BarWidth,
		BarHeight: cfg.Flicker.BarHeight,
		Margin:    cfg.Flicker.Margin,
		DelayMS:   values.DelayMS,
		Logger:    logger,
	})
	session, err := flicker.StartSession(flicker.SessionConfig{
		Frames:   frames,
		Interval: config.FlickerConfig{DelayMS: values.DelayMS}.Interval(),
		Renderer: display,
		Logger:   logger,
	})
	if err != nil {
		return viewerResult{}, cli.Internal("starting flicker session: %w", err)
	}

	result, err := display.Run(ctx, session)
	if err != nil && !errors.Is(err, ctx.Err()) {
		return viewerResult{}, cli.Internal("running display: %w", err)
	}
	return viewerResult{
		Submitted: result.Submitted,
		TAN:       result.TAN,
		Values:    settings.Values{BarWidth: result.BarWidth, DelayMS: result.DelayMS},
	}, nil
}
