// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/bureau-foundation/chiptan/cmd/chiptan/cli"
	"github.com/bureau-foundation/chiptan/lib/config"
	"github.com/bureau-foundation/chiptan/lib/flicker"
	"github.com/bureau-foundation/chiptan/lib/framedoc"
	"github.com/bureau-foundation/chiptan/lib/settings"
)

var discard = slog.New(slog.DiscardHandler)

func requireCategory(t *testing.T, err error, want cli.ErrorCategory) *cli.ToolError {
	t.Helper()
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error %v (%T) is not a ToolError", err, err)
	}
	if toolErr.Category != want {
		t.Fatalf("category = %q, want %q (error: %v)", toolErr.Category, want, err)
	}
	return toolErr
}

func TestRootCommandTree(t *testing.T) {
	t.Parallel()
	root := Root()
	want := []string{"show", "encode", "serve", "version"}
	if len(root.Subcommands) != len(want) {
		t.Fatalf("got %d subcommands, want %d", len(root.Subcommands), len(want))
	}
	for index, command := range root.Subcommands {
		if command.Name != want[index] {
			t.Errorf("subcommand %d = %q, want %q", index, command.Name, want[index])
		}
		if command.Summary == "" {
			t.Errorf("%s has no summary", command.Name)
		}
		if command.Run == nil {
			t.Errorf("%s has no Run", command.Name)
		}
		if command.Flags != nil && command.Flags() == nil {
			t.Errorf("%s returned a nil flag set", command.Name)
		}
	}
}

func TestShowFlags(t *testing.T) {
	t.Parallel()
	var params showParams
	flagSet := cli.FlagsFromParams("show", &params)
	err := flagSet.Parse([]string{"-b", "tcell", "--delay", "80", "--bar-width", "30",
		"--config", "/etc/chiptan.yaml", "--log-level", "debug", "--no-save"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if params.Backend != "tcell" || params.DelayMS != 80 || params.BarWidth != 30 || !params.NoSave {
		t.Errorf("params = %+v", params)
	}
	if params.Config.ConfigPath != "/etc/chiptan.yaml" || params.Config.LogLevel != "debug" {
		t.Errorf("config flags = %+v", params.Config)
	}

	var defaults showParams
	if err := cli.FlagsFromParams("show", &defaults).Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if defaults.Backend != backendTUI || defaults.DelayMS != 0 || defaults.BarWidth != 0 {
		t.Errorf("defaults = %+v", defaults)
	}
}

func TestChallengeArgument(t *testing.T) {
	t.Parallel()
	challenge, err := challengeArgument([]string{"1784011041"}, "usage")
	if err != nil || challenge != "1784011041" {
		t.Fatalf("challengeArgument = %q, %v", challenge, err)
	}

	for _, args := range [][]string{nil, {"12", "34"}, {"12G4"}, {""}} {
		_, err := challengeArgument(args, "chiptan show <challenge>")
		toolErr := requireCategory(t, err, cli.CategoryValidation)
		if toolErr.Hint == "" {
			t.Errorf("args %q: error has no hint", args)
		}
	}
}

func TestChallengeArgumentKeepsOffset(t *testing.T) {
	t.Parallel()
	_, err := challengeArgument([]string{"12x4"}, "usage")
	var invalid *flicker.InvalidChallengeError
	if !errors.As(err, &invalid) {
		t.Fatalf("error %v does not wrap InvalidChallengeError", err)
	}
	if invalid.Offset != 2 {
		t.Errorf("offset = %d, want 2", invalid.Offset)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	t.Parallel()
	stored := settings.Values{BarWidth: 50, DelayMS: 70}

	values, err := applyFlagOverrides(stored, &showParams{})
	if err != nil || values != stored {
		t.Fatalf("no flags: %+v, %v", values, err)
	}

	values, err = applyFlagOverrides(stored, &showParams{DelayMS: 120, BarWidth: 20})
	if err != nil {
		t.Fatalf("applyFlagOverrides: %v", err)
	}
	if values != (settings.Values{BarWidth: 20, DelayMS: 120}) {
		t.Errorf("values = %+v, want 20/120", values)
	}

	for _, params := range []showParams{{DelayMS: 5}, {DelayMS: 2000}, {BarWidth: 9}, {BarWidth: 81}} {
		_, err := applyFlagOverrides(stored, &params)
		requireCategory(t, err, cli.CategoryValidation)
	}
}

func TestRunShowValidatesBeforeOpeningDisplay(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	err := runShow(context.Background(), []string{"1234"}, &showParams{Backend: "gtk"})
	requireCategory(t, err, cli.CategoryValidation)

	err = runShow(context.Background(), []string{"zz"}, &showParams{Backend: backendTUI})
	requireCategory(t, err, cli.CategoryValidation)

	params := &showParams{Backend: backendTUI, DelayMS: 3}
	err = runShow(context.Background(), []string{"1234"}, params)
	requireCategory(t, err, cli.CategoryValidation)

	params = &showParams{Backend: backendTUI}
	params.Config.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")
	err = runShow(context.Background(), []string{"1234"}, params)
	requireCategory(t, err, cli.CategoryNotFound)
}

func TestConfigFlagsLoad(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	flags := ConfigFlags{LogLevel: "debug"}
	cfg, err := flags.load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if level(cfg) != slog.LevelDebug {
		t.Errorf("level = %v, want debug", level(cfg))
	}

	flags = ConfigFlags{LogLevel: "loud"}
	_, err = flags.load()
	requireCategory(t, err, cli.CategoryValidation)

	path := filepath.Join(t.TempDir(), "chiptan.yaml")
	if err := os.WriteFile(path, []byte("flicker: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	flags = ConfigFlags{ConfigPath: path}
	_, err = flags.load()
	requireCategory(t, err, cli.CategoryValidation)
}

func TestCommandLoggerFollowsConfiguredLevel(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	ctx := context.Background()

	cfg, err := (&ConfigFlags{LogLevel: "debug"}).load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !commandLogger(cfg, "chiptan show").Enabled(ctx, slog.LevelDebug) {
		t.Error("--log-level debug: debug records disabled on the command logger")
	}

	path := filepath.Join(t.TempDir(), "chiptan.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: error\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = (&ConfigFlags{ConfigPath: path}).load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	logger := commandLogger(cfg, "chiptan show")
	if logger.Enabled(ctx, slog.LevelWarn) {
		t.Error("log.level error: warnings still reach stderr")
	}
	if !logger.Enabled(ctx, slog.LevelError) {
		t.Error("log.level error: errors disabled")
	}
}

func TestEncodeText(t *testing.T) {
	t.Parallel()
	var output bytes.Buffer
	if err := runEncode([]string{"1234"}, &encodeParams{Format: "text"}, &output, discard); err != nil {
		t.Fatalf("runEncode: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	// Header plus one line per frame of "0FFF1234".
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want 9:\n%s", len(lines), output.String())
	}
	if !strings.HasPrefix(lines[0], "# 0FFF1234 (8 frames") {
		t.Errorf("header = %q", lines[0])
	}
	if got := strings.Fields(lines[1]); len(got) != 2 || got[1] != "01111" {
		t.Errorf("first frame line = %q, want frame 01111", lines[1])
	}
}

func TestEncodeJSON(t *testing.T) {
	t.Parallel()
	var output bytes.Buffer
	if err := runEncode([]string{"1234"}, &encodeParams{Format: "JSON"}, &output, discard); err != nil {
		t.Fatalf("runEncode: %v", err)
	}
	var document framedoc.Document
	if err := json.Unmarshal(output.Bytes(), &document); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output.String())
	}
	if document.Length != 8 || document.Code != "0FFF1234" {
		t.Errorf("document = %+v", document)
	}
	if len(document.Fingerprint) != 16 {
		t.Errorf("fingerprint %q, want 16 hex characters", document.Fingerprint)
	}
}

func TestEncodeErrors(t *testing.T) {
	t.Parallel()
	var output bytes.Buffer
	err := runEncode([]string{"1234"}, &encodeParams{Format: "xml"}, &output, discard)
	requireCategory(t, err, cli.CategoryValidation)

	err = runEncode(nil, &encodeParams{Format: "text"}, &output, discard)
	requireCategory(t, err, cli.CategoryValidation)

	if output.Len() != 0 {
		t.Errorf("errors wrote output: %q", output.String())
	}
}

func TestClassifyServeError(t *testing.T) {
	t.Parallel()
	if err := classifyServeError(nil); err != nil {
		t.Errorf("nil: %v", err)
	}
	if err := classifyServeError(fmt.Errorf("shutdown: %w", context.Canceled)); err != nil {
		t.Errorf("canceled: %v", err)
	}

	inUse := fmt.Errorf("listening on :80: %w", syscall.EADDRINUSE)
	requireCategory(t, classifyServeError(inUse), cli.CategoryConflict)

	denied := fmt.Errorf("listening on :80: %w", syscall.EACCES)
	requireCategory(t, classifyServeError(denied), cli.CategoryForbidden)

	requireCategory(t, classifyServeError(errors.New("boom")), cli.CategoryTransient)
}

func TestServeRejectsArguments(t *testing.T) {
	t.Parallel()
	err := serveCommand().Run(context.Background(), []string{"extra"}, discard)
	requireCategory(t, err, cli.CategoryValidation)
}
