// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// chiptan shows ChipTAN flicker codes in the terminal, prints their
// frames, and serves them over HTTP.
//
//	chiptan show 1784011041         # flicker in the terminal, print the TAN
//	chiptan encode --format json 1784011041
//	chiptan serve --listen 127.0.0.1:8650
//
// See "chiptan --help" for the full command list.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/chiptan/cmd/chiptan/cli"
	"github.com/bureau-foundation/chiptan/cmd/chiptan/commands"
	"github.com/bureau-foundation/chiptan/lib/version"
)

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Handle --version before dispatch to match the version subcommand.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print(os.Stdout, "chiptan")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Commands that read the configuration replace this logger with
	// one at the configured level.
	return commands.Root().Execute(ctx, os.Args[1:], cli.NewCommandLogger(slog.LevelInfo))
}
