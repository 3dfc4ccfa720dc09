// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the chiptan command tree.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/bureau-foundation/chiptan/cmd/chiptan/cli"
	"github.com/bureau-foundation/chiptan/lib/version"
)

// Root builds and returns the complete chiptan command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "chiptan",
		Description: `chiptan: ChipTAN optical flicker codes.

Encodes a banking challenge into the five-bar flicker code read by
ChipTAN optisch generators, shows it in the terminal, and serves the
encoded frames to other displays.`,
		Subcommands: []*cli.Command{
			showCommand(),
			encodeCommand(),
			serveCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					version.Print(os.Stdout, "chiptan")
					return nil
				},
			},
		},
	}
}
