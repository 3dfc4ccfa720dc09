// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/chiptan/cmd/chiptan/cli"
	"github.com/bureau-foundation/chiptan/lib/flicker"
	"github.com/bureau-foundation/chiptan/lib/framedoc"
)

type encodeParams struct {
	Config ConfigFlags
	Format string `flag:"format,f" desc:"output format: text, json or cbor" default:"text"`
}

func encodeCommand() *cli.Command {
	var params encodeParams
	return &cli.Command{
		Name:    "encode",
		Summary: "Print the flicker frames of a challenge",
		Description: `Encode a challenge and print its frames without animating them.

Each frame is five bits, clock bar first. The text format prints one
frame per line; json and cbor print a document with the challenge
fingerprint, the code, its length and the frames.`,
		Usage: "chiptan encode [flags] <challenge>",
		Examples: []cli.Example{
			{
				Description: "Print frames one per line",
				Command:     "chiptan encode 1784011041",
			},
			{
				Description: "Write a CBOR document for another display",
				Command:     "chiptan encode --format cbor 1784011041 > frames.cbor",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("encode", &params)
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			cfg, err := params.Config.load()
			if err != nil {
				return err
			}
			return runEncode(args, &params, os.Stdout, commandLogger(cfg, "chiptan encode"))
		},
	}
}

func runEncode(args []string, params *encodeParams, stdout io.Writer, logger *slog.Logger) error {
	challenge, err := challengeArgument(args, "chiptan encode [flags] <challenge>")
	if err != nil {
		return err
	}
	format, err := framedoc.ParseFormat(params.Format)
	if err != nil {
		return cli.Validation("%w", err)
	}

	document := framedoc.New(challenge)
	logger.Debug("encoded challenge",
		"fingerprint", flicker.Fingerprint(challenge),
		"frames", len(document.Frames),
		"format", string(format),
	)
	if err := document.Write(stdout, format); err != nil {
		return cli.Internal("writing frames: %w", err)
	}
	return nil
}
