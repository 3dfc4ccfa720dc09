// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"log/slog"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/chiptan/cmd/chiptan/cli"
	"github.com/bureau-foundation/chiptan/lib/flickerhttp"
)

type serveParams struct {
	Config ConfigFlags
	Listen string `flag:"listen,l" desc:"listen address (default: server.listen from config)"`
}

func serveCommand() *cli.Command {
	var params serveParams
	return &cli.Command{
		Name:    "serve",
		Summary: "Serve encoded frames over HTTP",
		Description: `Serve flicker frames to displays that cannot run the encoder.

GET /v1/frames/{challenge} returns the frame document as JSON, or as
CBOR when the request accepts application/cbor. GET /healthz reports
liveness. Challenges are never logged; requests are correlated by
fingerprint and X-Request-Id.`,
		Usage: "chiptan serve [flags]",
		Examples: []cli.Example{
			{
				Description: "Serve on the configured address",
				Command:     "chiptan serve",
			},
			{
				Description: "Serve on all interfaces",
				Command:     "chiptan serve --listen :8650",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("serve", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0]).
					WithHint("Usage: chiptan serve [flags]")
			}
			cfg, err := params.Config.load()
			if err != nil {
				return err
			}
			listen := cfg.Server.Listen
			if params.Listen != "" {
				listen = params.Listen
			}

			serverLogger := commandLogger(cfg, "chiptan serve")
			server, err := flickerhttp.NewServer(flickerhttp.ServerConfig{
				ListenAddress: listen,
				Logger:        serverLogger,
			})
			if err != nil {
				return cli.Validation("%w", err).
					WithHint("Set server.listen in the config or pass --listen.")
			}
			return classifyServeError(server.ListenAndServe(ctx))
		},
	}
}

// classifyServeError maps listener failures onto error categories.
func classifyServeError(err error) error {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return nil
	case errors.Is(err, syscall.EADDRINUSE):
		return cli.Conflict("%w", err).
			WithHint("Another process holds the address. Pass --listen with a free port.")
	case errors.Is(err, syscall.EACCES):
		return cli.Forbidden("%w", err).
			WithHint("Ports below 1024 need privileges. Pass --listen with a higher port.")
	default:
		return cli.Transient("%w", err)
	}
}
