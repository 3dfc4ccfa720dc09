// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package flickerhttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// shutdownTimeout bounds the graceful shutdown after the serving
// context is done.
const shutdownTimeout = 5 * time.Second

// ServerConfig holds configuration for creating a Server.
type ServerConfig struct {
	ListenAddress string // e.g. "127.0.0.1:8650"
	Logger        *slog.Logger
}

// Server serves the frame endpoints over TCP.
type Server struct {
	listenAddress string
	httpServer    *http.Server
	logger        *slog.Logger
}

// NewServer creates a server for config.
func NewServer(config ServerConfig) (*Server, error) {
	if config.ListenAddress == "" {
		return nil, fmt.Errorf("listen address is required")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		listenAddress: config.ListenAddress,
		httpServer: &http.Server{
			Handler:           NewRouter(logger),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
		logger: logger,
	}, nil
}

// ListenAndServe listens on the configured address and serves until
// ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.listenAddress)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.listenAddress, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.logger.Info("frame server started", "address", listener.Addr().String())

	serveErrors := make(chan error, 1)
	go func() {
		serveErrors <- s.httpServer.Serve(listener)
	}()

	select {
	case err := <-serveErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving frames: %w", err)
	case <-ctx.Done():
	}

	shutdownContext, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownContext); err != nil {
		return fmt.Errorf("shutting down frame server: %w", err)
	}
	s.logger.Info("frame server stopped")
	return nil
}
