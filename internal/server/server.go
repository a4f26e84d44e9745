// Package server hosts the MCP server over HTTP for the sse and http
// transports, next to /health and /metrics.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/databricks-mcp/internal/common"
	"github.com/bobmcallan/databricks-mcp/internal/config"
)

// Server manages the HTTP server and routes.
type Server struct {
	cfg    *config.Config
	mcp    *mcpserver.MCPServer
	router *http.ServeMux
	server *http.Server
	logger *common.Logger
}

// New creates an HTTP server exposing mcpSrv with the transport in cfg.
func New(cfg *config.Config, mcpSrv *mcpserver.MCPServer, logger *common.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		mcp:    mcpSrv,
		logger: logger,
	}

	s.router = s.setupRoutes()

	s.server = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.withMiddleware(s.router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if cfg.Server.Transport != config.TransportSSE {
		// A tool call may wait for the full Databricks timeout. SSE streams stay open.
		s.server.WriteTimeout = cfg.Databricks.GetTimeout() + 30*time.Second
	}

	return s
}

// Start starts the HTTP server. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.logger.Info().
		Str("address", s.server.Addr).
		Str("transport", s.cfg.Server.Transport).
		Str("url", fmt.Sprintf("http://%s", s.server.Addr)).
		Msg("HTTP server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server. Connections still open when
// ctx expires are closed.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		s.server.Close()
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
