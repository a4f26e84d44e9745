package server

import (
	"encoding/json"
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bobmcallan/databricks-mcp/internal/config"
)

// StreamablePath is where the streamable HTTP transport is mounted.
const StreamablePath = "/mcp"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// MCP endpoint
	switch s.cfg.Server.Transport {
	case config.TransportSSE:
		sse := mcpserver.NewSSEServer(s.mcp)
		mux.Handle(sse.CompleteSsePath(), sse)
		mux.Handle(sse.CompleteMessagePath(), sse)
		s.logger.Debug().Str("sse", sse.CompleteSsePath()).Str("message", sse.CompleteMessagePath()).Msg("SSE transport mounted")
	default:
		mux.Handle(StreamablePath, mcpserver.NewStreamableHTTPServer(s.mcp,
			mcpserver.WithStateLess(true),
		))
		s.logger.Debug().Str("path", StreamablePath).Msg("streamable HTTP transport mounted")
	}

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("/", s.handleNotFound)

	return mux
}

// handleHealth reports liveness. It does not contact Databricks.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"version":   config.GetVersion(),
		"transport": s.cfg.Server.Transport,
	})
}

// handleNotFound returns a JSON 404 for unmatched routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
