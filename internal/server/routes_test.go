package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/databricks-mcp/internal/common"
	"github.com/bobmcallan/databricks-mcp/internal/config"
	"github.com/bobmcallan/databricks-mcp/internal/databricks"
	"github.com/bobmcallan/databricks-mcp/internal/mcp"
)

func newRoutedServer(t *testing.T, transport string) *Server {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Server.Transport = transport
	cfg.Databricks.Host = "http://127.0.0.1:1"
	cfg.Databricks.Token = "test-token"

	logger := common.NewSilentLogger()
	client := databricks.NewClient(cfg.Databricks, logger)
	return New(cfg, mcp.NewServer(cfg, client, logger), logger)
}

func TestRoutes_HealthEndpoint(t *testing.T) {
	s := newRoutedServer(t, config.TransportHTTP)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, config.TransportHTTP, body["transport"])
	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))
}

func TestRoutes_MetricsEndpoint(t *testing.T) {
	s := newRoutedServer(t, config.TransportHTTP)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRoutes_NotFound(t *testing.T) {
	s := newRoutedServer(t, config.TransportHTTP)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Not Found")
}

func TestRoutes_StreamableInitialize(t *testing.T) {
	s := newRoutedServer(t, config.TransportHTTP)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`
	req, _ := http.NewRequest(http.MethodPost, srv.URL+StreamablePath, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)

	require.Equal(t, http.StatusOK, resp.StatusCode, string(out))
	assert.Contains(t, string(out), "databricks-mcp")
}

func TestRoutes_SSEEndpointAnnouncesMessagePath(t *testing.T) {
	s := newRoutedServer(t, config.TransportSSE)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	req, _ := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL+"/sse", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream"))

	buf := make([]byte, 256)
	n, _ := resp.Body.Read(buf)
	assert.Contains(t, string(buf[:n]), "/message")
}

func TestNew_WriteTimeoutOnlyForStreamable(t *testing.T) {
	assert.Zero(t, newRoutedServer(t, config.TransportSSE).server.WriteTimeout)
	assert.NotZero(t, newRoutedServer(t, config.TransportHTTP).server.WriteTimeout)
}
