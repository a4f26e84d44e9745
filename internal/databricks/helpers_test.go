package databricks

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/bobmcallan/databricks-mcp/internal/common"
	"github.com/bobmcallan/databricks-mcp/internal/config"
)

type recordedRequest struct {
	Method  string
	Path    string
	Query   url.Values
	Header  http.Header
	RawBody string
	Body    map[string]any
}

type stubServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
}

func (s *stubServer) Requests() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]recordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// newStubServer returns a server that records every request and answers
// with status and body.
func newStubServer(t *testing.T, status int, body string) *stubServer {
	t.Helper()
	s := &stubServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rec := recordedRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			Query:   r.URL.Query(),
			Header:  r.Header.Clone(),
			RawBody: string(raw),
		}
		if len(raw) > 0 {
			json.Unmarshal(raw, &rec.Body)
		}
		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(s.Close)
	return s
}

func newTestClient(serverURL string) *Client {
	return NewClient(config.DatabricksConfig{Host: serverURL, Token: "test-token", Timeout: "5s"}, common.NewSilentLogger())
}
