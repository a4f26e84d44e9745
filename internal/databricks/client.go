// Package databricks is a thin client for the Databricks REST API. Each
// method issues exactly one request and returns the decoded JSON body.
package databricks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bobmcallan/databricks-mcp/internal/common"
	"github.com/bobmcallan/databricks-mcp/internal/config"
	"github.com/bobmcallan/databricks-mcp/internal/metrics"
)

// maxResponseSize caps the response body to prevent OOM from unexpectedly large responses.
const maxResponseSize = 50 << 20 // 50MB

// Response is a decoded Databricks JSON object. Numbers are kept as
// json.Number so 64-bit ids re-encode exactly.
type Response map[string]any

// Client talks to one Databricks workspace.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	userAgent  string
}

// NewClient creates a client for the workspace in cfg. Authentication is
// attached to the underlying transport, see newHTTPClient.
func NewClient(cfg config.DatabricksConfig, logger *common.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL(),
		httpClient: newHTTPClient(cfg),
		logger:     logger,
		userAgent:  config.UserAgent(),
	}
}

// Host returns the workspace base URL.
func (c *Client) Host() string {
	return c.baseURL
}

// get performs a GET request with optional query parameters.
func (c *Client) get(ctx context.Context, path string, query url.Values) (Response, error) {
	return c.do(ctx, http.MethodGet, path, path, query, nil)
}

// getRoute is get for paths carrying caller-supplied segments. route is
// the path template recorded in metrics, e.g. ".../statements/{statement_id}".
func (c *Client) getRoute(ctx context.Context, route, path string, query url.Values) (Response, error) {
	return c.do(ctx, http.MethodGet, route, path, query, nil)
}

// post performs a POST request with a JSON body.
func (c *Client) post(ctx context.Context, path string, body any) (Response, error) {
	return c.do(ctx, http.MethodPost, path, path, nil, body)
}

func (c *Client) do(ctx context.Context, method, route, path string, query url.Values, data any) (Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	c.logger.Debug().Str("method", method).Str("path", path).Str("query", query.Encode()).Msg("databricks request")

	var bodyReader io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, &RemoteAPIError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		metrics.RecordRemoteRequest(method, route, 0, duration)
		c.logger.Error().Str("method", method).Str("path", path).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("databricks request failed")
		return nil, &RemoteAPIError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	metrics.RecordRemoteRequest(method, route, resp.StatusCode, duration)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &RemoteAPIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read response: %v", err), Err: err}
	}

	c.logger.Debug().Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Int("bytes", len(body)).Msg("databricks response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseErrorResponse(resp.StatusCode, body)
	}

	return decodeResponse(body)
}

// decodeResponse decodes a success body. An empty body (as returned by
// several mutating endpoints) decodes to an empty object.
func decodeResponse(body []byte) (Response, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Response{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var out Response
	if err := dec.Decode(&out); err != nil {
		return nil, &DecodeError{Body: snippet(trimmed), Err: err}
	}
	if dec.More() {
		return nil, &DecodeError{Body: snippet(trimmed), Err: errors.New("unexpected data after JSON object")}
	}
	if out == nil {
		out = Response{}
	}
	return out, nil
}
