// Package metrics holds the prometheus collectors for tool calls and
// outbound Databricks requests.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const prefix = "databricks_mcp_"

// Tool call outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var toolCallsCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: prefix + "tool_calls_total",
		Help: "Number of MCP tool invocations",
	},
	[]string{"tool", "outcome"},
)

var toolDurationHist = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    prefix + "tool_duration_seconds",
		Help:    "Time taken to serve one MCP tool invocation",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"tool"},
)

var remoteRequestsCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: prefix + "remote_requests_total",
		Help: "Number of requests sent to the Databricks REST API",
	},
	[]string{"method", "route", "status"},
)

var remoteDurationHist = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    prefix + "remote_request_duration_seconds",
		Help:    "Round-trip time of Databricks REST API requests",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 300},
	},
	[]string{"method", "route"},
)

// RecordToolCall records one finished tool invocation.
func RecordToolCall(tool, outcome string, duration time.Duration) {
	toolCallsCounter.WithLabelValues(tool, outcome).Inc()
	toolDurationHist.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordRemoteRequest records one outbound request. route must be a path
// template, never a path holding caller-supplied ids. A status of 0 means
// the request never got a response.
func RecordRemoteRequest(method, route string, status int, duration time.Duration) {
	statusLabel := "transport_error"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}
	remoteRequestsCounter.WithLabelValues(method, route, statusLabel).Inc()
	remoteDurationHist.WithLabelValues(method, route).Observe(duration.Seconds())
}
