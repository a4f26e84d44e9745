package mcp

import (
	"context"

	"github.com/bobmcallan/databricks-mcp/internal/common"
)

// callLoggerKey is the context key for the per-call logger.
type callLoggerKey struct{}

// withCallLogger returns a new context carrying the logger for one tool call.
func withCallLogger(ctx context.Context, logger *common.Logger) context.Context {
	return context.WithValue(ctx, callLoggerKey{}, logger)
}

// loggerFromContext returns the per-call logger, or fallback outside a call.
func loggerFromContext(ctx context.Context, fallback *common.Logger) *common.Logger {
	if ctx == nil {
		return fallback
	}
	if l, ok := ctx.Value(callLoggerKey{}).(*common.Logger); ok {
		return l
	}
	return fallback
}
