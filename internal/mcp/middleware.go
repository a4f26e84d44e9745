package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/databricks-mcp/internal/common"
	"github.com/bobmcallan/databricks-mcp/internal/metrics"
)

// toolMiddleware tags each tool call with a correlation id, logs it and
// records its outcome.
func toolMiddleware(logger *common.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			tool := r.Params.Name
			callLogger := logger.WithCorrelationId(uuid.NewString())
			ctx = withCallLogger(ctx, callLogger)

			callLogger.Debug().Str("tool", tool).Int("args", len(r.GetArguments())).Msg("tool call started")

			start := time.Now()
			result, err := next(ctx, r)
			duration := time.Since(start)

			outcome := metrics.OutcomeSuccess
			if err != nil || result == nil || result.IsError {
				outcome = metrics.OutcomeError
			}
			metrics.RecordToolCall(tool, outcome, duration)

			callLogger.Info().
				Str("tool", tool).
				Str("outcome", outcome).
				Int64("duration_ms", duration.Milliseconds()).
				Msg("tool call finished")

			return result, err
		}
	}
}
