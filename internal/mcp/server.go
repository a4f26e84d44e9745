// Package mcp exposes the Databricks client as MCP tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/databricks-mcp/internal/common"
	"github.com/bobmcallan/databricks-mcp/internal/config"
	"github.com/bobmcallan/databricks-mcp/internal/interfaces"
)

const instructions = "Use this server to manage Databricks resources: clusters, jobs and runs, workspace notebooks, DBFS files and SQL statements. " +
	"Every tool returns the Databricks API response as JSON, or {\"error\": message} on failure. " +
	"List tools return one page; pass next_page_token back as page_token to continue."

// NewServer creates the MCP server with every Databricks tool registered.
func NewServer(cfg *config.Config, client interfaces.DatabricksClient, logger *common.Logger) *server.MCPServer {
	mcpSrv := server.NewMCPServer(
		cfg.Server.Name,
		config.GetVersion(),
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(toolMiddleware(logger)),
	)

	toolCount := RegisterTools(mcpSrv, client, logger)

	logger.Info().
		Int("tools", toolCount).
		Str("host", client.Host()).
		Str("transport", cfg.Server.Transport).
		Msg("MCP server initialized")

	return mcpSrv
}
