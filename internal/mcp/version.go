package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/databricks-mcp/internal/config"
)

// versionInfo is the get_version payload.
type versionInfo struct {
	Version string `json:"version"`
	Build   string `json:"build"`
	Commit  string `json:"commit"`
	Host    string `json:"host"`
}

// VersionTool returns the mcp.Tool definition for get_version.
func VersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the databricks-mcp version and the Databricks workspace it targets. Makes no call to Databricks."),
	)
}

// VersionToolHandler returns a handler reporting build info and the configured host.
func VersionToolHandler(host string) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(versionInfo{
			Version: config.GetVersion(),
			Build:   config.GetBuild(),
			Commit:  config.GetGitCommit(),
			Host:    host,
		}), nil
	}
}
