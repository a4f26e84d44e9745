package mcp

import (
	"fmt"
	"regexp"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bobmcallan/databricks-mcp/internal/common"
)

// toolNamePattern restricts tool names to what MCP clients accept.
var toolNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

// CatalogTool describes one tool: its wire contract and the client call it
// dispatches to.
type CatalogTool struct {
	Name        string
	Description string
	Params      []CatalogParam
	call        callFunc
}

// CatalogParam describes one parameter for a catalog tool.
type CatalogParam struct {
	Name        string
	Type        string // string, number, boolean, object
	Description string
	Required    bool
	Enum        []string
}

// ValidateCatalogTool validates a single catalog tool entry.
func ValidateCatalogTool(ct CatalogTool) error {
	if ct.Name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if !toolNamePattern.MatchString(ct.Name) {
		return fmt.Errorf("tool %q has invalid name", ct.Name)
	}
	if ct.Description == "" {
		return fmt.Errorf("tool %q has empty description", ct.Name)
	}
	if ct.call == nil {
		return fmt.Errorf("tool %q has no handler", ct.Name)
	}
	seen := make(map[string]bool, len(ct.Params))
	for _, p := range ct.Params {
		if p.Name == "" {
			return fmt.Errorf("tool %q has a parameter with empty name", ct.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("tool %q declares parameter %q twice", ct.Name, p.Name)
		}
		seen[p.Name] = true
		switch p.Type {
		case "string", "number", "boolean", "object":
		default:
			return fmt.Errorf("tool %q parameter %q has unsupported type %q", ct.Name, p.Name, p.Type)
		}
	}
	return nil
}

// ValidateCatalog filters and validates catalog entries, logging warnings for invalid or duplicate tools.
func ValidateCatalog(catalog []CatalogTool, logger *common.Logger) []CatalogTool {
	seen := make(map[string]bool, len(catalog))
	valid := make([]CatalogTool, 0, len(catalog))
	for _, ct := range catalog {
		if err := ValidateCatalogTool(ct); err != nil {
			logger.Warn().Str("error", err.Error()).Msg("skipping invalid catalog tool")
			continue
		}
		if seen[ct.Name] {
			logger.Warn().Str("name", ct.Name).Msg("skipping duplicate catalog tool")
			continue
		}
		seen[ct.Name] = true
		valid = append(valid, ct)
	}
	return valid
}

// BuildMCPTool converts a CatalogTool into an mcp.Tool with the appropriate schema.
func BuildMCPTool(ct CatalogTool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(ct.Description)}
	for _, p := range ct.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(ct.Name, opts...)
}

// buildParamOption maps a CatalogParam to the appropriate mcp-go tool option.
func buildParamOption(p CatalogParam) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}
	if len(p.Enum) > 0 {
		opts = append(opts, mcp.Enum(p.Enum...))
	}

	switch p.Type {
	case "number":
		return mcp.WithNumber(p.Name, opts...)
	case "boolean":
		return mcp.WithBoolean(p.Name, opts...)
	case "object":
		return mcp.WithObject(p.Name, opts...)
	default:
		return mcp.WithString(p.Name, opts...)
	}
}
