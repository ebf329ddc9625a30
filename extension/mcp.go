// mcp.go defines the types extensions use to contribute MCP tools.
//
// Not every extension exposes tools; core only provides CLI commands.

package extension

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler processes an MCP tool request. ctx carries cancellation from
// the client; extCtx carries the tag service.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
