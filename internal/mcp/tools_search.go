// tools_search.go implements the MCP search tools.
//
// Malformed queries come back as tool errors carrying the column and the
// expected token, so the model can correct the expression and retry.

package mcp

import (
	"context"
	"strings"

	"github.com/jpl-au/genie/internal/glob"
	"github.com/jpl-au/genie/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// search handles genie_search tool calls.
func (h *handlers) search(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}
	under := getString(req, "under", "")

	paths, err := h.svc.Search(ctx, query)
	if err == nil && under != "" {
		paths, err = glob.Filter(paths, under)
	}

	log.Event("mcp:genie_search", "search").Query(query).Detail("under", under).Count(len(paths)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if paths == nil {
		paths = []string{}
	}
	return jsonResult(paths)
}

// searchSimple handles genie_search_simple tool calls.
func (h *handlers) searchSimple(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("tags")
	if err != nil {
		return mcp.NewToolResultError("tags is required"), nil //nolint:nilerr
	}
	tags := strings.Fields(raw)

	paths, err := h.svc.SearchAll(ctx, tags)

	log.Event("mcp:genie_search_simple", "search").Query(raw).Count(len(paths)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if paths == nil {
		paths = []string{}
	}
	return jsonResult(paths)
}
