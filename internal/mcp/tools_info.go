// tools_info.go implements the informational MCP tools: status, examples,
// guide and version. None of them modify the store.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/genie/guide"
	"github.com/jpl-au/genie/internal/log"
	"github.com/jpl-au/genie/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
)

// statusResult is the genie_status payload.
type statusResult struct {
	Store   string `json:"store"`
	Backend string `json:"backend"`
	Paths   int    `json:"paths"`
	Tags    int    `json:"tags"`
	Pairs   int    `json:"pairs"`
	Version string `json:"version"`
}

// status handles genie_status tool calls.
func (h *handlers) status(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.svc.Stats(ctx)

	log.Event("mcp:genie_status", "status").Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(statusResult{
		Store:   h.svc.Location(),
		Backend: h.svc.Backend(),
		Paths:   stats.Paths,
		Tags:    stats.Tags,
		Pairs:   stats.Pairs,
		Version: version.Short(),
	})
}

// examples handles genie_examples tool calls.
func (h *handlers) examples(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := guide.Get("examples")
	if err != nil {
		return nil, fmt.Errorf("loading examples: %w", err)
	}
	return mcp.NewToolResultText(content), nil
}

// getGuide handles genie_guide tool calls.
func (h *handlers) getGuide(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := getString(req, "topic", "")

	content, err := guide.Get(topic)

	log.Event("mcp:genie_guide", "read").Detail("topic", topic).Write(err)

	if err != nil {
		// If topic not found, return list of available topics
		topics, listErr := guide.List()
		if listErr != nil {
			return nil, fmt.Errorf("listing guides: %w", listErr)
		}
		return jsonResult(map[string]any{
			"error":            err.Error(),
			"available_topics": topics,
		})
	}
	return mcp.NewToolResultText(content), nil
}

// versionInfo handles genie_version tool calls.
func (h *handlers) versionInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(version.Get())
}
