// tools_tags.go implements MCP tools for tagging operations.
//
// Tag operations are idempotent: adding an existing tag or removing an
// absent one succeeds, so LLM workflows need not track current state.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/genie/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// tagAdd handles genie_tag tool calls.
func (h *handlers) tagAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError("tag is required"), nil //nolint:nilerr
	}

	canon, err := h.svc.Canonical(path)
	if err == nil {
		err = h.svc.Tag(ctx, canon, tag)
	}

	log.Event("mcp:genie_tag", "tag").Path(path).Resolved(canon).Tag(tag).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("tagged %s with %q", canon, tag)), nil
}

// tagRemove handles genie_untag tool calls.
func (h *handlers) tagRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError("tag is required"), nil //nolint:nilerr
	}

	var removed bool
	canon, err := h.svc.Canonical(path)
	if err == nil {
		removed, err = h.svc.Untag(ctx, canon, tag)
	}

	log.Event("mcp:genie_untag", "untag").Path(path).Resolved(canon).Tag(tag).
		Detail("removed", removed).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !removed {
		return mcp.NewToolResultText(fmt.Sprintf("%s was not tagged %q", canon, tag)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("removed %q from %s", tag, canon)), nil
}

// listTags handles genie_tags tool calls.
func (h *handlers) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := getString(req, "path", "")

	var tags []string
	var err error
	if path == "" {
		tags, err = h.svc.AllTags(ctx)
	} else {
		tags, err = h.svc.ListTags(ctx, path)
	}

	log.Event("mcp:genie_tags", "list_tags").Path(path).Count(len(tags)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if tags == nil {
		tags = []string{}
	}
	return jsonResult(tags)
}
