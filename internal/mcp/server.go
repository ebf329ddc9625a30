// Package mcp implements the Model Context Protocol server, exposing genie
// operations to LLMs. Assistants can tag paths and run tag queries through
// a standardised protocol instead of shelling out to the CLI.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/genie/extension"
	"github.com/jpl-au/genie/internal/config"
	"github.com/jpl-au/genie/internal/service"
	"github.com/jpl-au/genie/internal/tagger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve opens the tag store and runs the MCP server over stdio until the
// client disconnects. db and backend are the --db and --backend values.
func Serve(ctx context.Context, db, backend string) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	svc, err := tagger.New(ctx, db, backend)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		return err
	}
	defer svc.Close()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s := NewServer(svc, cfg)
	slog.Info("genie MCP server ready",
		"version", Version,
		"store", svc.Location(),
		"backend", svc.Backend(),
		"transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds an MCP server backed by svc with the built-in tools,
// the tag resource and every tool contributed by registered extensions.
func NewServer(svc service.Service, cfg *config.Config) *server.MCPServer {
	h := &handlers{svc: svc}

	s := server.NewMCPServer(
		"genie",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, extension.NewContext(svc, cfg))
	return s
}

// handlers provides MCP request handlers with access to the tag store.
type handlers struct {
	svc service.Service
}

// registerTools exposes genie operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("genie_tag",
			mcp.WithDescription("Add a tag to a file path. Adding a tag the path already has is a no-op."),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path (~ and relative paths are expanded)")),
			mcp.WithString("tag", mcp.Required(), mcp.Description("Tag to add (case-sensitive)")),
		),
		h.tagAdd,
	)

	s.AddTool(
		mcp.NewTool("genie_untag",
			mcp.WithDescription("Remove a tag from a file path. Removing an absent tag is not an error."),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
			mcp.WithString("tag", mcp.Required(), mcp.Description("Tag to remove")),
		),
		h.tagRemove,
	)

	s.AddTool(
		mcp.NewTool("genie_tags",
			mcp.WithDescription("List the tags on a path, or every tag in use if path is omitted"),
			mcp.WithString("path", mcp.Description("File path (optional)")),
		),
		h.listTags,
	)

	s.AddTool(
		mcp.NewTool("genie_search",
			mcp.WithDescription("Find paths matching a boolean tag expression, e.g. 'photo and (beach or sea) and not blurry'. Operators: not/!, and/&, xor/^, or/|, parentheses."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Tag expression")),
			mcp.WithString("under", mcp.Description("Keep only paths under this directory or matching this glob")),
		),
		h.search,
	)

	s.AddTool(
		mcp.NewTool("genie_search_simple",
			mcp.WithDescription("Find paths that carry every one of the given tags"),
			mcp.WithString("tags", mcp.Required(), mcp.Description("Space separated tags")),
		),
		h.searchSimple,
	)

	s.AddTool(
		mcp.NewTool("genie_status",
			mcp.WithDescription("Show the tag store location, backend and counts"),
		),
		h.status,
	)

	s.AddTool(
		mcp.NewTool("genie_examples",
			mcp.WithDescription("Show example tag queries"),
		),
		h.examples,
	)

	s.AddTool(
		mcp.NewTool("genie_guide",
			mcp.WithDescription("Get help/guide content for genie commands and the query language"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'query', 'search') or empty for index")),
		),
		h.getGuide,
	)

	s.AddTool(
		mcp.NewTool("genie_version",
			mcp.WithDescription("Show genie build information"),
		),
		h.versionInfo,
	)
}

// registerExtensionTools adds the MCP tools contributed by extensions.
// Extension handlers take the extension Context as well as the request,
// so each is wrapped in a closure binding extCtx.
func registerExtensionTools(s *server.MCPServer, extCtx extension.Context) {
	for _, t := range extension.Tools() {
		handler := t.Handler
		s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handler(ctx, extCtx, req)
		})
	}
}
