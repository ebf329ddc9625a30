// resources.go implements MCP resource handlers for tag listings.
//
// Resources give clients read-only context without a tool call. The
// genie://tags resource lists every tag in use, and genie://paths/{path}
// returns the tags on one path.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/genie/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	tagsURI     = "genie://tags"
	pathsPrefix = "genie://paths/"
)

// ErrInvalidURI indicates a malformed resource URI.
var ErrInvalidURI = errors.New("invalid URI")

func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcp.NewResource(tagsURI, "Tags",
			mcp.WithResourceDescription("Every tag in use, one per line"),
			mcp.WithMIMEType("text/plain"),
		),
		h.readTags,
	)

	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			pathsPrefix+"{path}",
			"Path Tags",
			mcp.WithTemplateDescription("Tags on a file path, one per line"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readPathTags,
	)
}

func (h *handlers) readTags(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	tags, err := h.svc.AllTags(ctx)
	log.Event("mcp:resource_tags", "list_tags").Count(len(tags)).Write(err)
	if err != nil {
		return nil, err
	}
	return textResource(req.Params.URI, tags), nil
}

func (h *handlers) readPathTags(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	path, err := parsePathURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	tags, err := h.svc.ListTags(ctx, path)
	log.Event("mcp:resource_path", "list_tags").Path(path).Count(len(tags)).Write(err)
	if err != nil {
		return nil, err
	}
	return textResource(req.Params.URI, tags), nil
}

// parsePathURI extracts the file path from genie://paths/{path}. The path
// keeps its leading slash, so genie://paths//home/me/a.txt and
// genie://paths/home/me/a.txt name the same file.
func parsePathURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, pathsPrefix)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	if rest == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidURI)
	}
	if !strings.HasPrefix(rest, "/") && !strings.HasPrefix(rest, "~") {
		rest = "/" + rest
	}
	return rest, nil
}

func textResource(uri string, lines []string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     strings.Join(lines, "\n"),
		},
	}
}
