package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/genie/internal/config"
	"github.com/jpl-au/genie/internal/log"
	"github.com/jpl-au/genie/internal/tagger"
)

func newHandlers(t *testing.T) *handlers {
	t.Helper()
	svc, err := tagger.Open(context.Background(), tagger.Options{
		Path: filepath.Join(t.TempDir(), "genie.json"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return &handlers{svc: svc}
}

func request(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, r)
	require.NotEmpty(t, r.Content)
	switch c := r.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("unexpected content type %T", r.Content[0])
	return ""
}

func decodePaths(t *testing.T, r *mcp.CallToolResult) []string {
	t.Helper()
	var paths []string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, r)), &paths))
	return paths
}

func tagVia(t *testing.T, h *handlers, path, tag string) {
	t.Helper()
	r, err := h.tagAdd(context.Background(), request(map[string]any{"path": path, "tag": tag}))
	require.NoError(t, err)
	require.False(t, r.IsError, resultText(t, r))
}

func TestTagAndSearch(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	tagVia(t, h, "/a", "x")
	tagVia(t, h, "/a", "y")
	tagVia(t, h, "/b", "y")
	tagVia(t, h, "/b", "z")

	r, err := h.search(ctx, request(map[string]any{"query": "y and not z"}))
	require.NoError(t, err)
	assert.False(t, r.IsError)
	assert.Equal(t, []string{filepath.Clean("/a")}, decodePaths(t, r))

	r, err = h.searchSimple(ctx, request(map[string]any{"tags": "y z"}))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Clean("/b")}, decodePaths(t, r))
}

func TestSearch_Under(t *testing.T) {
	h := newHandlers(t)
	tagVia(t, h, "/photos/a.jpg", "x")
	tagVia(t, h, "/docs/b.txt", "x")

	r, err := h.search(context.Background(), request(map[string]any{"query": "x", "under": "/photos"}))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Clean("/photos/a.jpg")}, decodePaths(t, r))
}

func TestSearch_ParseErrorIsToolError(t *testing.T) {
	h := newHandlers(t)

	r, err := h.search(context.Background(), request(map[string]any{"query": "a and"}))
	require.NoError(t, err, "query errors are tool errors, not protocol errors")
	assert.True(t, r.IsError)
	assert.Contains(t, resultText(t, r), "parse error at column")
}

func TestSearch_MissingQuery(t *testing.T) {
	h := newHandlers(t)

	r, err := h.search(context.Background(), request(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, r.IsError)
}

func TestTag_InvalidTag(t *testing.T) {
	h := newHandlers(t)

	r, err := h.tagAdd(context.Background(), request(map[string]any{"path": "/a", "tag": "   "}))
	require.NoError(t, err)
	assert.True(t, r.IsError)
}

func TestUntag(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()
	tagVia(t, h, "/a", "x")

	r, err := h.tagRemove(ctx, request(map[string]any{"path": "/a", "tag": "x"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, r), "removed")

	r, err = h.tagRemove(ctx, request(map[string]any{"path": "/a", "tag": "x"}))
	require.NoError(t, err)
	assert.False(t, r.IsError)
	assert.Contains(t, resultText(t, r), "was not tagged")
}

func TestListTags(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()
	tagVia(t, h, "/a", "x")
	tagVia(t, h, "/b", "y")

	r, err := h.listTags(ctx, request(map[string]any{"path": "/a"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, decodePaths(t, r))

	r, err = h.listTags(ctx, request(map[string]any{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, decodePaths(t, r))
}

func TestStatus(t *testing.T) {
	h := newHandlers(t)
	tagVia(t, h, "/a", "x")

	r, err := h.status(context.Background(), request(nil))
	require.NoError(t, err)

	var s statusResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, r)), &s))
	assert.Equal(t, "file", s.Backend)
	assert.Equal(t, 1, s.Paths)
	assert.Equal(t, 1, s.Pairs)
}

func TestGuideAndExamples(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	r, err := h.examples(ctx, request(nil))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, r), "genie search")

	r, err = h.getGuide(ctx, request(map[string]any{"topic": "query"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, r), "Precedence")

	r, err = h.getGuide(ctx, request(map[string]any{"topic": "nope"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, r), "available_topics")
}

func TestResources(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()
	tagVia(t, h, "/a", "x")
	tagVia(t, h, "/a", "y")

	var req mcp.ReadResourceRequest
	req.Params.URI = tagsURI
	contents, err := h.readTags(ctx, req)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "x\ny", contents[0].(mcp.TextResourceContents).Text)

	req.Params.URI = pathsPrefix + "a"
	contents, err = h.readPathTags(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "x\ny", contents[0].(mcp.TextResourceContents).Text)
}

func TestParsePathURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    string
		wantErr bool
	}{
		{"genie://paths//home/me/a.txt", "/home/me/a.txt", false},
		{"genie://paths/home/me/a.txt", "/home/me/a.txt", false},
		{"genie://paths/~/a.txt", "~/a.txt", false},
		{"genie://paths/", "", true},
		{"genie://tags", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := parsePathURI(tt.uri)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURI)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewServer(t *testing.T) {
	h := newHandlers(t)
	s := NewServer(h.svc, &config.Config{})
	assert.NotNil(t, s)
}

func TestAuditSourcesNameTools(t *testing.T) {
	t.Setenv("GENIE_HOME", t.TempDir())
	require.NoError(t, log.Open())
	t.Cleanup(log.Close)

	h := newHandlers(t)
	ctx := context.Background()

	tagVia(t, h, "/a", "x")
	_, err := h.tagRemove(ctx, request(map[string]any{"path": "/a", "tag": "x"}))
	require.NoError(t, err)
	_, err = h.listTags(ctx, request(map[string]any{}))
	require.NoError(t, err)
	_, err = h.search(ctx, request(map[string]any{"query": "x"}))
	require.NoError(t, err)
	_, err = h.searchSimple(ctx, request(map[string]any{"tags": "x"}))
	require.NoError(t, err)
	_, err = h.status(ctx, request(nil))
	require.NoError(t, err)
	_, err = h.getGuide(ctx, request(map[string]any{"topic": "query"}))
	require.NoError(t, err)

	db, err := sql.Open("sqlite", log.DBPath())
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`SELECT source FROM log ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()
	var sources []string
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		sources = append(sources, s)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []string{
		"mcp:genie_tag",
		"mcp:genie_untag",
		"mcp:genie_tags",
		"mcp:genie_search",
		"mcp:genie_search_simple",
		"mcp:genie_status",
		"mcp:genie_guide",
	}, sources)
}
