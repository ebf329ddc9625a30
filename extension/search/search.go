// Package search provides the search extension for genie.
// It registers the search command and the genie_explain MCP tool.
package search

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/genie/cmd"
	"github.com/jpl-au/genie/extension"
	"github.com/jpl-au/genie/internal/log"
	"github.com/jpl-au/genie/internal/search"
	"github.com/jpl-au/genie/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the search command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newSearchCmd(),
	}
}

// MCPTools returns genie_explain. The tool takes its service from the
// extension Context so it works inside "genie serve", which never runs
// Init on extensions.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("genie_explain",
				mcp.WithDescription("Show how a tag expression groups, fully parenthesised, without running it"),
				mcp.WithString("query", mcp.Required(), mcp.Description("Tag expression")),
			),
			Handler: explainTool,
		},
	}
}

func explainTool(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}

	s, err := extCtx.Service().Explain(q)

	log.Event("mcp:genie_explain", "explain").Query(q).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s), nil
}

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "search <expression>...",
		Aliases: []string{"s"},
		Short:   "Find paths matching a tag expression",
		Long: `Find paths whose tags satisfy a boolean expression.

Operators, tightest first: not (!), and (&), xor (^), or (|).
Parentheses group. Arguments are joined with spaces.

  genie search photo and not blurry
  genie search '(notes | photo) & beach'
  genie search photo --under ~/photos --tree
  genie search --all photo summer     # literal tags, all required
  genie search --explain 'a | b & c'  # (a or (b and c))

See "genie guide query" for the full language.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runSearch,
	}
	c.Flags().BoolP(extension.FlagAll, "a", false, "Treat arguments as literal tags that must all match")
	c.Flags().StringP(extension.FlagUnder, "u", "", "Keep only paths under a directory or matching a glob")
	c.Flags().Bool(extension.FlagExplain, false, "Print how the query groups instead of running it")
	c.Flags().BoolP(extension.FlagCount, "c", false, "Print only the number of matches")
	c.Flags().BoolP(extension.FlagTree, "t", false, "Print matches as a directory tree")
	return c
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	var opts search.Options
	opts.All, _ = c.Flags().GetBool(extension.FlagAll)
	opts.Under, _ = c.Flags().GetString(extension.FlagUnder)
	opts.Explain, _ = c.Flags().GetBool(extension.FlagExplain)
	opts.Count, _ = c.Flags().GetBool(extension.FlagCount)
	opts.Tree, _ = c.Flags().GetBool(extension.FlagTree)

	w := cmd.Out()
	if cmd.Structured() {
		w = io.Discard
	}

	l := log.Event("search:search", "search").
		Detail("under", opts.Under).
		Detail("all", opts.All)

	result, err := search.Run(c.Context(), w, e.svc, args, opts)
	l.Query(result.Query)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("search: %w", err))
	}
	l.Count(result.Count).Write(nil)

	if cmd.Alfred() {
		return cmd.PrintAlfred(result.Paths)
	}
	return cmd.PrintJSON(result)
}
