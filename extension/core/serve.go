// serve.go implements the "genie serve" command.
//
// Unlike other commands serve blocks handling MCP requests over stdio, so
// it opens and closes its own service instead of the shared one created
// in PersistentPreRunE.

package core

import (
	"github.com/jpl-au/genie/cmd"
	"github.com/jpl-au/genie/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Use --db to serve a specific store:
  genie serve --db ~/work/.genie/genie.json`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return mcp.Serve(c.Context(), cmd.DB(), cmd.Backend())
		},
	}
}
