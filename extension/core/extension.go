// Package core provides the core extension for genie.
// It registers commands: init, config, serve, guide, status, version.
package core

import (
	"github.com/jpl-au/genie/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Storeless = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Commands returns the store-management and informational commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newStatusCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil. The core tools are built into the MCP server.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve opens its own long-lived service; version needs no store.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "version"}
}
