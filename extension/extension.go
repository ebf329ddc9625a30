// Package extension provides the plugin architecture for genie. Extensions
// bundle related commands and MCP tools and register themselves at init
// time, so the root command and the MCP server only see the registry.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for genie extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions run setup once the tag store is open.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't open the tag store. Commands returned by NoStoreCommands() skip
// store initialisation in PersistentPreRunE.
//
// Typical cases are bootstrap commands (init), commands that open their
// own service (serve) and informational commands (version, guide).
type Storeless interface {
	NoStoreCommands() []string
}
