// init.go implements the "genie init" command.
//
// Init runs before a store exists. It creates .genie/ in the current
// directory with an empty store, which then takes precedence over the
// global store for commands run anywhere below it.

package core

import (
	"fmt"

	"github.com/jpl-au/genie/cmd"
	"github.com/jpl-au/genie/extension"
	"github.com/jpl-au/genie/internal/log"
	"github.com/jpl-au/genie/internal/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Create a tag store for the current directory",
		Long: `Creates .genie/genie.json in the current directory.

Commands run in this directory or below use it instead of the global store.

  genie init                    # JSON file store
  genie init --backend sqlite   # creates .genie/genie.db
  genie init --force            # empty an existing store`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagForce, "f", false, "Replace an existing store")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	force, _ := c.Flags().GetBool(extension.FlagForce)

	p, err := repo.Init(".", cmd.Backend(), force)

	log.Event("core:init", "init").
		Resolved(p).
		Detail("backend", cmd.Backend()).
		Detail("force", force).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"store": p})
	}
	fmt.Fprintf(cmd.Out(), "Initialised genie store in %s\n", p)
	return nil
}
