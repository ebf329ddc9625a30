// Package transfer provides the transfer extension for genie.
// It registers commands: export, import.
package transfer

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/genie/cmd"
	"github.com/jpl-au/genie/extension"
	"github.com/jpl-au/genie/internal/log"
	"github.com/jpl-au/genie/internal/service"
	"github.com/jpl-au/genie/internal/transfer"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the transfer extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "transfer".
func (e *Extension) Name() string { return "transfer" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns export and import.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newExportCmd(),
		e.newImportCmd(),
	}
}

// MCPTools returns nil.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

func (e *Extension) newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export [file]",
		Short: "Export tags as a JSON document",
		Long: `Write every tag association as a JSON document, to stdout or a file.

The format is the one the file backend stores, so exports can be imported
into any store, including one using a different backend.

  genie export > tags.json
  genie export backup.json --under ~/photos`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runExport,
	}
	c.Flags().StringP(extension.FlagUnder, "u", "", "Only export paths under a directory or matching a glob")
	c.Flags().BoolP(extension.FlagForce, "f", false, "Overwrite an existing file")
	return c
}

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import tags from a JSON document",
		Long: `Merge tag associations from a JSON document written by "genie export".
Existing tags are kept. Use "-" to read from stdin.

  genie import tags.json
  genie --db ~/tags.db import - < tags.json`,
		Args: cobra.ExactArgs(1),
		RunE: e.runImport,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Validate the document without importing")
	return c
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	var opts transfer.ExportOptions
	opts.Under, _ = c.Flags().GetString(extension.FlagUnder)
	opts.Force, _ = c.Flags().GetBool(extension.FlagForce)

	dst := ""
	if len(args) > 0 {
		dst = args[0]
	}

	// Writing the document to stdout is the output itself; JSON mode only
	// changes the summary printed for file exports.
	w := cmd.Out()
	if cmd.JSON() && dst != "" && dst != "-" {
		w = io.Discard
	}

	l := log.Event("transfer:export", "export").Detail("under", opts.Under)

	result, err := transfer.Export(c.Context(), w, e.svc, dst, opts)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("export: %w", err))
	}
	l.Resolved(result.Dest).Count(result.Pairs).Write(nil)

	if result.Dest == "" {
		return nil
	}
	return cmd.PrintJSON(result)
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	var opts transfer.ImportOptions
	opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)

	src := args[0]
	var r io.Reader = c.InOrStdin()
	if src != "-" {
		f, err := os.Open(src)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("import: %w", err))
		}
		defer f.Close()
		r = f
	}

	w := cmd.Out()
	if cmd.Structured() {
		w = io.Discard
	}

	l := log.Event("transfer:import", "import").Path(src).Detail("dry_run", opts.DryRun)

	result, err := transfer.Import(c.Context(), w, e.svc, r, opts)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("import %s: %w", src, err))
	}
	l.Count(result.Added).Write(nil)

	return cmd.PrintJSON(result)
}
