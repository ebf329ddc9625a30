// status.go implements the "genie status" command.

package core

import (
	"fmt"
	"os"

	"github.com/jpl-au/genie/cmd"
	"github.com/jpl-au/genie/internal/log"
	"github.com/jpl-au/genie/internal/repo"
	"github.com/jpl-au/genie/internal/version"
	"github.com/spf13/cobra"
)

// statusResult is the JSON form of "genie status".
type statusResult struct {
	Store   string `json:"store"`
	Backend string `json:"backend"`
	Source  string `json:"source"`
	Exists  bool   `json:"exists"`
	Paths   int    `json:"paths"`
	Tags    int    `json:"tags"`
	Pairs   int    `json:"pairs"`
	Version string `json:"version"`
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show store location and counts",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(c *cobra.Command, _ []string) error {
	ext := cmd.Context()
	svc := ext.Service()

	l := log.Event("core:status", "status")

	stats, err := svc.Stats(c.Context())
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("status: %w", err))
	}

	source := repo.SourceDefault
	if loc, err := repo.Resolve(cmd.DB(), cmd.Backend(), ext.Config()); err == nil {
		source = loc.Source
	}
	_, statErr := os.Stat(svc.Location())

	result := statusResult{
		Store:   svc.Location(),
		Backend: svc.Backend(),
		Source:  source,
		Exists:  statErr == nil,
		Paths:   stats.Paths,
		Tags:    stats.Tags,
		Pairs:   stats.Pairs,
		Version: version.Short(),
	}
	l.Resolved(result.Store).Count(result.Pairs).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}

	w := cmd.Out()
	fmt.Fprintf(w, "Store:    %s\n", result.Store)
	fmt.Fprintf(w, "Backend:  %s\n", result.Backend)
	fmt.Fprintf(w, "Source:   %s\n", result.Source)
	if !result.Exists {
		fmt.Fprintf(w, "          (not created yet; the first tag creates it)\n")
	}
	fmt.Fprintf(w, "Paths:    %d\n", result.Paths)
	fmt.Fprintf(w, "Tags:     %d\n", result.Tags)
	fmt.Fprintf(w, "Pairs:    %d\n", result.Pairs)
	return nil
}
