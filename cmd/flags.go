/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Extensions read flag values through the exported accessors rather than
// the variables, so they don't couple to cobra internals.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/genie/extension"
	"github.com/jpl-au/genie/internal/format"
	"github.com/jpl-au/genie/internal/repo"
	"github.com/spf13/cobra"
)

var validOutputFormats = []string{"json", "alfred"}

var (
	output  string
	db      string
	backend string
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// DB returns the --db flag value. Environment and config fallbacks are
// applied by repo.Resolve.
func DB() string { return db }

// Backend returns the --backend flag value.
func Backend() string { return backend }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// Alfred returns true if Alfred script-filter output is requested.
func Alfred() bool { return output == "alfred" }

// Structured returns true if the command's text output should be
// suppressed in favour of a machine-readable document.
func Structured() bool { return JSON() || Alfred() }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if the error was printed (suppressing Cobra's copy), or the
// original error otherwise.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// PrintAlfred writes paths as an Alfred script-filter document.
// Returns nil if output format is not alfred.
func PrintAlfred(paths []string) error {
	if output != "alfred" {
		return nil
	}
	return format.Alfred(out, paths)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json, alfred")
	rootCmd.PersistentFlags().StringVar(&db, "db", "", "Tag store path (env "+repo.EnvDB+")")
	rootCmd.PersistentFlags().StringVar(&backend, extension.FlagBackend, "", "Store backend: file, sqlite (env "+repo.EnvBackend+")")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc(extension.FlagBackend, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"file", "sqlite"}, cobra.ShellCompDirectiveNoFileComp
	})
}
