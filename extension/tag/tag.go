// Package tag provides the tag extension for genie.
// It registers commands: tag, rm, print, tags, ls.
package tag

import (
	"fmt"
	"io"

	"github.com/jpl-au/genie/cmd"
	"github.com/jpl-au/genie/extension"
	"github.com/jpl-au/genie/internal/log"
	"github.com/jpl-au/genie/internal/ls"
	"github.com/jpl-au/genie/internal/service"
	"github.com/jpl-au/genie/internal/tag"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the tag extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "tag".
func (e *Extension) Name() string { return "tag" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the tagging and listing commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newTagCmd(),
		e.newRmCmd(),
		e.newPrintCmd(),
		e.newTagsCmd(),
		e.newLsCmd(),
	}
}

// MCPTools returns nil - MCP tagging tools are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

func (e *Extension) newTagCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "tag <path> <tag>...",
		Aliases: []string{"t"},
		Short:   "Add tags to a path",
		Long: `Add one or more tags to a file path. The path is stored in canonical
form (~ expanded, made absolute) and need not exist.

  genie tag ~/photos/beach.jpg photo beach
  genie tag --list          # list every tag in use`,
		Args: func(c *cobra.Command, args []string) error {
			if list, _ := c.Flags().GetBool(extension.FlagList); list {
				return cobra.NoArgs(c, args)
			}
			return cobra.MinimumNArgs(2)(c, args)
		},
		RunE: e.runTag,
	}
	c.Flags().BoolP(extension.FlagList, "l", false, "List every tag in use")
	return c
}

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <path> <tag>...",
		Aliases: []string{"remove"},
		Short:   "Remove tags from a path",
		Args:    cobra.MinimumNArgs(2),
		RunE:    e.runRm,
	}
}

func (e *Extension) newPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "print <path>",
		Aliases: []string{"p", "show"},
		Short:   "Show the tags on a path",
		Args:    cobra.ExactArgs(1),
		RunE:    e.runPrint,
	}
}

func (e *Extension) newTagsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		Args:  cobra.NoArgs,
		RunE:  e.runTags,
	}
	c.Flags().BoolP(extension.FlagCount, "c", false, "Print only the number of tags")
	return c
}

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls [dir|glob]",
		Short: "List tagged paths",
		Long: `List every tagged path, or those under a directory or matching a glob.

  genie ls                  # every tagged path
  genie ls ~/photos -l      # with their tags
  genie ls '*.jpg' --tree`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runLs,
	}
	c.Flags().BoolP(extension.FlagLong, "l", false, "Show tags beside each path")
	c.Flags().BoolP(extension.FlagTree, "t", false, "Display as a directory tree")
	c.Flags().BoolP(extension.FlagReverse, "r", false, "Reverse sort order")
	return c
}

func (e *Extension) runTag(c *cobra.Command, args []string) error {
	if list, _ := c.Flags().GetBool(extension.FlagList); list {
		return e.listAll(c, false)
	}

	ctx := c.Context()
	path, tags := args[0], args[1:]
	w := cmd.Out()
	if cmd.Structured() {
		w = io.Discard
	}

	l := log.Event("tag:tag", "tag").
		Path(path).
		Detail("tags", tags)

	result, err := tag.Add(ctx, w, e.svc, path, tags)
	l.Resolved(result.Path).Count(len(result.Added))
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("tag %q: %w", path, err))
	}
	l.Write(nil)

	return cmd.PrintJSON(result)
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	ctx := c.Context()
	path, tags := args[0], args[1:]
	w := cmd.Out()
	if cmd.Structured() {
		w = io.Discard
	}

	l := log.Event("tag:rm", "untag").
		Path(path).
		Detail("tags", tags)

	result, err := tag.Remove(ctx, w, e.svc, path, tags)
	l.Resolved(result.Path).Count(len(result.Removed))
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("rm %q: %w", path, err))
	}
	l.Detail("absent", result.Absent).Write(nil)

	return cmd.PrintJSON(result)
}

func (e *Extension) runPrint(c *cobra.Command, args []string) error {
	ctx := c.Context()
	path := args[0]
	w := cmd.Out()
	if cmd.Structured() {
		w = io.Discard
	}

	l := log.Event("tag:print", "list_tags").Path(path)

	result, err := tag.List(ctx, w, e.svc, path)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("print %q: %w", path, err))
	}
	l.Resolved(result.Path).Count(len(result.Tags)).Write(nil)

	return cmd.PrintJSON(result)
}

func (e *Extension) runTags(c *cobra.Command, _ []string) error {
	count, _ := c.Flags().GetBool(extension.FlagCount)
	return e.listAll(c, count)
}

// listAll prints every tag in use, or just how many there are.
func (e *Extension) listAll(c *cobra.Command, count bool) error {
	w := cmd.Out()
	if cmd.Structured() || count {
		w = io.Discard
	}

	l := log.Event("tag:tags", "list_tags")

	result, err := tag.List(c.Context(), w, e.svc, "")
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("tags: %w", err))
	}
	l.Count(len(result.Tags)).Write(nil)

	if count {
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]int{"count": len(result.Tags)})
		}
		fmt.Fprintln(cmd.Out(), len(result.Tags))
		return nil
	}
	return cmd.PrintJSON(result)
}

func (e *Extension) runLs(c *cobra.Command, args []string) error {
	long, _ := c.Flags().GetBool(extension.FlagLong)
	tree, _ := c.Flags().GetBool(extension.FlagTree)
	reverse, _ := c.Flags().GetBool(extension.FlagReverse)

	opts := ls.Options{Long: long, Tree: tree, Reverse: reverse}
	if len(args) == 1 {
		opts.Under = args[0]
	}

	w := cmd.Out()
	if cmd.Structured() {
		w = io.Discard
	}

	l := log.Event("tag:ls", "list").Path(opts.Under)

	result, err := ls.Run(c.Context(), w, e.svc, opts)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("ls: %w", err))
	}
	l.Count(len(result.Entries)).Write(nil)

	if cmd.Alfred() {
		return cmd.PrintAlfred(result.Paths())
	}
	return cmd.PrintJSON(result)
}
