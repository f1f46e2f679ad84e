package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/app"
	"taskman/internal/config"
	"taskman/internal/exitcode"
)

func init() {
	Register(&RmCmd{})
	Register(&ClearCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string                   { return "rm" }
func (c *RmCmd) Aliases() []string              { return []string{"delete"} }
func (c *RmCmd) Synopsis() string               { return "Delete tasks" }
func (c *RmCmd) Usage() string                  { return "taskman rm <ref...>" }
func (c *RmCmd) NeedsStore() bool               { return true }
func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	tasks, err := resolveRefs(args, a.Manual())
	if err != nil {
		return refError(errOut, err)
	}

	for _, t := range tasks {
		if err := a.Delete(ctx, t.ID); err != nil {
			return refError(errOut, err)
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// ClearCmd implements the clear command.
type ClearCmd struct{}

func (c *ClearCmd) Name() string                   { return "clear" }
func (c *ClearCmd) Aliases() []string              { return nil }
func (c *ClearCmd) Synopsis() string               { return "Delete all completed tasks" }
func (c *ClearCmd) Usage() string                  { return "taskman clear" }
func (c *ClearCmd) NeedsStore() bool               { return true }
func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	n := a.ClearCompleted(ctx)
	if !cfg.Quiet {
		fmt.Fprintf(out, "removed %d completed\n", n)
	}
	return exitcode.Success
}
