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
	Register(&DoneCmd{})
	Register(&UndoneCmd{})
	Register(&ToggleCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string                   { return "done" }
func (c *DoneCmd) Aliases() []string              { return nil }
func (c *DoneCmd) Synopsis() string               { return "Mark tasks completed" }
func (c *DoneCmd) Usage() string                  { return "taskman done <ref...>" }
func (c *DoneCmd) NeedsStore() bool               { return true }
func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	return runSetCompleted(ctx, cfg, a, args, true, out, errOut)
}

// UndoneCmd implements the undone command.
type UndoneCmd struct{}

func (c *UndoneCmd) Name() string                   { return "undone" }
func (c *UndoneCmd) Aliases() []string              { return []string{"reopen"} }
func (c *UndoneCmd) Synopsis() string               { return "Mark tasks open" }
func (c *UndoneCmd) Usage() string                  { return "taskman undone <ref...>" }
func (c *UndoneCmd) NeedsStore() bool               { return true }
func (c *UndoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoneCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	return runSetCompleted(ctx, cfg, a, args, false, out, errOut)
}

// runSetCompleted is the shared implementation for done and undone.
func runSetCompleted(ctx context.Context, cfg *config.Config, a *app.App, args []string, completed bool, out, errOut io.Writer) int {
	tasks, err := resolveRefs(args, a.Manual())
	if err != nil {
		return refError(errOut, err)
	}

	for _, t := range tasks {
		if err := a.SetCompleted(ctx, t.ID, completed); err != nil {
			return refError(errOut, err)
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string                   { return "toggle" }
func (c *ToggleCmd) Aliases() []string              { return nil }
func (c *ToggleCmd) Synopsis() string               { return "Flip a task between open and completed" }
func (c *ToggleCmd) Usage() string                  { return "taskman toggle <ref>" }
func (c *ToggleCmd) NeedsStore() bool               { return true }
func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintln(errOut, "error: toggle takes a single task reference")
		return exitcode.UserError
	}
	tasks, err := resolveRefs(args, a.Manual())
	if err != nil {
		return refError(errOut, err)
	}

	completed, err := a.Toggle(ctx, tasks[0].ID)
	if err != nil {
		return refError(errOut, err)
	}

	if !cfg.Quiet {
		if completed {
			fmt.Fprintln(out, "completed")
		} else {
			fmt.Fprintln(out, "open")
		}
	}
	return exitcode.Success
}
