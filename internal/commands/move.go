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
	Register(&MoveCmd{})
}

// MoveCmd implements the move command.
type MoveCmd struct {
	before string
}

// SetBefore sets the --before flag (for testing).
func (c *MoveCmd) SetBefore(ref string) {
	c.before = ref
}

func (c *MoveCmd) Name() string      { return "move" }
func (c *MoveCmd) Aliases() []string { return []string{"mv"} }
func (c *MoveCmd) Synopsis() string  { return "Reorder a task" }
func (c *MoveCmd) Usage() string     { return "taskman move [--before <ref>] <ref>" }
func (c *MoveCmd) NeedsStore() bool  { return true }

func (c *MoveCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.before, "before", "", "")
	fs.StringVar(&c.before, "b", "", "")
}

func (c *MoveCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintln(errOut, "error: move takes a single task reference")
		return exitcode.UserError
	}

	manual := a.Manual()
	ref, err := ParseTaskRef(firstArg(args))
	if err != nil {
		return refError(errOut, err)
	}
	from, _, err := ref.Resolve(manual)
	if err != nil {
		return refError(errOut, err)
	}

	// Without --before the task moves to the end.
	var toID string
	if c.before != "" {
		target, err := ParseTaskRef(c.before)
		if err != nil {
			return refError(errOut, err)
		}
		to, _, err := target.Resolve(manual)
		if err != nil {
			return refError(errOut, err)
		}
		toID = to.ID
	}

	if err := a.Move(ctx, from.ID, toID); err != nil {
		return refError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
