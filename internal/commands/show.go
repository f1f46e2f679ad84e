package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/app"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/output"
	"taskman/internal/theme"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string                   { return "show" }
func (c *ShowCmd) Aliases() []string              { return nil }
func (c *ShowCmd) Synopsis() string               { return "Print every field of a task" }
func (c *ShowCmd) Usage() string                  { return "taskman show <ref>" }
func (c *ShowCmd) NeedsStore() bool               { return true }
func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintln(errOut, "error: show takes a single task reference")
		return exitcode.UserError
	}
	ref, err := ParseTaskRef(firstArg(args))
	if err != nil {
		return refError(errOut, err)
	}
	t, num, err := ref.Resolve(a.Manual())
	if err != nil {
		return refError(errOut, err)
	}

	output.FormatDetail(out, theme.NewStyles(a.Theme(), out), num, t)
	return exitcode.Success
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
