package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/app"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/theme"
)

func init() {
	Register(&ThemeCmd{})
}

// ThemeCmd implements the theme command.
type ThemeCmd struct{}

func (c *ThemeCmd) Name() string                   { return "theme" }
func (c *ThemeCmd) Aliases() []string              { return nil }
func (c *ThemeCmd) Synopsis() string               { return "Switch between the light and dark theme" }
func (c *ThemeCmd) Usage() string                  { return "taskman theme [light|dark]" }
func (c *ThemeCmd) NeedsStore() bool               { return true }
func (c *ThemeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ThemeCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	var active theme.Theme
	switch len(args) {
	case 0:
		active = a.ToggleTheme(ctx)
	case 1:
		if !theme.Valid(args[0]) {
			fmt.Fprintf(errOut, "error: invalid theme: %s\n", args[0])
			return exitcode.UserError
		}
		active = theme.Parse(args[0])
		a.SetTheme(ctx, active)
	default:
		fmt.Fprintln(errOut, "error: theme takes at most one argument")
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, active)
	}
	return exitcode.Success
}
