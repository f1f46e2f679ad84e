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
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd implements the stats command.
type StatsCmd struct{}

func (c *StatsCmd) Name() string                   { return "stats" }
func (c *StatsCmd) Aliases() []string              { return nil }
func (c *StatsCmd) Synopsis() string               { return "Count total, active and completed tasks" }
func (c *StatsCmd) Usage() string                  { return "taskman stats" }
func (c *StatsCmd) NeedsStore() bool               { return true }
func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	output.FormatStats(out, a.Stats())
	return exitcode.Success
}
