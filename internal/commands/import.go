package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"taskman/internal/app"
	"taskman/internal/config"
	"taskman/internal/exitcode"
)

func init() {
	Register(&ImportCmd{})
}

// ImportCmd implements the import command.
type ImportCmd struct {
	stdin io.Reader
}

// SetStdin sets the reader used for "-" (for testing).
func (c *ImportCmd) SetStdin(r io.Reader) {
	c.stdin = r
}

func (c *ImportCmd) Name() string                   { return "import" }
func (c *ImportCmd) Aliases() []string              { return nil }
func (c *ImportCmd) Synopsis() string               { return "Replace all tasks with the contents of a backup file" }
func (c *ImportCmd) Usage() string                  { return "taskman import <file>|-" }
func (c *ImportCmd) NeedsStore() bool               { return true }
func (c *ImportCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ImportCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: import file required")
		return exitcode.UserError
	}

	data, err := c.read(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: could not import tasks: %v\n", err)
		return exitcode.UserError
	}

	n, err := a.Import(ctx, data)
	if err != nil {
		fmt.Fprintf(errOut, "error: could not import tasks: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "imported %d tasks\n", n)
	}
	return exitcode.Success
}

func (c *ImportCmd) read(path string) ([]byte, error) {
	if path != "-" {
		return os.ReadFile(path)
	}
	in := c.stdin
	if in == nil {
		in = os.Stdin
	}
	return io.ReadAll(in)
}
