package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"taskman/internal/app"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/persist"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	output string
	format string
}

// SetOutput sets the --output and --format flags (for testing).
func (c *ExportCmd) SetOutput(path, format string) {
	c.output, c.format = path, format
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Write all tasks to a backup file" }
func (c *ExportCmd) Usage() string {
	return "taskman export [--output <file>|-] [--format json|yaml]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.output, "output", "", "")
	fs.StringVar(&c.output, "o", "", "")
	fs.StringVar(&c.format, "format", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	path := c.output
	if path == "" {
		path = cfg.ExportFile
	}
	if path == "" {
		path = config.DefaultExportFile
	}

	// The format follows the file extension unless given explicitly.
	formatName := c.format
	if formatName == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			formatName = string(persist.FormatYAML)
		}
	}
	format, err := persist.ParseFormat(formatName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if path == "-" {
		if err := a.Export(out, format); err != nil {
			fmt.Fprintf(errOut, "error: could not export tasks: %v\n", err)
			return exitcode.UserError
		}
		return exitcode.Success
	}

	if err := exportFile(a, path, format); err != nil {
		fmt.Fprintf(errOut, "error: could not export tasks: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "exported %d tasks to %s\n", len(a.Tasks()), path)
	}
	return exitcode.Success
}

func exportFile(a *app.App, path string, format persist.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := a.Export(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
