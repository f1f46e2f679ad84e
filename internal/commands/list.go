package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskman/internal/app"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/output"
	"taskman/internal/task"
	"taskman/internal/theme"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskman` (no args) and `taskman list [search...]`.
type ListCmd struct {
	filter string
	search string
	sort   string
}

// SetView sets the filter, search and sort flags (for testing).
func (c *ListCmd) SetView(filter, search, sort string) {
	c.filter, c.search, c.sort = filter, search, sort
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskman list [--filter all|active|completed] [--sort <mode>] [--search <text>] [text...]"
}
func (c *ListCmd) NeedsStore() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.sort, "sort", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	filterName := c.filter
	if filterName == "" {
		filterName = cfg.DefaultFilter
	}
	filter, err := task.ParseFilter(filterName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	sortName := c.sort
	if sortName == "" {
		sortName = cfg.DefaultSort
	}
	mode, err := task.ParseSortMode(sortName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// Positional args are search text when --search is not given
	search := c.search
	if search == "" {
		search = strings.Join(args, " ")
	}

	a.SetFilter(filter)
	a.SetSort(mode)
	a.SetSearch(strings.TrimSpace(search))

	manual := a.Manual()
	if len(manual) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	visible := a.Visible()
	if len(visible) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no matching tasks")
		}
		return exitcode.Success
	}

	// Numbers are manual positions so they stay valid as task references
	// whatever the sort.
	positions := make(map[string]int, len(manual))
	for i, t := range manual {
		positions[t.ID] = i + 1
	}

	styles := theme.NewStyles(a.Theme(), out)
	for _, t := range visible {
		output.FormatTask(out, styles, positions[t.ID], t)
	}
	return exitcode.Success
}
