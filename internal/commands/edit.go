package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskman/internal/app"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/task"
)

func init() {
	Register(&EditCmd{})
}

// optionalString is a string flag that records whether it was given, so
// that an explicit empty value can be told apart from an absent flag.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(s string) error {
	o.value, o.set = s, true
	return nil
}

// EditCmd implements the edit command.
type EditCmd struct {
	title    optionalString
	due      optionalString
	priority optionalString
	done     bool
	undone   bool
}

// SetTitle sets the --title flag (for testing).
func (c *EditCmd) SetTitle(title string) { c.title.Set(title) }

// SetDue sets the --due flag (for testing).
func (c *EditCmd) SetDue(due string) { c.due.Set(due) }

// SetPriority sets the --priority flag (for testing).
func (c *EditCmd) SetPriority(priority string) { c.priority.Set(priority) }

// SetDone sets the --done and --undone flags (for testing).
func (c *EditCmd) SetDone(done, undone bool) { c.done, c.undone = done, undone }

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task" }
func (c *EditCmd) Usage() string {
	return "taskman edit [--title <text>] [--due YYYY-MM-DD|\"\"] [--priority <p>] [--done|--undone] <ref>"
}
func (c *EditCmd) NeedsStore() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title, c.due, c.priority = optionalString{}, optionalString{}, optionalString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.due, "due", "")
	fs.Var(&c.priority, "priority", "")
	fs.Var(&c.priority, "p", "")
	fs.BoolVar(&c.done, "done", false, "")
	fs.BoolVar(&c.undone, "undone", false, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintln(errOut, "error: edit takes a single task reference")
		return exitcode.UserError
	}
	if c.done && c.undone {
		fmt.Fprintln(errOut, "error: cannot use both --done and --undone")
		return exitcode.UserError
	}

	tasks, err := resolveRefs(args, a.Manual())
	if err != nil {
		return refError(errOut, err)
	}

	var changes app.Changes
	if c.title.set {
		changes.Title = &c.title.value
	}
	if c.due.set {
		changes.DueDate = &c.due.value
	}
	if c.priority.set {
		p, err := task.ParsePriority(c.priority.value)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		changes.Priority = &p
	}
	if c.done || c.undone {
		completed := c.done
		changes.Completed = &completed
	}
	if changes == (app.Changes{}) {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	if _, err := a.Edit(ctx, tasks[0].ID, changes); err != nil {
		if errors.Is(err, app.ErrEmptyTitle) {
			fmt.Fprintln(errOut, "error: task title cannot be empty")
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
