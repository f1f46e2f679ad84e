// Package app holds the application state and the controller that applies
// every mutation to it. Each mutation persists the full task list through
// the store before returning.
package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"taskman/internal/persist"
	"taskman/internal/store"
	"taskman/internal/task"
	"taskman/internal/theme"
)

var (
	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")

	// ErrEmptyTitle is returned when an edit would leave a task untitled.
	ErrEmptyTitle = errors.New("task title cannot be empty")
)

// State is the full application state.
type State struct {
	Tasks  []task.Task
	Filter task.Filter
	Sort   task.SortMode
	Search string
	Theme  theme.Theme
}

// App is the controller over State.
type App struct {
	store store.Store
	now   func() time.Time
	newID func() string
	state State
}

// Option configures an App.
type Option func(*App)

// WithClock sets the time source used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithIDGenerator sets the generator used for new task ids.
func WithIDGenerator(newID func() string) Option {
	return func(a *App) { a.newID = newID }
}

// Load builds an App from the persisted state in st.
func Load(ctx context.Context, st store.Store, opts ...Option) *App {
	a := &App{
		store: st,
		now:   time.Now,
		newID: uuid.NewString,
		state: State{Filter: task.FilterAll, Sort: task.SortManual},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.state.Tasks = persist.LoadTasks(ctx, st, a.now())
	a.state.Theme = persist.LoadTheme(ctx, st)
	return a
}

// State returns a copy of the current state.
func (a *App) State() State {
	s := a.state
	s.Tasks = task.Clone(a.state.Tasks)
	return s
}

// Tasks returns a copy of the collection in stored order.
func (a *App) Tasks() []task.Task {
	return task.Clone(a.state.Tasks)
}

// Manual returns the collection in manual order.
func (a *App) Manual() []task.Task {
	return task.ManualOrder(a.state.Tasks)
}

// Find returns the task with the given id.
func (a *App) Find(id string) (task.Task, bool) {
	i := task.IndexOf(a.state.Tasks, id)
	if i < 0 {
		return task.Task{}, false
	}
	return task.Clone(a.state.Tasks[i : i+1])[0], true
}

// NewTask is the input to Add.
type NewTask struct {
	Title    string
	DueDate  *string
	Priority task.Priority
}

// Add appends a new open task. A blank title is ignored and reported by
// ok == false.
func (a *App) Add(ctx context.Context, in NewTask) (t task.Task, ok bool) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return task.Task{}, false
	}
	priority := in.Priority
	if priority == "" {
		priority = task.PriorityMedium
	}
	var due *string
	if in.DueDate != nil && *in.DueDate != "" {
		d := *in.DueDate
		due = &d
	}

	t = task.Task{
		ID:        a.newID(),
		Title:     title,
		DueDate:   due,
		Priority:  priority,
		CreatedAt: a.now().UnixMilli(),
		Order:     task.NextOrder(a.state.Tasks),
	}
	a.state.Tasks = append(a.state.Tasks, t)
	a.save(ctx)
	log.FromContext(ctx).Debug("added task", "id", t.ID)
	return t, true
}

// SetCompleted sets the completion flag of a task.
func (a *App) SetCompleted(ctx context.Context, id string, completed bool) error {
	i := task.IndexOf(a.state.Tasks, id)
	if i < 0 {
		return ErrNotFound
	}
	a.state.Tasks[i].Completed = completed
	a.save(ctx)
	return nil
}

// Toggle flips the completion flag of a task and returns the new value.
func (a *App) Toggle(ctx context.Context, id string) (bool, error) {
	i := task.IndexOf(a.state.Tasks, id)
	if i < 0 {
		return false, ErrNotFound
	}
	a.state.Tasks[i].Completed = !a.state.Tasks[i].Completed
	a.save(ctx)
	return a.state.Tasks[i].Completed, nil
}

// Changes lists the fields Edit should replace. Nil fields are kept.
type Changes struct {
	Title *string
	// DueDate replaces the due date; a pointer to "" clears it.
	DueDate   *string
	Priority  *task.Priority
	Completed *bool
}

// Edit applies changes to a task.
func (a *App) Edit(ctx context.Context, id string, c Changes) (task.Task, error) {
	i := task.IndexOf(a.state.Tasks, id)
	if i < 0 {
		return task.Task{}, ErrNotFound
	}
	t := a.state.Tasks[i]

	if c.Title != nil {
		title := strings.TrimSpace(*c.Title)
		if title == "" {
			return task.Task{}, ErrEmptyTitle
		}
		t.Title = title
	}
	if c.DueDate != nil {
		due, err := task.ParseDueDate(*c.DueDate)
		if err != nil {
			return task.Task{}, err
		}
		t.DueDate = due
	}
	if c.Priority != nil {
		t.Priority = *c.Priority
	}
	if c.Completed != nil {
		t.Completed = *c.Completed
	}

	a.state.Tasks[i] = t
	a.save(ctx)
	return t, nil
}

// Delete removes the task with the given id.
func (a *App) Delete(ctx context.Context, id string) error {
	i := task.IndexOf(a.state.Tasks, id)
	if i < 0 {
		return ErrNotFound
	}
	a.state.Tasks = append(a.state.Tasks[:i:i], a.state.Tasks[i+1:]...)
	a.save(ctx)
	return nil
}

// ClearCompleted removes every completed task and returns how many were
// removed.
func (a *App) ClearCompleted(ctx context.Context) int {
	kept := make([]task.Task, 0, len(a.state.Tasks))
	for _, t := range a.state.Tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(a.state.Tasks) - len(kept)
	a.state.Tasks = kept
	a.save(ctx)
	return removed
}

// Move places fromID immediately before toID in manual order, or last when
// toID is empty.
func (a *App) Move(ctx context.Context, fromID, toID string) error {
	if task.IndexOf(a.state.Tasks, fromID) < 0 {
		return ErrNotFound
	}
	if fromID == toID {
		return nil
	}
	a.state.Tasks = task.Reorder(a.state.Tasks, fromID, toID)
	a.save(ctx)
	return nil
}

// Import replaces the collection with the tasks in data. On error the
// collection is left unchanged.
func (a *App) Import(ctx context.Context, data []byte) (int, error) {
	tasks, err := persist.ParseImport(data, a.now(), a.newID)
	if err != nil {
		return 0, err
	}
	a.state.Tasks = tasks
	a.save(ctx)
	log.FromContext(ctx).Debug("imported tasks", "count", len(tasks))
	return len(tasks), nil
}

// Export writes the collection to w in stored order.
func (a *App) Export(w io.Writer, format persist.Format) error {
	return persist.Export(w, a.state.Tasks, format)
}

// SetFilter sets the completion filter of the visible set.
func (a *App) SetFilter(f task.Filter) { a.state.Filter = f }

// SetSort sets the sort mode of the visible set.
func (a *App) SetSort(m task.SortMode) { a.state.Sort = m }

// SetSearch sets the title search of the visible set.
func (a *App) SetSearch(s string) { a.state.Search = s }

// Visible returns the filtered, searched and sorted tasks.
func (a *App) Visible() []task.Task {
	return task.Visible(a.state.Tasks, task.View{
		Filter: a.state.Filter,
		Search: a.state.Search,
		Sort:   a.state.Sort,
	})
}

// Theme returns the active theme.
func (a *App) Theme() theme.Theme { return a.state.Theme }

// SetTheme sets and persists the theme.
func (a *App) SetTheme(ctx context.Context, t theme.Theme) {
	a.state.Theme = t
	persist.SaveTheme(ctx, a.store, t)
}

// ToggleTheme switches between light and dark and returns the new theme.
func (a *App) ToggleTheme(ctx context.Context) theme.Theme {
	a.SetTheme(ctx, a.state.Theme.Toggle())
	return a.state.Theme
}

// Stats counts the collection.
func (a *App) Stats() task.Counts {
	return task.Count(a.state.Tasks)
}

func (a *App) save(ctx context.Context) {
	persist.SaveTasks(ctx, a.store, a.state.Tasks)
}
