// Package persist round-trips application state through a store.Store and
// handles task export and import files.
//
// Load and save failures are logged and swallowed: the in-memory state is
// the source of truth for the current invocation regardless.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"taskman/internal/store"
	"taskman/internal/task"
	"taskman/internal/theme"
)

// storedID is the identifier given to a stored task that has none. It is
// positional so that repeated loads agree until the next save.
func storedID(index int) string {
	return fmt.Sprintf("id-%d", index)
}

// LoadTasks reads the persisted task array. A missing key yields an empty
// collection; unreadable data, or data that is not a JSON array, is logged
// and also yields an empty collection. Within the array each record is
// decoded field by field, so a mistyped field takes its default instead of
// discarding the other tasks.
func LoadTasks(ctx context.Context, st store.Store, now time.Time) []task.Task {
	logger := log.FromContext(ctx)

	raw, found, err := st.Get(ctx, store.TasksKey)
	if err != nil {
		logger.Error("failed to load tasks", "err", err)
		return []task.Task{}
	}
	if !found || raw == "" {
		return []task.Task{}
	}

	var drafts []task.Draft
	if err := json.Unmarshal([]byte(raw), &drafts); err != nil {
		logger.Error("failed to load tasks", "err", err)
		return []task.Task{}
	}
	if drafts == nil {
		// "null" is not an array.
		return []task.Task{}
	}

	tasks := task.ResolveAll(drafts, now, storedID)
	logger.Debug("loaded tasks", "count", len(tasks))
	return tasks
}

// SaveTasks persists the full task array.
func SaveTasks(ctx context.Context, st store.Store, tasks []task.Task) {
	logger := log.FromContext(ctx)

	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		logger.Error("failed to save tasks", "err", err)
		return
	}
	if err := st.Set(ctx, store.TasksKey, string(data)); err != nil {
		logger.Error("failed to save tasks", "err", err)
		return
	}
	logger.Debug("saved tasks", "count", len(tasks))
}

// LoadTheme returns the persisted theme, Light when unset or unreadable.
func LoadTheme(ctx context.Context, st store.Store) theme.Theme {
	raw, _, err := st.Get(ctx, store.ThemeKey)
	if err != nil {
		log.FromContext(ctx).Error("failed to load theme", "err", err)
		return theme.Light
	}
	if raw == string(theme.Dark) {
		return theme.Dark
	}
	return theme.Light
}

// SaveTheme persists the theme.
func SaveTheme(ctx context.Context, st store.Store, t theme.Theme) {
	if err := st.Set(ctx, store.ThemeKey, string(t)); err != nil {
		log.FromContext(ctx).Error("failed to save theme", "err", err)
	}
}
