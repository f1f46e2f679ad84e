// Package store defines the backend-agnostic key-value interface that
// persisted application state goes through.
package store

import (
	"context"
	"errors"
)

// Keys under which application state is persisted.
const (
	// TasksKey holds the JSON-serialized task array.
	TasksKey = "tm_tasks"

	// ThemeKey holds the theme name ("light" or "dark").
	ThemeKey = "tm_theme"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// Store is a string key-value store.
// Commands never import a backend directly.
type Store interface {
	// Get returns the value stored under key.
	// found is false when the key has never been set.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases the backend.
	Close() error
}
