// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"taskman/internal/store"
	"taskman/internal/task"
)

// FakeStore is an in-memory implementation of store.Store for testing.
type FakeStore struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool

	// Error injection for testing
	GetErr   error
	SetErr   error
	CloseErr error

	// Sets counts successful Set calls per key.
	Sets map[string]int
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		values: make(map[string]string),
		Sets:   make(map[string]int),
	}
}

// Put stores a raw value without counting it as a Set.
func (f *FakeStore) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}

// PutTasks stores tasks as the persisted task array.
func (f *FakeStore) PutTasks(tasks ...task.Task) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		panic(err)
	}
	f.Put(store.TasksKey, string(data))
}

// Value returns the raw value stored under key.
func (f *FakeStore) Value(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

// StoredTasks decodes the persisted task array. It returns nil if nothing
// has been stored.
func (f *FakeStore) StoredTasks() ([]task.Task, error) {
	raw, ok := f.Value(store.TasksKey)
	if !ok {
		return nil, nil
	}
	var tasks []task.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Closed reports whether Close has been called.
func (f *FakeStore) Closed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}

// Reopen clears the closed flag so the same contents can back another
// invocation.
func (f *FakeStore) Reopen() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = false
}

// Get implements store.Store.
func (f *FakeStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return "", false, store.ErrClosed
	}
	v, ok := f.values[key]
	return v, ok, nil
}

// Set implements store.Store.
func (f *FakeStore) Set(ctx context.Context, key, value string) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return store.ErrClosed
	}
	f.values[key] = value
	f.Sets[key]++
	return nil
}

// Close implements store.Store.
func (f *FakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.CloseErr
}
