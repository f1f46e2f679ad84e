// Package task defines the task model and the pure operations over a task
// collection: visible-set projection, manual reordering, and normalization
// of partially specified records.
package task

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for due dates.
const DateLayout = "2006-01-02"

// UntitledTitle replaces a missing title on load and import.
const UntitledTitle = "Untitled task"

// Priority is the importance of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority parses a priority name (case-insensitive, trimmed).
// An empty string yields PriorityMedium.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("invalid priority: %s", s)
}

// rank orders priorities high first. Unknown values rank as medium.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// Task is a single to-do record.
type Task struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Completed bool     `json:"completed" yaml:"completed"`
	DueDate   *string  `json:"dueDate" yaml:"dueDate"`
	Priority  Priority `json:"priority" yaml:"priority"`
	CreatedAt int64    `json:"createdAt" yaml:"createdAt"`
	Order     int      `json:"order" yaml:"order"`
}

// Due returns the parsed due date. ok is false when the task has no due
// date or the stored value is not a valid calendar date.
func (t Task) Due() (due time.Time, ok bool) {
	if t.DueDate == nil || *t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, *t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Created returns the creation timestamp as a time.
func (t Task) Created() time.Time {
	return time.UnixMilli(t.CreatedAt)
}

// ParseDueDate validates a due date argument and returns it in the stored
// form. An empty (or whitespace) string means no due date.
func ParseDueDate(s string) (*string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return nil, fmt.Errorf("invalid due date: %s (want YYYY-MM-DD)", s)
	}
	return &s, nil
}

// Clone returns a deep copy of tasks.
func Clone(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		if t.DueDate != nil {
			d := *t.DueDate
			t.DueDate = &d
		}
		out[i] = t
	}
	return out
}

// NextOrder returns the order value for a task appended to tasks.
func NextOrder(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	highest := tasks[0].Order
	for _, t := range tasks[1:] {
		if t.Order > highest {
			highest = t.Order
		}
	}
	return highest + 1
}

// IndexOf returns the index of the task with the given id, or -1.
func IndexOf(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Counts summarizes a task collection.
type Counts struct {
	Total     int
	Active    int
	Completed int
}

// Count tallies tasks by completion state.
func Count(tasks []Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		}
	}
	c.Active = c.Total - c.Completed
	return c
}
