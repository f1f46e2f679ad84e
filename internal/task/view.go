package task

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Filter selects tasks by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter parses a filter name. An empty string yields FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	}
	return "", fmt.Errorf("invalid filter: %s", s)
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// SortMode selects the ordering of the visible set.
type SortMode string

const (
	SortManual   SortMode = "manual"
	SortNewest   SortMode = "newest"
	SortOldest   SortMode = "oldest"
	SortDueDate  SortMode = "duedate"
	SortPriority SortMode = "priority"
)

// SortModes lists every sort mode in display order.
var SortModes = []SortMode{SortManual, SortNewest, SortOldest, SortDueDate, SortPriority}

// ParseSortMode parses a sort mode name. An empty string yields SortManual.
func ParseSortMode(s string) (SortMode, error) {
	m := SortMode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return SortManual, nil
	}
	if slices.Contains(SortModes, m) {
		return m, nil
	}
	return "", fmt.Errorf("invalid sort mode: %s", s)
}

// View describes a projection of the task collection.
type View struct {
	Filter Filter
	Search string
	Sort   SortMode
}

// Visible returns the tasks matching v.Filter and v.Search, ordered by
// v.Sort. Ties are broken on the order field and then on position in
// tasks. The input slice is not modified.
func Visible(tasks []Task, v View) []Task {
	fold := cases.Fold()
	var needle string
	if v.Search != "" {
		needle = fold.String(v.Search)
	}

	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !v.Filter.Match(t) {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(t.Title), needle) {
			continue
		}
		out = append(out, t)
	}

	slices.SortStableFunc(out, comparator(v.Sort))
	return out
}

// ManualOrder returns a copy of tasks stably sorted by the order field.
func ManualOrder(tasks []Task) []Task {
	out := Clone(tasks)
	slices.SortStableFunc(out, byOrder)
	return out
}

func byOrder(a, b Task) int {
	return cmp.Compare(a.Order, b.Order)
}

func comparator(mode SortMode) func(a, b Task) int {
	switch mode {
	case SortNewest:
		return func(a, b Task) int {
			return cmp.Or(cmp.Compare(b.CreatedAt, a.CreatedAt), byOrder(a, b))
		}
	case SortOldest:
		return func(a, b Task) int {
			return cmp.Or(cmp.Compare(a.CreatedAt, b.CreatedAt), byOrder(a, b))
		}
	case SortDueDate:
		return func(a, b Task) int {
			return cmp.Or(compareDue(a, b), byOrder(a, b))
		}
	case SortPriority:
		return func(a, b Task) int {
			return cmp.Or(cmp.Compare(a.Priority.rank(), b.Priority.rank()), byOrder(a, b))
		}
	default:
		return byOrder
	}
}

// compareDue orders by due date with undated tasks last.
func compareDue(a, b Task) int {
	ad, aok := a.Due()
	bd, bok := b.Due()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	return ad.Compare(bd)
}
