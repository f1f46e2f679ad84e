package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"taskman/internal/exitcode"
	"taskman/internal/task"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// TaskRef is a parsed task reference.
type TaskRef struct {
	Num int    // 1-based manual position, 0 if the reference is an id
	ID  string // id or id prefix when Num is 0
	Raw string
}

// ParseTaskRef parses a single task reference.
//
// Parsing rules:
//  1. All digits: a position in manual order (the numbers list prints)
//  2. Anything else: a task id, or a prefix of exactly one task id
func ParseTaskRef(arg string) (TaskRef, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return TaskRef{}, ErrTaskRefRequired
	}
	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("task number out of range: %s", arg)
		}
		return TaskRef{Num: num, Raw: arg}, nil
	}
	return TaskRef{ID: arg, Raw: arg}, nil
}

// ParseTaskRefs parses one or more task references.
func ParseTaskRefs(args []string) ([]TaskRef, error) {
	if len(args) == 0 {
		return nil, ErrTaskRefRequired
	}
	refs := make([]TaskRef, 0, len(args))
	for _, arg := range args {
		ref, err := ParseTaskRef(arg)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// Resolve finds the referenced task in manual and returns it with its
// 1-based position.
func (r TaskRef) Resolve(manual []task.Task) (task.Task, int, error) {
	if r.Num != 0 || r.ID == "" {
		if r.Num < 1 || r.Num > len(manual) {
			return task.Task{}, 0, fmt.Errorf("task number out of range: %d", r.Num)
		}
		return manual[r.Num-1], r.Num, nil
	}

	if i := task.IndexOf(manual, r.ID); i >= 0 {
		return manual[i], i + 1, nil
	}

	match := -1
	for i, t := range manual {
		if !strings.HasPrefix(t.ID, r.ID) {
			continue
		}
		if match >= 0 {
			return task.Task{}, 0, fmt.Errorf("ambiguous task reference: %s", r.Raw)
		}
		match = i
	}
	if match < 0 {
		return task.Task{}, 0, fmt.Errorf("task not found: %s", r.Raw)
	}
	return manual[match], match + 1, nil
}

// resolveRefs parses args and resolves every reference against the same
// snapshot, so positions refer to what list printed even when the command
// changes the collection. Duplicates are dropped.
func resolveRefs(args []string, manual []task.Task) ([]task.Task, error) {
	refs, err := ParseTaskRefs(args)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(refs))
	tasks := make([]task.Task, 0, len(refs))
	for _, ref := range refs {
		t, _, err := ref.Resolve(manual)
		if err != nil {
			return nil, err
		}
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// refError prints a task reference error and returns the user error code.
func refError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
