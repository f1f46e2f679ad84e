// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taskman/internal/task"
	"taskman/internal/theme"
)

const (
	// NoDueDate is shown for tasks without a valid due date.
	NoDueDate = "no due date"

	dateLayout = "Jan 2, 2006"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {TITLE}  [{PRIORITY}] due {DATE}\n"
// The due part is omitted when the task has no due date.
func FormatTask(w io.Writer, s theme.Styles, num int, t task.Task) {
	box := "[ ]"
	title := s.Title.Render(normalizeTitle(t.Title))
	if t.Completed {
		box = "[x]"
		title = s.Done.Render(normalizeTitle(t.Title))
	}

	meta := "[" + priorityStyle(s, t.Priority).Render(string(t.Priority)) + "]"
	if due, ok := t.Due(); ok {
		meta += " " + s.Meta.Render("due "+due.Format(dateLayout))
	}

	fmt.Fprintf(w, "%s  %s %s  %s\n", s.Number.Render(fmt.Sprintf("%4d", num)), box, title, meta)
}

// FormatDetail formats every field of a task, one per line.
func FormatDetail(w io.Writer, s theme.Styles, num int, t task.Task) {
	status := "open"
	if t.Completed {
		status = "completed"
	}
	rows := [][2]string{
		{"Title", normalizeTitle(t.Title)},
		{"ID", t.ID},
		{"Position", fmt.Sprint(num)},
		{"Status", status},
		{"Priority", priorityStyle(s, t.Priority).Render(string(t.Priority))},
		{"Due", FormatDate(t)},
		{"Created", FormatCreated(t)},
	}
	for _, row := range rows {
		label := s.Label.Render(fmt.Sprintf("%-9s", row[0]+":"))
		fmt.Fprintf(w, "%s %s\n", label, row[1])
	}
}

// FormatStats formats collection counts.
func FormatStats(w io.Writer, st task.Counts) {
	fmt.Fprintf(w, "%d total, %d active, %d completed\n", st.Total, st.Active, st.Completed)
}

// FormatDate formats the due date of t, or NoDueDate.
func FormatDate(t task.Task) string {
	due, ok := t.Due()
	if !ok {
		return NoDueDate
	}
	return due.Format(dateLayout)
}

// FormatCreated formats the creation time of t in local time.
func FormatCreated(t task.Task) string {
	return time.UnixMilli(t.CreatedAt).Local().Format(dateLayout + " 15:04")
}

func priorityStyle(s theme.Styles, p task.Priority) lipgloss.Style {
	if style, ok := s.Priority[p]; ok {
		return style
	}
	return s.Meta
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
