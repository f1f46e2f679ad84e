package commands

import (
	"errors"
	"strings"
	"testing"

	"taskman/internal/task"
)

func manualTasks() []task.Task {
	return []task.Task{
		{ID: "3f2a-first", Title: "first"},
		{ID: "3f9c-second", Title: "second"},
		{ID: "a1b2-third", Title: "third"},
	}
}

func TestParseTaskRef_Numeric(t *testing.T) {
	ref, err := ParseTaskRef("5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 5 {
		t.Errorf("expected Num 5, got %d", ref.Num)
	}
	if ref.ID != "" {
		t.Errorf("expected no ID, got %q", ref.ID)
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	ref, err := ParseTaskRef("a1b2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 0 || ref.ID != "a1b2" {
		t.Errorf("expected id reference, got %+v", ref)
	}
}

func TestParseTaskRef_Empty(t *testing.T) {
	for _, arg := range []string{"", "   "} {
		if _, err := ParseTaskRef(arg); !errors.Is(err, ErrTaskRefRequired) {
			t.Errorf("ParseTaskRef(%q): expected ErrTaskRefRequired, got %v", arg, err)
		}
	}
}

func TestParseTaskRefs_NoArgs(t *testing.T) {
	if _, err := ParseTaskRefs(nil); !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestResolve_ByNumber(t *testing.T) {
	ref, _ := ParseTaskRef("2")
	got, num, err := ref.Resolve(manualTasks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "second" || num != 2 {
		t.Errorf("expected second at 2, got %q at %d", got.Title, num)
	}
}

func TestResolve_NumberOutOfRange(t *testing.T) {
	for _, arg := range []string{"0", "4"} {
		ref, _ := ParseTaskRef(arg)
		_, _, err := ref.Resolve(manualTasks())
		if err == nil {
			t.Fatalf("%s: expected error", arg)
		}
		expected := "task number out of range: " + arg
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	}
}

func TestResolve_ByIDAndPrefix(t *testing.T) {
	for arg, want := range map[string]string{
		"a1b2-third": "third",
		"a1":         "third",
		"3f9":        "second",
	} {
		ref, _ := ParseTaskRef(arg)
		got, _, err := ref.Resolve(manualTasks())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", arg, err)
		}
		if got.Title != want {
			t.Errorf("%s: expected %q, got %q", arg, want, got.Title)
		}
	}
}

func TestResolve_AmbiguousPrefix(t *testing.T) {
	ref, _ := ParseTaskRef("3f")
	_, _, err := ref.Resolve(manualTasks())
	if err == nil || err.Error() != "ambiguous task reference: 3f" {
		t.Errorf("expected ambiguous error, got %v", err)
	}
}

func TestResolve_NotFound(t *testing.T) {
	ref, _ := ParseTaskRef("zz")
	_, _, err := ref.Resolve(manualTasks())
	if err == nil || err.Error() != "task not found: zz" {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestResolveRefs_DropsDuplicates(t *testing.T) {
	got, err := resolveRefs([]string{"1", "3f2a", "3"}, manualTasks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Title != "first" || got[1].Title != "third" {
		t.Errorf("unexpected tasks: %+v", got)
	}
}

func TestIsAllDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"123", true},
		{"0", true},
		{"", false},
		{"12a", false},
		{"١٢", false},
	}
	for _, tt := range tests {
		if got := isAllDigits(tt.input); got != tt.expected {
			t.Errorf("isAllDigits(%q): expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func TestHelpText_ListsEveryCommand(t *testing.T) {
	text := helpText(DefaultRegistry)
	for _, cmd := range DefaultRegistry.All() {
		if !strings.Contains(text, cmd.Usage()) {
			t.Errorf("help text missing usage for %s", cmd.Name())
		}
	}
}
