package app_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"taskman/internal/app"
	"taskman/internal/persist"
	"taskman/internal/store"
	"taskman/internal/task"
	"taskman/internal/testutil"
	"taskman/internal/theme"
)

var fixedNow = time.UnixMilli(1760000000000)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
}

func newApp(t *testing.T, st *testutil.FakeStore) *app.App {
	t.Helper()
	return app.Load(context.Background(), st,
		app.WithClock(func() time.Time { return fixedNow }),
		app.WithIDGenerator(sequentialIDs()),
	)
}

func seeded() *testutil.FakeStore {
	st := testutil.NewFakeStore()
	st.PutTasks(
		task.Task{ID: "a", Title: "Buy milk", Priority: task.PriorityLow, CreatedAt: 1, Order: 0},
		task.Task{ID: "b", Title: "Walk dog", Priority: task.PriorityHigh, CreatedAt: 2, Order: 1, Completed: true},
		task.Task{ID: "c", Title: "Pay rent", Priority: task.PriorityMedium, CreatedAt: 3, Order: 2},
	)
	return st
}

func ids(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func stored(t *testing.T, st *testutil.FakeStore) []task.Task {
	t.Helper()
	tasks, err := st.StoredTasks()
	if err != nil {
		t.Fatalf("decode stored tasks: %v", err)
	}
	return tasks
}

func TestLoad_Empty(t *testing.T) {
	a := newApp(t, testutil.NewFakeStore())
	if len(a.Tasks()) != 0 {
		t.Errorf("expected no tasks, got %d", len(a.Tasks()))
	}
	if a.Theme() != theme.Light {
		t.Errorf("expected light theme, got %q", a.Theme())
	}
}

func TestAdd_AssignsDefaults(t *testing.T) {
	st := testutil.NewFakeStore()
	a := newApp(t, st)
	ctx := context.Background()

	first, ok := a.Add(ctx, app.NewTask{Title: "  Buy milk  "})
	if !ok {
		t.Fatal("expected task to be added")
	}
	if first.ID != "new-1" || first.Title != "Buy milk" {
		t.Errorf("unexpected task: %+v", first)
	}
	if first.Order != 0 {
		t.Errorf("expected order 0 for first task, got %d", first.Order)
	}
	if first.Priority != task.PriorityMedium || first.Completed || first.DueDate != nil {
		t.Errorf("unexpected defaults: %+v", first)
	}
	if first.CreatedAt != fixedNow.UnixMilli() {
		t.Errorf("expected createdAt %d, got %d", fixedNow.UnixMilli(), first.CreatedAt)
	}

	due := "2026-11-01"
	second, _ := a.Add(ctx, app.NewTask{Title: "Pay rent", DueDate: &due, Priority: task.PriorityHigh})
	if second.Order != 1 {
		t.Errorf("expected order 1, got %d", second.Order)
	}
	if second.DueDate == nil || *second.DueDate != due {
		t.Errorf("expected due date %s, got %v", due, second.DueDate)
	}

	if got := ids(stored(t, st)); !slices.Equal(got, []string{"new-1", "new-2"}) {
		t.Errorf("expected both tasks persisted, got %v", got)
	}
}

func TestAdd_OrderFollowsHighest(t *testing.T) {
	st := testutil.NewFakeStore()
	st.PutTasks(task.Task{ID: "x", Title: "x", Order: 7})
	a := newApp(t, st)

	added, _ := a.Add(context.Background(), app.NewTask{Title: "next"})
	if added.Order != 8 {
		t.Errorf("expected order 8, got %d", added.Order)
	}
}

func TestAdd_BlankTitleIsIgnored(t *testing.T) {
	st := testutil.NewFakeStore()
	a := newApp(t, st)

	if _, ok := a.Add(context.Background(), app.NewTask{Title: "   "}); ok {
		t.Error("expected blank title to be rejected")
	}
	if len(a.Tasks()) != 0 {
		t.Errorf("expected no tasks, got %d", len(a.Tasks()))
	}
	if st.Sets[store.TasksKey] != 0 {
		t.Errorf("expected no save, got %d", st.Sets[store.TasksKey])
	}
}

func TestToggle_ChangesOnlyCompletion(t *testing.T) {
	st := seeded()
	a := newApp(t, st)
	before := a.Tasks()

	done, err := a.Toggle(context.Background(), "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !done {
		t.Error("expected task to be completed")
	}

	after := stored(t, st)
	for i := range before {
		want := before[i]
		if want.ID == "a" {
			want.Completed = !want.Completed
		}
		got := after[i]
		if got.ID != want.ID || got.Title != want.Title || got.Completed != want.Completed ||
			got.Priority != want.Priority || got.CreatedAt != want.CreatedAt || got.Order != want.Order {
			t.Errorf("task %d: expected %+v, got %+v", i, want, got)
		}
	}
}

func TestSetCompleted(t *testing.T) {
	a := newApp(t, seeded())
	ctx := context.Background()

	if err := a.SetCompleted(ctx, "b", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tk, _ := a.Find("b"); tk.Completed {
		t.Error("expected task b to be open")
	}
	if err := a.SetCompleted(ctx, "zzz", true); !errors.Is(err, app.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_RemovesExactlyOne(t *testing.T) {
	st := seeded()
	a := newApp(t, st)

	if err := a.Delete(context.Background(), "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(stored(t, st)); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("expected [a c], got %v", got)
	}
	if err := a.Delete(context.Background(), "b"); !errors.Is(err, app.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestEdit(t *testing.T) {
	a := newApp(t, seeded())
	ctx := context.Background()

	title, due, pri, done := "Buy oat milk", "2026-12-24", task.PriorityHigh, true
	got, err := a.Edit(ctx, "a", app.Changes{Title: &title, DueDate: &due, Priority: &pri, Completed: &done})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != title || got.DueDate == nil || *got.DueDate != due || got.Priority != pri || !got.Completed {
		t.Errorf("unexpected task after edit: %+v", got)
	}

	none := ""
	got, err = a.Edit(ctx, "a", app.Changes{DueDate: &none})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DueDate != nil {
		t.Errorf("expected due date cleared, got %v", *got.DueDate)
	}
	if got.Title != title {
		t.Errorf("expected title kept, got %q", got.Title)
	}
}

func TestEdit_Errors(t *testing.T) {
	st := seeded()
	a := newApp(t, st)
	ctx := context.Background()

	blank := "  "
	if _, err := a.Edit(ctx, "a", app.Changes{Title: &blank}); !errors.Is(err, app.ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
	bad := "tomorrow"
	if _, err := a.Edit(ctx, "a", app.Changes{DueDate: &bad}); err == nil {
		t.Error("expected error for invalid due date")
	}
	if _, err := a.Edit(ctx, "nope", app.Changes{}); !errors.Is(err, app.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if st.Sets[store.TasksKey] != 0 {
		t.Errorf("expected no save after failed edits, got %d", st.Sets[store.TasksKey])
	}
}

func TestClearCompleted(t *testing.T) {
	st := seeded()
	a := newApp(t, st)

	if n := a.ClearCompleted(context.Background()); n != 1 {
		t.Errorf("expected 1 removed, got %d", n)
	}
	if got := ids(stored(t, st)); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("expected [a c], got %v", got)
	}
}

func TestMove(t *testing.T) {
	st := seeded()
	a := newApp(t, st)
	ctx := context.Background()

	if err := a.Move(ctx, "c", "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(a.Manual()); !slices.Equal(got, []string{"c", "a", "b"}) {
		t.Errorf("expected [c a b], got %v", got)
	}
	for i, tk := range stored(t, st) {
		if tk.Order != i {
			t.Errorf("task %s: expected order %d, got %d", tk.ID, i, tk.Order)
		}
	}

	if err := a.Move(ctx, "c", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(a.Manual()); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("expected [a b c], got %v", got)
	}

	if err := a.Move(ctx, "zzz", "a"); !errors.Is(err, app.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestImport_ReplacesCollection(t *testing.T) {
	st := seeded()
	a := newApp(t, st)

	n, err := a.Import(context.Background(), []byte(`[{"title":"Imported"},{"id":"keep","title":"Kept","order":5}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 imported, got %d", n)
	}
	if got := ids(stored(t, st)); !slices.Equal(got, []string{"new-1", "keep"}) {
		t.Errorf("expected [new-1 keep], got %v", got)
	}
}

func TestImport_NonArrayLeavesCollection(t *testing.T) {
	st := seeded()
	a := newApp(t, st)
	before := ids(a.Tasks())

	_, err := a.Import(context.Background(), []byte(`{"title":"not a list"}`))
	if !errors.Is(err, persist.ErrNotArray) {
		t.Fatalf("expected ErrNotArray, got %v", err)
	}
	if got := ids(a.Tasks()); !slices.Equal(got, before) {
		t.Errorf("expected collection unchanged, got %v", got)
	}
	if st.Sets[store.TasksKey] != 0 {
		t.Errorf("expected no save, got %d", st.Sets[store.TasksKey])
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	a := newApp(t, seeded())
	var buf bytes.Buffer
	if err := a.Export(&buf, persist.FormatJSON); err != nil {
		t.Fatalf("export: %v", err)
	}
	want := a.Tasks()

	b := newApp(t, testutil.NewFakeStore())
	if _, err := b.Import(context.Background(), buf.Bytes()); err != nil {
		t.Fatalf("import: %v", err)
	}
	got := b.Tasks()
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Title != want[i].Title || got[i].Completed != want[i].Completed ||
			got[i].Priority != want[i].Priority || got[i].CreatedAt != want[i].CreatedAt || got[i].Order != want[i].Order {
			t.Errorf("task %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestLoad_MistypedFieldDoesNotLoseTasks(t *testing.T) {
	st := testutil.NewFakeStore()
	st.Put(store.TasksKey, `[
		{"id":"a","title":"One","completed":false,"priority":"low","createdAt":1,"order":0},
		{"id":"b","title":"Two","completed":false,"priority":"high","createdAt":2,"order":1.5}
	]`)
	a := newApp(t, st)
	if _, ok := a.Add(context.Background(), app.NewTask{Title: "Three"}); !ok {
		t.Fatal("expected task to be added")
	}

	got := ids(stored(t, st))
	want := []string{"a", "b", "new-1"}
	if !slices.Equal(got, want) {
		t.Errorf("expected stored %v, got %v", want, got)
	}
}

func TestExportImport_LegacyValues(t *testing.T) {
	st := testutil.NewFakeStore()
	st.Put(store.TasksKey, `[{"id":"a","title":"Old","dueDate":"2024-1-5","priority":"urgent","createdAt":1,"order":0}]`)
	a := newApp(t, st)

	var buf bytes.Buffer
	if err := a.Export(&buf, persist.FormatJSON); err != nil {
		t.Fatalf("export: %v", err)
	}
	n, err := a.Import(context.Background(), buf.Bytes())
	if err != nil {
		t.Fatalf("expected own export to import, got %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 task, got %d", n)
	}
	got := a.Tasks()[0]
	if got.DueDate == nil || *got.DueDate != "2024-1-5" || got.Priority != "urgent" {
		t.Errorf("expected legacy values to survive, got %+v", got)
	}
}

func TestVisible(t *testing.T) {
	a := newApp(t, seeded())
	a.SetFilter(task.FilterActive)
	a.SetSort(task.SortPriority)
	if got := ids(a.Visible()); !slices.Equal(got, []string{"c", "a"}) {
		t.Errorf("expected [c a], got %v", got)
	}
	a.SetSearch("MILK")
	if got := ids(a.Visible()); !slices.Equal(got, []string{"a"}) {
		t.Errorf("expected [a], got %v", got)
	}

	s := a.State()
	if s.Filter != task.FilterActive || s.Sort != task.SortPriority || s.Search != "MILK" {
		t.Errorf("unexpected view state: %+v", s)
	}
	if len(s.Tasks) != 3 {
		t.Errorf("expected 3 tasks in state, got %d", len(s.Tasks))
	}
}

func TestTheme_Persisted(t *testing.T) {
	st := testutil.NewFakeStore()
	a := newApp(t, st)

	if got := a.ToggleTheme(context.Background()); got != theme.Dark {
		t.Errorf("expected dark, got %q", got)
	}
	if v, _ := st.Value(store.ThemeKey); v != "dark" {
		t.Errorf("expected dark persisted, got %q", v)
	}
	if got := newApp(t, st).Theme(); got != theme.Dark {
		t.Errorf("expected dark after reload, got %q", got)
	}
}

func TestSaveErrorIsSwallowed(t *testing.T) {
	st := testutil.NewFakeStore()
	st.SetErr = errors.New("disk full")
	a := newApp(t, st)

	if _, ok := a.Add(context.Background(), app.NewTask{Title: "still here"}); !ok {
		t.Fatal("expected add to succeed in memory")
	}
	if len(a.Tasks()) != 1 {
		t.Errorf("expected 1 task in memory, got %d", len(a.Tasks()))
	}
	if _, found := st.Value(store.TasksKey); found {
		t.Error("expected nothing persisted")
	}
}

func TestStats(t *testing.T) {
	got := newApp(t, seeded()).Stats()
	if got.Total != 3 || got.Active != 2 || got.Completed != 1 {
		t.Errorf("unexpected stats: %+v", got)
	}
}

func TestFind_ReturnsCopy(t *testing.T) {
	a := newApp(t, seeded())
	tk, ok := a.Find("a")
	if !ok {
		t.Fatal("expected task a")
	}
	tk.Title = strings.ToUpper(tk.Title)
	if again, _ := a.Find("a"); again.Title != "Buy milk" {
		t.Errorf("expected stored title unchanged, got %q", again.Title)
	}
}
