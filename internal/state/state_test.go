package state

import (
	"errors"
	"strings"
	"testing"
	"time"

	"lifeboard/internal/store"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s)
}

// mustAddTask is a test helper for the common case.
func mustAddTask(t *testing.T, m *Manager, title string) store.Task {
	t.Helper()
	task, err := m.AddTask(title, "", store.PriorityMedium, "")
	if err != nil {
		t.Fatalf("add task %q: %v", title, err)
	}
	return task
}

// ============================================================
// Hydration
// ============================================================

func TestDefaultHydration(t *testing.T) {
	m := newTestManager(t)
	snap := m.Snapshot()

	if len(snap.Tasks) != 0 || len(snap.Expenses) != 0 || len(snap.Notes) != 0 {
		t.Fatalf("fresh state should have empty collections: %+v", snap)
	}
	if len(snap.QuickLinks) != 3 {
		t.Fatalf("expected 3 seeded quick links, got %d", len(snap.QuickLinks))
	}
	wantLinks := []string{"GitHub", "Gmail", "YouTube"}
	for i, want := range wantLinks {
		if snap.QuickLinks[i].Title != want {
			t.Fatalf("quick link %d = %q, want %q", i, snap.QuickLinks[i].Title, want)
		}
	}
	if snap.Theme != store.ThemeLight {
		t.Fatalf("theme = %q, want light", snap.Theme)
	}
	if snap.UserName != "Friend" {
		t.Fatalf("userName = %q, want Friend", snap.UserName)
	}
	if snap.WeatherLocation != "London" {
		t.Fatalf("weatherLocation = %q, want London", snap.WeatherLocation)
	}
}

func TestHydrationFromPersistedState(t *testing.T) {
	s, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	m1 := New(s)
	task := mustAddTask(t, m1, "Water plants")
	m1.SetUserName("Ada")

	// A second manager over the same store sees the write-through state.
	m2 := New(s)
	snap := m2.Snapshot()
	if len(snap.Tasks) != 1 || snap.Tasks[0].ID != task.ID {
		t.Fatalf("expected persisted task, got %+v", snap.Tasks)
	}
	if snap.UserName != "Ada" {
		t.Fatalf("userName = %q, want Ada", snap.UserName)
	}
}

// ============================================================
// Tasks
// ============================================================

func TestAddTask(t *testing.T) {
	m := newTestManager(t)

	task, err := m.AddTask("  Buy milk  ", "semi-skimmed", store.PriorityHigh, store.TaskErrands)
	if err != nil {
		t.Fatal(err)
	}
	if task.ID == "" {
		t.Fatal("manager should assign an ID")
	}
	if task.Title != "Buy milk" {
		t.Fatalf("title = %q, want trimmed", task.Title)
	}
	if task.Order != 0 {
		t.Fatalf("first task order = %d, want 0", task.Order)
	}
	if task.Completed {
		t.Fatal("new task should not be completed")
	}
	if _, err := time.Parse(time.RFC3339, task.CreatedAt); err != nil {
		t.Fatalf("createdAt not RFC3339: %q", task.CreatedAt)
	}

	second := mustAddTask(t, m, "Call bank")
	if second.Order != 1 {
		t.Fatalf("second task order = %d, want 1", second.Order)
	}
	if second.ID == task.ID {
		t.Fatal("ids must be unique")
	}
}

func TestAddTaskRejectsBlankTitle(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.AddTask("   ", "", store.PriorityLow, ""); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("err = %v, want ErrEmptyTitle", err)
	}
	if len(m.Tasks()) != 0 {
		t.Fatal("rejected add must not change state")
	}
}

func TestAddTaskRejectsInvalidEnums(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.AddTask("x", "", "urgent", ""); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("err = %v, want ErrInvalidPriority", err)
	}
	if _, err := m.AddTask("x", "", store.PriorityLow, "hobby"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("err = %v, want ErrInvalidCategory", err)
	}
}

func TestUpdateTaskMergesOnlyPatchedFields(t *testing.T) {
	m := newTestManager(t)
	task, _ := m.AddTask("Report", "quarterly numbers", store.PriorityMedium, store.TaskWork)
	other := mustAddTask(t, m, "Untouched")

	done := true
	if err := m.UpdateTask(task.ID, TaskPatch{Completed: &done}); err != nil {
		t.Fatal(err)
	}

	tasks := m.Tasks()
	got := tasks[0]
	if !got.Completed {
		t.Fatal("completed should be true")
	}
	if got.Title != "Report" || got.Description != "quarterly numbers" ||
		got.Priority != store.PriorityMedium || got.Category != store.TaskWork ||
		got.CreatedAt != task.CreatedAt || got.Order != task.Order {
		t.Fatalf("patch touched unrelated fields: %+v", got)
	}
	if tasks[1] != other {
		t.Fatalf("other task changed: %+v", tasks[1])
	}
}

func TestUpdateTaskCanClearFields(t *testing.T) {
	m := newTestManager(t)
	task, _ := m.AddTask("Errand", "old description", store.PriorityLow, store.TaskErrands)

	empty := ""
	none := store.TaskCategory("")
	if err := m.UpdateTask(task.ID, TaskPatch{Description: &empty, Category: &none}); err != nil {
		t.Fatal(err)
	}

	got := m.Tasks()[0]
	if got.Description != "" || got.Category != "" {
		t.Fatalf("explicitly cleared fields should be empty: %+v", got)
	}
}

func TestUpdateTaskUnknownIDIsNoop(t *testing.T) {
	m := newTestManager(t)
	mustAddTask(t, m, "Keep me")

	done := true
	if err := m.UpdateTask("missing", TaskPatch{Completed: &done}); err != nil {
		t.Fatalf("unknown id should be silent no-op, got %v", err)
	}
	if m.Tasks()[0].Completed {
		t.Fatal("no task should have changed")
	}
}

func TestUpdateTaskRejectsInvalidPatch(t *testing.T) {
	m := newTestManager(t)
	task := mustAddTask(t, m, "Valid")

	blank := "  "
	if err := m.UpdateTask(task.ID, TaskPatch{Title: &blank}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("err = %v, want ErrEmptyTitle", err)
	}
	bad := store.Priority("urgent")
	if err := m.UpdateTask(task.ID, TaskPatch{Priority: &bad}); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("err = %v, want ErrInvalidPriority", err)
	}
	if got := m.Tasks()[0]; got.Title != "Valid" || got.Priority != store.PriorityMedium {
		t.Fatalf("rejected patch changed state: %+v", got)
	}
}

func TestToggleTask(t *testing.T) {
	m := newTestManager(t)
	task := mustAddTask(t, m, "Flip me")

	m.ToggleTask(task.ID)
	if !m.Tasks()[0].Completed {
		t.Fatal("toggle should complete the task")
	}
	m.ToggleTask(task.ID)
	if m.Tasks()[0].Completed {
		t.Fatal("second toggle should un-complete")
	}

	m.ToggleTask("missing") // no-op
	if len(m.Tasks()) != 1 {
		t.Fatal("toggle of unknown id changed the collection")
	}
}

func TestAddDeleteInverse(t *testing.T) {
	m := newTestManager(t)
	mustAddTask(t, m, "Existing")
	before := m.Tasks()

	task := mustAddTask(t, m, "Temporary")
	m.DeleteTask(task.ID)

	after := m.Tasks()
	if len(after) != len(before) {
		t.Fatalf("expected %d tasks, got %d", len(before), len(after))
	}
	for i := range before {
		if after[i].ID != before[i].ID {
			t.Fatalf("task set changed: %+v vs %+v", before, after)
		}
	}
}

func TestDeleteTaskUnknownIDIsNoop(t *testing.T) {
	m := newTestManager(t)
	mustAddTask(t, m, "Stay")
	m.DeleteTask("missing")
	if len(m.Tasks()) != 1 {
		t.Fatal("delete of unknown id changed the collection")
	}
}

func TestReorderTasks(t *testing.T) {
	m := newTestManager(t)
	a := mustAddTask(t, m, "a")
	b := mustAddTask(t, m, "b")
	c := mustAddTask(t, m, "c")

	if err := m.ReorderTasks([]store.Task{c, a, b}); err != nil {
		t.Fatal(err)
	}

	tasks := m.Tasks()
	gotIDs := []string{tasks[0].ID, tasks[1].ID, tasks[2].ID}
	wantIDs := []string{c.ID, a.ID, b.ID}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Fatalf("order = %v, want %v", gotIDs, wantIDs)
		}
	}
	for i, task := range tasks {
		if task.Order != i {
			t.Fatalf("task %d order = %d, want %d", i, task.Order, i)
		}
	}
}

func TestReorderTasksRejectsNonPermutation(t *testing.T) {
	m := newTestManager(t)
	a := mustAddTask(t, m, "a")
	b := mustAddTask(t, m, "b")

	cases := map[string][]store.Task{
		"dropped":    {a},
		"duplicated": {a, a},
		"invented":   {a, {ID: "rogue", Title: "rogue", Priority: store.PriorityLow}},
	}
	for name, seq := range cases {
		if err := m.ReorderTasks(seq); !errors.Is(err, ErrNotPermutation) {
			t.Fatalf("%s: err = %v, want ErrNotPermutation", name, err)
		}
	}

	tasks := m.Tasks()
	if len(tasks) != 2 || tasks[0].ID != a.ID || tasks[1].ID != b.ID {
		t.Fatalf("rejected reorder changed state: %+v", tasks)
	}
}

func TestMoveTask(t *testing.T) {
	m := newTestManager(t)
	a := mustAddTask(t, m, "a")
	b := mustAddTask(t, m, "b")
	c := mustAddTask(t, m, "c")

	if err := m.MoveTask(2, 0); err != nil {
		t.Fatal(err)
	}
	tasks := m.Tasks()
	want := []string{c.ID, a.ID, b.ID}
	for i := range want {
		if tasks[i].ID != want[i] {
			t.Fatalf("after move: %v, want %v", tasks, want)
		}
	}

	// Out-of-range moves are no-ops.
	if err := m.MoveTask(0, 9); err != nil {
		t.Fatal(err)
	}
	if m.Tasks()[0].ID != c.ID {
		t.Fatal("out-of-range move changed state")
	}
}

// ============================================================
// Expenses
// ============================================================

func TestExpenseTotalsScenario(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.AddExpense("Coffee", 3.50, store.ExpenseFood); err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddExpense("Salary", -2000, store.ExpenseOther); err != nil {
		t.Fatal(err)
	}

	totals := ExpenseTotals(m.Expenses())
	if totals.Income != 2000.00 {
		t.Fatalf("income = %.2f, want 2000.00", totals.Income)
	}
	if totals.Expenses != 3.50 {
		t.Fatalf("expenses = %.2f, want 3.50", totals.Expenses)
	}
	if totals.Balance != 1996.50 {
		t.Fatalf("balance = %.2f, want 1996.50", totals.Balance)
	}
}

func TestAddExpenseValidation(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.AddExpense("", 1, store.ExpenseFood); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("err = %v, want ErrEmptyTitle", err)
	}
	if _, err := m.AddExpense("x", 1, "crypto"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("err = %v, want ErrInvalidCategory", err)
	}
	if len(m.Expenses()) != 0 {
		t.Fatal("rejected adds must not change state")
	}
}

func TestDeleteExpense(t *testing.T) {
	m := newTestManager(t)
	e, _ := m.AddExpense("Coffee", 3.50, store.ExpenseFood)
	m.DeleteExpense(e.ID)
	if len(m.Expenses()) != 0 {
		t.Fatal("expense should be gone")
	}
	m.DeleteExpense(e.ID) // no-op
}

func TestSpendingByCategoryExcludesIncome(t *testing.T) {
	m := newTestManager(t)
	m.AddExpense("Coffee", 3, store.ExpenseFood)
	m.AddExpense("Lunch", 7, store.ExpenseFood)
	m.AddExpense("Salary", -2000, store.ExpenseOther)

	spending := SpendingByCategory(m.Expenses())
	if spending[store.ExpenseFood] != 10 {
		t.Fatalf("food = %.2f, want 10", spending[store.ExpenseFood])
	}
	if _, ok := spending[store.ExpenseOther]; ok {
		t.Fatal("income rows must not appear in spending")
	}
}

// ============================================================
// Quick links
// ============================================================

func TestAddQuickLinkDefaultsIcon(t *testing.T) {
	m := newTestManager(t)
	l, err := m.AddQuickLink("Docs", "https://pkg.go.dev", "")
	if err != nil {
		t.Fatal(err)
	}
	if l.Icon != "🔗" {
		t.Fatalf("icon = %q, want default", l.Icon)
	}

	if _, err := m.AddQuickLink("", "https://x", ""); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("err = %v, want ErrEmptyTitle", err)
	}
	if _, err := m.AddQuickLink("x", " ", ""); !errors.Is(err, ErrEmptyURL) {
		t.Fatalf("err = %v, want ErrEmptyURL", err)
	}
}

func TestDeleteQuickLink(t *testing.T) {
	m := newTestManager(t)
	links := m.QuickLinks()
	m.DeleteQuickLink(links[0].ID)
	if len(m.QuickLinks()) != 2 {
		t.Fatal("link should be gone")
	}
}

// ============================================================
// Notes
// ============================================================

func TestNoteLifecycle(t *testing.T) {
	m := newTestManager(t)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }

	note, err := m.AddNote("Ideas", "start a garden")
	if err != nil {
		t.Fatal(err)
	}
	if note.CreatedAt != note.UpdatedAt {
		t.Fatal("fresh note should have createdAt == updatedAt")
	}

	m.now = func() time.Time { return base.Add(time.Hour) }
	content := "start a garden\nbuy seeds"
	if err := m.UpdateNote(note.ID, NotePatch{Content: &content}); err != nil {
		t.Fatal(err)
	}

	got := m.Notes()[0]
	if got.Content != content {
		t.Fatalf("content = %q", got.Content)
	}
	if got.Title != "Ideas" {
		t.Fatal("title should be untouched")
	}
	if got.UpdatedAt == got.CreatedAt {
		t.Fatal("update should touch updatedAt")
	}

	if err := m.UpdateNote("missing", NotePatch{Content: &content}); err != nil {
		t.Fatalf("unknown id should be silent no-op, got %v", err)
	}

	m.DeleteNote(note.ID)
	if len(m.Notes()) != 0 {
		t.Fatal("note should be gone")
	}
}

// ============================================================
// Preferences
// ============================================================

func TestPreferences(t *testing.T) {
	m := newTestManager(t)

	if err := m.SetTheme(store.ThemeDark); err != nil {
		t.Fatal(err)
	}
	if err := m.SetTheme("sepia"); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("err = %v, want ErrInvalidTheme", err)
	}
	m.SetAccentColor("#8b5cf6")
	m.SetWeatherLocation("Tokyo")
	m.SetUserName("Ada")

	snap := m.Snapshot()
	if snap.Theme != store.ThemeDark || snap.AccentColor != "#8b5cf6" ||
		snap.WeatherLocation != "Tokyo" || snap.UserName != "Ada" {
		t.Fatalf("preferences not applied: %+v", snap)
	}
}

// ============================================================
// Observability
// ============================================================

func TestSubscriberSeesMutationBeforeReturn(t *testing.T) {
	m := newTestManager(t)

	var observed []int
	m.Subscribe(func(snap store.Snapshot) {
		observed = append(observed, len(snap.Tasks))
	})

	mustAddTask(t, m, "first")
	if len(observed) != 1 || observed[0] != 1 {
		t.Fatalf("subscriber should have seen 1 task synchronously, got %v", observed)
	}

	mustAddTask(t, m, "second")
	if len(observed) != 2 || observed[1] != 2 {
		t.Fatalf("subscriber should have seen 2 tasks, got %v", observed)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	m := newTestManager(t)
	mustAddTask(t, m, "canonical")

	snap := m.Snapshot()
	snap.Tasks[0].Title = "mutated"
	snap.QuickLinks[0].Title = "mutated"

	if m.Tasks()[0].Title != "canonical" {
		t.Fatal("snapshot shares backing array with canonical state")
	}
	if m.QuickLinks()[0].Title == "mutated" {
		t.Fatal("snapshot shares quick links with canonical state")
	}
}

// ============================================================
// Export / import
// ============================================================

func TestExportImportIdempotence(t *testing.T) {
	m := newTestManager(t)
	mustAddTask(t, m, "task")
	m.AddExpense("Coffee", 3.50, store.ExpenseFood)
	m.AddNote("note", "content")
	m.SetUserName("Ada")

	before := m.Snapshot()

	doc, err := m.ExportDocument()
	if err != nil {
		t.Fatal(err)
	}
	if err := m.ImportDocument(doc); err != nil {
		t.Fatal(err)
	}

	after := m.Snapshot()
	if len(after.Tasks) != len(before.Tasks) || after.Tasks[0] != before.Tasks[0] {
		t.Fatalf("tasks changed: %+v vs %+v", before.Tasks, after.Tasks)
	}
	if len(after.Expenses) != len(before.Expenses) || after.Expenses[0] != before.Expenses[0] {
		t.Fatalf("expenses changed: %+v vs %+v", before.Expenses, after.Expenses)
	}
	if after.UserName != before.UserName || after.Theme != before.Theme {
		t.Fatal("preferences changed across export/import")
	}
}

func TestImportMalformedLeavesStateIntact(t *testing.T) {
	m := newTestManager(t)
	m.AddExpense("Coffee", 3.50, store.ExpenseFood)
	m.AddExpense("Salary", -2000, store.ExpenseOther)
	before := m.Snapshot()

	if err := m.ImportDocument([]byte("{not json")); err == nil {
		t.Fatal("malformed import must fail")
	}

	after := m.Snapshot()
	if len(after.Expenses) != 2 {
		t.Fatalf("state changed after failed import: %+v", after.Expenses)
	}
	totals := ExpenseTotals(after.Expenses)
	if totals.Balance != ExpenseTotals(before.Expenses).Balance {
		t.Fatal("totals changed after failed import")
	}
}

func TestImportRejectsTrailingData(t *testing.T) {
	m := newTestManager(t)
	before := m.Snapshot()

	doc := `{"theme":"dark","accentColor":"#fff","weatherLocation":"x","userName":"x","tasks":[],"expenses":[],"quickLinks":[],"notes":[]}`
	if err := m.ImportDocument([]byte(doc + "GARBAGE AFTER THE DOCUMENT")); err == nil {
		t.Fatal("trailing data after the document must be rejected")
	}

	after := m.Snapshot()
	if after.Theme != before.Theme {
		t.Fatalf("state changed after rejected import: theme = %q", after.Theme)
	}

	// Trailing whitespace is still a single JSON value.
	if err := m.ImportDocument([]byte(doc + "\n  \n")); err != nil {
		t.Fatalf("trailing whitespace should be accepted: %v", err)
	}
}

func TestImportRejectsUnknownFields(t *testing.T) {
	m := newTestManager(t)
	doc, _ := m.ExportDocument()
	bad := strings.Replace(string(doc), `"theme"`, `"mystery": 1, "theme"`, 1)

	if err := m.ImportDocument([]byte(bad)); err == nil {
		t.Fatal("unknown fields must be rejected")
	}
}

func TestImportRejectsInvalidEnums(t *testing.T) {
	m := newTestManager(t)
	before := m.Snapshot()

	cases := map[string]string{
		"bad theme":    `{"theme":"sepia","accentColor":"#fff","weatherLocation":"x","userName":"x","tasks":[],"expenses":[],"quickLinks":[],"notes":[]}`,
		"bad priority": `{"theme":"light","accentColor":"#fff","weatherLocation":"x","userName":"x","tasks":[{"id":"1","title":"t","priority":"urgent","completed":false,"createdAt":"2024-01-01T00:00:00Z","order":0}],"expenses":[],"quickLinks":[],"notes":[]}`,
		"bad category": `{"theme":"light","accentColor":"#fff","weatherLocation":"x","userName":"x","tasks":[],"expenses":[{"id":"1","title":"t","amount":1,"category":"crypto","date":"2024-01-01T00:00:00Z"}],"quickLinks":[],"notes":[]}`,
	}
	for name, doc := range cases {
		if err := m.ImportDocument([]byte(doc)); err == nil {
			t.Fatalf("%s: import must be rejected", name)
		}
	}

	after := m.Snapshot()
	if after.Theme != before.Theme || len(after.QuickLinks) != len(before.QuickLinks) {
		t.Fatal("rejected imports changed state")
	}
}

func TestImportReplacesStateWholesale(t *testing.T) {
	m := newTestManager(t)
	mustAddTask(t, m, "will vanish")

	doc := `{"theme":"dark","accentColor":"#10b981","weatherLocation":"Oslo","userName":"Finn","tasks":[],"expenses":[],"quickLinks":[{"id":"9","title":"Maps","url":"https://maps.example","icon":"🗺️"}],"notes":[]}`
	if err := m.ImportDocument([]byte(doc)); err != nil {
		t.Fatal(err)
	}

	snap := m.Snapshot()
	if len(snap.Tasks) != 0 {
		t.Fatal("import must replace, not merge")
	}
	if snap.Theme != store.ThemeDark || snap.UserName != "Finn" {
		t.Fatalf("imported prefs not applied: %+v", snap)
	}
	if len(snap.QuickLinks) != 1 || snap.QuickLinks[0].Title != "Maps" {
		t.Fatalf("imported links not applied: %+v", snap.QuickLinks)
	}
}

func TestFlushPersists(t *testing.T) {
	s, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	m := New(s)
	mustAddTask(t, m, "durable")
	if err := m.Flush(); err != nil {
		t.Fatal(err)
	}

	loaded := s.Load()
	if len(loaded.Tasks) != 1 || loaded.Tasks[0].Title != "durable" {
		t.Fatalf("flush did not persist: %+v", loaded.Tasks)
	}
}

// ============================================================
// Derived views
// ============================================================

func TestTasksInCategory(t *testing.T) {
	m := newTestManager(t)
	m.AddTask("w", "", store.PriorityLow, store.TaskWork)
	m.AddTask("p", "", store.PriorityLow, store.TaskPersonal)
	m.AddTask("u", "", store.PriorityLow, "")

	work := TasksInCategory(m.Tasks(), store.TaskWork)
	if len(work) != 1 || work[0].Title != "w" {
		t.Fatalf("work filter: %+v", work)
	}
	uncategorized := TasksInCategory(m.Tasks(), "")
	if len(uncategorized) != 1 || uncategorized[0].Title != "u" {
		t.Fatalf("uncategorized filter: %+v", uncategorized)
	}
}

func TestProgress(t *testing.T) {
	m := newTestManager(t)
	a := mustAddTask(t, m, "a")
	mustAddTask(t, m, "b")
	m.ToggleTask(a.ID)

	completed, total, pct := Progress(m.Tasks())
	if completed != 1 || total != 2 || pct != 50 {
		t.Fatalf("progress = %d/%d %.0f%%", completed, total, pct)
	}

	completed, total, pct = Progress(nil)
	if completed != 0 || total != 0 || pct != 0 {
		t.Fatal("empty progress should be all zeroes")
	}
}
