package tui

import (
	"strings"
	"testing"

	"lifeboard/internal/state"
	"lifeboard/internal/store"
)

func newTestManager(t *testing.T) *state.Manager {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return state.New(s)
}

func TestGreetingFor(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{0, "Good Morning"},
		{11, "Good Morning"},
		{12, "Good Afternoon"},
		{16, "Good Afternoon"},
		{17, "Good Evening"},
		{20, "Good Evening"},
		{21, "Good Night"},
		{23, "Good Night"},
	}
	for _, tc := range cases {
		got, emoji := greetingFor(tc.hour)
		if got != tc.want {
			t.Errorf("greetingFor(%d) = %q, want %q", tc.hour, got, tc.want)
		}
		if emoji == "" {
			t.Errorf("greetingFor(%d) has no emoji", tc.hour)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := formatAmount("£", 1996.5); got != "£1996.50" {
		t.Errorf("formatAmount positive = %q", got)
	}
	if got := formatAmount("$", -42); got != "-$42.00" {
		t.Errorf("formatAmount negative = %q", got)
	}
	if got := formatAmount("£", 0); got != "£0.00" {
		t.Errorf("formatAmount zero = %q", got)
	}
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"work":     "Work",
		"all":      "All",
		"Errands":  "Errands",
		"":         "",
		"1st":      "1st",
		"personal": "Personal",
	}
	for in, want := range cases {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 70); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	long := strings.Repeat("x", 80)
	if got := truncate(long, 70); got != strings.Repeat("x", 70)+"…" {
		t.Errorf("truncate long = %q", got)
	}

	// Multi-byte content must be cut on rune boundaries, never mid-rune.
	accented := strings.Repeat("é", 80)
	got := truncate(accented, 70)
	if got != strings.Repeat("é", 70)+"…" {
		t.Errorf("truncate accented = %q", got)
	}
	for _, r := range got {
		if r == '�' {
			t.Fatal("truncate produced a broken rune")
		}
	}
}

func TestShortDate(t *testing.T) {
	got := shortDate("2024-03-01T10:30:00Z")
	if !strings.HasPrefix(got, "Mar 01") {
		t.Errorf("shortDate = %q, want Mar 01 prefix", got)
	}
	// Unparsable timestamps pass through untouched.
	if got := shortDate("not-a-date"); got != "not-a-date" {
		t.Errorf("shortDate passthrough = %q", got)
	}
}

func TestRenderBarWidth(t *testing.T) {
	for _, pct := range []float64{0, 33, 50, 100} {
		bar := renderBar(pct, 20)
		n := strings.Count(bar, "█") + strings.Count(bar, "░")
		if n != 20 {
			t.Errorf("renderBar(%v) width = %d, want 20", pct, n)
		}
	}
	if strings.Contains(renderBar(0, 10), "█") {
		t.Error("empty bar should have no filled cells")
	}
	if strings.Contains(renderBar(100, 10), "░") {
		t.Error("full bar should have no empty cells")
	}
}

func TestTasksVisibleFilter(t *testing.T) {
	m := newTestManager(t)
	m.AddTask("write report", "", store.PriorityMedium, store.TaskWork)
	m.AddTask("buy milk", "", store.PriorityLow, store.TaskErrands)
	m.AddTask("call mum", "", store.PriorityLow, store.TaskPersonal)

	tm := newTasksModel(m)
	tm.tasks = m.Tasks()

	if got := len(tm.visible()); got != 3 {
		t.Fatalf("all filter shows %d, want 3", got)
	}

	for i, f := range taskFilters {
		if f != "work" {
			continue
		}
		tm.filter = i
	}
	vis := tm.visible()
	if len(vis) != 1 || vis[0].Title != "write report" {
		t.Fatalf("work filter shows %+v", vis)
	}
}

func TestViewNamesCoverAllViews(t *testing.T) {
	if len(viewNames) != int(viewSettings)+1 {
		t.Fatalf("viewNames has %d entries for %d views", len(viewNames), int(viewSettings)+1)
	}
}

func TestAccentColorChoices(t *testing.T) {
	want := []struct{ name, hex string }{
		{"Blue", "#3b82f6"},
		{"Purple", "#8b5cf6"},
		{"Green", "#10b981"},
		{"Orange", "#f59e0b"},
	}
	if len(accentColors) != len(want) {
		t.Fatalf("accentColors has %d entries, want %d", len(accentColors), len(want))
	}
	for i, w := range want {
		if accentColors[i].Name != w.name || accentColors[i].Value != w.hex {
			t.Errorf("accent %d = %+v, want %+v", i, accentColors[i], w)
		}
	}
}
