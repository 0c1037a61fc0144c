package tui

import (
	"fmt"
	"time"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTasks
	viewExpenses
	viewNotes
	viewSettings
)

var viewNames = []string{"Dashboard", "Tasks", "Expenses", "Notes", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

type importDoneMsg struct {
	err error
}

type prefsChangedMsg struct{}

// --- Helpers ---

func greetingFor(hour int) (text, emoji string) {
	switch {
	case hour < 12:
		return "Good Morning", "☀️"
	case hour < 17:
		return "Good Afternoon", "🌤️"
	case hour < 21:
		return "Good Evening", "🌆"
	default:
		return "Good Night", "🌙"
	}
}

func formatAmount(currency string, amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-%s%.2f", currency, -amount)
	}
	return fmt.Sprintf("%s%.2f", currency, amount)
}

// shortDate renders an RFC3339 timestamp as "Jan 02 15:04".
func shortDate(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("Jan 02 15:04")
}

// capitalize upper-cases the first ASCII letter, for category labels.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

// truncate shortens s to at most n runes, appending an ellipsis. Indexing
// bytes would split multi-byte runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
