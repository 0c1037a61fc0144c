package tui

import (
	"github.com/charmbracelet/lipgloss"

	"lifeboard/internal/store"
)

// Accent choices offered in settings, mirroring the stored accentColor.
var accentColors = []struct {
	Name  string
	Value string
}{
	{"Blue", "#3b82f6"},
	{"Purple", "#8b5cf6"},
	{"Green", "#10b981"},
	{"Orange", "#f59e0b"},
}

// Fixed palette entries.
var (
	colorMuted   = lipgloss.Color("#666666")
	colorSuccess = lipgloss.Color("#2ECC71")
	colorWarning = lipgloss.Color("#F39C12")
	colorError   = lipgloss.Color("#E74C3C")
	colorSubtle  = lipgloss.Color("#414868")

	// Category dots for the expense chart and lists.
	categoryColors = map[store.ExpenseCategory]lipgloss.Color{
		store.ExpenseFood:          lipgloss.Color("#ef4444"),
		store.ExpenseTransport:     lipgloss.Color("#3b82f6"),
		store.ExpenseEntertainment: lipgloss.Color("#8b5cf6"),
		store.ExpenseUtilities:     lipgloss.Color("#10b981"),
		store.ExpenseShopping:      lipgloss.Color("#f59e0b"),
		store.ExpenseOther:         lipgloss.Color("#6b7280"),
	}

	priorityColors = map[store.Priority]lipgloss.Color{
		store.PriorityHigh:   lipgloss.Color("#ef4444"),
		store.PriorityMedium: lipgloss.Color("#f59e0b"),
		store.PriorityLow:    lipgloss.Color("#10b981"),
	}
)

// Theme-derived entries, rebuilt by applyTheme when preferences change.
var (
	colorAccent = lipgloss.Color("#3b82f6")
	colorFg     = lipgloss.Color("#1a1a2e")
)

// Styles. Rebuilt by applyTheme.
var (
	activeTabStyle    lipgloss.Style
	inactiveTabStyle  lipgloss.Style
	panelStyle        lipgloss.Style
	activePanelStyle  lipgloss.Style
	titleStyle        lipgloss.Style
	clockStyle        lipgloss.Style
	accentStyle       lipgloss.Style
	successStyle      lipgloss.Style
	warningStyle      lipgloss.Style
	errorStyle        lipgloss.Style
	mutedStyle        lipgloss.Style
	headerStyle       lipgloss.Style
	footerStyle       lipgloss.Style
	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style
	doneItemStyle     lipgloss.Style
)

func init() {
	applyTheme(store.ThemeLight, "#3b82f6")
}

// applyTheme rebuilds the style set from the stored theme and accent color.
func applyTheme(theme store.Theme, accent string) {
	colorAccent = lipgloss.Color(accent)
	if theme == store.ThemeDark {
		colorFg = lipgloss.Color("#C0CAF5")
	} else {
		colorFg = lipgloss.Color("#1a1a2e")
	}

	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccent).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colorAccent).
		Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSubtle).
		Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorFg)

	clockStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccent).
		Align(lipgloss.Center)

	accentStyle = lipgloss.NewStyle().
		Foreground(colorAccent)

	successStyle = lipgloss.NewStyle().
		Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
		Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
		Foreground(colorMuted)

	headerStyle = lipgloss.NewStyle().
		Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	normalItemStyle = lipgloss.NewStyle().
		Foreground(colorFg)

	doneItemStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Strikethrough(true)
}
