package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"lifeboard/internal/state"
	"lifeboard/internal/store"
)

var taskFilters = []string{"all", "work", "personal", "errands"}

type tasksModel struct {
	manager *state.Manager
	width   int
	height  int

	tasks  []store.Task
	cursor int
	filter int // index into taskFilters

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle       *string
	formDescription *string
	formPriority    *string
	formCategory    *string
}

func newTasksModel(m *state.Manager) tasksModel {
	title, desc, prio, cat := "", "", "", ""
	return tasksModel{
		manager:         m,
		formTitle:       &title,
		formDescription: &desc,
		formPriority:    &prio,
		formCategory:    &cat,
	}
}

func (t *tasksModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type tasksDataMsg struct {
	tasks []store.Task
}

func (t tasksModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return tasksDataMsg{tasks: t.manager.Tasks()}
	}
}

// visible returns the tasks the current filter shows.
func (t tasksModel) visible() []store.Task {
	if taskFilters[t.filter] == "all" {
		return t.tasks
	}
	return state.TasksInCategory(t.tasks, store.TaskCategory(taskFilters[t.filter]))
}

func (t tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		t.tasks = msg.tasks
		if t.cursor >= len(t.visible()) {
			t.cursor = max(0, len(t.visible())-1)
		}
		return t, nil

	case tea.KeyMsg:
		visible := t.visible()
		switch {
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
		case key.Matches(msg, keys.Down):
			if t.cursor < len(visible)-1 {
				t.cursor++
			}
		case key.Matches(msg, keys.Filter), key.Matches(msg, keys.Right):
			t.filter = (t.filter + 1) % len(taskFilters)
			t.cursor = 0
		case key.Matches(msg, keys.Left):
			t.filter = (t.filter + len(taskFilters) - 1) % len(taskFilters)
			t.cursor = 0
		case key.Matches(msg, keys.New):
			return t.showForm()
		case key.Matches(msg, keys.Toggle):
			if len(visible) > 0 {
				t.manager.ToggleTask(visible[t.cursor].ID)
				return t, t.refresh()
			}
		case key.Matches(msg, keys.Delete):
			if len(visible) > 0 {
				t.manager.DeleteTask(visible[t.cursor].ID)
				return t, t.refresh()
			}
		case key.Matches(msg, keys.MoveUp):
			return t.move(-1)
		case key.Matches(msg, keys.MoveDown):
			return t.move(1)
		}
	}
	return t, nil
}

// move shifts the selected task within the full sequence. Reordering only
// makes sense on the unfiltered list, where cursor positions are absolute.
func (t tasksModel) move(delta int) (tasksModel, tea.Cmd) {
	if taskFilters[t.filter] != "all" {
		return t, func() tea.Msg {
			return statusMsg{text: "Switch to the All filter to reorder", isError: true}
		}
	}
	if len(t.tasks) == 0 {
		return t, nil
	}
	to := t.cursor + delta
	if to < 0 || to >= len(t.tasks) {
		return t, nil
	}
	if err := t.manager.MoveTask(t.cursor, to); err != nil {
		return t, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Reorder failed: %v", err), isError: true}
		}
	}
	t.cursor = to
	return t, t.refresh()
}

func (t tasksModel) showForm() (tasksModel, tea.Cmd) {
	*t.formTitle = ""
	*t.formDescription = ""
	*t.formPriority = string(store.PriorityMedium)
	*t.formCategory = string(store.TaskPersonal)

	catOptions := []huh.Option[string]{huh.NewOption("None", "")}
	for _, c := range store.TaskCategories {
		catOptions = append(catOptions, huh.NewOption(capitalize(string(c)), string(c)))
	}

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task title").Value(t.formTitle),
			huh.NewText().Title("Description (optional)").Value(t.formDescription),
			huh.NewSelect[string]().Title("Priority").
				Options(
					huh.NewOption("Low Priority", string(store.PriorityLow)),
					huh.NewOption("Medium Priority", string(store.PriorityMedium)),
					huh.NewOption("High Priority", string(store.PriorityHigh)),
				).Value(t.formPriority),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(t.formCategory),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		if strings.TrimSpace(*t.formTitle) == "" {
			return t, nil
		}
		_, err := t.manager.AddTask(
			*t.formTitle,
			*t.formDescription,
			store.Priority(*t.formPriority),
			store.TaskCategory(*t.formCategory),
		)
		if err != nil {
			return t, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Task not added: %v", err), isError: true}
			}
		}
		return t, t.refresh()
	}

	return t, cmd
}

func (t tasksModel) view() string {
	w := t.width - 4

	if t.formActive && t.form != nil {
		title := titleStyle.Render("Add Task")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", t.form.View()),
		)
	}

	visible := t.visible()

	var rows []string
	rows = append(rows, t.renderHeader(visible))
	rows = append(rows, "")

	if len(visible) == 0 {
		rows = append(rows, mutedStyle.Render("No tasks yet. Press n to add your first task."))
	}

	for i, task := range visible {
		rows = append(rows, t.renderTask(task, i == t.cursor))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  space: toggle  d: delete  J/K: reorder  f: filter"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (t tasksModel) renderHeader(visible []store.Task) string {
	var tabs []string
	for i, f := range taskFilters {
		label := capitalize(f)
		if i == t.filter {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	completed, total, pct := state.Progress(visible)
	progress := mutedStyle.Render(fmt.Sprintf("%d of %d completed", completed, total)) +
		"  " + accentStyle.Render(fmt.Sprintf("%3.0f%%", pct)) +
		"  " + renderBar(pct, 20)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("To-Do List"), "  ",
			lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)),
		progress,
	)
}

func (t tasksModel) renderTask(task store.Task, selected bool) string {
	cursor := "  "
	style := normalItemStyle
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}

	check := "☐"
	titleStyleLine := style
	if task.Completed {
		check = "✓"
		titleStyleLine = doneItemStyle
	}

	dot := lipgloss.NewStyle().Foreground(priorityColors[task.Priority]).Render("●")

	line := fmt.Sprintf("%s%s %s %s", cursor, check, dot, titleStyleLine.Render(task.Title))
	if task.Category != "" {
		line += mutedStyle.Render(" [" + string(task.Category) + "]")
	}
	if task.Description != "" {
		line += "\n" + mutedStyle.Render("      "+task.Description)
	}
	return line
}

func renderBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return accentStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}
