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

type notesModel struct {
	manager *state.Manager
	width   int
	height  int

	notes  []store.Note
	cursor int

	formActive bool
	form       *huh.Form
	editingID  string // empty when creating

	// Form field pointers (survive value copies)
	formTitle   *string
	formContent *string
}

func newNotesModel(m *state.Manager) notesModel {
	title, content := "", ""
	return notesModel{
		manager:     m,
		formTitle:   &title,
		formContent: &content,
	}
}

func (n *notesModel) setSize(w, h int) {
	n.width = w
	n.height = h
}

type notesDataMsg struct {
	notes []store.Note
}

func (n notesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return notesDataMsg{notes: n.manager.Notes()}
	}
}

func (n notesModel) update(msg tea.Msg) (notesModel, tea.Cmd) {
	if n.formActive && n.form != nil {
		return n.updateForm(msg)
	}

	switch msg := msg.(type) {
	case notesDataMsg:
		n.notes = msg.notes
		if n.cursor >= len(n.notes) {
			n.cursor = max(0, len(n.notes)-1)
		}
		return n, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if n.cursor > 0 {
				n.cursor--
			}
		case key.Matches(msg, keys.Down):
			if n.cursor < len(n.notes)-1 {
				n.cursor++
			}
		case key.Matches(msg, keys.New):
			return n.showForm("")
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			if len(n.notes) > 0 {
				return n.showForm(n.notes[n.cursor].ID)
			}
		case key.Matches(msg, keys.Delete):
			if len(n.notes) > 0 {
				n.manager.DeleteNote(n.notes[n.cursor].ID)
				return n, n.refresh()
			}
		}
	}
	return n, nil
}

func (n notesModel) showForm(editID string) (notesModel, tea.Cmd) {
	*n.formTitle = ""
	*n.formContent = ""
	n.editingID = editID

	if editID != "" {
		for _, note := range n.notes {
			if note.ID == editID {
				*n.formTitle = note.Title
				*n.formContent = note.Content
				break
			}
		}
	}

	n.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(n.formTitle),
			huh.NewText().Title("Content").Value(n.formContent),
		),
	).WithShowHelp(true).WithShowErrors(true)

	n.formActive = true
	return n, n.form.Init()
}

func (n notesModel) updateForm(msg tea.Msg) (notesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			n.formActive = false
			n.form = nil
			return n, nil
		}
	}

	form, cmd := n.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		n.form = f
	}

	if n.form.State == huh.StateCompleted {
		n.formActive = false
		if strings.TrimSpace(*n.formTitle) == "" {
			return n, nil
		}

		var err error
		if n.editingID != "" {
			err = n.manager.UpdateNote(n.editingID, state.NotePatch{
				Title:   n.formTitle,
				Content: n.formContent,
			})
		} else {
			_, err = n.manager.AddNote(*n.formTitle, *n.formContent)
		}
		if err != nil {
			return n, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Note not saved: %v", err), isError: true}
			}
		}
		return n, n.refresh()
	}

	return n, cmd
}

func (n notesModel) view() string {
	w := n.width - 4

	if n.formActive && n.form != nil {
		title := titleStyle.Render("Note")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", n.form.View()),
		)
	}

	title := titleStyle.Render("Quick Notes")

	if len(n.notes) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				title,
				"",
				mutedStyle.Render("No notes yet. Press n to jot something down."),
			),
		)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, note := range n.notes {
		cursor := "  "
		style := normalItemStyle
		if i == n.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-28s", cursor, note.Title))+
			mutedStyle.Render("updated "+shortDate(note.UpdatedAt)))
		if i == n.cursor && note.Content != "" {
			preview := truncate(note.Content, 70)
			rows = append(rows, mutedStyle.Render("    "+strings.ReplaceAll(preview, "\n", " ")))
		}
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
