package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"lifeboard/internal/export"
	"lifeboard/internal/state"
	"lifeboard/internal/store"
)

type settingsModel struct {
	manager *state.Manager
	width   int
	height  int

	snap store.Snapshot

	formActive bool
	form       *huh.Form
	importing  bool

	// Form field pointers (survive value copies)
	userName   *string
	location   *string
	theme      *string
	accent     *string
	importPath *string
}

func newSettingsModel(m *state.Manager) settingsModel {
	name, loc, th, ac, ip := "", "", "", "", ""
	return settingsModel{
		manager:    m,
		userName:   &name,
		location:   &loc,
		theme:      &th,
		accent:     &ac,
		importPath: &ip,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	snap store.Snapshot
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{snap: s.manager.Snapshot()}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.snap = msg.snap
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		case key.Matches(msg, keys.Import):
			return s.showImportForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.userName = s.snap.UserName
	*s.location = s.snap.WeatherLocation
	*s.theme = string(s.snap.Theme)
	*s.accent = s.snap.AccentColor
	s.importing = false

	accentOptions := make([]huh.Option[string], len(accentColors))
	for i, c := range accentColors {
		accentOptions[i] = huh.NewOption("● "+c.Name, c.Value)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Your name").Value(s.userName),
			huh.NewInput().Title("Weather location").Value(s.location),
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Light", string(store.ThemeLight)),
					huh.NewOption("Dark", string(store.ThemeDark)),
				).Value(s.theme),
			huh.NewSelect[string]().Title("Accent color").Options(accentOptions...).Value(s.accent),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showImportForm() (settingsModel, tea.Cmd) {
	*s.importPath = ""
	s.importing = true

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Backup file to import").
				Description("Importing replaces ALL current data.").
				Value(s.importPath),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if s.importing {
			return s, s.doImport(strings.TrimSpace(*s.importPath))
		}
		return s, s.savePrefs()
	}

	return s, cmd
}

func (s settingsModel) savePrefs() tea.Cmd {
	if name := strings.TrimSpace(*s.userName); name != "" {
		s.manager.SetUserName(name)
	}
	if loc := strings.TrimSpace(*s.location); loc != "" {
		s.manager.SetWeatherLocation(loc)
	}
	theme := store.Theme(*s.theme)
	accent := *s.accent
	if err := s.manager.SetTheme(theme); err == nil {
		s.manager.SetAccentColor(accent)
	}

	return tea.Batch(s.refresh(), func() tea.Msg { return prefsChangedMsg{} })
}

func (s settingsModel) doImport(path string) tea.Cmd {
	manager := s.manager
	refresh := s.refresh()
	return tea.Sequence(
		func() tea.Msg {
			if path == "" {
				return importDoneMsg{err: nil}
			}
			data, err := export.ReadBackup(path)
			if err != nil {
				return importDoneMsg{err: err}
			}
			return importDoneMsg{err: manager.ImportDocument(data)}
		},
		refresh,
		func() tea.Msg { return prefsChangedMsg{} },
	)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		if s.importing {
			title = titleStyle.Render("Import Backup")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")

	accentName := s.snap.AccentColor
	for _, c := range accentColors {
		if c.Value == s.snap.AccentColor {
			accentName = c.Name
			break
		}
	}

	rows := []string{
		title,
		"",
		settingRow("Name", s.snap.UserName),
		settingRow("Weather location", s.snap.WeatherLocation),
		settingRow("Theme", string(s.snap.Theme)),
		settingRow("Accent color", accentName),
		"",
		titleStyle.Render("Data"),
		mutedStyle.Render("  All data is stored locally on this machine."),
		"",
		mutedStyle.Render("  enter: edit settings  x: export backup  i: import backup"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(label, value string) string {
	l := lipgloss.NewStyle().Width(20).Render("  " + label)
	return l + accentStyle.Render(value)
}
