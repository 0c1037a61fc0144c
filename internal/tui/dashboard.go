package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"lifeboard/internal/state"
	"lifeboard/internal/store"
	"lifeboard/internal/weather"
)

type dashboardModel struct {
	manager  *state.Manager
	currency string
	width    int
	height   int

	now        time.Time
	links      []store.QuickLink
	totals     state.Totals
	userName   string
	location   string
	report     weather.Report
	linkCursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle *string
	formURL   *string
	formIcon  *string
}

func newDashboardModel(m *state.Manager, currency string) dashboardModel {
	title, url, icon := "", "", ""
	return dashboardModel{
		manager:   m,
		currency:  currency,
		now:       time.Now(),
		formTitle: &title,
		formURL:   &url,
		formIcon:  &icon,
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.refresh()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	links    []store.QuickLink
	totals   state.Totals
	userName string
	location string
	report   weather.Report
}

func (d dashboardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		snap := d.manager.Snapshot()
		return dashboardDataMsg{
			links:    snap.QuickLinks,
			totals:   state.ExpenseTotals(snap.Expenses),
			userName: snap.UserName,
			location: snap.WeatherLocation,
			report:   weather.For(snap.WeatherLocation, time.Now()),
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.links = msg.links
		d.totals = msg.totals
		d.userName = msg.userName
		d.location = msg.location
		d.report = msg.report
		if d.linkCursor >= len(d.links) {
			d.linkCursor = max(0, len(d.links)-1)
		}
		return d, nil

	case tickMsg:
		d.now = time.Time(msg)
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if d.linkCursor > 0 {
				d.linkCursor--
			}
		case key.Matches(msg, keys.Down):
			if d.linkCursor < len(d.links)-1 {
				d.linkCursor++
			}
		case key.Matches(msg, keys.New):
			return d.showLinkForm()
		case key.Matches(msg, keys.Delete):
			if len(d.links) > 0 {
				d.manager.DeleteQuickLink(d.links[d.linkCursor].ID)
				return d, d.refresh()
			}
		}
	}
	return d, nil
}

func (d dashboardModel) showLinkForm() (dashboardModel, tea.Cmd) {
	*d.formTitle = ""
	*d.formURL = ""
	*d.formIcon = ""

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(d.formTitle),
			huh.NewInput().Title("URL (https://...)").Value(d.formURL),
			huh.NewInput().Title("Icon (emoji, optional)").Value(d.formIcon),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) updateForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		if _, err := d.manager.AddQuickLink(*d.formTitle, *d.formURL, *d.formIcon); err != nil {
			return d, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Link not added: %v", err), isError: true}
			}
		}
		return d, d.refresh()
	}

	return d, cmd
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4

	if d.formActive && d.form != nil {
		title := titleStyle.Render("Add Quick Link")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", d.form.View()),
		)
	}

	greetPanel := d.renderGreeting(w)
	weatherPanel := d.renderWeather(w)
	linksPanel := d.renderLinks(w)

	return lipgloss.JoinVertical(lipgloss.Left, greetPanel, weatherPanel, linksPanel)
}

func (d dashboardModel) renderGreeting(w int) string {
	greet, emoji := greetingFor(d.now.Hour())

	clock := clockStyle.Width(w - 6).Render(d.now.Format("15:04"))
	line := lipgloss.NewStyle().Align(lipgloss.Center).Width(w - 6).
		Render(fmt.Sprintf("%s, %s %s", greet, d.userName, emoji))
	date := mutedStyle.Width(w - 6).Align(lipgloss.Center).
		Render(d.now.Format("Monday, January 2"))

	balance := d.totals.Balance
	balStyle := successStyle
	if balance < 0 {
		balStyle = errorStyle
	}
	balLine := lipgloss.NewStyle().Align(lipgloss.Center).Width(w - 6).Render(
		mutedStyle.Render("Balance ") + balStyle.Render(formatAmount(d.currency, balance)),
	)

	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, clock, line, date, balLine),
	)
}

func (d dashboardModel) renderWeather(w int) string {
	title := titleStyle.Render("Weather")
	loc := mutedStyle.Render(d.location)
	header := fmt.Sprintf("%s  %s", title, loc)

	cur := d.report.Current
	current := fmt.Sprintf("  %s  %d°C  %s", cur.Icon, cur.Temp, cur.Condition)

	var forecast []string
	for _, f := range d.report.Forecast {
		forecast = append(forecast, fmt.Sprintf("%s %d°C %s", f.Icon, f.Temp, f.Day))
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			current,
			mutedStyle.Render("  "+strings.Join(forecast, "   ")),
		),
	)
}

func (d dashboardModel) renderLinks(w int) string {
	title := titleStyle.Render("Quick Links")

	if len(d.links) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				title,
				"",
				mutedStyle.Render("No links. Press n to add one."),
			),
		)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, l := range d.links {
		cursor := "  "
		style := normalItemStyle
		if i == d.linkCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-20s", cursor, l.Icon, l.Title))+mutedStyle.Render(l.URL))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new link  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
