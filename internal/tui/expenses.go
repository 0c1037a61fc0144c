package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"lifeboard/internal/state"
	"lifeboard/internal/store"
)

type expensesModel struct {
	manager  *state.Manager
	currency string
	width    int
	height   int

	expenses []store.Expense
	totals   state.Totals
	spending map[store.ExpenseCategory]float64
	cursor   int

	chart barchart.Model

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle    *string
	formAmount   *string
	formCategory *string
	formKind     *string // "expense" or "income"
}

func newExpensesModel(m *state.Manager, currency string) expensesModel {
	title, amount, cat, kind := "", "", "", ""
	return expensesModel{
		manager:      m,
		currency:     currency,
		chart:        barchart.New(40, 8),
		formTitle:    &title,
		formAmount:   &amount,
		formCategory: &cat,
		formKind:     &kind,
	}
}

func (e *expensesModel) setSize(w, h int) {
	e.width = w
	e.height = h
}

type expensesDataMsg struct {
	expenses []store.Expense
	totals   state.Totals
	spending map[store.ExpenseCategory]float64
}

func (e expensesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		expenses := e.manager.Expenses()
		return expensesDataMsg{
			expenses: expenses,
			totals:   state.ExpenseTotals(expenses),
			spending: state.SpendingByCategory(expenses),
		}
	}
}

func (e expensesModel) update(msg tea.Msg) (expensesModel, tea.Cmd) {
	if e.formActive && e.form != nil {
		return e.updateForm(msg)
	}

	switch msg := msg.(type) {
	case expensesDataMsg:
		e.expenses = msg.expenses
		e.totals = msg.totals
		e.spending = msg.spending
		if limit := min(len(e.expenses), 10); e.cursor >= limit {
			e.cursor = max(0, limit-1)
		}
		e.buildChart()
		return e, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if e.cursor > 0 {
				e.cursor--
			}
		case key.Matches(msg, keys.Down):
			// The list shows at most 10 rows; the cursor stays on screen.
			if e.cursor < min(len(e.expenses), 10)-1 {
				e.cursor++
			}
		case key.Matches(msg, keys.New):
			return e.showForm()
		case key.Matches(msg, keys.Delete):
			if len(e.expenses) > 0 {
				// List renders newest first; map the cursor back.
				idx := len(e.expenses) - 1 - e.cursor
				e.manager.DeleteExpense(e.expenses[idx].ID)
				return e, e.refresh()
			}
		}
	}
	return e, nil
}

func (e *expensesModel) buildChart() {
	chartWidth := e.width - 10
	if chartWidth < 20 {
		chartWidth = 20
	}
	e.chart = barchart.New(chartWidth, 8)

	var bars []barchart.BarData
	for _, cat := range store.ExpenseCategories {
		total, ok := e.spending[cat]
		if !ok {
			continue
		}
		style := lipgloss.NewStyle().Foreground(categoryColors[cat])
		bars = append(bars, barchart.BarData{
			Label: capitalize(string(cat)),
			Values: []barchart.BarValue{
				{Name: string(cat), Value: total, Style: style},
			},
		})
	}

	e.chart.PushAll(bars)
	e.chart.Draw()
}

func (e expensesModel) showForm() (expensesModel, tea.Cmd) {
	*e.formTitle = ""
	*e.formAmount = ""
	*e.formCategory = string(store.ExpenseOther)
	*e.formKind = "expense"

	catOptions := make([]huh.Option[string], len(store.ExpenseCategories))
	for i, c := range store.ExpenseCategories {
		catOptions[i] = huh.NewOption(capitalize(string(c)), string(c))
	}

	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(e.formTitle),
			huh.NewInput().Title("Amount").Value(e.formAmount),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(e.formCategory),
			huh.NewSelect[string]().Title("Type").
				Options(
					huh.NewOption("Expense", "expense"),
					huh.NewOption("Income", "income"),
				).Value(e.formKind),
		),
	).WithShowHelp(true).WithShowErrors(true)

	e.formActive = true
	return e, e.form.Init()
}

func (e expensesModel) updateForm(msg tea.Msg) (expensesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			e.formActive = false
			e.form = nil
			return e, nil
		}
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}

	if e.form.State == huh.StateCompleted {
		e.formActive = false

		// Unparsable amounts never reach the manager.
		amount, err := strconv.ParseFloat(strings.TrimSpace(*e.formAmount), 64)
		if err != nil || strings.TrimSpace(*e.formTitle) == "" {
			return e, func() tea.Msg {
				return statusMsg{text: "Expense needs a title and a numeric amount", isError: true}
			}
		}
		// The sign is fixed here, at creation: income is stored negative.
		if *e.formKind == "income" {
			amount = -amount
		}
		if _, err := e.manager.AddExpense(*e.formTitle, amount, store.ExpenseCategory(*e.formCategory)); err != nil {
			return e, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Expense not added: %v", err), isError: true}
			}
		}
		return e, e.refresh()
	}

	return e, cmd
}

func (e expensesModel) view() string {
	w := e.width - 4

	if e.formActive && e.form != nil {
		title := titleStyle.Render("Add Transaction")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", e.form.View()),
		)
	}

	header := e.renderTotals()

	if len(e.expenses) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				header,
				"",
				mutedStyle.Render("No expenses tracked yet. Press n to add your first one."),
			),
		)
	}

	chartPanel := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Spending by Category"),
		e.chart.View(),
		e.renderLegend(),
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			chartPanel,
			"",
			e.renderList(),
			"",
			mutedStyle.Render("  n: new  d: delete  x: export"),
		),
	)
}

func (e expensesModel) renderTotals() string {
	income := successStyle.Render("▲ " + formatAmount(e.currency, e.totals.Income))
	spent := errorStyle.Render("▼ " + formatAmount(e.currency, e.totals.Expenses))

	balStyle := successStyle
	if e.totals.Balance < 0 {
		balStyle = errorStyle
	}
	balance := balStyle.Render(formatAmount(e.currency, e.totals.Balance))

	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Expenses"), "   ",
		mutedStyle.Render("Income "), income, "  ",
		mutedStyle.Render("Spent "), spent, "  ",
		mutedStyle.Render("Balance "), balance,
	)
}

func (e expensesModel) renderLegend() string {
	var items []string
	for _, cat := range store.ExpenseCategories {
		if _, ok := e.spending[cat]; !ok {
			continue
		}
		dot := lipgloss.NewStyle().Foreground(categoryColors[cat]).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, capitalize(string(cat))))
	}
	if len(items) == 0 {
		return ""
	}
	return "  " + strings.Join(items, "  ")
}

func (e expensesModel) renderList() string {
	var rows []string
	rows = append(rows, titleStyle.Render("Recent"))

	// Newest first, like a bank statement.
	shown := 0
	for i := len(e.expenses) - 1; i >= 0 && shown < 10; i-- {
		exp := e.expenses[i]
		cursor := "  "
		style := normalItemStyle
		if shown == e.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		dot := lipgloss.NewStyle().Foreground(categoryColors[exp.Category]).Render("●")
		amount := formatAmount(e.currency, exp.Amount)
		amountStyled := errorStyle.Render(amount)
		if exp.Amount < 0 {
			amountStyled = successStyle.Render("+" + formatAmount(e.currency, -exp.Amount))
		}

		rows = append(rows, fmt.Sprintf("%s%s %s %s  %s",
			cursor, dot,
			style.Render(fmt.Sprintf("%-24s", exp.Title)),
			mutedStyle.Render(shortDate(exp.Date)),
			amountStyled,
		))
		shown++
	}
	return strings.Join(rows, "\n")
}
