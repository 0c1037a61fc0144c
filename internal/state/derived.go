package state

import "lifeboard/internal/store"

// Derived views are pure computations over a snapshot: no mutation, same
// input gives the same output.

// TasksInCategory filters by exact category; "" matches uncategorized only.
func TasksInCategory(tasks []store.Task, cat store.TaskCategory) []store.Task {
	var out []store.Task
	for _, t := range tasks {
		if t.Category == cat {
			out = append(out, t)
		}
	}
	return out
}

// Progress reports completed vs total and a 0-100 percentage.
func Progress(tasks []store.Task) (completed, total int, pct float64) {
	total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	if total > 0 {
		pct = float64(completed) / float64(total) * 100
	}
	return completed, total, pct
}

// Totals over the signed amount convention: positive amounts are spending,
// negative amounts are income.
type Totals struct {
	Income   float64
	Expenses float64
	Balance  float64
}

func ExpenseTotals(expenses []store.Expense) Totals {
	var t Totals
	for _, e := range expenses {
		if e.Amount < 0 {
			t.Income += -e.Amount
		} else {
			t.Expenses += e.Amount
		}
	}
	t.Balance = t.Income - t.Expenses
	return t
}

// SpendingByCategory sums positive (spending) amounts per category.
// Income rows are excluded so the chart shows where money went.
func SpendingByCategory(expenses []store.Expense) map[store.ExpenseCategory]float64 {
	out := make(map[store.ExpenseCategory]float64)
	for _, e := range expenses {
		if e.Amount > 0 {
			out[e.Category] += e.Amount
		}
	}
	return out
}
