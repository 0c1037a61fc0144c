package state

import (
	"math"
	"strings"

	"lifeboard/internal/store"
)

// AddExpense appends a transaction. The amount's sign is fixed at creation:
// positive is spending, negative is income. Category must be one of the
// enumerated six.
func (m *Manager) AddExpense(title string, amount float64, category store.ExpenseCategory) (store.Expense, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return store.Expense{}, ErrEmptyTitle
	}
	if !category.Valid() {
		return store.Expense{}, ErrInvalidCategory
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return store.Expense{}, ErrInvalidAmount
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e := store.Expense{
		ID:       m.newID(),
		Title:    title,
		Amount:   amount,
		Category: category,
		Date:     m.timestamp(),
	}
	m.snap.Expenses = append(m.snap.Expenses, e)
	m.commit()
	return e, nil
}

// DeleteExpense removes the matching transaction; silent no-op if absent.
// There is no update operation: editing is delete plus add.
func (m *Manager) DeleteExpense(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.snap.Expenses {
		if m.snap.Expenses[i].ID == id {
			m.snap.Expenses = append(m.snap.Expenses[:i], m.snap.Expenses[i+1:]...)
			m.commit()
			return
		}
	}
}

func (m *Manager) Expenses() []store.Expense {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]store.Expense(nil), m.snap.Expenses...)
}
