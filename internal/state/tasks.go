package state

import (
	"strings"

	"lifeboard/internal/store"
)

// TaskPatch is a partial update. Nil fields are left untouched; non-nil
// fields are applied, so clearing a field and leaving it alone are distinct.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *store.Priority
	Category    *store.TaskCategory
	Completed   *bool
}

// AddTask appends a task. Title must be non-blank and priority valid; the
// manager assigns ID, creation time and order (end of the sequence).
func (m *Manager) AddTask(title, description string, priority store.Priority, category store.TaskCategory) (store.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return store.Task{}, ErrEmptyTitle
	}
	if !priority.Valid() {
		return store.Task{}, ErrInvalidPriority
	}
	if !category.Valid() {
		return store.Task{}, ErrInvalidCategory
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t := store.Task{
		ID:          m.newID(),
		Title:       title,
		Description: description,
		Priority:    priority,
		Category:    category,
		CreatedAt:   m.timestamp(),
		Order:       len(m.snap.Tasks),
	}
	m.snap.Tasks = append(m.snap.Tasks, t)
	m.commit()
	return t, nil
}

// UpdateTask merges patch into the matching task. Unknown IDs are a silent
// no-op; invalid patch values are rejected and change nothing.
func (m *Manager) UpdateTask(id string, patch TaskPatch) error {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return ErrEmptyTitle
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return ErrInvalidPriority
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return ErrInvalidCategory
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.snap.Tasks {
		if m.snap.Tasks[i].ID != id {
			continue
		}
		t := &m.snap.Tasks[i]
		if patch.Title != nil {
			t.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.Category != nil {
			t.Category = *patch.Category
		}
		if patch.Completed != nil {
			t.Completed = *patch.Completed
		}
		m.commit()
		return nil
	}
	return nil
}

// ToggleTask flips completion; silent no-op for unknown IDs.
func (m *Manager) ToggleTask(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.snap.Tasks {
		if m.snap.Tasks[i].ID == id {
			m.snap.Tasks[i].Completed = !m.snap.Tasks[i].Completed
			m.commit()
			return
		}
	}
}

// DeleteTask removes the matching task; silent no-op if absent.
func (m *Manager) DeleteTask(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.snap.Tasks {
		if m.snap.Tasks[i].ID == id {
			m.snap.Tasks = append(m.snap.Tasks[:i], m.snap.Tasks[i+1:]...)
			m.commit()
			return
		}
	}
}

// ReorderTasks replaces the task sequence. The new sequence must be a
// bijection over the current IDs; anything dropped, duplicated or invented
// is rejected so a misbehaving view cannot silently lose tasks. Order is
// renumbered 0..n-1 in the given sequence.
func (m *Manager) ReorderTasks(seq []store.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(seq) != len(m.snap.Tasks) {
		return ErrNotPermutation
	}
	current := make(map[string]bool, len(m.snap.Tasks))
	for _, t := range m.snap.Tasks {
		current[t.ID] = true
	}
	seen := make(map[string]bool, len(seq))
	for _, t := range seq {
		if !current[t.ID] || seen[t.ID] {
			return ErrNotPermutation
		}
		seen[t.ID] = true
	}

	tasks := append([]store.Task(nil), seq...)
	for i := range tasks {
		tasks[i].Order = i
	}
	m.snap.Tasks = tasks
	m.commit()
	return nil
}

// MoveTask shifts the task at index from to index to, a convenience the
// keyboard reorder UI uses instead of constructing permutations itself.
func (m *Manager) MoveTask(from, to int) error {
	m.mu.Lock()
	n := len(m.snap.Tasks)
	if from < 0 || from >= n || to < 0 || to >= n {
		m.mu.Unlock()
		return nil
	}
	seq := append([]store.Task(nil), m.snap.Tasks...)
	t := seq[from]
	seq = append(seq[:from], seq[from+1:]...)
	seq = append(seq[:to], append([]store.Task{t}, seq[to:]...)...)
	m.mu.Unlock()
	return m.ReorderTasks(seq)
}

// Tasks returns the tasks in their stored order.
func (m *Manager) Tasks() []store.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]store.Task(nil), m.snap.Tasks...)
}
