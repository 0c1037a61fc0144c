package state

import (
	"strings"

	"lifeboard/internal/store"
)

// NotePatch is a partial update; nil fields are left untouched.
type NotePatch struct {
	Title   *string
	Content *string
}

func (m *Manager) AddNote(title, content string) (store.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return store.Note{}, ErrEmptyTitle
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.timestamp()
	n := store.Note{
		ID:        m.newID(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.snap.Notes = append(m.snap.Notes, n)
	m.commit()
	return n, nil
}

// UpdateNote merges patch into the matching note and touches UpdatedAt.
// Unknown IDs are a silent no-op.
func (m *Manager) UpdateNote(id string, patch NotePatch) error {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return ErrEmptyTitle
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.snap.Notes {
		if m.snap.Notes[i].ID != id {
			continue
		}
		n := &m.snap.Notes[i]
		if patch.Title != nil {
			n.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Content != nil {
			n.Content = *patch.Content
		}
		n.UpdatedAt = m.timestamp()
		m.commit()
		return nil
	}
	return nil
}

// DeleteNote removes the matching note; silent no-op if absent.
func (m *Manager) DeleteNote(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.snap.Notes {
		if m.snap.Notes[i].ID == id {
			m.snap.Notes = append(m.snap.Notes[:i], m.snap.Notes[i+1:]...)
			m.commit()
			return
		}
	}
}

func (m *Manager) Notes() []store.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]store.Note(nil), m.snap.Notes...)
}
