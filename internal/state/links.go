package state

import (
	"strings"

	"lifeboard/internal/store"
)

const defaultLinkIcon = "🔗"

// AddQuickLink appends a link. Icon is optional and defaults to 🔗.
func (m *Manager) AddQuickLink(title, url, icon string) (store.QuickLink, error) {
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)
	if title == "" {
		return store.QuickLink{}, ErrEmptyTitle
	}
	if url == "" {
		return store.QuickLink{}, ErrEmptyURL
	}
	if icon == "" {
		icon = defaultLinkIcon
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	l := store.QuickLink{
		ID:    m.newID(),
		Title: title,
		URL:   url,
		Icon:  icon,
	}
	m.snap.QuickLinks = append(m.snap.QuickLinks, l)
	m.commit()
	return l, nil
}

// DeleteQuickLink removes the matching link; silent no-op if absent.
func (m *Manager) DeleteQuickLink(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.snap.QuickLinks {
		if m.snap.QuickLinks[i].ID == id {
			m.snap.QuickLinks = append(m.snap.QuickLinks[:i], m.snap.QuickLinks[i+1:]...)
			m.commit()
			return
		}
	}
}

func (m *Manager) QuickLinks() []store.QuickLink {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]store.QuickLink(nil), m.snap.QuickLinks...)
}
