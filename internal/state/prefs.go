package state

import "lifeboard/internal/store"

// SetTheme replaces the theme preference; only "light" and "dark" exist.
func (m *Manager) SetTheme(theme store.Theme) error {
	if !theme.Valid() {
		return ErrInvalidTheme
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.Theme = theme
	m.commit()
	return nil
}

func (m *Manager) SetAccentColor(color string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.AccentColor = color
	m.commit()
}

func (m *Manager) SetWeatherLocation(location string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.WeatherLocation = location
	m.commit()
}

func (m *Manager) SetUserName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.UserName = name
	m.commit()
}
