package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"lifeboard/internal/store"
)

// ExportDocument serializes the full state as a portable JSON document,
// identical in shape to the persisted one.
func (m *Manager) ExportDocument() ([]byte, error) {
	m.mu.Lock()
	snap := m.snap.Clone()
	m.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return data, nil
}

// ImportDocument parses data and replaces the entire state wholesale.
// Parsing is strict: malformed JSON, unknown fields or invalid enum values
// reject the whole document, and the current state is left untouched.
// There is no merge-import.
func (m *Manager) ImportDocument(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var snap store.Snapshot
	if err := dec.Decode(&snap); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	// The whole input must be one JSON value; Decode alone stops at the
	// end of the first value and would accept trailing garbage.
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("parse document: trailing data after JSON value")
	}
	if err := validateSnapshot(snap); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	snap.Normalize()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
	m.commit()
	return nil
}

func validateSnapshot(snap store.Snapshot) error {
	if !snap.Theme.Valid() {
		return fmt.Errorf("theme %q: %w", snap.Theme, ErrInvalidTheme)
	}
	for _, t := range snap.Tasks {
		if t.ID == "" || t.Title == "" {
			return fmt.Errorf("task %q: %w", t.ID, ErrEmptyTitle)
		}
		if !t.Priority.Valid() {
			return fmt.Errorf("task %q priority %q: %w", t.ID, t.Priority, ErrInvalidPriority)
		}
		if !t.Category.Valid() {
			return fmt.Errorf("task %q category %q: %w", t.ID, t.Category, ErrInvalidCategory)
		}
	}
	for _, e := range snap.Expenses {
		if e.ID == "" || e.Title == "" {
			return fmt.Errorf("expense %q: %w", e.ID, ErrEmptyTitle)
		}
		if !e.Category.Valid() {
			return fmt.Errorf("expense %q category %q: %w", e.ID, e.Category, ErrInvalidCategory)
		}
	}
	for _, l := range snap.QuickLinks {
		if l.ID == "" || l.Title == "" {
			return fmt.Errorf("quick link %q: %w", l.ID, ErrEmptyTitle)
		}
		if l.URL == "" {
			return fmt.Errorf("quick link %q: %w", l.ID, ErrEmptyURL)
		}
	}
	for _, n := range snap.Notes {
		if n.ID == "" || n.Title == "" {
			return fmt.Errorf("note %q: %w", n.ID, ErrEmptyTitle)
		}
	}
	return nil
}
