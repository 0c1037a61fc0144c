package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// documentKey is the fixed name the whole-state document lives under.
// Future versions look it up here to migrate.
const documentKey = "lifeboard-storage"

// Store persists the full application state as a single JSON document
// under a fixed key. It never mutates the data it is given.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS documents (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// Load reads the persisted state document. An absent, unreadable or
// unparsable document degrades to the built-in defaults; Load never fails
// application startup.
func (s *Store) Load() Snapshot {
	raw, err := s.ReadDocument()
	if err != nil {
		return DefaultSnapshot()
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return DefaultSnapshot()
	}
	snap.Normalize()
	return snap
}

// Persist serializes the full snapshot and writes it under the fixed key,
// replacing any prior value. Called after every mutation (write-through).
func (s *Store) Persist(snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return s.WriteDocument(data)
}

// ReadDocument returns the raw persisted document.
func (s *Store) ReadDocument() ([]byte, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM documents WHERE key = ?`, documentKey).Scan(&value)
	if err != nil {
		return nil, fmt.Errorf("read document %q: %w", documentKey, err)
	}
	return []byte(value), nil
}

// WriteDocument stores raw to the fixed key verbatim.
func (s *Store) WriteDocument(raw []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO documents (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		documentKey, string(raw),
	)
	if err != nil {
		return fmt.Errorf("write document %q: %w", documentKey, err)
	}
	return nil
}

// DefaultDBPath returns ~/.config/lifeboard/lifeboard.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "lifeboard", "lifeboard.db"), nil
}
