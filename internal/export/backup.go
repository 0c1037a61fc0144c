package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteBackup writes the exported state document to dir. The filename
// embeds the export date for traceability; it is never parsed back.
func WriteBackup(document []byte, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("lifeboard-backup-%s.json", time.Now().Format("2006-01-02"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, document, 0o644); err != nil {
		return "", fmt.Errorf("write backup file: %w", err)
	}
	return path, nil
}

// ReadBackup reads a document for import. Parsing and validation happen in
// the state manager; a malformed file is surfaced there, not here.
func ReadBackup(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup file: %w", err)
	}
	return data, nil
}
