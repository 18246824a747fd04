// Package store persists learner state: the profile as a JSON document
// (its layout is an external contract) and the attempt log as append-only
// rows in SQLite.
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDataDir resolves the data directory in priority order:
// 1. LEXIZ_DATA environment variable
// 2. $XDG_DATA_HOME/lexiz
// 3. ~/.local/share/lexiz
func DefaultDataDir() (string, error) {
	if p := os.Getenv("LEXIZ_DATA"); p != "" {
		return p, os.MkdirAll(p, 0o755)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "lexiz")
	return p, os.MkdirAll(p, 0o755)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
