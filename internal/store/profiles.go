package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/lexiz/internal/profile"
)

// ProfileStore reads and writes profile JSON files, one per language,
// under <dir>/profiles/<lang>.json.
type ProfileStore struct {
	dir string
}

// NewProfileStore creates a profile store rooted at dir.
func NewProfileStore(dir string) *ProfileStore {
	return &ProfileStore{dir: dir}
}

// Load returns the profile for lang. A missing or corrupt file yields a
// fresh default profile; load never fails.
func (s *ProfileStore) Load(lang string) *profile.Profile {
	data, err := os.ReadFile(s.path(lang))
	if err != nil {
		return profile.Default(lang)
	}

	var p profile.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return profile.Default(lang)
	}
	p.Sanitize(lang)
	return &p
}

// Save writes the profile atomically (temp file + rename) so a crash
// mid-write never leaves a truncated profile behind.
func (s *ProfileStore) Save(p *profile.Profile) error {
	path := s.path(p.Lang)
	if err := EnsureDir(path); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename profile: %w", err)
	}
	return nil
}

func (s *ProfileStore) path(lang string) string {
	return filepath.Join(s.dir, "profiles", lang+".json")
}
