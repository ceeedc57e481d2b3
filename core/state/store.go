package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when a state document does not exist yet.
var ErrNotFound = errors.New("state document not found")

// Store reads and writes the state documents on the local filesystem.
type Store struct {
	cfg Config
}

// NewStore creates a file backed store.
func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// VersionPath returns the full path of the version document.
func (s *Store) VersionPath() string {
	return filepath.Join(s.cfg.Dir, s.cfg.VersionFile)
}

// ChangedPath returns the full path of the changed-set document.
func (s *Store) ChangedPath() string {
	return filepath.Join(s.cfg.Dir, s.cfg.ChangedFile)
}

// LoadVersions reads the version document.
func (s *Store) LoadVersions() (Versions, error) {
	var v Versions
	if err := readJSON(s.VersionPath(), &v); err != nil {
		return nil, err
	}
	if v == nil {
		v = Versions{}
	}
	return v, nil
}

// SaveVersions overwrites the version document.
func (s *Store) SaveVersions(v Versions) error {
	return writeJSON(s.VersionPath(), v)
}

// LoadChanged reads the changed-set document. A missing document is an empty set.
func (s *Store) LoadChanged() (Changed, error) {
	var c Changed
	if err := readJSON(s.ChangedPath(), &c); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Changed{}, nil
		}
		return nil, err
	}
	if c == nil {
		c = Changed{}
	}
	return c, nil
}

// SaveChanged overwrites the changed-set document.
func (s *Store) SaveChanged(c Changed) error {
	return writeJSON(s.ChangedPath(), c)
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeJSON replaces path atomically: the old file stays until the rename succeeds.
func writeJSON(path string, src any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
