// Package state persists browsing sessions between runs.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Session is the remembered state of one tree: which groups were open,
// which node had focus, and which was selected.
type Session struct {
	ID       string          `json:"id"`
	Expanded map[string]bool `json:"expanded,omitempty"`
	Focused  string          `json:"focused,omitempty"`
	Selected string          `json:"selected,omitempty"`
	SavedAt  time.Time       `json:"saved_at"`
}

// FileStore persists sessions as JSON files under a base directory.
type FileStore struct {
	baseDir string
}

// NewFileStore creates a FileStore that saves sessions under baseDir.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

// Save writes the session to a JSON file named by its ID.
func (s *FileStore) Save(session Session) error {
	p, err := s.path(session.ID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("state: creating directory: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("state: marshaling: %w", err)
	}

	// Write then rename so a crash never leaves a half-written session.
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("state: writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("state: renaming %s: %w", tmp, err)
	}
	return nil
}

// Load reads the session for the given ID.
// Returns (session, true, nil) if found, (zero, false, nil) if not found.
func (s *FileStore) Load(id string) (Session, bool, error) {
	p, err := s.path(id)
	if err != nil {
		return Session{}, false, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("state: reading %s: %w", p, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, false, fmt.Errorf("state: parsing %s: %w", p, err)
	}
	return session, true, nil
}

// Remove deletes the session file for the given ID.
func (s *FileStore) Remove(id string) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("state: removing %s: %w", p, err)
	}
	return nil
}

// ErrInvalidID indicates a session ID is empty or contains path traversal components.
var ErrInvalidID = errors.New("state: invalid session ID")

// path returns the filesystem path for a session file.
// It rejects IDs that are empty, dot-segments, or contain path separators.
func (s *FileStore) path(id string) (string, error) {
	if id == "" || id == "." || id == ".." || id != filepath.Base(id) || strings.ContainsRune(id, '/') {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(s.baseDir, id+".json"), nil
}

// SessionID derives a stable, filename-safe ID for a tree file path.
// Relative paths are resolved against the working directory first.
func SessionID(treePath string) string {
	if abs, err := filepath.Abs(treePath); err == nil {
		treePath = abs
	}
	treePath = strings.TrimLeft(filepath.ToSlash(treePath), "/")
	return strings.NewReplacer("/", "_", ":", "_", " ", "_").Replace(treePath)
}
