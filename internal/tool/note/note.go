// Package note implements the save-note tool: an append-only markdown file
// of timestamped notes in the user config directory.
package note

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store appends notes to a single markdown file.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// SaveResult is the outcome of a Save.
type SaveResult struct {
	Path  string `json:"path"`
	Saved string `json:"saved"`
}

// Save appends one timestamped note. The file and its directory are
// created on first use.
func (s *Store) Save(content string) (*SaveResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("note content must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create notes directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open notes file: %w", err)
	}
	defer f.Close()

	stamp := s.now().Format(time.RFC3339)
	entry := fmt.Sprintf("- %s %s\n", stamp, content)
	if _, err := f.WriteString(entry); err != nil {
		return nil, fmt.Errorf("failed to append note: %w", err)
	}

	return &SaveResult{Path: s.path, Saved: content}, nil
}
