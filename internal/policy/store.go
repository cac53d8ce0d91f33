package policy

import (
	"os"
	"path/filepath"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// AllowlistStore is the persistent backing for Permanent-scope consents.
// It is an explicit object injected at construction so that hosts serving
// multiple sessions can decide how (or whether) state is shared.
type AllowlistStore interface {
	// Load returns the set of always-allowed root commands.
	Load() ([]string, error)

	// Add records a root command as always allowed.
	Add(rootCommand string) error
}

// allowlistFile is the on-disk document shape.
type allowlistFile struct {
	Allow []string `yaml:"allow"`
}

// FileStore is a YAML file-backed AllowlistStore.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the given file path. The file is
// created on first Add.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the allowlist file. A missing file is an empty allowlist.
func (s *FileStore) Load() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StoreError{Path: s.path, Cause: err}
	}

	var doc allowlistFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &StoreError{Path: s.path, Cause: err}
	}
	return doc.Allow, nil
}

// Add appends a root command to the file, creating it if needed. Adding a
// command that is already present is a no-op.
func (s *FileStore) Add(rootCommand string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	allow, err := s.load()
	if err != nil {
		return err
	}
	if slices.Contains(allow, rootCommand) {
		return nil
	}
	allow = append(allow, rootCommand)
	slices.Sort(allow)

	data, err := yaml.Marshal(allowlistFile{Allow: allow})
	if err != nil {
		return &StoreError{Path: s.path, Cause: err}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &StoreError{Path: s.path, Cause: err}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return &StoreError{Path: s.path, Cause: err}
	}
	return nil
}

// MemoryStore is an in-memory AllowlistStore for hosts that do not want
// consent decisions to outlive the process.
type MemoryStore struct {
	mu    sync.Mutex
	allow []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.allow))
	copy(out, s.allow)
	return out, nil
}

func (s *MemoryStore) Add(rootCommand string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.allow, rootCommand) {
		s.allow = append(s.allow, rootCommand)
	}
	return nil
}
