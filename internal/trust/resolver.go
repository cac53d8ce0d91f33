// Package trust canonicalises path references and decides whether they fall
// inside the session's trusted roots. Trust decisions are made only on
// resolved paths, never on raw strings, so `..` segments and symlink
// indirection cannot escape the boundary.
package trust

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// Resolver resolves path references against a fixed working directory and
// answers trust queries against an append-only set of trusted roots.
type Resolver struct {
	workdir string

	mu    sync.RWMutex
	roots []string
}

// NewResolver creates a resolver rooted at workdir. The working directory is
// canonicalised once and always counts as a trusted root; additional roots
// may be supplied from configuration.
func NewResolver(workdir string, roots []string) (*Resolver, error) {
	canonical, err := CanonicaliseRoot(workdir)
	if err != nil {
		return nil, err
	}

	r := &Resolver{
		workdir: canonical,
		roots:   []string{canonical},
	}
	for _, root := range roots {
		if err := r.AddTrustedRoot(root); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// CanonicaliseRoot canonicalises a trusted root by making it absolute and
// resolving symlinks. The root must exist and be a directory.
func CanonicaliseRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &RootError{Root: root, Cause: err}
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &RootError{Root: abs, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &RootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &RootError{Root: resolved, Cause: ErrNotADirectory}
	}
	return resolved, nil
}

// Workdir returns the canonical working directory.
func (r *Resolver) Workdir() string {
	return r.workdir
}

// Resolve turns any path reference into its canonical absolute form.
// Relative references are joined to the working directory first. If the
// target does not exist yet, the deepest existing ancestor is canonicalised
// and the remaining components are rejoined, so write targets resolve
// deterministically before they are created.
func (r *Resolver) Resolve(reference string) (string, error) {
	if reference == "" {
		return "", &ResolutionError{Reference: reference, Cause: ErrEmptyReference}
	}

	var abs string
	if filepath.IsAbs(reference) {
		abs = filepath.Clean(reference)
	} else {
		abs = filepath.Join(r.workdir, reference)
	}

	resolved, err := canonicalise(abs)
	if err != nil {
		return "", &ResolutionError{Reference: reference, Cause: err}
	}
	return resolved, nil
}

// canonicalise resolves symlinks in abs, walking up to the deepest existing
// ancestor when the tail of the path does not exist yet.
func canonicalise(abs string) (string, error) {
	dir := abs
	var rest []string
	for {
		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			if len(rest) == 0 {
				return resolved, nil
			}
			return filepath.Join(append([]string{resolved}, rest...)...), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Walked past the filesystem root without finding anything.
			return "", err
		}
		rest = append([]string{filepath.Base(dir)}, rest...)
		dir = parent
	}
}

// IsTrusted reports whether resolved is equal to, or a descendant of, at
// least one trusted root. The argument must be a value returned by Resolve.
func (r *Resolver) IsTrusted(resolved string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, root := range r.roots {
		if pathsEqual(resolved, root) || hasPathPrefix(resolved, root) {
			return true
		}
	}
	return false
}

// AddTrustedRoot canonicalises path and appends it to the trusted set.
// The set never shrinks during a session.
func (r *Resolver) AddTrustedRoot(path string) error {
	canonical, err := CanonicaliseRoot(path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, root := range r.roots {
		if pathsEqual(root, canonical) {
			return nil
		}
	}
	r.roots = append(r.roots, canonical)
	return nil
}

// TrustedRoots returns a copy of the current trusted root set.
func (r *Resolver) TrustedRoots() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.roots))
	copy(out, r.roots)
	return out
}

// caseInsensitiveFS reports whether path comparison should fold case on
// this host.
func caseInsensitiveFS() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}

func pathsEqual(a, b string) bool {
	if caseInsensitiveFS() {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func hasPathPrefix(path, root string) bool {
	prefix := root + string(filepath.Separator)
	if caseInsensitiveFS() {
		return len(path) >= len(prefix) && strings.EqualFold(path[:len(prefix)], prefix)
	}
	return strings.HasPrefix(path, prefix)
}
