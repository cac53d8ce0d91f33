// Package gitutil provides gitignore pattern matching for directory
// traversal, backed by go-git's gitignore implementation.
package gitutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// IgnoreReadError is returned when .gitignore cannot be read.
type IgnoreReadError struct {
	Path  string
	Cause error
}

func (e *IgnoreReadError) Error() string {
	return fmt.Sprintf("failed to read .gitignore at %s: %v", e.Path, e.Cause)
}
func (e *IgnoreReadError) Unwrap() error { return e.Cause }

// Matcher answers whether a workspace-relative path is gitignored.
type Matcher interface {
	ShouldIgnore(relativePath string) bool
}

// IgnoreMatcher implements Matcher from the .gitignore at the root of a
// directory tree.
type IgnoreMatcher struct {
	matcher gitignore.Matcher
}

// NewIgnoreMatcher loads .gitignore from root. A missing .gitignore yields
// a matcher that never ignores (no error).
func NewIgnoreMatcher(root string) (*IgnoreMatcher, error) {
	gitignorePath := filepath.Join(root, ".gitignore")

	data, err := os.ReadFile(gitignorePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &IgnoreMatcher{matcher: nil}, nil
		}
		return nil, &IgnoreReadError{Path: gitignorePath, Cause: err}
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if p := gitignore.ParsePattern(line, nil); p != nil {
			patterns = append(patterns, p)
		}
	}

	// .git itself is always ignored for traversal purposes.
	patterns = append(patterns, gitignore.ParsePattern(".git/", nil))

	return &IgnoreMatcher{matcher: gitignore.NewMatcher(patterns)}, nil
}

// ShouldIgnore checks whether a relative path matches any gitignore
// pattern. Returns false if no .gitignore was loaded.
func (m *IgnoreMatcher) ShouldIgnore(relativePath string) bool {
	if m.matcher == nil {
		return false
	}
	return m.matcher.Match(splitPath(relativePath), false)
}

// NoOpMatcher never ignores. Used when matching is disabled or the
// .gitignore failed to load.
type NoOpMatcher struct{}

func (NoOpMatcher) ShouldIgnore(string) bool { return false }

// splitPath splits a path into segments for gitignore matching,
// normalising separators and dropping empty and "." segments.
func splitPath(path string) []string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	var segments []string
	for _, part := range parts {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
