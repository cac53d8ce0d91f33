// Package directory implements the list-directory and glob-search
// operations. Callers pass roots that have already been resolved and
// trust-checked.
package directory

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aide-cli/aide/internal/tool/gitutil"
)

// Entry describes one directory entry.
type Entry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
	Size  int64  `json:"size"`
}

// Tool performs bounded directory operations.
type Tool struct {
	maxEntries int
}

// NewTool creates a directory tool that returns at most maxEntries results
// per call.
func NewTool(maxEntries int) *Tool {
	return &Tool{maxEntries: maxEntries}
}

// ListResult is the outcome of a List.
type ListResult struct {
	Path      string  `json:"path"`
	Entries   []Entry `json:"entries"`
	Truncated bool    `json:"truncated"`
}

// List returns the immediate entries of the directory at path, sorted by
// name as returned by the OS. Gitignored entries are skipped unless
// includeIgnored is set.
func (t *Tool) List(path string, includeIgnored bool) (*ListResult, error) {
	ignore := t.matcherFor(path, includeIgnored)

	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	result := &ListResult{Path: path}
	for _, de := range dirEntries {
		rel := de.Name()
		if de.IsDir() {
			rel += "/"
		}
		if ignore.ShouldIgnore(rel) {
			continue
		}
		if len(result.Entries) >= t.maxEntries {
			result.Truncated = true
			break
		}

		var size int64
		if info, err := de.Info(); err == nil {
			size = info.Size()
		}
		result.Entries = append(result.Entries, Entry{
			Name:  de.Name(),
			Path:  filepath.Join(path, de.Name()),
			IsDir: de.IsDir(),
			Size:  size,
		})
	}
	return result, nil
}

// GlobResult is the outcome of a Glob.
type GlobResult struct {
	Root      string   `json:"root"`
	Pattern   string   `json:"pattern"`
	Matches   []string `json:"matches"`
	Truncated bool     `json:"truncated"`
}

// Glob walks the tree under root and returns paths whose root-relative form
// matches pattern. Patterns use filepath.Match syntax per segment, plus a
// `**` segment matching any number of directories; a pattern without a
// separator matches file names at any depth.
func (t *Tool) Glob(root, pattern string, includeIgnored bool) (*GlobResult, error) {
	if pattern == "" {
		return nil, fmt.Errorf("pattern must not be empty")
	}
	// Reject malformed patterns up front.
	if _, err := filepath.Match(strings.ReplaceAll(pattern, "**", "*"), "probe"); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	ignore := t.matcherFor(root, includeIgnored)
	result := &GlobResult{Root: root, Pattern: pattern}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if path == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}

		if d.IsDir() {
			if ignore.ShouldIgnore(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}
		if ignore.ShouldIgnore(rel) {
			return nil
		}

		if matchPattern(pattern, rel) {
			if len(result.Matches) >= t.maxEntries {
				result.Truncated = true
				return filepath.SkipAll
			}
			result.Matches = append(result.Matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("glob walk failed: %w", err)
	}
	return result, nil
}

func (t *Tool) matcherFor(root string, includeIgnored bool) gitutil.Matcher {
	if includeIgnored {
		return gitutil.NoOpMatcher{}
	}
	m, err := gitutil.NewIgnoreMatcher(root)
	if err != nil {
		return gitutil.NoOpMatcher{}
	}
	return m
}

// matchPattern matches a root-relative path against a glob pattern.
func matchPattern(pattern, rel string) bool {
	rel = filepath.ToSlash(rel)
	pattern = filepath.ToSlash(pattern)

	// A bare file pattern matches at any depth.
	if !strings.Contains(pattern, "/") {
		pattern = "**/" + pattern
	}
	return matchSegments(strings.Split(pattern, "/"), strings.Split(rel, "/"))
}

func matchSegments(pattern, path []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}
	if pattern[0] == "**" {
		if matchSegments(pattern[1:], path) {
			return true
		}
		if len(path) > 0 {
			return matchSegments(pattern, path[1:])
		}
		return false
	}
	if len(path) == 0 {
		return false
	}
	ok, err := filepath.Match(pattern[0], path[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(pattern[1:], path[1:])
}
