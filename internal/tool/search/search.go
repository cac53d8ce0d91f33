// Package search implements content search across a directory tree.
// Callers pass roots that have already been resolved and trust-checked.
package search

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aide-cli/aide/internal/tool/fsutil"
	"github.com/aide-cli/aide/internal/tool/gitutil"
)

// Match is one matching line.
type Match struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Content string `json:"content"`
}

// Result is the outcome of a Search.
type Result struct {
	Query     string  `json:"query"`
	Matches   []Match `json:"matches"`
	Truncated bool    `json:"truncated"`
}

// Tool performs bounded literal content search.
type Tool struct {
	maxResults    int
	maxLineLength int
	detector      *fsutil.BinaryDetector
}

// NewTool creates a search tool. Matching lines longer than maxLineLength
// are clipped before they are reported.
func NewTool(maxResults, maxLineLength int, detector *fsutil.BinaryDetector) *Tool {
	if detector == nil {
		panic("detector is required")
	}
	return &Tool{
		maxResults:    maxResults,
		maxLineLength: maxLineLength,
		detector:      detector,
	}
}

// Search scans text files under root for lines containing query.
// Binary files are skipped; gitignored files are skipped unless
// includeIgnored is set.
func (t *Tool) Search(root, query string, caseSensitive, includeIgnored bool) (*Result, error) {
	if query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	var ignore gitutil.Matcher = gitutil.NoOpMatcher{}
	if !includeIgnored {
		if m, err := gitutil.NewIgnoreMatcher(root); err == nil {
			ignore = m
		}
	}

	needle := query
	if !caseSensitive {
		needle = strings.ToLower(query)
	}

	result := &Result{Query: query}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped
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

		done, scanErr := t.scanFile(path, needle, caseSensitive, result)
		if scanErr != nil {
			return nil // unreadable or binary files are skipped
		}
		if done {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search walk failed: %w", err)
	}
	return result, nil
}

// scanFile appends matches from one file. Returns done == true once the
// result cap is hit.
func (t *Tool) scanFile(path, needle string, caseSensitive bool, result *Result) (bool, error) {
	isBinary, err := t.detector.IsBinaryFile(path)
	if err != nil || isBinary {
		return false, fmt.Errorf("skipped")
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		haystack := line
		if !caseSensitive {
			haystack = strings.ToLower(line)
		}
		if !strings.Contains(haystack, needle) {
			continue
		}

		if len(result.Matches) >= t.maxResults {
			result.Truncated = true
			return true, nil
		}
		if len(line) > t.maxLineLength {
			line = line[:t.maxLineLength] + "..."
		}
		result.Matches = append(result.Matches, Match{
			Path:    path,
			Line:    lineNo,
			Content: line,
		})
	}
	return false, nil
}
