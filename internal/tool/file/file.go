// Package file implements the read, write, and replace-in-file operations.
// Callers pass paths that have already been resolved and trust-checked.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aide-cli/aide/internal/tool/fsutil"
)

// Tool performs bounded file operations.
type Tool struct {
	maxFileSize int64
	detector    *fsutil.BinaryDetector
}

// NewTool creates a file tool.
func NewTool(maxFileSize int64, detector *fsutil.BinaryDetector) *Tool {
	if detector == nil {
		panic("detector is required")
	}
	return &Tool{maxFileSize: maxFileSize, detector: detector}
}

// ReadResult is the outcome of a Read.
type ReadResult struct {
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	Content string `json:"content"`
}

// Read returns the content of a text file, enforcing the size ceiling and
// rejecting binary content.
func (t *Tool) Read(path string) (*ReadResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, ErrIsDirectory
	}
	if info.Size() > t.maxFileSize {
		return nil, ErrTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if t.detector.IsBinaryContent(data) {
		return nil, ErrBinaryFile
	}

	return &ReadResult{
		Path:    path,
		Size:    info.Size(),
		Content: string(data),
	}, nil
}

// WriteResult is the outcome of a Write.
type WriteResult struct {
	Path    string `json:"path"`
	Written int    `json:"written"`
	Created bool   `json:"created"`
}

// Write stores content at path, creating parent directories as needed.
// Existing files are overwritten.
func (t *Tool) Write(path string, content string) (*WriteResult, error) {
	if int64(len(content)) > t.maxFileSize {
		return nil, ErrTooLarge
	}

	created := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		created = true
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create parent directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &WriteResult{
		Path:    path,
		Written: len(content),
		Created: created,
	}, nil
}

// ReplaceResult is the outcome of a Replace.
type ReplaceResult struct {
	Path         string `json:"path"`
	Replacements int    `json:"replacements"`
}

// Replace substitutes every occurrence of oldText with newText in the file
// at path. If expected is > 0 the actual occurrence count must match it
// exactly; with expected == 0 at least one occurrence is required.
func (t *Tool) Replace(path, oldText, newText string, expected int) (*ReplaceResult, error) {
	if oldText == "" {
		return nil, fmt.Errorf("old_text must not be empty")
	}

	current, err := t.Read(path)
	if err != nil {
		return nil, err
	}

	occurrences := strings.Count(current.Content, oldText)
	if occurrences == 0 {
		return nil, ErrSnippetNotFound
	}
	if expected > 0 && occurrences != expected {
		return nil, fmt.Errorf("%w: expected %d, found %d", ErrCountMismatch, expected, occurrences)
	}

	updated := strings.ReplaceAll(current.Content, oldText, newText)
	if int64(len(updated)) > t.maxFileSize {
		return nil, ErrTooLarge
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &ReplaceResult{
		Path:         path,
		Replacements: occurrences,
	}, nil
}
