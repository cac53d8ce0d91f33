package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree creates a small workspace:
//
//	main.go
//	debug.log        (gitignored)
//	sub/util.go
//	sub/util_test.go
//	build/out.bin    (gitignored)
func buildTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		".gitignore":       "*.log\nbuild/\n",
		"main.go":          "package main\n",
		"debug.log":        "noise\n",
		"sub/util.go":      "package sub\n",
		"sub/util_test.go": "package sub\n",
		"build/out.bin":    "binary\n",
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func entryNames(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

func TestList(t *testing.T) {
	dir := buildTree(t)
	tool := NewTool(100)

	result, err := tool.List(dir, false)
	require.NoError(t, err)

	names := entryNames(result.Entries)
	assert.Contains(t, names, "main.go")
	assert.Contains(t, names, "sub")
	assert.NotContains(t, names, "debug.log")
	assert.NotContains(t, names, "build")
	assert.False(t, result.Truncated)
}

func TestList_IncludeIgnored(t *testing.T) {
	dir := buildTree(t)
	tool := NewTool(100)

	result, err := tool.List(dir, true)
	require.NoError(t, err)

	names := entryNames(result.Entries)
	assert.Contains(t, names, "debug.log")
	assert.Contains(t, names, "build")
}

func TestList_Truncation(t *testing.T) {
	dir := buildTree(t)
	tool := NewTool(2)

	result, err := tool.List(dir, true)
	require.NoError(t, err)
	assert.Len(t, result.Entries, 2)
	assert.True(t, result.Truncated)
}

func TestList_MissingDirectory(t *testing.T) {
	tool := NewTool(100)
	_, err := tool.List(filepath.Join(t.TempDir(), "gone"), false)
	assert.Error(t, err)
}

func TestGlob(t *testing.T) {
	dir := buildTree(t)
	tool := NewTool(100)

	tests := []struct {
		name     string
		pattern  string
		expected []string
	}{
		{"bare name matches any depth", "*.go", []string{"main.go", "sub/util.go", "sub/util_test.go"}},
		{"single segment", "main.go", []string{"main.go"}},
		{"directory scoped", "sub/*.go", []string{"sub/util.go", "sub/util_test.go"}},
		{"double star", "**/util*.go", []string{"sub/util.go", "sub/util_test.go"}},
		{"no matches", "*.rs", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tool.Glob(dir, tt.pattern, false)
			require.NoError(t, err)

			var rels []string
			for _, m := range result.Matches {
				rel, err := filepath.Rel(dir, m)
				require.NoError(t, err)
				rels = append(rels, filepath.ToSlash(rel))
			}
			assert.ElementsMatch(t, tt.expected, rels)
		})
	}
}

func TestGlob_SkipsIgnored(t *testing.T) {
	dir := buildTree(t)
	tool := NewTool(100)

	result, err := tool.Glob(dir, "**/*", false)
	require.NoError(t, err)
	for _, m := range result.Matches {
		assert.NotContains(t, m, "debug.log")
		assert.NotContains(t, m, string(filepath.Separator)+"build"+string(filepath.Separator))
	}

	withIgnored, err := tool.Glob(dir, "*.log", true)
	require.NoError(t, err)
	assert.Len(t, withIgnored.Matches, 1)
}

func TestGlob_InvalidPattern(t *testing.T) {
	tool := NewTool(100)
	_, err := tool.Glob(t.TempDir(), "[unclosed", false)
	assert.Error(t, err)

	_, err = tool.Glob(t.TempDir(), "", false)
	assert.Error(t, err)
}
