package search

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aide-cli/aide/internal/tool/fsutil"
)

func newTestTool(maxResults int) *Tool {
	return NewTool(maxResults, 100, fsutil.NewBinaryDetector(8192))
}

func buildTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		".gitignore":  "vendor/\n",
		"main.go":     "package main\n\nfunc main() {\n\tprintln(\"Hello\")\n}\n",
		"util.go":     "package main\n\n// hello helper\nfunc hello() {}\n",
		"vendor/v.go": "package vendor // hello\n",
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blob.bin"), []byte{0x00, 'h', 'e', 'l', 'l', 'o'}, 0o644))
	return dir
}

func TestSearch_CaseInsensitive(t *testing.T) {
	dir := buildTree(t)
	tool := newTestTool(100)

	result, err := tool.Search(dir, "hello", false, false)
	require.NoError(t, err)

	// Matches in main.go and util.go; vendor/ is gitignored, blob.bin is binary.
	require.Len(t, result.Matches, 2)
	for _, m := range result.Matches {
		assert.NotContains(t, m.Path, "vendor")
		assert.NotContains(t, m.Path, "blob.bin")
		assert.Greater(t, m.Line, 0)
	}
}

func TestSearch_CaseSensitive(t *testing.T) {
	dir := buildTree(t)
	tool := newTestTool(100)

	result, err := tool.Search(dir, "Hello", true, false)
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Contains(t, result.Matches[0].Path, "main.go")
	assert.Equal(t, 4, result.Matches[0].Line)
}

func TestSearch_IncludeIgnored(t *testing.T) {
	dir := buildTree(t)
	tool := newTestTool(100)

	result, err := tool.Search(dir, "hello", false, true)
	require.NoError(t, err)
	assert.Len(t, result.Matches, 3)
}

func TestSearch_Truncation(t *testing.T) {
	dir := buildTree(t)
	tool := newTestTool(1)

	result, err := tool.Search(dir, "hello", false, false)
	require.NoError(t, err)
	assert.Len(t, result.Matches, 1)
	assert.True(t, result.Truncated)
}

func TestSearch_LongLinesClipped(t *testing.T) {
	dir := t.TempDir()
	long := "needle " + strings.Repeat("x", 500)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "long.txt"), []byte(long+"\n"), 0o644))

	tool := newTestTool(10)
	result, err := tool.Search(dir, "needle", false, false)
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.LessOrEqual(t, len(result.Matches[0].Content), 103) // maxLineLength + ellipsis
}

func TestSearch_EmptyQuery(t *testing.T) {
	tool := newTestTool(10)
	_, err := tool.Search(t.TempDir(), "", false, false)
	assert.Error(t, err)
}
