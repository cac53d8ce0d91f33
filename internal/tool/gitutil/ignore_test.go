package gitutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgnoreMatcher(t *testing.T) {
	dir := t.TempDir()
	gitignore := "*.log\nbuild/\n# comment\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644))

	m, err := NewIgnoreMatcher(dir)
	require.NoError(t, err)

	assert.True(t, m.ShouldIgnore("debug.log"))
	assert.True(t, m.ShouldIgnore("sub/debug.log"))
	assert.True(t, m.ShouldIgnore("build/out.bin"))
	assert.True(t, m.ShouldIgnore(".git/HEAD"))
	assert.False(t, m.ShouldIgnore("main.go"))
	assert.False(t, m.ShouldIgnore("sub/main.go"))
}

func TestIgnoreMatcher_NoGitignore(t *testing.T) {
	m, err := NewIgnoreMatcher(t.TempDir())
	require.NoError(t, err)

	assert.False(t, m.ShouldIgnore("anything.log"))
}

func TestNoOpMatcher(t *testing.T) {
	assert.False(t, NoOpMatcher{}.ShouldIgnore("debug.log"))
}
