package trust

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestResolver creates a resolver rooted at a fresh temp directory and
// returns the canonical form of that directory.
func newTestResolver(t *testing.T) (*Resolver, string) {
	t.Helper()
	dir := t.TempDir()
	resolver, err := NewResolver(dir, nil)
	require.NoError(t, err)
	return resolver, resolver.Workdir()
}

func TestResolveRelative(t *testing.T) {
	resolver, root := newTestResolver(t)

	resolved, err := resolver.Resolve("sub/file.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "sub", "file.txt"), resolved)
	assert.True(t, filepath.IsAbs(resolved))
}

func TestResolveAbsolute(t *testing.T) {
	resolver, root := newTestResolver(t)

	target := filepath.Join(root, "a.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	resolved, err := resolver.Resolve(target)
	require.NoError(t, err)
	assert.Equal(t, target, resolved)
}

func TestResolveParentSegments(t *testing.T) {
	resolver, root := newTestResolver(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))

	// sub/../../<base> escapes the root by one level.
	escape := filepath.Join("sub", "..", "..", filepath.Base(root)+"-outside", "x")
	resolved, err := resolver.Resolve(escape)
	require.NoError(t, err)
	assert.False(t, resolver.IsTrusted(resolved))

	inside, err := resolver.Resolve(filepath.Join("sub", "..", "sub"))
	require.NoError(t, err)
	assert.True(t, resolver.IsTrusted(inside))
}

func TestResolveMissingLeaf(t *testing.T) {
	resolver, root := newTestResolver(t)

	resolved, err := resolver.Resolve("not-yet-created.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "not-yet-created.txt"), resolved)

	// Deeper missing tails resolve through the deepest existing ancestor.
	resolved, err = resolver.Resolve("new/dir/tree/file.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "new", "dir", "tree", "file.txt"), resolved)
	assert.True(t, resolver.IsTrusted(resolved))
}

func TestResolveSymlinkEscape(t *testing.T) {
	resolver, root := newTestResolver(t)

	outside := t.TempDir()
	outsideFile := filepath.Join(outside, "secret.txt")
	require.NoError(t, os.WriteFile(outsideFile, []byte("secret"), 0o644))

	link := filepath.Join(root, "link")
	require.NoError(t, os.Symlink(outsideFile, link))

	resolved, err := resolver.Resolve("link")
	require.NoError(t, err)
	assert.False(t, resolver.IsTrusted(resolved), "symlink target outside the root must not be trusted")
}

func TestResolveSymlinkInside(t *testing.T) {
	resolver, root := newTestResolver(t)

	target := filepath.Join(root, "real.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.Symlink(target, filepath.Join(root, "alias")))

	resolved, err := resolver.Resolve("alias")
	require.NoError(t, err)
	assert.Equal(t, target, resolved)
	assert.True(t, resolver.IsTrusted(resolved))
}

func TestResolveEmptyReference(t *testing.T) {
	resolver, _ := newTestResolver(t)

	_, err := resolver.Resolve("")
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.ErrorIs(t, err, ErrEmptyReference)
}

func TestIsTrustedSiblingPrefix(t *testing.T) {
	resolver, root := newTestResolver(t)

	// A sibling whose name shares the root as a string prefix is untrusted.
	sibling := root + "-sibling"
	assert.False(t, resolver.IsTrusted(sibling))
	assert.False(t, resolver.IsTrusted(filepath.Join(sibling, "file")))
	assert.True(t, resolver.IsTrusted(root))
}

func TestAddTrustedRoot(t *testing.T) {
	resolver, _ := newTestResolver(t)

	extra := t.TempDir()
	require.NoError(t, resolver.AddTrustedRoot(extra))

	canonical, err := CanonicaliseRoot(extra)
	require.NoError(t, err)
	assert.True(t, resolver.IsTrusted(filepath.Join(canonical, "file.txt")))

	// Adding the same root twice does not grow the set.
	before := len(resolver.TrustedRoots())
	require.NoError(t, resolver.AddTrustedRoot(extra))
	assert.Equal(t, before, len(resolver.TrustedRoots()))
}

func TestAddTrustedRootRejectsFile(t *testing.T) {
	resolver, root := newTestResolver(t)

	file := filepath.Join(root, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	err := resolver.AddTrustedRoot(file)
	var rootErr *RootError
	require.ErrorAs(t, err, &rootErr)
	assert.True(t, errors.Is(err, ErrNotADirectory))
}

func TestNewResolverMissingWorkdir(t *testing.T) {
	_, err := NewResolver(filepath.Join(t.TempDir(), "gone"), nil)
	var rootErr *RootError
	require.ErrorAs(t, err, &rootErr)
}
