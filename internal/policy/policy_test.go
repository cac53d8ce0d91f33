package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPolicy(t *testing.T, mode ApprovalMode) *ShellPolicy {
	t.Helper()
	p, err := NewShellPolicy(mode, NewMemoryStore())
	require.NoError(t, err)
	return p
}

func TestRootCommandOf(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{"plain command", "ls -la", "ls"},
		{"path prefix", "/usr/bin/docker run", "docker"},
		{"no arguments", "make", "make"},
		{"leading whitespace", "   git status", "git"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"pipe classified by first command", "cat foo | grep bar", "cat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RootCommandOf(tt.line))
		})
	}
}

func TestClassifyBlocklist(t *testing.T) {
	p := newTestPolicy(t, ModeDefault)

	tests := []struct {
		name string
		line string
	}{
		{"rm", "rm -rf /tmp/x"},
		{"rm via path", "/bin/rm file"},
		{"dd", "dd if=/dev/zero of=/dev/sda"},
		{"mkfs family", "mkfs.ext4 /dev/sdb1"},
		{"sudo", "sudo ls"},
		{"shutdown", "shutdown -h now"},
		{"package manager", "apt-get install foo"},
		{"fork bomb", ":(){ :|:& };:"},
		{"root deletion buried in compound line", "echo ok && rm -rf /"},
		{"raw disk redirect", "cat image.iso > /dev/sda"},
		{"empty line", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Blocked, p.Classify(tt.line))
		})
	}
}

func TestClassifyBlocklistWinsOverPermissive(t *testing.T) {
	p := newTestPolicy(t, ModePermissive)

	assert.Equal(t, Blocked, p.Classify("rm -rf /tmp/x"))
	assert.Equal(t, Blocked, p.Classify("sudo apt-get upgrade"))
	// Non-blocked commands are pre-approved in permissive mode.
	assert.Equal(t, PreApproved, p.Classify("ls -la"))
}

func TestClassifyBlocklistWinsOverConsent(t *testing.T) {
	p := newTestPolicy(t, ModeDefault)

	// No sequence of consent operations can unblock a blocked command.
	require.NoError(t, p.RecordConsent("rm", ScopeSession))
	require.NoError(t, p.RecordConsent("rm", ScopePermanent))
	assert.Equal(t, Blocked, p.Classify("rm file.txt"))
}

func TestClassifyNeedsConsentByDefault(t *testing.T) {
	p := newTestPolicy(t, ModeDefault)
	assert.Equal(t, NeedsConsent, p.Classify("ls -la"))
	assert.Equal(t, NeedsConsent, p.Classify("git status"))
}

func TestRecordConsentScopes(t *testing.T) {
	store := NewMemoryStore()
	p, err := NewShellPolicy(ModeDefault, store)
	require.NoError(t, err)

	// Once leaves classification unchanged.
	require.NoError(t, p.RecordConsent("ls", ScopeOnce))
	assert.Equal(t, NeedsConsent, p.Classify("ls"))

	// Session approves for the process lifetime but does not persist.
	require.NoError(t, p.RecordConsent("ls", ScopeSession))
	assert.Equal(t, PreApproved, p.Classify("ls -la"))
	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)

	// Permanent approves and writes through to the store.
	require.NoError(t, p.RecordConsent("git", ScopePermanent))
	assert.Equal(t, PreApproved, p.Classify("git log"))
	persisted, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"git"}, persisted)
}

func TestRecordConsentIdempotent(t *testing.T) {
	p := newTestPolicy(t, ModeDefault)

	require.NoError(t, p.RecordConsent("ls", ScopeSession))
	require.NoError(t, p.RecordConsent("ls", ScopeSession))
	assert.Equal(t, PreApproved, p.Classify("ls"))
}

func TestRecordConsentErrors(t *testing.T) {
	p := newTestPolicy(t, ModeDefault)
	assert.ErrorIs(t, p.RecordConsent("", ScopeSession), ErrEmptyCommand)
	assert.ErrorIs(t, p.RecordConsent("ls", Scope("forever")), ErrUnknownScope)
}

func TestPersistentAllowlistSurvivesReload(t *testing.T) {
	store := NewMemoryStore()

	first, err := NewShellPolicy(ModeDefault, store)
	require.NoError(t, err)
	require.NoError(t, first.RecordConsent("make", ScopePermanent))

	// A fresh policy seeded from the same store pre-approves without a prompt.
	second, err := NewShellPolicy(ModeDefault, store)
	require.NoError(t, err)
	assert.Equal(t, PreApproved, second.Classify("make test"))
}
