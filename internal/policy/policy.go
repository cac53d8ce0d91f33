// Package policy classifies shell command lines against a fixed blocklist
// and a pair of session/persistent allowlists, and records consent
// decisions. The blocklist is consulted first and cannot be overridden by
// any allowlist or by permissive mode.
package policy

import (
	"path/filepath"
	"strings"
	"sync"
)

// Classification is the verdict for one command line.
type Classification int

const (
	// Blocked commands never execute; no consent can change this.
	Blocked Classification = iota
	// PreApproved commands run without prompting.
	PreApproved
	// NeedsConsent commands require an interactive decision.
	NeedsConsent
)

func (c Classification) String() string {
	switch c {
	case Blocked:
		return "blocked"
	case PreApproved:
		return "pre-approved"
	case NeedsConsent:
		return "needs-consent"
	default:
		return "unknown"
	}
}

// Scope is the lifetime of a consent decision.
type Scope string

const (
	ScopeOnce      Scope = "once"
	ScopeSession   Scope = "session"
	ScopePermanent Scope = "permanent"
)

// ApprovalMode controls whether new commands prompt by default.
type ApprovalMode string

const (
	// ModeDefault prompts for every command not already allowlisted.
	ModeDefault ApprovalMode = "default"
	// ModePermissive runs non-blocked commands without prompting.
	ModePermissive ApprovalMode = "permissive"
)

// ShellPolicy decides whether a shell command line may execute and manages
// consent state. Safe for concurrent use within one session.
type ShellPolicy struct {
	mode  ApprovalMode
	store AllowlistStore

	mu        sync.RWMutex
	session   map[string]bool
	permanent map[string]bool
}

// NewShellPolicy creates a policy seeded from the persistent store. The
// store's contents are read once; Permanent consents write through.
func NewShellPolicy(mode ApprovalMode, store AllowlistStore) (*ShellPolicy, error) {
	p := &ShellPolicy{
		mode:      mode,
		store:     store,
		session:   make(map[string]bool),
		permanent: make(map[string]bool),
	}

	persisted, err := store.Load()
	if err != nil {
		return nil, err
	}
	for _, root := range persisted {
		p.permanent[root] = true
	}
	return p, nil
}

// RootCommandOf extracts the leading executable token of a command line,
// stripping any directory prefix. Compound lines (pipes, &&, redirections)
// are identified by their first command only.
func RootCommandOf(commandLine string) string {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return ""
	}
	return filepath.Base(fields[0])
}

// Classify returns the verdict for a command line. The blocklist check is
// unconditional and happens before any allowlist or mode check.
func (p *ShellPolicy) Classify(commandLine string) Classification {
	root := RootCommandOf(commandLine)
	if root == "" {
		return Blocked
	}

	if isBlockedRoot(root) || matchesBlockedPattern(commandLine) {
		return Blocked
	}

	p.mu.RLock()
	allowed := p.session[root] || p.permanent[root]
	p.mu.RUnlock()

	if allowed || p.mode == ModePermissive {
		return PreApproved
	}
	return NeedsConsent
}

// RecordConsent records an approval for a root command at the given scope.
// ScopeOnce changes nothing; ScopeSession lives for the process;
// ScopePermanent additionally writes through to the file-backed store.
func (p *ShellPolicy) RecordConsent(rootCommand string, scope Scope) error {
	if rootCommand == "" {
		return ErrEmptyCommand
	}

	switch scope {
	case ScopeOnce:
		return nil
	case ScopeSession:
		p.mu.Lock()
		p.session[rootCommand] = true
		p.mu.Unlock()
		return nil
	case ScopePermanent:
		p.mu.Lock()
		p.session[rootCommand] = true
		p.permanent[rootCommand] = true
		p.mu.Unlock()
		return p.store.Add(rootCommand)
	default:
		return ErrUnknownScope
	}
}

// Mode returns the configured approval mode.
func (p *ShellPolicy) Mode() ApprovalMode {
	return p.mode
}
