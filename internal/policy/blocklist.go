package policy

import "strings"

// blockedCommands are root commands that never execute, regardless of
// approval mode or any allowlist. Covers destructive file and disk
// operations, privilege escalation, system power control, and
// package-manager mutation.
var blockedCommands = map[string]bool{
	// destructive file/disk operations
	"rm":     true,
	"rmdir":  true,
	"shred":  true,
	"dd":     true,
	"fdisk":  true,
	"parted": true,

	// privilege escalation
	"sudo": true,
	"su":   true,

	// system power operations
	"shutdown": true,
	"reboot":   true,
	"halt":     true,
	"poweroff": true,
	"init":     true,

	// package-manager mutation
	"apt":     true,
	"apt-get": true,
	"dnf":     true,
	"yum":     true,
	"pacman":  true,
	"zypper":  true,
}

// blockedPrefixes catch families of commands sharing a stem, e.g. mkfs.ext4.
var blockedPrefixes = []string{
	"mkfs",
}

// blockedPatterns are literal fragments that block the whole line no matter
// where they appear. They catch dangerous idioms buried in compound lines
// whose first command would otherwise classify as harmless.
var blockedPatterns = []string{
	":(){",       // fork bomb
	"rm -rf /",   // root deletion
	"rm -fr /",
	"> /dev/sd",  // raw disk overwrite
	"of=/dev/sd",
}

// isBlockedRoot reports whether root is on the fixed denylist.
func isBlockedRoot(root string) bool {
	if blockedCommands[root] {
		return true
	}
	for _, prefix := range blockedPrefixes {
		if strings.HasPrefix(root, prefix) {
			return true
		}
	}
	return false
}

// matchesBlockedPattern reports whether the full command line contains a
// literal dangerous pattern. Runs of whitespace are collapsed first so
// spacing tricks do not defeat the match.
func matchesBlockedPattern(commandLine string) bool {
	normalized := strings.Join(strings.Fields(commandLine), " ")
	for _, pattern := range blockedPatterns {
		if strings.Contains(normalized, pattern) {
			return true
		}
	}
	return false
}
