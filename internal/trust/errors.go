package trust

import (
	"errors"
	"fmt"
)

// ResolutionError is returned when a path reference cannot be canonicalised
// for a reason other than "the target does not exist yet" (for example a
// permission error while traversing, or an unresolvable symlink cycle).
type ResolutionError struct {
	Reference string
	Cause     error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve path %q: %v", e.Reference, e.Cause)
}
func (e *ResolutionError) Unwrap() error { return e.Cause }

// RootError is returned when a trusted root is invalid.
type RootError struct {
	Root  string
	Cause error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("invalid trusted root %q: %v", e.Root, e.Cause)
}
func (e *RootError) Unwrap() error { return e.Cause }

var (
	ErrEmptyReference = errors.New("path reference is empty")
	ErrNotADirectory  = errors.New("not a directory")

	// ErrUntrusted is the reason attached to denials for paths that resolve
	// outside every trusted root.
	ErrUntrusted = errors.New("path is outside every trusted root")
)
