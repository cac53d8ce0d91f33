package policy

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCommand = errors.New("command line is empty")
	ErrUnknownScope = errors.New("unknown consent scope")
)

// StoreError wraps failures reading or writing the persistent allowlist.
type StoreError struct {
	Path  string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("allowlist store %s: %v", e.Path, e.Cause)
}
func (e *StoreError) Unwrap() error { return e.Cause }
