package file

import "errors"

var (
	ErrBinaryFile      = errors.New("binary files are not supported")
	ErrTooLarge        = errors.New("file or content exceeds size limit")
	ErrIsDirectory     = errors.New("path is a directory, not a file")
	ErrSnippetNotFound = errors.New("snippet not found in file")
	ErrCountMismatch   = errors.New("expected replacement count does not match actual occurrences")
)
