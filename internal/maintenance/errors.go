package maintenance

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedName is wrapped by ParseError when a filename does not
	// carry a numeric epoch in its second dot-delimited field.
	ErrMalformedName = errors.New("malformed unified2 filename")

	// ErrRootNotFound is wrapped by ScanError when the log root is missing.
	ErrRootNotFound = errors.New("log root not found")
)

// ParseError reports a filename whose epoch could not be extracted.
// The pipeline logs it and excludes the file; it never aborts a run.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse epoch from %q: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ScanError reports a root or interface directory that could not be listed.
// It aborts the scan, so a purge never starts deleting after one.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// DeleteError reports a single file that could not be removed.
type DeleteError struct {
	Path string
	Err  error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete %s: %v", e.Path, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }
