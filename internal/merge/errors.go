// SPDX-License-Identifier: MPL-2.0

package merge

import (
	"errors"
	"fmt"
)

const (
	// KindInvalidDirectory means the merge root does not exist or is not a directory.
	KindInvalidDirectory Kind = iota + 1
	// KindRead means a discovered file could not be opened or read.
	KindRead
	// KindParse means a discovered file is not valid JSON or has a malformed "boards" value.
	KindParse
	// KindMissingField means a board record lacks a string "vendor" or "name".
	KindMissingField
	// KindWrite means the merged document could not be persisted.
	KindWrite
)

var (
	// ErrInvalidDirectory is the sentinel error wrapped by InvalidDirectoryError.
	ErrInvalidDirectory = errors.New("invalid directory")
	// ErrRead is the sentinel error wrapped by read-kind FileErrors.
	ErrRead = errors.New("read error")
	// ErrParse is the sentinel error wrapped by parse-kind FileErrors.
	ErrParse = errors.New("parse error")
	// ErrMissingField is the sentinel error wrapped by MissingFieldError.
	ErrMissingField = errors.New("missing required field")
	// ErrWrite is the sentinel error wrapped by WriteError.
	ErrWrite = errors.New("write error")
)

type (
	// Kind classifies pipeline failures.
	Kind int

	// InvalidDirectoryError is returned when the merge root is unusable.
	// Cause is nil when the path exists but is not a directory.
	InvalidDirectoryError struct {
		Path  string
		Cause error
	}

	// FileError reports a per-file failure. Kind is KindRead or KindParse.
	FileError struct {
		Kind  Kind
		Path  string
		Cause error
	}

	// MissingFieldError reports a board record without a required field.
	MissingFieldError struct {
		// Field is "vendor" or "name".
		Field string
		// Index is the position of the record in the accumulated collection.
		Index int
		// Source is the file the record came from.
		Source string
	}

	// WriteError reports a failure to persist the merged document.
	WriteError struct {
		Path  string
		Cause error
	}

	// BoardsShapeError is the parse cause for a truthy "boards" value that is not an array.
	BoardsShapeError struct {
		Found string
	}
)

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidDirectory:
		return "InvalidDirectory"
	case KindRead:
		return "ReadError"
	case KindParse:
		return "ParseError"
	case KindMissingField:
		return "MissingFieldError"
	case KindWrite:
		return "WriteError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsFatal reports whether errors of this kind abort a run.
func (k Kind) IsFatal() bool {
	switch k {
	case KindRead, KindParse:
		return false
	default:
		return true
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidDirectory:
		return ErrInvalidDirectory
	case KindRead:
		return ErrRead
	case KindParse:
		return ErrParse
	case KindMissingField:
		return ErrMissingField
	case KindWrite:
		return ErrWrite
	default:
		return nil
	}
}

// KindOf returns the pipeline kind carried by err, if any.
func KindOf(err error) (Kind, bool) {
	var dirErr *InvalidDirectoryError
	if errors.As(err, &dirErr) {
		return KindInvalidDirectory, true
	}
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind, true
	}
	var fieldErr *MissingFieldError
	if errors.As(err, &fieldErr) {
		return KindMissingField, true
	}
	var writeErr *WriteError
	if errors.As(err, &writeErr) {
		return KindWrite, true
	}
	return 0, false
}

// Error implements the error interface.
func (e *InvalidDirectoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid directory %q: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("invalid directory %q: not a directory", e.Path)
}

// Unwrap exposes both ErrInvalidDirectory and the underlying cause.
func (e *InvalidDirectoryError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidDirectory}
	}
	return []error{ErrInvalidDirectory, e.Cause}
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind.sentinel(), e.Path, e.Cause)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *FileError) Unwrap() []error {
	return []error{e.Kind.sentinel(), e.Cause}
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("board #%d has no %q field", e.Index+1, e.Field)
	}
	return fmt.Sprintf("board #%d from %s has no %q field", e.Index+1, e.Source, e.Field)
}

// Unwrap returns ErrMissingField for errors.Is() compatibility.
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// Error implements the error interface.
func (e *WriteError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("write error: %v", e.Cause)
	}
	return fmt.Sprintf("write error: %s: %v", e.Path, e.Cause)
}

// Unwrap exposes both ErrWrite and the underlying cause.
func (e *WriteError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrWrite}
	}
	return []error{ErrWrite, e.Cause}
}

// Error implements the error interface.
func (e *BoardsShapeError) Error() string {
	return fmt.Sprintf(`"boards" must be an array of board objects, found %s`, e.Found)
}
