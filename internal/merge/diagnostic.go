// SPDX-License-Identifier: MPL-2.0

package merge

import "errors"

const (
	// SeverityInfo marks an expected, harmless skip (e.g. a JSON file without boards).
	SeverityInfo Severity = "info"
	// SeverityWarning marks a file that was skipped because it could not be used.
	SeverityWarning Severity = "warning"

	// CodeFileReadFailed is reported for files that could not be read.
	CodeFileReadFailed = "file_read_failed"
	// CodeFileParseFailed is reported for files that are not valid board documents.
	CodeFileParseFailed = "file_parse_failed"
	// CodeFileWithoutBoards is reported for JSON files with no (or an empty) "boards" value.
	CodeFileWithoutBoards = "file_without_boards"
)

type (
	// Severity represents diagnostic severity.
	Severity string

	// Diagnostic is a structured, non-fatal note about one discovered file.
	// Diagnostics are returned to callers rather than printed so the
	// presentation layer decides how to render them.
	Diagnostic struct {
		// Severity is the diagnostic level.
		Severity Severity
		// Code is a machine-readable identifier (e.g. "file_parse_failed").
		Code string
		// Message is the human-readable description.
		Message string
		// Path is the file the diagnostic refers to.
		Path string
		// Cause is the underlying error, if any.
		Cause error
	}
)

// IsSkip reports whether the diagnostic records a file that was skipped
// because of an error.
func (d Diagnostic) IsSkip() bool {
	return d.Severity == SeverityWarning
}

// diagnosticFor converts a per-file error into a warning diagnostic.
func diagnosticFor(path string, err error) Diagnostic {
	code := CodeFileReadFailed
	if errors.Is(err, ErrParse) {
		code = CodeFileParseFailed
	}
	return Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  err.Error(),
		Path:     path,
		Cause:    err,
	}
}

func withoutBoardsDiagnostic(path string) Diagnostic {
	return Diagnostic{
		Severity: SeverityInfo,
		Code:     CodeFileWithoutBoards,
		Message:  "no boards in " + path + ", ignored",
		Path:     path,
	}
}
