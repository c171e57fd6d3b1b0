// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation suggestions. The issue catalog holds Markdown guidance for the
// fatal failure kinds of a merge run, rendered for terminals with glamour.
package issue
