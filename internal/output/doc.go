// SPDX-License-Identifier: MPL-2.0

// Package output persists merged board documents.
//
// Documents are encoded as JSON with 4-space indentation and written to
// boards_data_merged-<unix-seconds>.json inside the destination directory.
// The file appears atomically: content goes to a temp file in the same
// directory which is then renamed, so a failed write never leaves a
// partial document behind.
package output
