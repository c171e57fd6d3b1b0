// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/boardmerge/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/boardmerge/config.cue on macOS,
// %APPDATA%\boardmerge\config.cue on Windows), falling back to ./config.cue. Values can be
// overridden with BOARDMERGE_* environment variables (BOARDMERGE_MERGE_ROOT,
// BOARDMERGE_UI_VERBOSE, ...).
//
// Files are validated against an embedded CUE schema (config_schema.cue) before being
// merged over the defaults, and the decoded Config is validated again field by field.
package config
