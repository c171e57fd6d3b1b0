// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a callback when board files change.
//
// A Watcher registers every non-ignored directory under its base directory
// with fsnotify, filters events through doublestar patterns (by default
// **/*.json) and invokes OnChange once per quiet period with the
// deduplicated set of changed paths. Callbacks never overlap: a change that
// arrives while a callback is running is retried after the next quiet period.
package watch
