// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath functions that
// accept and return types.FilesystemPath, plus the few path predicates the
// merge pipeline needs (trailing-separator trimming and containment checks).
package fspath

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/boardmerge/boardmerge/pkg/types"
)

// JoinStr wraps filepath.Join, accepting a typed base path and raw string
// segments (e.g. file names produced by a directory walk).
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

// Dir wraps filepath.Dir for FilesystemPath.
func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}

// Base wraps filepath.Base for FilesystemPath.
func Base(p types.FilesystemPath) string {
	return filepath.Base(string(p))
}

// Abs wraps filepath.Abs for FilesystemPath. Returns an error if the
// underlying OS call fails.
func Abs(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.FilesystemPath(abs), nil
}

// Clean wraps filepath.Clean for FilesystemPath.
func Clean(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Clean(string(p)))
}

// TrimTrailingSeparators strips trailing '/' and '\' characters. A path made
// only of separators collapses to a single separator so the filesystem root
// is never turned into the empty string.
func TrimTrailingSeparators(p types.FilesystemPath) types.FilesystemPath {
	s := string(p)
	trimmed := strings.TrimRight(s, `/\`)
	if trimmed == "" && s != "" {
		return types.FilesystemPath(s[:1])
	}
	return types.FilesystemPath(trimmed)
}

// IsWithin reports whether child equals parent or lies beneath it. Both
// paths should be absolute and cleaned.
func IsWithin(child, parent types.FilesystemPath) bool {
	c, p := string(child), string(parent)
	if c == p {
		return true
	}
	sep := string(filepath.Separator)
	return strings.HasPrefix(c, strings.TrimSuffix(p, sep)+sep)
}

// SameDir reports whether a and b resolve to the same absolute, cleaned
// path. Symlinks are not followed.
func SameDir(a, b types.FilesystemPath) bool {
	absA, err := Abs(a)
	if err != nil {
		return false
	}
	absB, err := Abs(b)
	if err != nil {
		return false
	}
	return Clean(absA) == Clean(absB)
}
