// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultIgnores lists noisy paths that never trigger a merge: VCS metadata,
// dependency caches, editor swap files and the temp files the output writer
// renames into place.
var defaultIgnores = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
	"**/.boards_data_merged-*.tmp",
}

// filter decides which relative paths are watched and reported.
type filter struct {
	patterns      []string
	ignores       []string
	ignoreDirs    []string
	includeHidden bool
}

func newFilter(cfg Config, ignoreDirs []string) filter {
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}
	ignores := make([]string, 0, len(defaultIgnores)+len(cfg.Ignore))
	ignores = append(ignores, defaultIgnores...)
	ignores = append(ignores, cfg.Ignore...)
	return filter{
		patterns:      patterns,
		ignores:       ignores,
		ignoreDirs:    ignoreDirs,
		includeHidden: cfg.IncludeHidden,
	}
}

// skipDir reports whether a directory (absolute path, and its slash path
// relative to the base) should not be watched at all.
func (f filter) skipDir(abs, rel string) bool {
	if rel == "." {
		return false
	}
	return f.inIgnoredDir(abs) || f.isIgnored(rel) || f.isIgnored(rel+"/")
}

// reports returns whether a change to the file at abs (rel relative to the
// base) should trigger a callback.
func (f filter) reports(abs, rel string) bool {
	if f.inIgnoredDir(abs) || f.isIgnored(rel) {
		return false
	}
	for _, pat := range f.patterns {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
	}
	return false
}

func (f filter) isIgnored(rel string) bool {
	if !f.includeHidden && hasHiddenSegment(rel) {
		return true
	}
	for _, pat := range f.ignores {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
	}
	return false
}

func (f filter) inIgnoredDir(abs string) bool {
	for _, dir := range f.ignoreDirs {
		if within(abs, dir) {
			return true
		}
	}
	return false
}

// within reports whether path equals dir or lies beneath it.
func within(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator))
}

func hasHiddenSegment(rel string) bool {
	for segment := range strings.SplitSeq(strings.TrimSuffix(rel, "/"), "/") {
		if len(segment) > 1 && strings.HasPrefix(segment, ".") && segment != ".." {
			return true
		}
	}
	return false
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	out := make([]string, len(defaultIgnores))
	copy(out, defaultIgnores)
	return out
}
