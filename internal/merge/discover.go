// SPDX-License-Identifier: MPL-2.0

package merge

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/boardmerge/boardmerge/pkg/fspath"
	"github.com/boardmerge/boardmerge/pkg/types"
)

const (
	// Pattern is the glob every discovered file matches, relative to the merge root.
	Pattern = "**/*.json"
	// GeneratedFilePrefix starts the name of every merged document written to disk.
	GeneratedFilePrefix = "boards_data_merged-"
	// GeneratedFilePattern matches the base name of a merged document.
	GeneratedFilePattern = GeneratedFilePrefix + "*.json"
)

// DiscoverOptions tunes file discovery.
type DiscoverOptions struct {
	// IncludeHidden also matches files and directories whose name starts with a dot.
	IncludeHidden bool
	// ExcludeDirs are directories (absolute or relative to the working
	// directory) whose contents are never discovered. The CLI passes its
	// output directory here so earlier merge results are not re-ingested.
	// A directory that is the root or one of its ancestors is not pruned;
	// only files matching GeneratedFilePattern directly inside it are skipped.
	ExcludeDirs []string
}

// NormalizeRoot strips trailing path separators from a user-supplied root.
func NormalizeRoot(root string) string {
	return string(fspath.TrimTrailingSeparators(types.FilesystemPath(root)))
}

// Discover returns every regular file matching Pattern beneath root, in
// lexicographic order. The root must be an existing directory.
func Discover(root string, opts DiscoverOptions) ([]string, error) {
	root = NormalizeRoot(root)
	rootPath := types.FilesystemPath(root)
	if err := rootPath.Validate(); err != nil {
		return nil, &InvalidDirectoryError{Path: root, Cause: err}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, &InvalidDirectoryError{Path: root, Cause: err}
	}
	if !info.IsDir() {
		return nil, &InvalidDirectoryError{Path: root}
	}

	absRoot, err := fspath.Abs(rootPath)
	if err != nil {
		return nil, &InvalidDirectoryError{Path: root, Cause: err}
	}
	excluded, err := resolveExcludes(absRoot, opts.ExcludeDirs)
	if err != nil {
		return nil, err
	}

	var files []string
	walkErr := doublestar.GlobWalk(os.DirFS(root), Pattern, func(rel string, _ fs.DirEntry) error {
		if !opts.IncludeHidden && hasHiddenSegment(rel) {
			return nil
		}
		native := filepath.FromSlash(rel)
		if excluded.matches(fspath.JoinStr(absRoot, native)) {
			return nil
		}
		files = append(files, filepath.Join(root, native))
		return nil
	}, doublestar.WithFilesOnly())
	if walkErr != nil {
		return nil, fmt.Errorf("discover %s: %w", root, walkErr)
	}

	sort.Strings(files)
	return files, nil
}

// excludes splits the excluded directories by how they relate to the root.
// Directories strictly inside the root are pruned whole. The others hold
// the root itself, so pruning them would hide every file; for those only
// earlier merge results are skipped.
type excludes struct {
	pruned    []types.FilesystemPath
	generated []types.FilesystemPath
}

func resolveExcludes(absRoot types.FilesystemPath, dirs []string) (excludes, error) {
	var ex excludes
	root := fspath.Clean(absRoot)
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		abs, err := fspath.Abs(types.FilesystemPath(dir))
		if err != nil {
			return excludes{}, fmt.Errorf("exclude %s: %w", dir, err)
		}
		abs = fspath.Clean(abs)
		if fspath.IsWithin(root, abs) {
			ex.generated = append(ex.generated, abs)
			continue
		}
		ex.pruned = append(ex.pruned, abs)
	}
	return ex, nil
}

func (ex excludes) matches(path types.FilesystemPath) bool {
	for _, dir := range ex.pruned {
		if fspath.IsWithin(path, dir) {
			return true
		}
	}
	if len(ex.generated) == 0 || !IsGeneratedFileName(fspath.Base(path)) {
		return false
	}
	parent := fspath.Dir(path)
	for _, dir := range ex.generated {
		if parent == dir {
			return true
		}
	}
	return false
}

// IsGeneratedFileName reports whether name looks like a merged document.
func IsGeneratedFileName(name string) bool {
	ok, _ := doublestar.Match(GeneratedFilePattern, name)
	return ok
}

// hasHiddenSegment reports whether any slash-separated segment of rel starts with a dot.
func hasHiddenSegment(rel string) bool {
	for segment := range strings.SplitSeq(rel, "/") {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}
