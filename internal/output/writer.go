// SPDX-License-Identifier: MPL-2.0

package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/boardmerge/boardmerge/internal/merge"
	"github.com/boardmerge/boardmerge/pkg/board"
	"github.com/boardmerge/boardmerge/pkg/fspath"
	"github.com/boardmerge/boardmerge/pkg/types"
)

const (
	// DefaultDir is the destination directory used when none is configured.
	DefaultDir = "merged"

	filePrefix = merge.GeneratedFilePrefix
	fileExt    = ".json"
	indent     = "    "
	filePerm   = 0o644
	dirPerm    = 0o755
)

// ErrDirMissing is returned when the destination directory does not exist
// and the writer is not allowed to create it.
var ErrDirMissing = errors.New("output directory does not exist")

// Writer writes merged documents into Dir. It implements merge.Sink.
type Writer struct {
	Dir string
	// CreateDir creates Dir (and parents) when it is missing.
	CreateDir bool
	// Clock supplies the timestamp embedded in file names. Defaults to time.Now.
	Clock func() time.Time
}

var _ merge.Sink = (*Writer)(nil)

// FileName returns the output file name for a document written at t.
func FileName(t time.Time) string {
	return filePrefix + strconv.FormatInt(t.Unix(), 10) + fileExt
}

// Encode writes doc to w with 4-space indentation, no HTML escaping and a
// trailing newline.
func Encode(w io.Writer, doc board.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding merged document: %w", err)
	}
	return nil
}

// Write encodes doc into a new file in w.Dir and returns its path.
// Every failure is a *merge.WriteError.
func (w *Writer) Write(doc board.Document) (string, error) {
	dir := w.Dir
	if dir == "" {
		dir = DefaultDir
	}
	path := string(fspath.JoinStr(types.FilesystemPath(dir), FileName(w.now())))

	if err := w.ensureDir(dir); err != nil {
		return "", &merge.WriteError{Path: path, Cause: err}
	}
	if err := writeAtomic(dir, path, doc); err != nil {
		return "", &merge.WriteError{Path: path, Cause: err}
	}
	return path, nil
}

func (w *Writer) now() time.Time {
	if w.Clock == nil {
		return time.Now()
	}
	return w.Clock()
}

func (w *Writer) ensureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("%s is not a directory", dir)
	case !errors.Is(err, fs.ErrNotExist):
		return err
	case !w.CreateDir:
		return fmt.Errorf("%w: %s", ErrDirMissing, dir)
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}

// writeAtomic encodes doc into a temp file in dir and renames it to path.
// Both files live in dir so the rename is a same-filesystem move.
func writeAtomic(dir, path string, doc board.Document) (err error) {
	tmp, err := os.CreateTemp(dir, "."+filePrefix+"*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := Encode(tmp, doc); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		return fmt.Errorf("setting file permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("moving output into place: %w", err)
	}
	renamed = true
	return nil
}
