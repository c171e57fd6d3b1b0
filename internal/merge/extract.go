// SPDX-License-Identifier: MPL-2.0

package merge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/boardmerge/boardmerge/pkg/board"
)

// DefaultMaxFileSize is the largest input file Extract reads when no limit is configured.
const DefaultMaxFileSize int64 = 5 << 20

// boardsKey is the top-level key holding the board records of an input file.
const boardsKey = "boards"

type (
	// Extraction is the outcome of reading one input file.
	Extraction struct {
		Path string
		// Boards holds the file's records in file order, each tagged with Path.
		Boards []board.Board
		// HasBoards reports whether the file carried a non-empty "boards" array
		// and therefore counts as a contributing file.
		HasBoards bool
	}

	// FileTooLargeError is the read cause for files exceeding the size limit.
	FileTooLargeError struct {
		Size  int64
		Limit int64
	}
)

// Error implements the error interface.
func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file is %d bytes, limit is %d", e.Size, e.Limit)
}

// Extract reads path and returns its board records. Files whose top level is
// not an object, or that have no "boards" key, or whose "boards" value is
// null, false, zero, an empty string, an empty array or an empty object,
// yield no records and no error. maxSize <= 0 disables the size limit.
//
// Returned errors are always *FileError of KindRead or KindParse.
func Extract(path string, maxSize int64) (Extraction, error) {
	data, err := readLimited(path, maxSize)
	if err != nil {
		return Extraction{Path: path}, &FileError{Kind: KindRead, Path: path, Cause: err}
	}
	return ExtractBytes(path, data)
}

// ExtractBytes parses already-read file content. path tags the records and errors.
func ExtractBytes(path string, data []byte) (Extraction, error) {
	result := Extraction{Path: path}

	var top json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return result, &FileError{Kind: KindParse, Path: path, Cause: err}
	}
	top = bytes.TrimSpace(top)
	if top[0] != '{' {
		return result, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(top, &fields); err != nil {
		return result, &FileError{Kind: KindParse, Path: path, Cause: err}
	}
	raw, ok := fields[boardsKey]
	if !ok {
		return result, nil
	}
	raw = bytes.TrimSpace(raw)
	if isFalsy(raw) {
		return result, nil
	}
	if raw[0] != '[' {
		return result, &FileError{Kind: KindParse, Path: path, Cause: &BoardsShapeError{Found: describeJSON(raw)}}
	}

	var boards []board.Board
	if err := json.Unmarshal(raw, &boards); err != nil {
		return result, &FileError{Kind: KindParse, Path: path, Cause: err}
	}
	for i := range boards {
		boards[i].Source = path
	}
	result.Boards = boards
	result.HasBoards = true
	return result, nil
}

func readLimited(path string, maxSize int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if maxSize <= 0 {
		return io.ReadAll(f)
	}

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSize {
		return nil, &FileTooLargeError{Size: info.Size(), Limit: maxSize}
	}
	// The file may grow between Stat and Read.
	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, &FileTooLargeError{Size: int64(len(data)), Limit: maxSize}
	}
	return data, nil
}

// isFalsy reports whether a valid JSON value counts as "no boards":
// null, false, a zero number, "", [] or {}.
func isFalsy(raw json.RawMessage) bool {
	switch raw[0] {
	case 'n', 'f':
		return true
	case 't':
		return false
	case '"':
		return string(raw) == `""`
	case '[':
		var items []json.RawMessage
		return json.Unmarshal(raw, &items) == nil && len(items) == 0
	case '{':
		var members map[string]json.RawMessage
		return json.Unmarshal(raw, &members) == nil && len(members) == 0
	default:
		n, err := strconv.ParseFloat(string(raw), 64)
		return err == nil && n == 0
	}
}

func describeJSON(raw json.RawMessage) string {
	switch raw[0] {
	case '{':
		return "an object"
	case '"':
		return "a string"
	case 't', 'f':
		return "a boolean"
	default:
		return "a number"
	}
}
