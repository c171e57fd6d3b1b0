// SPDX-License-Identifier: MPL-2.0

package merge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/boardmerge/boardmerge/pkg/board"
)

type (
	// Sink persists a merged document and returns where it was written.
	Sink interface {
		Write(doc board.Document) (string, error)
	}

	// Request describes one merge run.
	Request struct {
		// Root is the directory to search. Trailing separators are ignored.
		Root     string
		Discover DiscoverOptions
		// MaxFileSize caps the size of each input file. Zero means DefaultMaxFileSize;
		// a negative value disables the limit.
		MaxFileSize int64
		// Observer, when set, receives lifecycle events.
		Observer Observer
		// Sink, when set, receives the document after a successful aggregation.
		Sink Sink
		// Logger defaults to slog.Default().
		Logger *slog.Logger
	}

	// Summary counts what a run saw.
	Summary struct {
		// RecordCount is the number of board records accumulated.
		RecordCount int
		// ContributingFileCount is the number of files with a non-empty "boards" array.
		ContributingFileCount int
		// DiscoveredFileCount is the number of files matched by discovery.
		DiscoveredFileCount int
		// SkippedFileCount is the number of files skipped because of read or parse errors.
		SkippedFileCount int
	}

	// Result is the outcome of a run.
	Result struct {
		// RunID identifies the run in logs.
		RunID       string
		Document    board.Document
		Summary     Summary
		Diagnostics []Diagnostic
		// OutputPath is set when a Sink wrote the document.
		OutputPath string
	}

	// fileOutcome is one step of the fold over discovered files: either a
	// batch of records or a diagnostic explaining why there are none.
	fileOutcome struct {
		extraction Extraction
		diagnostic *Diagnostic
	}
)

// Run executes discovery, extraction, aggregation and (optionally) the write.
// Per-file read and parse failures are recorded as diagnostics; every other
// error aborts the run and no output is written.
func Run(ctx context.Context, req Request) (Result, error) {
	runID := uuid.NewString()
	logger := req.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("run_id", runID)
	result := Result{RunID: runID}

	root := NormalizeRoot(req.Root)
	files, err := Discover(root, req.Discover)
	if err != nil {
		return result, err
	}
	logger.Debug("discovery complete", "root", root, "files", len(files))
	notify(req.Observer, EventDiscoveryComplete{RunID: runID, Root: root, Files: files})

	maxSize := req.MaxFileSize
	if maxSize == 0 {
		maxSize = DefaultMaxFileSize
	}

	var boards []board.Board
	result.Summary.DiscoveredFileCount = len(files)
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("merge canceled: %w", err)
		}

		outcome := processFile(path, maxSize)
		switch {
		case outcome.diagnostic != nil && outcome.diagnostic.IsSkip():
			result.Summary.SkippedFileCount++
			logger.Warn("skipping file", "path", path, "code", outcome.diagnostic.Code, "error", outcome.diagnostic.Cause)
		case outcome.extraction.HasBoards:
			result.Summary.ContributingFileCount++
			boards = append(boards, outcome.extraction.Boards...)
			logger.Debug("file extracted", "path", path, "records", len(outcome.extraction.Boards))
		default:
			logger.Debug("file has no boards", "path", path)
		}
		if outcome.diagnostic != nil {
			result.Diagnostics = append(result.Diagnostics, *outcome.diagnostic)
		}

		notify(req.Observer, EventFileProcessed{
			Index:      i,
			Total:      len(files),
			Path:       path,
			Records:    len(outcome.extraction.Boards),
			Diagnostic: outcome.diagnostic,
		})
	}
	result.Summary.RecordCount = len(boards)

	doc, err := Aggregate(boards)
	if err != nil {
		return result, err
	}
	result.Document = doc
	logger.Debug("sort complete", "boards", doc.Metadata.TotalBoards, "vendors", doc.Metadata.TotalVendors)
	notify(req.Observer, EventSortComplete{Boards: doc.Metadata.TotalBoards, Vendors: doc.Metadata.TotalVendors})

	if req.Sink == nil {
		return result, nil
	}
	path, err := req.Sink.Write(doc)
	if err != nil {
		var writeErr *WriteError
		if !errors.As(err, &writeErr) {
			err = &WriteError{Path: path, Cause: err}
		}
		return result, err
	}
	result.OutputPath = path
	logger.Info("merged document written", "path", path, "boards", doc.Metadata.TotalBoards)
	notify(req.Observer, EventWriteComplete{Path: path})
	return result, nil
}

func processFile(path string, maxSize int64) fileOutcome {
	extraction, err := Extract(path, maxSize)
	if err != nil {
		diag := diagnosticFor(path, err)
		return fileOutcome{extraction: Extraction{Path: path}, diagnostic: &diag}
	}
	if !extraction.HasBoards {
		diag := withoutBoardsDiagnostic(path)
		return fileOutcome{extraction: extraction, diagnostic: &diag}
	}
	return fileOutcome{extraction: extraction}
}

func notify(o Observer, e Event) {
	if o != nil {
		o.Observe(e)
	}
}
