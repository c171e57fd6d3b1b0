// SPDX-License-Identifier: MPL-2.0

package merge

import (
	"slices"

	"github.com/boardmerge/boardmerge/pkg/board"
)

// Aggregate validates the accumulated records, sorts them by (vendor, name)
// and wraps them with their metadata. Records with equal keys keep their
// accumulation order. Aggregate never mutates its input.
func Aggregate(boards []board.Board) (board.Document, error) {
	if err := Validate(boards); err != nil {
		return board.Document{}, err
	}
	return board.NewDocument(SortBoards(boards)), nil
}

// Validate returns a *MissingFieldError for the first record without a
// string vendor or name. The vendor is checked first because it is the
// primary sort key.
func Validate(boards []board.Board) error {
	for i, b := range boards {
		if !b.HasVendor() {
			return &MissingFieldError{Field: board.FieldVendor, Index: i, Source: b.Source}
		}
		if !b.HasName() {
			return &MissingFieldError{Field: board.FieldName, Index: i, Source: b.Source}
		}
	}
	return nil
}

// SortBoards returns a stably sorted copy of boards ordered by board.Compare.
func SortBoards(boards []board.Board) []board.Board {
	sorted := slices.Clone(boards)
	slices.SortStableFunc(sorted, board.Compare)
	return sorted
}
