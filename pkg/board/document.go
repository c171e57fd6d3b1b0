// SPDX-License-Identifier: MPL-2.0

package board

type (
	// Metadata summarizes a merged collection.
	Metadata struct {
		// TotalVendors is the number of distinct vendor strings.
		TotalVendors int `json:"total_vendors"`
		// TotalBoards is the number of records in the collection.
		TotalBoards int `json:"total_boards"`
	}

	// Document is the merged output: the sorted boards followed by their summary.
	Document struct {
		Boards   []Board  `json:"boards"`
		Metadata Metadata `json:"_metadata"`
	}
)

// CountVendors returns the number of distinct vendor strings in boards.
func CountVendors(boards []Board) int {
	vendors := make(map[string]struct{}, len(boards))
	for _, b := range boards {
		vendors[b.vendor] = struct{}{}
	}
	return len(vendors)
}

// NewDocument assembles a Document around an already-sorted collection.
// A nil collection is stored as an empty slice so it encodes as [].
func NewDocument(sorted []Board) Document {
	if sorted == nil {
		sorted = []Board{}
	}
	return Document{
		Boards: sorted,
		Metadata: Metadata{
			TotalVendors: CountVendors(sorted),
			TotalBoards:  len(sorted),
		},
	}
}
