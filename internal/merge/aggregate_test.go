// SPDX-License-Identifier: MPL-2.0

package merge

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/boardmerge/boardmerge/pkg/board"
)

func decodeBoards(t *testing.T, source string, records ...string) []board.Board {
	t.Helper()
	boards := make([]board.Board, len(records))
	for i, rec := range records {
		if err := json.Unmarshal([]byte(rec), &boards[i]); err != nil {
			t.Fatalf("decode %s: %v", rec, err)
		}
		boards[i].Source = source
	}
	return boards
}

func keysOf(boards []board.Board) []string {
	out := make([]string, len(boards))
	for i, b := range boards {
		out[i] = b.Vendor() + "/" + b.Name()
	}
	return out
}

func TestAggregate_SortsByVendorThenName(t *testing.T) {
	t.Parallel()

	boards := []board.Board{
		board.New("D4-200S", "Boards R Us"),
		board.New("Zeta", "Acme"),
		board.New("Alpha", "Acme"),
		board.New("mini", "acme"),
	}

	doc, err := Aggregate(boards)
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}

	want := []string{"Acme/Alpha", "Acme/Zeta", "Boards R Us/D4-200S", "acme/mini"}
	if diff := cmp.Diff(want, keysOf(doc.Boards)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if doc.Metadata.TotalBoards != 4 || doc.Metadata.TotalVendors != 3 {
		t.Errorf("Metadata = %+v, want {TotalVendors:3 TotalBoards:4}", doc.Metadata)
	}
	if got := keysOf(boards); got[0] != "Boards R Us/D4-200S" {
		t.Errorf("input was mutated: %v", got)
	}
}

func TestAggregate_StableForEqualKeys(t *testing.T) {
	t.Parallel()

	boards := decodeBoards(t, "a.json",
		`{"name":"X","vendor":"V","rev":1}`,
		`{"name":"A","vendor":"V"}`,
		`{"name":"X","vendor":"V","rev":2}`,
		`{"name":"X","vendor":"V","rev":3}`,
	)

	doc, err := Aggregate(boards)
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}

	var revs []string
	for _, b := range doc.Boards[1:] {
		raw, _ := b.Field("rev")
		revs = append(revs, string(raw))
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, revs); diff != "" {
		t.Errorf("equal keys reordered (-want +got):\n%s", diff)
	}
}

func TestAggregate_EmptyCollection(t *testing.T) {
	t.Parallel()

	doc, err := Aggregate(nil)
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}
	if doc.Boards == nil || len(doc.Boards) != 0 {
		t.Errorf("Boards = %#v, want empty non-nil slice", doc.Boards)
	}
	if doc.Metadata != (board.Metadata{}) {
		t.Errorf("Metadata = %+v, want zero", doc.Metadata)
	}
}

func TestAggregate_MissingField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		records   []string
		wantField string
		wantIndex int
	}{
		{name: "missing name", records: []string{`{"name":"a","vendor":"v"}`, `{"vendor":"v"}`}, wantField: "name", wantIndex: 1},
		{name: "missing vendor", records: []string{`{"name":"a"}`}, wantField: "vendor", wantIndex: 0},
		{name: "vendor reported before name", records: []string{`{"core":"m4"}`}, wantField: "vendor", wantIndex: 0},
		{name: "non-string name", records: []string{`{"name":7,"vendor":"v"}`}, wantField: "name", wantIndex: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Aggregate(decodeBoards(t, "src.json", tt.records...))
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("Aggregate() error = %v, want ErrMissingField", err)
			}
			var fieldErr *MissingFieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("expected *MissingFieldError, got %T", err)
			}
			if fieldErr.Field != tt.wantField || fieldErr.Index != tt.wantIndex || fieldErr.Source != "src.json" {
				t.Errorf("MissingFieldError = %+v, want field %q index %d", fieldErr, tt.wantField, tt.wantIndex)
			}
		})
	}
}

func TestAggregate_OrderAndCountInvariants(t *testing.T) {
	t.Parallel()

	vendors := []string{"Acme", "acme", "Boards R Us", "Éclair", "Zed"}
	names := []string{"a", "B", "c", "Zeta", "alpha"}
	rng := rand.New(rand.NewPCG(1, 2))

	for round := range 20 {
		boards := make([]board.Board, 30)
		distinct := map[string]struct{}{}
		for i := range boards {
			v := vendors[rng.IntN(len(vendors))]
			boards[i] = board.New(names[rng.IntN(len(names))], v)
			distinct[v] = struct{}{}
		}

		doc, err := Aggregate(boards)
		if err != nil {
			t.Fatalf("round %d: Aggregate() error: %v", round, err)
		}
		if doc.Metadata.TotalBoards != len(doc.Boards) {
			t.Errorf("round %d: TotalBoards = %d, len(Boards) = %d", round, doc.Metadata.TotalBoards, len(doc.Boards))
		}
		if doc.Metadata.TotalVendors != len(distinct) {
			t.Errorf("round %d: TotalVendors = %d, want %d", round, doc.Metadata.TotalVendors, len(distinct))
		}
		for i := 1; i < len(doc.Boards); i++ {
			if board.Compare(doc.Boards[i-1], doc.Boards[i]) > 0 {
				t.Fatalf("round %d: boards %d and %d out of order", round, i-1, i)
			}
		}

		again, err := Aggregate(doc.Boards)
		if err != nil {
			t.Fatalf("round %d: re-Aggregate() error: %v", round, err)
		}
		if diff := cmp.Diff(keysOf(doc.Boards), keysOf(again.Boards)); diff != "" {
			t.Errorf("round %d: sorting is not idempotent (-first +second):\n%s", round, diff)
		}
	}
}
