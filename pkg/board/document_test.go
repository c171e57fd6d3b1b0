// SPDX-License-Identifier: MPL-2.0

package board

import (
	"encoding/json"
	"testing"
)

func TestCountVendors(t *testing.T) {
	t.Parallel()

	boards := []Board{
		New("a", "Acme"),
		New("b", "Boards R Us"),
		New("c", "Acme"),
		New("d", "acme"),
	}
	if got := CountVendors(boards); got != 3 {
		t.Errorf("CountVendors() = %d, want 3", got)
	}
	if got := CountVendors(nil); got != 0 {
		t.Errorf("CountVendors(nil) = %d, want 0", got)
	}
}

func TestNewDocument_EncodesKeysInOrder(t *testing.T) {
	t.Parallel()

	doc := NewDocument([]Board{New("Alpha", "Acme")})
	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := `{"boards":[{"name":"Alpha","vendor":"Acme"}],"_metadata":{"total_vendors":1,"total_boards":1}}`
	if string(out) != want {
		t.Errorf("Marshal() = %s, want %s", out, want)
	}
}

func TestNewDocument_Empty(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(NewDocument(nil))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := `{"boards":[],"_metadata":{"total_vendors":0,"total_boards":0}}`
	if string(out) != want {
		t.Errorf("Marshal() = %s, want %s", out, want)
	}
}
