// SPDX-License-Identifier: MPL-2.0

package board

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBoard_UnmarshalPreservesKeyOrder(t *testing.T) {
	t.Parallel()

	input := `{"vendor":"Boards R Us","core":"Cortex-M4","name":"D4-200S","has_wifi":false,"pins":[1,2.50,3]}`

	var b Board
	if err := json.Unmarshal([]byte(input), &b); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if b.Name() != "D4-200S" {
		t.Errorf("Name() = %q, want %q", b.Name(), "D4-200S")
	}
	if b.Vendor() != "Boards R Us" {
		t.Errorf("Vendor() = %q, want %q", b.Vendor(), "Boards R Us")
	}

	wantKeys := []string{"vendor", "core", "name", "has_wifi", "pins"}
	if diff := cmp.Diff(wantKeys, b.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}

	out, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(out) != input {
		t.Errorf("Marshal() = %s, want %s", out, input)
	}
}

func TestBoard_MarshalDoesNotEscapeHTML(t *testing.T) {
	t.Parallel()

	input := `{"name":"A<B>","vendor":"R&D","notes":"<b>ok</b>"}`

	var b Board
	if err := json.Unmarshal([]byte(input), &b); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	out, err := b.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	if string(out) != input {
		t.Errorf("MarshalJSON() = %s, want %s", out, input)
	}
}

func TestBoard_NonStringFieldsCountAsAbsent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		wantName   bool
		wantVendor bool
	}{
		{name: "both present", input: `{"name":"x","vendor":"y"}`, wantName: true, wantVendor: true},
		{name: "name missing", input: `{"vendor":"y"}`, wantName: false, wantVendor: true},
		{name: "vendor missing", input: `{"name":"x"}`, wantName: true, wantVendor: false},
		{name: "numeric name", input: `{"name":42,"vendor":"y"}`, wantName: false, wantVendor: true},
		{name: "null vendor", input: `{"name":"x","vendor":null}`, wantName: true, wantVendor: false},
		{name: "empty strings still present", input: `{"name":"","vendor":""}`, wantName: true, wantVendor: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var b Board
			if err := json.Unmarshal([]byte(tt.input), &b); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if b.HasName() != tt.wantName {
				t.Errorf("HasName() = %v, want %v", b.HasName(), tt.wantName)
			}
			if b.HasVendor() != tt.wantVendor {
				t.Errorf("HasVendor() = %v, want %v", b.HasVendor(), tt.wantVendor)
			}
		})
	}
}

func TestBoard_RejectsNonObject(t *testing.T) {
	t.Parallel()

	for _, input := range []string{`[1,2]`, `"board"`, `12`, `true`, `null`} {
		var b Board
		err := json.Unmarshal([]byte(input), &b)
		if err == nil {
			t.Errorf("Unmarshal(%s) expected error, got nil", input)
			continue
		}
		if !errors.Is(err, ErrNotObject) {
			t.Errorf("Unmarshal(%s) error = %v, want ErrNotObject", input, err)
		}
	}
}

func TestBoard_DuplicateKeyLastValueWins(t *testing.T) {
	t.Parallel()

	var b Board
	if err := json.Unmarshal([]byte(`{"name":"first","vendor":"v","name":"second"}`), &b); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if b.Name() != "second" {
		t.Errorf("Name() = %q, want %q", b.Name(), "second")
	}
	if diff := cmp.Diff([]string{"name", "vendor"}, b.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	b := New("Alpha", "Acme")
	out, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if want := `{"name":"Alpha","vendor":"Acme"}`; string(out) != want {
		t.Errorf("Marshal() = %s, want %s", out, want)
	}

	b.Set(FieldVendor, json.RawMessage(`"Zeta Corp"`))
	if b.Vendor() != "Zeta Corp" {
		t.Errorf("Vendor() after Set = %q, want %q", b.Vendor(), "Zeta Corp")
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Board
		want int
	}{
		{name: "vendor decides", a: New("Z", "Acme"), b: New("A", "Boards"), want: -1},
		{name: "name breaks vendor tie", a: New("Alpha", "Acme"), b: New("Zeta", "Acme"), want: -1},
		{name: "equal keys", a: New("X", "Acme"), b: New("X", "Acme"), want: 0},
		{name: "uppercase sorts before lowercase", a: New("x", "acme"), b: New("x", "Acme"), want: 1},
		{name: "byte-wise not locale", a: New("x", "Éclair"), b: New("x", "Zed"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
		})
	}
}
