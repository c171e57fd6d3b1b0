// SPDX-License-Identifier: MPL-2.0

package board

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	// FieldName is the record key holding the board name.
	FieldName = "name"
	// FieldVendor is the record key holding the board vendor.
	FieldVendor = "vendor"
)

// ErrNotObject is the sentinel error wrapped by NotObjectError.
var ErrNotObject = errors.New("board record is not a JSON object")

type (
	// Board is one hardware descriptor entry. Name and Vendor are the only
	// interpreted fields; the full key set is preserved in source order.
	Board struct {
		// Source is the file the record was read from. It is never serialized.
		Source string

		name      string
		vendor    string
		hasName   bool
		hasVendor bool
		fields    *orderedmap.OrderedMap[string, json.RawMessage]
	}

	// NotObjectError is returned when a record is any JSON value other than an object.
	NotObjectError struct {
		// Found is the leading byte of the rejected value.
		Found byte
	}
)

// Error implements the error interface.
func (e *NotObjectError) Error() string {
	return fmt.Sprintf("board record must be a JSON object, found %s", describeLeading(e.Found))
}

// Unwrap returns ErrNotObject for errors.Is() compatibility.
func (e *NotObjectError) Unwrap() error { return ErrNotObject }

// New creates a Board holding only a name and a vendor.
func New(name, vendor string) Board {
	var b Board
	b.Set(FieldName, mustString(name))
	b.Set(FieldVendor, mustString(vendor))
	return b
}

// Name returns the board name. It is empty when HasName is false.
func (b Board) Name() string { return b.name }

// Vendor returns the board vendor. It is empty when HasVendor is false.
func (b Board) Vendor() string { return b.vendor }

// HasName reports whether the record carries a string "name" field.
func (b Board) HasName() bool { return b.hasName }

// HasVendor reports whether the record carries a string "vendor" field.
func (b Board) HasVendor() bool { return b.hasVendor }

// Field returns the raw JSON value stored under key.
func (b Board) Field(key string) (json.RawMessage, bool) {
	if b.fields == nil {
		return nil, false
	}
	return b.fields.Get(key)
}

// Keys returns the record keys in source order.
func (b Board) Keys() []string {
	if b.fields == nil {
		return nil
	}
	keys := make([]string, 0, b.fields.Len())
	for pair := b.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Set stores a raw JSON value under key. An existing key keeps its position.
func (b *Board) Set(key string, value json.RawMessage) {
	if b.fields == nil {
		b.fields = orderedmap.New[string, json.RawMessage]()
	}
	b.fields.Set(key, value)
	b.refresh(key, value)
}

// UnmarshalJSON decodes a JSON object, recording key order and raw values.
// A "name" or "vendor" that is not a JSON string counts as absent.
func (b *Board) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		var lead byte
		if len(trimmed) > 0 {
			lead = trimmed[0]
		}
		return &NotObjectError{Found: lead}
	}

	fields := orderedmap.New[string, json.RawMessage]()
	if err := fields.UnmarshalJSON(trimmed); err != nil {
		return fmt.Errorf("decode board record: %w", err)
	}

	*b = Board{Source: b.Source, fields: fields}
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		b.refresh(pair.Key, pair.Value)
	}
	return nil
}

// MarshalJSON writes the record keys in source order with their raw values.
func (b Board) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if b.fields != nil {
		first := true
		for pair := b.fields.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false

			key, err := encodeString(pair.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if len(pair.Value) == 0 {
				buf.WriteString("null")
				continue
			}
			buf.Write(pair.Value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Compare orders boards by vendor, then name, using byte-wise comparison.
func Compare(a, b Board) int {
	if c := strings.Compare(a.vendor, b.vendor); c != 0 {
		return c
	}
	return strings.Compare(a.name, b.name)
}

// refresh keeps the cached name/vendor in sync with the stored raw value.
func (b *Board) refresh(key string, value json.RawMessage) {
	switch key {
	case FieldName:
		b.name, b.hasName = decodeString(value)
	case FieldVendor:
		b.vendor, b.hasVendor = decodeString(value)
	}
}

func decodeString(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}

// encodeString encodes s as a JSON string without HTML escaping.
func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func mustString(s string) json.RawMessage {
	raw, err := encodeString(s)
	if err != nil {
		// Encoding a Go string cannot fail.
		panic(err)
	}
	return raw
}

func describeLeading(c byte) string {
	switch c {
	case '[':
		return "an array"
	case '"':
		return "a string"
	case 't', 'f':
		return "a boolean"
	case 'n':
		return "null"
	case 0:
		return "nothing"
	default:
		return "a number"
	}
}
