// SPDX-License-Identifier: MPL-2.0

package config

import (
	"reflect"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// These tests keep the Go struct JSON tags and the embedded CUE schema in
// step; a field added on one side only would otherwise be silently ignored
// or rejected when loading config.cue.

func cueFieldNames(t *testing.T, def string) map[string]bool {
	t.Helper()

	ctx := cuecontext.New()
	schema := ctx.CompileString(configSchema)
	if schema.Err() != nil {
		t.Fatalf("failed to compile schema: %v", schema.Err())
	}
	val := schema.LookupPath(cue.ParsePath(def))
	if !val.Exists() {
		t.Fatalf("definition %s not found in schema", def)
	}

	iter, err := val.Fields(cue.Definitions(false), cue.Optional(true))
	if err != nil {
		t.Fatalf("failed to iterate CUE fields: %v", err)
	}

	fields := make(map[string]bool)
	for iter.Next() {
		sel := iter.Selector()
		if sel.LabelType().IsHidden() || sel.IsDefinition() {
			continue
		}
		fields[strings.TrimSuffix(sel.String(), "?")] = true
	}
	return fields
}

func goJSONFieldNames(typ reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := range typ.NumField() {
		field := typ.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if !field.IsExported() || name == "" || name == "-" {
			continue
		}
		fields[name] = true
	}
	return fields
}

func TestSchemaSync(t *testing.T) {
	t.Parallel()

	tests := []struct {
		def string
		typ reflect.Type
	}{
		{def: "#Config", typ: reflect.TypeFor[Config]()},
		{def: "#MergeConfig", typ: reflect.TypeFor[MergeConfig]()},
		{def: "#WatchConfig", typ: reflect.TypeFor[WatchConfig]()},
		{def: "#UIConfig", typ: reflect.TypeFor[UIConfig]()},
	}

	for _, tt := range tests {
		t.Run(tt.def, func(t *testing.T) {
			t.Parallel()

			cueFields := cueFieldNames(t, tt.def)
			goFields := goJSONFieldNames(tt.typ)
			for name := range cueFields {
				if !goFields[name] {
					t.Errorf("CUE field %q has no Go JSON tag in %s", name, tt.typ.Name())
				}
			}
			for name := range goFields {
				if !cueFields[name] {
					t.Errorf("Go JSON tag %q of %s is missing from %s", name, tt.typ.Name(), tt.def)
				}
			}
		})
	}
}
