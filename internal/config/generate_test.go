// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func TestGenerateCUE_ContainsAllSections(t *testing.T) {
	t.Parallel()

	out := GenerateCUE(DefaultConfig())
	for _, want := range []string{
		`root: "boards"`,
		`output_dir: "merged"`,
		"max_file_size: 5242880",
		`debounce: "500ms"`,
		`color_scheme: "auto"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("GenerateCUE() missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateTOML_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Merge.IncludeHidden = true

	out, err := GenerateTOML(cfg)
	if err != nil {
		t.Fatalf("GenerateTOML() error: %v", err)
	}
	if !strings.Contains(out, "[merge]") {
		t.Errorf("GenerateTOML() missing [merge] table:\n%s", out)
	}

	var decoded Config
	if err := toml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("toml.Unmarshal() error: %v", err)
	}
	if diff := cmp.Diff(*cfg, decoded); diff != "" {
		t.Errorf("TOML round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateYAML_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.UI.ColorScheme = ColorSchemeLight

	out, err := GenerateYAML(cfg)
	if err != nil {
		t.Fatalf("GenerateYAML() error: %v", err)
	}
	if !strings.Contains(out, "color_scheme: light") {
		t.Errorf("GenerateYAML() output:\n%s", out)
	}

	var decoded Config
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("yaml.Unmarshal() error: %v", err)
	}
	if diff := cmp.Diff(*cfg, decoded); diff != "" {
		t.Errorf("YAML round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_Format(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{FormatCUE, FormatTOML, FormatYAML} {
		if valid, errs := format.IsValid(); !valid {
			t.Errorf("Format(%q).IsValid() = false: %v", format, errs)
		}
		out, err := Generate(DefaultConfig(), format)
		if err != nil || out == "" {
			t.Errorf("Generate(%q) = %q, %v", format, out, err)
		}
	}

	_, err := Generate(DefaultConfig(), "json")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Generate(json) error = %v, want ErrInvalidFormat", err)
	}
}
