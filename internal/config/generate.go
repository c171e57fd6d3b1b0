// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// FormatCUE renders configuration in the native config.cue format.
	FormatCUE Format = "cue"
	// FormatTOML renders configuration as TOML.
	FormatTOML Format = "toml"
	// FormatYAML renders configuration as YAML.
	FormatYAML Format = "yaml"
)

// ErrInvalidFormat is returned when a Format value is not recognized.
var ErrInvalidFormat = errors.New("invalid format")

type (
	// Format names an output format for rendered configuration.
	Format string

	// InvalidFormatError is returned when a Format value is not recognized.
	InvalidFormatError struct {
		Value Format
	}
)

// IsValid returns whether the Format is supported.
func (f Format) IsValid() (bool, []error) {
	switch f {
	case FormatCUE, FormatTOML, FormatYAML:
		return true, nil
	default:
		return false, []error{&InvalidFormatError{Value: f}}
	}
}

// Error implements the error interface.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format %q (valid: cue, toml, yaml)", e.Value)
}

// Unwrap returns ErrInvalidFormat for errors.Is() compatibility.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// Generate renders cfg in the requested format.
func Generate(cfg *Config, format Format) (string, error) {
	switch format {
	case FormatCUE:
		return GenerateCUE(cfg), nil
	case FormatTOML:
		return GenerateTOML(cfg)
	case FormatYAML:
		return GenerateYAML(cfg)
	default:
		return "", &InvalidFormatError{Value: format}
	}
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// boardmerge configuration file\n")
	sb.WriteString("// Every field is optional; delete a line to fall back to the default.\n\n")

	sb.WriteString("merge: {\n")
	fmt.Fprintf(&sb, "\troot: %q\n", cfg.Merge.Root)
	fmt.Fprintf(&sb, "\toutput_dir: %q\n", cfg.Merge.OutputDir)
	fmt.Fprintf(&sb, "\tcreate_output_dir: %v\n", cfg.Merge.CreateOutputDir)
	fmt.Fprintf(&sb, "\tinclude_hidden: %v\n", cfg.Merge.IncludeHidden)
	fmt.Fprintf(&sb, "\tmax_file_size: %d\n", int64(cfg.Merge.MaxFileSize))
	sb.WriteString("}\n")

	sb.WriteString("\nwatch: {\n")
	fmt.Fprintf(&sb, "\tdebounce: %q\n", cfg.Watch.Debounce)
	fmt.Fprintf(&sb, "\tclear_screen: %v\n", cfg.Watch.ClearScreen)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}

// GenerateTOML renders cfg as TOML.
func GenerateTOML(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config as TOML: %w", err)
	}
	return string(data), nil
}

// GenerateYAML renders cfg as YAML.
func GenerateYAML(cfg *Config) (string, error) {
	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode config as YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode config as YAML: %w", err)
	}
	return sb.String(), nil
}
