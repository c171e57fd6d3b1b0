// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidByteSize is returned when a ByteSize value is negative.
	ErrInvalidByteSize = errors.New("invalid byte size")
	// ErrInvalidDuration is the sentinel error wrapped by InvalidDurationError.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrInvalidDirPath is returned when a directory setting is whitespace-only.
	ErrInvalidDirPath = errors.New("invalid directory path")
	// ErrInvalidMergeConfig is the sentinel error wrapped by InvalidMergeConfigError.
	ErrInvalidMergeConfig = errors.New("invalid merge config")
	// ErrInvalidWatchConfig is the sentinel error wrapped by InvalidWatchConfigError.
	ErrInvalidWatchConfig = errors.New("invalid watch config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// ByteSize is a size in bytes. Zero disables size limits.
	ByteSize int64

	// InvalidByteSizeError is returned when a ByteSize value is negative.
	InvalidByteSizeError struct {
		Value ByteSize
	}

	// DurationText is a Go duration string such as "500ms" or "1m30s".
	DurationText string

	// InvalidDurationError is returned when a DurationText does not parse
	// or is not positive.
	InvalidDurationError struct {
		Value DurationText
		Cause error
	}

	// DirPath is a directory setting. It must not be empty or whitespace-only.
	DirPath string

	// InvalidDirPathError is returned when a DirPath value is blank.
	InvalidDirPathError struct {
		Field string
		Value DirPath
	}

	// InvalidMergeConfigError collects field errors of a MergeConfig.
	InvalidMergeConfigError struct {
		FieldErrors []error
	}

	// InvalidWatchConfigError collects field errors of a WatchConfig.
	InvalidWatchConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError collects field errors of a UIConfig.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It unwraps to ErrInvalidConfig and to every section error it collects.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Merge configures the merge pipeline.
		Merge MergeConfig `json:"merge" mapstructure:"merge" toml:"merge" yaml:"merge"`
		// Watch configures `merge --watch`.
		Watch WatchConfig `json:"watch" mapstructure:"watch" toml:"watch" yaml:"watch"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui" yaml:"ui"`
	}

	// MergeConfig configures discovery, extraction and output.
	MergeConfig struct {
		Root            DirPath  `json:"root" mapstructure:"root" toml:"root" yaml:"root"`
		OutputDir       DirPath  `json:"output_dir" mapstructure:"output_dir" toml:"output_dir" yaml:"output_dir"`
		CreateOutputDir bool     `json:"create_output_dir" mapstructure:"create_output_dir" toml:"create_output_dir" yaml:"create_output_dir"`
		IncludeHidden   bool     `json:"include_hidden" mapstructure:"include_hidden" toml:"include_hidden" yaml:"include_hidden"`
		MaxFileSize     ByteSize `json:"max_file_size" mapstructure:"max_file_size" toml:"max_file_size" yaml:"max_file_size"`
	}

	// WatchConfig configures watch mode.
	WatchConfig struct {
		Debounce    DurationText `json:"debounce" mapstructure:"debounce" toml:"debounce" yaml:"debounce"`
		ClearScreen bool         `json:"clear_screen" mapstructure:"clear_screen" toml:"clear_screen" yaml:"clear_screen"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme" yaml:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose" toml:"verbose" yaml:"verbose"`
	}
)

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// IsValid returns whether the ByteSize is non-negative.
func (b ByteSize) IsValid() (bool, []error) {
	if b < 0 {
		return false, []error{&InvalidByteSizeError{Value: b}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidByteSizeError) Error() string {
	return fmt.Sprintf("invalid byte size %d: must be >= 0", int64(e.Value))
}

// Unwrap returns ErrInvalidByteSize for errors.Is() compatibility.
func (e *InvalidByteSizeError) Unwrap() error { return ErrInvalidByteSize }

// String returns the duration text.
func (d DurationText) String() string { return string(d) }

// Duration parses the text. Callers should check IsValid first.
func (d DurationText) Duration() (time.Duration, error) {
	parsed, err := time.ParseDuration(string(d))
	if err != nil {
		return 0, &InvalidDurationError{Value: d, Cause: err}
	}
	if parsed <= 0 {
		return 0, &InvalidDurationError{Value: d}
	}
	return parsed, nil
}

// IsValid returns whether the text is a positive Go duration.
func (d DurationText) IsValid() (bool, []error) {
	if _, err := d.Duration(); err != nil {
		return false, []error{err}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidDurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid duration %q: %v", e.Value, e.Cause)
	}
	return fmt.Sprintf("invalid duration %q: must be positive", e.Value)
}

// Unwrap returns ErrInvalidDuration for errors.Is() compatibility.
func (e *InvalidDurationError) Unwrap() error { return ErrInvalidDuration }

// String returns the path.
func (p DirPath) String() string { return string(p) }

// validate reports blank values; field names the setting in the error.
func (p DirPath) validate(field string) []error {
	if strings.TrimSpace(string(p)) == "" {
		return []error{&InvalidDirPathError{Field: field, Value: p}}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidDirPathError) Error() string {
	return fmt.Sprintf("invalid %s %q: must be non-empty", e.Field, e.Value)
}

// Unwrap returns ErrInvalidDirPath for errors.Is() compatibility.
func (e *InvalidDirPathError) Unwrap() error { return ErrInvalidDirPath }

// IsValid returns whether all merge settings are valid.
func (c MergeConfig) IsValid() (bool, []error) {
	var errs []error
	errs = append(errs, c.Root.validate("merge.root")...)
	errs = append(errs, c.OutputDir.validate("merge.output_dir")...)
	if valid, fieldErrs := c.MaxFileSize.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidMergeConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidMergeConfigError) Error() string {
	return fmt.Sprintf("invalid merge config: %s", joinErrors(e.FieldErrors))
}

// Unwrap exposes ErrInvalidMergeConfig followed by the field errors to errors.Is.
func (e *InvalidMergeConfigError) Unwrap() []error {
	return append([]error{ErrInvalidMergeConfig}, e.FieldErrors...)
}

// IsValid returns whether all watch settings are valid.
func (c WatchConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.Debounce.IsValid(); !valid {
		return false, []error{&InvalidWatchConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidWatchConfigError) Error() string {
	return fmt.Sprintf("invalid watch config: %s", joinErrors(e.FieldErrors))
}

// Unwrap exposes ErrInvalidWatchConfig followed by the field errors to errors.Is.
func (e *InvalidWatchConfigError) Unwrap() []error {
	return append([]error{ErrInvalidWatchConfig}, e.FieldErrors...)
}

// IsValid returns whether all UI settings are valid.
func (c UIConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		return false, []error{&InvalidUIConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %s", joinErrors(e.FieldErrors))
}

// Unwrap exposes ErrInvalidUIConfig followed by the field errors to errors.Is.
func (e *InvalidUIConfigError) Unwrap() []error {
	return append([]error{ErrInvalidUIConfig}, e.FieldErrors...)
}

// IsValid returns whether the Config is valid.
// It delegates to MergeConfig, WatchConfig and UIConfig.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Merge.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Watch.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", joinErrors(e.FieldErrors))
}

// Unwrap exposes ErrInvalidConfig followed by the field errors to errors.Is.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
