// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern selects the files whose changes trigger a callback when
// Config.Patterns is empty.
const DefaultPattern = "**/*.json"

// defaultDebounce is the quiet period used when Config.Debounce is zero.
const defaultDebounce = 500 * time.Millisecond

var (
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid watch config")
	// ErrInvalidPattern is the sentinel error wrapped by InvalidPatternError.
	ErrInvalidPattern = errors.New("invalid glob pattern")
)

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// BaseDir is the root directory to watch. Empty means the working directory.
		BaseDir string

		// Patterns are doublestar globs, relative to BaseDir, selecting which
		// files trigger callbacks. Empty means DefaultPattern.
		Patterns []string

		// Ignore are additional doublestar globs that never trigger callbacks.
		// They are merged with the built-in ignores.
		Ignore []string

		// IgnoreDirs are directories (absolute or relative to the working
		// directory) that are neither watched nor reported, such as the
		// merge output directory. Entries equal to BaseDir or above it are
		// dropped; use Ignore to silence files written there.
		IgnoreDirs []string

		// IncludeHidden also watches dot-files and dot-directories.
		IncludeHidden bool

		// Debounce is the quiet period after the last event before OnChange
		// fires. Zero means 500ms; negative values are rejected by Validate.
		Debounce time.Duration

		// ClearScreen writes an ANSI clear sequence to Stdout before each callback.
		ClearScreen bool

		// OnChange receives the changed paths (relative to BaseDir, slash
		// separated, sorted). Errors are logged and watching continues.
		OnChange func(ctx context.Context, changed []string) error

		// Stdout receives the clear-screen sequence. Defaults to os.Stdout.
		Stdout io.Writer

		// Logger defaults to slog.Default().
		Logger *slog.Logger
	}

	// InvalidPatternError reports a glob that doublestar cannot parse.
	InvalidPatternError struct {
		Kind    string
		Pattern string
	}

	// InvalidConfigError collects every problem found by Config.Validate.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// Validate checks patterns and the debounce duration.
func (c Config) Validate() error {
	var errs []error
	for _, pat := range c.Patterns {
		if !doublestar.ValidatePattern(pat) {
			errs = append(errs, &InvalidPatternError{Kind: "watch", Pattern: pat})
		}
	}
	for _, pat := range c.Ignore {
		if !doublestar.ValidatePattern(pat) {
			errs = append(errs, &InvalidPatternError{Kind: "ignore", Pattern: pat})
		}
	}
	if c.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce %s must not be negative", c.Debounce))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid %s pattern %q", e.Kind, e.Pattern)
}

// Unwrap returns ErrInvalidPattern for errors.Is() compatibility.
func (e *InvalidPatternError) Unwrap() error { return ErrInvalidPattern }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid watch config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid watch config: %d field errors", len(e.FieldErrors))
}

// Unwrap exposes ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
