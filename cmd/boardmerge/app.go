// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/boardmerge/boardmerge/internal/config"
)

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives the same App and writes only through its streams.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer
		logger *log.Logger
		clock  func() time.Time
		// configDir overrides the platform config directory when set.
		configDir string
		// tty reports whether stdout and stderr are terminals. It enables the
		// progress bar and the rendered issue catalog.
		tty bool
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
		Clock  func() time.Time
		// ConfigDir replaces the platform config directory.
		ConfigDir string
		// Terminal overrides terminal detection when non-nil.
		Terminal *bool
	}

	// rootFlagValues holds the persistent flags shared by every command.
	rootFlagValues struct {
		verbose    bool
		configPath string
		noColor    bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	tty := deps.Stdout == nil && deps.Stderr == nil &&
		term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
	if deps.Terminal != nil {
		tty = *deps.Terminal
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	return &App{
		Config:    deps.Config,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		logger:    newLogger(deps.Stderr),
		clock:     deps.Clock,
		configDir: deps.ConfigDir,
		tty:       tty,
	}, nil
}

// loadConfig loads the configuration selected by --config.
func (a *App) loadConfig(ctx context.Context, flags *rootFlagValues) (*config.Config, error) {
	return a.Config.Load(ctx, a.loadOptions(flags))
}

func (a *App) loadOptions(flags *rootFlagValues) config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: flags.configPath, ConfigDirPath: a.configDir}
}

// newLogger returns the stderr logger used for slog output. Timestamps are
// off because every line belongs to an interactive run.
func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          "boardmerge",
		Level:           log.InfoLevel,
		ReportTimestamp: false,
	})
}
