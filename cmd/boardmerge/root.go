// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for boardmerge.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/boardmerge/boardmerge/internal/config"
	"github.com/boardmerge/boardmerge/internal/issue"
	"github.com/boardmerge/boardmerge/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

const welcomeMessage = "A CLI application to combine all board lists inside the JSON files into a single JSON output."

// rootState is shared by the handlers of one invocation: the persistent flag
// values and the configuration loaded before any subcommand runs.
type rootState struct {
	flags  rootFlagValues
	cfg    *config.Config
	cfgErr error
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	state := &rootState{}

	rootCmd := &cobra.Command{
		Use:   "boardmerge",
		Short: "Combine board lists from JSON files into a single document",
		Long: TitleStyle.Render("boardmerge") + SubtitleStyle.Render(" - "+welcomeMessage) + `

boardmerge searches a directory recursively for *.json files, collects every
record of their "boards" arrays, sorts them by vendor and then by name, and
writes the result with a _metadata summary to a timestamped file.

` + SubtitleStyle.Render("Examples:") + `
  boardmerge merge                         Merge the 'boards' folder into 'merged'
  boardmerge merge --file-path data        Merge another directory
  boardmerge merge --watch                 Merge again whenever a JSON file changes
  boardmerge config show                   Show current configuration`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return state.initialize(cmd.Context(), app)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			printWelcome(app)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&state.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&state.flags.configPath, "config", "", "config file (default is $HOME/.config/boardmerge/config.cue)")
	rootCmd.PersistentFlags().BoolVar(&state.flags.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newMergeCommand(app, state))
	rootCmd.AddCommand(newConfigCommand(app, state))

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	return rootCmd
}

// initialize loads the configuration and applies the persistent flags. A
// broken config file is reported and defaults are used instead; commands
// that need the file itself inspect cfgErr.
func (s *rootState) initialize(ctx context.Context, app *App) error {
	if s.flags.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		app.logger.SetColorProfile(termenv.Ascii)
	}

	cfg, err := app.loadConfig(ctx, &s.flags)
	if err != nil {
		s.cfgErr = err
		fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, s.flags.verbose))
		cfg = config.DefaultConfig()
	}
	s.cfg = cfg

	if !s.flags.verbose {
		s.flags.verbose = cfg.UI.Verbose
	}
	if s.flags.verbose {
		app.logger.SetLevel(log.DebugLevel)
	}
	return nil
}

// glamourStyle maps the configured color scheme to a glamour style name.
func (s *rootState) glamourStyle() string {
	if s.flags.noColor {
		return "notty"
	}
	if s.cfg == nil {
		return string(config.ColorSchemeAuto)
	}
	return string(s.cfg.UI.ColorScheme)
}

func printWelcome(app *App) {
	banner := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(ColorWarning).
		Padding(1, 1)

	fmt.Fprintln(app.stdout, banner.Render(welcomeMessage))
	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, " Use the %s command to combine json files from %s folder.\n",
		PathStyle.Render("merge"), PathStyle.Render("'"+config.DefaultRoot.String()+"'"))
	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, " %s argument can be used to specify another directory.\n", PathStyle.Render("--file-path"))
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the command tree. It is called
// by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(types.ExitFailure))
	}
	slog.SetDefault(slog.New(app.logger))

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// formatErrorForDisplay formats an error for user display. Actionable errors
// use their own layout; verbose mode shows the full cause chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
