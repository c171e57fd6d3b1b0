// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/boardmerge/boardmerge/internal/config"
	"github.com/boardmerge/boardmerge/internal/merge"
	"github.com/boardmerge/boardmerge/internal/output"
	"github.com/boardmerge/boardmerge/internal/watch"
	"github.com/boardmerge/boardmerge/pkg/fspath"
	"github.com/boardmerge/boardmerge/pkg/types"
)

type (
	// mergeFlagValues holds the raw flag values of `boardmerge merge`.
	mergeFlagValues struct {
		filePath        string
		outputDir       string
		createOutputDir bool
		includeHidden   bool
		print           bool
		watch           bool
		clearScreen     bool
		debounce        time.Duration
	}

	// mergeOptions is the effective configuration of one merge invocation:
	// config file values overridden by explicitly set flags.
	mergeOptions struct {
		Root            string
		OutputDir       string
		CreateOutputDir bool
		IncludeHidden   bool
		MaxFileSize     int64
		Print           bool
		Verbose         bool
		Debounce        time.Duration
		ClearScreen     bool
	}
)

func newMergeCommand(app *App, state *rootState) *cobra.Command {
	flags := &mergeFlagValues{}

	mergeCmd := &cobra.Command{
		Use:   "merge",
		Short: "Combine the boards of every JSON file in a directory",
		Long: `Combine the boards of every JSON file in a directory into a single output.

The directory given with --file-path (default 'boards') is searched
recursively for *.json files. A file contributes the records of its
top-level "boards" array; files without boards are ignored and files that
cannot be read or parsed are skipped and reported. Records are sorted by
vendor and then by name, and written to 'merged/boards_data_merged-<unix>.json'.

An example input file:

  {
    "boards": [
      {
        "name": "D4-200S",
        "vendor": "Boards R Us",
        "core": "Cortex-M4",
        "has_wifi": false
      }
    ]
  }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := resolveMergeOptions(cmd.Flags().Changed, flags, state)
			if err != nil {
				return err
			}
			if flags.watch {
				err = runWatchMode(cmd.Context(), app, state, opts)
			} else {
				err = runMerge(cmd.Context(), app, state, opts)
			}
			var exitErr *ExitError
			if errors.As(err, &exitErr) {
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	mergeCmd.Flags().StringVar(&flags.filePath, "file-path", config.DefaultRoot.String(), "directory searched recursively for JSON files")
	mergeCmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", config.DefaultOutputDir.String(), "directory the merged file is written to")
	mergeCmd.Flags().BoolVar(&flags.createOutputDir, "create-output-dir", false, "create the output directory when it is missing")
	mergeCmd.Flags().BoolVar(&flags.includeHidden, "include-hidden", false, "also merge files in hidden directories")
	mergeCmd.Flags().BoolVarP(&flags.print, "print", "p", false, "print the merged document to stdout")
	mergeCmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "merge again whenever a JSON file changes")
	mergeCmd.Flags().BoolVar(&flags.clearScreen, "clear-screen", false, "clear the terminal before each watch run")
	mergeCmd.Flags().DurationVar(&flags.debounce, "debounce", 500*time.Millisecond, "quiet period before a watch run")

	return mergeCmd
}

// resolveMergeOptions overlays explicitly set flags on the loaded configuration.
func resolveMergeOptions(changed func(string) bool, flags *mergeFlagValues, state *rootState) (mergeOptions, error) {
	cfg := state.cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	debounce, err := cfg.Watch.Debounce.Duration()
	if err != nil {
		return mergeOptions{}, err
	}

	opts := mergeOptions{
		Root:            cfg.Merge.Root.String(),
		OutputDir:       cfg.Merge.OutputDir.String(),
		CreateOutputDir: cfg.Merge.CreateOutputDir,
		IncludeHidden:   cfg.Merge.IncludeHidden,
		MaxFileSize:     int64(cfg.Merge.MaxFileSize),
		Print:           flags.print,
		Verbose:         state.flags.verbose,
		Debounce:        debounce,
		ClearScreen:     cfg.Watch.ClearScreen,
	}
	if changed("file-path") {
		opts.Root = flags.filePath
	}
	if changed("output-dir") {
		opts.OutputDir = flags.outputDir
	}
	if changed("create-output-dir") {
		opts.CreateOutputDir = flags.createOutputDir
	}
	if changed("include-hidden") {
		opts.IncludeHidden = flags.includeHidden
	}
	if changed("clear-screen") {
		opts.ClearScreen = flags.clearScreen
	}
	if changed("debounce") {
		if flags.debounce <= 0 {
			return mergeOptions{}, fmt.Errorf("--debounce must be positive, got %s", flags.debounce)
		}
		opts.Debounce = flags.debounce
	}
	// A zero size in the config file means "no limit"; merge.Run uses a
	// negative value for that.
	if opts.MaxFileSize == 0 {
		opts.MaxFileSize = -1
	}
	return opts, nil
}

// runMerge performs one merge and renders its outcome. Fatal failures are
// rendered here and returned as an *ExitError.
func runMerge(ctx context.Context, app *App, state *rootState, opts mergeOptions) error {
	observer := newProgressObserver(app.stderr, app.tty)
	res, err := merge.Run(ctx, merge.Request{
		Root: opts.Root,
		Discover: merge.DiscoverOptions{
			IncludeHidden: opts.IncludeHidden,
			ExcludeDirs:   []string{opts.OutputDir},
		},
		MaxFileSize: opts.MaxFileSize,
		Observer:    observer,
		Sink: &output.Writer{
			Dir:       opts.OutputDir,
			CreateDir: opts.CreateOutputDir,
			Clock:     app.clock,
		},
		Logger: slog.New(app.logger),
	})
	observer.finish()
	renderDiagnostics(app.stderr, res.Diagnostics, opts.Verbose)

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		if kind, ok := merge.KindOf(err); ok && kind != merge.KindInvalidDirectory {
			renderSummary(app.stdout, res.Summary)
		}
		ae := actionableMergeError(err, opts.Root, opts.OutputDir)
		renderFatal(app.stderr, ae, opts.Verbose, app.tty, state.glamourStyle())
		return &ExitError{Code: types.ExitFailure, Err: ae}
	}

	renderSummary(app.stdout, res.Summary)
	if opts.Print {
		fmt.Fprintf(app.stdout, "\n%s\n", TitleStyle.Render("The combined output:"))
		if err := output.Encode(app.stdout, res.Document); err != nil {
			return err
		}
	}
	renderSaved(app.stdout, res.OutputPath)
	return nil
}

// runWatchMode merges once, then merges again after every debounced change
// until ctx is canceled. Failed runs are reported and watching continues;
// only an invalid root stops watch mode before it starts.
func runWatchMode(ctx context.Context, app *App, state *rootState, opts mergeOptions) error {
	fmt.Fprintf(app.stdout, "%s Watch mode: initial merge of '%s'\n", arrowIcon, opts.Root)
	if err := runMerge(ctx, app, state, opts); err != nil {
		if kind, ok := merge.KindOf(err); ok && kind == merge.KindInvalidDirectory {
			return err
		}
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			return err
		}
	}

	var ignore []string
	if fspath.SameDir(types.FilesystemPath(opts.Root), types.FilesystemPath(opts.OutputDir)) {
		ignore = []string{merge.GeneratedFilePattern}
	}
	w, err := watch.New(watch.Config{
		BaseDir:       opts.Root,
		Ignore:        ignore,
		IgnoreDirs:    []string{opts.OutputDir},
		IncludeHidden: opts.IncludeHidden,
		Debounce:      opts.Debounce,
		ClearScreen:   opts.ClearScreen,
		Stdout:        app.stdout,
		Logger:        slog.New(app.logger),
		OnChange: func(ctx context.Context, changed []string) error {
			fmt.Fprintf(app.stdout, "%s Detected %d change(s). Merging again...\n", arrowIcon, len(changed))
			if err := runMerge(ctx, app, state, opts); err != nil {
				var exitErr *ExitError
				if !errors.As(err, &exitErr) {
					return err
				}
			}
			fmt.Fprintf(app.stdout, "\n%s Watching for changes...\n\n", arrowIcon)
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Fprintf(app.stdout, "\n%s Watching for changes (Ctrl+C to stop)...\n\n", arrowIcon)
	return w.Run(ctx)
}
