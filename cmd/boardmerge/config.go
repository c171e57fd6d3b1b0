// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/boardmerge/boardmerge/internal/config"
	"github.com/boardmerge/boardmerge/internal/issue"
	"github.com/boardmerge/boardmerge/pkg/types"
)

// newConfigCommand creates the `boardmerge config` command tree.
func newConfigCommand(app *App, state *rootState) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage boardmerge configuration",
		Long: `Manage boardmerge configuration.

Configuration is stored in:
  - Linux: ~/.config/boardmerge/config.cue
  - macOS: ~/Library/Application Support/boardmerge/config.cue
  - Windows: %APPDATA%\boardmerge\config.cue

A config.cue in the working directory is used when the platform file is
missing. Every setting can be overridden with a BOARDMERGE_ environment
variable, e.g. BOARDMERGE_MERGE_ROOT=data.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := showConfig(app, state); err != nil {
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
				return err
			}
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return showConfigPath(app, state)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(app)
		},
	})

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			out, err := config.Generate(state.cfg, config.Format(format))
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, out)
			return nil
		},
	}
	dumpCmd.Flags().StringVarP(&format, "format", "f", string(config.FormatCUE), "output format (cue, toml, yaml)")
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

func showConfig(app *App, state *rootState) error {
	if state.cfgErr != nil {
		if app.tty {
			if rendered, err := issue.Get(issue.ConfigLoadFailedId).Render(state.glamourStyle()); err == nil {
				fmt.Fprint(app.stderr, rendered)
			}
		}
		return &ExitError{Code: types.ExitFailure, Err: state.cfgErr}
	}

	cfg := state.cfg
	keyStyle := PathStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	path, err := config.ResolvePath(app.loadOptions(&state.flags))
	if err == nil && path != "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("merge"))
	fmt.Fprintf(app.stdout, "  root: %s\n", valueStyle.Render(cfg.Merge.Root.String()))
	fmt.Fprintf(app.stdout, "  output_dir: %s\n", valueStyle.Render(cfg.Merge.OutputDir.String()))
	fmt.Fprintf(app.stdout, "  create_output_dir: %s\n", valueStyle.Render(strconv.FormatBool(cfg.Merge.CreateOutputDir)))
	fmt.Fprintf(app.stdout, "  include_hidden: %s\n", valueStyle.Render(strconv.FormatBool(cfg.Merge.IncludeHidden)))
	fmt.Fprintf(app.stdout, "  max_file_size: %s\n", valueStyle.Render(strconv.FormatInt(int64(cfg.Merge.MaxFileSize), 10)))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("watch"))
	fmt.Fprintf(app.stdout, "  debounce: %s\n", valueStyle.Render(cfg.Watch.Debounce.String()))
	fmt.Fprintf(app.stdout, "  clear_screen: %s\n", valueStyle.Render(strconv.FormatBool(cfg.Watch.ClearScreen)))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(app.stdout, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(app.stdout, "  verbose: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))
	return nil
}

func showConfigPath(app *App, state *rootState) error {
	cfgDir := app.configDir
	if cfgDir == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			return err
		}
		cfgDir = dir
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))

	if path, err := config.ResolvePath(app.loadOptions(&state.flags)); err == nil && path != "" {
		fmt.Fprintf(app.stdout, "Active file: %s\n", path)
	}
	return nil
}

func initConfig(app *App) error {
	path, created, err := config.CreateDefaultConfig(app.configDir)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", warningIcon, path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", successIcon, path)
	return nil
}
