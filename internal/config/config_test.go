// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/boardmerge/boardmerge/internal/issue"
	"github.com/boardmerge/boardmerge/internal/testutil"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	return testutil.WriteFile(t, dir, ConfigFileName+"."+ConfigFileExt, content)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Merge.Root != "boards" || cfg.Merge.OutputDir != "merged" {
		t.Errorf("Merge = %+v, want root boards, output merged", cfg.Merge)
	}
	if cfg.Merge.MaxFileSize != 5<<20 {
		t.Errorf("MaxFileSize = %d, want %d", cfg.Merge.MaxFileSize, 5<<20)
	}
	if cfg.Watch.Debounce != "500ms" {
		t.Errorf("Debounce = %q, want 500ms", cfg.Watch.Debounce)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %q, want auto", cfg.UI.ColorScheme)
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("DefaultConfig().IsValid() = false: %v", errs)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is Linux-specific")
	}

	xdg := t.TempDir()
	t.Cleanup(testutil.MustSetenv(t, "XDG_CONFIG_HOME", xdg))

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if want := filepath.Join(xdg, AppName); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}

	t.Cleanup(testutil.MustUnsetenv(t, "XDG_CONFIG_HOME"))
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))
	got, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}

	restore := SetConfigDirOverride("/custom/dir")
	if got, _ := ConfigDir(); got != "/custom/dir" {
		t.Errorf("ConfigDir() with override = %q", got)
	}
	restore()
	if got, _ := ConfigDir(); got != filepath.Join(home, ".config", AppName) {
		t.Errorf("ConfigDir() after restore = %q, want the XDG default", got)
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Cleanup(testutil.MustChdir(t, t.TempDir()))

	cfg, path, err := loadWithOptions(t.Context(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("loadWithOptions() error: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
merge: {
	root: "hardware"
	create_output_dir: true
	max_file_size: 1024
}
ui: color_scheme: "dark"
`)

	cfg, path, err := loadWithOptions(t.Context(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions() error: %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("resolved path = %q", path)
	}

	want := DefaultConfig()
	want.Merge.Root = "hardware"
	want.Merge.CreateOutputDir = true
	want.Merge.MaxFileSize = 1024
	want.UI.ColorScheme = ColorSchemeDark
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `merge: root: "from-file"`)
	t.Cleanup(testutil.MustSetenv(t, "BOARDMERGE_MERGE_ROOT", "from-env"))
	t.Cleanup(testutil.MustSetenv(t, "BOARDMERGE_UI_VERBOSE", "true"))
	t.Cleanup(testutil.MustSetenv(t, "BOARDMERGE_WATCH_DEBOUNCE", "2s"))

	cfg, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Merge.Root != "from-env" {
		t.Errorf("Root = %q, want from-env", cfg.Merge.Root)
	}
	if !cfg.UI.Verbose {
		t.Error("Verbose = false, want true")
	}
	if cfg.Watch.Debounce != "2s" {
		t.Errorf("Debounce = %q, want 2s", cfg.Watch.Debounce)
	}
}

func TestLoad_InvalidEnvironmentValue(t *testing.T) {
	t.Cleanup(testutil.MustSetenv(t, "BOARDMERGE_UI_COLOR_SCHEME", "neon"))

	_, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, ErrInvalidColorScheme) {
		t.Fatalf("Load() error = %v, want ErrInvalidColorScheme", err)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantSub string
	}{
		{name: "unknown field", content: `merge: colour: "red"`, wantSub: "merge.colour"},
		{name: "wrong type", content: `merge: include_hidden: "yes"`, wantSub: "merge.include_hidden"},
		{name: "bad color scheme", content: `ui: color_scheme: "neon"`, wantSub: "ui.color_scheme"},
		{name: "negative size", content: `merge: max_file_size: -1`, wantSub: "merge.max_file_size"},
		{name: "bad duration", content: `watch: debounce: "soon"`, wantSub: "watch.debounce"},
		{name: "blank root", content: `merge: root: "   "`, wantSub: "merge.root"},
		{name: "syntax error", content: `merge: {`, wantSub: "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *issue.ActionableError, got %T: %v", err, err)
			}
			if ae.Issue != issue.ConfigLoadFailedId {
				t.Errorf("Issue = %d, want ConfigLoadFailedId", ae.Issue)
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestLoad_CustomPath(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "custom.cue", `merge: output_dir: "out"`)

	cfg, resolved, err := loadWithOptions(t.Context(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("loadWithOptions() error: %v", err)
	}
	if resolved != path || cfg.Merge.OutputDir != "out" {
		t.Errorf("resolved = %q, OutputDir = %q", resolved, cfg.Merge.OutputDir)
	}

	_, err = NewProvider().Load(t.Context(), LoadOptions{ConfigFilePath: path + ".missing"})
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || !ae.HasSuggestions() {
		t.Errorf("Load() of missing file error = %v, want actionable error", err)
	}
}

func TestLoad_LocalFallback(t *testing.T) {
	cwd := t.TempDir()
	writeConfig(t, cwd, `merge: include_hidden: true`)
	t.Cleanup(testutil.MustChdir(t, cwd))

	cfg, path, err := loadWithOptions(t.Context(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("loadWithOptions() error: %v", err)
	}
	if path != "config.cue" || !cfg.Merge.IncludeHidden {
		t.Errorf("path = %q, IncludeHidden = %v", path, cfg.Merge.IncludeHidden)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	path, created, err := CreateDefaultConfig(dir)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error: %v", err)
	}
	if !created {
		t.Error("created = false on first call")
	}

	cfg, _, err := loadWithOptions(t.Context(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("generated file does not load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	if err := os.WriteFile(path, []byte(`ui: verbose: true`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, created, err := CreateDefaultConfig(dir); err != nil || created {
		t.Errorf("second call: created = %v, err = %v; want existing file kept", created, err)
	}
	if data, _ := os.ReadFile(path); string(data) != `ui: verbose: true` {
		t.Errorf("existing config was overwritten: %s", data)
	}
}
