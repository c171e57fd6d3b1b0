// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// clearSequence clears the terminal and homes the cursor.
const clearSequence = "\033[2J\033[H"

// ErrAlreadyRunning is returned by a second call to Watcher.Run.
var ErrAlreadyRunning = errors.New("watch: Run called more than once")

// Watcher fires a debounced callback when matching files change under its
// base directory. Run must be called exactly once.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	filter   filter
	baseDir  string
	stdout   io.Writer
	logger   *slog.Logger
	debounce *debouncer
	started  atomic.Bool
}

// New validates cfg, resolves the base directory and registers every
// non-ignored directory below it.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	ignoreDirs := make([]string, 0, len(cfg.IgnoreDirs))
	for _, dir := range cfg.IgnoreDirs {
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			return nil, fmt.Errorf("watch: resolve ignored directory %q: %w", dir, absErr)
		}
		// A directory holding the base would silence every event.
		if within(absBase, abs) {
			continue
		}
		ignoreDirs = append(ignoreDirs, abs)
	}

	if cfg.Debounce == 0 {
		cfg.Debounce = defaultDebounce
	}
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:     cfg,
		fsw:     fsw,
		filter:  newFilter(cfg, ignoreDirs),
		baseDir: absBase,
		stdout:  stdout,
		logger:  logger.With("component", "watch"),
	}
	if err := w.addDirectories(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			w.logger.Warn("close after init failure", "error", closeErr)
		}
		return nil, err
	}
	return w, nil
}

// BaseDir returns the absolute directory being watched.
func (w *Watcher) BaseDir() string { return w.baseDir }

// Run processes filesystem events until ctx is canceled. It returns nil on
// cancellation and an error when the underlying watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	w.debounce = newDebouncer(w.cfg.Debounce, func(changed []string) {
		w.fire(ctx, changed)
	}, func() {
		w.logger.Info("previous run still in progress, retrying after debounce")
	})
	defer func() {
		w.debounce.stop()
		if closeErr := w.fsw.Close(); closeErr != nil {
			w.logger.Warn("close fsnotify", "error", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			w.handle(evt)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "error", err)
		}
	}
}

func (w *Watcher) handle(evt fsnotify.Event) {
	rel := w.relative(evt.Name)

	// New directories may hold board files; extend the watch before filtering.
	if evt.Has(fsnotify.Create) {
		w.maybeAddDir(evt.Name, rel)
	}
	if !w.filter.reports(evt.Name, rel) {
		return
	}
	w.logger.Debug("change detected", "path", rel, "op", evt.Op.String())
	w.debounce.add(rel)
}

func (w *Watcher) fire(ctx context.Context, changed []string) {
	if ctx.Err() != nil {
		return
	}
	if w.cfg.ClearScreen {
		fmt.Fprint(w.stdout, clearSequence)
	}
	if w.cfg.OnChange == nil {
		return
	}
	if err := w.cfg.OnChange(ctx, changed); err != nil {
		w.logger.Error("change handler failed", "error", err, "changed", len(changed))
	}
}

func (w *Watcher) relative(path string) string {
	rel, err := filepath.Rel(w.baseDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func (w *Watcher) addDirectories() error {
	walkErr := filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("skipping inaccessible path", "path", path, "error", err)
			return nil //nolint:nilerr // unreadable subtrees are not watched
		}
		if !d.IsDir() {
			return nil
		}
		if w.filter.skipDir(path, w.relative(path)) {
			return filepath.SkipDir
		}
		if addErr := w.fsw.Add(path); addErr != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, addErr)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk directory tree: %w", walkErr)
	}
	return nil
}

func (w *Watcher) maybeAddDir(path, rel string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if w.filter.skipDir(path, rel) {
		return
	}
	if addErr := w.fsw.Add(path); addErr != nil {
		w.logger.Warn("add new directory", "path", path, "error", addErr)
	}
}
