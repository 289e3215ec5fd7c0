package theme

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a Watcher waits after the last CSS event in the
// theme directory before rereading the theme.
const DefaultSettle = 150 * time.Millisecond

// Watcher reloads a user theme when any CSS file in its directory changes,
// so edits to imported partials apply too. Bundled themes are not watched.
type Watcher struct {
	theme    *Theme
	onChange func(css string)
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher creates a watcher for theme. onChange runs on the watcher
// goroutine; GTK callers must hop back to the main loop themselves.
func NewWatcher(theme *Theme, onChange func(css string), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{theme: theme, onChange: onChange, logger: logger}
}

// Start watches until ctx is done or Stop is called. It reports false when
// there is nothing to watch or the directory cannot be watched.
func (w *Watcher) Start(ctx context.Context) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return true
	}
	if w.theme == nil || w.theme.Bundled() {
		w.logger.Debug("not watching bundled theme")
		return false
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Warn("cannot watch theme", "error", err)
		return false
	}
	dir := filepath.Dir(w.theme.Path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		w.logger.Warn("cannot watch theme directory", "dir", dir, "error", err)
		return false
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.loop(ctx, fsw, w.done)

	w.logger.Debug("theme watcher started", "dir", dir)
	return true
}

// Stop ends watching and waits for the goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	w.logger.Debug("theme watcher stopped")
}

// Running reports whether the watcher is active.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cancel != nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, done chan<- struct{}) {
	defer close(done)
	defer fsw.Close()

	settle := time.NewTimer(DefaultSettle)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if strings.HasSuffix(ev.Name, ".css") && !ev.Has(fsnotify.Chmod) {
				settle.Reset(DefaultSettle)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme watcher error", "error", err)
		case <-settle.C:
			w.apply(w.theme.Refresh)
		}
	}
}

// Check rereads the theme if its own file has a newer mtime.
func (w *Watcher) Check() bool {
	if w.theme == nil || w.theme.Bundled() {
		return false
	}
	return w.apply(w.theme.Reload)
}

func (w *Watcher) apply(reread func() (bool, error)) bool {
	changed, err := reread()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		w.logger.Debug("theme file no longer exists", "path", w.theme.Path)
		return false
	case err != nil:
		w.logger.Warn("failed to reload theme", "path", w.theme.Path, "error", err)
		return false
	case !changed:
		return false
	}

	w.logger.Info("theme changed, reloading", "path", w.theme.Path)
	if w.onChange != nil {
		w.onChange(w.theme.CSS)
	}
	return true
}
