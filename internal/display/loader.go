package display

import (
	"context"
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/stickui/internal/theme"
)

// Loader applies a CSS theme to the display and hot-reloads user themes.
type Loader struct {
	mu       sync.Mutex
	logger   *slog.Logger
	provider *gtk.CSSProvider
	theme    *theme.Theme
	watcher  *theme.Watcher
}

// NewLoader creates a new theme loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:   logger,
		provider: gtk.NewCSSProvider(),
	}
}

// Load resolves name and loads it into the provider. An unknown theme still
// loads the default one; the returned error says why.
func (l *Loader) Load(name string) error {
	th, err := theme.Load(name)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.theme = th
	l.provider.LoadFromString(th.CSS)
	if th.Bundled() {
		l.logger.Info("loaded bundled theme", "name", th.Name)
	} else {
		l.logger.Info("loaded user theme", "name", th.Name, "path", th.Path)
	}
	return err
}

// Apply attaches the provider to display, or to the default display when nil.
func (l *Loader) Apply(display *gdk.Display) {
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}

	gtk.StyleContextAddProviderForDisplay(display, l.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	l.logger.Debug("applied theme to display", "name", l.Current())
}

// StartHotReload watches the themes directory with fsnotify and reloads the
// provider when the current theme or a file it imports changes.
// Bundled themes are not watched.
func (l *Loader) StartHotReload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		l.watcher.Stop()
	}

	l.watcher = theme.NewWatcher(l.theme, func(css string) {
		glib.IdleAdd(func() {
			l.provider.LoadFromString(css)
			l.logger.Info("hot-reloaded theme", "name", l.Current())
		})
	}, l.logger)

	if !l.watcher.Start(ctx) {
		l.watcher = nil
	}
}

// StopHotReload stops watching the theme file.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	w := l.watcher
	l.watcher = nil
	l.mu.Unlock()

	if w != nil {
		w.Stop()
	}
}

// Current returns the name of the loaded theme.
func (l *Loader) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.theme == nil {
		return ""
	}
	return l.theme.Name
}
