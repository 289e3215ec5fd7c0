package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/stickui/internal/config"
	"github.com/jmylchreest/stickui/internal/display"
	"github.com/jmylchreest/stickui/internal/logging"
	"github.com/jmylchreest/stickui/internal/store"
	"github.com/jmylchreest/stickui/internal/theme"
)

// AppID is the application id registered with GTK. A second launch activates
// the running instance instead of starting another.
const AppID = "io.github.jmylchreest.stickuid"

// Options configures App.
type Options struct {
	Config     *config.Config
	ConfigPath string // Watched for live changes; empty = default location
	NotesPath  string
	Logger     *slog.Logger
}

// App is the stickuid desktop application.
type App struct {
	cfg        *config.Config
	configPath string
	notesPath  string
	logger     *slog.Logger

	app *adw.Application
	ctx context.Context

	registry       *store.Registry
	manager        *display.Manager
	themeLoader    *display.Loader
	notesWatcher   *store.Watcher
	configReloader *ConfigReloader

	running atomic.Bool
}

// New creates the application. Nothing touches GTK until Run.
func New(opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.NotesPath == "" {
		opts.NotesPath = opts.Config.NotesPath()
	}

	return &App{
		cfg:        opts.Config,
		configPath: opts.ConfigPath,
		notesPath:  opts.NotesPath,
		logger:     opts.Logger,
	}
}

// Run runs the GTK main loop until the control window closes or the process
// is signalled, and returns the application exit status.
func (a *App) Run(args []string) int {
	a.app = adw.NewApplication(AppID, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.logger.Info("received signal, shutting down", "signal", sig)
			cancel()
			glib.IdleAdd(func() {
				if a.running.Load() {
					a.app.Quit()
				}
			})
		case <-ctx.Done():
		}
	}()

	a.app.ConnectActivate(func() {
		if a.running.Load() {
			a.logger.Debug("already running, presenting control window")
			a.manager.Present()
			return
		}
		if err := a.activate(ctx); err != nil {
			a.logger.Error("failed to start", "error", err)
			a.shutdown()
			a.app.Quit()
		}
	})

	a.app.ConnectShutdown(func() {
		a.logger.Info("application shutting down")
		a.shutdown()
	})

	status := a.app.Run(args)
	if status != 0 {
		a.logger.Error("application exited with error", "status", status)
	}
	return status
}

// activate builds every component on the GTK main loop.
func (a *App) activate(ctx context.Context) error {
	a.running.Store(true)
	a.ctx = ctx

	a.registry = store.NewRegistry(store.Options{
		Cascade:     a.cfg.Spawn.Cascade,
		Placeholder: a.cfg.Notes.Placeholder,
		Logger:      a.logger,
	})

	styles := adw.StyleManagerGetDefault()
	paletteName := theme.Resolve(a.cfg.Theme.Name, styles.Dark())
	palette, err := theme.Lookup(paletteName)
	if err != nil {
		a.logger.Warn("unknown palette, using default", "error", err)
		palette, _ = theme.Lookup(theme.PaletteDefault)
	}

	a.themeLoader = display.NewLoader(a.logger)
	if err := a.themeLoader.Load(theme.CSSName(a.cfg.Theme.CSS, palette.Name)); err != nil {
		a.logger.Warn("failed to load theme, using default", "error", err)
	}
	a.themeLoader.Apply(nil)
	a.themeLoader.StartHotReload(ctx)

	a.manager = display.NewManager(&a.app.Application, a.cfg, a.registry, a.notesPath, a.logger)
	if err := a.manager.Start(palette); err != nil {
		return fmt.Errorf("start display manager: %w", err)
	}

	if n, err := a.manager.LoadNotes(); err != nil {
		a.logger.Error("failed to load notes", "path", a.notesPath, "error", err)
	} else {
		a.logger.Info("notes restored", "path", a.notesPath, "count", n)
	}

	styles.NotifyProperty("dark", func() {
		a.applyTheme(a.cfg)
	})

	a.startNotesWatcher()
	a.startConfigReloader(ctx)

	a.logger.Info("stickuid ready", "notes", a.notesPath)
	return nil
}

// applyTheme repaints notes and reloads CSS for cfg and the current colour
// scheme. Must run on the GTK main loop.
func (a *App) applyTheme(cfg *config.Config) {
	name := theme.Resolve(cfg.Theme.Name, adw.StyleManagerGetDefault().Dark())
	palette, err := theme.Lookup(name)
	if err != nil {
		a.logger.Warn("unknown palette, keeping current", "error", err)
		return
	}
	a.manager.SetPalette(palette)

	css := theme.CSSName(cfg.Theme.CSS, palette.Name)
	if css != a.themeLoader.Current() {
		if err := a.themeLoader.Load(css); err != nil {
			a.logger.Warn("failed to load theme", "theme", css, "error", err)
		}
		a.themeLoader.StartHotReload(a.ctx)
	}
	a.logger.Debug("applied palette", "palette", palette.Name, "css", a.themeLoader.Current())
}

// startNotesWatcher reports writes to the notes file by other processes.
func (a *App) startNotesWatcher() {
	if err := os.MkdirAll(filepath.Dir(a.notesPath), 0o755); err != nil {
		a.logger.Warn("failed to create notes directory", "error", err)
		return
	}

	w, err := store.Watch(a.notesPath, a.manager.ExternalChange, a.logger)
	if err != nil {
		a.logger.Warn("failed to watch notes file", "error", err)
		return
	}
	a.notesWatcher = w
}

// startConfigReloader applies theme and log level edits to the config file live.
func (a *App) startConfigReloader(ctx context.Context) {
	a.configReloader = &ConfigReloader{
		Path:   a.configPath,
		Logger: a.logger,
		OnError: func(err error) {
			a.logger.Warn("ignoring invalid config", "error", err)
		},
	}
	a.configReloader.OnReload = func(next *config.Config) {
		glib.IdleAdd(func() {
			changes := Diff(a.cfg, next)
			if changes.LogLevel {
				if err := logging.SetLevel(next.Log.Level); err != nil {
					a.logger.Warn("invalid log level", "error", err)
				}
			}
			if changes.Theme {
				a.applyTheme(next)
				a.cfg.Theme = next.Theme
			}
			a.cfg.Log = next.Log
			if len(changes.Restart) > 0 {
				a.logger.Info("config changes take effect after restart", "sections", changes.Restart)
			}
		})
	}
	a.configReloader.Start(ctx, a.cfg)
}

// shutdown stops every component. Safe to call more than once.
func (a *App) shutdown() {
	if !a.running.Swap(false) {
		return
	}
	if a.configReloader != nil {
		a.configReloader.Stop()
	}
	if a.notesWatcher != nil {
		if err := a.notesWatcher.Close(); err != nil {
			a.logger.Warn("error stopping notes watcher", "error", err)
		}
	}
	if a.themeLoader != nil {
		a.themeLoader.StopHotReload()
	}
	if a.manager != nil {
		a.manager.Stop()
	}
	if a.registry != nil {
		_ = a.registry.Close()
	}
}
