package daemon

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/jmylchreest/stickui/internal/config"
)

// DefaultConfigPollInterval is how often ConfigReloader stats the file.
const DefaultConfigPollInterval = time.Second

// ConfigReloader polls the config file and hands each new valid config to
// OnReload. Invalid edits go to OnError and the previous config stays.
// Both callbacks run on the polling goroutine.
type ConfigReloader struct {
	Path     string // Empty means config.ConfigPath()
	Interval time.Duration
	OnReload func(*config.Config)
	OnError  func(error)
	Logger   *slog.Logger

	mu      sync.Mutex
	mtime   time.Time
	current *config.Config
	cancel  context.CancelFunc
	done    chan struct{}
}

// Start begins polling with initial as the current config. A running
// reloader ignores the call.
func (r *ConfigReloader) Start(ctx context.Context, initial *config.Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}
	r.defaults()

	r.current = initial
	if info, err := os.Stat(r.Path); err == nil {
		r.mtime = info.ModTime()
	}

	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	go r.poll(ctx, r.Interval, r.done)

	r.Logger.Debug("config reloader started", "path", r.Path, "interval", r.Interval)
}

func (r *ConfigReloader) defaults() {
	if r.Path == "" {
		r.Path = config.ConfigPath()
	}
	if r.Interval <= 0 {
		r.Interval = DefaultConfigPollInterval
	}
	if r.Logger == nil {
		r.Logger = slog.Default()
	}
}

// Stop ends polling and waits for the goroutine. Safe to repeat.
func (r *ConfigReloader) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel = nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Current returns the last valid config.
func (r *ConfigReloader) Current() *config.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *ConfigReloader) poll(ctx context.Context, every time.Duration, done chan<- struct{}) {
	defer close(done)

	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Check()
		}
	}
}

// Check loads the file if its mtime moved forward and reports whether a
// new config was installed.
func (r *ConfigReloader) Check() bool {
	r.mu.Lock()
	r.defaults()
	path, last := r.Path, r.mtime
	r.mu.Unlock()

	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.Logger.Debug("cannot stat config file", "path", path, "error", err)
		}
		return false
	}
	if !info.ModTime().After(last) {
		return false
	}

	r.mu.Lock()
	r.mtime = info.ModTime()
	r.mu.Unlock()

	next, err := config.LoadConfig(path)
	if err != nil {
		r.Logger.Warn("config file changed but is invalid", "path", path, "error", err)
		if r.OnError != nil {
			r.OnError(err)
		}
		return false
	}

	r.mu.Lock()
	r.current = next
	r.mu.Unlock()

	r.Logger.Info("config reloaded", "path", path)
	if r.OnReload != nil {
		r.OnReload(next)
	}
	return true
}

// Changes says which settings differ between two configs.
type Changes struct {
	Theme    bool // theme.name or theme.css; applied live
	LogLevel bool // applied live
	Restart  []string
}

// Diff compares prev and next. Sections other than theme and log are listed
// in Restart since windows and shortcuts are built once at startup.
func Diff(prev, next *config.Config) Changes {
	c := Changes{
		Theme:    prev.Theme != next.Theme,
		LogLevel: prev.Log.Level != next.Log.Level,
	}
	for _, s := range []struct {
		name    string
		changed bool
	}{
		{"notes", prev.Notes != next.Notes},
		{"spawn", prev.Spawn != next.Spawn},
		{"decoration", prev.Decoration != next.Decoration},
		{"shortcuts", prev.Shortcuts != next.Shortcuts},
	} {
		if s.changed {
			c.Restart = append(c.Restart, s.name)
		}
	}
	return c
}
