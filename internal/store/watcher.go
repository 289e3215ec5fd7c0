package store

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long Watcher waits for a burst of events on the notes
// file to end before reporting it. An atomic save emits several.
const DefaultSettle = 100 * time.Millisecond

// Watcher reports changes to the notes file by any writer, this process
// included. Callers compare the file against the registry to tell the two
// apart; the watcher never reads or merges anything.
type Watcher struct {
	path   string
	settle time.Duration
	notify func(path string)
	logger *slog.Logger

	fsw  *fsnotify.Watcher
	quit chan struct{}
	done chan struct{}
	once sync.Once
	err  error
}

// Watch starts watching path. notify runs on the watcher goroutine once per
// settled burst of writes to path.
func Watch(path string, notify func(path string), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// The file itself is replaced on every save, so watch its directory.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:   path,
		settle: DefaultSettle,
		notify: notify,
		logger: logger,
		fsw:    fsw,
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)

	name := filepath.Base(w.path)
	timer := time.NewTimer(w.settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("notes file event", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(w.settle)

		case <-timer.C:
			if w.notify != nil {
				w.notify(w.path)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("notes watcher error", "path", w.path, "error", err)

		case <-w.quit:
			return
		}
	}
}

// Close stops the watcher and waits for the loop to exit. It is safe to call
// more than once.
func (w *Watcher) Close() error {
	w.once.Do(func() {
		close(w.quit)
		w.err = w.fsw.Close()
		<-w.done
	})
	return w.err
}
