package display

import (
	"errors"
	"log/slog"
	"os"
	"sync"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/stickui/internal/config"
	"github.com/jmylchreest/stickui/internal/decor"
	"github.com/jmylchreest/stickui/internal/note"
	"github.com/jmylchreest/stickui/internal/store"
	"github.com/jmylchreest/stickui/internal/theme"
)

// Manager owns the control window and one NoteWindow per live note.
// All methods except ExternalChange must run on the GTK main loop.
type Manager struct {
	app       *gtk.Application
	cfg       *config.Config
	registry  *store.Registry
	notesPath string
	logger    *slog.Logger

	layout     *Layout
	decorator  decor.Decorator
	palette    theme.Palette
	layerShell bool
	control    *ControlWindow

	mu      sync.Mutex
	windows map[ulid.ULID]*NoteWindow

	events <-chan store.ChangeEvent
}

// NewManager creates a manager for the notes in registry, saved to notesPath.
func NewManager(app *gtk.Application, cfg *config.Config, registry *store.Registry, notesPath string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Manager{
		app:       app,
		cfg:       cfg,
		registry:  registry,
		notesPath: notesPath,
		logger:    logger,
		windows:   make(map[ulid.ULID]*NoteWindow),
	}
}

// Start detects display capabilities, picks the decorator and shows the control window.
func (m *Manager) Start(palette theme.Palette) error {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return &DisplayError{Message: "no display available"}
	}

	m.palette = palette
	m.layerShell = layershell.IsSupported()
	if !m.layerShell {
		m.logger.Warn("layer-shell not supported, note positions will not be applied")
	}

	caps := decor.Caps{
		Composited: display.IsComposited(),
		RGBA:       display.IsRGBA(),
		X11:        decor.SessionIsX11(os.Getenv),
		Frameless:  true,
	}
	kind, err := decor.Select(m.cfg.Decoration.Mode, caps)
	if err != nil {
		m.logger.Warn("invalid decoration mode, using manual", "error", err)
	}
	m.decorator = decor.New(kind, decor.ManualShadow{
		Layers: m.cfg.Decoration.Layers,
		Alpha:  m.cfg.Decoration.Alpha,
		Radius: m.cfg.Decoration.Radius,
		Margin: m.cfg.Decoration.Margin,
	})
	m.logger.Info("selected note decoration",
		"kind", kind,
		"composited", caps.Composited,
		"rgba", caps.RGBA,
		"x11", caps.X11,
	)

	m.layout = NewLayout(m.cfg.Notes.Monitor, m.logger)

	m.control = NewControlWindow(m.app, m, m.cfg.Shortcuts, m.logger)
	m.control.SetCount(m.registry.Count())
	m.control.Show()

	m.events = m.registry.Subscribe()
	go m.forwardEvents(m.events)

	m.logger.Info("display manager started", "layer_shell", m.layerShell)
	return nil
}

// forwardEvents keeps the control window's note count current.
func (m *Manager) forwardEvents(events <-chan store.ChangeEvent) {
	for range events {
		glib.IdleAdd(func() {
			m.control.SetCount(m.registry.Count())
		})
	}
}

// Stop destroys every note window. The notes themselves stay open.
func (m *Manager) Stop() {
	if m.events != nil {
		m.registry.Unsubscribe(m.events)
		m.events = nil
	}

	m.mu.Lock()
	windows := m.windows
	m.windows = make(map[ulid.ULID]*NoteWindow)
	m.mu.Unlock()

	for _, w := range windows {
		w.Destroy()
	}
	m.logger.Info("display manager stopped")
}

// NewNote implements Controller.
func (m *Manager) NewNote() error {
	n, err := m.registry.Create(note.Point{X: m.cfg.Spawn.X, Y: m.cfg.Spawn.Y})
	if err != nil {
		return err
	}
	m.show(n)
	m.logger.Debug("created note", "id", n.ID(), "x", n.Position().X, "y", n.Position().Y)
	return nil
}

// SaveNotes implements Controller.
func (m *Manager) SaveNotes() (int, error) {
	if err := m.registry.Save(m.notesPath); err != nil {
		return 0, err
	}
	count := m.registry.Count()
	m.logger.Info("saved notes", "path", m.notesPath, "count", count)
	return count, nil
}

// LoadNotes implements Controller. Loaded notes are added next to any open ones.
func (m *Manager) LoadNotes() (int, error) {
	before := len(m.registry.Notes())
	records, err := m.registry.Load(m.notesPath)
	if err != nil {
		return 0, err
	}

	notes := m.registry.Notes()
	for _, n := range notes[before:] {
		m.show(n)
	}
	m.logger.Info("loaded notes", "path", m.notesPath, "count", len(records))
	return len(records), nil
}

// show creates and presents the window for n and tears it down when n closes.
func (m *Manager) show(n *note.Note) {
	w := NewNoteWindow(m.app, n, NoteWindowOptions{
		Decorator:  m.decorator,
		Palette:    m.palette,
		Size:       note.Point{X: m.cfg.Notes.Width, Y: m.cfg.Notes.Height},
		Layout:     m.layout,
		LayerShell: m.layerShell,
		Logger:     m.logger,
	})

	m.mu.Lock()
	m.windows[n.Key()] = w
	m.mu.Unlock()

	n.OnClose(func(closed *note.Note) {
		m.mu.Lock()
		w, ok := m.windows[closed.Key()]
		delete(m.windows, closed.Key())
		m.mu.Unlock()
		if ok {
			w.Destroy()
		}
	})

	w.Show()
}

// SetPalette repaints every note with pal.
func (m *Manager) SetPalette(pal theme.Palette) {
	m.palette = pal

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.windows {
		w.SetPalette(pal)
	}
}

// ExternalChange is the notes file watcher callback. Saving is
// last-writer-wins, so another writer's changes are only reported.
// Safe to call from any goroutine.
func (m *Manager) ExternalChange(path string) {
	records, err := store.NewJSONFile(path).Read()
	if err != nil && !errors.Is(err, store.ErrFileAbsent) {
		m.logger.Debug("notes file unreadable after change", "path", path, "error", err)
		return
	}
	if m.registry.Matches(records) {
		return
	}

	m.logger.Warn("notes file changed by another writer; saving will overwrite it", "path", path)
	glib.IdleAdd(func() {
		if m.control != nil {
			m.control.SetStatus("Notes file changed on disk. Load to merge, or save to overwrite.", true)
		}
	})
}

// Present raises the control window.
func (m *Manager) Present() {
	if m.control != nil {
		m.control.Show()
	}
}

// WindowCount returns the number of open note windows.
func (m *Manager) WindowCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

// DisplayError represents a display-related error.
type DisplayError struct {
	Message string
	Cause   error
}

func (e *DisplayError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DisplayError) Unwrap() error {
	return e.Cause
}
