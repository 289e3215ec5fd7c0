package tui

import (
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/stickui/internal/config"
	"github.com/jmylchreest/stickui/internal/model"
	"github.com/jmylchreest/stickui/internal/note"
	"github.com/jmylchreest/stickui/internal/store"
)

var errNoNotesFile = errors.New("no notes file")

type exporter func([]model.Note) ([]byte, error)

func exportJSON(notes []model.Note) ([]byte, error) { return model.EncodeNotes(notes) }

func exportYAML(notes []model.Note) ([]byte, error) { return yaml.Marshal(notes) }

// copy puts text on the clipboard off the update loop.
func (m Model) copy(text string) tea.Cmd {
	command := m.clipboard
	return func() tea.Msg {
		return copyResultMsg{err: copyText(text, command)}
	}
}

// copyAll copies the notes currently listed, encoded by enc.
func (m Model) copyAll(enc exporter) tea.Cmd {
	items := m.list.Items()
	notes := make([]model.Note, 0, len(items))
	for _, item := range items {
		if ni, ok := item.(noteItem); ok {
			notes = append(notes, ni.note)
		}
	}
	data, err := enc(notes)
	if err != nil {
		return status("Export failed: "+err.Error(), true)
	}
	return m.copy(string(data))
}

// createNote spawns a blank note at the configured point and saves.
func (m Model) createNote() (tea.Model, tea.Cmd) {
	if m.registry == nil {
		return m, nil
	}
	n, err := m.registry.Create(note.Point{X: m.cfg.Spawn.X, Y: m.cfg.Spawn.Y})
	if err != nil {
		return m, status("Create failed: "+err.Error(), true)
	}
	return m.commit(fmt.Sprintf("Created note #%d", n.ID()))
}

// deleteNote closes the note with session key k, which drops it from the
// registry, and saves.
func (m Model) deleteNote(k ulid.ULID) (tea.Model, tea.Cmd) {
	if m.registry == nil {
		return m, nil
	}
	n := m.registry.Get(k)
	if n == nil {
		return m, status("Note not found", true)
	}
	id := n.ID()
	n.Close()
	return m.commit(fmt.Sprintf("Deleted note #%d", id))
}

func (m Model) saveNotes() (tea.Model, tea.Cmd) {
	if err := m.save(); err != nil {
		return m, status("Save failed: "+err.Error(), true)
	}
	return m, status(fmt.Sprintf("Saved %d notes", len(m.notes)), false)
}

// commit refreshes the list after a registry change and saves it.
func (m Model) commit(done string) (tea.Model, tea.Cmd) {
	m.refresh()
	if err := m.save(); err != nil {
		return m, status("Save failed: "+err.Error(), true)
	}
	return m, status(done, false)
}

// reload replaces the live notes with the file contents.
func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.registry == nil || m.notesPath == "" {
		return m, m.loadNotes
	}
	if _, err := m.registry.Reload(m.notesPath); err != nil {
		return m, status("Reload failed: "+err.Error(), true)
	}
	m.refresh()
	return m, status("Reloaded "+m.notesPath, false)
}

func (m Model) save() error {
	if m.registry == nil || m.notesPath == "" {
		return errNoNotesFile
	}
	return m.registry.Save(m.notesPath)
}

// RunOptions configures Run.
type RunOptions struct {
	Config    *config.Config
	Registry  *store.Registry
	NotesPath string // Saved to and watched; empty disables both
	Clipboard string // Clipboard command; empty auto-detects
	Logger    *slog.Logger
}

// Run shows the browser until the user quits.
func Run(opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := opts.Registry
	if r == nil {
		r = store.NewRegistry(store.Options{Logger: logger})
	}

	if opts.NotesPath != "" {
		w, err := store.Watch(opts.NotesPath, func(path string) {
			reloadIfChanged(r, path, logger)
		}, logger)
		if err != nil {
			logger.Warn("failed to watch notes file", "error", err)
		} else {
			defer w.Close()
		}
	}

	m := New(opts.Config, r, opts.NotesPath)
	m.clipboard = opts.Clipboard
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// reloadIfChanged reloads r from path unless the file already holds the
// live notes, as it does right after one of our own saves.
func reloadIfChanged(r *store.Registry, path string, logger *slog.Logger) {
	records, err := store.NewJSONFile(path).Read()
	if err != nil {
		logger.Debug("skipping reload of unreadable notes file", "path", path, "error", err)
		return
	}
	if r.Matches(records) {
		return
	}
	if _, err := r.Reload(path); err != nil {
		logger.Warn("failed to reload notes file", "path", path, "error", err)
	}
}
