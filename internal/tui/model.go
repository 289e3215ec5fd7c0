// Package tui is the terminal note browser.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/stickui/internal/config"
	"github.com/jmylchreest/stickui/internal/store"
)

// Mode is the screen the browser is showing.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
	ModeSearch
	ModeHelp
)

const statusTimeout = 3 * time.Second

// Model is the bubbletea model of the browser.
type Model struct {
	cfg       *config.Config
	registry  *store.Registry
	notesPath string
	clipboard string
	changes   <-chan store.ChangeEvent

	mode   Mode
	keys   KeyMap
	width  int
	height int
	ready  bool

	list        list.Model
	viewport    viewport.Model
	searchInput textinput.Model
	help        help.Model

	notes       []noteItem
	selected    *noteItem
	searchQuery string

	statusMsg string
	statusErr bool
}

// New returns a browser over r. Saves and reloads go to notesPath.
func New(cfg *config.Config, r *store.Registry, notesPath string) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	l := list.New(nil, newNoteDelegate(), 0, 0)
	l.Title = "Sticky Notes"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	in := textinput.New()
	in.Placeholder = "Search or filter (text~milk, x>100)..."
	in.CharLimit = 200

	m := Model{
		cfg:         cfg,
		registry:    r,
		notesPath:   notesPath,
		mode:        ModeList,
		keys:        DefaultKeyMap(),
		list:        l,
		searchInput: in,
		help:        help.New(),
	}
	if r != nil {
		m.changes = r.Subscribe()
	}
	return m
}

type (
	loadNotesMsg   struct{}
	refreshMsg     struct{}
	clearStatusMsg struct{}
	statusMsg      struct {
		text  string
		isErr bool
	}
	copyResultMsg struct{ err error }
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadNotes, m.awaitChange)
}

func (m Model) loadNotes() tea.Msg { return loadNotesMsg{} }

// awaitChange blocks until the registry reports a change.
func (m Model) awaitChange() tea.Msg {
	if m.changes == nil {
		return nil
	}
	if _, ok := <-m.changes; !ok {
		return nil
	}
	return refreshMsg{}
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isErr: isErr} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height, m.ready = msg.Width, msg.Height, true
		m.list.SetSize(msg.Width, msg.Height-2)
		m.viewport = viewport.New(msg.Width, msg.Height-4)
		m.viewport.YPosition = 2
		return m, nil

	case loadNotesMsg:
		m.refresh()
		return m, nil

	case refreshMsg:
		m.refresh()
		return m, m.awaitChange

	case statusMsg:
		m.statusMsg, m.statusErr = msg.text, msg.isErr
		return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case clearStatusMsg:
		m.statusMsg, m.statusErr = "", false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, status("Copy failed: "+msg.err.Error(), true)
		}
		return m, status("Copied to clipboard", false)
	}

	return m.forward(msg)
}

// forward hands msg to the component that owns the current mode.
func (m Model) forward(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case ModeList:
		m.list, cmd = m.list.Update(msg)
	case ModeDetail:
		m.viewport, cmd = m.viewport.Update(msg)
	case ModeSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	}
	return m, cmd
}

// refresh snapshots the registry and rebuilds the list.
func (m *Model) refresh() {
	m.notes = nil
	if m.registry != nil {
		m.notes = snapshot(m.registry.Notes())
	}
	m.applySearch()
}

func (m *Model) applySearch() {
	m.list.SetItems(toItems(applyQuery(m.notes, m.searchQuery)))
}

func (m Model) current() (noteItem, bool) {
	item, ok := m.list.SelectedItem().(noteItem)
	return item, ok
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The search box takes every key so queries can contain q and ?.
	if m.mode == ModeSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeList
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	}

	switch m.mode {
	case ModeDetail:
		return m.handleDetailKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeList
		}
		return m, nil
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n, ok := m.current()

	switch {
	case key.Matches(msg, m.keys.Open):
		if ok {
			m.openDetail(n)
		}
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		if ok {
			return m, m.copy(n.note.Text)
		}
		return m, nil
	case key.Matches(msg, m.keys.CopyJSON):
		return m, m.copyAll(exportJSON)
	case key.Matches(msg, m.keys.CopyYAML):
		return m, m.copyAll(exportYAML)
	case key.Matches(msg, m.keys.New):
		return m.createNote()
	case key.Matches(msg, m.keys.Delete):
		if ok {
			return m.deleteNote(n.key)
		}
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m.saveNotes()
	case key.Matches(msg, m.keys.Search):
		m.enterSearch()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	}

	return m.forward(msg)
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeDetail()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		if m.selected != nil {
			return m, m.copy(m.selected.note.Text)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if m.selected != nil {
			k := m.selected.key
			m.closeDetail()
			return m.deleteNote(k)
		}
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.selected = nil
		m.enterSearch()
		return m, textinput.Blink
	}

	return m.forward(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.mode = ModeList
		m.applySearch()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		if n, ok := m.current(); ok {
			m.searchInput.Blur()
			m.openDetail(n)
		}
		return m, nil
	case tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.searchQuery = m.searchInput.Value()
	m.applySearch()
	return m, cmd
}

func (m *Model) enterSearch() {
	m.searchInput.SetValue("")
	m.searchQuery = ""
	m.applySearch()
	m.mode = ModeSearch
	m.searchInput.Focus()
}

func (m *Model) openDetail(n noteItem) {
	m.selected = &n
	m.mode = ModeDetail
	m.viewport.SetContent(detailText(n.note))
	m.viewport.GotoTop()
}

func (m *Model) closeDetail() {
	m.selected = nil
	m.mode = ModeList
}
