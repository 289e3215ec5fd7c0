package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding the browser reacts to. Cursor movement is left
// to the list and viewport components.
type KeyMap struct {
	Open     key.Binding
	Back     key.Binding
	Scroll   key.Binding
	Navigate key.Binding

	New    key.Binding
	Delete key.Binding
	Save   key.Binding
	Reload key.Binding
	Search key.Binding

	Copy     key.Binding
	CopyJSON key.Binding
	CopyYAML key.Binding

	Help key.Binding
	Quit key.Binding
}

func binding(label, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open:     binding("enter", "view", "enter"),
		Back:     binding("esc", "back", "esc", "backspace"),
		Scroll:   binding("j/k", "scroll", "up", "down", "j", "k"),
		Navigate: binding("↑/↓", "navigate", "up", "down"),

		New:    binding("n", "new", "n"),
		Delete: binding("d", "delete", "d", "delete"),
		Save:   binding("s", "save", "s", "ctrl+s"),
		Reload: binding("r", "reload", "r"),
		Search: binding("/", "search", "/"),

		Copy:     binding("c", "copy", "c"),
		CopyJSON: binding("C", "copy all as JSON", "C"),
		CopyYAML: binding("alt+c", "copy all as YAML", "alt+c"),

		Help: binding("?", "help", "?"),
		Quit: binding("q", "quit", "q", "ctrl+c"),
	}
}

// barKeys returns the bindings shown in the footer for mode, most important
// first; the footer drops from the end when the terminal is narrow.
func (k KeyMap) barKeys(mode Mode) []key.Binding {
	switch mode {
	case ModeDetail:
		return []key.Binding{k.Quit, k.Back, k.Copy, k.Delete, k.Scroll}
	case ModeSearch:
		return []key.Binding{k.Open, withHelp(k.Back, "close"), k.Navigate}
	default:
		return []key.Binding{k.Quit, k.Open, k.Help, k.Search, k.New, k.Delete, k.Save, k.Copy, k.Reload}
	}
}

// helpGroups is the layout of the help screen.
func (k KeyMap) helpGroups() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Back, k.Search},
		{k.New, k.Delete, k.Save, k.Reload},
		{k.Copy, k.CopyJSON, k.CopyYAML},
		{k.Help, k.Quit},
	}
}

func withHelp(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}
