package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/x/ansi"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/stickui/internal/core"
	"github.com/jmylchreest/stickui/internal/model"
	"github.com/jmylchreest/stickui/internal/note"
)

const descriptionWidth = 50

// noteItem adapts a note record to list.Item. key is the live note's
// session key; ids may repeat so actions look notes up by key.
type noteItem struct {
	key  ulid.ULID
	note model.Note
}

func (i noteItem) Title() string { return i.note.Title() }

func (i noteItem) Description() string {
	return fmt.Sprintf("#%d (%d,%d) - %s", i.note.ID, i.note.X, i.note.Y, i.note.TextTruncated(descriptionWidth))
}

func (i noteItem) FilterValue() string { return i.note.Text }

func snapshot(notes []*note.Note) []noteItem {
	items := make([]noteItem, len(notes))
	for i, n := range notes {
		items[i] = noteItem{key: n.Key(), note: n.Record()}
	}
	return items
}

func toItems(notes []noteItem) []list.Item {
	items := make([]list.Item, len(notes))
	for i, n := range notes {
		items[i] = n
	}
	return items
}

// applyQuery narrows notes by query: a filter expression when it parses as
// one, a case-insensitive text search otherwise.
func applyQuery(notes []noteItem, query string) []noteItem {
	if query == "" {
		return notes
	}
	match := queryMatcher(query)
	result := make([]noteItem, 0, len(notes))
	for _, n := range notes {
		if match(n.note) {
			result = append(result, n)
		}
	}
	return result
}

func queryMatcher(query string) func(model.Note) bool {
	if core.IsFilterExpression(query) {
		if expr, err := core.ParseFilter(query); err == nil {
			return expr.Match
		}
	}
	term := strings.ToLower(query)
	return func(n model.Note) bool {
		return strings.Contains(strings.ToLower(n.Text), term)
	}
}

// noteDelegate draws blank notes greyed out so they stand apart from notes
// with text. Every row has the same two-line shape.
type noteDelegate struct {
	list.DefaultDelegate
}

func newNoteDelegate() noteDelegate {
	return noteDelegate{DefaultDelegate: list.NewDefaultDelegate()}
}

func (d noteDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ni, ok := item.(noteItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	title, desc := d.Styles.NormalTitle, d.Styles.NormalDesc
	if index == m.Index() {
		title, desc = d.Styles.SelectedTitle, d.Styles.SelectedDesc
	}
	if ni.note.Text == "" {
		title = title.Foreground(dim).Italic(true)
		desc = desc.Foreground(dim)
	}

	width := m.Width() - d.Styles.NormalTitle.GetHorizontalPadding()
	fmt.Fprintf(w, "%s\n%s",
		title.Render(truncateWidth(ni.Title(), width)),
		desc.Render(truncateWidth(ni.Description(), width)))
}

// truncateWidth shortens s to width cells with a trailing ellipsis.
// Widths below two leave s untouched.
func truncateWidth(s string, width int) string {
	if width < 2 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
