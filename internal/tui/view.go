package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/stickui/internal/core"
	"github.com/jmylchreest/stickui/internal/model"
)

var (
	dim    = lipgloss.Color("8")
	accent = lipgloss.Color("12")

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle   = lipgloss.NewStyle().Foreground(dim)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// View renders the current mode.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case ModeDetail:
		title := lipgloss.NewStyle().Bold(true).Padding(0, 1).Render("Note Detail")
		return title + "\n" + m.viewport.View() + "\n" + m.footer()
	case ModeSearch:
		return m.searchBar() + "\n" + m.list.View() + "\n" + m.footer()
	case ModeHelp:
		return m.helpScreen()
	default:
		return m.list.View() + "\n" + m.footer()
	}
}

// footer shows the pending status message in list mode, the key bar
// otherwise.
func (m Model) footer() string {
	if m.mode == ModeList && m.statusMsg != "" {
		if m.statusErr {
			return errorStyle.Render(m.statusMsg)
		}
		return statusStyle.Render(m.statusMsg)
	}
	return m.keyBar(m.width)
}

// keyBar renders the mode's bindings, dropping trailing ones that do not fit
// in width. A zero width shows all of them.
func (m Model) keyBar(width int) string {
	h := m.help
	h.Width = 0
	bindings := m.keys.barKeys(m.mode)
	if width <= 0 {
		return h.ShortHelpView(bindings)
	}
	for n := len(bindings); n > 0; n-- {
		if bar := h.ShortHelpView(bindings[:n]); lipgloss.Width(bar) <= width {
			return bar
		}
	}
	return ""
}

func (m Model) searchBar() string {
	label := "Search: "
	if core.IsFilterExpression(m.searchQuery) {
		label = "Filter: "
	}
	count := labelStyle.Render(fmt.Sprintf("(%d matches)", len(m.list.Items())))
	return label + m.searchInput.View() + " " + count
}

func (m Model) helpScreen() string {
	var b strings.Builder
	b.WriteString(headingStyle.MarginBottom(1).Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, group := range m.keys.helpGroups() {
		for _, k := range group {
			h := k.Help()
			fmt.Fprintf(&b, "  %-12s %s\n", h.Key, h.Desc)
		}
		b.WriteByte('\n')
	}
	b.WriteString(labelStyle.Render("Search accepts plain text or filters such as text~milk,x>100"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Press ? or esc to return"))
	return b.String()
}

// detailText is the viewport content for n.
func detailText(n model.Note) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(n.Title()))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s%d\n", labelStyle.Render("ID: "), n.ID)
	fmt.Fprintf(&b, "%s%d, %d\n\n", labelStyle.Render("Position: "), n.X, n.Y)
	b.WriteString(labelStyle.Render("Text:"))
	b.WriteByte('\n')
	if n.Text == "" {
		b.WriteString(labelStyle.Italic(true).Render(model.PlaceholderText))
	} else {
		b.WriteString(n.Text)
	}
	b.WriteByte('\n')
	return b.String()
}
