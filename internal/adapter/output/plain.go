package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/jmylchreest/stickui/internal/model"
)

const plainIndent = "    "

// PlainFormatter writes a header line per note followed by its indented
// text.
type PlainFormatter struct {
	opts FormatterOptions
	tmpl *template.Template
}

func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	tmpl, err := parseTemplate("plain", opts.Template)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	return &PlainFormatter{opts: opts, tmpl: tmpl}, nil
}

func (f *PlainFormatter) Format(w io.Writer, notes []model.Note) error {
	var b strings.Builder
	for i := range notes {
		b.Reset()
		if err := f.note(&b, i+1, &notes[i]); err != nil {
			return err
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) note(b *strings.Builder, index int, n *model.Note) error {
	if f.tmpl != nil {
		if err := f.tmpl.Execute(b, templateData{Index: index, Note: n}); err != nil {
			return err
		}
		b.WriteByte('\n')
		return nil
	}

	if f.opts.ShowIndex {
		fmt.Fprintf(b, "[%d] ", index)
	}
	fmt.Fprintf(b, "#%d", n.ID)
	if f.opts.ShowPosition {
		fmt.Fprintf(b, " (%d,%d)", n.X, n.Y)
	}
	b.WriteByte('\n')

	text := n.DisplayText()
	if !f.opts.IncludeNewline {
		text = sanitizeText(text, f.opts.TextMaxLen, false)
	}
	for line := range strings.SplitSeq(text, "\n") {
		b.WriteString(plainIndent + line + "\n")
	}
	return nil
}

// FormatField returns one field of n: id, text (body), title, x, y,
// position (pos) or all (full). Unknown names give the text.
func FormatField(n *model.Note, field string) string {
	switch strings.ToLower(field) {
	case "id":
		return strconv.Itoa(n.ID)
	case "x":
		return strconv.Itoa(n.X)
	case "y":
		return strconv.Itoa(n.Y)
	case "position", "pos":
		return fmt.Sprintf("%d,%d", n.X, n.Y)
	case "title":
		return n.Title()
	case "all", "full":
		return fmt.Sprintf("%d %d,%d\n%s", n.ID, n.X, n.Y, n.Text)
	default:
		return n.Text
	}
}
