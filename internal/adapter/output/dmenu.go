package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/jmylchreest/stickui/internal/model"
)

// DmenuFormatter writes one line per note for dmenu, rofi or fuzzel. The id
// leads each line so a selection can be passed back to stickui.
type DmenuFormatter struct {
	opts FormatterOptions
	tmpl *template.Template
}

func NewDmenuFormatter(opts FormatterOptions) (*DmenuFormatter, error) {
	tmpl, err := parseTemplate("dmenu", opts.Template)
	if err != nil {
		return nil, fmt.Errorf("invalid dmenu template: %w", err)
	}
	if opts.Separator == "" {
		opts.Separator = " | "
	}
	return &DmenuFormatter{opts: opts, tmpl: tmpl}, nil
}

func (f *DmenuFormatter) Format(w io.Writer, notes []model.Note) error {
	for i := range notes {
		line, err := f.line(i+1, &notes[i])
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// line is "id | x,y | text" unless a template is set.
func (f *DmenuFormatter) line(index int, n *model.Note) (string, error) {
	if f.tmpl != nil {
		var b strings.Builder
		err := f.tmpl.Execute(&b, templateData{Index: index, Note: n})
		return b.String(), err
	}

	fields := []string{strconv.Itoa(n.ID)}
	if f.opts.ShowPosition {
		fields = append(fields, fmt.Sprintf("%d,%d", n.X, n.Y))
	}
	fields = append(fields, sanitizeText(n.DisplayText(), f.opts.TextMaxLen, false))
	return strings.Join(fields, f.opts.Separator), nil
}
