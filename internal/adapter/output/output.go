// Package output renders notes for the CLI.
package output

import (
	"fmt"
	"io"
	"slices"

	"github.com/jmylchreest/stickui/internal/model"
)

// Formatter writes a list of notes.
type Formatter interface {
	Format(w io.Writer, notes []model.Note) error
}

// FormatType names an output format.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatIDs   FormatType = "ids"
	FormatDmenu FormatType = "dmenu"
)

var constructors = map[FormatType]func(FormatterOptions) (Formatter, error){
	FormatPlain: func(o FormatterOptions) (Formatter, error) { return NewPlainFormatter(o) },
	FormatDmenu: func(o FormatterOptions) (Formatter, error) { return NewDmenuFormatter(o) },
	FormatJSON:  func(FormatterOptions) (Formatter, error) { return NewJSONFormatter(), nil },
	FormatYAML:  func(FormatterOptions) (Formatter, error) { return NewYAMLFormatter(), nil },
	FormatIDs:   func(FormatterOptions) (Formatter, error) { return NewIDsFormatter(), nil },
}

// FormatTypes lists the supported formats.
func FormatTypes() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML, FormatIDs, FormatDmenu}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (FormatType, error) {
	f := FormatType(name)
	if !slices.Contains(FormatTypes(), f) {
		return "", fmt.Errorf("unknown format %q, must be one of: %v", name, FormatTypes())
	}
	return f, nil
}

// NewFormatter builds the formatter for format; unknown formats get plain.
// It fails only when opts.Template does not parse.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	build, ok := constructors[format]
	if !ok {
		build = constructors[FormatPlain]
	}
	return build(opts)
}

// FormatterOptions tunes the plain and dmenu formats.
type FormatterOptions struct {
	Template       string // text/template run per note with .Index and .Note
	ShowIndex      bool   // 1-based index prefix (plain)
	ShowPosition   bool   // x,y after the id
	TextMaxLen     int    // 0 = unlimited
	Separator      string // dmenu field separator
	IncludeNewline bool   // keep line breaks in text (plain)
}

// DefaultFormatterOptions suits a terminal.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:    true,
		ShowPosition: true,
		TextMaxLen:   80,
		Separator:    " | ",
	}
}

// IDsFormatter writes one note id per line, for piping into stickui rm.
type IDsFormatter struct{}

func NewIDsFormatter() *IDsFormatter { return &IDsFormatter{} }

func (IDsFormatter) Format(w io.Writer, notes []model.Note) error {
	for _, n := range notes {
		if _, err := fmt.Fprintln(w, n.ID); err != nil {
			return err
		}
	}
	return nil
}
