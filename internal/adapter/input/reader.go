package input

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jmylchreest/stickui/internal/model"
)

// MaxInput caps how much a ReaderAdapter reads.
const MaxInput = 10 << 20

// ReaderAdapter imports from a stream holding either a notes JSON array or
// plain text with one note per blank-line separated paragraph.
type ReaderAdapter struct {
	name string
	r    io.Reader
}

// NewStdinAdapter reads standard input.
func NewStdinAdapter() *ReaderAdapter {
	return NewReaderAdapter("stdin", os.Stdin)
}

// NewReaderAdapter reads r, reporting itself as name.
func NewReaderAdapter(name string, r io.Reader) *ReaderAdapter {
	return &ReaderAdapter{name: name, r: r}
}

func (a *ReaderAdapter) Name() string { return a.name }

func (a *ReaderAdapter) Import(ctx context.Context) ([]model.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(a.r, MaxInput+1))
	if err != nil {
		return nil, &AdapterError{Source: a.name, Message: "read failed", Err: err}
	}
	if len(data) > MaxInput {
		return nil, &AdapterError{Source: a.name, Message: fmt.Sprintf("input exceeds %d bytes", MaxInput)}
	}

	body := bytes.TrimSpace(data)
	switch {
	case len(body) == 0:
		return nil, nil
	case body[0] == '[':
		notes, err := model.DecodeNotes(body)
		if err != nil {
			return nil, &AdapterError{Source: a.name, Message: "invalid notes JSON", Err: err}
		}
		return notes, nil
	default:
		return paragraphs(string(data)), nil
	}
}

// paragraphs makes one note per run of non-blank lines.
func paragraphs(text string) []model.Note {
	var (
		notes []model.Note
		lines []string
	)
	end := func() {
		if s := sanitizeString(strings.Join(lines, "\n")); s != "" {
			notes = append(notes, model.Note{Text: s})
		}
		lines = lines[:0]
	}

	for line := range strings.Lines(text) {
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			end()
			continue
		}
		lines = append(lines, line)
	}
	end()
	return notes
}

// sanitizeString blanks control characters other than newline and tab, then
// trims the result.
func sanitizeString(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r < ' ' && r != '\n' && r != '\t' {
			return ' '
		}
		return r
	}, s))
}
