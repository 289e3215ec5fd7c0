// Package model defines the core data structures for stickui.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PlaceholderText is shown in a note that has no text of its own.
const PlaceholderText = "Type your note here..."

// Note is the persisted form of a sticky note.
// This is the record stored in the notes file and used by all adapters.
type Note struct {
	ID   int    `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
	X    int    `json:"x" yaml:"x"`
	Y    int    `json:"y" yaml:"y"`
}

// Validation errors.
var (
	ErrInvalidID = errors.New("id must be greater than 0")
	ErrMalformed = errors.New("malformed notes file")
)

// requiredFields lists the keys every record must carry.
var requiredFields = []string{"id", "text", "x", "y"}

// ParseError describes why a notes file could not be decoded.
// Index is the zero-based position of the offending record, or -1 when the
// document itself is not an array.
type ParseError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("malformed notes file: %s", e.Reason)
	case e.Field == "":
		return fmt.Sprintf("malformed note at index %d: %s", e.Index, e.Reason)
	default:
		return fmt.Sprintf("malformed note at index %d: field %q: %s", e.Index, e.Field, e.Reason)
	}
}

// Unwrap lets callers match any ParseError with errors.Is(err, ErrMalformed).
func (e *ParseError) Unwrap() error {
	return ErrMalformed
}

// Validate checks that the note has a usable identity.
func (n *Note) Validate() error {
	if n.ID <= 0 {
		return ErrInvalidID
	}
	return nil
}

// DisplayText returns the text to show for the note.
// Empty notes fall back to the placeholder.
func (n *Note) DisplayText() string {
	if n.Text == "" {
		return PlaceholderText
	}
	return n.Text
}

// TextTruncated returns the text collapsed to a single line of at most maxLen runes.
func (n *Note) TextTruncated(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	text := []rune(strings.Join(strings.Fields(n.DisplayText()), " "))
	if len(text) <= maxLen {
		return string(text)
	}
	if maxLen <= 3 {
		return string(text[:maxLen])
	}
	return string(text[:maxLen-3]) + "..."
}

// Title returns the first non-empty line of the note.
func (n *Note) Title() string {
	for _, line := range strings.Split(n.DisplayText(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return PlaceholderText
}

// DecodeNotes parses a notes file.
// The document must be a JSON array of objects each carrying id, text, x and y.
// Unknown keys are ignored and ids must be positive. Any other shape yields a *ParseError.
func DecodeNotes(data []byte) ([]Note, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Index: -1, Reason: err.Error()}
	}
	if raw == nil {
		// A bare "null" is not an array.
		return nil, &ParseError{Index: -1, Reason: "expected a JSON array"}
	}

	notes := make([]Note, 0, len(raw))
	for i, elem := range raw {
		n, err := decodeNote(i, elem)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func decodeNote(index int, elem json.RawMessage) (Note, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(elem, &fields); err != nil || fields == nil {
		return Note{}, &ParseError{Index: index, Reason: "expected a JSON object"}
	}

	for _, name := range requiredFields {
		value, ok := fields[name]
		if !ok {
			return Note{}, &ParseError{Index: index, Field: name, Reason: "missing"}
		}
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return Note{}, &ParseError{Index: index, Field: name, Reason: "must not be null"}
		}
	}

	var n Note
	targets := map[string]any{"id": &n.ID, "text": &n.Text, "x": &n.X, "y": &n.Y}
	for _, name := range requiredFields {
		if err := json.Unmarshal(fields[name], targets[name]); err != nil {
			kind := "an integer"
			if name == "text" {
				kind = "a string"
			}
			return Note{}, &ParseError{Index: index, Field: name, Reason: "expected " + kind}
		}
	}
	if err := n.Validate(); err != nil {
		return Note{}, &ParseError{Index: index, Field: "id", Reason: err.Error()}
	}
	return n, nil
}

// EncodeNotes serializes notes as an indented JSON array.
// An empty set encodes as [] rather than null.
func EncodeNotes(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
