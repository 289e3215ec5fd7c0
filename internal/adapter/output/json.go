package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/stickui/internal/model"
)

// JSONFormatter writes notes in the notes file format, so the output can be
// loaded or imported again.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes notes as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, notes []model.Note) error {
	data, err := model.EncodeNotes(notes)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// FormatSingle writes a single note as a JSON object.
func (f *JSONFormatter) FormatSingle(w io.Writer, n *model.Note) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(n)
}
