package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/stickui/internal/model"
)

// YAMLFormatter formats notes as a YAML sequence.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format writes notes as YAML.
func (f *YAMLFormatter) Format(w io.Writer, notes []model.Note) error {
	if notes == nil {
		notes = []model.Note{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(notes); err != nil {
		return err
	}
	return enc.Close()
}
