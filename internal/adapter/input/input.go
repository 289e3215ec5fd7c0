// Package input turns external data into note records for import.
package input

import (
	"context"

	"github.com/jmylchreest/stickui/internal/model"
)

// Adapter reads note records from one source. Records carry text and, when
// the source has them, positions; the registry assigns ids on import.
type Adapter interface {
	Name() string
	Import(ctx context.Context) ([]model.Note, error)
}

// NewAdapter picks the adapter for source: "-" or "stdin" read standard
// input, anything else names a notes file.
func NewAdapter(source string) (Adapter, error) {
	switch source {
	case "":
		return nil, &AdapterError{Message: "no input source given"}
	case "-", "stdin":
		return NewStdinAdapter(), nil
	default:
		return NewFileAdapter(source), nil
	}
}

// AdapterError wraps a failure to read or decode a source.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	msg := e.Message
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AdapterError) Unwrap() error { return e.Err }
