package input

import (
	"context"
	"errors"

	"github.com/jmylchreest/stickui/internal/model"
	"github.com/jmylchreest/stickui/internal/store"
)

// FileAdapter reads notes from another notes file.
type FileAdapter struct {
	file *store.JSONFile
}

// NewFileAdapter creates a FileAdapter for path.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{file: store.NewJSONFile(path)}
}

func (a *FileAdapter) Name() string { return "file" }

// Import reads every record in the file. Unlike loading, a missing file is
// an error.
func (a *FileAdapter) Import(ctx context.Context) ([]model.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	notes, err := a.file.Read()
	switch {
	case errors.Is(err, store.ErrFileAbsent):
		return nil, &AdapterError{Source: a.file.Path(), Message: "no such notes file", Err: err}
	case err != nil:
		return nil, &AdapterError{Source: a.file.Path(), Message: "unreadable notes file", Err: err}
	}
	return notes, nil
}
