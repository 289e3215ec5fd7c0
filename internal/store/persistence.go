package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmylchreest/stickui/internal/model"
)

// tempFilePrefix is the prefix used for temporary atomic write files.
const tempFilePrefix = ".stickui-tmp-"

// ErrFileAbsent is returned by Read when the notes file does not exist.
// The registry treats it as "zero notes to load".
var ErrFileAbsent = errors.New("notes file does not exist")

// Persistence defines the interface for note storage.
type Persistence interface {
	// Read returns every record in storage, in stored order.
	Read() ([]model.Note, error)

	// Write replaces storage with the given records.
	Write(notes []model.Note) error

	// Path returns the backing file path.
	Path() string
}

// JSONFile implements Persistence as a single JSON array file.
type JSONFile struct {
	path string
}

// NewJSONFile creates a JSONFile for path. The file is not touched until Read or Write.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the backing file path.
func (f *JSONFile) Path() string {
	return f.path
}

// Read parses the notes file.
// A missing file yields ErrFileAbsent; malformed content yields a *model.ParseError.
func (f *JSONFile) Read() ([]model.Note, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileAbsent
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	notes, err := model.DecodeNotes(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return notes, nil
}

// Write replaces the notes file atomically.
// Data goes to a temp file in the same directory which is synced and renamed
// over the target; on any failure the temp file is removed and the previous
// file is left as it was.
func (f *JSONFile) Write(notes []model.Note) error {
	data, err := model.EncodeNotes(notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return writeFileAtomic(f.path, data, 0600)
}

// writeFileAtomic writes data to a temp file and renames it to filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmpFile.Name()
	defer func() {
		if err != nil {
			tmpFile.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err = tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err = os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}
