// Package store provides the note registry and its persistence.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/stickui/internal/model"
	"github.com/jmylchreest/stickui/internal/note"
)

// FirstID is the lowest id handed out to a newly created note.
const FirstID = 100000

// Default spawn cascade for new notes.
const (
	DefaultCascade      = 24
	DefaultCascadeSteps = 8
)

// ChangeType indicates the type of registry change.
type ChangeType int

const (
	// ChangeTypeAdd indicates a note was created.
	ChangeTypeAdd ChangeType = iota
	// ChangeTypeRemove indicates a note was closed and removed.
	ChangeTypeRemove
	// ChangeTypeLoad indicates notes were loaded from a file.
	ChangeTypeLoad
	// ChangeTypeSave indicates the live set was written to a file.
	ChangeTypeSave
)

// String returns the change type name for logging.
func (c ChangeType) String() string {
	switch c {
	case ChangeTypeAdd:
		return "add"
	case ChangeTypeRemove:
		return "remove"
	case ChangeTypeLoad:
		return "load"
	case ChangeTypeSave:
		return "save"
	default:
		return "unknown"
	}
}

// ChangeEvent signals registry content changes.
type ChangeEvent struct {
	Type  ChangeType
	Count int
	Path  string
}

// Errors
var (
	ErrRegistryClosed = errors.New("registry is closed")
	ErrNoteNotFound   = errors.New("note not found")
	ErrIDsExhausted   = errors.New("no free note id")
)

// Options configures a Registry.
type Options struct {
	// Cascade is the diagonal step in pixels between consecutively created notes.
	Cascade int
	// CascadeSteps is how many steps the cascade takes before wrapping back to the origin.
	CascadeSteps int
	// Placeholder is the initial text of a created note. Empty leaves it blank.
	Placeholder string
	// Logger receives debug output. Nil uses slog.Default().
	Logger *slog.Logger
}

// Registry owns the ordered collection of live notes.
//
// Closing a note deletes it: the note's Close removes it from the registry
// before the callback returns, so the next save omits it.
type Registry struct {
	mu     sync.RWMutex
	notes  []*note.Note
	index  map[ulid.ULID]*note.Note
	nextID int
	spawns int
	// saturated is set once nextID can no longer advance; ids are then
	// taken from the lowest free slot at or above FirstID.
	saturated bool

	cascade      int
	cascadeSteps int
	placeholder  string
	logger       *slog.Logger

	subscribers []chan ChangeEvent
	closed      bool
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.CascadeSteps <= 0 {
		opts.CascadeSteps = DefaultCascadeSteps
	}

	return &Registry{
		notes:        make([]*note.Note, 0),
		index:        make(map[ulid.ULID]*note.Note),
		nextID:       FirstID,
		cascade:      opts.Cascade,
		cascadeSteps: opts.CascadeSteps,
		placeholder:  opts.Placeholder,
		logger:       opts.Logger,
	}
}

// Create makes a new note with a fresh id and placeholder text, positioned near origin,
// and appends it to the live collection.
func (r *Registry) Create(origin note.Point) (*note.Note, error) {
	key, err := note.NewKey()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrRegistryClosed
	}

	step := r.spawns % r.cascadeSteps
	r.spawns++
	pos := origin.Add(note.Point{X: step * r.cascade, Y: step * r.cascade})

	id, err := r.allocIDLocked()
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	n := note.New(key, id, pos)
	n.SetText(r.placeholder)
	r.addLocked(n)
	r.notifyChange(ChangeEvent{Type: ChangeTypeAdd, Count: 1})
	r.mu.Unlock()

	r.logger.Debug("created note", "id", n.ID(), "key", key.String(), "x", pos.X, "y", pos.Y)
	return n, nil
}

// Import appends a note for every record with a fresh id, keeping its text and
// position. Records at (0,0) are placed on the spawn cascade from origin.
// Empty text gets the placeholder.
func (r *Registry) Import(records []model.Note, origin note.Point) ([]*note.Note, error) {
	keys := make([]ulid.ULID, len(records))
	for i := range records {
		var err error
		if keys[i], err = note.NewKey(); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrRegistryClosed
	}

	imported := make([]*note.Note, 0, len(records))
	for i, rec := range records {
		pos := note.Point{X: rec.X, Y: rec.Y}
		if pos == (note.Point{}) {
			step := r.spawns % r.cascadeSteps
			r.spawns++
			pos = origin.Add(note.Point{X: step * r.cascade, Y: step * r.cascade})
		}

		id, err := r.allocIDLocked()
		if err != nil {
			if len(imported) > 0 {
				r.notifyChange(ChangeEvent{Type: ChangeTypeAdd, Count: len(imported)})
			}
			r.mu.Unlock()
			return imported, err
		}
		n := note.New(keys[i], id, pos)
		n.SetText(rec.Text)
		if rec.Text == "" {
			n.SetText(r.placeholder)
		}
		r.addLocked(n)
		imported = append(imported, n)
	}
	r.notifyChange(ChangeEvent{Type: ChangeTypeAdd, Count: len(imported)})
	r.mu.Unlock()

	r.logger.Debug("imported notes", "count", len(imported))
	return imported, nil
}

// Load reads the notes file at path and appends a note for every record.
// A missing file is not an error: it loads zero notes. A corrupt file returns
// an error and leaves the live collection untouched.
func (r *Registry) Load(path string) ([]model.Note, error) {
	return r.LoadFrom(NewJSONFile(path))
}

// LoadFrom is Load over an arbitrary Persistence.
func (r *Registry) LoadFrom(p Persistence) ([]model.Note, error) {
	records, err := p.Read()
	if errors.Is(err, ErrFileAbsent) {
		r.logger.Debug("notes file absent, nothing to load", "path", p.Path())
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Keys are generated before taking the lock so a failure adds nothing.
	keys := make([]ulid.ULID, len(records))
	for i := range records {
		if keys[i], err = note.NewKey(); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}

	r.appendLocked(records, keys)
	r.notifyChange(ChangeEvent{Type: ChangeTypeLoad, Count: len(records), Path: p.Path()})
	r.logger.Debug("loaded notes", "path", p.Path(), "count", len(records))
	return records, nil
}

// Reload replaces the live collection with the contents of the notes file at path.
// A missing file empties the collection. On a read error the live collection is
// left untouched. Dropped notes are not closed. The id counter never moves backwards.
func (r *Registry) Reload(path string) ([]model.Note, error) {
	p := NewJSONFile(path)
	records, err := p.Read()
	if err != nil && !errors.Is(err, ErrFileAbsent) {
		return nil, err
	}

	keys := make([]ulid.ULID, len(records))
	for i := range records {
		if keys[i], err = note.NewKey(); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}

	r.notes = make([]*note.Note, 0, len(records))
	r.index = make(map[ulid.ULID]*note.Note, len(records))
	r.appendLocked(records, keys)

	r.notifyChange(ChangeEvent{Type: ChangeTypeLoad, Count: len(records), Path: path})
	r.logger.Debug("reloaded notes", "path", path, "count", len(records))
	return records, nil
}

// Save writes the current state of every live note to path as one JSON array.
func (r *Registry) Save(path string) error {
	return r.SaveTo(NewJSONFile(path))
}

// SaveTo is Save over an arbitrary Persistence.
func (r *Registry) SaveTo(p Persistence) error {
	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return ErrRegistryClosed
	}
	records := r.recordsLocked()
	r.mu.RUnlock()

	if err := p.Write(records); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}

	r.mu.Lock()
	r.notifyChange(ChangeEvent{Type: ChangeTypeSave, Count: len(records), Path: p.Path()})
	r.mu.Unlock()

	r.logger.Debug("saved notes", "path", p.Path(), "count", len(records))
	return nil
}

// Remove deletes the note with the given session key from the live collection.
func (r *Registry) Remove(key ulid.ULID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}
	if _, ok := r.index[key]; !ok {
		return ErrNoteNotFound
	}

	delete(r.index, key)
	for i, n := range r.notes {
		if n.Key() == key {
			r.notes = append(r.notes[:i], r.notes[i+1:]...)
			break
		}
	}

	r.notifyChange(ChangeEvent{Type: ChangeTypeRemove, Count: 1})
	return nil
}

// Get returns the note with the given session key, or nil.
func (r *Registry) Get(key ulid.ULID) *note.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index[key]
}

// FindByID returns the first live note with the given persisted id, or nil.
// Loaded files may repeat ids; the earliest inserted note wins.
func (r *Registry) FindByID(id int) *note.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.notes {
		if n.ID() == id {
			return n
		}
	}
	return nil
}

// Notes returns the live notes in insertion order.
func (r *Registry) Notes() []*note.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*note.Note, len(r.notes))
	copy(result, r.notes)
	return result
}

// Records returns a snapshot record of every live note in insertion order.
func (r *Registry) Records() []model.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.recordsLocked()
}

// Count returns the number of live notes.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.notes)
}

// Subscribe returns a channel that receives change events.
func (r *Registry) Subscribe() <-chan ChangeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan ChangeEvent, 10)
	if r.closed {
		close(ch)
		return ch
	}
	r.subscribers = append(r.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription.
func (r *Registry) Unsubscribe(ch <-chan ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, sub := range r.subscribers {
		if sub == ch {
			r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// Close releases resources and closes all subscriber channels.
// Live notes are left open; their windows belong to the caller.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	for _, ch := range r.subscribers {
		close(ch)
	}
	r.subscribers = nil
	return nil
}

// addLocked appends n and wires its close to removal. Caller must hold the lock.
func (r *Registry) addLocked(n *note.Note) {
	r.notes = append(r.notes, n)
	r.index[n.Key()] = n

	n.OnClose(func(closed *note.Note) {
		if err := r.Remove(closed.Key()); err != nil && !errors.Is(err, ErrRegistryClosed) {
			r.logger.Warn("failed to remove closed note", "id", closed.ID(), "error", err)
			return
		}
		r.logger.Debug("closed note", "id", closed.ID())
	})
}

// appendLocked adds a note per record and bumps the id counter past them.
// Caller must hold the lock.
func (r *Registry) appendLocked(records []model.Note, keys []ulid.ULID) {
	for i, rec := range records {
		r.addLocked(note.FromRecord(keys[i], rec))
		r.reserveLocked(rec.ID)
	}
}

// reserveLocked moves the id counter past id. Caller must hold the lock.
func (r *Registry) reserveLocked(id int) {
	switch {
	case id < r.nextID:
	case id == math.MaxInt:
		r.saturated = true
	default:
		r.nextID = id + 1
	}
}

// allocIDLocked hands out the next note id. Caller must hold the lock.
func (r *Registry) allocIDLocked() (int, error) {
	if !r.saturated {
		id := r.nextID
		r.reserveLocked(id)
		return id, nil
	}

	used := make(map[int]struct{}, len(r.notes))
	for _, n := range r.notes {
		used[n.ID()] = struct{}{}
	}
	for id := FirstID; ; id++ {
		if _, taken := used[id]; !taken {
			return id, nil
		}
		if id == math.MaxInt {
			return 0, ErrIDsExhausted
		}
	}
}

// recordsLocked snapshots every live note. Caller must hold the lock.
func (r *Registry) recordsLocked() []model.Note {
	records := make([]model.Note, 0, len(r.notes))
	for _, n := range r.notes {
		records = append(records, n.Record())
	}
	return records
}

// notifyChange sends a change event to all subscribers (non-blocking).
func (r *Registry) notifyChange(event ChangeEvent) {
	for _, ch := range r.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}

// Matches reports whether records equal the live collection's current state,
// in order. The desktop app uses it to tell its own saves from external writes.
func (r *Registry) Matches(records []model.Note) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(records) != len(r.notes) {
		return false
	}
	for i, n := range r.notes {
		if n.Record() != records[i] {
			return false
		}
	}
	return true
}
