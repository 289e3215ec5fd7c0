// Package note implements the live sticky note object.
//
// A Note is the single source of truth for its own identity, text and
// position; the registry reads records from live notes when saving.
package note

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/stickui/internal/model"
)

// CloseFunc is invoked once when a note is closed.
type CloseFunc func(n *Note)

// Note is one floating, draggable, closable note.
type Note struct {
	mu     sync.RWMutex
	key    ulid.ULID
	id     int
	text   string
	pos    Point
	drag   Drag
	closed bool

	onClose []CloseFunc
}

// NewKey generates a session key for a note.
func NewKey() (ulid.ULID, error) {
	key, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return ulid.ULID{}, fmt.Errorf("failed to generate ULID: %w", err)
	}
	return key, nil
}

// New creates a note with the given identity at pos and empty text.
func New(key ulid.ULID, id int, pos Point) *Note {
	return &Note{
		key: key,
		id:  id,
		pos: pos,
	}
}

// FromRecord reconstructs a note from a stored record.
// The record's id is authoritative.
func FromRecord(key ulid.ULID, rec model.Note) *Note {
	n := New(key, rec.ID, Point{X: rec.X, Y: rec.Y})
	n.text = rec.Text
	return n
}

// Key returns the session key. It is never persisted.
func (n *Note) Key() ulid.ULID {
	return n.key
}

// ID returns the persisted identity assigned at construction.
func (n *Note) ID() int {
	return n.id
}

// Text returns the current text.
func (n *Note) Text() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.text
}

// SetText replaces the note text.
func (n *Note) SetText(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.text = text
}

// Position returns the top-left screen position.
func (n *Note) Position() Point {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.pos
}

// MoveTo sets the top-left screen position.
func (n *Note) MoveTo(p Point) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pos = p
}

// Record returns the note's current state as a persisted record.
func (n *Note) Record() model.Note {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return model.Note{
		ID:   n.id,
		Text: n.text,
		X:    n.pos.X,
		Y:    n.pos.Y,
	}
}

// DragState returns the state of the drag state machine.
func (n *Note) DragState() DragState {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.drag.State()
}

// PointerPress feeds a button press at a note-local position into the drag state machine.
// It returns false when the event is not a drag trigger.
func (n *Note) PointerPress(button Button, local Point) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.drag.Press(button, local)
}

// PointerMotion moves the note so the pressed local point stays under screen.
// It returns the new position and whether the note moved.
func (n *Note) PointerMotion(screen Point) (Point, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	pos, ok := n.drag.Motion(screen)
	if ok {
		n.pos = pos
	}
	return pos, ok
}

// PointerRelease feeds a button release into the drag state machine.
func (n *Note) PointerRelease(button Button) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.drag.Release(button)
}

// OnClose registers a callback invoked when the note is closed.
func (n *Note) OnClose(cb CloseFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onClose = append(n.onClose, cb)
}

// Closed reports whether Close has been called.
func (n *Note) Closed() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.closed
}

// Close closes the note and runs the close callbacks.
// Closing twice is a no-op.
func (n *Note) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.drag = Drag{}
	callbacks := n.onClose
	n.onClose = nil
	n.mu.Unlock()

	// Run outside the lock; callbacks read the note.
	for _, cb := range callbacks {
		cb(n)
	}
}
