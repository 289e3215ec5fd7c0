package note

// Point is an integer screen or widget coordinate.
type Point struct {
	X int
	Y int
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Within returns p moved so a size-sized box at p lies inside a bounds-sized
// area anchored at the origin. Boxes larger than the area stick to the origin.
func (p Point) Within(size, bounds Point) Point {
	return Point{X: clamp(p.X, 0, bounds.X-size.X), Y: clamp(p.Y, 0, bounds.Y-size.Y)}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Button identifies a pointer button, numbered the way GDK numbers them.
type Button uint

const (
	ButtonPrimary   Button = 1
	ButtonMiddle    Button = 2
	ButtonSecondary Button = 3
)

// DragState is the state of a note's drag state machine.
type DragState int

const (
	// DragIdle means no drag is in progress.
	DragIdle DragState = iota
	// DragDragging means the primary button is held and pointer motion moves the note.
	DragDragging
)

// String returns the state name for logging.
func (s DragState) String() string {
	if s == DragDragging {
		return "dragging"
	}
	return "idle"
}

// Drag tracks mouse-drag repositioning of a frameless window.
// The offset is the press point in the note's own coordinate space; while
// dragging, the same local point is kept under the pointer.
type Drag struct {
	state  DragState
	offset Point
}

// State returns the current drag state.
func (d *Drag) State() DragState {
	return d.state
}

// Offset returns the press-local offset captured by the last primary press.
func (d *Drag) Offset() Point {
	return d.offset
}

// Press handles a button press at a note-local position.
// Only the primary button starts a drag; for any other button it returns
// false so the caller can pass the event through.
func (d *Drag) Press(button Button, local Point) bool {
	if button != ButtonPrimary {
		return false
	}
	d.state = DragDragging
	d.offset = local
	return true
}

// Motion handles pointer movement to a screen position.
// While dragging it returns the new top-left position (screen - offset).
func (d *Drag) Motion(screen Point) (Point, bool) {
	if d.state != DragDragging {
		return Point{}, false
	}
	return screen.Sub(d.offset), true
}

// Release handles a button release. A primary release always ends the drag,
// wherever the pointer is. Other buttons return false and leave the state alone.
func (d *Drag) Release(button Button) bool {
	if button != ButtonPrimary {
		return false
	}
	d.state = DragIdle
	d.offset = Point{}
	return true
}
