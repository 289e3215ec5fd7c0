package display

import (
	"log/slog"
	"unsafe"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/stickui/internal/note"
)

// Layout pins note windows to one monitor and keeps them on it. The monitor
// list is read on every call, so hotplugging needs no bookkeeping.
type Layout struct {
	monitor int // 1-based; 0 leaves the choice to the compositor
	logger  *slog.Logger
}

func NewLayout(monitor int, logger *slog.Logger) *Layout {
	if logger == nil {
		logger = slog.Default()
	}
	return &Layout{monitor: monitor, logger: logger}
}

// monitors returns the connected monitors of the default display.
func monitors() []*gdk.Monitor {
	d := gdk.DisplayGetDefault()
	if d == nil {
		return nil
	}
	list := d.Monitors()
	if list == nil {
		return nil
	}
	out := make([]*gdk.Monitor, 0, list.NItems())
	for i := range list.NItems() {
		if m := asMonitor(list.Item(i)); m != nil {
			out = append(out, m)
		}
	}
	return out
}

// Monitor returns the configured monitor, falling back to the first when it
// is not connected. It is nil when no monitor is configured or none exist.
func (l *Layout) Monitor() *gdk.Monitor {
	if l.monitor == 0 {
		return nil
	}
	all := monitors()
	switch {
	case len(all) == 0:
		return nil
	case l.monitor > len(all):
		l.logger.Warn("configured monitor not connected, using first",
			"configured", l.monitor, "connected", len(all))
		return all[0]
	default:
		return all[l.monitor-1]
	}
}

// Bounds is the size of the target monitor, or of the first monitor when
// none is configured. The zero Point means unknown.
func (l *Layout) Bounds() note.Point {
	m := l.Monitor()
	if m == nil {
		if all := monitors(); len(all) > 0 {
			m = all[0]
		}
	}
	if m == nil {
		return note.Point{}
	}
	g := m.Geometry()
	return note.Point{X: g.Width(), Y: g.Height()}
}

// Clamp keeps a note of the given size inside the monitor.
func (l *Layout) Clamp(pos, size note.Point) note.Point {
	bounds := l.Bounds()
	if bounds == (note.Point{}) {
		return pos
	}
	return pos.Within(size, bounds)
}

// Assign puts a layer-shell window on the target monitor.
func (l *Layout) Assign(window *gtk.Window) {
	if m := l.Monitor(); m != nil {
		layershell.SetMonitor(window, m)
	}
}

// asMonitor views an item of the display's monitor list as a gdk.Monitor;
// gotk4 has no exported cast for list items.
func asMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	return (*gdk.Monitor)(unsafe.Pointer(&monitor{Object: obj}))
}
