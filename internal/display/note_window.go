package display

import (
	"fmt"
	"log/slog"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/cairo"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotk4/pkg/pango"

	"github.com/jmylchreest/stickui/internal/decor"
	"github.com/jmylchreest/stickui/internal/note"
	"github.com/jmylchreest/stickui/internal/theme"
)

// Style classes used by the bundled themes.
const (
	classNote   = "sticky-note"
	classHeader = "note-header"
	classClose  = "note-close"
	classText   = "note-text"
	classBody   = "note-body"
	classTitle  = "note-title"
)

// NoteWindowOptions configures a NoteWindow.
type NoteWindowOptions struct {
	Decorator  decor.Decorator
	Palette    theme.Palette
	Size       note.Point
	Layout     *Layout
	LayerShell bool
	Logger     *slog.Logger
}

// NoteWindow is the frameless, always-on-top window of a single note.
type NoteWindow struct {
	note       *note.Note
	window     *gtk.Window
	area       *gtk.DrawingArea
	text       *gtk.TextView
	title      *gtk.Label
	decorator  decor.Decorator
	palette    theme.Palette
	size       note.Point
	layout     *Layout
	layerShell bool
	logger     *slog.Logger
}

// NewNoteWindow builds the window for n. It is not shown until Show.
func NewNoteWindow(app *gtk.Application, n *note.Note, opts NoteWindowOptions) *NoteWindow {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Decorator == nil {
		opts.Decorator = decor.NewManualShadow()
	}

	w := &NoteWindow{
		note:       n,
		decorator:  opts.Decorator,
		palette:    opts.Palette,
		size:       opts.Size,
		layout:     opts.Layout,
		layerShell: opts.LayerShell,
		logger:     opts.Logger.With("id", n.ID()),
	}

	w.window = gtk.NewWindow()
	w.window.SetApplication(app)
	w.window.SetTitle(fmt.Sprintf("Sticky note #%d", n.ID()))
	w.window.SetDecorated(false)
	w.window.SetResizable(false)
	w.window.SetDefaultSize(opts.Size.X, opts.Size.Y)
	w.window.AddCSSClass(classNote)
	if class := opts.Decorator.StyleClass(); class != "" {
		w.window.AddCSSClass(class)
	}

	if w.layerShell {
		layershell.InitForWindow(w.window)
		layershell.SetLayer(w.window, layershell.LayerShellLayerTop)
		layershell.SetNamespace(w.window, "stickui-note")
		layershell.SetExclusiveZone(w.window, 0)
		layershell.SetKeyboardMode(w.window, layershell.LayerShellKeyboardModeOnDemand)
		layershell.SetAnchor(w.window, layershell.LayerShellEdgeTop, true)
		layershell.SetAnchor(w.window, layershell.LayerShellEdgeLeft, true)
		if w.layout != nil {
			w.layout.Assign(w.window)
		}
	}

	w.buildUI()
	w.place(n.Position())

	w.window.ConnectCloseRequest(func() bool {
		n.Close()
		return false
	})

	return w
}

// buildUI stacks the header and text view over the painted drawing area.
func (w *NoteWindow) buildUI() {
	w.area = gtk.NewDrawingArea()
	w.area.SetContentWidth(w.size.X)
	w.area.SetContentHeight(w.size.Y)
	w.area.SetDrawFunc(w.draw)

	body := w.decorator.Body(float64(w.size.X), float64(w.size.Y))

	content := gtk.NewBox(gtk.OrientationVertical, 4)
	content.AddCSSClass(classBody)
	content.SetMarginTop(int(body.Y))
	content.SetMarginStart(int(body.X))
	content.SetMarginBottom(w.size.Y - int(body.Y+body.H))
	content.SetMarginEnd(w.size.X - int(body.X+body.W))

	header := gtk.NewBox(gtk.OrientationHorizontal, 4)
	header.AddCSSClass(classHeader)

	w.title = gtk.NewLabel("")
	w.title.AddCSSClass(classTitle)
	w.title.SetHExpand(true)
	w.title.SetXAlign(0)
	w.title.SetEllipsize(pango.EllipsizeEnd)
	header.Append(w.title)

	closeBtn := gtk.NewButtonFromIconName("window-close-symbolic")
	closeBtn.AddCSSClass(classClose)
	closeBtn.AddCSSClass("flat")
	closeBtn.SetTooltipText("Close note (deletes it)")
	closeBtn.ConnectClicked(func() {
		w.note.Close()
	})
	header.Append(closeBtn)
	content.Append(header)

	w.text = gtk.NewTextView()
	w.text.AddCSSClass(classText)
	w.text.SetWrapMode(gtk.WrapWordChar)
	w.text.SetVExpand(true)
	w.text.SetLeftMargin(4)
	w.text.SetRightMargin(4)

	buffer := w.text.Buffer()
	buffer.SetText(w.note.Text())
	buffer.ConnectChanged(func() {
		start, end := buffer.Bounds()
		w.note.SetText(buffer.Text(start, end, false))
		w.updateTitle()
	})

	scroller := gtk.NewScrolledWindow()
	scroller.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	scroller.SetChild(w.text)
	scroller.SetVExpand(true)
	content.Append(scroller)

	overlay := gtk.NewOverlay()
	overlay.SetChild(w.area)
	overlay.AddOverlay(content)
	w.window.SetChild(overlay)

	// The header and the painted margin move the note; the text view keeps its clicks.
	w.attachDrag(&header.Widget)
	w.attachDrag(&w.area.Widget)

	w.updateTitle()
}

func (w *NoteWindow) updateTitle() {
	rec := w.note.Record()
	w.title.SetText(fmt.Sprintf("#%d  %s", rec.ID, rec.Title()))
}

// draw paints the decoration for the current palette.
func (w *NoteWindow) draw(_ *gtk.DrawingArea, cr *cairo.Context, width, height int) {
	if err := w.decorator.Paint(cairoPainter{cr: cr}, float64(width), float64(height), w.palette); err != nil {
		w.logger.Warn("failed to paint note", "error", err)
	}
}

// attachDrag routes primary-button drags on widget through the note's drag state.
// Other buttons are denied so they reach the widget.
func (w *NoteWindow) attachDrag(widget *gtk.Widget) {
	gesture := gtk.NewGestureDrag()
	gesture.SetButton(0)

	var start note.Point
	gesture.ConnectDragBegin(func(x, y float64) {
		start = note.Point{X: int(x), Y: int(y)}
		if !w.note.PointerPress(note.Button(gesture.CurrentButton()), start) {
			gesture.SetState(gtk.EventSequenceDenied)
		}
	})
	gesture.ConnectDragUpdate(func(dx, dy float64) {
		// The surface moves with the note, so the pointer's screen position is
		// the note's position plus its widget-local position.
		local := start.Add(note.Point{X: int(dx), Y: int(dy)})
		if pos, ok := w.note.PointerMotion(w.note.Position().Add(local)); ok {
			w.place(pos)
		}
	})
	gesture.ConnectDragEnd(func(dx, dy float64) {
		w.note.PointerRelease(note.Button(gesture.CurrentButton()))
	})

	widget.AddController(gesture)
}

// place moves the window to pos, clamped to the monitor.
func (w *NoteWindow) place(pos note.Point) {
	if w.layout != nil {
		if clamped := w.layout.Clamp(pos, w.size); clamped != pos {
			pos = clamped
			w.note.MoveTo(pos)
		}
	}
	if !w.layerShell {
		return
	}
	layershell.SetMargin(w.window, layershell.LayerShellEdgeLeft, pos.X)
	layershell.SetMargin(w.window, layershell.LayerShellEdgeTop, pos.Y)
}

// SetPalette repaints the note with pal.
func (w *NoteWindow) SetPalette(pal theme.Palette) {
	w.palette = pal
	w.area.QueueDraw()
}

// Show presents the window.
func (w *NoteWindow) Show() {
	w.window.Present()
}

// Destroy tears the window down without touching the note.
func (w *NoteWindow) Destroy() {
	w.window.Destroy()
}
