package display

import (
	"fmt"
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/stickui/internal/config"
)

// Controller performs the control window's actions.
type Controller interface {
	NewNote() error
	SaveNotes() (int, error)
	LoadNotes() (int, error)
}

// ControlWindow is the small window holding the new, save and load actions.
// Closing it quits the application.
type ControlWindow struct {
	window *gtk.ApplicationWindow
	status *gtk.Label
	count  *gtk.Label
	ctrl   Controller
	logger *slog.Logger
}

// NewControlWindow builds the control window. Shortcuts use GTK accelerator syntax.
func NewControlWindow(app *gtk.Application, ctrl Controller, shortcuts config.ShortcutsConfig, logger *slog.Logger) *ControlWindow {
	if logger == nil {
		logger = slog.Default()
	}

	c := &ControlWindow{
		ctrl:   ctrl,
		logger: logger,
	}

	c.window = gtk.NewApplicationWindow(app)
	c.window.SetTitle("Sticky Notes")
	c.window.SetResizable(false)
	c.window.AddCSSClass("control-window")

	box := gtk.NewBox(gtk.OrientationVertical, 8)
	box.SetMarginTop(12)
	box.SetMarginBottom(12)
	box.SetMarginStart(12)
	box.SetMarginEnd(12)

	buttons := gtk.NewBox(gtk.OrientationHorizontal, 6)
	buttons.SetHomogeneous(true)

	newBtn := gtk.NewButtonWithLabel("New note")
	newBtn.AddCSSClass("suggested-action")
	newBtn.SetTooltipText(shortcuts.New)
	newBtn.ConnectClicked(c.newNote)
	buttons.Append(newBtn)

	saveBtn := gtk.NewButtonWithLabel("Save notes")
	saveBtn.SetTooltipText(shortcuts.Save)
	saveBtn.ConnectClicked(c.save)
	buttons.Append(saveBtn)

	loadBtn := gtk.NewButtonWithLabel("Load notes")
	loadBtn.SetTooltipText(shortcuts.Load)
	loadBtn.ConnectClicked(c.load)
	buttons.Append(loadBtn)

	box.Append(buttons)

	c.count = gtk.NewLabel("")
	c.count.SetXAlign(0)
	box.Append(c.count)

	c.status = gtk.NewLabel("")
	c.status.AddCSSClass("control-status")
	c.status.SetXAlign(0)
	c.status.SetWrap(true)
	box.Append(c.status)

	c.window.SetChild(box)
	c.addShortcuts(shortcuts)

	c.window.ConnectCloseRequest(func() bool {
		app.Quit()
		return false
	})

	c.SetCount(0)
	return c
}

// addShortcuts binds the configured accelerators. Invalid ones are logged and skipped.
func (c *ControlWindow) addShortcuts(shortcuts config.ShortcutsConfig) {
	controller := gtk.NewShortcutController()
	controller.SetScope(gtk.ShortcutScopeGlobal)

	bind := func(accel string, action func()) {
		if accel == "" {
			return
		}
		trigger := gtk.NewShortcutTriggerParseString(accel)
		if trigger == nil {
			c.logger.Warn("invalid shortcut, ignoring", "accel", accel)
			return
		}
		controller.AddShortcut(gtk.NewShortcut(trigger, gtk.NewCallbackAction(
			func(gtk.Widgetter, *glib.Variant) bool {
				action()
				return true
			},
		)))
	}

	bind(shortcuts.New, c.newNote)
	bind(shortcuts.Save, c.save)
	bind(shortcuts.Load, c.load)

	c.window.AddController(controller)
}

func (c *ControlWindow) newNote() {
	if err := c.ctrl.NewNote(); err != nil {
		c.logger.Error("failed to create note", "error", err)
		c.SetStatus("Could not create note: "+err.Error(), true)
		return
	}
	c.SetStatus("", false)
}

func (c *ControlWindow) save() {
	n, err := c.ctrl.SaveNotes()
	if err != nil {
		c.logger.Error("failed to save notes", "error", err)
		c.SetStatus("Save failed: "+err.Error(), true)
		return
	}
	c.SetStatus(fmt.Sprintf("Saved %d notes", n), false)
}

func (c *ControlWindow) load() {
	n, err := c.ctrl.LoadNotes()
	if err != nil {
		c.logger.Error("failed to load notes", "error", err)
		c.SetStatus("Load failed: "+err.Error(), true)
		return
	}
	c.SetStatus(fmt.Sprintf("Loaded %d notes", n), false)
}

// SetStatus shows text under the buttons, styled as an error when isErr.
func (c *ControlWindow) SetStatus(text string, isErr bool) {
	c.status.SetText(text)
	if isErr {
		c.status.AddCSSClass("error")
	} else {
		c.status.RemoveCSSClass("error")
	}
}

// SetCount shows the number of open notes.
func (c *ControlWindow) SetCount(n int) {
	if n == 1 {
		c.count.SetText("1 note open")
		return
	}
	c.count.SetText(fmt.Sprintf("%d notes open", n))
}

// Show presents the window.
func (c *ControlWindow) Show() {
	c.window.Present()
}
