// Package display manages the GTK4/libadwaita windows of the desktop app:
// the control window and one frameless, layer-shell note window per live note.
// Window positions come from the note package; painting comes from decor.
package display
