// Package daemon wires the stickuid desktop app together: the note registry,
// the GTK display manager, theming and the file watchers.
package daemon
