package decor

import "fmt"

// Decoration modes.
const (
	ModeAuto   = "auto"
	ModeNative = "native"
	ModeManual = "manual"
)

// Caps describes what the display can do for a note window.
type Caps struct {
	// Composited is true when a compositor draws translucent windows.
	Composited bool
	// RGBA is true when windows get an alpha channel.
	RGBA bool
	// X11 is true on an X11 display.
	X11 bool
	// Frameless is true for borderless always-on-top note windows.
	Frameless bool
}

// NativeSafe reports whether a native shadow can be used on this display.
// Borderless always-on-top windows on X11 fail to redraw with one.
func (c Caps) NativeSafe() bool {
	return c.Composited && c.RGBA && !(c.X11 && c.Frameless)
}

// Select chooses a decorator kind. "native" and "manual" force a kind;
// "auto" (or empty) picks native only when the display supports it.
func Select(mode string, caps Caps) (Kind, error) {
	switch mode {
	case ModeManual:
		return KindManual, nil
	case ModeNative:
		return KindNative, nil
	case ModeAuto, "":
		if caps.NativeSafe() {
			return KindNative, nil
		}
		return KindManual, nil
	default:
		return KindManual, fmt.Errorf("unknown decoration mode %q", mode)
	}
}

// New builds the decorator for kind. The manual geometry applies to both
// kinds' corner radius.
func New(kind Kind, manual ManualShadow) Decorator {
	if kind == KindNative {
		return &NativeShadow{Radius: manual.Radius}
	}
	m := manual
	return &m
}

// SessionIsX11 reports whether the session runs on X11, from the
// environment GTK itself consults.
func SessionIsX11(getenv func(string) string) bool {
	switch getenv("GDK_BACKEND") {
	case "x11":
		return true
	case "wayland":
		return false
	}
	if getenv("WAYLAND_DISPLAY") != "" {
		return false
	}
	return getenv("DISPLAY") != "" || getenv("XDG_SESSION_TYPE") == "x11"
}
