package theme

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Palette names.
const (
	PaletteDefault = "default"
	PaletteDark    = "dark"
	PaletteNone    = "none"
	// PaletteAuto follows the desktop colour scheme.
	PaletteAuto = "auto"
)

// ErrUnknownPalette is returned by Lookup for names outside the table.
var ErrUnknownPalette = errors.New("unknown palette")

// Palette is the colour scheme of a note body.
// Top and Bottom are the vertical gradient stops; a flat palette fills with Top.
type Palette struct {
	Name   string
	Top    color.NRGBA
	Bottom color.NRGBA
	Text   color.NRGBA
	Flat   bool
}

var palettes = []Palette{
	{Name: PaletteDefault, Top: mustHex("#fffbcc"), Bottom: mustHex("#a1805d"), Text: mustHex("#000000")},
	{Name: PaletteDark, Top: mustHex("#4f4f4f"), Bottom: mustHex("#1f1f1f"), Text: mustHex("#bbbbff")},
	{Name: PaletteNone, Top: mustHex("#fffbcc"), Bottom: mustHex("#fffbcc"), Text: mustHex("#000000"), Flat: true},
}

// Names returns the concrete palette names in table order.
func Names() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}

// Lookup returns the palette called name. "auto" yields the default palette;
// callers that can detect a dark desktop resolve it first with Resolve.
func Lookup(name string) (Palette, error) {
	if name == "" || name == PaletteAuto {
		name = PaletteDefault
	}
	for _, p := range palettes {
		if p.Name == name {
			return p, nil
		}
	}
	return Palette{}, fmt.Errorf("%w %q, must be one of: %s, %s",
		ErrUnknownPalette, name, strings.Join(Names(), ", "), PaletteAuto)
}

// Resolve maps "auto" (or empty) to dark or default; other names pass through.
func Resolve(name string, dark bool) string {
	if name != "" && name != PaletteAuto {
		return name
	}
	if dark {
		return PaletteDark
	}
	return PaletteDefault
}

// Float returns c as straight-alpha components in [0,1].
func Float(c color.NRGBA) (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

// Hex formats c as #rrggbb.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses #rgb or #rrggbb.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func mustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
