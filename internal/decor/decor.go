// Package decor paints the body and drop shadow of a note.
//
// Two decorators exist. ManualShadow stacks progressively inset, low-opacity
// rounded rectangles under the body. NativeShadow paints only the body and
// leaves the shadow to a CSS box-shadow. Select picks one from the configured
// mode and what the display supports.
package decor

import (
	"fmt"
	"image/color"

	"github.com/jmylchreest/stickui/internal/theme"
)

// Manual shadow defaults.
const (
	DefaultLayers = 8
	DefaultAlpha  = 0.035
	DefaultRadius = 20.0
	DefaultMargin = 20.0
)

// GradientSpan is the height in pixels over which the body gradient runs.
// Taller bodies keep the bottom colour past it.
const GradientSpan = 400.0

// NativeShadowClass is the style class that enables the CSS shadow.
const NativeShadowClass = "native-shadow"

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Painter is the drawing surface a decorator paints on.
// RoundedRect sets the current path; the Fill methods fill and clear it.
type Painter interface {
	RoundedRect(r Rect, radius float64)
	FillSolid(c color.NRGBA, alpha float64) error
	FillVertical(top, bottom color.NRGBA, y0, y1 float64) error
}

// Kind identifies a decorator implementation.
type Kind int

const (
	KindManual Kind = iota
	KindNative
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindManual:
		return "manual"
	case KindNative:
		return "native"
	default:
		return "unknown"
	}
}

// Decorator paints a note surface of size w x h.
type Decorator interface {
	Kind() Kind
	// Body returns the rectangle the note body occupies.
	Body(w, h float64) Rect
	// StyleClass is added to the note window; empty for none.
	StyleClass() string
	Paint(p Painter, w, h float64, pal theme.Palette) error
}

// ManualShadow draws the shadow as Layers nested rounded rectangles of
// opacity Alpha each, spaced evenly across Margin.
type ManualShadow struct {
	Layers int
	Alpha  float64
	Radius float64
	Margin float64
}

// NewManualShadow returns a ManualShadow with default geometry.
func NewManualShadow() *ManualShadow {
	return &ManualShadow{
		Layers: DefaultLayers,
		Alpha:  DefaultAlpha,
		Radius: DefaultRadius,
		Margin: DefaultMargin,
	}
}

// Kind implements Decorator.
func (m *ManualShadow) Kind() Kind { return KindManual }

// StyleClass implements Decorator.
func (m *ManualShadow) StyleClass() string { return "" }

// Body implements Decorator.
func (m *ManualShadow) Body(w, h float64) Rect {
	return Rect{W: w, H: h}.Inset(m.Margin)
}

// ShadowLayers returns the shadow rectangles outermost first.
func (m *ManualShadow) ShadowLayers(w, h float64) []Rect {
	if m.Layers <= 0 {
		return nil
	}
	outer := Rect{W: w, H: h}
	step := m.Margin / float64(m.Layers)

	layers := make([]Rect, 0, m.Layers)
	for i := 0; i < m.Layers; i++ {
		r := outer.Inset(step * float64(i))
		if r.Empty() {
			break
		}
		layers = append(layers, r)
	}
	return layers
}

// Paint implements Decorator.
func (m *ManualShadow) Paint(p Painter, w, h float64, pal theme.Palette) error {
	shadow := color.NRGBA{A: 0xff}
	for i, r := range m.ShadowLayers(w, h) {
		p.RoundedRect(r, m.Radius)
		if err := p.FillSolid(shadow, m.Alpha); err != nil {
			return fmt.Errorf("shadow layer %d: %w", i, err)
		}
	}
	return paintBody(p, m.Body(w, h), m.Radius, pal)
}

// NativeShadow paints the body over the whole surface. The shadow comes from
// the native-shadow CSS class, whose margin keeps room for it.
type NativeShadow struct {
	Radius float64
}

// NewNativeShadow returns a NativeShadow with the default radius.
func NewNativeShadow() *NativeShadow {
	return &NativeShadow{Radius: DefaultRadius}
}

// Kind implements Decorator.
func (n *NativeShadow) Kind() Kind { return KindNative }

// StyleClass implements Decorator.
func (n *NativeShadow) StyleClass() string { return NativeShadowClass }

// Body implements Decorator.
func (n *NativeShadow) Body(w, h float64) Rect {
	return Rect{W: w, H: h}
}

// Paint implements Decorator.
func (n *NativeShadow) Paint(p Painter, w, h float64, pal theme.Palette) error {
	return paintBody(p, n.Body(w, h), n.Radius, pal)
}

func paintBody(p Painter, body Rect, radius float64, pal theme.Palette) error {
	if body.Empty() {
		return nil
	}
	p.RoundedRect(body, radius)
	if pal.Flat {
		if err := p.FillSolid(pal.Top, 1); err != nil {
			return fmt.Errorf("body: %w", err)
		}
		return nil
	}
	if err := p.FillVertical(pal.Top, pal.Bottom, body.Y, body.Y+GradientSpan); err != nil {
		return fmt.Errorf("body: %w", err)
	}
	return nil
}
