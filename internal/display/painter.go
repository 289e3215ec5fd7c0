package display

import (
	"image/color"
	"math"

	"github.com/diamondburned/gotk4/pkg/cairo"

	"github.com/jmylchreest/stickui/internal/decor"
	"github.com/jmylchreest/stickui/internal/theme"
)

// cairoPainter paints decorations into a GTK drawing area.
type cairoPainter struct {
	cr *cairo.Context
}

var _ decor.Painter = cairoPainter{}

// RoundedRect implements decor.Painter.
func (p cairoPainter) RoundedRect(r decor.Rect, radius float64) {
	radius = min(radius, r.W/2, r.H/2)

	p.cr.NewSubPath()
	p.cr.Arc(r.X+r.W-radius, r.Y+radius, radius, -math.Pi/2, 0)
	p.cr.Arc(r.X+r.W-radius, r.Y+r.H-radius, radius, 0, math.Pi/2)
	p.cr.Arc(r.X+radius, r.Y+r.H-radius, radius, math.Pi/2, math.Pi)
	p.cr.Arc(r.X+radius, r.Y+radius, radius, math.Pi, 3*math.Pi/2)
	p.cr.ClosePath()
}

// FillSolid implements decor.Painter.
func (p cairoPainter) FillSolid(c color.NRGBA, alpha float64) error {
	r, g, b, a := theme.Float(c)
	p.cr.SetSourceRGBA(r, g, b, a*alpha)
	p.cr.Fill()
	return nil
}

// FillVertical implements decor.Painter. Cairo pads linear gradients, so
// rows past y1 keep the bottom colour.
func (p cairoPainter) FillVertical(top, bottom color.NRGBA, y0, y1 float64) error {
	pattern, err := cairo.NewPatternLinear(0, y0, 0, y1)
	if err != nil {
		p.cr.NewPath()
		return err
	}
	tr, tg, tb, ta := theme.Float(top)
	br, bg, bb, ba := theme.Float(bottom)
	if err := pattern.AddColorStopRGBA(0, tr, tg, tb, ta); err != nil {
		p.cr.NewPath()
		return err
	}
	if err := pattern.AddColorStopRGBA(1, br, bg, bb, ba); err != nil {
		p.cr.NewPath()
		return err
	}
	p.cr.SetSource(pattern)
	p.cr.Fill()
	return nil
}
