package decor

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jmylchreest/stickui/internal/model"
	"github.com/jmylchreest/stickui/internal/theme"
)

// Text layout inside a rendered note.
const (
	textSize    = 16.0
	textPadding = 8.0
	headerSize  = 20.0
	lineSpacing = 1.3
)

// Size is a surface size in pixels.
type Size struct {
	W, H int
}

// GGPainter paints on an offscreen gg context.
type GGPainter struct {
	dc *gg.Context
}

// NewGGPainter wraps dc.
func NewGGPainter(dc *gg.Context) *GGPainter {
	return &GGPainter{dc: dc}
}

// RoundedRect implements Painter.
func (p *GGPainter) RoundedRect(r Rect, radius float64) {
	p.dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, radius)
}

// FillSolid implements Painter.
func (p *GGPainter) FillSolid(c color.NRGBA, alpha float64) error {
	r, g, b, a := theme.Float(c)
	p.dc.SetRGBA(r, g, b, a*alpha)
	return p.dc.Fill()
}

// FillVertical implements Painter.
func (p *GGPainter) FillVertical(top, bottom color.NRGBA, y0, y1 float64) error {
	p.dc.SetFillBrush(gg.NewLinearGradientBrush(0, y0, 0, y1).
		AddColorStop(0, toRGBA(top)).
		AddColorStop(1, toRGBA(bottom)))
	return p.dc.Fill()
}

func toRGBA(c color.NRGBA) gg.RGBA {
	return gg.RGBA2(theme.Float(c))
}

var loadFace = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// Render paints rec as a note of the given size and returns the image.
func Render(rec model.Note, pal theme.Palette, dec Decorator, size Size) (image.Image, error) {
	dc, err := draw(rec, pal, dec, size)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dc.Close() }()
	return dc.Image(), nil
}

// RenderPNG renders rec and writes it to w as PNG.
func RenderPNG(w io.Writer, rec model.Note, pal theme.Palette, dec Decorator, size Size) error {
	dc, err := draw(rec, pal, dec, size)
	if err != nil {
		return err
	}
	defer func() { _ = dc.Close() }()
	return dc.EncodePNG(w)
}

func draw(rec model.Note, pal theme.Palette, dec Decorator, size Size) (*gg.Context, error) {
	if size.W <= 0 || size.H <= 0 {
		return nil, fmt.Errorf("invalid render size %dx%d", size.W, size.H)
	}

	dc := gg.NewContext(size.W, size.H)
	ok := false
	defer func() {
		if !ok {
			_ = dc.Close()
		}
	}()

	w, h := float64(size.W), float64(size.H)
	if err := dec.Paint(NewGGPainter(dc), w, h, pal); err != nil {
		return nil, fmt.Errorf("paint note %d: %w", rec.ID, err)
	}

	source, err := loadFace()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	face := source.Face(textSize)
	dc.SetFont(face)

	body := dec.Body(w, h).Inset(textPadding)
	r, g, b, a := theme.Float(pal.Text)
	dc.SetRGBA(r, g, b, a)

	_, lineHeight := dc.MeasureString("Mg")
	y := body.Y + headerSize + lineHeight
	for _, line := range wrapLines(rec.DisplayText(), face, body.W) {
		if y > body.Y+body.H {
			break
		}
		dc.DrawString(line, body.X, y)
		y += lineHeight * lineSpacing
	}

	ok = true
	return dc, nil
}

// wrapLines splits s into lines no wider than width. Explicit newlines are
// kept; words wider than width break between characters.
func wrapLines(s string, face text.Face, width float64) []string {
	wrapped := text.WrapText(s, face, width, text.WrapWordChar)
	lines := make([]string, len(wrapped))
	for i, w := range wrapped {
		lines[i] = strings.TrimRight(w.Text, " ")
	}
	return lines
}
