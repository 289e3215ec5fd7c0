package decor

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/stickui/internal/theme"
)

type op struct {
	kind   string
	rect   Rect
	radius float64
	color  color.NRGBA
	alpha  float64
	y0, y1 float64
}

type recordingPainter struct {
	ops     []op
	pending Rect
	radius  float64
	failOn  int
}

func (p *recordingPainter) RoundedRect(r Rect, radius float64) {
	p.pending = r
	p.radius = radius
}

func (p *recordingPainter) FillSolid(c color.NRGBA, alpha float64) error {
	p.ops = append(p.ops, op{kind: "solid", rect: p.pending, radius: p.radius, color: c, alpha: alpha})
	return p.fail()
}

func (p *recordingPainter) FillVertical(top, bottom color.NRGBA, y0, y1 float64) error {
	p.ops = append(p.ops, op{kind: "vertical", rect: p.pending, radius: p.radius, color: top, y0: y0, y1: y1})
	return p.fail()
}

func (p *recordingPainter) fail() error {
	if p.failOn > 0 && len(p.ops) == p.failOn {
		return errors.New("paint failed")
	}
	return nil
}

func mustPalette(t *testing.T, name string) theme.Palette {
	t.Helper()
	p, err := theme.Lookup(name)
	require.NoError(t, err)
	return p
}

func TestManualShadow_Layers(t *testing.T) {
	m := NewManualShadow()

	layers := m.ShadowLayers(300, 300)
	require.Len(t, layers, 8)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 300, H: 300}, layers[0])
	assert.Equal(t, Rect{X: 2.5, Y: 2.5, W: 295, H: 295}, layers[1])
	assert.Equal(t, Rect{X: 17.5, Y: 17.5, W: 265, H: 265}, layers[7])

	for i := 1; i < len(layers); i++ {
		assert.Greater(t, layers[i].X, layers[i-1].X, "layers are progressively inset")
	}
}

func TestManualShadow_NoLayers(t *testing.T) {
	m := &ManualShadow{Layers: 0, Margin: 20, Radius: 20}
	assert.Empty(t, m.ShadowLayers(300, 300))
}

func TestManualShadow_StopsAtEmptyLayer(t *testing.T) {
	m := &ManualShadow{Layers: 8, Alpha: 0.1, Margin: 80}
	layers := m.ShadowLayers(100, 100)
	assert.Len(t, layers, 5)
	for _, l := range layers {
		assert.False(t, l.Empty())
	}
}

func TestManualShadow_Paint(t *testing.T) {
	m := NewManualShadow()
	p := &recordingPainter{}

	require.NoError(t, m.Paint(p, 300, 300, mustPalette(t, "default")))
	require.Len(t, p.ops, 9)

	for _, o := range p.ops[:8] {
		assert.Equal(t, "solid", o.kind)
		assert.Equal(t, uint8(0), o.color.R)
		assert.InDelta(t, DefaultAlpha, o.alpha, 1e-9)
		assert.Equal(t, DefaultRadius, o.radius)
	}

	body := p.ops[8]
	assert.Equal(t, "vertical", body.kind)
	assert.Equal(t, Rect{X: 20, Y: 20, W: 260, H: 260}, body.rect)
	assert.Equal(t, "#fffbcc", theme.Hex(body.color))
	assert.Equal(t, 20.0, body.y0)
	assert.Equal(t, 20.0+GradientSpan, body.y1)
}

func TestManualShadow_FlatPalette(t *testing.T) {
	m := NewManualShadow()
	p := &recordingPainter{}

	require.NoError(t, m.Paint(p, 300, 300, mustPalette(t, "none")))
	body := p.ops[len(p.ops)-1]
	assert.Equal(t, "solid", body.kind)
	assert.Equal(t, 1.0, body.alpha)
	assert.Equal(t, "#fffbcc", theme.Hex(body.color))
}

func TestManualShadow_PaintError(t *testing.T) {
	m := NewManualShadow()
	p := &recordingPainter{failOn: 3}

	err := m.Paint(p, 300, 300, mustPalette(t, "default"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shadow layer 2")
	assert.Len(t, p.ops, 3)
}

func TestNativeShadow_Paint(t *testing.T) {
	n := NewNativeShadow()
	p := &recordingPainter{}

	require.NoError(t, n.Paint(p, 260, 260, mustPalette(t, "dark")))
	require.Len(t, p.ops, 1)
	assert.Equal(t, "vertical", p.ops[0].kind)
	assert.Equal(t, Rect{W: 260, H: 260}, p.ops[0].rect)
	assert.Equal(t, "#4f4f4f", theme.Hex(p.ops[0].color))
	assert.Equal(t, NativeShadowClass, n.StyleClass())
}

func TestSelect(t *testing.T) {
	full := Caps{Composited: true, RGBA: true}
	tests := []struct {
		name string
		mode string
		caps Caps
		want Kind
	}{
		{"auto with full support", ModeAuto, full, KindNative},
		{"empty mode acts as auto", "", full, KindNative},
		{"auto without compositor", ModeAuto, Caps{RGBA: true}, KindManual},
		{"auto without rgba", ModeAuto, Caps{Composited: true}, KindManual},
		{"auto frameless on x11", ModeAuto, Caps{Composited: true, RGBA: true, X11: true, Frameless: true}, KindManual},
		{"auto framed on x11", ModeAuto, Caps{Composited: true, RGBA: true, X11: true}, KindNative},
		{"auto frameless on wayland", ModeAuto, Caps{Composited: true, RGBA: true, Frameless: true}, KindNative},
		{"forced manual", ModeManual, full, KindManual},
		{"forced native", ModeNative, Caps{}, KindNative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(tt.mode, tt.caps)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelect_UnknownMode(t *testing.T) {
	kind, err := Select("blur", Caps{Composited: true, RGBA: true})
	assert.Error(t, err)
	assert.Equal(t, KindManual, kind)
}

func TestNew(t *testing.T) {
	manual := ManualShadow{Layers: 4, Alpha: 0.1, Radius: 12, Margin: 16}

	d := New(KindManual, manual)
	assert.Equal(t, KindManual, d.Kind())
	assert.Empty(t, d.StyleClass())
	assert.Equal(t, Rect{X: 16, Y: 16, W: 68, H: 68}, d.Body(100, 100))

	d = New(KindNative, manual)
	assert.Equal(t, KindNative, d.Kind())
	assert.Equal(t, Rect{W: 100, H: 100}, d.Body(100, 100))
	assert.Equal(t, 12.0, d.(*NativeShadow).Radius)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "manual", KindManual.String())
	assert.Equal(t, "native", KindNative.String())
	assert.Equal(t, "unknown", Kind(9).String())
}

func TestSessionIsX11(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"wayland", map[string]string{"WAYLAND_DISPLAY": "wayland-1", "DISPLAY": ":0"}, false},
		{"x11", map[string]string{"DISPLAY": ":0"}, true},
		{"forced x11 backend", map[string]string{"GDK_BACKEND": "x11", "WAYLAND_DISPLAY": "wayland-1"}, true},
		{"forced wayland backend", map[string]string{"GDK_BACKEND": "wayland", "DISPLAY": ":0"}, false},
		{"session type only", map[string]string{"XDG_SESSION_TYPE": "x11"}, true},
		{"nothing", map[string]string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }
			assert.Equal(t, tt.want, SessionIsX11(getenv))
		})
	}
}
