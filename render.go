package notefield

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	markerSize   = 12
	markerStroke = 2
	placeholder  = "Type something..."
	caretWidth   = 1.5
	blinkPeriod  = 0.5
)

var (
	markerColor      = Color{R: 0x88 / 255.0, G: 0x88 / 255.0, B: 0x88 / 255.0, A: 1}
	textColor        = Color{R: 0.13, G: 0.13, B: 0.13, A: 1}
	placeholderColor = Color{R: 0.6, G: 0.6, B: 0.6, A: 1}
	focusColor       = Color{R: 0.26, G: 0.52, B: 0.96, A: 0.8}
)

// caretBlink fades the caret in and out with a ping-pong tween.
type caretBlink struct {
	tween *gween.Tween
	alpha float32
	in    bool
}

func newCaretBlink() *caretBlink {
	c := &caretBlink{}
	c.reset()
	return c
}

// reset shows the caret fully and restarts the fade; called on every edit
// so the caret stays visible while typing.
func (c *caretBlink) reset() {
	c.alpha = 1
	c.in = false
	c.tween = gween.New(1, 0, blinkPeriod, ease.InOutQuad)
}

func (c *caretBlink) update(dt float32) {
	v, done := c.tween.Update(dt)
	c.alpha = v
	if !done {
		return
	}
	if c.in {
		c.tween = gween.New(1, 0, blinkPeriod, ease.InOutQuad)
	} else {
		c.tween = gween.New(0, 1, blinkPeriod, ease.InOutQuad)
	}
	c.in = !c.in
}

// Draw renders the origin marker, the boxes, the caret and the HUD, then
// captures any queued screenshots.
func (b *Board) Draw(screen *ebiten.Image) {
	screen.Fill(b.ClearColor.toRGBA())

	center := b.view.Center()
	st := b.view.State()
	b.drawMarker(screen, center, st)

	src, canRender := b.face.(faceSource)
	for _, obj := range b.registry.Boxes() {
		tb := b.editors[obj.ID]
		if tb == nil {
			continue
		}
		rect := screenRect(obj.X, obj.Y, tb.size, center, st)
		focused := obj.ID == b.focused
		if focused {
			vector.StrokeRect(screen, float32(rect.X), float32(rect.Y),
				float32(rect.Width), float32(rect.Height), 1, focusColor.toRGBA(), true)
		}
		if !canRender {
			continue
		}
		content, col := tb.DisplayText(), textColor
		if content == "" && focused {
			content, col = placeholder, placeholderColor
		}
		b.drawText(screen, src, content, rect.X, rect.Y, st.Scale, col)
	}

	if tb := b.focusedEditor(); tb != nil {
		b.drawCaret(screen, tb)
	}
	if b.showHUD {
		b.drawHUD(screen)
	}
	b.flushScreenshots(screen)
}

// drawMarker draws the cross centered on the canvas origin. It is rendered
// once and drawn through the canvas matrix, so it zooms with the boxes.
func (b *Board) drawMarker(screen *ebiten.Image, center Vec2, st ViewState) {
	if b.marker == nil {
		b.marker = ebiten.NewImage(markerSize, markerSize)
		c := markerColor.toRGBA()
		half := float32(markerSize) / 2
		vector.StrokeLine(b.marker, 0, half, markerSize, half, markerStroke, c, false)
		vector.StrokeLine(b.marker, half, 0, half, markerSize, markerStroke, c, false)
	}
	op := &ebiten.DrawImageOptions{GeoM: geoM(markerMatrix(center, st))}
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(b.marker, op)
}

// markerMatrix maps the marker image into screen space with its center on
// the canvas origin.
func markerMatrix(center Vec2, st ViewState) [6]float64 {
	offset := [6]float64{1, 0, 0, 1, -markerSize / 2, -markerSize / 2}
	return multiplyAffine(canvasMatrix(center, st), offset)
}

// drawText lays out s line by line at the zoomed font size.
func (b *Board) drawText(screen *ebiten.Image, src faceSource, s string, x, y, scale float64, col Color) {
	size := b.fit.BaseFontSize * scale
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.LineSpacing = b.face.LineHeight(size)
	op.ColorScale.ScaleWithColor(col.toRGBA())
	text.Draw(screen, s, src.Face(size), op)
}

// caretCanvasPosition returns the caret's top in canvas space and its height.
func (b *Board) caretCanvasPosition(tb *TextBox) (x, y, h float64) {
	obj, _ := b.registry.Get(tb.id)
	line, prefix := tb.caretLocation()
	base := b.fit.BaseFontSize
	w, _ := b.face.Measure(prefix, base)
	lh := b.face.LineHeight(base)
	return obj.X + w, obj.Y + float64(line)*lh, lh
}

// caretScreenPosition anchors the input-method candidate window.
func (b *Board) caretScreenPosition() (x, y float64) {
	tb := b.focusedEditor()
	if tb == nil {
		return 0, 0
	}
	cx, cy, h := b.caretCanvasPosition(tb)
	return b.view.CanvasToScreen(cx, cy+h)
}

func (b *Board) drawCaret(screen *ebiten.Image, tb *TextBox) {
	if b.caret.alpha <= 0 {
		return
	}
	cx, cy, h := b.caretCanvasPosition(tb)
	sx, sy := b.view.CanvasToScreen(cx, cy)
	h *= b.view.State().Scale
	col := textColor
	col.A = float64(b.caret.alpha)
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(sx), float32(sy+h), caretWidth, col.toRGBA(), true)
}
