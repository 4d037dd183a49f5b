package notefield

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Typeface measures text at an arbitrary pixel size. Auto-fit only depends
// on this contract, so tests can supply a deterministic implementation.
type Typeface interface {
	// Measure returns the width and height of a single line of text.
	Measure(s string, size float64) (width, height float64)
	// LineHeight returns the vertical distance between baselines.
	LineHeight(size float64) float64
}

// faceSource is implemented by typefaces that can also render.
type faceSource interface {
	Face(size float64) text.Face
}

// maxCachedFaces bounds the per-size face cache; zooming walks through many
// sizes over a session.
const maxCachedFaces = 64

// TTFTypeface wraps Ebitengine's text/v2 for TrueType measurement and
// rendering at any size.
type TTFTypeface struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// LoadTTFTypeface parses TrueType/OpenType font data.
func LoadTTFTypeface(ttfData []byte) (*TTFTypeface, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("notefield: failed to parse TTF data: %w", err)
	}
	return &TTFTypeface{
		source: source,
		faces:  make(map[float64]*text.GoTextFace),
	}, nil
}

// DefaultTypeface loads Go Regular from golang.org/x/image.
func DefaultTypeface() (*TTFTypeface, error) {
	return LoadTTFTypeface(goregular.TTF)
}

func (t *TTFTypeface) goFace(size float64) *text.GoTextFace {
	if f, ok := t.faces[size]; ok {
		return f
	}
	if len(t.faces) >= maxCachedFaces {
		clear(t.faces)
	}
	f := &text.GoTextFace{Source: t.source, Size: size}
	t.faces[size] = f
	return f
}

// Face returns a text/v2 face at the given size for drawing.
func (t *TTFTypeface) Face(size float64) text.Face {
	return t.goFace(size)
}

// Measure returns the width and height of the rendered text.
func (t *TTFTypeface) Measure(s string, size float64) (width, height float64) {
	return text.Measure(s, t.goFace(size), t.LineHeight(size))
}

// LineHeight returns ascent + descent + line gap at the given size.
func (t *TTFTypeface) LineHeight(size float64) float64 {
	m := t.goFace(size).Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}
