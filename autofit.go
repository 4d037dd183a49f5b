package notefield

import "strings"

// FitOptions holds the auto-fit constants. They were chosen by eye and are
// exposed through config rather than derived.
type FitOptions struct {
	// BaseFontSize is the canvas-space font size of every box.
	BaseFontSize float64
	// MinVisibleHeight is the height floor in canvas units.
	MinVisibleHeight float64
	// WidthSlack is added to measured widths so the caret is not clipped.
	WidthSlack float64
	// SampleText repeated MinWidthChars times sets the width floor.
	SampleText    string
	MinWidthChars int
}

// DefaultFitOptions returns 16px text, a 20px height floor, 2px of width
// slack and a floor of ten "M" characters.
func DefaultFitOptions() FitOptions {
	return FitOptions{
		BaseFontSize:     16,
		MinVisibleHeight: 20,
		WidthSlack:       2,
		SampleText:       "M",
		MinWidthChars:    10,
	}
}

// canvasWidth measures s at the on-screen size for scale and converts the
// result back to canvas units.
func canvasWidth(face Typeface, s string, scale float64, opts FitOptions) float64 {
	w, _ := face.Measure(s, opts.BaseFontSize*scale)
	return w/scale + opts.WidthSlack
}

// MinWidth returns the width floor in canvas units at the given scale.
func MinWidth(face Typeface, scale float64, opts FitOptions) float64 {
	if scale <= 0 {
		scale = 1
	}
	return canvasWidth(face, strings.Repeat(opts.SampleText, opts.MinWidthChars), scale, opts)
}

// FitBox computes the canvas-space size that shows content without clipping
// and without slack beyond the floors. content may include in-progress
// composition text.
func FitBox(face Typeface, content string, scale float64, opts FitOptions) Size {
	if scale <= 0 {
		scale = 1
	}
	lines := strings.Split(content, "\n")

	var width float64
	for _, line := range lines {
		if line == "" {
			line = " "
		}
		width = max(width, canvasWidth(face, line, scale, opts))
	}
	width = max(width, MinWidth(face, scale, opts))

	height := float64(len(lines)) * face.LineHeight(opts.BaseFontSize)
	height = max(height, opts.MinVisibleHeight)

	return Size{Width: width, Height: height}
}
