package notefield

import (
	"strings"
	"unicode/utf8"
)

// compositionState is the input-method protocol state of a box.
type compositionState uint8

const (
	compositionIdle compositionState = iota
	compositionComposing
)

// TextBox is the editing state of one registered box: the committed text
// and caret, any in-progress composition, and the last fitted size. The
// registry holds the canonical text; TextBox pushes to it only when text
// is committed.
type TextBox struct {
	id string

	text  string
	caret int // byte offset into text, always on a rune boundary

	comp    compositionState
	preedit string

	size    Size
	pending FrameHandle
	// graceLeft counts the ticks until the box's grace flag expires.
	graceLeft int
}

func newTextBox(id string) *TextBox {
	return &TextBox{id: id}
}

// ID returns the registry id of the box.
func (tb *TextBox) ID() string { return tb.id }

// Text returns the committed text.
func (tb *TextBox) Text() string { return tb.text }

// Size returns the last fitted canvas-space size.
func (tb *TextBox) Size() Size { return tb.size }

// Composing reports whether an input-method composition is in progress.
func (tb *TextBox) Composing() bool { return tb.comp == compositionComposing }

// DisplayText returns the text as it should look on screen: the committed
// text with any composition text spliced in at the caret.
func (tb *TextBox) DisplayText() string {
	if tb.comp != compositionComposing || tb.preedit == "" {
		return tb.text
	}
	return tb.text[:tb.caret] + tb.preedit + tb.text[tb.caret:]
}

// displayCaret is the caret offset within DisplayText.
func (tb *TextBox) displayCaret() int {
	if tb.comp == compositionComposing {
		return tb.caret + len(tb.preedit)
	}
	return tb.caret
}

// Insert types s at the caret. Returns false when nothing changed.
func (tb *TextBox) Insert(s string) bool {
	if s == "" {
		return false
	}
	tb.text = tb.text[:tb.caret] + s + tb.text[tb.caret:]
	tb.caret += len(s)
	return true
}

// Backspace removes the rune before the caret.
func (tb *TextBox) Backspace() bool {
	if tb.caret == 0 {
		return false
	}
	_, n := utf8.DecodeLastRuneInString(tb.text[:tb.caret])
	tb.text = tb.text[:tb.caret-n] + tb.text[tb.caret:]
	tb.caret -= n
	return true
}

// DeleteForward removes the rune after the caret.
func (tb *TextBox) DeleteForward() bool {
	if tb.caret >= len(tb.text) {
		return false
	}
	_, n := utf8.DecodeRuneInString(tb.text[tb.caret:])
	tb.text = tb.text[:tb.caret] + tb.text[tb.caret+n:]
	return true
}

// MoveCaret moves the caret by delta runes, clamped to the text.
func (tb *TextBox) MoveCaret(delta int) {
	for ; delta < 0 && tb.caret > 0; delta++ {
		_, n := utf8.DecodeLastRuneInString(tb.text[:tb.caret])
		tb.caret -= n
	}
	for ; delta > 0 && tb.caret < len(tb.text); delta-- {
		_, n := utf8.DecodeRuneInString(tb.text[tb.caret:])
		tb.caret += n
	}
}

// LineStart moves the caret to the start of its line.
func (tb *TextBox) LineStart() {
	tb.caret = strings.LastIndexByte(tb.text[:tb.caret], '\n') + 1
}

// LineEnd moves the caret to the end of its line.
func (tb *TextBox) LineEnd() {
	if i := strings.IndexByte(tb.text[tb.caret:], '\n'); i >= 0 {
		tb.caret += i
		return
	}
	tb.caret = len(tb.text)
}

// BeginComposition enters the Composing state.
func (tb *TextBox) BeginComposition() {
	tb.comp = compositionComposing
	tb.preedit = ""
}

// UpdateComposition replaces the in-progress text. It starts a composition
// if none is active. Committed text is not touched.
func (tb *TextBox) UpdateComposition(s string) {
	if tb.comp != compositionComposing {
		tb.BeginComposition()
	}
	tb.preedit = s
}

// EndComposition leaves the Composing state and inserts committed at the
// caret. Reports whether the committed text changed; outside a composition
// it is a plain Insert.
func (tb *TextBox) EndComposition(committed string) bool {
	tb.comp = compositionIdle
	tb.preedit = ""
	return tb.Insert(committed)
}

// caretLocation returns the caret's line index and the display text of
// that line up to the caret.
func (tb *TextBox) caretLocation() (line int, prefix string) {
	display := tb.DisplayText()
	before := display[:tb.displayCaret()]
	line = strings.Count(before, "\n")
	return line, before[strings.LastIndexByte(before, '\n')+1:]
}

// caretFromPoint places the caret nearest to a canvas-space point relative
// to the box's top-left corner.
func (tb *TextBox) caretFromPoint(face Typeface, lx, ly float64, opts FitOptions) {
	lines := strings.Split(tb.text, "\n")
	lh := face.LineHeight(opts.BaseFontSize)
	line := 0
	if lh > 0 {
		line = int(ly / lh)
	}
	line = max(0, min(line, len(lines)-1))

	offset := 0
	for i := 0; i < line; i++ {
		offset += len(lines[i]) + 1
	}

	best, bestDist := 0, -1.0
	for i := 0; i <= len(lines[line]); {
		w, _ := face.Measure(lines[line][:i], opts.BaseFontSize)
		d := w - lx
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
		if i == len(lines[line]) {
			break
		}
		_, n := utf8.DecodeRuneInString(lines[line][i:])
		i += n
	}
	tb.caret = offset + best
}
