package notefield

import (
	"strings"

	"github.com/atotto/clipboard"
)

// Clipboard reads and writes plain text on the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// pasteInto inserts the clipboard text at the focused box's caret.
func (b *Board) pasteInto(tb *TextBox) {
	s, err := b.clipboard.ReadAll()
	if err != nil {
		b.log.Warn("clipboard read failed", "err", err)
		return
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if tb.Insert(s) {
		b.textEdited(tb)
	}
}

// copyFrom writes the focused box's committed text to the clipboard.
func (b *Board) copyFrom(tb *TextBox) {
	if err := b.clipboard.WriteAll(tb.Text()); err != nil {
		b.log.Warn("clipboard write failed", "err", err)
	}
}
