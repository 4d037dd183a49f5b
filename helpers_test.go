package notefield

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// monoFace is a deterministic Typeface: every rune is half the font size
// wide and lines are 1.25x the font size tall.
type monoFace struct{}

func (monoFace) Measure(s string, size float64) (float64, float64) {
	return float64(len([]rune(s))) * size / 2, size * 1.25
}

func (monoFace) LineHeight(size float64) float64 { return size * 1.25 }

// seqIDs hands out "id-1", "id-2", ... unless a fixed script is given,
// which is consumed first.
type seqIDs struct {
	script []string
	n      int
}

func (g *seqIDs) NewID() string {
	if len(g.script) > 0 {
		id := g.script[0]
		g.script = g.script[1:]
		return id
	}
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type fakeClipboard struct {
	text string
	fail bool
}

func (c *fakeClipboard) ReadAll() (string, error) {
	if c.fail {
		return "", errors.New("clipboard unavailable")
	}
	return c.text, nil
}

func (c *fakeClipboard) WriteAll(s string) error {
	if c.fail {
		return errors.New("clipboard unavailable")
	}
	c.text = s
	return nil
}

type recordingSink struct {
	events []BoxEvent
}

func (s *recordingSink) EmitEvent(e BoxEvent) { s.events = append(s.events, e) }

func (s *recordingSink) types() []BoxEventType {
	out := make([]BoxEventType, len(s.events))
	for i, e := range s.events {
		out[i] = e.Type
	}
	return out
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestBoard returns a headless 800x600 board with fakes for every
// collaborator, so the viewport center is (400, 300).
func newTestBoard(t *testing.T) (*Board, *fakeClipboard) {
	t.Helper()
	clip := &fakeClipboard{}
	b, err := NewBoard(Options{
		Typeface:      monoFace{},
		IDs:           &seqIDs{},
		Clipboard:     clip,
		Logger:        quietLogger(),
		ScreenshotDir: t.TempDir(),
		Headless:      true,
	})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	b.Layout(800, 600)
	t.Cleanup(b.Close)
	return b, clip
}

// tick runs n Update calls.
func tick(t *testing.T, b *Board, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := b.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
}

// drain ticks until the inject queue is empty and deferred work has run.
func drain(t *testing.T, b *Board) {
	t.Helper()
	for i := 0; i < 1000 && (len(b.injectQueue) > 0 || b.frames.Pending() > 0); i++ {
		tick(t, b, 1)
	}
	if len(b.injectQueue) > 0 || b.frames.Pending() > 0 {
		t.Fatal("board did not settle")
	}
}
