package notefield

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/exp/textinput"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyMap translates the Ebitengine keys the board cares about.
var keyMap = map[ebiten.Key]Key{
	ebiten.KeySpace:       KeySpace,
	ebiten.KeyEscape:      KeyEscape,
	ebiten.KeyEnter:       KeyEnter,
	ebiten.KeyNumpadEnter: KeyEnter,
	ebiten.KeyBackspace:   KeyBackspace,
	ebiten.KeyDelete:      KeyDelete,
	ebiten.KeyArrowLeft:   KeyLeft,
	ebiten.KeyArrowRight:  KeyRight,
	ebiten.KeyHome:        KeyHome,
	ebiten.KeyEnd:         KeyEnd,
	ebiten.KeyDigit0:      KeyDigit0,
	ebiten.KeyNumpad0:     KeyNumpad0,
	ebiten.KeyC:           KeyC,
	ebiten.KeyV:           KeyV,
	ebiten.KeyF3:          KeyF3,
	ebiten.KeyF12:         KeyF12,
}

var mouseButtons = [...]struct {
	eb  ebiten.MouseButton
	btn MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// ebitenInput turns Ebitengine's polled input state into Events once per
// tick, and runs the text-input session for the focused box.
type ebitenInput struct {
	lastX, lastY float64
	inside       bool
	keyBuf       []ebiten.Key
	charBuf      []rune
	events       []Event

	// Text-input session state.
	states    <-chan textinput.State
	closeFn   func()
	composing bool
}

func newEbitenInput() *ebitenInput {
	return &ebitenInput{}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// poll collects this tick's events. The returned slice is reused on the
// next call.
func (in *ebitenInput) poll(b *Board) []Event {
	in.events = in.events[:0]
	mods := readModifiers()

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	vp, ok := b.view.Viewport()
	inside := ebiten.IsFocused() && (!ok || vp.Contains(x, y))

	if x != in.lastX || y != in.lastY {
		in.events = append(in.events, Event{Type: EventPointerMove, X: x, Y: y, Modifiers: mods})
		in.lastX, in.lastY = x, y
	}
	if in.inside && !inside {
		in.events = append(in.events, Event{Type: EventPointerLeave, X: x, Y: y, Modifiers: mods})
	}
	in.inside = inside

	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.eb) && inside {
			in.events = append(in.events, Event{Type: EventPointerDown, X: x, Y: y, Button: mb.btn, Modifiers: mods})
		}
		if inpututil.IsMouseButtonJustReleased(mb.eb) {
			in.events = append(in.events, Event{Type: EventPointerUp, X: x, Y: y, Button: mb.btn, Modifiers: mods})
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 && inside {
		in.events = append(in.events, Event{Type: EventWheel, X: x, Y: y, WheelY: wy, Modifiers: mods})
	}

	in.keyBuf = inpututil.AppendJustPressedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		if key, ok := keyMap[k]; ok {
			in.events = append(in.events, Event{Type: EventKeyDown, Key: key, Modifiers: mods})
		}
	}
	in.keyBuf = inpututil.AppendJustReleasedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		if key, ok := keyMap[k]; ok {
			in.events = append(in.events, Event{Type: EventKeyUp, Key: key, Modifiers: mods})
		}
	}

	if b.focused != "" && !mods.Shortcut() {
		in.readText(b)
	}
	return in.events
}

// readText drains the input-method session without blocking. Platforms
// without session support fall back to plain typed characters.
func (in *ebitenInput) readText(b *Board) {
	if in.states == nil {
		x, y := b.caretScreenPosition()
		in.states, in.closeFn = textinput.Start(int(x), int(y))
		in.composing = false
	}
	if in.states == nil {
		in.charBuf = ebiten.AppendInputChars(in.charBuf[:0])
		if len(in.charBuf) > 0 {
			in.events = append(in.events, Event{Type: EventTextInput, Text: string(in.charBuf)})
		}
		return
	}

	for {
		select {
		case st, ok := <-in.states:
			if !ok {
				in.states, in.closeFn = nil, nil
				if in.composing {
					in.events = append(in.events, Event{Type: EventCompositionEnd})
					in.composing = false
				}
				return
			}
			if st.Error != nil {
				b.log.Warn("text input session failed", "err", st.Error)
				in.endSession()
				return
			}
			in.translate(st)
		default:
			return
		}
	}
}

// translate maps a session state onto the composition protocol.
func (in *ebitenInput) translate(st textinput.State) {
	switch {
	case st.Committed && in.composing:
		in.events = append(in.events, Event{Type: EventCompositionEnd, Text: st.Text})
		in.composing = false
	case st.Committed:
		in.events = append(in.events, Event{Type: EventTextInput, Text: st.Text})
	case !in.composing && st.Text != "":
		in.events = append(in.events,
			Event{Type: EventCompositionStart},
			Event{Type: EventCompositionUpdate, Text: st.Text})
		in.composing = true
	case in.composing && st.Text == "":
		// Composition cancelled.
		in.events = append(in.events, Event{Type: EventCompositionEnd})
		in.composing = false
	case in.composing:
		in.events = append(in.events, Event{Type: EventCompositionUpdate, Text: st.Text})
	}
}

// syncSession closes the session once nothing is focused.
func (in *ebitenInput) syncSession(b *Board) {
	if b.focused == "" {
		in.endSession()
	}
}

func (in *ebitenInput) endSession() {
	if in.closeFn != nil {
		in.closeFn()
	}
	in.states, in.closeFn = nil, nil
	in.composing = false
}

// updateCursor picks the mouse cursor: a move cursor while the pan
// modifier is held or a pan is running, a text cursor over boxes, and a
// crosshair elsewhere.
func (in *ebitenInput) updateCursor(b *Board) {
	switch {
	case b.spaceHeld || b.view.Panning():
		ebiten.SetCursorShape(ebiten.CursorShapeMove)
	case b.hovering:
		ebiten.SetCursorShape(ebiten.CursorShapeText)
	default:
		ebiten.SetCursorShape(ebiten.CursorShapeCrosshair)
	}
}
