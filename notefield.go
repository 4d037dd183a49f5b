package notefield

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// toRGBA converts to a premultiplied color.RGBA for Ebitengine calls.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for points, offsets, and sizes.
type Vec2 struct {
	X, Y float64
}

// Size is the width and height of a text box in canvas units.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// EventType identifies a kind of input event.
type EventType uint8

const (
	EventPointerDown       EventType = iota // a pointer button was pressed
	EventPointerUp                          // a pointer button was released
	EventPointerMove                        // the pointer moved
	EventPointerLeave                       // the pointer left the viewport
	EventWheel                              // the wheel was scrolled
	EventKeyDown                            // a key was pressed
	EventKeyUp                              // a key was released
	EventTextInput                          // committed text arrived outside a composition
	EventCompositionStart                   // an input method began composing
	EventCompositionUpdate                  // the in-progress composition text changed
	EventCompositionEnd                     // the composition finished; Text holds the committed result
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Shortcut reports whether the platform shortcut modifier (Ctrl or Cmd) is held.
func (m KeyModifiers) Shortcut() bool {
	return m&(ModCtrl|ModMeta) != 0
}

// Key identifies the keys the board reacts to. Printable characters arrive
// as EventTextInput instead.
type Key uint8

const (
	KeyUnknown Key = iota
	KeySpace
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyDigit0
	KeyNumpad0
	KeyC
	KeyV
	KeyF3
	KeyF12
)

var keyNames = map[string]Key{
	"space":     KeySpace,
	"escape":    KeyEscape,
	"enter":     KeyEnter,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"left":      KeyLeft,
	"right":     KeyRight,
	"home":      KeyHome,
	"end":       KeyEnd,
	"0":         KeyDigit0,
	"numpad0":   KeyNumpad0,
	"c":         KeyC,
	"v":         KeyV,
	"f3":        KeyF3,
	"f12":       KeyF12,
}

// ParseKey maps a lowercase key name ("escape", "0", "f12", ...) to a Key.
// Unknown names yield KeyUnknown.
func ParseKey(name string) Key {
	return keyNames[name]
}

// Event is a single input event in screen coordinates. Fields that do not
// apply to Type are zero.
type Event struct {
	Type      EventType
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers
	// WheelY follows Ebitengine: positive when scrolling up (zoom in).
	WheelY float64
	Key    Key
	Text   string
}
