package notefield

import "math"

// Default zoom limits and wheel step.
const (
	DefaultMinScale  = 0.25
	DefaultMaxScale  = 3.0
	DefaultScaleStep = 0.1
)

// ViewState is the pan offset and zoom scale of the canvas layer.
type ViewState struct {
	PanX, PanY float64
	Scale      float64
}

// DefaultViewState returns the origin view: no pan, scale 1.
func DefaultViewState() ViewState {
	return ViewState{Scale: 1}
}

// ZoomDirection selects whether Zoom steps the scale up or down.
type ZoomDirection int

const (
	ZoomOut ZoomDirection = -1
	ZoomIn  ZoomDirection = 1
)

// panSnapshot is captured by BeginPan. UpdatePan always works from it so
// the pan never accumulates drift from intermediate moves.
type panSnapshot struct {
	active    bool
	captured  bool
	startX    float64
	startY    float64
	startPanX float64
	startPanY float64
}

// View owns the ViewState and the viewport geometry it is projected into.
// It is the only writer of pan and scale.
type View struct {
	// MinScale and MaxScale bound Scale after every Zoom.
	MinScale, MaxScale float64
	// ScaleStep is added to or subtracted from Scale per Zoom call.
	ScaleStep float64

	state ViewState

	viewport    Rect
	hasViewport bool
	// fallbackCenter is used before the first Layout reports a viewport.
	fallbackCenter func() Vec2

	pan panSnapshot
}

// NewView creates a View at the default state with the default limits.
// fallback supplies a viewport center while no viewport is known; nil
// means the screen origin.
func NewView(fallback func() Vec2) *View {
	return &View{
		MinScale:       DefaultMinScale,
		MaxScale:       DefaultMaxScale,
		ScaleStep:      DefaultScaleStep,
		state:          DefaultViewState(),
		fallbackCenter: fallback,
	}
}

// State returns a copy of the current view state.
func (v *View) State() ViewState {
	return v.state
}

// SetViewport records the live viewport bounds in screen space.
func (v *View) SetViewport(r Rect) {
	v.viewport = r
	v.hasViewport = r.Width > 0 && r.Height > 0
}

// Viewport returns the viewport bounds and whether they are known yet.
func (v *View) Viewport() (Rect, bool) {
	return v.viewport, v.hasViewport
}

// Center returns the screen position of the canvas origin before panning:
// the middle of the viewport, or the fallback while no viewport is known.
func (v *View) Center() Vec2 {
	if v.hasViewport {
		return v.viewport.Center()
	}
	if v.fallbackCenter != nil {
		return v.fallbackCenter()
	}
	return Vec2{}
}

// ScreenToCanvas converts a screen point using the current state and center.
func (v *View) ScreenToCanvas(sx, sy float64) (x, y float64) {
	return ScreenToCanvas(sx, sy, v.Center(), v.state)
}

// CanvasToScreen converts a canvas point using the current state and center.
func (v *View) CanvasToScreen(x, y float64) (sx, sy float64) {
	return CanvasToScreen(x, y, v.Center(), v.state)
}

// Zoom steps the scale in the given direction, clamped to
// [MinScale, MaxScale], keeping the canvas point under the cursor fixed on
// screen. Reports whether the scale changed.
func (v *View) Zoom(cursorX, cursorY float64, dir ZoomDirection) bool {
	prev := v.state
	center := v.Center()

	newScale := math.Min(v.MaxScale, math.Max(v.MinScale, prev.Scale+float64(dir)*v.ScaleStep))

	cx := (cursorX - center.X - prev.PanX) / prev.Scale
	cy := (cursorY - center.Y - prev.PanY) / prev.Scale

	v.state = ViewState{
		PanX:  cursorX - center.X - cx*newScale,
		PanY:  cursorY - center.Y - cy*newScale,
		Scale: newScale,
	}
	return newScale != prev.Scale
}

// BeginPan snapshots the pointer and pan offset and enters the Panning
// state. A captured pan keeps running when the pointer leaves the viewport.
func (v *View) BeginPan(x, y float64, capture bool) {
	v.pan = panSnapshot{
		active:    true,
		captured:  capture,
		startX:    x,
		startY:    y,
		startPanX: v.state.PanX,
		startPanY: v.state.PanY,
	}
}

// UpdatePan sets the pan to the start pan plus the pointer delta since
// BeginPan. No-op while Idle.
func (v *View) UpdatePan(x, y float64) {
	if !v.pan.active {
		return
	}
	v.state.PanX = v.pan.startPanX + (x - v.pan.startX)
	v.state.PanY = v.pan.startPanY + (y - v.pan.startY)
}

// EndPan returns to Idle. Safe to call when not panning.
func (v *View) EndPan() {
	v.pan = panSnapshot{}
}

// Panning reports whether a pan drag is active.
func (v *View) Panning() bool {
	return v.pan.active
}

// Captured reports whether the active pan holds pointer capture.
func (v *View) Captured() bool {
	return v.pan.active && v.pan.captured
}

// ResetToOrigin restores the default view state.
func (v *View) ResetToOrigin() {
	v.state = DefaultViewState()
}

// NudgePan adds (dx, dy) to the pan offset.
func (v *View) NudgePan(dx, dy float64) {
	v.state.PanX += dx
	v.state.PanY += dy
}
