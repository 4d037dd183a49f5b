package notefield

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// Options configures a Board. Zero values select the defaults.
type Options struct {
	// Typeface measures and renders box text. Defaults to Go Regular.
	Typeface Typeface
	// Fit holds the auto-fit constants. Defaults to DefaultFitOptions.
	Fit *FitOptions
	// MinScale, MaxScale and ScaleStep override the zoom limits.
	MinScale, MaxScale, ScaleStep float64
	// IDs generates box ids. Defaults to UUIDv7-based ids.
	IDs IDGenerator
	// Clipboard backs Ctrl/Cmd+C and Ctrl/Cmd+V. Defaults to the system clipboard.
	Clipboard Clipboard
	// Logger receives board logs. Defaults to slog.Default().
	Logger *slog.Logger
	// FallbackCenter supplies the viewport center before the first Layout.
	// Defaults to the middle of the window.
	FallbackCenter func() Vec2
	// ScreenshotDir is where F12 and scripted screenshots go.
	ScreenshotDir string
	// Headless skips polling Ebitengine input; only injected events are seen.
	Headless bool
}

// Board is the infinite canvas: it owns the view, the registry, the
// per-box editors and the frame scheduler, and implements ebiten.Game.
type Board struct {
	view     *View
	registry *Registry
	editors  map[string]*TextBox
	frames   FrameScheduler

	face Typeface
	fit  FitOptions

	focused   string
	spaceHeld bool
	hovering  bool

	input       *ebitenInput
	injectQueue []Event
	runner      *ScriptRunner

	clipboard Clipboard
	sink      EventSink
	log       *slog.Logger
	caret     *caretBlink

	// ClearColor fills the screen before drawing.
	ClearColor Color
	// ScreenshotDir is the output directory for Screenshot.
	ScreenshotDir   string
	screenshotQueue []string
	showHUD         bool
	marker          *ebiten.Image
}

// NewBoard creates an empty board.
func NewBoard(opts Options) (*Board, error) {
	face := opts.Typeface
	if face == nil {
		ttf, err := DefaultTypeface()
		if err != nil {
			return nil, fmt.Errorf("notefield: default typeface: %w", err)
		}
		face = ttf
	}
	fit := DefaultFitOptions()
	if opts.Fit != nil {
		fit = *opts.Fit
	}
	if fit.BaseFontSize <= 0 {
		return nil, fmt.Errorf("notefield: base font size must be positive, got %v", fit.BaseFontSize)
	}

	fallback := opts.FallbackCenter
	if fallback == nil {
		fallback = windowCenter
	}
	view := NewView(fallback)
	if opts.MinScale > 0 {
		view.MinScale = opts.MinScale
	}
	if opts.MaxScale > 0 {
		view.MaxScale = opts.MaxScale
	}
	if opts.ScaleStep > 0 {
		view.ScaleStep = opts.ScaleStep
	}
	if view.MinScale > view.MaxScale {
		return nil, fmt.Errorf("notefield: min scale %v exceeds max scale %v", view.MinScale, view.MaxScale)
	}

	clip := opts.Clipboard
	if clip == nil {
		clip = systemClipboard{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With(slog.String("component", "board"))
	}
	dir := opts.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}

	b := &Board{
		view:          view,
		registry:      NewRegistry(opts.IDs),
		editors:       make(map[string]*TextBox),
		face:          face,
		fit:           fit,
		clipboard:     clip,
		log:           logger,
		caret:         newCaretBlink(),
		ClearColor:    Color{R: 0.98, G: 0.98, B: 0.97, A: 1},
		ScreenshotDir: dir,
	}
	if !opts.Headless {
		b.input = newEbitenInput()
	}
	return b, nil
}

// windowCenter is the viewport center used before Layout has run.
func windowCenter() Vec2 {
	w, h := ebiten.WindowSize()
	return Vec2{X: float64(w) / 2, Y: float64(h) / 2}
}

// View returns the board's view state manager.
func (b *Board) View() *View { return b.view }

// Registry returns the board's text box registry.
func (b *Board) Registry() *Registry { return b.registry }

// Editor returns the editing state of a box.
func (b *Board) Editor(id string) (*TextBox, bool) {
	tb, ok := b.editors[id]
	return tb, ok
}

// Focused returns the id of the focused box, or "".
func (b *Board) Focused() string { return b.focused }

// Update runs deferred frame work, then the script runner, then input.
func (b *Board) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	b.expireGrace()
	b.frames.Flush()

	if b.runner != nil {
		b.runner.step(b)
	}

	if !b.processInjectedInput() && b.input != nil {
		for _, ev := range b.input.poll(b) {
			b.HandleEvent(ev)
		}
		b.input.syncSession(b)
		b.input.updateCursor(b)
	}

	b.caret.update(dt)
	return nil
}

// Layout records the window size as the live viewport.
func (b *Board) Layout(outsideWidth, outsideHeight int) (int, int) {
	b.view.SetViewport(Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	return outsideWidth, outsideHeight
}

// Close cancels all deferred work and ends any input-method session.
func (b *Board) Close() {
	b.frames.CancelAll()
	for _, tb := range b.editors {
		tb.pending = 0
	}
	if b.input != nil {
		b.input.endSession()
	}
}

// HandleEvent applies one input event.
func (b *Board) HandleEvent(ev Event) {
	switch ev.Type {
	case EventPointerDown:
		b.pointerDown(ev)
	case EventPointerMove:
		b.view.UpdatePan(ev.X, ev.Y)
		b.hovering = b.hitTest(ev.X, ev.Y) != ""
	case EventPointerUp:
		b.view.EndPan()
	case EventPointerLeave:
		if !b.view.Captured() {
			b.view.EndPan()
		}
	case EventWheel:
		b.wheel(ev)
	case EventKeyDown:
		b.keyDown(ev)
	case EventKeyUp:
		if ev.Key == KeySpace {
			b.spaceHeld = false
			b.view.EndPan()
		}
	case EventTextInput:
		if tb := b.focusedEditor(); tb != nil && tb.Insert(ev.Text) {
			b.textEdited(tb)
		}
	case EventCompositionStart:
		if tb := b.focusedEditor(); tb != nil {
			tb.BeginComposition()
			b.registry.ClearNewlyCreated(tb.id)
		}
	case EventCompositionUpdate:
		if tb := b.focusedEditor(); tb != nil {
			tb.UpdateComposition(ev.Text)
			b.scheduleAdjust(tb)
		}
	case EventCompositionEnd:
		if tb := b.focusedEditor(); tb != nil {
			tb.EndComposition(ev.Text)
			b.textEdited(tb)
		}
	}
}

func (b *Board) pointerDown(ev Event) {
	middle := ev.Button == MouseButtonMiddle
	if middle || (ev.Button == MouseButtonLeft && b.spaceHeld) {
		b.blur()
		b.view.BeginPan(ev.X, ev.Y, middle)
		return
	}
	if ev.Button != MouseButtonLeft {
		return
	}

	if id := b.hitTest(ev.X, ev.Y); id != "" {
		b.focus(id)
		if tb := b.editors[id]; tb != nil {
			obj, _ := b.registry.Get(id)
			cx, cy := b.view.ScreenToCanvas(ev.X, ev.Y)
			tb.caretFromPoint(b.face, cx-obj.X, cy-obj.Y, b.fit)
			b.caret.reset()
		}
		return
	}

	// A press on the background takes focus away from the current box.
	b.blur()
	sx, sy := ev.X, ev.Y
	b.frames.Request(func() {
		// Converted when the frame runs so any pan applied since the press
		// (auto-pan from the blur, a zoom) is taken into account.
		x, y := b.view.ScreenToCanvas(sx, sy)
		b.createAt(x, y)
	})
}

func (b *Board) wheel(ev Event) {
	if ev.WheelY == 0 {
		return
	}
	dir := ZoomIn
	if ev.WheelY < 0 {
		dir = ZoomOut
	}
	if b.view.Zoom(ev.X, ev.Y, dir) {
		b.log.Debug("zoom", slog.Float64("scale", b.view.State().Scale))
		b.refitAll()
	}
}

func (b *Board) keyDown(ev Event) {
	tb := b.focusedEditor()
	switch ev.Key {
	case KeySpace:
		b.spaceHeld = true
		return
	case KeyEscape:
		b.blur()
		return
	case KeyDigit0, KeyNumpad0:
		if ev.Modifiers.Shortcut() && tb == nil {
			b.view.ResetToOrigin()
			b.log.Debug("view reset to origin")
			b.refitAll()
		}
		return
	case KeyF3:
		b.showHUD = !b.showHUD
		return
	case KeyF12:
		b.Screenshot("manual")
		return
	}

	if tb == nil || tb.Composing() {
		return
	}
	changed := false
	switch ev.Key {
	case KeyBackspace:
		changed = tb.Backspace()
	case KeyDelete:
		changed = tb.DeleteForward()
	case KeyEnter:
		changed = tb.Insert("\n")
	case KeyLeft:
		tb.MoveCaret(-1)
	case KeyRight:
		tb.MoveCaret(1)
	case KeyHome:
		tb.LineStart()
	case KeyEnd:
		tb.LineEnd()
	case KeyC:
		if ev.Modifiers.Shortcut() {
			b.copyFrom(tb)
		}
	case KeyV:
		if ev.Modifiers.Shortcut() {
			b.pasteInto(tb)
		}
	}
	b.caret.reset()
	if changed {
		b.textEdited(tb)
	}
}

// CreateBoxAt adds a box at a canvas position and focuses it.
func (b *Board) CreateBoxAt(x, y float64) string {
	return b.createAt(x, y)
}

func (b *Board) createAt(x, y float64) string {
	id := b.registry.Create(x, y)
	tb := newTextBox(id)
	tb.graceLeft = graceTicks()
	b.editors[id] = tb
	obj, _ := b.registry.Get(id)
	b.log.Debug("box created", slog.String("id", id), slog.Float64("x", x), slog.Float64("y", y))
	b.emit(BoxCreated, obj)

	if target := b.registry.AutoFocusTarget(); target != "" {
		b.registry.ClearAutoFocus()
		b.focus(target)
	}
	b.scheduleAdjust(tb)
	return id
}

// DeleteBox removes a box and cancels its deferred work. Unknown ids are
// ignored.
func (b *Board) DeleteBox(id string) {
	obj, ok := b.registry.Get(id)
	if !ok {
		return
	}
	if b.focused == id {
		b.focused = ""
		if b.input != nil {
			b.input.endSession()
		}
	}
	if tb := b.editors[id]; tb != nil {
		b.frames.Cancel(tb.pending)
		delete(b.editors, id)
	}
	b.registry.Delete(id)
	b.log.Debug("box deleted", slog.String("id", id))
	b.emit(BoxDeleted, obj)
}

// Focus gives keyboard focus to a box, blurring the previous one.
func (b *Board) Focus(id string) { b.focus(id) }

// Blur removes keyboard focus, applying delete-on-blur.
func (b *Board) Blur() { b.blur() }

func (b *Board) focus(id string) {
	if b.focused == id {
		return
	}
	if _, ok := b.editors[id]; !ok {
		return
	}
	b.blur()
	b.focused = id
	b.caret.reset()
	obj, _ := b.registry.Get(id)
	b.emit(BoxFocused, obj)
}

func (b *Board) blur() {
	id := b.focused
	if id == "" {
		return
	}
	if tb := b.editors[id]; tb != nil && tb.Composing() {
		// Losing focus finishes the composition with what was shown.
		tb.EndComposition(tb.preedit)
		b.commit(tb)
	}
	b.focused = ""
	if b.input != nil {
		b.input.endSession()
	}
	obj, _ := b.registry.Get(id)
	b.emit(BoxBlurred, obj)

	if b.registry.Blur(id) {
		// Registry already dropped it; finish the teardown.
		if tb := b.editors[id]; tb != nil {
			b.frames.Cancel(tb.pending)
			delete(b.editors, id)
		}
		b.log.Debug("empty box removed on blur", slog.String("id", id))
		b.emit(BoxDeleted, obj)
	}
}

// graceWindow is how long, in seconds, a new box tolerates a blur while its
// auto-focus settles.
const graceWindow = 0.4

func graceTicks() int {
	return max(1, int(float64(ebiten.TPS())*graceWindow))
}

// expireGrace counts down each new box's grace window and drops the flag
// once it runs out, so a later click-away deletes an untouched box.
func (b *Board) expireGrace() {
	for id, tb := range b.editors {
		if tb.graceLeft == 0 {
			continue
		}
		tb.graceLeft--
		if tb.graceLeft == 0 {
			b.registry.ClearNewlyCreated(id)
		}
	}
}

func (b *Board) focusedEditor() *TextBox {
	if b.focused == "" {
		return nil
	}
	return b.editors[b.focused]
}

// textEdited commits the editor text to the registry and schedules a refit.
func (b *Board) textEdited(tb *TextBox) {
	b.registry.ClearNewlyCreated(tb.id)
	b.caret.reset()
	if !tb.Composing() {
		b.commit(tb)
	}
	b.scheduleAdjust(tb)
}

func (b *Board) commit(tb *TextBox) {
	if b.registry.UpdateText(tb.id, tb.Text()) {
		obj, _ := b.registry.Get(tb.id)
		b.emit(BoxUpdated, obj)
	}
}

// scheduleAdjust defers a refit of tb to the next frame, replacing any
// adjustment already queued for it.
func (b *Board) scheduleAdjust(tb *TextBox) {
	b.frames.Cancel(tb.pending)
	id := tb.id
	tb.pending = b.frames.Request(func() { b.adjust(id) })
}

func (b *Board) refitAll() {
	for _, id := range b.registry.IDs() {
		if tb := b.editors[id]; tb != nil {
			b.scheduleAdjust(tb)
		}
	}
}

// adjust refits a box and, for the focused box outside a composition,
// pans once to keep it on screen. It looks everything up by id so a box
// deleted after scheduling is skipped.
func (b *Board) adjust(id string) {
	tb := b.editors[id]
	if tb == nil {
		return
	}
	tb.pending = 0
	st := b.view.State()
	tb.size = FitBox(b.face, tb.DisplayText(), st.Scale, b.fit)

	if id != b.focused || tb.Composing() {
		return
	}
	vp, ok := b.view.Viewport()
	if !ok {
		return
	}
	obj, ok := b.registry.Get(id)
	if !ok {
		return
	}
	rect := screenRect(obj.X, obj.Y, tb.size, b.view.Center(), st)
	if dx, dy := CaretNudge(rect, vp); dx != 0 || dy != 0 {
		b.view.NudgePan(dx, dy)
	}
}

// hitTest returns the topmost box under a screen point, or "".
func (b *Board) hitTest(sx, sy float64) string {
	center := b.view.Center()
	st := b.view.State()
	ids := b.registry.IDs()
	for i := len(ids) - 1; i >= 0; i-- {
		tb := b.editors[ids[i]]
		if tb == nil {
			continue
		}
		obj, _ := b.registry.Get(ids[i])
		if screenRect(obj.X, obj.Y, tb.size, center, st).Contains(sx, sy) {
			return ids[i]
		}
	}
	return ""
}
