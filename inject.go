package notefield

// Inject queues synthetic events. Screen coordinates are used (matching
// what a screenshot shows), exactly as for real input. One queued event is
// consumed per Update, and real input is skipped on frames that consume one.
func (b *Board) Inject(events ...Event) {
	b.injectQueue = append(b.injectQueue, events...)
}

// InjectPress queues a pointer press at the given screen coordinates.
func (b *Board) InjectPress(x, y float64, button MouseButton) {
	b.Inject(Event{Type: EventPointerDown, X: x, Y: y, Button: button})
}

// InjectMove queues a pointer move at the given screen coordinates.
func (b *Board) InjectMove(x, y float64) {
	b.Inject(Event{Type: EventPointerMove, X: x, Y: y})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (b *Board) InjectRelease(x, y float64, button MouseButton) {
	b.Inject(Event{Type: EventPointerUp, X: x, Y: y, Button: button})
}

// InjectClick queues a left press followed by a release at the same point.
// Consumes two frames.
func (b *Board) InjectClick(x, y float64) {
	b.InjectPress(x, y, MouseButtonLeft)
	b.InjectRelease(x, y, MouseButtonLeft)
}

// InjectDrag queues a full drag: a press at (fromX, fromY), frames-2
// linearly interpolated moves ending on (toX, toY), and a release there.
// The sequence consumes `frames` frames, minimum 3.
func (b *Board) InjectDrag(fromX, fromY, toX, toY float64, frames int, button MouseButton) {
	if frames < 3 {
		frames = 3
	}
	b.InjectPress(fromX, fromY, button)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		b.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	b.InjectRelease(toX, toY, button)
}

// InjectText queues committed text for the focused box.
func (b *Board) InjectText(s string) {
	if s == "" {
		return
	}
	b.Inject(Event{Type: EventTextInput, Text: s})
}

// InjectKey queues a key press and release.
func (b *Board) InjectKey(key Key, mods KeyModifiers) {
	b.Inject(
		Event{Type: EventKeyDown, Key: key, Modifiers: mods},
		Event{Type: EventKeyUp, Key: key, Modifiers: mods},
	)
}

// InjectWheel queues a wheel step at the given screen coordinates.
// Positive dy zooms in.
func (b *Board) InjectWheel(x, y, dy float64) {
	b.Inject(Event{Type: EventWheel, X: x, Y: y, WheelY: dy})
}

// processInjectedInput pops one event from the inject queue and handles it.
// Returns true if an event was consumed.
func (b *Board) processInjectedInput() bool {
	if len(b.injectQueue) == 0 {
		return false
	}
	ev := b.injectQueue[0]
	copy(b.injectQueue, b.injectQueue[1:])
	b.injectQueue = b.injectQueue[:len(b.injectQueue)-1]
	b.HandleEvent(ev)
	return true
}
