package notefield

import "testing"

func TestInjectClickConsumesOneEventPerFrame(t *testing.T) {
	b, _ := newTestBoard(t)
	b.InjectClick(500, 400)
	if len(b.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(b.injectQueue))
	}

	tick(t, b, 1)
	if len(b.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", len(b.injectQueue))
	}
	if b.Registry().Len() != 0 {
		t.Error("box created on the press frame")
	}

	tick(t, b, 1)
	if len(b.injectQueue) != 0 {
		t.Fatalf("expected 0 remaining events after frame 2, got %d", len(b.injectQueue))
	}
	if b.Registry().Len() != 1 {
		t.Error("box not created on the frame after the press")
	}
}

func TestInjectDragSequence(t *testing.T) {
	b, _ := newTestBoard(t)
	b.InjectDrag(0, 0, 90, 30, 5, MouseButtonMiddle)

	q := b.injectQueue
	if len(q) != 5 {
		t.Fatalf("queued %d events, want 5", len(q))
	}
	if q[0].Type != EventPointerDown || q[0].Button != MouseButtonMiddle {
		t.Errorf("first event = %+v", q[0])
	}
	wantX := []float64{30, 60, 90}
	for i, x := range wantX {
		ev := q[i+1]
		if ev.Type != EventPointerMove || !approxEqual(ev.X, x, epsilon) {
			t.Errorf("move %d = %+v, want x=%v", i, ev, x)
		}
	}
	if last := q[4]; last.Type != EventPointerUp || last.X != 90 || last.Y != 30 {
		t.Errorf("last event = %+v", last)
	}

	drain(t, b)
	if st := b.View().State(); st.PanX != 90 || st.PanY != 30 {
		t.Errorf("pan = (%v,%v), want (90,30)", st.PanX, st.PanY)
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	b, _ := newTestBoard(t)
	b.InjectDrag(0, 0, 10, 10, 0, MouseButtonMiddle)
	if len(b.injectQueue) != 3 {
		t.Errorf("queued %d events, want 3", len(b.injectQueue))
	}
}

func TestInjectTextAndKey(t *testing.T) {
	b, _ := newTestBoard(t)
	b.InjectText("")
	if len(b.injectQueue) != 0 {
		t.Error("empty text was queued")
	}
	b.InjectKey(KeyEscape, ModShift)
	if len(b.injectQueue) != 2 {
		t.Fatalf("queued %d events, want 2", len(b.injectQueue))
	}
	if b.injectQueue[0].Type != EventKeyDown || b.injectQueue[1].Type != EventKeyUp {
		t.Errorf("queue = %+v", b.injectQueue)
	}
	if b.injectQueue[0].Modifiers != ModShift {
		t.Errorf("modifiers = %v", b.injectQueue[0].Modifiers)
	}
}
