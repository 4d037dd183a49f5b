package ecs

import (
	"testing"

	"github.com/phanxgames/notefield"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

var _ notefield.EventSink = (*DonburiSink)(nil)

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []notefield.BoxEvent
	BoxEventType.Subscribe(world, func(w donburi.World, e notefield.BoxEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(notefield.BoxEvent{Type: notefield.BoxCreated, ID: "tb-1", X: 10, Y: -20})
	sink.EmitEvent(notefield.BoxEvent{Type: notefield.BoxUpdated, ID: "tb-1", Text: "hi"})

	if len(received) != 0 {
		t.Fatalf("events delivered before processing: %d", len(received))
	}
	BoxEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != notefield.BoxCreated || e.X != 10 || e.Y != -20 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != notefield.BoxUpdated || e.Text != "hi" {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	BoxEventType.Subscribe(world, func(w donburi.World, e notefield.BoxEvent) { count1++ })
	BoxEventType.Subscribe(world, func(w donburi.World, e notefield.BoxEvent) { count2++ })

	sink.EmitEvent(notefield.BoxEvent{Type: notefield.BoxDeleted, ID: "tb-2"})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiSink_BoardLifecycle(t *testing.T) {
	world := donburi.NewWorld()
	board, err := notefield.NewBoard(notefield.Options{
		Typeface: monoFace{},
		Headless: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	board.SetEventSink(NewDonburiSink(world))

	var types []notefield.BoxEventType
	BoxEventType.Subscribe(world, func(w donburi.World, e notefield.BoxEvent) {
		types = append(types, e.Type)
	})

	id := board.CreateBoxAt(5, 5)
	board.DeleteBox(id)
	BoxEventType.ProcessEvents(world)

	want := []notefield.BoxEventType{notefield.BoxCreated, notefield.BoxFocused, notefield.BoxDeleted}
	if len(types) != len(want) {
		t.Fatalf("events = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}

// monoFace measures every rune as 8 units wide and lines as 20 tall.
type monoFace struct{}

func (monoFace) Measure(s string, size float64) (float64, float64) {
	return float64(len([]rune(s))) * 8 * size / 16, 20 * size / 16
}

func (monoFace) LineHeight(size float64) float64 { return 20 * size / 16 }
