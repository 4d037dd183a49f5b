package ecs

import (
	"github.com/phanxgames/notefield"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// BoxEventType is the Donburi event type for notefield box events.
var BoxEventType = events.NewEventType[notefield.BoxEvent]()

// DonburiSink publishes box events into a Donburi world.
type DonburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on BoxEventType and delivered by events.ProcessEvents or
// ProcessAllEvents.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world}
}

// EmitEvent implements notefield.EventSink.
func (s *DonburiSink) EmitEvent(event notefield.BoxEvent) {
	BoxEventType.Publish(s.world, event)
}
