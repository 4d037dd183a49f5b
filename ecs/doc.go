// Package ecs provides ECS adapters for notefield's box lifecycle events.
//
// [NewDonburiSink] bridges box events (created, updated, deleted, focused,
// blurred) into a [Donburi] world as typed events. Subscribe to
// [BoxEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	board.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
