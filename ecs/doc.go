// Package ecs mirrors peony layouts into a [Donburi] world.
//
// [NewMirror] keeps one entity per scene node, carrying a [NodeComponent],
// and republishes node changes as [ChangeEventType] events. Systems that
// want to react to edits subscribe to the event type and drain it once per
// frame.
//
// Usage:
//
//	world := donburi.NewWorld()
//	m := ecs.NewMirror(world, game.Layout())
//	defer m.Close()
//	ecs.ChangeEventType.Subscribe(world, onChange)
//	// each frame:
//	ecs.ChangeEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
