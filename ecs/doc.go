// Package ecs provides ECS adapters for yuletree's toggle notifications.
//
// The primary adapter is [NewDonburiListener], which bridges tree state
// toggles into a [Donburi] world as typed events. Subscribe to
// [ToggleEventType] in your ECS systems to receive them, or call [Track] to
// keep a singleton entity holding the latest state.
//
// Usage:
//
//	scene.Controller().AddListener(ecs.NewDonburiListener(world))
//	entity := ecs.Track(world, scene.State())
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
