package ecs

import (
	"github.com/phanxgames/yuletree"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ToggleEventType is the Donburi event type for tree state toggles.
var ToggleEventType = events.NewEventType[yuletree.ToggleEvent]()

// TreeStateData is the component stored on the entity created by Track.
type TreeStateData struct {
	State   yuletree.TreeState
	Toggles int
}

// TreeState is the component type holding the latest tracked state.
var TreeState = donburi.NewComponentType[TreeStateData]()

type donburiListener struct {
	world donburi.World
}

// NewDonburiListener creates a ToggleListener that publishes every toggle to
// ToggleEventType. Events are queued until ProcessEvents runs.
func NewDonburiListener(world donburi.World) yuletree.ToggleListener {
	return &donburiListener{world: world}
}

func (l *donburiListener) OnToggle(event yuletree.ToggleEvent) {
	ToggleEventType.Publish(l.world, event)
}

// Track creates an entity carrying the TreeState component, seeded with
// initial, and subscribes it to ToggleEventType so it follows the scene
// after each ProcessEvents.
func Track(world donburi.World, initial yuletree.TreeState) donburi.Entity {
	entity := world.Create(TreeState)
	TreeState.SetValue(world.Entry(entity), TreeStateData{State: initial})

	ToggleEventType.Subscribe(world, func(w donburi.World, e yuletree.ToggleEvent) {
		if !w.Valid(entity) {
			return
		}
		TreeState.SetValue(w.Entry(entity), TreeStateData{State: e.To, Toggles: e.Count})
	})
	return entity
}
