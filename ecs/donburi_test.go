package ecs

import (
	"testing"

	"github.com/phanxgames/yuletree"

	"github.com/yohamta/donburi"
)

func TestNewDonburiListener(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiListener(world) == nil {
		t.Fatal("NewDonburiListener returned nil")
	}
}

func TestDonburiListener_Publishes(t *testing.T) {
	world := donburi.NewWorld()
	c := yuletree.NewController(yuletree.StateTreeShape)
	c.AddListener(NewDonburiListener(world))

	var received []yuletree.ToggleEvent
	ToggleEventType.Subscribe(world, func(w donburi.World, e yuletree.ToggleEvent) {
		received = append(received, e)
	})

	c.Toggle()
	c.Toggle()

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	ToggleEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.From != yuletree.StateTreeShape || e.To != yuletree.StateScattered || e.Count != 1 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.To != yuletree.StateTreeShape || e.Count != 2 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiListener_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	l := NewDonburiListener(world)

	var count1, count2 int
	ToggleEventType.Subscribe(world, func(w donburi.World, e yuletree.ToggleEvent) {
		count1++
	})
	ToggleEventType.Subscribe(world, func(w donburi.World, e yuletree.ToggleEvent) {
		count2++
	})

	l.OnToggle(yuletree.ToggleEvent{To: yuletree.StateScattered, Count: 1})
	ToggleEventType.ProcessEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestTrack(t *testing.T) {
	world := donburi.NewWorld()
	scene := yuletree.NewScene(yuletree.Config{FoliageCount: 10, OrnamentCount: 2}, nil)
	scene.Controller().AddListener(NewDonburiListener(world))
	entity := Track(world, scene.State())

	data := TreeState.Get(world.Entry(entity))
	if data.State != yuletree.StateTreeShape || data.Toggles != 0 {
		t.Fatalf("initial = %+v", *data)
	}

	scene.Toggle()
	ToggleEventType.ProcessEvents(world)

	data = TreeState.Get(world.Entry(entity))
	if data.State != yuletree.StateScattered || data.Toggles != 1 {
		t.Errorf("after toggle = %+v", *data)
	}
}
