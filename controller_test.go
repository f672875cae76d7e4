package yuletree

import "testing"

func TestTreeStateBasics(t *testing.T) {
	if StateTreeShape.Target() != 1 || StateScattered.Target() != 0 {
		t.Error("unexpected targets")
	}
	if StateTreeShape.Toggled() != StateScattered || StateScattered.Toggled() != StateTreeShape {
		t.Error("Toggled should alternate")
	}
	if StateTreeShape.String() != "TREE_SHAPE" || StateScattered.String() != "SCATTERED" {
		t.Error("unexpected names")
	}
	if TreeState(9).String() != "UNKNOWN" {
		t.Error("out-of-range state should be UNKNOWN")
	}
	if StateTreeShape.ActionLabel() != "SCATTER MAGIC" || StateScattered.ActionLabel() != "ASSEMBLE TREE" {
		t.Error("unexpected action labels")
	}
}

func TestControllerToggleTwiceRestoresTarget(t *testing.T) {
	c := NewController(StateTreeShape)
	if c.Target() != 1 {
		t.Fatalf("initial target = %v, want 1", c.Target())
	}
	if got := c.Toggle(); got != StateScattered {
		t.Errorf("first toggle = %v, want SCATTERED", got)
	}
	if c.Target() != 0 {
		t.Errorf("target after one toggle = %v, want 0", c.Target())
	}
	c.Toggle()
	if c.Target() != 1 {
		t.Errorf("target after two toggles = %v, want 1", c.Target())
	}
	if c.Toggles() != 2 {
		t.Errorf("Toggles = %d, want 2", c.Toggles())
	}
}

func TestControllerListeners(t *testing.T) {
	c := NewController(StateScattered)

	var order []string
	var events []ToggleEvent
	c.AddListener(ToggleListenerFunc(func(e ToggleEvent) {
		order = append(order, "first")
		events = append(events, e)
	}))
	c.AddListener(ToggleListenerFunc(func(e ToggleEvent) {
		order = append(order, "second")
	}))
	c.AddListener(nil)

	c.Toggle()
	c.Toggle()

	if len(order) != 4 || order[0] != "first" || order[1] != "second" {
		t.Errorf("listener order = %v", order)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].From != StateScattered || events[0].To != StateTreeShape || events[0].Count != 1 {
		t.Errorf("event 0 = %+v", events[0])
	}
	if events[1].From != StateTreeShape || events[1].To != StateScattered || events[1].Count != 2 {
		t.Errorf("event 1 = %+v", events[1])
	}
}
