package yuletree

import (
	"errors"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "snapshot", "label": "initial"},
			{"action": "toggle"},
			{"action": "wait", "frames": 3},
			{"action": "expect", "state": "SCATTERED"}
		]
	}`)

	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "snapshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "explode"}]}`},
		{"bad state", `{"steps": [{"action": "expect", "state": "MELTED"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestScriptRunnerWait(t *testing.T) {
	s := smallScene()
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "snapshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: execute wait (waitCount becomes 2).
	runner.Step(s)
	// Frames 2 and 3: count down.
	runner.Step(s)
	runner.Step(s)
	if runner.Done() || len(runner.Snapshots()) != 0 {
		t.Fatal("snapshot step should not have run yet")
	}

	// Frame 4: snapshot, runner finishes.
	runner.Step(s)
	if !runner.Done() {
		t.Error("runner should be done after snapshot step")
	}
	if snaps := runner.Snapshots(); len(snaps) != 1 || snaps[0].Label != "done" {
		t.Errorf("snapshots = %+v", snaps)
	}
}

func TestScriptToggleRoundTrip(t *testing.T) {
	s := smallScene()
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3600},
		{"action": "snapshot", "label": "assembled"},
		{"action": "toggle"},
		{"action": "expect", "state": "SCATTERED"},
		{"action": "wait", "frames": 120},
		{"action": "snapshot", "label": "scattering"},
		{"action": "toggle"},
		{"action": "expect", "state": "TREE_SHAPE"},
		{"action": "wait", "frames": 3600},
		{"action": "snapshot", "label": "reassembled"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	var hooked []string
	runner.OnSnapshot = func(snap Snapshot) { hooked = append(hooked, snap.Label) }

	if err := runner.Run(s, 1.0/60); err != nil {
		t.Fatalf("Run: %v", err)
	}

	snaps := runner.Snapshots()
	if len(snaps) != 3 || len(hooked) != 3 {
		t.Fatalf("snapshots = %d, hooked = %d, want 3", len(snaps), len(hooked))
	}
	first, mid, last := snaps[0], snaps[1], snaps[2]
	if first.State != StateTreeShape || mid.State != StateScattered || last.State != StateTreeShape {
		t.Errorf("states = %v, %v, %v", first.State, mid.State, last.State)
	}
	if mid.FoliageMix >= first.FoliageMix {
		t.Errorf("mix should drop while scattering: %v -> %v", first.FoliageMix, mid.FoliageMix)
	}
	if d := last.StarPosition.Sub(first.StarPosition).Len(); d > 1e-9 {
		t.Errorf("star steady state differs by %v", d)
	}
	assertNear(t, "final mix", last.FoliageMix, first.FoliageMix)
}

func TestScriptExpectFailure(t *testing.T) {
	s := smallScene()
	runner, err := LoadScript([]byte(`{"steps": [{"action": "expect", "state": "SCATTERED"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	err = runner.Run(s, 1.0/60)
	if !errors.Is(err, ErrScriptExpect) {
		t.Errorf("err = %v, want ErrScriptExpect", err)
	}
}
