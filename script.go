package yuletree

import (
	"encoding/json"
	"errors"
	"fmt"
)

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	State  string `json:"state,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// Snapshot is a labelled record of scene state taken by a "snapshot" step.
type Snapshot struct {
	Label        string
	Frame        int
	Elapsed      float64
	State        TreeState
	FoliageMix   float64
	StarPosition Vec3
}

// ScriptRunner sequences toggles, waits, snapshots, and state checks across
// frames. Drive it with Step once per frame before Scene.Advance, or use Run
// to play a whole script headlessly.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	snapshots []Snapshot
	failures  []error

	// OnSnapshot, if set, is called for every snapshot step. Window drivers
	// use it to capture a screenshot under the same label.
	OnSnapshot func(snap Snapshot)
}

// ErrScriptExpect is wrapped by failures recorded from "expect" steps.
var ErrScriptExpect = errors.New("expectation failed")

// LoadScript parses a JSON script and returns a runner ready to drive a
// Scene.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("yuletree: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("yuletree: parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "toggle", "wait", "snapshot":
		case "expect":
			if _, err := parseState(st.State); err != nil {
				return nil, fmt.Errorf("yuletree: parse script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("yuletree: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

func parseState(name string) (TreeState, error) {
	switch name {
	case StateScattered.String():
		return StateScattered, nil
	case StateTreeShape.String():
		return StateTreeShape, nil
	}
	return 0, fmt.Errorf("unknown state %q", name)
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Snapshots returns the snapshots recorded so far.
func (r *ScriptRunner) Snapshots() []Snapshot {
	return r.snapshots
}

// Err returns every failed expectation joined, or nil.
func (r *ScriptRunner) Err() error {
	return errors.Join(r.failures...)
}

// Step advances the runner by one frame.
func (r *ScriptRunner) Step(s *Scene) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "toggle":
		s.Toggle()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "snapshot":
		snap := Snapshot{
			Label:        st.Label,
			Frame:        s.Frames(),
			Elapsed:      s.Elapsed(),
			State:        s.State(),
			FoliageMix:   s.Foliage().Mix(),
			StarPosition: s.Star().Instance().Position,
		}
		r.snapshots = append(r.snapshots, snap)
		if r.OnSnapshot != nil {
			r.OnSnapshot(snap)
		}
	case "expect":
		want, _ := parseState(st.State)
		if got := s.State(); got != want {
			r.failures = append(r.failures,
				fmt.Errorf("%w: step %d: state %v, want %v", ErrScriptExpect, r.cursor-1, got, want))
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

// Run plays the remaining script against s headlessly, advancing the scene by
// dt after every step, and returns Err.
func (r *ScriptRunner) Run(s *Scene, dt float64) error {
	for !r.done {
		r.Step(s)
		s.Advance(dt)
	}
	return r.Err()
}
