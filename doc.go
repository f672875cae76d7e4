// Package yuletree computes a particle Christmas tree that morphs between an
// assembled cone and a scattered cloud.
//
// Yuletree owns the math: point sampling, the once-per-session particle
// datasets, and the eased, damped per-frame blend. Drawing is left to
// surfaces that consume a [Frame] each tick. This module ships three: an
// Ebitengine window (package render), a tcell terminal (package term), and a
// WebSocket stream (package stream).
//
// # Quick start
//
//	scene := yuletree.NewScene(yuletree.Config{}, nil)
//	scene.Attach(surface)      // surface sized from scene.Capacity()
//	for {
//		if buttonPressed() {
//			scene.Toggle()
//		}
//		scene.Advance(dt)      // submits a Frame to every surface
//	}
//
// # Particles
//
// Every particle has two fixed targets computed once in [NewScene]: a point
// inside the tree cone ([SampleCone]) and a point inside the scatter sphere
// ([SampleSphere]). They are never regenerated, so toggling mid-flight
// reverses smoothly instead of jumping.
//
// There are three classes, each with its own [Progress]:
//
//   - [Foliage]: ten thousand glowing needles that breathe when assembled
//     and bob when scattered.
//   - [Ornaments]: gold baubles and red gifts that assemble in a staggered
//     ripple and stop spinning as they settle.
//   - [Star]: the tree-top star, spinning wildly when scattered and turning
//     slowly once placed.
//
// # State
//
// A [Controller] owns the [TreeState]. [Controller.Toggle] is the only way
// to change it; listeners (see [ToggleListener]) hear every flip. The audio
// and ecs packages plug in this way.
//
// # Scripts
//
// [LoadScript] parses a JSON list of toggle, wait, snapshot, and expect steps
// that drive a scene frame by frame, either inside a window loop or
// headlessly via [ScriptRunner.Run].
package yuletree
