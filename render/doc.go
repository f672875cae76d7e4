// Package render draws a [yuletree.Scene] in an Ebitengine window.
//
// [Run] is the one-call entry point: it attaches a [Surface] to the scene,
// opens a window, and wires the toggle button, keyboard, drag-to-orbit and
// screenshots:
//
//	scene := yuletree.NewScene(yuletree.Config{}, nil)
//	if err := render.Run(scene, render.RunConfig{ShowFPS: true}); err != nil {
//		log.Fatal(err)
//	}
//
// Foliage is drawn as additive soft-glow points sized by depth, ornaments
// as depth-sorted shaded quads, and the star as a filled polygon fan with a
// halo. A [Camera] orbits the tree with perspective projection, spins slowly
// while the tree is assembled, and re-frames itself when the window flips
// between landscape and portrait.
package render
