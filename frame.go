package yuletree

import "fmt"

// Frame is everything a render surface needs to draw one tick. Slices alias
// the scene's internal buffers and are only valid until the next Advance.
type Frame struct {
	// Elapsed is the scene clock in seconds, shared by every time-driven
	// effect (twinkle, breathing, floating).
	Elapsed float64
	// State is the tree state this frame was computed for.
	State TreeState
	// FoliageMix is the eased foliage progress in [0, 1].
	FoliageMix float64

	Foliage   []Vec3
	Seeds     []float64
	Ornaments []OrnamentInstance
	Star      StarInstance
}

// Capacity is the number of per-particle slots a surface has allocated for
// each class.
type Capacity struct {
	Foliage   int
	Ornaments int
}

// Surface consumes frames. Implementations own their vertex/instance
// buffers and size them once from the scene's particle counts.
type Surface interface {
	// Capacity reports the buffer sizes the surface was built for.
	Capacity() Capacity
	// Submit hands over the frame just computed.
	Submit(frame *Frame)
}

// SurfaceFunc adapts a function to a Surface with the given capacity.
type SurfaceFunc struct {
	Cap Capacity
	Fn  func(frame *Frame)
}

// Capacity returns s.Cap.
func (s SurfaceFunc) Capacity() Capacity { return s.Cap }

// Submit calls s.Fn.
func (s SurfaceFunc) Submit(frame *Frame) {
	if s.Fn != nil {
		s.Fn(frame)
	}
}

// checkCapacity returns an error describing the first buffer whose length
// differs from the particle count.
func checkCapacity(got, want Capacity) error {
	if got.Foliage != want.Foliage {
		return fmt.Errorf("yuletree: surface foliage buffer holds %d points, scene has %d",
			got.Foliage, want.Foliage)
	}
	if got.Ornaments != want.Ornaments {
		return fmt.Errorf("yuletree: surface ornament buffer holds %d instances, scene has %d",
			got.Ornaments, want.Ornaments)
	}
	return nil
}
