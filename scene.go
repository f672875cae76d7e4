package yuletree

import "time"

// Scene is the top-level object that owns the controller, the three particle
// classes, the animation clock, and the attached surfaces.
type Scene struct {
	config     Config
	controller *Controller
	foliage    *Foliage
	ornaments  *Ornaments
	star       *Star

	elapsed  float64
	frames   int
	frame    Frame
	surfaces []Surface

	debug bool
	stats debugStats
}

// NewScene builds every particle dataset once from src and returns a scene
// ready to Advance. A nil src uses the package-level generator, so each
// session gets a different tree.
func NewScene(cfg Config, src Source) *Scene {
	cfg = cfg.withDefaults()
	src = sourceOr(src)

	initial := StateTreeShape
	if cfg.StartScattered {
		initial = StateScattered
	}

	s := &Scene{
		config:     cfg,
		controller: NewController(initial),
		foliage:    NewFoliage(cfg.foliage(), src),
		ornaments:  NewOrnaments(cfg.ornaments(), src),
		star:       NewStar(cfg.star()),
		debug:      cfg.Debug,
	}
	s.fillFrame()
	return s
}

// Config returns the effective configuration after defaults.
func (s *Scene) Config() Config {
	return s.config
}

// Controller returns the scene's state controller.
func (s *Scene) Controller() *Controller {
	return s.controller
}

// State returns the current tree state.
func (s *Scene) State() TreeState {
	return s.controller.State()
}

// Toggle flips the tree state. Particles start heading for the other
// formation on the next Advance.
func (s *Scene) Toggle() TreeState {
	return s.controller.Toggle()
}

// Foliage returns the foliage class.
func (s *Scene) Foliage() *Foliage {
	return s.foliage
}

// Ornaments returns the ornament class.
func (s *Scene) Ornaments() *Ornaments {
	return s.ornaments
}

// Star returns the star.
func (s *Scene) Star() *Star {
	return s.star
}

// Elapsed returns the scene clock in seconds.
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}

// Frames returns the number of Advance calls so far.
func (s *Scene) Frames() int {
	return s.frames
}

// Capacity returns the particle counts a surface must be sized for.
func (s *Scene) Capacity() Capacity {
	return Capacity{
		Foliage:   s.foliage.Len(),
		Ornaments: s.ornaments.Len(),
	}
}

// Attach adds a surface that receives every frame. It panics if the
// surface's buffers do not match the particle counts; that is a wiring bug,
// not a runtime condition.
func (s *Scene) Attach(surface Surface) {
	if err := checkCapacity(surface.Capacity(), s.Capacity()); err != nil {
		panic(err.Error())
	}
	s.surfaces = append(s.surfaces, surface)
}

// SetDebugMode enables or disables per-frame timing output on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Advance runs one frame: the clock moves by dt seconds, every class damps
// toward the controller's state, and the resulting frame is submitted to
// each attached surface. Negative or NaN deltas count as zero.
func (s *Scene) Advance(dt float64) {
	if !(dt > 0) {
		dt = 0
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.elapsed += dt
	s.frames++
	state := s.controller.State()

	s.foliage.Update(state, dt, s.elapsed)
	s.ornaments.Update(state, dt, s.elapsed)
	s.star.Update(state, dt, s.elapsed)
	s.fillFrame()

	if s.debug {
		s.stats.updateTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, surf := range s.surfaces {
		surf.Submit(&s.frame)
	}

	if s.debug {
		s.stats.submitTime = time.Since(t0)
		s.stats.particles = s.foliage.Len() + s.ornaments.Len() + 1
		s.stats.surfaces = len(s.surfaces)
		s.debugLog(s.stats)
	}
}

// Frame returns the most recent frame. Slices alias internal buffers.
func (s *Scene) Frame() *Frame {
	return &s.frame
}

func (s *Scene) fillFrame() {
	s.frame = Frame{
		Elapsed:    s.elapsed,
		State:      s.controller.State(),
		FoliageMix: s.foliage.Mix(),
		Foliage:    s.foliage.Positions(),
		Seeds:      s.foliage.Seeds(),
		Ornaments:  s.ornaments.Instances(),
		Star:       s.star.Instance(),
	}
}
