package yuletree

import "math"

// Particle is one immutable pair of formation targets. Both positions are
// computed once at construction and never regenerated.
type Particle struct {
	Scatter Vec3
	Tree    Vec3
	// Seed in [0, 1) desynchronizes breathing, floating, and twinkle.
	Seed float64
}

// Foliage is the cloud of glowing needle points that forms the body of the
// tree. Per-frame positions are written in place into a buffer owned by the
// Foliage.
type Foliage struct {
	config    FoliageConfig
	particles []Particle
	positions []Vec3
	seeds     []float64
	progress  Progress
	mix       float64
}

func (c FoliageConfig) withDefaults() FoliageConfig {
	if c.Count == 0 {
		c.Count = DefaultFoliageCount
	}
	if c.Height == 0 {
		c.Height = DefaultTreeHeight
	}
	if c.Radius == 0 {
		c.Radius = DefaultTreeRadius
	}
	if c.ScatterRadius == 0 {
		c.ScatterRadius = DefaultScatterRadius
	}
	if c.Exponent == 0 {
		c.Exponent = DefaultFoliageExponent
	}
	if c.Lambda == 0 {
		c.Lambda = DefaultFoliageLambda
	}
	return c
}

// NewFoliage samples cfg.Count foliage particles from src. Tree targets come
// from the cone with a base-heavy height bias; scatter targets fill the
// scatter sphere. Progress starts at 0, so a tree-shaped scene assembles on
// its first frames.
func NewFoliage(cfg FoliageConfig, src Source) *Foliage {
	cfg = cfg.withDefaults()
	if cfg.Count < 0 {
		panic("yuletree: negative foliage count")
	}
	src = sourceOr(src)

	f := &Foliage{
		config:    cfg,
		particles: make([]Particle, cfg.Count),
		positions: make([]Vec3, cfg.Count),
		seeds:     make([]float64, cfg.Count),
		progress:  Progress{Lambda: cfg.Lambda},
	}
	for i := range f.particles {
		ratio := BiasedRatio(src, cfg.Exponent)
		p := Particle{
			Tree:    SampleCone(src, cfg.Height, cfg.Radius, ratio),
			Scatter: SampleSphere(src, cfg.ScatterRadius),
			Seed:    src.Float64(),
		}
		f.particles[i] = p
		f.seeds[i] = p.Seed
		f.positions[i] = p.Scatter
	}
	return f
}

// Len returns the fixed particle count.
func (f *Foliage) Len() int {
	return len(f.particles)
}

// Config returns the effective configuration after defaults.
func (f *Foliage) Config() FoliageConfig {
	return f.config
}

// Particle returns the formation pair for particle i.
func (f *Foliage) Particle(i int) Particle {
	return f.particles[i]
}

// Positions returns the per-frame position buffer. It is rewritten by every
// Update; callers must not retain or modify it.
func (f *Foliage) Positions() []Vec3 {
	return f.positions
}

// Seeds returns the per-particle seeds. The slice MUST NOT be mutated.
func (f *Foliage) Seeds() []float64 {
	return f.seeds
}

// Progress returns the raw class progress in [0, 1].
func (f *Foliage) Progress() float64 {
	return f.progress.Value
}

// Mix returns the eased class progress, the blend factor surfaces use for
// class-wide effects.
func (f *Foliage) Mix() float64 {
	return f.mix
}

// BasePosition returns particle i interpolated by the current mix without
// breathing or floating.
func (f *Foliage) BasePosition(i int) Vec3 {
	p := &f.particles[i]
	return LerpVec3(p.Scatter, p.Tree, f.mix)
}

// Update advances the class progress toward state over dt seconds and
// recomputes every position at scene time elapsed.
//
// Assembled points breathe radially; scattered points bob vertically. Both
// are layered on top of the eased interpolation and fade with it.
func (f *Foliage) Update(state TreeState, dt, elapsed float64) {
	f.progress.Advance(state.Target(), dt)
	t := f.progress.Eased()
	f.mix = t

	for i := range f.particles {
		p := &f.particles[i]
		pos := LerpVec3(p.Scatter, p.Tree, t)

		breath := math.Sin(elapsed*1.5+p.Seed*10) * 0.15
		pos = pos.Add(pos.Normalize().Scale(breath * t))

		pos.Y += math.Sin(elapsed*0.5+p.Seed*5) * 0.5 * (1 - t)

		f.positions[i] = pos
	}
}

// Twinkle returns the glow alpha of particle i at scene time elapsed,
// oscillating in [0.2, 1.0].
func (f *Foliage) Twinkle(i int, elapsed float64) float64 {
	return TwinkleAt(f.particles[i].Seed, elapsed)
}

// Sparkle reports whether particle i renders as a gold sparkle rather than
// green foliage. Roughly 15% of points sparkle.
func (f *Foliage) Sparkle(i int) bool {
	return IsSparkle(f.particles[i].Seed)
}

// TwinkleAt is Twinkle for a bare seed, for surfaces that only hold a Frame.
func TwinkleAt(seed, elapsed float64) float64 {
	return 0.6 + 0.4*math.Sin(elapsed+seed*10)
}

// IsSparkle is Sparkle for a bare seed.
func IsSparkle(seed float64) bool {
	return seed > 0.85
}
