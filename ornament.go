package yuletree

import "math"

// Ornament is a bauble or gift box. Everything except the per-frame instance
// is fixed at construction.
type Ornament struct {
	Particle
	ID          int
	Kind        OrnamentKind
	Scale       float64 // base scale before the assembly swell
	Rotation    Vec3    // base Euler rotation
	SpeedFactor float64 // float bob frequency multiplier
}

// OrnamentInstance is the per-frame transform a surface draws for one
// ornament.
type OrnamentInstance struct {
	Position Vec3
	Rotation Vec3
	Scale    float64
	Kind     OrnamentKind
}

// Ornaments holds the full ornament population.
type Ornaments struct {
	config    OrnamentConfig
	items     []Ornament
	instances []OrnamentInstance
	byKind    [2][]int
	progress  Progress
}

func (c OrnamentConfig) withDefaults() OrnamentConfig {
	if c.Count == 0 {
		c.Count = DefaultOrnamentCount
	}
	if c.Height == 0 {
		c.Height = DefaultTreeHeight
	}
	if c.Radius == 0 {
		c.Radius = DefaultTreeRadius * 1.05
	}
	if c.ScatterRadius == 0 {
		c.ScatterRadius = DefaultScatterRadius * 1.3
	}
	if c.GiftProbability == 0 {
		c.GiftProbability = DefaultGiftProbability
	}
	if c.Exponent == 0 {
		c.Exponent = DefaultOrnamentExponent
	}
	if c.Lambda == 0 {
		c.Lambda = DefaultOrnamentLambda
	}
	if c.GiftScale == (Range{}) {
		c.GiftScale = Range{Min: 0.2, Max: 0.4}
	}
	if c.BaubleScale == (Range{}) {
		c.BaubleScale = Range{Min: 0.15, Max: 0.3}
	}
	if c.Speed == (Range{}) {
		c.Speed = Range{Min: 0.5, Max: 2.0}
	}
	return c
}

// NewOrnaments samples cfg.Count ornaments from src. Each is classified as a
// gift with probability cfg.GiftProbability, otherwise a bauble, and keeps
// that kind for life.
func NewOrnaments(cfg OrnamentConfig, src Source) *Ornaments {
	cfg = cfg.withDefaults()
	if cfg.Count < 0 {
		panic("yuletree: negative ornament count")
	}
	src = sourceOr(src)

	o := &Ornaments{
		config:    cfg,
		items:     make([]Ornament, cfg.Count),
		instances: make([]OrnamentInstance, cfg.Count),
		progress:  Progress{Lambda: cfg.Lambda},
	}
	for i := range o.items {
		kind := KindBauble
		if src.Float64() < cfg.GiftProbability {
			kind = KindGift
		}

		ratio := BiasedRatio(src, cfg.Exponent)
		it := Ornament{
			Particle: Particle{
				Tree:    SampleCone(src, cfg.Height, cfg.Radius, ratio),
				Scatter: SampleSphere(src, cfg.ScatterRadius),
			},
			ID:   i,
			Kind: kind,
		}
		if kind == KindGift {
			it.Scale = cfg.GiftScale.Sample(src)
		} else {
			it.Scale = cfg.BaubleScale.Sample(src)
		}
		it.Rotation = Vec3{X: src.Float64() * math.Pi, Y: src.Float64() * math.Pi}
		it.SpeedFactor = cfg.Speed.Sample(src)
		it.Seed = src.Float64()

		o.items[i] = it
		o.byKind[kind] = append(o.byKind[kind], i)
		o.instances[i] = OrnamentInstance{
			Position: it.Scatter,
			Rotation: it.Rotation,
			Scale:    it.Scale * 0.8,
			Kind:     kind,
		}
	}
	return o
}

// Len returns the fixed ornament count.
func (o *Ornaments) Len() int {
	return len(o.items)
}

// Config returns the effective configuration after defaults.
func (o *Ornaments) Config() OrnamentConfig {
	return o.config
}

// Ornament returns the fixed attributes of ornament i.
func (o *Ornaments) Ornament(i int) Ornament {
	return o.items[i]
}

// ByKind returns the indices of every ornament of the given kind, in ID
// order. The slice MUST NOT be mutated.
func (o *Ornaments) ByKind(kind OrnamentKind) []int {
	if int(kind) >= len(o.byKind) {
		return nil
	}
	return o.byKind[kind]
}

// Instances returns the per-frame instance buffer. It is rewritten by every
// Update; callers must not retain or modify it.
func (o *Ornaments) Instances() []OrnamentInstance {
	return o.instances
}

// Progress returns the raw class progress in [0, 1].
func (o *Ornaments) Progress() float64 {
	return o.progress.Value
}

// LocalProgress returns the staggered progress of ornament i: the class
// progress shifted by sin(id)*0.1 and clamped to [0, 1].
func (o *Ornaments) LocalProgress(i int) float64 {
	return Clamp01(o.progress.Value + math.Sin(float64(o.items[i].ID))*0.1)
}

// Update advances the class progress toward state over dt seconds and
// recomputes every instance at scene time elapsed.
//
// Each ornament runs slightly ahead of or behind the class so the population
// assembles in a ripple. Spin slows to a stop as an ornament settles.
func (o *Ornaments) Update(state TreeState, dt, elapsed float64) {
	o.progress.Advance(state.Target(), dt)

	for i := range o.items {
		it := &o.items[i]
		t := Ease(o.LocalProgress(i))

		pos := LerpVec3(it.Scatter, it.Tree, t)
		pos.Y += math.Sin(elapsed*it.SpeedFactor+float64(it.ID)) * 0.2

		spin := elapsed * 0.5 * (1 - t)

		o.instances[i] = OrnamentInstance{
			Position: pos,
			Rotation: Vec3{
				X: it.Rotation.X + spin,
				Y: it.Rotation.Y + spin,
				Z: it.Rotation.Z,
			},
			Scale: it.Scale * (0.8 + 0.2*t),
			Kind:  it.Kind,
		}
	}
}
