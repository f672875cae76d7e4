package yuletree

import (
	"math"
	"testing"
)

func smallFoliage() *Foliage {
	return NewFoliage(FoliageConfig{Count: 500}, testSource())
}

func TestNewFoliageDefaults(t *testing.T) {
	f := NewFoliage(FoliageConfig{}, testSource())
	if f.Len() != DefaultFoliageCount {
		t.Errorf("Len = %d, want %d", f.Len(), DefaultFoliageCount)
	}
	cfg := f.Config()
	if cfg.Height != 15 || cfg.Radius != 6.5 || cfg.ScatterRadius != 30 ||
		cfg.Exponent != 1.8 || cfg.Lambda != 1.2 {
		t.Errorf("defaults = %+v", cfg)
	}
	if len(f.Positions()) != f.Len() || len(f.Seeds()) != f.Len() {
		t.Error("buffers not sized to particle count")
	}
}

func TestNewFoliageTargetsInShape(t *testing.T) {
	f := smallFoliage()
	for i := 0; i < f.Len(); i++ {
		p := f.Particle(i)
		if p.Scatter.Len() > 30+epsilon {
			t.Fatalf("particle %d scatter norm %v > 30", i, p.Scatter.Len())
		}
		if p.Tree.Y < -7.5-epsilon || p.Tree.Y > 7.5+epsilon {
			t.Fatalf("particle %d tree y %v outside cone", i, p.Tree.Y)
		}
		ratio := p.Tree.Y/15 + 0.5
		if planar := math.Hypot(p.Tree.X, p.Tree.Z); planar > 6.5*(1-ratio)+1e-9 {
			t.Fatalf("particle %d planar %v exceeds taper %v", i, planar, 6.5*(1-ratio))
		}
		if p.Seed < 0 || p.Seed >= 1 {
			t.Fatalf("particle %d seed %v outside [0, 1)", i, p.Seed)
		}
	}
}

func TestFoliageBaseHeavy(t *testing.T) {
	f := NewFoliage(FoliageConfig{Count: 5000}, testSource())
	below := 0
	for i := 0; i < f.Len(); i++ {
		if f.Particle(i).Tree.Y < 0 {
			below++
		}
	}
	// P(u^1.8 < 0.5) = 0.5^(1/1.8) ≈ 0.68.
	assertWithin(t, "fraction below middle", float64(below)/float64(f.Len()), math.Pow(0.5, 1/1.8), 0.03)
}

func TestFoliageTargetsNeverRegenerate(t *testing.T) {
	f := smallFoliage()
	before := make([]Particle, f.Len())
	for i := range before {
		before[i] = f.Particle(i)
	}
	state := StateTreeShape
	for i := 0; i < 300; i++ {
		if i%50 == 0 {
			state = state.Toggled()
		}
		f.Update(state, 1.0/60, float64(i)/60)
	}
	for i := range before {
		if f.Particle(i) != before[i] {
			t.Fatalf("particle %d changed: %+v -> %+v", i, before[i], f.Particle(i))
		}
	}
}

func TestFoliageConvergesToTree(t *testing.T) {
	f := smallFoliage()
	for i := 0; i < 60*60; i++ {
		f.Update(StateTreeShape, 1.0/60, float64(i)/60)
	}
	assertWithin(t, "mix", f.Mix(), 1, easeTolerance)
	for i := 0; i < f.Len(); i++ {
		base := f.BasePosition(i)
		if d := base.Sub(f.Particle(i).Tree).Len(); d > 1e-4 {
			t.Fatalf("particle %d base %v is %v from tree target", i, base, d)
		}
		// Only breathing remains: at most 0.15 along the radial direction.
		if d := f.Positions()[i].Sub(base).Len(); d > 0.15+1e-6 {
			t.Fatalf("particle %d breathing offset %v > 0.15", i, d)
		}
	}
}

func TestFoliageScatteredFloatsOnly(t *testing.T) {
	f := smallFoliage()
	f.Update(StateScattered, 1.0/60, 2.0)
	if f.Mix() != 0 {
		t.Fatalf("mix = %v, want 0", f.Mix())
	}
	for i := 0; i < f.Len(); i++ {
		p := f.Particle(i)
		got := f.Positions()[i]
		assertNear(t, "x", got.X, p.Scatter.X)
		assertNear(t, "z", got.Z, p.Scatter.Z)
		wantY := p.Scatter.Y + math.Sin(2.0*0.5+p.Seed*5)*0.5
		assertNear(t, "y", got.Y, wantY)
	}
}

func TestFoliageTwinkleAndSparkle(t *testing.T) {
	f := smallFoliage()
	sparkles := 0
	for i := 0; i < f.Len(); i++ {
		a := f.Twinkle(i, 3.7)
		if a < 0.2-epsilon || a > 1+epsilon {
			t.Fatalf("twinkle %v outside [0.2, 1]", a)
		}
		if f.Sparkle(i) {
			sparkles++
		}
	}
	assertWithin(t, "sparkle fraction", float64(sparkles)/float64(f.Len()), 0.15, 0.05)
}
