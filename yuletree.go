package yuletree

import (
	"math"
	"math/rand/v2"
)

// Vec3 is a 3D vector used for particle positions and Euler rotations
// throughout the API. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns v scaled to unit length. The zero vector normalizes to
// itself.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// LerpVec3 interpolates component-wise between a and b by t.
func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{
		Lerp(a.X, b.X, t),
		Lerp(a.Y, b.Y, t),
		Lerp(a.Z, b.Z, t),
	}
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// RGB builds an opaque Color from a 0xRRGGBB value.
func RGB(hex uint32) Color {
	return Color{
		R: float64(hex>>16&0xff) / 255,
		G: float64(hex>>8&0xff) / 255,
		B: float64(hex&0xff) / 255,
		A: 1,
	}
}

// Mix blends c toward o by t, alpha included.
func (c Color) Mix(o Color, t float64) Color {
	return Color{
		R: Lerp(c.R, o.R, t),
		G: Lerp(c.G, o.G, t),
		B: Lerp(c.B, o.B, t),
		A: Lerp(c.A, o.A, t),
	}
}

// Range is a general-purpose min/max range.
// Used by the dataset builders for scales and speed factors.
type Range struct {
	Min, Max float64
}

// Sample returns a value in [Min, Max) drawn from src.
func (r Range) Sample(src Source) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + sourceOr(src).Float64()*(r.Max-r.Min)
}

// Source supplies uniform values in [0, 1). *rand.Rand from math/rand/v2
// satisfies it. A nil Source means the package-level generator.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

func sourceOr(src Source) Source {
	if src == nil {
		return globalSource{}
	}
	return src
}

// TreeState selects which formation the particles are heading toward.
type TreeState uint8

const (
	StateScattered TreeState = iota // particles drift in the scatter sphere
	StateTreeShape                  // particles assemble into the cone
)

// String returns the state name.
func (s TreeState) String() string {
	switch s {
	case StateScattered:
		return "SCATTERED"
	case StateTreeShape:
		return "TREE_SHAPE"
	default:
		return "UNKNOWN"
	}
}

// Target returns the progress value this state pulls toward: 1 for the
// assembled tree, 0 for the scattered cloud.
func (s TreeState) Target() float64 {
	if s == StateTreeShape {
		return 1
	}
	return 0
}

// ActionLabel names what toggling from s will do, as shown on the toggle
// button.
func (s TreeState) ActionLabel() string {
	if s == StateTreeShape {
		return "SCATTER MAGIC"
	}
	return "ASSEMBLE TREE"
}

// Toggled returns the opposite state.
func (s TreeState) Toggled() TreeState {
	if s == StateTreeShape {
		return StateScattered
	}
	return StateTreeShape
}

// OrnamentKind distinguishes the two ornament shapes. Assigned once at
// construction and never changed.
type OrnamentKind uint8

const (
	KindBauble OrnamentKind = iota // round gold bauble
	KindGift                       // red gift box
)

// String returns the kind name.
func (k OrnamentKind) String() string {
	if k == KindGift {
		return "gift"
	}
	return "bauble"
}

// Color returns the palette color for the kind.
func (k OrnamentKind) Color() Color {
	if k == KindGift {
		return ColorRedVelvet
	}
	return ColorGoldMetallic
}
