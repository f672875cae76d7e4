package yuletree

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Ease applies a cubic ease-in-out to t: 4t³ below one half, 1-(-2t+2)³/2
// above. t is clamped to [0, 1] first.
func Ease(t float64) float64 {
	t = Clamp01(t)
	return float64(ease.InOutCubic(float32(t), 0, 1, 1))
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 limits v to [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Damp moves current toward target with an exponential approach whose rate is
// lambda per second. The result depends only on the elapsed dt, not on how
// many frames it was split into, and never overshoots target. A zero,
// negative, or NaN dt leaves current unchanged.
func Damp(current, target, lambda, dt float64) float64 {
	if !(dt > 0) {
		return current
	}
	return Lerp(current, target, 1-math.Exp(-lambda*dt))
}

// Progress is a blend value in [0, 1] between the scattered (0) and assembled
// (1) formations. Each particle class owns one.
type Progress struct {
	// Value is the current blend. Always in [0, 1].
	Value float64
	// Lambda is the damping rate used by Advance.
	Lambda float64
}

// Advance damps Value toward target over dt seconds and returns the new value.
// Switching target mid-transition simply redirects the approach.
func (p *Progress) Advance(target, dt float64) float64 {
	p.Value = Clamp01(Damp(Clamp01(p.Value), Clamp01(target), p.Lambda, dt))
	return p.Value
}

// Eased returns Ease(Value).
func (p *Progress) Eased() float64 {
	return Ease(p.Value)
}
