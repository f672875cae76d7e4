package render

import (
	"math"

	"github.com/phanxgames/yuletree"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera defaults.
const (
	DefaultFOV             = 45 * math.Pi / 180
	DefaultAutoRotateSpeed = 0.8
	DefaultMinPolar        = math.Pi / 4
	DefaultMaxPolar        = math.Pi / 1.8
	DefaultMinDistance     = 15.0
	DefaultMaxDistance     = 50.0

	cameraHeight      = -4.0
	landscapeDepth    = 32.0
	portraitDepth     = 26.0
	zoomTweenDuration = 0.6
	nearPlane         = 0.1
)

// Camera is a perspective camera orbiting a fixed target, with the polar
// angle and distance clamped the way the greeting expects.
type Camera struct {
	// Target is the world-space point the camera orbits and looks at.
	Target yuletree.Vec3
	// Azimuth is the rotation about the world Y axis in radians. Zero places
	// the camera on +Z.
	Azimuth float64
	// Polar is the angle from +Y in radians.
	Polar float64
	// Distance from Target.
	Distance float64
	// FOV is the vertical field of view in radians.
	FOV float64
	// AutoRotateSpeed matches the orbit-control convention: 1.0 is one
	// revolution per minute.
	AutoRotateSpeed float64

	MinPolar, MaxPolar       float64
	MinDistance, MaxDistance float64

	width, height int
	portrait      bool
	zoomTween     *gween.Tween

	eye                yuletree.Vec3
	right, up, forward yuletree.Vec3
	focal              float64
	dirty              bool
}

// NewCamera creates a camera framing the tree for a width x height viewport.
// Portrait viewports start closer.
func NewCamera(width, height int) *Camera {
	c := &Camera{
		FOV:             DefaultFOV,
		AutoRotateSpeed: DefaultAutoRotateSpeed,
		MinPolar:        DefaultMinPolar,
		MaxPolar:        DefaultMaxPolar,
		MinDistance:     DefaultMinDistance,
		MaxDistance:     DefaultMaxDistance,
		width:           max(width, 1),
		height:          max(height, 1),
		dirty:           true,
	}
	c.portrait = c.width < c.height
	depth := landscapeDepth
	if c.portrait {
		depth = portraitDepth
	}
	c.Distance = math.Hypot(cameraHeight, depth)
	c.Polar = math.Acos(cameraHeight / c.Distance)
	return c
}

// framingDistance returns the resting distance for the given orientation.
func framingDistance(portrait bool) float64 {
	if portrait {
		return math.Hypot(cameraHeight, portraitDepth)
	}
	return math.Hypot(cameraHeight, landscapeDepth)
}

// Size returns the viewport size.
func (c *Camera) Size() (width, height int) {
	return c.width, c.height
}

// Resize updates the viewport. Crossing between landscape and portrait
// starts a short zoom toward the framing distance for the new orientation.
func (c *Camera) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if width == c.width && height == c.height {
		return
	}
	c.width, c.height = width, height
	c.dirty = true

	portrait := width < height
	if portrait == c.portrait {
		return
	}
	c.portrait = portrait
	c.zoomTween = gween.New(float32(c.Distance), float32(framingDistance(portrait)),
		zoomTweenDuration, ease.OutCubic)
}

// Drag orbits the camera by a pointer movement in pixels. A drag across the
// full viewport height turns the camera one full revolution.
func (c *Camera) Drag(dx, dy float64) {
	c.Azimuth -= 2 * math.Pi * dx / float64(c.height)
	c.Polar -= 2 * math.Pi * dy / float64(c.height)
	c.clamp()
}

// Update advances the zoom tween and, when autoRotate is set, spins the
// camera around the target.
func (c *Camera) Update(dt float64, autoRotate bool) {
	if !(dt > 0) {
		return
	}
	if c.zoomTween != nil {
		val, done := c.zoomTween.Update(float32(dt))
		c.Distance = float64(val)
		if done {
			c.zoomTween = nil
		}
		c.dirty = true
	}
	if autoRotate && c.AutoRotateSpeed != 0 {
		c.Azimuth -= 2 * math.Pi / 60 * c.AutoRotateSpeed * dt
		c.dirty = true
	}
	c.clamp()
}

// Zooming reports whether a distance tween is in progress.
func (c *Camera) Zooming() bool {
	return c.zoomTween != nil
}

func (c *Camera) clamp() {
	c.Polar = math.Max(c.MinPolar, math.Min(c.MaxPolar, c.Polar))
	c.Distance = math.Max(c.MinDistance, math.Min(c.MaxDistance, c.Distance))
	c.dirty = true
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() yuletree.Vec3 {
	c.updateView()
	return c.eye
}

func (c *Camera) updateView() {
	if !c.dirty {
		return
	}
	c.dirty = false

	sp, cp := math.Sincos(c.Polar)
	sa, ca := math.Sincos(c.Azimuth)
	c.eye = c.Target.Add(yuletree.Vec3{X: sp * sa, Y: cp, Z: sp * ca}.Scale(c.Distance))

	c.forward = c.Target.Sub(c.eye).Normalize()
	worldUp := yuletree.Vec3{Y: 1}
	c.right = cross(c.forward, worldUp).Normalize()
	c.up = cross(c.right, c.forward)
	c.focal = float64(c.height) / 2 / math.Tan(c.FOV/2)
}

// Project maps a world-space point to screen pixels. depth is the distance
// along the view direction; ok is false for points behind the near plane.
func (c *Camera) Project(p yuletree.Vec3) (x, y, depth float64, ok bool) {
	c.updateView()
	rel := p.Sub(c.eye)
	depth = dot(rel, c.forward)
	if depth < nearPlane {
		return 0, 0, depth, false
	}
	s := c.focal / depth
	x = float64(c.width)/2 + dot(rel, c.right)*s
	y = float64(c.height)/2 - dot(rel, c.up)*s
	return x, y, depth, true
}

// PixelsPerUnit returns how many pixels one world unit spans at depth.
func (c *Camera) PixelsPerUnit(depth float64) float64 {
	c.updateView()
	if depth < nearPlane {
		depth = nearPlane
	}
	return c.focal / depth
}

func dot(a, b yuletree.Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func cross(a, b yuletree.Vec3) yuletree.Vec3 {
	return yuletree.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// rotateEuler applies an XYZ Euler rotation (Z first, then Y, then X).
func rotateEuler(v, r yuletree.Vec3) yuletree.Vec3 {
	sz, cz := math.Sincos(r.Z)
	v = yuletree.Vec3{X: v.X*cz - v.Y*sz, Y: v.X*sz + v.Y*cz, Z: v.Z}
	sy, cy := math.Sincos(r.Y)
	v = yuletree.Vec3{X: v.X*cy + v.Z*sy, Y: v.Y, Z: -v.X*sy + v.Z*cy}
	sx, cx := math.Sincos(r.X)
	return yuletree.Vec3{X: v.X, Y: v.Y*cx - v.Z*sx, Z: v.Y*sx + v.Z*cx}
}
