package render

import (
	"math"
	"testing"

	"github.com/phanxgames/yuletree"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestNewCameraFraming(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantZ         float64
	}{
		{"landscape", 1280, 720, 32},
		{"portrait", 720, 1280, 26},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(tt.width, tt.height)
			eye := c.Eye()
			assertNear(t, "eye x", eye.X, 0, epsilon)
			assertNear(t, "eye y", eye.Y, -4, 1e-9)
			assertNear(t, "eye z", eye.Z, tt.wantZ, 1e-9)
		})
	}
}

func TestCameraProjectTargetAtCentre(t *testing.T) {
	c := NewCamera(1280, 720)
	x, y, depth, ok := c.Project(c.Target)
	if !ok {
		t.Fatal("target should be visible")
	}
	assertNear(t, "x", x, 640, 1e-9)
	assertNear(t, "y", y, 360, 1e-9)
	assertNear(t, "depth", depth, c.Distance, 1e-9)
}

func TestCameraProjectScale(t *testing.T) {
	c := NewCamera(1280, 720)
	focal := 360 / math.Tan(DefaultFOV/2)
	x, _, depth, ok := c.Project(yuletree.Vec3{X: 1})
	if !ok {
		t.Fatal("point should be visible")
	}
	assertNear(t, "x", x, 640+focal/depth, 1e-9)
	assertNear(t, "pixels per unit", c.PixelsPerUnit(depth), focal/depth, 1e-9)

	// +Y is up on screen.
	_, y, _, _ := c.Project(yuletree.Vec3{Y: 5})
	if y >= 360 {
		t.Errorf("point above target projected to y=%v, want < 360", y)
	}
}

func TestCameraProjectBehind(t *testing.T) {
	c := NewCamera(800, 600)
	eye := c.Eye()
	behind := eye.Add(eye.Sub(c.Target))
	if _, _, _, ok := c.Project(behind); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestCameraDragClampsPolar(t *testing.T) {
	c := NewCamera(800, 600)
	c.Drag(0, -1e4)
	assertNear(t, "max polar", c.Polar, DefaultMaxPolar, epsilon)
	c.Drag(0, 1e4)
	assertNear(t, "min polar", c.Polar, DefaultMinPolar, epsilon)

	az := c.Azimuth
	c.Drag(300, 0)
	assertNear(t, "azimuth", c.Azimuth, az-math.Pi, epsilon)
}

func TestCameraAutoRotate(t *testing.T) {
	c := NewCamera(800, 600)
	c.Update(1, false)
	assertNear(t, "still", c.Azimuth, 0, epsilon)
	c.Update(1, true)
	assertNear(t, "rotated", c.Azimuth, -2*math.Pi/60*0.8, epsilon)
	c.Update(-1, true)
	assertNear(t, "negative dt", c.Azimuth, -2*math.Pi/60*0.8, epsilon)
}

func TestCameraResizeTweensDistance(t *testing.T) {
	c := NewCamera(1280, 720)
	c.Resize(1600, 900)
	if c.Zooming() {
		t.Fatal("same orientation should not zoom")
	}

	c.Resize(720, 1280)
	if !c.Zooming() {
		t.Fatal("orientation change should start a zoom")
	}
	c.Update(0.1, false)
	if c.Distance >= math.Hypot(4, 32) || c.Distance <= math.Hypot(4, 26) {
		t.Errorf("mid-tween distance %v outside the two framings", c.Distance)
	}
	c.Update(1, false)
	if c.Zooming() {
		t.Error("zoom should finish")
	}
	assertNear(t, "portrait distance", c.Distance, math.Hypot(4, 26), 1e-4)
}

func TestRotateEuler(t *testing.T) {
	tests := []struct {
		name string
		v, r yuletree.Vec3
		want yuletree.Vec3
	}{
		{"identity", yuletree.Vec3{X: 1, Y: 2, Z: 3}, yuletree.Vec3{}, yuletree.Vec3{X: 1, Y: 2, Z: 3}},
		{"z quarter", yuletree.Vec3{X: 1}, yuletree.Vec3{Z: math.Pi / 2}, yuletree.Vec3{Y: 1}},
		{"y quarter", yuletree.Vec3{X: 1}, yuletree.Vec3{Y: math.Pi / 2}, yuletree.Vec3{Z: -1}},
		{"x quarter", yuletree.Vec3{Y: 1}, yuletree.Vec3{X: math.Pi / 2}, yuletree.Vec3{Z: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rotateEuler(tt.v, tt.r)
			if d := got.Sub(tt.want).Len(); d > 1e-12 {
				t.Errorf("rotateEuler = %v, want %v", got, tt.want)
			}
		})
	}
}
