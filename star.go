package yuletree

import "math"

// Rotation damping rates for the assembled star. These reproduce a per-frame
// lerp of 0.05 (yaw) and 0.1 (tilt) at 60 frames per second.
const (
	starYawLambda  = 3.08
	starTiltLambda = 6.32
)

// StarInstance is the per-frame transform of the star.
type StarInstance struct {
	Position Vec3
	Rotation Vec3
	Scale    float64
}

// Star is the single tree-top star.
type Star struct {
	config   StarConfig
	scatter  Vec3
	tree     Vec3
	progress Progress
	inst     StarInstance
}

func (c StarConfig) withDefaults() StarConfig {
	if c.TreeHeight == 0 {
		c.TreeHeight = DefaultTreeHeight
	}
	if c.ScatterY == 0 {
		c.ScatterY = 25
	}
	if c.Lambda == 0 {
		c.Lambda = DefaultStarLambda
	}
	return c
}

// NewStar creates the star. It sits 0.8 above the apex when assembled and
// hangs high above the cloud when scattered.
func NewStar(cfg StarConfig) *Star {
	cfg = cfg.withDefaults()
	s := &Star{
		config:   cfg,
		tree:     Vec3{Y: cfg.TreeHeight/2 + 0.8},
		scatter:  Vec3{Y: cfg.ScatterY},
		progress: Progress{Lambda: cfg.Lambda},
	}
	s.inst = StarInstance{Position: s.scatter, Scale: 1}
	return s
}

// TreePosition returns the assembled position.
func (s *Star) TreePosition() Vec3 {
	return s.tree
}

// ScatterPosition returns the scattered position.
func (s *Star) ScatterPosition() Vec3 {
	return s.scatter
}

// Progress returns the raw star progress in [0, 1].
func (s *Star) Progress() float64 {
	return s.progress.Value
}

// Instance returns the current transform.
func (s *Star) Instance() StarInstance {
	return s.inst
}

// Update advances the star toward state over dt seconds.
//
// While scattered the star spins fast and wobbles. Once the tree is called
// for, yaw eases toward a slow steady turn and the wobble settles to zero.
func (s *Star) Update(state TreeState, dt, elapsed float64) {
	s.progress.Advance(state.Target(), dt)
	t := s.progress.Eased()
	s.inst.Position = LerpVec3(s.scatter, s.tree, t)

	rot := &s.inst.Rotation
	if state == StateScattered {
		rot.Y = elapsed * 0.8
		rot.Z = math.Sin(elapsed) * 0.3
		return
	}
	rot.Y = Damp(rot.Y, elapsed*0.2, starYawLambda, dt)
	rot.Z = Damp(rot.Z, 0, starTiltLambda, dt)
	rot.X = Damp(rot.X, 0, starTiltLambda, dt)
}

// StarOutline returns the closed outline of a star with the given number of
// points, alternating outer and inner radii, in the XY plane. The first
// vertex points straight up.
func StarOutline(points int, outer, inner float64) []Vec3 {
	if points < 2 {
		return nil
	}
	out := make([]Vec3, points*2)
	for i := range out {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)/float64(points*2)*math.Pi*2 + math.Pi/2
		out[i] = Vec3{X: math.Cos(a) * r, Y: math.Sin(a) * r}
	}
	return out
}
