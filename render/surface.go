package render

import (
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/yuletree"
)

// Scene layout and look.
var (
	// GroupOffset lowers the whole tree so it sits centred in the frame.
	GroupOffset = yuletree.Vec3{Y: -6}
)

const (
	pointSizeFactor = 130.0
	referenceHeight = 720.0
	fogNear         = 15.0
	fogFar          = 80.0
	starPoints      = 5
	starOuter       = 1.2
	starInner       = 0.5
)

// Surface is the Ebitengine render surface. Submit copies the frame into
// buffers sized once from the scene; Draw projects and rasterises the latest
// copy through a Camera.
type Surface struct {
	capacity yuletree.Capacity

	elapsed   float64
	state     yuletree.TreeState
	mix       float64
	foliage   []yuletree.Vec3
	seeds     []float64
	ornaments []yuletree.OrnamentInstance
	star      yuletree.StarInstance
	submitted int

	outline []yuletree.Vec3
	order   []int
	depths  []float64
	fanX    []float64
	fanY    []float64

	sprites *sprites
	glow    quadBatch
	quads   quadBatch
}

// NewSurface allocates a surface for the given particle counts.
func NewSurface(capacity yuletree.Capacity) *Surface {
	return &Surface{
		capacity:  capacity,
		foliage:   make([]yuletree.Vec3, capacity.Foliage),
		seeds:     make([]float64, capacity.Foliage),
		ornaments: make([]yuletree.OrnamentInstance, capacity.Ornaments),
		outline:   yuletree.StarOutline(starPoints, starOuter, starInner),
		order:     make([]int, capacity.Ornaments),
		depths:    make([]float64, capacity.Ornaments),
		fanX:      make([]float64, starPoints*2),
		fanY:      make([]float64, starPoints*2),
	}
}

// Capacity implements yuletree.Surface.
func (s *Surface) Capacity() yuletree.Capacity {
	return s.capacity
}

// Submit implements yuletree.Surface.
func (s *Surface) Submit(f *yuletree.Frame) {
	s.elapsed = f.Elapsed
	s.state = f.State
	s.mix = f.FoliageMix
	copy(s.foliage, f.Foliage)
	copy(s.seeds, f.Seeds)
	copy(s.ornaments, f.Ornaments)
	s.star = f.Star
	s.submitted++
}

// Submitted returns the number of frames received.
func (s *Surface) Submitted() int {
	return s.submitted
}

// State returns the tree state of the latest frame.
func (s *Surface) State() yuletree.TreeState {
	return s.state
}

// Draw renders the latest frame onto screen. The background is left to the
// caller.
func (s *Surface) Draw(screen *ebiten.Image, cam *Camera) {
	if s.sprites == nil {
		s.sprites = newSprites()
	}
	s.drawFoliage(screen, cam)
	s.drawOrnaments(screen, cam)
	s.drawStar(screen, cam)
}

func (s *Surface) drawFoliage(screen *ebiten.Image, cam *Camera) {
	_, h := cam.Size()
	scale := float64(h) / referenceHeight
	src := s.sprites.glow
	sw, sh := float32(src.Bounds().Dx()), float32(src.Bounds().Dy())

	s.glow.reserve(len(s.foliage))
	for i, p := range s.foliage {
		x, y, depth, ok := cam.Project(p.Add(GroupOffset))
		if !ok {
			continue
		}
		seed := s.seeds[i]
		size := pointSizeFactor * (0.6 + seed*0.6) / depth * scale
		c := foliageColor(seed, s.elapsed)
		c.A *= 1 - fogAmount(depth)
		s.glow.appendQuad(x, y, size/2, 0, sw, sh, c)
	}
	s.glow.flush(screen, src, ebiten.BlendLighter)
}

// foliageColor is the glow tint of one foliage point: emerald, with sparkle
// seeds pulled toward gold by their twinkle.
func foliageColor(seed, elapsed float64) yuletree.Color {
	c := yuletree.ColorEmeraldDeep.Mix(yuletree.ColorEmeraldLight, 0.7)
	c.R, c.G, c.B = c.R*1.2, c.G*1.2, c.B*1.2
	if yuletree.IsSparkle(seed) {
		twinkle := 0.5 + 0.5*math.Sin(yuletree.TwinkleAt(seed, elapsed)*10)
		c = c.Mix(yuletree.ColorGoldMetallic, twinkle*0.9)
	}
	c.A = 1
	return c
}

// fogAmount is the linear fog factor at depth: 0 when near, 1 when far.
func fogAmount(depth float64) float64 {
	return clamp01((depth - fogNear) / (fogFar - fogNear))
}

func (s *Surface) drawOrnaments(screen *ebiten.Image, cam *Camera) {
	if len(s.ornaments) == 0 {
		return
	}

	// Back to front, so nearer ornaments cover farther ones.
	eye := cam.Eye()
	for i, o := range s.ornaments {
		s.order[i] = i
		s.depths[i] = o.Position.Add(GroupOffset).Sub(eye).Len()
	}
	slices.SortFunc(s.order, func(a, b int) int {
		switch {
		case s.depths[a] > s.depths[b]:
			return -1
		case s.depths[a] < s.depths[b]:
			return 1
		}
		return 0
	})

	// Runs of the same kind share one draw call.
	kind := s.ornaments[s.order[0]].Kind
	for _, i := range s.order {
		o := s.ornaments[i]
		if o.Kind != kind {
			s.flushOrnaments(screen, kind)
			kind = o.Kind
		}
		x, y, depth, ok := cam.Project(o.Position.Add(GroupOffset))
		if !ok {
			continue
		}
		c := o.Kind.Color()
		c.A = 1 - fogAmount(depth)*0.6
		half := o.Scale * cam.PixelsPerUnit(depth)
		angle := 0.0
		if o.Kind == yuletree.KindGift {
			half /= 2
			angle = o.Rotation.X + o.Rotation.Y
		}
		src := s.ornamentSprite(o.Kind)
		s.quads.appendQuad(x, y, half, angle,
			float32(src.Bounds().Dx()), float32(src.Bounds().Dy()), c)
	}
	s.flushOrnaments(screen, kind)
}

func (s *Surface) ornamentSprite(kind yuletree.OrnamentKind) *ebiten.Image {
	if kind == yuletree.KindGift {
		return s.sprites.gift
	}
	return s.sprites.bauble
}

func (s *Surface) flushOrnaments(screen *ebiten.Image, kind yuletree.OrnamentKind) {
	s.quads.flush(screen, s.ornamentSprite(kind), ebiten.BlendSourceOver)
}

func (s *Surface) drawStar(screen *ebiten.Image, cam *Camera) {
	if len(s.outline) < 3 {
		return
	}
	center := s.star.Position.Add(GroupOffset)
	hx, hy, depth, ok := cam.Project(center)
	if !ok {
		return
	}
	for i, p := range s.outline {
		world := rotateEuler(p.Scale(s.star.Scale), s.star.Rotation).Add(center)
		x, y, _, ok := cam.Project(world)
		if !ok {
			return
		}
		s.fanX[i], s.fanY[i] = x, y
	}

	// Halo first, then the solid star over it.
	halo := yuletree.ColorGoldMetallic
	halo.A = 0.35
	src := s.sprites.glow
	s.glow.appendQuad(hx, hy, starOuter*2.5*cam.PixelsPerUnit(depth), 0,
		float32(src.Bounds().Dx()), float32(src.Bounds().Dy()), halo)
	s.glow.flush(screen, src, ebiten.BlendLighter)

	s.quads.appendFan(hx, hy, s.fanX, s.fanY, yuletree.ColorGoldMetallic)
	s.quads.flush(screen, s.sprites.white, ebiten.BlendSourceOver)
}
