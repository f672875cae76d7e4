// Package term renders a yuletree.Scene into a terminal with tcell.
//
// Particles are projected onto the cell grid with a simple perspective
// camera that spins while the tree is assembled. Each cell keeps the nearest
// particle, so ornaments and the star show through the foliage cloud.
// Truecolor terminals get the scene palette; others get tcell's nearest
// match.
package term

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/yuletree"
)

// Projection constants.
const (
	cameraDistance = 42.0
	viewHeight     = 24.0 // world units visible vertically at the target
	cellAspect     = 2.0  // terminal cells are about twice as tall as wide
	spinSpeed      = 0.25 // radians per second while assembled
	centreY        = 0.5  // vertical world offset of the view centre
)

// Glyphs, nearest first.
var foliageRamp = []rune{'@', '*', '+', ':', '.'}

const (
	glyphSparkle = '✦'
	glyphBauble  = 'o'
	glyphGift    = '■'
	glyphStar    = '★'
)

type cell struct {
	depth float64
	r     rune
	style tcell.Style
	set   bool
}

// Surface draws frames onto a tcell.Screen. Submit renders and shows the
// frame immediately.
type Surface struct {
	screen   tcell.Screen
	capacity yuletree.Capacity

	// Spin enables the slow rotation while the tree is assembled.
	Spin bool

	azimuth     float64
	lastElapsed float64
	width       int
	height      int
	cells       []cell
	background  tcell.Style
	frames      int
}

// NewSurface creates a terminal surface for the given particle counts.
func NewSurface(screen tcell.Screen, capacity yuletree.Capacity) *Surface {
	s := &Surface{
		screen:     screen,
		capacity:   capacity,
		Spin:       true,
		background: tcell.StyleDefault.Background(toTcell(yuletree.ColorNightSky)),
	}
	s.resize()
	return s
}

// Capacity implements yuletree.Surface.
func (s *Surface) Capacity() yuletree.Capacity {
	return s.capacity
}

// Frames returns the number of frames drawn.
func (s *Surface) Frames() int {
	return s.frames
}

func (s *Surface) resize() {
	w, h := s.screen.Size()
	s.width, s.height = max(w, 0), max(h, 0)
	if n := s.width * s.height; cap(s.cells) < n {
		s.cells = make([]cell, n)
	} else {
		s.cells = s.cells[:n]
	}
}

// Submit implements yuletree.Surface.
func (s *Surface) Submit(f *yuletree.Frame) {
	if w, h := s.screen.Size(); w != s.width || h != s.height {
		s.resize()
	}
	dt := f.Elapsed - s.lastElapsed
	s.lastElapsed = f.Elapsed
	if s.Spin && f.State == yuletree.StateTreeShape && dt > 0 {
		s.azimuth += spinSpeed * dt
	}

	for i := range s.cells {
		s.cells[i] = cell{}
	}
	s.plotFoliage(f)
	s.plotOrnaments(f)
	s.plotStar(f)
	s.flush(f.State)
	s.frames++
}

// project maps a world point to a cell. ok is false off screen or behind the
// camera.
func (s *Surface) project(p yuletree.Vec3) (col, row int, depth float64, ok bool) {
	sin, cos := math.Sincos(s.azimuth)
	x := p.X*cos + p.Z*sin
	z := -p.X*sin + p.Z*cos
	depth = cameraDistance - z
	if depth < 1 {
		return 0, 0, depth, false
	}
	// Rows per world unit at the target distance.
	rowsPerUnit := float64(s.height-1) / viewHeight
	k := rowsPerUnit * cameraDistance / depth
	col = int(math.Round(float64(s.width)/2 + x*k*cellAspect))
	row = int(math.Round(float64(s.height-1)/2 - (p.Y-centreY)*k))
	if col < 0 || col >= s.width || row < 0 || row >= s.height-1 {
		return 0, 0, depth, false
	}
	return col, row, depth, true
}

func (s *Surface) plot(col, row int, depth float64, r rune, c yuletree.Color) {
	i := row*s.width + col
	if s.cells[i].set && s.cells[i].depth <= depth {
		return
	}
	s.cells[i] = cell{
		depth: depth,
		r:     r,
		style: s.background.Foreground(toTcell(c)),
		set:   true,
	}
}

// dim darkens c with distance so far points recede.
func dim(c yuletree.Color, depth float64) yuletree.Color {
	f := math.Max(0.25, math.Min(1, 1.4-depth/cameraDistance*0.6))
	return yuletree.Color{R: c.R * f, G: c.G * f, B: c.B * f, A: 1}
}

func (s *Surface) plotFoliage(f *yuletree.Frame) {
	for i, p := range f.Foliage {
		col, row, depth, ok := s.project(p)
		if !ok {
			continue
		}
		seed := f.Seeds[i]
		if yuletree.IsSparkle(seed) && yuletree.TwinkleAt(seed, f.Elapsed) > 0.75 {
			s.plot(col, row, depth, glyphSparkle, dim(yuletree.ColorGoldMetallic, depth))
			continue
		}
		c := yuletree.ColorEmeraldDeep.Mix(yuletree.ColorEmeraldLight, yuletree.TwinkleAt(seed, f.Elapsed))
		s.plot(col, row, depth, rampGlyph(depth), dim(c, depth))
	}
}

// rampGlyph picks a denser glyph for nearer points.
func rampGlyph(depth float64) rune {
	t := (depth - (cameraDistance - 10)) / 20
	i := int(math.Floor(t * float64(len(foliageRamp))))
	return foliageRamp[max(0, min(len(foliageRamp)-1, i))]
}

func (s *Surface) plotOrnaments(f *yuletree.Frame) {
	for _, o := range f.Ornaments {
		col, row, depth, ok := s.project(o.Position)
		if !ok {
			continue
		}
		r := glyphBauble
		if o.Kind == yuletree.KindGift {
			r = glyphGift
		}
		// Ornaments win ties against foliage in the same cell.
		s.plot(col, row, depth-1, r, dim(o.Kind.Color(), depth))
	}
}

func (s *Surface) plotStar(f *yuletree.Frame) {
	col, row, depth, ok := s.project(f.Star.Position)
	if !ok {
		return
	}
	s.plot(col, row, depth-2, glyphStar, yuletree.ColorGoldMetallic)
}

func (s *Surface) flush(state yuletree.TreeState) {
	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			c := s.cells[row*s.width+col]
			if !c.set {
				s.screen.SetContent(col, row, ' ', nil, s.background)
				continue
			}
			s.screen.SetContent(col, row, c.r, nil, c.style)
		}
	}
	s.drawStatus(state)
	s.screen.Show()
}

// StatusLine returns the bottom line text for state.
func StatusLine(state yuletree.TreeState) string {
	return "Merry Christmas  [space] " + state.ActionLabel() + "  [q] quit"
}

func (s *Surface) drawStatus(state yuletree.TreeState) {
	if s.height == 0 {
		return
	}
	style := s.background.Foreground(toTcell(yuletree.ColorTitleGold)).Bold(true)
	row := s.height - 1
	col := 0
	for _, r := range StatusLine(state) {
		if col >= s.width {
			break
		}
		s.screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < s.width; col++ {
		s.screen.SetContent(col, row, ' ', nil, s.background)
	}
}

func toTcell(c yuletree.Color) tcell.Color {
	return tcell.NewRGBColor(
		int32(math.Round(math.Max(0, math.Min(1, c.R))*255)),
		int32(math.Round(math.Max(0, math.Min(1, c.G))*255)),
		int32(math.Round(math.Max(0, math.Min(1, c.B))*255)),
	)
}

// Config holds optional parameters for Run.
type Config struct {
	// FrameInterval is the tick period. Defaults to 33ms.
	FrameInterval time.Duration
	// NoSpin disables the slow rotation.
	NoSpin bool
}

// Run attaches a Surface to scene and drives it on screen until ctx is done
// or the user presses q, Escape or Ctrl+C. Space toggles the tree. The
// caller owns screen: Init it before and Fini it after.
func Run(ctx context.Context, scene *yuletree.Scene, screen tcell.Screen, cfg Config) error {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = 33 * time.Millisecond
	}
	surface := NewSurface(screen, scene.Capacity())
	surface.Spin = !cfg.NoSpin
	scene.Attach(surface)

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(cfg.FrameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !handleEvent(scene, screen, ev) {
				return nil
			}
		case now := <-ticker.C:
			scene.Advance(now.Sub(last).Seconds())
			last = now
		}
	}
}

// handleEvent applies one input event and reports whether to keep running.
func handleEvent(scene *yuletree.Scene, screen tcell.Screen, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				scene.Toggle()
			}
		}
	case *tcell.EventResize:
		screen.Sync()
	}
	return true
}
