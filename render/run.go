package render

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/yuletree"
)

// RunConfig holds optional parameters for Run.
type RunConfig struct {
	// Title sets the window title. Defaults to "Merry Christmas".
	Title string
	// Width and Height set the initial window size. Default 1280x720.
	Width, Height int
	// ShowFPS draws an FPS/TPS readout.
	ShowFPS bool
	// ScreenshotDir is where P and script snapshots write PNGs. Defaults to
	// "screenshots".
	ScreenshotDir string
	// Script, if set, is stepped once per frame. Each snapshot step also
	// saves a screenshot under its label.
	Script *yuletree.ScriptRunner
	// ExitOnScriptDone closes the window once Script finishes.
	ExitOnScriptDone bool
	// Debug enables the scene's per-frame timing output.
	Debug bool
}

func (c RunConfig) withDefaults() RunConfig {
	if c.Title == "" {
		c.Title = TitleText
	}
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
	return c
}

// Run opens a window and drives scene until the window closes or Escape is
// pressed. Space or the on-screen button toggles the tree, dragging orbits
// the camera, and P saves a screenshot. It returns any script expectation
// failures.
func Run(scene *yuletree.Scene, cfg RunConfig) error {
	g, err := newGame(scene, cfg)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("yuletree: run: %w", err)
	}
	if cfg.Script != nil {
		return cfg.Script.Err()
	}
	return nil
}

// game implements ebiten.Game around a Scene.
type game struct {
	cfg     RunConfig
	scene   *yuletree.Scene
	surface *Surface
	camera  *Camera
	hud     *HUD
	shots   screenshotter

	dragging     bool
	lastX, lastY int
	quit         bool
}

func newGame(scene *yuletree.Scene, cfg RunConfig) (*game, error) {
	cfg = cfg.withDefaults()
	hud, err := NewHUD()
	if err != nil {
		return nil, err
	}
	hud.ShowFPS = cfg.ShowFPS
	hud.Resize(cfg.Width, cfg.Height)

	g := &game{
		cfg:     cfg,
		scene:   scene,
		surface: NewSurface(scene.Capacity()),
		camera:  NewCamera(cfg.Width, cfg.Height),
		hud:     hud,
		shots:   screenshotter{dir: cfg.ScreenshotDir},
	}
	scene.Attach(g.surface)
	scene.SetDebugMode(cfg.Debug || scene.Config().Debug)
	g.surface.Submit(scene.Frame())

	if cfg.Script != nil {
		prev := cfg.Script.OnSnapshot
		cfg.Script.OnSnapshot = func(snap yuletree.Snapshot) {
			g.shots.request(snap.Label)
			if prev != nil {
				prev(snap)
			}
		}
	}
	return g, nil
}

// Update implements ebiten.Game.
func (g *game) Update() error {
	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	dt := 1.0 / float64(ebiten.TPS())

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.scene.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.shots.request("manual")
	}
	g.updatePointer()

	if s := g.cfg.Script; s != nil && !s.Done() {
		s.Step(g.scene)
	}

	g.scene.Advance(dt)
	g.camera.Update(dt, g.scene.State() == yuletree.StateTreeShape)
	return nil
}

func (g *game) updatePointer() {
	mx, my := ebiten.CursorPosition()
	g.hud.SetHover(g.hud.HitButton(mx, my))

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if g.hud.HitButton(mx, my) {
			g.scene.Toggle()
			return
		}
		g.dragging = true
		g.lastX, g.lastY = mx, my
	case g.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.camera.Drag(float64(mx-g.lastX), float64(my-g.lastY))
		g.lastX, g.lastY = mx, my
	default:
		g.dragging = false
	}
}

// Draw implements ebiten.Game.
func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(toColor(yuletree.ColorNightSky))
	g.surface.Draw(screen, g.camera)
	g.hud.Draw(screen, g.surface.State())

	for _, path := range g.shots.flush(screen) {
		_, _ = fmt.Printf("[yuletree] screenshot: %s\n", path)
	}
	if s := g.cfg.Script; s != nil && s.Done() && g.cfg.ExitOnScriptDone {
		g.quit = true
	}
}

// Layout implements ebiten.Game. The scene renders at the window's size so
// the camera can switch between portrait and landscape framing.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.camera.Resize(outsideWidth, outsideHeight)
	g.hud.Resize(outsideWidth, outsideHeight)
	return max(outsideWidth, 1), max(outsideHeight, 1)
}
