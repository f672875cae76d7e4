package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/yuletree"
)

// HUD text.
const (
	TitleText    = "Merry Christmas"
	SubtitleText = "ESPECIALLY FOR YOU"
	FooterText   = "INTERACTIVE 3D GREETING"
)

const (
	buttonWidth  = 240.0
	buttonHeight = 46.0
	buttonBottom = 64.0
	cornerSize   = 8.0
	hudMargin    = 48.0
)

// Font wraps Ebitengine's text/v2 face with a cached line height.
type Font struct {
	face *text.GoTextFace
	lh   float64
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("yuletree: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// HUD draws the greeting overlay and owns the toggle button's hit box.
type HUD struct {
	title, subtitle, button, footer *Font

	// ShowFPS adds an FPS/TPS readout in the top right corner.
	ShowFPS bool

	width, height int
	hover         bool
}

// NewHUD loads the bundled Go fonts.
func NewHUD() (*HUD, error) {
	title, err := LoadFont(gobold.TTF, 44)
	if err != nil {
		return nil, err
	}
	subtitle, err := LoadFont(gobold.TTF, 11)
	if err != nil {
		return nil, err
	}
	button, err := LoadFont(goregular.TTF, 13)
	if err != nil {
		return nil, err
	}
	footer, err := LoadFont(goregular.TTF, 10)
	if err != nil {
		return nil, err
	}
	return &HUD{title: title, subtitle: subtitle, button: button, footer: footer}, nil
}

// Resize records the screen size used for layout.
func (h *HUD) Resize(width, height int) {
	h.width, h.height = width, height
}

// ButtonRect returns the toggle button bounds in screen pixels.
func (h *HUD) ButtonRect() (x, y, w, hh float64) {
	return (float64(h.width) - buttonWidth) / 2,
		float64(h.height) - buttonBottom - buttonHeight,
		buttonWidth, buttonHeight
}

// HitButton reports whether the screen point (px, py) is on the button.
func (h *HUD) HitButton(px, py int) bool {
	x, y, w, hh := h.ButtonRect()
	fx, fy := float64(px), float64(py)
	return fx >= x && fx < x+w && fy >= y && fy < y+hh
}

// SetHover highlights the button.
func (h *HUD) SetHover(hover bool) {
	h.hover = hover
}

func toColor(c yuletree.Color) color.Color {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func (h *HUD) drawText(screen *ebiten.Image, f *Font, s string, x, y float64, align text.Align, c yuletree.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(toColor(c))
	op.PrimaryAlign = align
	op.LineSpacing = f.lh
	text.Draw(screen, s, f.face, op)
}

// spaced inserts a space between letters for a tracked-out look.
func spaced(s string) string {
	var b bytes.Buffer
	for i, r := range s {
		if i > 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Draw renders the overlay for state.
func (h *HUD) Draw(screen *ebiten.Image, state yuletree.TreeState) {
	w, hh := float64(h.width), float64(h.height)

	// Header
	glow := yuletree.ColorTitleGold
	glow.A = 0.25
	h.drawText(screen, h.title, TitleText, hudMargin+1, hudMargin+1, text.AlignStart, glow)
	h.drawText(screen, h.title, TitleText, hudMargin, hudMargin, text.AlignStart, yuletree.ColorTitleGold)
	h.drawText(screen, h.subtitle, spaced(SubtitleText), hudMargin+2, hudMargin+h.title.lh+4,
		text.AlignStart, yuletree.ColorSubtitleMint)

	// Button
	bx, by, bw, bh := h.ButtonRect()
	fill := color.NRGBA{0, 0, 0, 102}
	if h.hover {
		fill = color.NRGBA{0x2a, 0x23, 0x0b, 140}
	}
	vector.DrawFilledRect(screen, float32(bx), float32(by), float32(bw), float32(bh), fill, true)
	border := yuletree.ColorTitleGold
	if !h.hover {
		border.A = 0.3
	}
	vector.StrokeRect(screen, float32(bx), float32(by), float32(bw), float32(bh), 1, toColor(border), true)
	h.drawCorners(screen, bx, by, bw, bh)

	label := yuletree.ColorButtonText
	if h.hover {
		label = yuletree.Color{R: 1, G: 1, B: 1, A: 1}
	}
	_, th := h.button.MeasureString(state.ActionLabel())
	h.drawText(screen, h.button, spaced(state.ActionLabel()), bx+bw/2, by+(bh-th)/2, text.AlignCenter, label)

	// Footer
	footer := yuletree.Color{R: 0.82, G: 0.98, B: 0.9, A: 0.4}
	h.drawText(screen, h.footer, spaced(FooterText), w-hudMargin, hh-hudMargin/2-h.footer.lh,
		text.AlignEnd, footer)

	if h.ShowFPS {
		fps := fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		h.drawText(screen, h.footer, fps, w-12, 12, text.AlignEnd, yuletree.Color{R: 1, G: 1, B: 1, A: 0.6})
	}
}

// drawCorners draws the two gold corner brackets on the button.
func (h *HUD) drawCorners(screen *ebiten.Image, x, y, w, hh float64) {
	c := toColor(yuletree.ColorTitleGold)
	x0, y0 := float32(x), float32(y)
	x1, y1 := float32(x+w), float32(y+hh)
	vector.StrokeLine(screen, x0, y0, x0+cornerSize, y0, 1, c, true)
	vector.StrokeLine(screen, x0, y0, x0, y0+cornerSize, 1, c, true)
	vector.StrokeLine(screen, x1, y1, x1-cornerSize, y1, 1, c, true)
	vector.StrokeLine(screen, x1, y1, x1, y1-cornerSize, 1, c, true)
}
