package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const spriteSize = 64

// sprites holds the generated textures the surface draws with. All of them
// are white so vertex colours tint them.
type sprites struct {
	glow   *ebiten.Image // soft additive point
	bauble *ebiten.Image // shaded sphere
	gift   *ebiten.Image // box face with a ribbon cross
	white  *ebiten.Image // 1x1 for untextured fans
}

func newSprites() *sprites {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &sprites{
		glow:   generateSprite(spriteSize, glowAlpha),
		bauble: generateSprite(spriteSize, baubleShade),
		gift:   generateSprite(spriteSize, giftShade),
		white:  white,
	}
}

// generateSprite rasterises fn over a size x size square. fn receives the
// pixel centre in [-0.5, 0.5] coordinates and returns premultiplied white
// intensity and alpha.
func generateSprite(size int, fn func(x, y float64) (lum, alpha float64)) *ebiten.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			x := (float64(px)+0.5)/float64(size) - 0.5
			y := (float64(py)+0.5)/float64(size) - 0.5
			lum, a := fn(x, y)
			l := uint8(math.Round(clamp01(lum*a) * 255))
			img.SetRGBA(px, py, color.RGBA{l, l, l, uint8(math.Round(clamp01(a) * 255))})
		}
	}
	return ebiten.NewImageFromImage(img)
}

// glowAlpha is the soft point falloff: opaque at the centre, fading to zero
// at the rim with a slight power curve.
func glowAlpha(x, y float64) (lum, alpha float64) {
	r := math.Hypot(x, y)
	if r > 0.5 {
		return 0, 0
	}
	return 1, math.Pow(1-r*2, 1.2)
}

// baubleShade lights a sphere from the upper left with an antialiased rim.
func baubleShade(x, y float64) (lum, alpha float64) {
	r := math.Hypot(x, y)
	if r > 0.5 {
		return 0, 0
	}
	edge := clamp01((0.5 - r) * spriteSize)
	hl := math.Hypot(x+0.17, y+0.17)
	lum = 0.45 + 0.55*clamp01(1-hl*1.6)
	if hl < 0.07 {
		lum = 1
	}
	return lum, edge
}

// giftShade is a box face with a darker border and a lighter ribbon cross.
func giftShade(x, y float64) (lum, alpha float64) {
	ax, ay := math.Abs(x), math.Abs(y)
	switch {
	case ax < 0.06 || ay < 0.06:
		return 1, 1
	case ax > 0.44 || ay > 0.44:
		return 0.6, 1
	}
	return 0.82, 1
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
