package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/yuletree"
)

// quadBatch accumulates textured quads that share one source image and blend
// mode, and submits them as a single DrawTriangles32 call.
type quadBatch struct {
	verts []ebiten.Vertex
	inds  []uint32
}

// reserve grows the buffers to hold n quads without reallocating.
func (b *quadBatch) reserve(n int) {
	if cap(b.verts) < n*4 {
		b.verts = make([]ebiten.Vertex, 0, n*4)
	}
	if cap(b.inds) < n*6 {
		b.inds = make([]uint32, 0, n*6)
	}
}

// len returns the number of quads queued.
func (b *quadBatch) len() int {
	return len(b.verts) / 4
}

// appendQuad queues a quad centred on (cx, cy) with half-extent half, rotated
// by angle radians, sampling the whole of a src image of size srcW x srcH.
// c is straight alpha and is premultiplied here.
func (b *quadBatch) appendQuad(cx, cy, half, angle float64, srcW, srcH float32, c yuletree.Color) {
	sin, cos := math.Sincos(angle)
	a, bb := cos*half, sin*half

	// 4 local corners: TL, TR, BL, BR
	lx := [4]float64{-1, 1, -1, 1}
	ly := [4]float64{-1, -1, 1, 1}
	sx := [4]float32{0, srcW, 0, srcW}
	sy := [4]float32{0, 0, srcH, srcH}

	ca := float32(c.A)
	cr := float32(c.R) * ca
	cg := float32(c.G) * ca
	cb := float32(c.B) * ca

	base := uint32(len(b.verts))
	for i := 0; i < 4; i++ {
		b.verts = append(b.verts, ebiten.Vertex{
			DstX:   float32(cx + a*lx[i] - bb*ly[i]),
			DstY:   float32(cy + bb*lx[i] + a*ly[i]),
			SrcX:   sx[i],
			SrcY:   sy[i],
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}

	// Two triangles: TL-TR-BL, TR-BR-BL
	b.inds = append(b.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// appendFan queues a filled polygon triangulated as a fan around hub. Works
// for star-shaped outlines whose every vertex is visible from hub.
func (b *quadBatch) appendFan(hubX, hubY float64, xs, ys []float64, c yuletree.Color) {
	n := len(xs)
	if n < 3 || len(ys) != n {
		return
	}

	ca := float32(c.A)
	cr := float32(c.R) * ca
	cg := float32(c.G) * ca
	cb := float32(c.B) * ca

	// Untextured: sample the centre of the white pixel.
	vertex := func(x, y float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}

	base := uint32(len(b.verts))
	b.verts = append(b.verts, vertex(hubX, hubY))
	for i := 0; i < n; i++ {
		b.verts = append(b.verts, vertex(xs[i], ys[i]))
	}
	for i := 0; i < n; i++ {
		next := (i+1)%n + 1
		b.inds = append(b.inds, base, base+uint32(i+1), base+uint32(next))
	}
}

// flush submits the queued geometry and resets the batch.
func (b *quadBatch) flush(target, src *ebiten.Image, blend ebiten.Blend) {
	if len(b.verts) == 0 {
		return
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = blend
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha

	target.DrawTriangles32(b.verts, b.inds, src, &triOp)

	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}
