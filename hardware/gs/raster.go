// This file is part of emotion2k.
//
// emotion2k is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// emotion2k is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with emotion2k.  If not, see <https://www.gnu.org/licenses/>.

package gs

// pixelCoord reduces a vertex's 4-bit fixed-point screen position to pixel
// resolution relative to the context's XYOFFSET.
func pixelCoord(v Vertex, off XYOFFSET) (int32, int32) {
	return (v.X - int32(off.X)) >> 4, (v.Y - int32(off.Y)) >> 4
}

// orient2D is the integer edge function: positive when c lies to the left
// of the directed edge a->b.
func orient2D(ax, ay, bx, by, cx, cy int64) int64 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

// shade resolves the fragment colour at a pixel: texture sampling and
// colour function when texturing is on, fog mixing when fog is on.
func (g *GS) shade(ctx *Context, attr PRIM, r, gg, b, a uint8, s, t, q float32, u, v int32, fog uint8) (uint8, uint8, uint8, uint8) {
	if attr.Textured {
		var tu, tv int32
		if attr.UseUV {
			tu, tv = u>>4, v>>4
		} else {
			if q != 0 {
				tu = int32(s / q * float32(ctx.Tex0.TexW))
				tv = int32(t / q * float32(ctx.Tex0.TexH))
			}
		}
		tr, tg, tb, ta := g.sampleTexture(ctx, tu, tv)
		r, gg, b, a = textureFunction(&ctx.Tex0, tr, tg, tb, ta, r, gg, b, a)
	}

	if attr.Fog {
		f := uint32(fog)
		fr := uint32(uint8(g.fogcol))
		fg := uint32(uint8(g.fogcol >> 8))
		fb := uint32(uint8(g.fogcol >> 16))
		r = uint8((uint32(r)*f + fr*(255-f)) >> 8)
		gg = uint8((uint32(gg)*f + fg*(255-f)) >> 8)
		b = uint8((uint32(b)*f + fb*(255-f)) >> 8)
	}

	return r, gg, b, a
}

// drawPoint rasterizes a one-pixel primitive.
func (g *GS) drawPoint(ctx *Context, attr PRIM, v Vertex) {
	x, y := pixelCoord(v, ctx.XYOffset)
	r, gg, b, a := g.shade(ctx, attr, v.R, v.G, v.B, v.A, v.S, v.T, v.Q, int32(v.U), int32(v.V), v.Fog)
	g.drawPixel(ctx, attr, x, y, v.Z, r, gg, b, a)
}

// drawLine walks a DDA between the two endpoints, interpolating depth,
// colour and texture coordinates along the major axis.
func (g *GS) drawLine(ctx *Context, attr PRIM, va, vb Vertex) {
	x0, y0 := pixelCoord(va, ctx.XYOffset)
	x1, y1 := pixelCoord(vb, ctx.XYOffset)

	dx, dy := x1-x0, y1-y0
	steps := dx
	if steps < 0 {
		steps = -steps
	}
	if dy > steps {
		steps = dy
	}
	if -dy > steps {
		steps = -dy
	}
	if steps == 0 {
		steps = 1
	}

	for i := int32(0); i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int32(float64(dx)*t)
		y := y0 + int32(float64(dy)*t)

		z := uint32(lerp(float64(va.Z), float64(vb.Z), t))
		r := uint8(lerp(float64(va.R), float64(vb.R), t))
		gg := uint8(lerp(float64(va.G), float64(vb.G), t))
		b := uint8(lerp(float64(va.B), float64(vb.B), t))
		a := uint8(lerp(float64(va.A), float64(vb.A), t))
		s := float32(lerp(float64(va.S), float64(vb.S), t))
		tt := float32(lerp(float64(va.T), float64(vb.T), t))
		q := float32(lerp(float64(va.Q), float64(vb.Q), t))
		u := int32(lerp(float64(va.U), float64(vb.U), t))
		v := int32(lerp(float64(va.V), float64(vb.V), t))
		fog := uint8(lerp(float64(va.Fog), float64(vb.Fog), t))

		if !attr.Gouraud {
			r, gg, b, a = vb.R, vb.G, vb.B, vb.A
		}

		cr, cg, cb, ca := g.shade(ctx, attr, r, gg, b, a, s, tt, q, u, v, fog)
		g.drawPixel(ctx, attr, x, y, z, cr, cg, cb, ca)
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// drawTriangle fills a triangle with integer edge functions: vertices are
// wound counterclockwise (swapping the last two if needed), the bounding
// box is clipped against the scissor, and per-pixel barycentric weights
// are stepped incrementally across each row.
func (g *GS) drawTriangle(ctx *Context, attr PRIM, v1, v2, v3 Vertex) {
	x1, y1 := pixelCoord(v1, ctx.XYOffset)
	x2, y2 := pixelCoord(v2, ctx.XYOffset)
	x3, y3 := pixelCoord(v3, ctx.XYOffset)

	provoking := v3
	if orient2D(int64(x1), int64(y1), int64(x2), int64(y2), int64(x3), int64(y3)) < 0 {
		v2, v3 = v3, v2
		x2, y2, x3, y3 = x3, y3, x2, y2
	}

	area := orient2D(int64(x1), int64(y1), int64(x2), int64(y2), int64(x3), int64(y3))
	if area == 0 {
		return
	}

	minX, maxX := min3(x1, x2, x3), max3(x1, x2, x3)
	minY, maxY := min3(y1, y2, y3), max3(y1, y2, y3)
	if minX < int32(ctx.Scissor.X0) {
		minX = int32(ctx.Scissor.X0)
	}
	if maxX > int32(ctx.Scissor.X1) {
		maxX = int32(ctx.Scissor.X1)
	}
	if minY < int32(ctx.Scissor.Y0) {
		minY = int32(ctx.Scissor.Y0)
	}
	if maxY > int32(ctx.Scissor.Y1) {
		maxY = int32(ctx.Scissor.Y1)
	}
	if minX > maxX || minY > maxY {
		return
	}

	// edge-function increments: A terms step in x, B terms step in y
	a23, b23 := int64(y2-y3), int64(x3-x2)
	a31, b31 := int64(y3-y1), int64(x1-x3)
	a12, b12 := int64(y1-y2), int64(x2-x1)

	w1Row := orient2D(int64(x2), int64(y2), int64(x3), int64(y3), int64(minX), int64(minY))
	w2Row := orient2D(int64(x3), int64(y3), int64(x1), int64(y1), int64(minX), int64(minY))
	w3Row := orient2D(int64(x1), int64(y1), int64(x2), int64(y2), int64(minX), int64(minY))

	fa := float64(area)

	for y := minY; y <= maxY; y++ {
		w1, w2, w3 := w1Row, w2Row, w3Row
		for x := minX; x <= maxX; x++ {
			if w1 >= 0 && w2 >= 0 && w3 >= 0 {
				f1 := float64(w1) / fa
				f2 := float64(w2) / fa
				f3 := float64(w3) / fa

				z := uint32(f1*float64(v1.Z) + f2*float64(v2.Z) + f3*float64(v3.Z))

				var r, gg, b, a uint8
				if attr.Gouraud {
					r = uint8(f1*float64(v1.R) + f2*float64(v2.R) + f3*float64(v3.R))
					gg = uint8(f1*float64(v1.G) + f2*float64(v2.G) + f3*float64(v3.G))
					b = uint8(f1*float64(v1.B) + f2*float64(v2.B) + f3*float64(v3.B))
					a = uint8(f1*float64(v1.A) + f2*float64(v2.A) + f3*float64(v3.A))
				} else {
					// flat shading takes the provoking (last) vertex
					r, gg, b, a = provoking.R, provoking.G, provoking.B, provoking.A
				}

				s := float32(f1*float64(v1.S) + f2*float64(v2.S) + f3*float64(v3.S))
				t := float32(f1*float64(v1.T) + f2*float64(v2.T) + f3*float64(v3.T))
				q := float32(f1*float64(v1.Q) + f2*float64(v2.Q) + f3*float64(v3.Q))
				u := int32(f1*float64(v1.U) + f2*float64(v2.U) + f3*float64(v3.U))
				v := int32(f1*float64(v1.V) + f2*float64(v2.V) + f3*float64(v3.V))
				fog := uint8(f1*float64(v1.Fog) + f2*float64(v2.Fog) + f3*float64(v3.Fog))

				cr, cg, cb, ca := g.shade(ctx, attr, r, gg, b, a, s, t, q, u, v, fog)
				g.drawPixel(ctx, attr, x, y, z, cr, cg, cb, ca)
			}
			w1 += a23
			w2 += a31
			w3 += a12
		}
		w1Row += b23
		w2Row += b31
		w3Row += b12
	}
}

func min3(a, b, c int32) int32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c int32) int32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

// drawSprite fills the axis-aligned rectangle between two vertices. Depth
// and flat colour come from the second vertex; texture coordinates
// interpolate linearly across the rectangle.
func (g *GS) drawSprite(ctx *Context, attr PRIM, va, vb Vertex) {
	x0, y0 := pixelCoord(va, ctx.XYOffset)
	x1, y1 := pixelCoord(vb, ctx.XYOffset)

	if x0 > x1 {
		x0, x1 = x1, x0
		va.U, vb.U = vb.U, va.U
		va.S, vb.S = vb.S, va.S
	}
	if y0 > y1 {
		y0, y1 = y1, y0
		va.V, vb.V = vb.V, va.V
		va.T, vb.T = vb.T, va.T
	}

	w := x1 - x0
	h := y1 - y0
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}

	for y := y0; y < y1; y++ {
		ty := float64(y-y0) / float64(h)
		for x := x0; x < x1; x++ {
			tx := float64(x-x0) / float64(w)

			s := float32(lerp(float64(va.S), float64(vb.S), tx))
			t := float32(lerp(float64(va.T), float64(vb.T), ty))
			u := int32(lerp(float64(va.U), float64(vb.U), tx))
			v := int32(lerp(float64(va.V), float64(vb.V), ty))

			cr, cg, cb, ca := g.shade(ctx, attr, vb.R, vb.G, vb.B, vb.A, s, t, vb.Q, u, v, vb.Fog)
			g.drawPixel(ctx, attr, x, y, vb.Z, cr, cg, cb, ca)
		}
	}
}
