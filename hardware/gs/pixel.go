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

// drawPixel runs one fragment through the scissor, alpha test, depth test
// and blend stages, then writes the frame and depth buffers as the
// surviving write-enables allow. x and y are in pixel resolution, after
// the XYOFFSET subtraction and the 4-bit fixed-point shift.
func (g *GS) drawPixel(ctx *Context, attr PRIM, x, y int32, z uint32, r, gg, b, a uint8) {
	if x < 0 || y < 0 {
		return
	}
	if uint32(x) < ctx.Scissor.X0 || uint32(x) > ctx.Scissor.X1 ||
		uint32(y) < ctx.Scissor.Y0 || uint32(y) > ctx.Scissor.Y1 {
		return
	}

	writeFrame, writeZ, writeAlpha := true, true, true

	if ctx.Test.AlphaTest && !alphaTestPasses(ctx.Test, a) {
		switch ctx.Test.AlphaFail {
		case AFailKeep:
			return
		case AFailFBOnly:
			writeZ = false
		case AFailZBOnly:
			writeFrame = false
		case AFailRGBOnly:
			writeZ = false
			writeAlpha = false
		}
	}

	if ctx.Test.DepthTest {
		stored := g.Mem.ReadPixel(ctx.ZBuf.Format, ctx.ZBuf.Base, ctx.Frame.Width, uint32(x), uint32(y))
		if !depthTestPasses(ctx.Test.DepthMethod, depthBits(ctx.ZBuf.Format, z), depthBits(ctx.ZBuf.Format, stored)) {
			return
		}
	}

	if writeZ && !ctx.ZBuf.NoUpdate {
		g.Mem.WritePixel(ctx.ZBuf.Format, ctx.ZBuf.Base, ctx.Frame.Width, uint32(x), uint32(y), z)
	}

	if !writeFrame {
		return
	}

	if attr.AlphaBlend {
		r, gg, b = g.blend(ctx, uint32(x), uint32(y), r, gg, b, a)
	}

	// the 24-bit frame formats carry no alpha plane
	if ctx.Frame.Format == PSMCT24 || ctx.Frame.Format == PSMZ24 {
		writeAlpha = false
	}

	g.writeFrame(ctx, uint32(x), uint32(y), r, gg, b, a, writeAlpha)
}

// alphaTestPasses applies the configured comparison of pixel alpha against
// the reference value.
func alphaTestPasses(t TEST, a uint8) bool {
	ref := uint8(t.AlphaRef)
	switch t.AlphaMethod {
	case ATestNever:
		return false
	case ATestAlways:
		return true
	case ATestLess:
		return a < ref
	case ATestLEqual:
		return a <= ref
	case ATestEqual:
		return a == ref
	case ATestGEqual:
		return a >= ref
	case ATestGreater:
		return a > ref
	case ATestNotEqual:
		return a != ref
	}
	return true
}

// depthBits truncates a depth value to the comparison width of the z
// buffer's format.
func depthBits(format int, z uint32) uint32 {
	switch format {
	case PSMZ24:
		return z & 0xFFFFFF
	case PSMZ16, PSMZ16S:
		return z & 0xFFFF
	default:
		return z
	}
}

func depthTestPasses(method int, incoming, stored uint32) bool {
	switch method {
	case ZTestNever:
		return false
	case ZTestAlways:
		return true
	case ZTestGEqual:
		return incoming >= stored
	case ZTestGreater:
		return incoming > stored
	}
	return true
}

// blend computes ((A - B) * C >> 7) + D per the context's ALPHA selectors:
// A/B/D choose among source colour, framebuffer colour and zero; C chooses
// among source alpha, framebuffer alpha and the fixed alpha.
func (g *GS) blend(ctx *Context, x, y uint32, sr, sg, sb, sa uint8) (uint8, uint8, uint8) {
	fbr, fbg, fbb, fba := g.readFrame(ctx, x, y)

	pick := func(sel int) (int32, int32, int32) {
		switch sel {
		case 0:
			return int32(sr), int32(sg), int32(sb)
		case 1:
			return int32(fbr), int32(fbg), int32(fbb)
		default:
			return 0, 0, 0
		}
	}

	var c int32
	switch ctx.Alpha.C {
	case 0:
		c = int32(sa)
	case 1:
		c = int32(fba)
	default:
		c = int32(ctx.Alpha.Fix)
	}

	ar, ag, ab := pick(ctx.Alpha.A)
	br, bg, bb := pick(ctx.Alpha.B)
	dr, dg, db := pick(ctx.Alpha.D)

	clamp := func(v int32) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}

	return clamp((ar-br)*c>>7 + dr),
		clamp((ag-bg)*c>>7 + dg),
		clamp((ab-bb)*c>>7 + db)
}

// readFrame fetches the framebuffer pixel at (x,y) expanded to 8-bit
// channels.
func (g *GS) readFrame(ctx *Context, x, y uint32) (r, gg, b, a uint8) {
	switch ctx.Frame.Format {
	case PSMCT16, PSMCT16S:
		v := g.Mem.ReadPixel(ctx.Frame.Format, ctx.Frame.Base, ctx.Frame.Width, x, y)
		return expand16(v)
	default:
		v := g.Mem.ReadPixel(ctx.Frame.Format, ctx.Frame.Base, ctx.Frame.Width, x, y)
		return uint8(v), uint8(v >> 8), uint8(v >> 16), uint8(v >> 24)
	}
}

// writeFrame stores the pixel per the frame format, honouring the FBMSK
// write mask and the alpha write-enable.
func (g *GS) writeFrame(ctx *Context, x, y uint32, r, gg, b, a uint8, writeAlpha bool) {
	var v uint32
	switch ctx.Frame.Format {
	case PSMCT16, PSMCT16S:
		v = pack16(r, gg, b, a)
	default:
		v = uint32(r) | uint32(gg)<<8 | uint32(b)<<16 | uint32(a)<<24
	}

	if !writeAlpha || ctx.Frame.Format == PSMCT24 || ctx.Frame.Format == PSMZ24 {
		old := g.Mem.ReadPixel(ctx.Frame.Format, ctx.Frame.Base, ctx.Frame.Width, x, y)
		switch ctx.Frame.Format {
		case PSMCT16, PSMCT16S:
			v = v&0x7FFF | old&0x8000
		default:
			v = v&0x00FFFFFF | old&0xFF000000
		}
	}

	if ctx.Frame.Mask != 0 {
		old := g.Mem.ReadPixel(ctx.Frame.Format, ctx.Frame.Base, ctx.Frame.Width, x, y)
		v = v&^ctx.Frame.Mask | old&ctx.Frame.Mask
	}

	g.Mem.WritePixel(ctx.Frame.Format, ctx.Frame.Base, ctx.Frame.Width, x, y, v)
}

// expand16 widens a 1555 pixel to 8-bit channels.
func expand16(v uint32) (r, g, b, a uint8) {
	r = uint8(v&0x1F) << 3
	g = uint8(v>>5&0x1F) << 3
	b = uint8(v>>10&0x1F) << 3
	if v&0x8000 != 0 {
		a = 0x80
	}
	return r, g, b, a
}

// pack16 narrows 8-bit channels to a 1555 pixel.
func pack16(r, g, b, a uint8) uint32 {
	v := uint32(r>>3) | uint32(g>>3)<<5 | uint32(b>>3)<<10
	if a >= 0x80 {
		v |= 0x8000
	}
	return v
}
