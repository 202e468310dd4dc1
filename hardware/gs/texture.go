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

// Texture colour functions (TEX0.Function).
const (
	TexModulate = iota
	TexDecal
	TexHighlight
	TexHighlight2
)

// wrap applies a wrap mode to one texture axis.
func wrap(mode int, v int32, size uint32, min, max uint32) int32 {
	switch mode {
	case 1: // clamp
		if v < 0 {
			return 0
		}
		if v >= int32(size) {
			return int32(size) - 1
		}
		return v
	case 2: // region clamp
		if v < int32(min) {
			return int32(min)
		}
		if v > int32(max) {
			return int32(max)
		}
		return v
	case 3: // region repeat
		return v&int32(min) | int32(max)
	default: // repeat
		return v & (int32(size) - 1)
	}
}

// sampleTexture point-samples the active texture at integer texel
// coordinates (u,v), resolving indexed formats through the CLUT.
func (g *GS) sampleTexture(ctx *Context, u, v int32) (r, gg, b, a uint8) {
	t := &ctx.Tex0
	u = wrap(ctx.Clamp.WrapS, u, t.TexW, ctx.Clamp.MinU, ctx.Clamp.MaxU)
	v = wrap(ctx.Clamp.WrapT, v, t.TexH, ctx.Clamp.MinV, ctx.Clamp.MaxV)

	raw := g.Mem.ReadPixel(t.Format, t.Base, t.Width, uint32(u), uint32(v))

	switch t.Format {
	case PSMCT32, PSMZ32:
		return uint8(raw), uint8(raw >> 8), uint8(raw >> 16), uint8(raw >> 24)
	case PSMCT24, PSMZ24:
		return uint8(raw), uint8(raw >> 8), uint8(raw >> 16), 0x80
	case PSMCT16, PSMCT16S, PSMZ16, PSMZ16S:
		return expand16(raw)
	default:
		// indexed: raw is a 4- or 8-bit palette index
		return g.lookupCLUT(ctx, raw)
	}
}

// lookupCLUT resolves a palette index against the context's CLUT. With
// CSM2 the palette is a linear strip described by TEXCLUT; otherwise it is
// the 16x16 (or 8x2, for 4-bit indices) arrangement at TEX0's CLUT base.
func (g *GS) lookupCLUT(ctx *Context, index uint32) (r, gg, b, a uint8) {
	t := &ctx.Tex0
	index += t.CLUTOffset

	var raw uint32
	if t.CSM2 {
		raw = g.Mem.ReadPixel(PSMCT16, t.CLUTBase, g.texclut.Width,
			g.texclut.OffsetU+index, g.texclut.OffsetV)
		return expand16(raw)
	}

	var x, y uint32
	switch t.Format {
	case PSMCT4, PSMT4HL, PSMT4HH:
		x, y = index%8, index/8
	default:
		x, y = index%16, index/16
	}
	raw = g.Mem.ReadPixel(t.CLUTFormat, t.CLUTBase, 64, x, y)

	switch t.CLUTFormat {
	case PSMCT16, PSMCT16S:
		return expand16(raw)
	default:
		return uint8(raw), uint8(raw >> 8), uint8(raw >> 16), uint8(raw >> 24)
	}
}

// modulate8 scales a colour channel by a vertex channel with the GS's
// 0x80-is-one convention.
func modulate8(tex, vert uint8) uint8 {
	v := uint32(tex) * uint32(vert) >> 7
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// textureFunction combines the sampled texel with the interpolated vertex
// colour per TEX0's colour function.
func textureFunction(t *TEX0, tr, tg, tb, ta, vr, vg, vb, va uint8) (r, g, b, a uint8) {
	switch t.Function {
	case TexDecal:
		a = va
		if t.UseAlpha {
			a = ta
		}
		return tr, tg, tb, a
	case TexHighlight, TexHighlight2:
		add := func(c uint8, hl uint8) uint8 {
			v := uint32(modulate8(c, hl)) + uint32(va)
			if v > 255 {
				v = 255
			}
			return uint8(v)
		}
		return add(tr, vr), add(tg, vg), add(tb, vb), ta
	default: // modulate
		a = modulate8(ta, va)
		if !t.UseAlpha {
			a = va
		}
		return modulate8(tr, vr), modulate8(tg, vg), modulate8(tb, vb), a
	}
}
