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

// dispfb is a decoded DISPFB register: where scanout reads from.
type dispfb struct {
	base   uint32
	width  uint32
	format int
	dbx    uint32
	dby    uint32
}

func decodeDISPFB(v uint64) dispfb {
	return dispfb{
		base:   uint32(v&0x1FF) * pageBytes,
		width:  uint32(v>>9&0x3F) * 64,
		format: int(v >> 15 & 0x1F),
		dbx:    uint32(v >> 32 & 0x7FF),
		dby:    uint32(v >> 43 & 0x7FF),
	}
}

// display is a decoded DISPLAY register: the output window geometry.
type display struct {
	width  uint32
	height uint32
}

func decodeDISPLAY(v uint64) display {
	dw := uint32(v>>32&0xFFF) + 1
	dh := uint32(v>>44&0x7FF) + 1
	magh := uint32(v>>23&0xF) + 1
	magv := uint32(v>>27&0x3) + 1
	return display{width: dw / magh, height: dh / magv}
}

// RenderCRT reads the active display circuit's framebuffer out of the
// swizzled layout into a flat RGBA scanline buffer. It returns nil when
// neither read circuit is enabled.
func (g *GS) RenderCRT() (pix []byte, width, height int) {
	var circuit int
	switch {
	case g.pmode&1 != 0:
		circuit = 0
	case g.pmode&2 != 0:
		circuit = 1
	default:
		return nil, 0, 0
	}

	fb := decodeDISPFB(g.dispfb[circuit])
	disp := decodeDISPLAY(g.display[circuit])
	if disp.width == 0 || disp.height == 0 || disp.width > 1024 || disp.height > 1024 {
		return nil, 0, 0
	}

	pix = make([]byte, disp.width*disp.height*4)
	n := 0
	for y := uint32(0); y < disp.height; y++ {
		for x := uint32(0); x < disp.width; x++ {
			v := g.Mem.ReadPixel(fb.format, fb.base, fb.width, fb.dbx+x, fb.dby+y)

			var r, gg, b uint8
			switch fb.format {
			case PSMCT16, PSMCT16S:
				r, gg, b, _ = expand16(v)
			default:
				r, gg, b = uint8(v), uint8(v>>8), uint8(v>>16)
			}

			pix[n] = r
			pix[n+1] = gg
			pix[n+2] = b
			pix[n+3] = 0xFF
			n += 4
		}
	}
	return pix, int(disp.width), int(disp.height)
}
