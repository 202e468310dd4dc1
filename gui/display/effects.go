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

package display

// Apply adjusts a flat RGBA frame in place per the current preferences:
// brightness scaling and the optional scanline darkening. Scaling to the
// window is left to the renderer's texture filter.
func (p *Preferences) Apply(pix []byte, w, h int) {
	brightness := p.Brightness.Get()
	if brightness != 1.0 {
		lut := brightnessLUT(brightness)
		for i := 0; i < len(pix); i += 4 {
			pix[i] = lut[pix[i]]
			pix[i+1] = lut[pix[i+1]]
			pix[i+2] = lut[pix[i+2]]
		}
	}

	if p.Scanlines.Get() {
		for y := 1; y < h; y += 2 {
			row := pix[y*w*4 : (y+1)*w*4]
			for i := 0; i < len(row); i += 4 {
				row[i] -= row[i] >> 2
				row[i+1] -= row[i+1] >> 2
				row[i+2] -= row[i+2] >> 2
			}
		}
	}
}

func brightnessLUT(brightness float64) [256]byte {
	var lut [256]byte
	for i := range lut {
		v := float64(i) * brightness
		if v > 255 {
			v = 255
		}
		lut[i] = byte(v)
	}
	return lut
}
