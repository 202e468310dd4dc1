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

import "encoding/binary"

// Pixel storage formats (the PSM field values carried by FRAME/ZBUF/TEX0/
// BITBLTBUF).
const (
	PSMCT32  = 0x00
	PSMCT24  = 0x01
	PSMCT16  = 0x02
	PSMCT16S = 0x0A
	PSMCT8   = 0x13
	PSMCT4   = 0x14
	PSMCT8H  = 0x1B
	PSMT4HL  = 0x24
	PSMT4HH  = 0x2C
	PSMZ32   = 0x30
	PSMZ24   = 0x31
	PSMZ16   = 0x32
	PSMZ16S  = 0x3A
)

// Local memory granularity: an 8 KiB page divided into 32 256-byte blocks,
// each block divided into four 64-byte columns.
const (
	localMemSize = 4 << 20
	pageBytes    = 8192
	blockBytes   = 256
)

// Block arrangement within a page, indexed [blockY][blockX], per format
// family. The tables encode the non-linear interleave the GS uses so that
// neighbouring blocks land in different DRAM banks.
var blockTable32 = [4][8]uint32{
	{0, 1, 4, 5, 16, 17, 20, 21},
	{2, 3, 6, 7, 18, 19, 22, 23},
	{8, 9, 12, 13, 24, 25, 28, 29},
	{10, 11, 14, 15, 26, 27, 30, 31},
}

var blockTable16 = [8][4]uint32{
	{0, 2, 8, 10},
	{1, 3, 9, 11},
	{4, 6, 12, 14},
	{5, 7, 13, 15},
	{16, 18, 24, 26},
	{17, 19, 25, 27},
	{20, 22, 28, 30},
	{21, 23, 29, 31},
}

var blockTable8 = [4][8]uint32{
	{0, 1, 4, 5, 16, 17, 20, 21},
	{2, 3, 6, 7, 18, 19, 22, 23},
	{8, 9, 12, 13, 24, 25, 28, 29},
	{10, 11, 14, 15, 26, 27, 30, 31},
}

var blockTable4 = [8][4]uint32{
	{0, 2, 8, 10},
	{1, 3, 9, 11},
	{4, 6, 12, 14},
	{5, 7, 13, 15},
	{16, 18, 24, 26},
	{17, 19, 25, 27},
	{20, 22, 28, 30},
	{21, 23, 29, 31},
}

// Pixel-within-block word index for the 32-bit formats, indexed [y%8][x%8].
var columnTable32 = [8][8]uint32{
	{0, 1, 4, 5, 8, 9, 12, 13},
	{2, 3, 6, 7, 10, 11, 14, 15},
	{16, 17, 20, 21, 24, 25, 28, 29},
	{18, 19, 22, 23, 26, 27, 30, 31},
	{32, 33, 36, 37, 40, 41, 44, 45},
	{34, 35, 38, 39, 42, 43, 46, 47},
	{48, 49, 52, 53, 56, 57, 60, 61},
	{50, 51, 54, 55, 58, 59, 62, 63},
}

// Halfword index for the 16-bit formats, indexed [y%8][x%16].
var columnTable16 = [8][16]uint32{
	{0, 2, 8, 10, 16, 18, 24, 26, 1, 3, 9, 11, 17, 19, 25, 27},
	{4, 6, 12, 14, 20, 22, 28, 30, 5, 7, 13, 15, 21, 23, 29, 31},
	{32, 34, 40, 42, 48, 50, 56, 58, 33, 35, 41, 43, 49, 51, 57, 59},
	{36, 38, 44, 46, 52, 54, 60, 62, 37, 39, 45, 47, 53, 55, 61, 63},
	{64, 66, 72, 74, 80, 82, 88, 90, 65, 67, 73, 75, 81, 83, 89, 91},
	{68, 70, 76, 78, 84, 86, 92, 94, 69, 71, 77, 79, 85, 87, 93, 95},
	{96, 98, 104, 106, 112, 114, 120, 122, 97, 99, 105, 107, 113, 115, 121, 123},
	{100, 102, 108, 110, 116, 118, 124, 126, 101, 103, 109, 111, 117, 119, 125, 127},
}

// LocalMem is the GS's 4 MiB of block-swizzled local memory. It is owned
// exclusively by the GS consumer goroutine once the engine is running.
type LocalMem struct {
	data [localMemSize]byte
}

// wordAddr32 computes the byte address of the 32-bit word holding pixel
// (x,y) of a buffer at byte address base with the given pixel width. Pages
// are 64x32 pixels for the 32-bit family.
func wordAddr32(base, width, x, y uint32) uint32 {
	pagesPerRow := width / 64
	if pagesPerRow == 0 {
		pagesPerRow = 1
	}
	page := base/pageBytes + (y/32)*pagesPerRow + x/64
	block := blockTable32[(y%32)/8][(x%64)/8]
	word := columnTable32[y%8][x%8]
	return (page*pageBytes + block*blockBytes + word*4) % localMemSize
}

// halfAddr16 is the 16-bit-family equivalent: 64x64-pixel pages of
// 16x8-pixel blocks.
func halfAddr16(base, width, x, y uint32) uint32 {
	pagesPerRow := width / 64
	if pagesPerRow == 0 {
		pagesPerRow = 1
	}
	page := base/pageBytes + (y/64)*pagesPerRow + x/64
	block := blockTable16[(y%64)/8][(x%64)/16]
	half := columnTable16[y%8][x%16]
	return (page*pageBytes + block*blockBytes + half*2) % localMemSize
}

// byteAddr8: 128x64-pixel pages of 16x16-pixel blocks. Within a block the
// layout is row-linear; the block and page interleave carry the swizzle.
func byteAddr8(base, width, x, y uint32) uint32 {
	pagesPerRow := width / 128
	if pagesPerRow == 0 {
		pagesPerRow = 1
	}
	page := base/pageBytes + (y/64)*pagesPerRow + x/128
	block := blockTable8[(y%64)/16][(x%128)/16]
	return (page*pageBytes + block*blockBytes + (y%16)*16 + x%16) % localMemSize
}

// nibbleAddr4: 128x128-pixel pages of 32x16-pixel blocks. Returns the byte
// address and whether the pixel is the high nibble.
func nibbleAddr4(base, width, x, y uint32) (uint32, bool) {
	pagesPerRow := width / 128
	if pagesPerRow == 0 {
		pagesPerRow = 1
	}
	page := base/pageBytes + (y/128)*pagesPerRow + x/128
	block := blockTable4[(y%128)/16][(x%128)/32]
	nibble := (y%16)*32 + x%32
	return (page*pageBytes + block*blockBytes + nibble/2) % localMemSize, nibble&1 != 0
}

func (l *LocalMem) word(addr uint32) uint32 {
	return binary.LittleEndian.Uint32(l.data[addr&^3:])
}

func (l *LocalMem) setWord(addr uint32, v uint32) {
	binary.LittleEndian.PutUint32(l.data[addr&^3:], v)
}

// WritePixel stores v as a pixel of the given format at (x,y) in a buffer
// at byte address base with the given pixel width. The "H" formats write
// only the high bits of the underlying 32-bit word, leaving the low 24
// bits for a PSMCT24 occupant.
func (l *LocalMem) WritePixel(format int, base, width, x, y uint32, v uint32) {
	switch format {
	case PSMCT32, PSMZ32:
		l.setWord(wordAddr32(base, width, x, y), v)
	case PSMCT24, PSMZ24:
		addr := wordAddr32(base, width, x, y)
		l.setWord(addr, l.word(addr)&0xFF000000|v&0x00FFFFFF)
	case PSMCT16, PSMCT16S, PSMZ16, PSMZ16S:
		addr := halfAddr16(base, width, x, y)
		binary.LittleEndian.PutUint16(l.data[addr:], uint16(v))
	case PSMCT8:
		l.data[byteAddr8(base, width, x, y)] = uint8(v)
	case PSMCT4:
		addr, hi := nibbleAddr4(base, width, x, y)
		if hi {
			l.data[addr] = l.data[addr]&0x0F | uint8(v)<<4
		} else {
			l.data[addr] = l.data[addr]&0xF0 | uint8(v)&0x0F
		}
	case PSMCT8H:
		addr := wordAddr32(base, width, x, y)
		l.setWord(addr, l.word(addr)&0x00FFFFFF|v<<24)
	case PSMT4HL:
		addr := wordAddr32(base, width, x, y)
		l.setWord(addr, l.word(addr)&^uint32(0x0F000000)|(v&0xF)<<24)
	case PSMT4HH:
		addr := wordAddr32(base, width, x, y)
		l.setWord(addr, l.word(addr)&^uint32(0xF0000000)|(v&0xF)<<28)
	}
}

// ReadPixel is WritePixel's inverse.
func (l *LocalMem) ReadPixel(format int, base, width, x, y uint32) uint32 {
	switch format {
	case PSMCT32, PSMZ32:
		return l.word(wordAddr32(base, width, x, y))
	case PSMCT24, PSMZ24:
		return l.word(wordAddr32(base, width, x, y)) & 0x00FFFFFF
	case PSMCT16, PSMCT16S, PSMZ16, PSMZ16S:
		addr := halfAddr16(base, width, x, y)
		return uint32(binary.LittleEndian.Uint16(l.data[addr:]))
	case PSMCT8:
		return uint32(l.data[byteAddr8(base, width, x, y)])
	case PSMCT4:
		addr, hi := nibbleAddr4(base, width, x, y)
		if hi {
			return uint32(l.data[addr] >> 4)
		}
		return uint32(l.data[addr] & 0x0F)
	case PSMCT8H:
		return l.word(wordAddr32(base, width, x, y)) >> 24
	case PSMT4HL:
		return l.word(wordAddr32(base, width, x, y)) >> 24 & 0xF
	case PSMT4HH:
		return l.word(wordAddr32(base, width, x, y)) >> 28
	default:
		return 0
	}
}

// bitsPerPixel returns a format's storage density, used to size host
// transfers.
func bitsPerPixel(format int) int {
	switch format {
	case PSMCT24, PSMZ24:
		return 24
	case PSMCT16, PSMCT16S, PSMZ16, PSMZ16S:
		return 16
	case PSMCT8, PSMCT8H:
		return 8
	case PSMCT4, PSMT4HL, PSMT4HH:
		return 4
	default:
		return 32
	}
}
