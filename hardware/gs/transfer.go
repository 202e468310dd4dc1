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

import "github.com/retroswitch/emotion2k/logger"

// Transfer directions as written to TRXDIR.
const (
	trxHostToLocal  = 0
	trxLocalToHost  = 1
	trxLocalToLocal = 2
	trxIdle         = 3
)

// transferState is the in-flight transmission between host memory and
// local memory, driven by HWREG writes (host-to-local) or quadword drains
// (local-to-host).
type transferState struct {
	bitbltbuf uint64
	trxpos    uint64
	trxreg    uint64
	dir       int

	srcBase, srcWidth uint32
	srcFormat         int
	dstBase, dstWidth uint32
	dstFormat         int

	srcX, srcY uint32
	dstX, dstY uint32

	width, height uint32

	// write/read cursors relative to the start coordinates
	wx, wy uint32
	rx, ry uint32

	written uint32
	read    uint32

	// staging buffer for host-to-local pixel data; 24-bit pixels cross
	// doubleword boundaries, so leftover bytes carry between HWREG writes
	buf []byte
}

func (t *transferState) decode() {
	t.srcBase = uint32(t.bitbltbuf&0x3FFF) * 256
	t.srcWidth = uint32(t.bitbltbuf>>16&0x3F) * 64
	t.srcFormat = int(t.bitbltbuf >> 24 & 0x3F)
	t.dstBase = uint32(t.bitbltbuf>>32&0x3FFF) * 256
	t.dstWidth = uint32(t.bitbltbuf>>48&0x3F) * 64
	t.dstFormat = int(t.bitbltbuf >> 56 & 0x3F)

	t.srcX = uint32(t.trxpos & 0x7FF)
	t.srcY = uint32(t.trxpos >> 16 & 0x7FF)
	t.dstX = uint32(t.trxpos >> 32 & 0x7FF)
	t.dstY = uint32(t.trxpos >> 48 & 0x7FF)

	t.width = uint32(t.trxreg & 0xFFF)
	t.height = uint32(t.trxreg >> 32 & 0xFFF)

	t.wx, t.wy = 0, 0
	t.rx, t.ry = 0, 0
	t.written, t.read = 0, 0
	t.buf = t.buf[:0]
}

// beginTransfer services a TRXDIR write. Local-to-local runs synchronously;
// the other directions arm cursors and wait for data to flow.
func (g *GS) beginTransfer(dir int) error {
	g.trx.decode()
	g.trx.dir = dir

	switch dir {
	case trxHostToLocal, trxLocalToHost:
		if g.trx.width == 0 || g.trx.height == 0 {
			g.trx.dir = trxIdle
		}
	case trxLocalToLocal:
		g.localToLocal()
		g.trx.dir = trxIdle
	default:
		g.trx.dir = trxIdle
	}
	return nil
}

// TransferActive reports whether a host-to-local or local-to-host
// transmission is still in progress.
func (g *GS) TransferActive() bool { return g.trx.dir != trxIdle }

// hostWrite accepts 64 bits of HWREG data and unpacks pixels into local
// memory at the destination format's density.
func (g *GS) hostWrite(v uint64) {
	t := &g.trx
	if t.dir != trxHostToLocal {
		logger.Log("gs", "HWREG write with no host-to-local transfer active")
		return
	}

	var bytes [8]byte
	for i := range bytes {
		bytes[i] = byte(v >> (8 * i))
	}
	t.buf = append(t.buf, bytes[:]...)

	g.drainHostBuffer()
}

// drainHostBuffer consumes staged bytes as whole pixels. The byte-stream
// treatment makes the 24-bit format's doubleword straddling fall out
// naturally: a trailing partial pixel stays in the buffer for the next
// HWREG write.
func (g *GS) drainHostBuffer() {
	t := &g.trx
	total := t.width * t.height

	consume := func(n int) []byte {
		b := t.buf[:n]
		t.buf = t.buf[n:]
		return b
	}

	for t.written < total {
		switch bitsPerPixel(t.dstFormat) {
		case 32:
			if len(t.buf) < 4 {
				return
			}
			b := consume(4)
			g.writeTransferPixel(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
		case 24:
			if len(t.buf) < 3 {
				return
			}
			b := consume(3)
			g.writeTransferPixel(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16)
		case 16:
			if len(t.buf) < 2 {
				return
			}
			b := consume(2)
			g.writeTransferPixel(uint32(b[0]) | uint32(b[1])<<8)
		case 8:
			if len(t.buf) < 1 {
				return
			}
			g.writeTransferPixel(uint32(consume(1)[0]))
		case 4:
			if len(t.buf) < 1 {
				return
			}
			b := consume(1)[0]
			g.writeTransferPixel(uint32(b & 0x0F))
			if t.written < total {
				g.writeTransferPixel(uint32(b >> 4))
			}
		}
	}

	if t.written >= total {
		logger.Logf("gs", "host-to-local transfer complete: %dx%d to %#x", t.width, t.height, t.dstBase)
		t.dir = trxIdle
		t.buf = t.buf[:0]
	}
}

// writeTransferPixel stores one unpacked pixel at the write cursor and
// advances it in raster order.
func (g *GS) writeTransferPixel(v uint32) {
	t := &g.trx
	g.Mem.WritePixel(t.dstFormat, t.dstBase, t.dstWidth, t.dstX+t.wx, t.dstY+t.wy, v)
	t.written++
	t.wx++
	if t.wx >= t.width {
		t.wx = 0
		t.wy++
	}
}

// ReadHostQuadword drains 128 bits of a local-to-host transfer. Pixels are
// packed into a byte stream (so 24-bit pixels straddle quadword boundaries
// the same way the host-to-local direction accepts them); ok is false once
// the transmission area is exhausted.
func (g *GS) ReadHostQuadword() (lo, hi uint64, ok bool) {
	t := &g.trx
	if t.dir != trxLocalToHost {
		return 0, 0, false
	}

	total := t.width * t.height
	bpp := bitsPerPixel(t.srcFormat)

	nextPixel := func() (uint32, bool) {
		if t.read >= total {
			return 0, false
		}
		v := g.Mem.ReadPixel(t.srcFormat, t.srcBase, t.srcWidth, t.srcX+t.rx, t.srcY+t.ry)
		t.read++
		t.rx++
		if t.rx >= t.width {
			t.rx = 0
			t.ry++
		}
		return v, true
	}

	for len(t.buf) < 16 {
		v, more := nextPixel()
		if !more {
			break
		}
		switch bpp {
		case 32:
			t.buf = append(t.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
		case 24:
			t.buf = append(t.buf, byte(v), byte(v>>8), byte(v>>16))
		case 16:
			t.buf = append(t.buf, byte(v), byte(v>>8))
		case 8:
			t.buf = append(t.buf, byte(v))
		case 4:
			if v2, more2 := nextPixel(); more2 {
				v |= v2 << 4
			}
			t.buf = append(t.buf, byte(v))
		}
	}

	if len(t.buf) == 0 {
		t.dir = trxIdle
		return 0, 0, false
	}

	var out [16]byte
	copy(out[:], t.buf)
	if len(t.buf) > 16 {
		t.buf = t.buf[16:]
	} else {
		t.buf = t.buf[:0]
	}

	if t.read >= total && len(t.buf) == 0 {
		t.dir = trxIdle
	}

	for i := 0; i < 8; i++ {
		lo |= uint64(out[i]) << (8 * i)
		hi |= uint64(out[i+8]) << (8 * i)
	}
	return lo, hi, true
}

// localToLocal copies the transmission area pixel by pixel through the
// format-aware helpers, so differing source and destination formats
// convert rather than alias.
func (g *GS) localToLocal() {
	t := &g.trx
	for y := uint32(0); y < t.height; y++ {
		for x := uint32(0); x < t.width; x++ {
			v := g.Mem.ReadPixel(t.srcFormat, t.srcBase, t.srcWidth, t.srcX+x, t.srcY+y)
			g.Mem.WritePixel(t.dstFormat, t.dstBase, t.dstWidth, t.dstX+x, t.dstY+y, v)
		}
	}
	logger.Logf("gs", "local-to-local transfer complete: %dx%d %#x -> %#x",
		t.width, t.height, t.srcBase, t.dstBase)
}
