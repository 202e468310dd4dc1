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

package gs_test

import (
	"testing"

	"github.com/retroswitch/emotion2k/hardware/gs"
	"github.com/retroswitch/emotion2k/test"
)

func TestSwizzleRoundTripPSMCT32(t *testing.T) {
	mem := &gs.LocalMem{}

	mem.WritePixel(gs.PSMCT32, 0, 640, 37, 91, 0xDEADBEEF)
	test.ExpectEquality(t, mem.ReadPixel(gs.PSMCT32, 0, 640, 37, 91), uint32(0xDEADBEEF))
}

func TestSwizzleRoundTripAllFormats(t *testing.T) {
	mem := &gs.LocalMem{}

	formats := []struct {
		format int
		mask   uint32
	}{
		{gs.PSMCT32, 0xFFFFFFFF},
		{gs.PSMCT24, 0x00FFFFFF},
		{gs.PSMCT16, 0x0000FFFF},
		{gs.PSMCT16S, 0x0000FFFF},
		{gs.PSMCT8, 0x000000FF},
		{gs.PSMCT4, 0x0000000F},
		{gs.PSMCT8H, 0x000000FF},
		{gs.PSMT4HL, 0x0000000F},
		{gs.PSMT4HH, 0x0000000F},
		{gs.PSMZ32, 0xFFFFFFFF},
		{gs.PSMZ16, 0x0000FFFF},
	}

	coords := [][2]uint32{{0, 0}, {7, 3}, {63, 31}, {64, 32}, {129, 77}, {300, 200}}

	for _, f := range formats {
		for _, c := range coords {
			want := uint32(0xA5C3F00F) & f.mask
			mem.WritePixel(f.format, 0x100000, 640, c[0], c[1], want)
			got := mem.ReadPixel(f.format, 0x100000, 640, c[0], c[1])
			if got != want {
				t.Errorf("format %#x at (%d,%d): wrote %#x, read %#x", f.format, c[0], c[1], want, got)
			}
		}
	}
}

func TestSwizzleDistinctPixelsDistinctAddresses(t *testing.T) {
	mem := &gs.LocalMem{}

	// neighbouring pixels must not alias
	mem.WritePixel(gs.PSMCT32, 0, 640, 10, 10, 0x11111111)
	mem.WritePixel(gs.PSMCT32, 0, 640, 11, 10, 0x22222222)
	mem.WritePixel(gs.PSMCT32, 0, 640, 10, 11, 0x33333333)

	test.ExpectEquality(t, mem.ReadPixel(gs.PSMCT32, 0, 640, 10, 10), uint32(0x11111111))
	test.ExpectEquality(t, mem.ReadPixel(gs.PSMCT32, 0, 640, 11, 10), uint32(0x22222222))
	test.ExpectEquality(t, mem.ReadPixel(gs.PSMCT32, 0, 640, 10, 11), uint32(0x33333333))
}

func TestHighFormatsShareWordWith24(t *testing.T) {
	mem := &gs.LocalMem{}

	// PSMCT24 and PSMCT8H occupy disjoint bits of the same 32-bit word
	mem.WritePixel(gs.PSMCT24, 0, 640, 5, 5, 0x00ABCDEF)
	mem.WritePixel(gs.PSMCT8H, 0, 640, 5, 5, 0x77)

	test.ExpectEquality(t, mem.ReadPixel(gs.PSMCT24, 0, 640, 5, 5), uint32(0x00ABCDEF))
	test.ExpectEquality(t, mem.ReadPixel(gs.PSMCT8H, 0, 640, 5, 5), uint32(0x77))
	test.ExpectEquality(t, mem.ReadPixel(gs.PSMCT32, 0, 640, 5, 5), uint32(0x77ABCDEF))
}

// setupDrawing configures a minimal 64x64 PSMCT32 frame with an open
// scissor and no tests.
func setupDrawing(g *gs.GS) {
	// FRAME: base 0, FBW=1 (64px), PSMCT32
	_ = g.WriteRegister(gs.RegFRAME1, 1<<16)
	// ZBUF: base page 4, no-update off
	_ = g.WriteRegister(gs.RegZBUF1, 4)
	// SCISSOR: 0..63 both axes
	_ = g.WriteRegister(gs.RegSCISSOR1, 63<<16|uint64(63)<<48)
	// TEST: everything off
	_ = g.WriteRegister(gs.RegTEST1, 0)
	// XYOFFSET: zero
	_ = g.WriteRegister(gs.RegXYOFFSET1, 0)
	// PRMODECONT: attributes from PRIM
	_ = g.WriteRegister(gs.RegPRMODECONT, 1)
}

func TestVertexQueueTriangleKick(t *testing.T) {
	g := gs.New()
	setupDrawing(g)

	// flat white, trilist
	_ = g.WriteRegister(gs.RegPRIM, 3)
	_ = g.WriteRegister(gs.RegRGBAQ, 0x3F800000_00FFFFFF|0x80<<24)

	kick := func(x, y uint64) {
		_ = g.WriteRegister(gs.RegXYZ2, x<<4|(y<<4)<<16|1<<32)
	}

	kick(0, 0)
	test.ExpectEquality(t, g.QueueLen(), 1)
	kick(16, 0)
	test.ExpectEquality(t, g.QueueLen(), 2)
	kick(0, 16)
	// third kick rasterizes and clears the queue
	test.ExpectEquality(t, g.QueueLen(), 0)

	// a pixel near the top-left corner is inside the triangle
	test.ExpectEquality(t, g.Mem.ReadPixel(gs.PSMCT32, 0, 64, 1, 1)&0xFFFFFF, uint32(0xFFFFFF))
	// outside the hypotenuse stays clear
	test.ExpectEquality(t, g.Mem.ReadPixel(gs.PSMCT32, 0, 64, 15, 15), uint32(0))
}

func TestXYZ3InsertsWithoutDrawing(t *testing.T) {
	g := gs.New()
	setupDrawing(g)

	_ = g.WriteRegister(gs.RegPRIM, 3)
	_ = g.WriteRegister(gs.RegRGBAQ, 0x80<<24|0xFF)

	_ = g.WriteRegister(gs.RegXYZ3, 0)
	_ = g.WriteRegister(gs.RegXYZ3, 16<<4)
	_ = g.WriteRegister(gs.RegXYZ3, uint64(16<<4)<<16)

	// queue cycled but nothing was rasterized
	test.ExpectEquality(t, g.QueueLen(), 0)
	test.ExpectEquality(t, g.Mem.ReadPixel(gs.PSMCT32, 0, 64, 1, 1), uint32(0))
}

func TestSpriteFillsRectangle(t *testing.T) {
	g := gs.New()
	setupDrawing(g)

	_ = g.WriteRegister(gs.RegPRIM, 6)
	_ = g.WriteRegister(gs.RegRGBAQ, 0x80<<24|0x0000FF) // red
	_ = g.WriteRegister(gs.RegXYZ2, 8<<4|uint64(8<<4)<<16)
	_ = g.WriteRegister(gs.RegXYZ2, 24<<4|uint64(24<<4)<<16)

	test.ExpectEquality(t, g.Mem.ReadPixel(gs.PSMCT32, 0, 64, 8, 8)&0xFF, uint32(0xFF))
	test.ExpectEquality(t, g.Mem.ReadPixel(gs.PSMCT32, 0, 64, 23, 23)&0xFF, uint32(0xFF))
	// exclusive upper bound
	test.ExpectEquality(t, g.Mem.ReadPixel(gs.PSMCT32, 0, 64, 24, 24), uint32(0))
}

func TestHostToLocalTransfer(t *testing.T) {
	g := gs.New()

	// BITBLTBUF: destination base 0, width 64, PSMCT32
	_ = g.WriteRegister(gs.RegBITBLTBUF, uint64(1)<<48)
	// TRXPOS: origin 0,0
	_ = g.WriteRegister(gs.RegTRXPOS, 0)
	// TRXREG: 2x2 pixels
	_ = g.WriteRegister(gs.RegTRXREG, 2|uint64(2)<<32)
	_ = g.WriteRegister(gs.RegTRXDIR, 0)

	test.ExpectEquality(t, g.TransferActive(), true)

	// two HWREG doublewords carry four PSMCT32 pixels
	_ = g.WriteRegister(gs.RegHWREG, 0x22222222_11111111)
	_ = g.WriteRegister(gs.RegHWREG, 0x44444444_33333333)

	test.ExpectEquality(t, g.TransferActive(), false)
	test.ExpectEquality(t, g.Mem.ReadPixel(gs.PSMCT32, 0, 64, 0, 0), uint32(0x11111111))
	test.ExpectEquality(t, g.Mem.ReadPixel(gs.PSMCT32, 0, 64, 1, 0), uint32(0x22222222))
	test.ExpectEquality(t, g.Mem.ReadPixel(gs.PSMCT32, 0, 64, 0, 1), uint32(0x33333333))
	test.ExpectEquality(t, g.Mem.ReadPixel(gs.PSMCT32, 0, 64, 1, 1), uint32(0x44444444))
}

func TestLocalToHostRoundTrip(t *testing.T) {
	g := gs.New()

	for y := uint32(0); y < 2; y++ {
		for x := uint32(0); x < 2; x++ {
			g.Mem.WritePixel(gs.PSMCT32, 0, 64, x, y, 0x100+x+y*2)
		}
	}

	// source base 0, width 64, PSMCT32; 2x2 area; local-to-host
	_ = g.WriteRegister(gs.RegBITBLTBUF, uint64(1)<<16)
	_ = g.WriteRegister(gs.RegTRXPOS, 0)
	_ = g.WriteRegister(gs.RegTRXREG, 2|uint64(2)<<32)
	_ = g.WriteRegister(gs.RegTRXDIR, 1)

	lo, hi, ok := g.ReadHostQuadword()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, lo, uint64(0x101)<<32|0x100)
	test.ExpectEquality(t, hi, uint64(0x103)<<32|0x102)

	_, _, ok = g.ReadHostQuadword()
	test.ExpectEquality(t, ok, false)
}

func TestEngineOrderingAndScanout(t *testing.T) {
	e := gs.NewEngine()
	e.Start()
	defer e.Stop()

	// draw into a 64-wide PSMCT32 buffer through the message ring, then
	// configure scanout and render: the render must observe every write
	_ = e.WriteDouble(gs.PrivPMODE, 1)
	_ = e.WriteDouble(gs.PrivDISPFB1, 1<<9) // base 0, width 64
	_ = e.WriteDouble(gs.PrivDISPLAY1, uint64(63)<<32|uint64(0)<<44)

	_ = e.WriteRegister(gs.RegFRAME1, 1<<16)
	_ = e.WriteRegister(gs.RegSCISSOR1, 63<<16|uint64(63)<<48)
	_ = e.WriteRegister(gs.RegPRMODECONT, 1)
	_ = e.WriteRegister(gs.RegPRIM, 6) // sprite
	_ = e.WriteRegister(gs.RegRGBAQ, 0x80<<24|0x00FF00)
	_ = e.WriteRegister(gs.RegXYZ2, 0)
	_ = e.WriteRegister(gs.RegXYZ2, 4<<4|uint64(1<<4)<<16)

	pix, w, h := e.RenderCRT()
	test.ExpectEquality(t, w, 64)
	test.ExpectEquality(t, h, 1)
	if len(pix) != w*h*4 {
		t.Fatalf("scanout buffer is %d bytes, expected %d", len(pix), w*h*4)
	}
	// green channel of pixel (0,0)
	test.ExpectEquality(t, pix[1], uint8(0xFF))
}
