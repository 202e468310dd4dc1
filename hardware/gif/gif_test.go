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

package gif_test

import (
	"testing"

	"github.com/retroswitch/emotion2k/hardware/gif"
	"github.com/retroswitch/emotion2k/test"
)

// gsRecorder records register writes in submission order.
type gsRecorder struct {
	regs   []uint8
	values []uint64
}

func (r *gsRecorder) WriteRegister(reg uint8, value uint64) error {
	r.regs = append(r.regs, reg)
	r.values = append(r.values, value)
	return nil
}

// giftag assembles the low 64 bits of a GIFtag.
func giftag(nloop int, eop bool, pre bool, prim uint64, format, nreg int) uint64 {
	lo := uint64(nloop) & 0x7FFF
	if eop {
		lo |= 1 << 15
	}
	if pre {
		lo |= 1 << 46
	}
	lo |= (prim & 0x7FF) << 47
	lo |= uint64(format&0x3) << 58
	lo |= uint64(nreg&0xF) << 60
	return lo
}

func TestPackedADWritesPRIM(t *testing.T) {
	gs := &gsRecorder{}
	g := gif.New(gs)

	// NLOOP=1, EOP, PACKED, NREG=1, REGS=0xE (A+D)
	test.ExpectSuccess(t, g.IngestQuadword(giftag(1, true, false, 0, 0, 1), 0xE))
	// A+D payload: value 1, register address 0 (PRIM)
	test.ExpectSuccess(t, g.IngestQuadword(0x1, 0x00))

	test.ExpectEquality(t, len(gs.regs), 1)
	test.ExpectEquality(t, gs.regs[0], uint8(0))
	test.ExpectEquality(t, gs.values[0], uint64(1))

	path, expectTag := g.Expecting()
	test.ExpectEquality(t, path, gif.PathNone)
	test.ExpectEquality(t, expectTag, true)
}

func TestPackedLoopCountersReset(t *testing.T) {
	gs := &gsRecorder{}
	g := gif.New(gs)

	// NLOOP=2, NREG=2: four payload quadwords, then back to tag state
	regs := uint64(0xE | 0xE<<4)
	test.ExpectSuccess(t, g.IngestQuadword(giftag(2, true, false, 0, 0, 2), regs))

	for n := 0; n < 4; n++ {
		_, expectTag := g.Expecting()
		test.ExpectEquality(t, expectTag, false)
		test.ExpectSuccess(t, g.IngestQuadword(uint64(n), 0x00))
	}

	_, expectTag := g.Expecting()
	test.ExpectEquality(t, expectTag, true)
	test.ExpectEquality(t, len(gs.regs), 4)
}

func TestPRIMPreload(t *testing.T) {
	gs := &gsRecorder{}
	g := gif.New(gs)

	// PRE set: the tag's PRIM field lands in register 0 before any payload
	test.ExpectSuccess(t, g.IngestQuadword(giftag(1, true, true, 0x155, 0, 1), 0xF))
	test.ExpectSuccess(t, g.IngestQuadword(0, 0))

	test.ExpectEquality(t, len(gs.regs), 1)
	test.ExpectEquality(t, gs.regs[0], uint8(0))
	test.ExpectEquality(t, gs.values[0], uint64(0x155))
}

func TestReglistPairParity(t *testing.T) {
	gs := &gsRecorder{}
	g := gif.New(gs)

	// NLOOP=3, NREG=1: three values; ceil(3/2) = 2 quadwords; the last
	// quadword's upper half is discarded
	test.ExpectSuccess(t, g.IngestQuadword(giftag(3, true, false, 0, 1, 1), 0x01))

	test.ExpectSuccess(t, g.IngestQuadword(0xAA, 0xBB))
	_, expectTag := g.Expecting()
	test.ExpectEquality(t, expectTag, false)

	test.ExpectSuccess(t, g.IngestQuadword(0xCC, 0xDEAD))
	_, expectTag = g.Expecting()
	test.ExpectEquality(t, expectTag, true)

	test.ExpectEquality(t, len(gs.values), 3)
	test.ExpectEquality(t, gs.values[0], uint64(0xAA))
	test.ExpectEquality(t, gs.values[1], uint64(0xBB))
	test.ExpectEquality(t, gs.values[2], uint64(0xCC))
	test.ExpectEquality(t, gs.regs[0], uint8(1))
}

func TestPackedXYZF2FieldExtraction(t *testing.T) {
	gs := &gsRecorder{}
	g := gif.New(gs)

	// NLOOP=1, PACKED, NREG=1, REGS=0x4 (XYZF2)
	test.ExpectSuccess(t, g.IngestQuadword(giftag(1, true, false, 0, 0, 1), 0x4))

	// X in bits 0..15, Y in 32..47, Z in 68..91, F in 100..107
	lo := uint64(0x123) | uint64(0x456)<<32
	hi := uint64(0xABCDE)<<4 | uint64(0x7F)<<36
	test.ExpectSuccess(t, g.IngestQuadword(lo, hi))

	test.ExpectEquality(t, len(gs.regs), 1)
	test.ExpectEquality(t, gs.regs[0], uint8(0x04))

	v := gs.values[0]
	test.ExpectEquality(t, v&0xFFFF, uint64(0x123))          // X
	test.ExpectEquality(t, v>>16&0xFFFF, uint64(0x456))      // Y
	test.ExpectEquality(t, v>>32&0xFFFFFF, uint64(0xABCDE))  // Z
	test.ExpectEquality(t, v>>56&0xFF, uint64(0x7F))         // F
}

func TestPackedXYZ2MatchesXYZF2Layout(t *testing.T) {
	gs := &gsRecorder{}
	g := gif.New(gs)

	// the same payload through both selectors must produce the same
	// X/Y/Z; XYZ2 simply carries no fog byte
	regs := uint64(0x4 | 0x5<<4)
	test.ExpectSuccess(t, g.IngestQuadword(giftag(1, true, false, 0, 0, 2), regs))

	lo := uint64(0x7FF0) | uint64(0x3E80)<<32
	hi := uint64(0x123456) << 4
	test.ExpectSuccess(t, g.IngestQuadword(lo, hi))
	test.ExpectSuccess(t, g.IngestQuadword(lo, hi))

	test.ExpectEquality(t, len(gs.regs), 2)
	test.ExpectEquality(t, gs.regs[0], uint8(0x04))
	test.ExpectEquality(t, gs.regs[1], uint8(0x05))

	test.ExpectEquality(t, gs.values[1]&0xFFFF, uint64(0x7FF0))         // X
	test.ExpectEquality(t, gs.values[1]>>16&0xFFFF, uint64(0x3E80))     // Y
	test.ExpectEquality(t, gs.values[1]>>32&0xFFFFFF, uint64(0x123456)) // Z
	test.ExpectEquality(t, gs.values[1], gs.values[0]&^(uint64(0xFF)<<56))
}

func TestPackedADCSuppressesDrawingKick(t *testing.T) {
	gs := &gsRecorder{}
	g := gif.New(gs)

	// bit 111 (ADC) routes the vertex to the non-kicking register
	test.ExpectSuccess(t, g.IngestQuadword(giftag(2, true, false, 0, 0, 1), 0x5))
	test.ExpectSuccess(t, g.IngestQuadword(0, uint64(1)<<47))
	test.ExpectSuccess(t, g.IngestQuadword(0, 0))

	test.ExpectEquality(t, len(gs.regs), 2)
	test.ExpectEquality(t, gs.regs[0], uint8(0x0D)) // XYZ3
	test.ExpectEquality(t, gs.regs[1], uint8(0x05)) // XYZ2
}

func TestImageFormatTargetsHWREG(t *testing.T) {
	gs := &gsRecorder{}
	g := gif.New(gs)

	test.ExpectSuccess(t, g.IngestQuadword(giftag(2, true, false, 0, 2, 0), 0))
	test.ExpectSuccess(t, g.IngestQuadword(0x11, 0x22))
	test.ExpectSuccess(t, g.IngestQuadword(0x33, 0x44))

	test.ExpectEquality(t, len(gs.regs), 4)
	for _, r := range gs.regs {
		test.ExpectEquality(t, r, uint8(0x54))
	}
	test.ExpectEquality(t, gs.values[3], uint64(0x44))
}

func TestPath3MaskQueuesQuadwords(t *testing.T) {
	gs := &gsRecorder{}
	g := gif.New(gs)

	g.SetPath3VIFMask(true)
	test.ExpectSuccess(t, g.IngestQuadword(giftag(1, true, false, 0, 0, 1), 0xE))
	test.ExpectSuccess(t, g.IngestQuadword(0x7, 0x00))
	test.ExpectEquality(t, len(gs.regs), 0)

	g.SetPath3VIFMask(false)
	test.ExpectEquality(t, len(gs.regs), 1)
	test.ExpectEquality(t, gs.values[0], uint64(7))
}

func TestRGBAQCarriesCurrentQ(t *testing.T) {
	gs := &gsRecorder{}
	g := gif.New(gs)

	// NREG=2: an ST slot (loading Q) then an RGBAQ slot
	regs := uint64(0x2 | 0x1<<4)
	test.ExpectSuccess(t, g.IngestQuadword(giftag(1, true, false, 0, 0, 2), regs))

	// ST payload: S/T in lo, Q=2.0 (0x40000000) in hi's low word
	test.ExpectSuccess(t, g.IngestQuadword(0, 0x40000000))
	// RGBAQ payload: r=0x10 g=0x20 b=0x30 a=0x40
	test.ExpectSuccess(t, g.IngestQuadword(0x10|0x20<<32, 0x30|0x40<<32))

	test.ExpectEquality(t, len(gs.regs), 2)
	test.ExpectEquality(t, gs.regs[1], uint8(1))
	test.ExpectEquality(t, gs.values[1], uint64(0x10|0x20<<8|0x30<<16|0x40<<24|0x40000000<<32))
}
